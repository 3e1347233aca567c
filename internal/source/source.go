// Package source loads script files for pkg/quill.Context.EvalFile,
// detecting byte-order marks the same way the teacher's
// internal/interp/encoding.go does (detectAndDecodeFile/decodeUTF16):
// a UTF-8 BOM is stripped, UTF-16 LE/BE is transcoded via
// golang.org/x/text's unicode decoder, and anything else is assumed
// UTF-8 already. A leading `#!` shebang line is additionally stripped
// (replaced with a blank line so token positions stay accurate), which
// the teacher's script-only compiler has no need for but quill's
// cmd/quill `run` subcommand does when a script is made executable.
package source

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadFile loads path, decodes it to a UTF-8 Go string, strips any BOM,
// and blanks out a leading shebang line.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("source: reading %s: %w", path, err)
	}
	text, err := Decode(data)
	if err != nil {
		return "", fmt.Errorf("source: decoding %s: %w", path, err)
	}
	return stripShebang(text), nil
}

// Decode detects data's encoding from a leading BOM (UTF-8, UTF-16 LE,
// UTF-16 BE) and returns its UTF-8 string content with the BOM removed.
// Data without a recognized BOM is assumed to already be UTF-8.
func Decode(data []byte) (string, error) {
	switch {
	case len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF:
		return string(data[3:]), nil
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE:
		return decodeUTF16(data, unicode.LittleEndian)
	case len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF:
		return decodeUTF16(data, unicode.BigEndian)
	case utf8.Valid(data):
		return string(data), nil
	default:
		// Fallback: promote raw bytes to runes rather than erroring —
		// an embedder handing quill arbitrary bytes still gets a
		// parseable (if garbled) source rather than a hard failure.
		runes := make([]rune, len(data))
		for i, b := range data {
			runes[i] = rune(b)
		}
		return string(runes), nil
	}
}

func decodeUTF16(data []byte, endianness unicode.Endianness) (string, error) {
	decoder := unicode.UTF16(endianness, unicode.UseBOM).NewDecoder()
	utf8Data, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", fmt.Errorf("decoding UTF-16: %w", err)
	}
	if len(utf8Data) >= 3 && utf8Data[0] == 0xEF && utf8Data[1] == 0xBB && utf8Data[2] == 0xBF {
		utf8Data = utf8Data[3:]
	}
	result := string(bytes.TrimPrefix(utf8Data, []byte("﻿")))
	return result, nil
}

// stripShebang blanks a leading `#!...` line without shifting any other
// line's position, so a lexer/parser error on line N still points at
// the right source line.
func stripShebang(text string) string {
	if !strings.HasPrefix(text, "#!") {
		return text
	}
	if idx := strings.IndexByte(text, '\n'); idx != -1 {
		return text[idx:]
	}
	return ""
}
