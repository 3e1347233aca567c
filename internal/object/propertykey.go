package object

import (
	"strconv"

	"github.com/quill-lang/quill/internal/value"
)

// PropertyKeyKind tags which variant of PropertyKey is populated.
type PropertyKeyKind uint8

const (
	KeyString PropertyKeyKind = iota
	KeySymbol
	KeyIndex
)

// maxIndex is the largest valid array index per the ECMAScript canonical
// numeric string rule: 2^32 - 2 (2^32-1 is reserved, used as the
// "length" sentinel for arrays).
const maxIndex = 1<<32 - 2

// PropertyKey is the sum of String, Symbol, and Index(uint32) described
// in spec.md §3: an Index is the fast path for keys matching the
// canonical-integer-string rule.
type PropertyKey struct {
	kind  PropertyKeyKind
	str   string
	sym   *value.Symbol
	index uint32
}

// StringKey constructs a PropertyKey from a plain string, normalizing it
// to KeyIndex when it is the canonical decimal representation of a valid
// array index.
func StringKey(s string) PropertyKey {
	if idx, ok := canonicalIndex(s); ok {
		return PropertyKey{kind: KeyIndex, index: idx}
	}
	return PropertyKey{kind: KeyString, str: s}
}

// SymbolKey constructs a PropertyKey from a Symbol identity.
func SymbolKey(s *value.Symbol) PropertyKey {
	return PropertyKey{kind: KeySymbol, sym: s}
}

// IndexKey constructs a PropertyKey directly from a numeric index.
func IndexKey(i uint32) PropertyKey {
	return PropertyKey{kind: KeyIndex, index: i}
}

func canonicalIndex(s string) (uint32, bool) {
	if s == "" {
		return 0, false
	}
	if s == "0" {
		return 0, true
	}
	if s[0] == '0' {
		return 0, false // leading zero disqualifies, e.g. "01"
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n > maxIndex {
		return 0, false
	}
	if strconv.FormatUint(n, 10) != s {
		return 0, false
	}
	return uint32(n), true
}

func (k PropertyKey) Kind() PropertyKeyKind { return k.kind }
func (k PropertyKey) IsIndex() bool         { return k.kind == KeyIndex }
func (k PropertyKey) IsString() bool        { return k.kind == KeyString }
func (k PropertyKey) IsSymbol() bool        { return k.kind == KeySymbol }

func (k PropertyKey) Index() uint32      { return k.index }
func (k PropertyKey) Symbol() *value.Symbol { return k.sym }

// String renders the key's string form; Index keys render their decimal
// form (matching how property names are looked up from script, where
// `o[0]` and `o["0"]` are the same key).
func (k PropertyKey) String() string {
	switch k.kind {
	case KeyIndex:
		return strconv.FormatUint(uint64(k.index), 10)
	case KeyString:
		return k.str
	case KeySymbol:
		return k.sym.String()
	default:
		return ""
	}
}

// group ranks keys for spec.md §3's OwnPropertyKeys rule: Index keys
// first (0), then String keys (1), then Symbol keys last (2). It only
// separates the groups; it does not order keys within a group.
func (k PropertyKey) group() int {
	switch k.kind {
	case KeyIndex:
		return 0
	case KeyString:
		return 1
	default:
		return 2
	}
}
