// Package engineconfig loads optional `.quillrc.yaml` settings via
// spf13/viper, grounded on dphaener-conduit's internal/cli/config
// package (same SetDefault/SetConfigName/AutomaticEnv/Unmarshal shape),
// adapted from Conduit's project-level config to quill's engine-level
// knobs: recursion depth, strict mode, and log verbosity. Only
// cmd/quill imports this package — pkg/quill.Context itself takes
// plain ContextOptions and never reads files or the environment on its
// own, per spec.md §5's "a Context never performs host I/O unless the
// embedder asks it to."
package engineconfig

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the subset of engine behavior a host can pin down outside
// of Go source: a `.quillrc` file in the current directory, or QUILL_-
// prefixed environment variables (QUILL_MAX_CALL_DEPTH, QUILL_STRICT,
// QUILL_LOG_LEVEL).
type Config struct {
	MaxCallDepth int    `mapstructure:"max_call_depth"`
	Strict       bool   `mapstructure:"strict"`
	LogLevel     string `mapstructure:"log_level"`
}

// Load reads `.quillrc` (yaml, toml, or json — viper auto-detects) from
// the current directory, falling back silently to defaults when no
// config file is present, the same "defaults first, file optional"
// shape as Conduit's Load.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("max_call_depth", 2000)
	v.SetDefault("strict", false)
	v.SetDefault("log_level", "warn")

	v.SetConfigName(".quillrc")
	v.AddConfigPath(".")
	v.SetEnvPrefix("QUILL")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("engineconfig: reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("engineconfig: unmarshalling config: %w", err)
	}
	return &cfg, nil
}
