package engine

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"tracewise/internal/catalog"
	"tracewise/internal/suggest"
)

// Config tunes the engine. Every field has a working default, so the
// zero-config path and a partial tracewise.toml both produce a usable
// engine.
type Config struct {
	// Locale is used when a request does not name one.
	Locale string `toml:"locale"`

	Suggest SuggestConfig `toml:"suggest"`
}

// SuggestConfig tunes the "did you mean" search.
type SuggestConfig struct {
	MaxResults int     `toml:"max_results"`
	MinScore   float64 `toml:"min_score"`
}

// DefaultConfig returns the built-in tuning.
func DefaultConfig() Config {
	opts := suggest.DefaultOptions()
	return Config{
		Locale: catalog.DefaultLocale,
		Suggest: SuggestConfig{
			MaxResults: opts.MaxResults,
			MinScore:   opts.MinScore,
		},
	}
}

// LoadConfig reads a TOML config file and overlays it on the defaults.
// A missing file is not an error; a malformed one is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("engine: parse config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("engine: config %s: unknown keys %v", path, undecoded)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("engine: config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Suggest.MaxResults < 0 {
		return fmt.Errorf("suggest.max_results must not be negative, got %d", c.Suggest.MaxResults)
	}
	if c.Suggest.MinScore < 0 || c.Suggest.MinScore > 1 {
		return fmt.Errorf("suggest.min_score must be in [0,1], got %g", c.Suggest.MinScore)
	}
	return nil
}

func (c *Config) suggestOptions() suggest.Options {
	return suggest.Options{
		MaxResults: c.Suggest.MaxResults,
		MinScore:   c.Suggest.MinScore,
	}
}
