package cli

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/censusplot/pkg/chart/sink"
	"github.com/matzehuels/censusplot/pkg/errors"
)

// Config holds the user defaults read from config.toml. Command-line flags
// override every value.
//
//	[fields]
//	x = "age"
//	y = "smokes"
//
//	[chart]
//	duration = "750ms"
//	radius = 12
//
//	[cache]
//	ttl = "72h"
//	redis = "localhost:6379"
//
//	[style]
//	mark = "tomato"
type Config struct {
	Fields FieldsConfig `toml:"fields"`
	Chart  ChartConfig  `toml:"chart"`
	Cache  CacheConfig  `toml:"cache"`
	Style  sink.Style   `toml:"style"`
}

// FieldsConfig selects the initial field of each axis.
type FieldsConfig struct {
	X string `toml:"x"`
	Y string `toml:"y"`
}

// ChartConfig sets chart geometry and animation.
type ChartConfig struct {
	Width    float64        `toml:"width"`
	Height   float64        `toml:"height"`
	Radius   float64        `toml:"radius"`
	Duration *time.Duration `toml:"duration"`
}

// CacheConfig controls the HTTP and artifact caches.
type CacheConfig struct {
	TTL      time.Duration `toml:"ttl"`
	Redis    string        `toml:"redis"`
	Disabled bool          `toml:"disabled"`
}

const defaultHTTPTTL = 24 * time.Hour

// configPath returns $XDG_CONFIG_HOME/censusplot/config.toml, falling back
// to ~/.config.
func configPath() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads the config file at path. An empty path means the default
// location, which may be absent; an explicit path must exist.
func loadConfig(path string) (Config, error) {
	var cfg Config
	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) && !explicit {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Chart.Duration != nil && *cfg.Chart.Duration < 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "chart.duration must not be negative")
	}
	return cfg, nil
}

// httpTTL returns the configured HTTP cache TTL.
func (c Config) httpTTL() time.Duration {
	if c.Cache.TTL > 0 {
		return c.Cache.TTL
	}
	return defaultHTTPTTL
}
