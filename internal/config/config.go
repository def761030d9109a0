// Package config loads sbcharts settings from defaults, an optional YAML file
// and SBCHARTS_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SBCHARTS_"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error"`

	// LogFormat selects console or json output.
	LogFormat string `koanf:"log_format" validate:"oneof=console json"`

	// DBPath is the SQLite database file.
	DBPath string `koanf:"db_path" validate:"required"`

	// SourceURL is the open-data root used when DataDir is empty.
	SourceURL string `koanf:"source_url" validate:"required_without=DataDir"`

	// DataDir points at the data/ directory of a local open-data checkout.
	DataDir string `koanf:"data_dir"`

	// CompetitionID and SeasonID select the default season (Bundesliga 2023/24).
	CompetitionID int `koanf:"competition_id" validate:"gt=0"`
	SeasonID      int `koanf:"season_id" validate:"gt=0"`

	// MinLinkPasses drops pass links with this many passes or fewer.
	MinLinkPasses int `koanf:"min_link_passes" validate:"gte=0"`

	// RosterSize caps the derived starting eleven.
	RosterSize int `koanf:"roster_size" validate:"gt=0"`

	// HTTPTimeoutSeconds bounds each open-data request.
	HTTPTimeoutSeconds int `koanf:"http_timeout" validate:"gt=0"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "console",
		DBPath:             filepath.Join(userHome(), ".sbcharts", "matches.db"),
		SourceURL:          "https://raw.githubusercontent.com/statsbomb/open-data/master/data",
		CompetitionID:      9,
		SeasonID:           281,
		MinLinkPasses:      5,
		RosterSize:         11,
		HTTPTimeoutSeconds: 30,
	}
}

// HTTPTimeout returns the request timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// Load builds a Config by layering defaults, an optional file and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. YAML file at path, or SBCHARTS_CONFIG when path is empty
//  3. env (prefix SBCHARTS_)
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(EnvPrefix + "CONFIG")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "load config file %s", path)
		}
	}

	// SBCHARTS_MIN_LINK_PASSES -> min_link_passes
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, errors.Wrap(err, "load env")
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New()

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

func userHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
