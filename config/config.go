// Package config resolves extraction settings from the environment and an
// optional YAML file, validates them, and turns them into extract options.
//
// Environment variables use the STATDATA prefix:
//
//	STATDATA_WIDTH=int8 STATDATA_SENTINEL=-1 STATDATA_OVERFLOW=wrap STATDATA_ROUNDING=half-up
//	STATDATA_WORKERS=4 STATDATA_LOGGING_LEVEL=debug STATDATA_LOGGING_FORMAT=json
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"github.com/katalvlaran/statdata/extract"
	"github.com/katalvlaran/statdata/internal/logging"
)

// EnvPrefix is the envconfig prefix.
const EnvPrefix = "STATDATA"

// Config is the complete extraction configuration.
type Config struct {
	Width    string        `yaml:"width" envconfig:"WIDTH" default:"int8" validate:"required,oneof=byte int int8 int16 int32 int64 uint8 uint16 uint32 uint64"`
	Sentinel int64         `yaml:"sentinel" envconfig:"SENTINEL" default:"-1"`
	Overflow string        `yaml:"overflow" envconfig:"OVERFLOW" default:"wrap" validate:"oneof=wrap saturate error"`
	Rounding string        `yaml:"rounding" envconfig:"ROUNDING" default:"half-up" validate:"oneof=half-up half-away"`
	Workers  int           `yaml:"workers" envconfig:"WORKERS" default:"1" validate:"min=1,max=1024"`
	Logging  LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"text" validate:"oneof=text json"`
}

// Load reads the environment, then overlays the YAML file at path (if path is
// non-empty and exists) for every setting the environment did not provide,
// then validates. Every failure wraps extract.ErrConfiguration.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w: %w", extract.ErrConfiguration, err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			fileCfg, err := loadFromFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w: %w", extract.ErrConfiguration, err)
			}
			cfg = merge(*fileCfg, cfg)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// fileConfig is the YAML shape; Sentinel and Workers are pointers so an
// explicit 0 is distinguishable from "absent".
type fileConfig struct {
	Width    string        `yaml:"width"`
	Sentinel *int64        `yaml:"sentinel"`
	Overflow string        `yaml:"overflow"`
	Rounding string        `yaml:"rounding"`
	Workers  *int          `yaml:"workers"`
	Logging  LoggingConfig `yaml:"logging"`
}

// loadFromFile decodes a YAML config file.
func loadFromFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg fileConfig
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// envSet reports whether STATDATA_<name> is present in the environment.
func envSet(name string) bool {
	_, ok := os.LookupEnv(EnvPrefix + "_" + name)

	return ok
}

// merge applies file values wherever the environment was silent (env wins).
func merge(file fileConfig, env Config) Config {
	if !envSet("WIDTH") && file.Width != "" {
		env.Width = file.Width
	}
	if !envSet("SENTINEL") && file.Sentinel != nil {
		env.Sentinel = *file.Sentinel
	}
	if !envSet("OVERFLOW") && file.Overflow != "" {
		env.Overflow = file.Overflow
	}
	if !envSet("ROUNDING") && file.Rounding != "" {
		env.Rounding = file.Rounding
	}
	if !envSet("WORKERS") && file.Workers != nil {
		env.Workers = *file.Workers
	}
	if !envSet("LOGGING_LEVEL") && file.Logging.Level != "" {
		env.Logging.Level = file.Logging.Level
	}
	if !envSet("LOGGING_FORMAT") && file.Logging.Format != "" {
		env.Logging.Format = file.Logging.Format
	}

	return env
}

var validate = validator.New()

// Validate checks struct tags and the width/sentinel pairing.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("config: field %s failed %q: %w", verrs[0].Namespace(), verrs[0].Tag(), extract.ErrConfiguration)
		}

		return fmt.Errorf("config: %w: %w", extract.ErrConfiguration, err)
	}
	w, err := c.ParsedWidth()
	if err != nil {
		return err
	}

	return checkSentinel(w, c.Sentinel)
}

// ParsedWidth returns the configured Width tag.
func (c *Config) ParsedWidth() (extract.Width, error) {
	return extract.ParseWidth(c.Width)
}

// Options converts the configuration into extract options. Logs go to w
// (stderr when nil).
func (c *Config) Options(w io.Writer) ([]extract.Option, error) {
	policy, err := extract.ParseOverflowPolicy(c.Overflow)
	if err != nil {
		return nil, err
	}
	rounding, err := extract.ParseRoundingMode(c.Rounding)
	if err != nil {
		return nil, err
	}
	if c.Workers < 1 {
		return nil, fmt.Errorf("config: workers %d: %w", c.Workers, extract.ErrConfiguration)
	}

	return []extract.Option{
		extract.WithSentinel(c.Sentinel),
		extract.WithOverflow(policy),
		extract.WithRounding(rounding),
		extract.WithWorkers(c.Workers),
		extract.WithLogger(logging.New(c.Logging.Level, c.Logging.Format, w)),
	}, nil
}

// checkSentinel validates s against the runtime width.
func checkSentinel(w extract.Width, s int64) error {
	switch w {
	case extract.Int8:
		return extract.ValidateSentinel[int8](s)
	case extract.Int16:
		return extract.ValidateSentinel[int16](s)
	case extract.Int32:
		return extract.ValidateSentinel[int32](s)
	case extract.Int64:
		return extract.ValidateSentinel[int64](s)
	case extract.Uint8:
		return extract.ValidateSentinel[uint8](s)
	case extract.Uint16:
		return extract.ValidateSentinel[uint16](s)
	case extract.Uint32:
		return extract.ValidateSentinel[uint32](s)
	case extract.Uint64:
		return extract.ValidateSentinel[uint64](s)
	default:
		return extract.ValidateWidth(w)
	}
}
