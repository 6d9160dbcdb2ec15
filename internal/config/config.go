// Package config defines the CLI configuration and loads it from a YAML
// file, a .env file and BUHCALC_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/buhcalc/internal/rates"
	"github.com/iwvelando/buhcalc/pkg/constants"
	"github.com/iwvelando/buhcalc/pkg/validation"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for buhcalc.
type Configuration struct {
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
	Rates   RatesConfig   `yaml:"rates,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// RatesConfig points at an operator-supplied rate table file. Empty selects
// the built-in tables.
type RatesConfig struct {
	File string `yaml:"file,omitempty"`
}

// LoadConfiguration loads the YAML-formatted configuration at configPath.
// An empty path skips the file and uses defaults plus environment overrides.
func LoadConfiguration(configPath string) (*Configuration, error) {
	// A missing .env file is the common case.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("rates.file", "")

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	if err := configuration.Validate(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

// Validate checks every enumerated setting and reports all problems at once.
func (c *Configuration) Validate() error {
	var errs []error
	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		errs = append(errs, err)
	}
	if err := validation.ValidateLogLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	if err := validation.ValidateLogFormat(c.Logging.Format); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// LoadRates returns the rate tables selected by the configuration.
func (c *Configuration) LoadRates() (rates.Tables, error) {
	if c.Rates.File == "" {
		return rates.Default()
	}
	return rates.LoadFile(c.Rates.File)
}
