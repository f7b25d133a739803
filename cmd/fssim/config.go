package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"github.com/weberc2/fssim/pkg/log"
	"github.com/weberc2/fssim/pkg/shell"
	"gopkg.in/yaml.v2"
)

const (
	envVarPrefix = "FSSIM"
	appName      = "fssim"
)

type Config struct {
	Prompt    string `envconfig:"PROMPT"     yaml:"prompt"`
	LogLevel  string `envconfig:"LOG_LEVEL"  yaml:"logLevel"`
	LogFormat string `envconfig:"LOG_FORMAT" yaml:"logFormat"`
	Script    string `envconfig:"SCRIPT"     yaml:"script"`
}

func DefaultConfig() Config {
	return Config{
		Prompt:    shell.DefaultPrompt,
		LogLevel:  "info",
		LogFormat: log.FormatText,
	}
}

// DefaultConfigFile is `$HOME/.config/fssim.yaml`, or `FSSIM_CONFIG_FILE`
// when that is set.
func DefaultConfigFile() string {
	if file := os.Getenv(envVarPrefix + "_CONFIG_FILE"); file != "" {
		return file
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName+".yaml")
}

// LoadConfig reads `configFile` over the defaults and then applies the
// `FSSIM_*` environment variables on top. A missing file is not an error
// unless `required` is set.
func LoadConfig(configFile string, required bool) (*Config, error) {
	c := DefaultConfig()
	if configFile != "" {
		data, err := os.ReadFile(configFile)
		switch {
		case errors.Is(err, fs.ErrNotExist) && !required:
		case err != nil:
			return nil, fmt.Errorf("reading config file: %w", err)
		default:
			if err := yaml.UnmarshalStrict(data, &c); err != nil {
				return nil, fmt.Errorf("unmarshaling config file: %w", err)
			}
		}
	}

	if err := envconfig.Process(envVarPrefix, &c); err != nil {
		return nil, fmt.Errorf("parsing environment variables: %w", err)
	}

	return &c, nil
}

func (c *Config) Validate() error {
	if y, e := func() (string, string) {
		var level slog.Level
		if level.UnmarshalText([]byte(c.LogLevel)) != nil {
			return "logLevel", "LOG_LEVEL"
		}
		if c.LogFormat != log.FormatText && c.LogFormat != log.FormatJSON {
			return "logFormat", "LOG_FORMAT"
		}
		return "", ""
	}(); y != "" {
		return fmt.Errorf(
			"invalid configuration: %s / %s_%s",
			y,
			envVarPrefix,
			e,
		)
	}
	return nil
}
