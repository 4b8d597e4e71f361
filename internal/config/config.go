package config

import (
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/maxbolgarin/changed-files/internal/formatter"
	"github.com/maxbolgarin/changed-files/internal/output"
	"github.com/maxbolgarin/changed-files/internal/provider"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/erro"
)

// Config represents the main application configuration
type Config struct {
	Format      string `yaml:"format" env:"INPUT_FORMAT"`
	ExcludeFile string `yaml:"exclude_file" env:"INPUT_EXCLUDE-FILE"`

	// Override what the CI event provides
	Base       string `yaml:"base" env:"INPUT_BASE"`
	Head       string `yaml:"head" env:"INPUT_HEAD"`
	Repository string `yaml:"repository" env:"INPUT_REPOSITORY"`

	Debug bool `yaml:"debug" env:"RUNNER_DEBUG"`

	Provider provider.Config `yaml:"provider"`
	Output   output.Config   `yaml:"output"`
}

// Load reads configuration from the yaml file at path, if given, and the environment
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, errm.Wrap(err, "failed to read environment")
		}
		return cfg, nil
	}
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return Config{}, errm.Wrap(err, "failed to read config")
	}
	return cfg, nil
}

// Validate checks inputs that must be known before anything is fetched
func (c *Config) Validate() error {
	if c.Format == "" {
		return ErrMissingFormat
	}
	if _, err := formatter.ParseFormat(c.Format); err != nil {
		return erro.Wrap(err, "invalid format")
	}
	if c.Provider.Token == "" {
		return ErrMissingToken
	}
	return nil
}
