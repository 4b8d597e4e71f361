package output

import (
	"slices"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
)

// ReporterType selects where outputs are published
type ReporterType string

const (
	GitHub ReporterType = "github"
	Dotenv ReporterType = "dotenv"
	Log    ReporterType = "log"
)

var supportedReporterTypes = []ReporterType{GitHub, Dotenv, Log}

const (
	defaultDotenvPath   = "changed-files.env"
	defaultDotenvPrefix = "CHANGED_FILES_"
)

// Config represents output configuration
type Config struct {
	Type         ReporterType `yaml:"type" env:"INPUT_OUTPUT-TYPE"`
	GitHubPath   string       `yaml:"github_output" env:"GITHUB_OUTPUT"`
	DotenvPath   string       `yaml:"dotenv_file" env:"INPUT_DOTENV-FILE"`
	DotenvPrefix string       `yaml:"dotenv_prefix" env:"INPUT_OUTPUT-PREFIX"`
}

func (c *Config) PrepareAndValidate() error {
	c.Type = lang.Check(c.Type, lang.If(c.GitHubPath != "", GitHub, Log))
	c.DotenvPath = lang.Check(c.DotenvPath, defaultDotenvPath)
	c.DotenvPrefix = lang.Check(c.DotenvPrefix, defaultDotenvPrefix)

	if !slices.Contains(supportedReporterTypes, c.Type) {
		return errm.Errorf("invalid output type: %s", c.Type)
	}
	if c.Type == GitHub && c.GitHubPath == "" {
		return errm.New("GITHUB_OUTPUT is not set")
	}

	return nil
}
