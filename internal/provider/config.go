package provider

import (
	"slices"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
)

type ProviderType string

// SupportedProviderTypes defines the supported VCS provider types
const (
	GitHub    ProviderType = "github"
	GitLab    ProviderType = "gitlab"
	Bitbucket ProviderType = "bitbucket"
)

var supportedProviderTypes = []ProviderType{GitHub, GitLab, Bitbucket}

// Config represents VCS provider configuration
type Config struct {
	Type    ProviderType `yaml:"type" env:"INPUT_PROVIDER"`
	BaseURL string       `yaml:"base_url" env:"INPUT_API-URL"`
	Token   string       `yaml:"token" env:"INPUT_TOKEN"`
}

func (c *Config) PrepareAndValidate() error {
	c.Type = lang.Check(c.Type, GitHub)

	if c.Token == "" {
		return errm.New("token is required")
	}

	if !slices.Contains(supportedProviderTypes, c.Type) {
		return errm.Errorf("invalid provider type: %s", c.Type)
	}

	return nil
}
