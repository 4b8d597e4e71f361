package provider

import (
	"github.com/maxbolgarin/changed-files/internal/model"
	"github.com/maxbolgarin/changed-files/internal/model/interfaces"
	"github.com/maxbolgarin/changed-files/internal/provider/bitbucket"
	"github.com/maxbolgarin/changed-files/internal/provider/github"
	"github.com/maxbolgarin/changed-files/internal/provider/gitlab"
	"github.com/maxbolgarin/erro"
)

// NewProvider returns the changes provider for the configured hosting service
func NewProvider(cfg Config) (interfaces.ChangesProvider, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, erro.Wrap(err, "invalid provider config")
	}

	vcs := model.ProviderConfig{BaseURL: cfg.BaseURL, Token: cfg.Token}

	switch cfg.Type {
	case GitHub:
		return wrapNew(github.New(vcs))
	case GitLab:
		return wrapNew(gitlab.New(vcs))
	case Bitbucket:
		return wrapNew(bitbucket.New(vcs))
	}

	return nil, erro.New("unsupported provider type", "type", cfg.Type)
}

func wrapNew[T interfaces.ChangesProvider](p T, err error) (interfaces.ChangesProvider, error) {
	if err != nil {
		return nil, erro.Wrap(err, "failed to create provider")
	}
	return p, nil
}
