package gitlab

import (
	"context"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/maxbolgarin/changed-files/internal/model"
	"github.com/maxbolgarin/changed-files/internal/model/interfaces"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

const (
	defaultBaseURL = "https://gitlab.com"
)

var _ interfaces.ChangesProvider = (*Provider)(nil)

// Provider implements the ChangesProvider interface for GitLab
type Provider struct {
	client *gitlab.Client
	config model.ProviderConfig
	logger logze.Logger
}

// New creates a new GitLab provider
func New(config model.ProviderConfig) (*Provider, error) {
	if config.Token == "" {
		return nil, errm.New("GitLab token is required")
	}
	logger := logze.With("provider", "gitlab", "component", "provider")

	if config.BaseURL == "" {
		var env ciEnv
		if err := cleanenv.ReadEnv(&env); err != nil {
			return nil, errm.Wrap(err, "failed to read GitLab CI environment")
		}
		config.BaseURL = lang.Check(env.APIURL, defaultBaseURL)
	}

	client, err := gitlab.NewClient(config.Token, gitlab.WithBaseURL(config.BaseURL))
	if err != nil {
		return nil, errm.Wrap(err, "failed to create GitLab client")
	}

	return &Provider{
		client: client,
		config: config,
		logger: logger,
	}, nil
}

// LoadEvent resolves the commit range from GitLab CI predefined variables
func (p *Provider) LoadEvent() (*model.Event, error) {
	var env ciEnv
	if err := cleanenv.ReadEnv(&env); err != nil {
		return nil, errm.Wrap(err, "failed to read GitLab CI environment")
	}
	return p.eventFromEnv(env)
}

func (p *Provider) eventFromEnv(env ciEnv) (*model.Event, error) {
	event := &model.Event{
		Name:      env.PipelineSource,
		ProjectID: env.ProjectID,
	}

	switch env.PipelineSource {
	case sourceMergeRequest:
		event.Range = model.CommitRange{Base: env.MRDiffBaseSHA, Head: env.CommitSHA}
	case sourcePush:
		event.Range = model.CommitRange{Base: env.CommitBeforeSHA, Head: env.CommitSHA}
	default:
		return nil, erro.Wrap(model.ErrUnsupportedEvent, "only merge request and push pipelines are supported", "source", env.PipelineSource)
	}

	p.logger.Debug("resolved pipeline event", "source", env.PipelineSource, "base", event.Range.Base, "head", event.Range.Head)

	return event, nil
}

// CompareCommits retrieves the files changed between two commits
func (p *Provider) CompareCommits(ctx context.Context, projectID string, rng model.CommitRange) (*model.Comparison, error) {
	opts := &gitlab.CompareOptions{
		From: gitlab.Ptr(rng.Base),
		To:   gitlab.Ptr(rng.Head),
	}

	cmp, _, err := p.client.Repositories.Compare(projectID, opts, gitlab.WithContext(ctx))
	if err != nil {
		return nil, errm.Wrap(err, "failed to compare commits")
	}

	result := &model.Comparison{
		Status: model.ComparisonAhead,
	}
	switch {
	case cmp.CompareSameRef:
		result.Status = model.ComparisonIdentical
	case len(cmp.Commits) == 0:
		result.Status = model.ComparisonBehind
	default:
		// compare works from the merge base, so base must also be an ancestor of head
		missing, err := p.countMissing(ctx, projectID, rng)
		if err != nil {
			return nil, err
		}
		if missing > 0 {
			result.Status = model.ComparisonDiverged
		}
	}

	if cmp.Diffs != nil {
		result.Files = make([]model.ChangeRecord, 0, len(cmp.Diffs))
		for _, diff := range cmp.Diffs {
			result.Files = append(result.Files, toChangeRecord(diff))
		}
	}

	return result, nil
}

// countMissing returns the number of commits reachable from base but not from head
func (p *Provider) countMissing(ctx context.Context, projectID string, rng model.CommitRange) (int, error) {
	opts := &gitlab.CompareOptions{
		From: gitlab.Ptr(rng.Head),
		To:   gitlab.Ptr(rng.Base),
	}

	cmp, _, err := p.client.Repositories.Compare(projectID, opts, gitlab.WithContext(ctx))
	if err != nil {
		return 0, errm.Wrap(err, "failed to compare head with base")
	}

	return len(cmp.Commits), nil
}

func toChangeRecord(diff *gitlab.Diff) model.ChangeRecord {
	switch {
	case diff.NewFile:
		return model.ChangeRecord{Filename: diff.NewPath, Status: model.FileStatusAdded}
	case diff.DeletedFile:
		return model.ChangeRecord{Filename: lang.Check(diff.OldPath, diff.NewPath), Status: model.FileStatusRemoved}
	case diff.RenamedFile:
		return model.ChangeRecord{Filename: diff.NewPath, Status: model.FileStatusRenamed}
	default:
		return model.ChangeRecord{Filename: diff.NewPath, Status: model.FileStatusModified}
	}
}
