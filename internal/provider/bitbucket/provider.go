package bitbucket

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/maxbolgarin/changed-files/internal/model"
	"github.com/maxbolgarin/changed-files/internal/model/interfaces"
	"github.com/maxbolgarin/cliex"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
)

var _ interfaces.ChangesProvider = (*Provider)(nil)

const (
	defaultBaseURL = "https://api.bitbucket.org/2.0"

	// hard stop for a misbehaving next link
	maxPages = 100
)

// Provider implements the ChangesProvider interface for Bitbucket Cloud
type Provider struct {
	config model.ProviderConfig
	logger logze.Logger
	client *cliex.HTTP
}

// New creates a new Bitbucket provider
func New(config model.ProviderConfig) (*Provider, error) {
	if config.Token == "" {
		return nil, errm.New("Bitbucket token is required")
	}
	log := logze.With("provider", "bitbucket", "component", "provider")

	// Set base URL
	baseURL := defaultBaseURL
	if config.BaseURL != "" {
		baseURL = strings.TrimSuffix(config.BaseURL, "/")
	}

	cli, err := cliex.New(cliex.WithBaseURL(baseURL), cliex.WithLogger(log))
	if err != nil {
		return nil, errm.Wrap(err, "failed to create Bitbucket client")
	}
	cli.C().SetAuthToken(config.Token)

	return &Provider{
		client: cli,
		config: config,
		logger: log,
	}, nil
}

// LoadEvent resolves the commit range from Bitbucket Pipelines variables.
// Pull request pipelines compare against the destination branch; branch
// pipelines carry no base and need one configured explicitly.
func (p *Provider) LoadEvent() (*model.Event, error) {
	var env pipelinesEnv
	if err := cleanenv.ReadEnv(&env); err != nil {
		return nil, errm.Wrap(err, "failed to read Bitbucket Pipelines environment")
	}
	return eventFromEnv(env), nil
}

func eventFromEnv(env pipelinesEnv) *model.Event {
	event := &model.Event{
		Name:      eventPush,
		ProjectID: env.RepoFullName,
		Range:     model.CommitRange{Head: env.Commit},
	}
	if env.PRID != "" {
		event.Name = eventPullRequest
		event.Range.Base = env.PRDestinationName
	}
	return event
}

// CompareCommits retrieves the files changed between two revisions using the diffstat endpoint
func (p *Provider) CompareCommits(ctx context.Context, projectID string, rng model.CommitRange) (*model.Comparison, error) {
	// Parse workspace/repo_slug from projectID
	parts := strings.Split(projectID, "/")
	if len(parts) != 2 {
		return nil, errm.New("invalid Bitbucket project ID format, expected 'workspace/repo_slug'")
	}
	workspace, repoSlug := parts[0], parts[1]

	status, err := p.compareStatus(ctx, workspace, repoSlug, rng)
	if err != nil {
		return nil, err
	}

	// Bitbucket spells a range as source..destination
	spec := url.PathEscape(rng.Head) + ".." + url.PathEscape(rng.Base)
	apiURL := fmt.Sprintf("repositories/%s/%s/diffstat/%s", workspace, repoSlug, spec)

	files := make([]model.ChangeRecord, 0)
	for page := 0; apiURL != ""; page++ {
		if page == maxPages {
			return nil, errm.Errorf("diffstat has more than %d pages", maxPages)
		}

		var response bitbucketDiffStatPage
		resp, err := p.client.Get(ctx, apiURL, &response)
		if err != nil {
			return nil, errm.Wrap(err, "failed to get diffstat from Bitbucket")
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, errm.Errorf("the Bitbucket API for diffstat returned %d, expected 200", resp.StatusCode())
		}

		for _, stat := range response.Values {
			files = append(files, toChangeRecord(stat))
		}

		p.logger.Debug("loaded diffstat page", "page", page+1, "files", len(response.Values))
		apiURL = response.Next
	}

	return &model.Comparison{
		Status: status,
		Files:  files,
	}, nil
}

// compareStatus places head relative to base; diffstat compares from the merge base
// and cannot tell a diverged range from an ahead one
func (p *Provider) compareStatus(ctx context.Context, workspace, repoSlug string, rng model.CommitRange) (model.ComparisonStatus, error) {
	ahead, err := p.hasCommits(ctx, workspace, repoSlug, rng.Head, rng.Base)
	if err != nil {
		return "", err
	}
	behind, err := p.hasCommits(ctx, workspace, repoSlug, rng.Base, rng.Head)
	if err != nil {
		return "", err
	}

	switch {
	case ahead && behind:
		return model.ComparisonDiverged, nil
	case behind:
		return model.ComparisonBehind, nil
	case !ahead:
		return model.ComparisonIdentical, nil
	}
	return model.ComparisonAhead, nil
}

// hasCommits reports whether any commit is reachable from include but not from exclude
func (p *Provider) hasCommits(ctx context.Context, workspace, repoSlug, include, exclude string) (bool, error) {
	apiURL := fmt.Sprintf("repositories/%s/%s/commits", workspace, repoSlug)

	var response bitbucketCommitsPage
	resp, err := p.client.GetQ(ctx, apiURL, &response, "include", include, "exclude", exclude, "pagelen", "1")
	if err != nil {
		return false, errm.Wrap(err, "failed to list commits from Bitbucket")
	}
	if resp.StatusCode() != http.StatusOK {
		return false, errm.Errorf("the Bitbucket API for commits returned %d, expected 200", resp.StatusCode())
	}

	return len(response.Values) > 0, nil
}

func toChangeRecord(stat bitbucketDiffStat) model.ChangeRecord {
	record := model.ChangeRecord{Status: model.FileStatus(stat.Status)}
	switch {
	case stat.New != nil:
		record.Filename = stat.New.Path
	case stat.Old != nil:
		record.Filename = stat.Old.Path
	}
	return record
}
