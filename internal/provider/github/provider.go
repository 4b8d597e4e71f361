package github

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/google/go-github/v57/github"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/maxbolgarin/changed-files/internal/model"
	"github.com/maxbolgarin/changed-files/internal/model/interfaces"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/logze/v2"
	"golang.org/x/oauth2"
)

var _ interfaces.ChangesProvider = (*Provider)(nil)

const (
	defaultBaseURL = "https://api.github.com"
)

// Provider implements the ChangesProvider interface for GitHub
type Provider struct {
	client *github.Client
	config model.ProviderConfig
	logger logze.Logger
}

// New creates a new GitHub provider
func New(config model.ProviderConfig) (*Provider, error) {
	if config.Token == "" {
		return nil, errm.New("GitHub token is required")
	}
	log := logze.With("provider", "github", "component", "provider")

	if config.BaseURL == "" {
		var env actionsEnv
		if err := cleanenv.ReadEnv(&env); err != nil {
			return nil, errm.Wrap(err, "failed to read GitHub Actions environment")
		}
		config.BaseURL = env.APIURL
	}

	// Create OAuth2 token source
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: config.Token},
	)
	tc := oauth2.NewClient(context.Background(), ts)

	client := github.NewClient(tc)

	// Set base URL if provided (for GitHub Enterprise)
	if config.BaseURL != "" && strings.TrimSuffix(config.BaseURL, "/") != defaultBaseURL {
		var err error
		client, err = github.NewClient(tc).WithEnterpriseURLs(config.BaseURL, config.BaseURL)
		if err != nil {
			return nil, errm.Wrap(err, "failed to create GitHub Enterprise client")
		}
	}

	return &Provider{
		client: client,
		config: config,
		logger: log,
	}, nil
}

// LoadEvent reads the event that triggered the workflow from the runner environment
func (p *Provider) LoadEvent() (*model.Event, error) {
	var env actionsEnv
	if err := cleanenv.ReadEnv(&env); err != nil {
		return nil, errm.Wrap(err, "failed to read GitHub Actions environment")
	}

	var payload []byte
	if env.EventPath != "" {
		var err error
		payload, err = os.ReadFile(env.EventPath)
		if err != nil {
			return nil, errm.Wrap(err, "failed to read event payload")
		}
	}

	return p.ParseEvent(env.EventName, payload, env.Repository)
}

// ParseEvent resolves the commit range from a pull request or push event payload
func (p *Provider) ParseEvent(eventName string, payload []byte, repository string) (*model.Event, error) {
	event := &model.Event{
		Name:      eventName,
		ProjectID: repository,
	}

	switch eventName {
	case eventPullRequest, eventPullRequestTarget, eventPush:
	default:
		return nil, erro.Wrap(model.ErrUnsupportedEvent, "only pull requests and pushes are supported", "event", eventName)
	}

	if len(payload) == 0 {
		p.logger.Warn("empty event payload", "event", eventName)
		return event, nil
	}

	parsed, err := github.ParseWebHook(eventName, payload)
	if err != nil {
		return nil, errm.Wrap(err, "failed to parse event payload")
	}

	switch e := parsed.(type) {
	case *github.PullRequestEvent:
		event.Range = pullRequestRange(e.GetPullRequest())
		event.ProjectID = fallbackRepo(event.ProjectID, e.GetRepo())
	case *github.PullRequestTargetEvent:
		event.Range = pullRequestRange(e.GetPullRequest())
		event.ProjectID = fallbackRepo(event.ProjectID, e.GetRepo())
	case *github.PushEvent:
		event.Range = model.CommitRange{
			Base: e.GetBefore(),
			Head: e.GetAfter(),
		}
		if event.ProjectID == "" {
			event.ProjectID = e.GetRepo().GetFullName()
		}
	}

	p.logger.Debug("parsed event", "event", eventName, "base", event.Range.Base, "head", event.Range.Head)

	return event, nil
}

// CompareCommits retrieves the files changed between two commits
func (p *Provider) CompareCommits(ctx context.Context, projectID string, rng model.CommitRange) (*model.Comparison, error) {
	// Parse owner/repo from projectID
	parts := strings.Split(projectID, "/")
	if len(parts) != 2 {
		return nil, errm.New("invalid GitHub project ID format, expected 'owner/repo'")
	}
	owner, repo := parts[0], parts[1]

	comparison, resp, err := p.client.Repositories.CompareCommits(ctx, owner, repo, rng.Base, rng.Head, nil)
	if err != nil {
		return nil, errm.Wrap(err, "failed to compare commits")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errm.Errorf("the GitHub API for comparing commits returned %d, expected 200", resp.StatusCode)
	}

	result := &model.Comparison{
		Status: model.ComparisonStatus(comparison.GetStatus()),
	}

	if comparison.Files != nil {
		result.Files = make([]model.ChangeRecord, 0, len(comparison.Files))
		for _, file := range comparison.Files {
			result.Files = append(result.Files, model.ChangeRecord{
				Filename: file.GetFilename(),
				Status:   model.FileStatus(file.GetStatus()),
			})
		}
	}

	return result, nil
}

func pullRequestRange(pr *github.PullRequest) model.CommitRange {
	return model.CommitRange{
		Base: pr.GetBase().GetSHA(),
		Head: pr.GetHead().GetSHA(),
	}
}

func fallbackRepo(current string, repo *github.Repository) string {
	if current != "" {
		return current
	}
	return repo.GetFullName()
}
