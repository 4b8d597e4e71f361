package interfaces

import (
	"context"

	"github.com/maxbolgarin/changed-files/internal/model"
)

// ChangesProvider defines the interface for different VCS providers (GitHub, GitLab, etc.)
type ChangesProvider interface {
	// LoadEvent reads the CI environment of the provider and returns the triggering event
	LoadEvent() (*model.Event, error)

	// CompareCommits returns the files changed between base and head
	CompareCommits(ctx context.Context, projectID string, rng model.CommitRange) (*model.Comparison, error)
}

// Reporter publishes the result of a run to the host automation environment
type Reporter interface {
	SetOutputs(outputs model.FormattedOutput) error
	Fail(err error)
}
