package gitlab

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/maxbolgarin/changed-files/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// rate limiter probe issued by the client before the first call
		if r.URL.Path == "/api/v4/" || r.URL.Path == "/api/v4" {
			w.WriteHeader(http.StatusOK)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	p, err := New(model.ProviderConfig{Token: "test-token", BaseURL: server.URL})
	require.NoError(t, err)
	return p
}

func TestEventFromEnv(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {})

	tests := []struct {
		name string
		env  ciEnv
		want model.CommitRange
	}{
		{
			name: "merge request",
			env: ciEnv{
				PipelineSource:  "merge_request_event",
				ProjectID:       "42",
				CommitSHA:       "head",
				CommitBeforeSHA: "0000000000000000000000000000000000000000",
				MRDiffBaseSHA:   "base",
			},
			want: model.CommitRange{Base: "base", Head: "head"},
		},
		{
			name: "push",
			env: ciEnv{
				PipelineSource:  "push",
				ProjectID:       "42",
				CommitSHA:       "head",
				CommitBeforeSHA: "before",
			},
			want: model.CommitRange{Base: "before", Head: "head"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := p.eventFromEnv(tt.env)
			require.NoError(t, err)
			assert.Equal(t, "42", event.ProjectID)
			assert.Equal(t, tt.env.PipelineSource, event.Name)
			assert.Equal(t, tt.want, event.Range)
		})
	}

	_, err := p.eventFromEnv(ciEnv{PipelineSource: "schedule"})
	require.ErrorIs(t, err, model.ErrUnsupportedEvent)
}

func TestLoadEvent(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {})

	t.Setenv("CI_PIPELINE_SOURCE", "push")
	t.Setenv("CI_PROJECT_ID", "7")
	t.Setenv("CI_COMMIT_SHA", "head")
	t.Setenv("CI_COMMIT_BEFORE_SHA", "before")

	event, err := p.LoadEvent()
	require.NoError(t, err)
	assert.Equal(t, "7", event.ProjectID)
	assert.Equal(t, model.CommitRange{Base: "before", Head: "head"}, event.Range)
}

func TestCompareCommits(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v4/projects/42/repository/compare", r.URL.Path)
		assert.Equal(t, "test-token", r.Header.Get("PRIVATE-TOKEN"))

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("from") == "head" {
			assert.Equal(t, "base", r.URL.Query().Get("to"))
			fmt.Fprint(w, `{"commits": [], "diffs": []}`)
			return
		}
		assert.Equal(t, "base", r.URL.Query().Get("from"))
		assert.Equal(t, "head", r.URL.Query().Get("to"))
		fmt.Fprint(w, `{
  "commits": [{"id": "head"}],
  "diffs": [
    {"old_path": "a.txt", "new_path": "a.txt", "new_file": true},
    {"old_path": "b.txt", "new_path": "b.txt"},
    {"old_path": "c.txt", "new_path": "c.txt", "deleted_file": true},
    {"old_path": "old-d.txt", "new_path": "d.txt", "renamed_file": true}
  ],
  "compare_same_ref": false
}`)
	})

	cmp, err := p.CompareCommits(context.Background(), "42", model.CommitRange{Base: "base", Head: "head"})
	require.NoError(t, err)

	assert.Equal(t, model.ComparisonAhead, cmp.Status)
	assert.Equal(t, []model.ChangeRecord{
		{Filename: "a.txt", Status: model.FileStatusAdded},
		{Filename: "b.txt", Status: model.FileStatusModified},
		{Filename: "c.txt", Status: model.FileStatusRemoved},
		{Filename: "d.txt", Status: model.FileStatusRenamed},
	}, cmp.Files)
}

func TestCompareCommitsNotAhead(t *testing.T) {
	tests := []struct {
		name string
		body string
		want model.ComparisonStatus
	}{
		{name: "same ref", body: `{"commits": [], "diffs": [], "compare_same_ref": true}`, want: model.ComparisonIdentical},
		{name: "no commits", body: `{"commits": [], "diffs": []}`, want: model.ComparisonBehind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, tt.body)
			})

			cmp, err := p.CompareCommits(context.Background(), "42", model.CommitRange{Base: "a", Head: "b"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, cmp.Status)
			assert.NotNil(t, cmp.Files)
		})
	}
}

func TestCompareCommitsDiverged(t *testing.T) {
	var calls []string
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to")
		calls = append(calls, from+".."+to)

		w.Header().Set("Content-Type", "application/json")
		if from == "rewritten" {
			fmt.Fprint(w, `{"commits": [{"id": "before"}], "diffs": [{"old_path": "a.txt", "new_path": "a.txt"}]}`)
			return
		}
		fmt.Fprint(w, `{"commits": [{"id": "rewritten"}], "diffs": [{"old_path": "b.txt", "new_path": "b.txt"}]}`)
	})

	cmp, err := p.CompareCommits(context.Background(), "42", model.CommitRange{Base: "before", Head: "rewritten"})
	require.NoError(t, err)

	assert.Equal(t, model.ComparisonDiverged, cmp.Status)
	assert.Equal(t, []string{"before..rewritten", "rewritten..before"}, calls)
}

func TestCompareCommitsReverseFailure(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("from") == "head" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"commits": [{"id": "head"}], "diffs": []}`)
	})

	_, err := p.CompareCommits(context.Background(), "42", model.CommitRange{Base: "base", Head: "head"})
	require.Error(t, err)
}
