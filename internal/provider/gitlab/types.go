package gitlab

// ciEnv is the part of the GitLab CI/CD predefined variables used to resolve the event
type ciEnv struct {
	PipelineSource  string `env:"CI_PIPELINE_SOURCE"`
	ProjectID       string `env:"CI_PROJECT_ID"`
	APIURL          string `env:"CI_API_V4_URL"`
	CommitSHA       string `env:"CI_COMMIT_SHA"`
	CommitBeforeSHA string `env:"CI_COMMIT_BEFORE_SHA"`
	MRDiffBaseSHA   string `env:"CI_MERGE_REQUEST_DIFF_BASE_SHA"`
}

const (
	sourceMergeRequest = "merge_request_event"
	sourcePush         = "push"
)
