package bitbucket

// pipelinesEnv is the part of the Bitbucket Pipelines default variables used to resolve the event
type pipelinesEnv struct {
	Commit            string `env:"BITBUCKET_COMMIT"`
	RepoFullName      string `env:"BITBUCKET_REPO_FULL_NAME"`
	PRID              string `env:"BITBUCKET_PR_ID"`
	PRDestinationName string `env:"BITBUCKET_PR_DESTINATION_BRANCH"`
}

const (
	eventPullRequest = "pull_request"
	eventPush        = "push"
)

type bitbucketCommitFile struct {
	Path string `json:"path"`
}

type bitbucketDiffStat struct {
	Status string               `json:"status"`
	Old    *bitbucketCommitFile `json:"old"`
	New    *bitbucketCommitFile `json:"new"`
}

type bitbucketDiffStatPage struct {
	Values []bitbucketDiffStat `json:"values"`
	Next   string              `json:"next"`
	Size   int                 `json:"size"`
}

type bitbucketCommit struct {
	Hash string `json:"hash"`
}

type bitbucketCommitsPage struct {
	Values []bitbucketCommit `json:"values"`
	Next   string            `json:"next"`
}
