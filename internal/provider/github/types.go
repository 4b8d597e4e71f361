package github

// actionsEnv is the part of the GitHub Actions runner environment used to resolve the event
type actionsEnv struct {
	EventName  string `env:"GITHUB_EVENT_NAME"`
	EventPath  string `env:"GITHUB_EVENT_PATH"`
	Repository string `env:"GITHUB_REPOSITORY"`
	APIURL     string `env:"GITHUB_API_URL"`
}

const (
	eventPullRequest       = "pull_request"
	eventPullRequestTarget = "pull_request_target"
	eventPush              = "push"
)
