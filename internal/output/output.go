package output

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/maxbolgarin/changed-files/internal/model"
	"github.com/maxbolgarin/changed-files/internal/model/interfaces"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/logze/v2"
)

var (
	_ interfaces.Reporter = (*GitHubReporter)(nil)
	_ interfaces.Reporter = (*DotenvReporter)(nil)
	_ interfaces.Reporter = (*LogReporter)(nil)
)

// New creates a reporter based on the configuration
func New(cfg Config) (interfaces.Reporter, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, erro.Wrap(err, "validate config")
	}

	switch cfg.Type {
	case GitHub:
		return NewGitHubReporter(cfg.GitHubPath, os.Stdout), nil
	case Dotenv:
		return NewDotenvReporter(cfg.DotenvPath, cfg.DotenvPrefix, os.Stderr), nil
	case Log:
		return NewLogReporter(os.Stdout, os.Stderr), nil
	}
	return nil, erro.New("unsupported output type: %s", cfg.Type)
}

// GitHubReporter writes step outputs to the file referenced by GITHUB_OUTPUT
// and reports failures as workflow error commands
type GitHubReporter struct {
	path    string
	console io.Writer
	log     logze.Logger
}

func NewGitHubReporter(path string, console io.Writer) *GitHubReporter {
	return &GitHubReporter{
		path:    path,
		console: console,
		log:     logze.With("component", "reporter", "type", GitHub),
	}
}

func (r *GitHubReporter) SetOutputs(outputs model.FormattedOutput) error {
	var b strings.Builder
	for _, name := range sortedNames(outputs) {
		block, err := heredoc(string(name), outputs[name])
		if err != nil {
			return err
		}
		b.WriteString(block)
	}

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errm.Wrap(err, "failed to open GITHUB_OUTPUT file")
	}
	defer f.Close()

	if _, err := f.WriteString(b.String()); err != nil {
		return errm.Wrap(err, "failed to write GITHUB_OUTPUT file")
	}

	r.log.Debug("outputs written", "count", len(outputs))
	return nil
}

func (r *GitHubReporter) Fail(err error) {
	fmt.Fprintf(r.console, "::error::%s\n", escapeCommandData(err.Error()))
}

// heredoc builds a multiline-safe name<<delimiter block as understood by the runner
func heredoc(name, value string) (string, error) {
	delimiter := "ghadelimiter_" + uuid.NewString()
	if strings.Contains(name, delimiter) || strings.Contains(value, delimiter) {
		return "", errm.Errorf("unexpected input: name or value contains delimiter %s", delimiter)
	}
	return name + "<<" + delimiter + "\n" + value + "\n" + delimiter + "\n", nil
}

func escapeCommandData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	return strings.ReplaceAll(s, "\n", "%0A")
}

// DotenvReporter writes outputs as KEY="value" lines, the format GitLab
// dotenv reports and most CI systems can source
type DotenvReporter struct {
	path    string
	prefix  string
	console io.Writer
	log     logze.Logger
}

func NewDotenvReporter(path, prefix string, console io.Writer) *DotenvReporter {
	return &DotenvReporter{
		path:    path,
		prefix:  prefix,
		console: console,
		log:     logze.With("component", "reporter", "type", Dotenv),
	}
}

func (r *DotenvReporter) SetOutputs(outputs model.FormattedOutput) error {
	env := make(map[string]string, len(outputs))
	for name, value := range outputs {
		env[r.prefix+strings.ToUpper(string(name))] = value
	}

	if err := godotenv.Write(env, r.path); err != nil {
		return errm.Wrap(err, "failed to write dotenv file")
	}

	r.log.Debug("outputs written", "path", r.path, "count", len(outputs))
	return nil
}

func (r *DotenvReporter) Fail(err error) {
	fmt.Fprintf(r.console, "error: %s\n", err.Error())
}

// LogReporter prints name=value lines, useful when running outside of CI
type LogReporter struct {
	out     io.Writer
	console io.Writer
}

func NewLogReporter(out, console io.Writer) *LogReporter {
	return &LogReporter{
		out:     out,
		console: console,
	}
}

func (r *LogReporter) SetOutputs(outputs model.FormattedOutput) error {
	for _, name := range sortedNames(outputs) {
		if _, err := fmt.Fprintf(r.out, "%s=%s\n", name, outputs[name]); err != nil {
			return errm.Wrap(err, "failed to print outputs")
		}
	}
	return nil
}

func (r *LogReporter) Fail(err error) {
	fmt.Fprintf(r.console, "error: %s\n", err.Error())
}

// sortedNames returns known bucket names in render order followed by aliases
func sortedNames(outputs model.FormattedOutput) []model.BucketName {
	names := make([]model.BucketName, 0, len(outputs))
	for _, name := range model.BucketNames {
		if _, ok := outputs[name]; ok {
			names = append(names, name)
		}
	}

	var extra []model.BucketName
	for name := range outputs {
		if !slices.Contains(model.BucketNames, name) {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)

	return append(names, extra...)
}
