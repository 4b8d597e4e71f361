package app

import (
	"context"

	"github.com/maxbolgarin/abstract"
	"github.com/maxbolgarin/changed-files/internal/classifier"
	"github.com/maxbolgarin/changed-files/internal/config"
	"github.com/maxbolgarin/changed-files/internal/exclusion"
	"github.com/maxbolgarin/changed-files/internal/formatter"
	"github.com/maxbolgarin/changed-files/internal/model"
	"github.com/maxbolgarin/changed-files/internal/model/interfaces"
	"github.com/maxbolgarin/changed-files/internal/output"
	"github.com/maxbolgarin/changed-files/internal/provider"
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"
)

// ChangedFiles resolves, classifies and publishes the files changed by a CI event
type ChangedFiles struct {
	provider interfaces.ChangesProvider
	reporter interfaces.Reporter

	cfg config.Config
	log logze.Logger
}

// New creates the application from configuration
func New(cfg config.Config) (*ChangedFiles, error) {
	reporter, err := output.New(cfg.Output)
	if err != nil {
		return nil, erro.Wrap(err, "failed to create reporter")
	}

	if err := cfg.Validate(); err != nil {
		reporter.Fail(err)
		return nil, err
	}

	vcs, err := provider.NewProvider(cfg.Provider)
	if err != nil {
		reporter.Fail(err)
		return nil, erro.Wrap(err, "failed to create VCS provider")
	}

	return newWith(cfg, vcs, reporter), nil
}

func newWith(cfg config.Config, vcs interfaces.ChangesProvider, reporter interfaces.Reporter) *ChangedFiles {
	return &ChangedFiles{
		provider: vcs,
		reporter: reporter,
		cfg:      cfg,
		log:      logze.With("component", "app"),
	}
}

// Run performs one classification. Outputs are published only when every step
// succeeds; otherwise the failure is reported and returned.
func (s *ChangedFiles) Run(ctx context.Context) error {
	outputs, err := s.run(ctx)
	if err != nil {
		s.reporter.Fail(err)
		return err
	}

	if err := s.reporter.SetOutputs(outputs); err != nil {
		s.reporter.Fail(err)
		return erro.Wrap(err, "failed to set outputs")
	}

	return nil
}

func (s *ChangedFiles) run(ctx context.Context) (model.FormattedOutput, error) {
	format, err := formatter.ParseFormat(s.cfg.Format)
	if err != nil {
		return nil, err
	}

	event, err := s.resolveEvent()
	if err != nil {
		return nil, err
	}

	s.log.Infof("Base commit: %s", event.Range.Base)
	s.log.Infof("Head commit: %s", event.Range.Head)

	if !event.Range.IsComplete() {
		return nil, erro.Wrap(model.ErrMissingRange, "cannot resolve commit range", "event", event.Name)
	}

	files, err := s.fetchChanges(ctx, event)
	if err != nil {
		return nil, err
	}

	filter := exclusion.NewFilter(s.loadExclusions(), func(filename string) {
		s.log.Infof("Excluding file: %s", filename)
	})

	buckets, err := classifier.Classify(files, filter)
	if err != nil {
		return nil, err
	}

	outputs, err := formatter.Render(buckets, format)
	if err != nil {
		return nil, err
	}
	outputs[model.OutputDeleted] = outputs[model.BucketRemoved]

	for _, name := range model.BucketNames {
		s.log.Infof("%s: %s", name.Label(), outputs[name])
	}
	s.log.Infof("%s: %s", model.OutputDeleted.Label(), outputs[model.OutputDeleted])

	return outputs, nil
}

// resolveEvent loads the CI event and applies explicit overrides
func (s *ChangedFiles) resolveEvent() (*model.Event, error) {
	cfg := s.cfg

	event, err := s.provider.LoadEvent()
	if err != nil {
		// explicit base, head and repository make the event optional
		if cfg.Base == "" || cfg.Head == "" || cfg.Repository == "" {
			return nil, erro.Wrap(err, "failed to load event")
		}
		s.log.Debug("using explicit commit range", "reason", err.Error())
		event = &model.Event{Name: "manual"}
	}

	event.Range.Base = lang.Check(cfg.Base, event.Range.Base)
	event.Range.Head = lang.Check(cfg.Head, event.Range.Head)
	event.ProjectID = lang.Check(cfg.Repository, event.ProjectID)

	if event.ProjectID == "" {
		return nil, erro.New("repository is unknown, set the repository input")
	}

	return event, nil
}

func (s *ChangedFiles) fetchChanges(ctx context.Context, event *model.Event) ([]model.ChangeRecord, error) {
	timer := abstract.StartTimer()

	cmp, err := s.provider.CompareCommits(ctx, event.ProjectID, event.Range)
	if err != nil {
		return nil, erro.Wrap(err, "failed to compare commits")
	}

	s.log.Debug("compared commits", "project", event.ProjectID, "status", cmp.Status,
		"files", len(cmp.Files), "elapsed", timer.ElapsedTime().String())

	if cmp.Status != model.ComparisonAhead {
		return nil, erro.Wrap(model.ErrNotAhead, "unexpected comparison", "status", cmp.Status)
	}
	if cmp.Files == nil {
		return nil, model.ErrNoFiles
	}

	return cmp.Files, nil
}

// loadExclusions never fails the run, an unreadable file means no exclusions
func (s *ChangedFiles) loadExclusions() exclusion.Set {
	if s.cfg.ExcludeFile == "" {
		s.log.Info("exclude-file not present")
		return exclusion.Set{}
	}

	set, err := exclusion.Load(s.cfg.ExcludeFile)
	if err != nil {
		s.log.Info("cannot read exclude file, nothing will be excluded", "path", s.cfg.ExcludeFile, "error", err)
		return exclusion.Set{}
	}

	s.log.Debug("loaded exclusions", "path", s.cfg.ExcludeFile, "count", set.Len())
	return set
}
