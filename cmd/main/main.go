package main

import (
	"github.com/alecthomas/kingpin/v2"
	"github.com/maxbolgarin/changed-files/internal/app"
	"github.com/maxbolgarin/changed-files/internal/config"
	"github.com/maxbolgarin/changed-files/internal/provider"
	"github.com/maxbolgarin/contem"
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"
)

var (
	Version, Branch, Commit, BuildDate string
)

var (
	configPath   = kingpin.Flag("config", "path to config file").Short('c').String()
	format       = kingpin.Flag("format", "output format: space-delimited, csv or json").Short('f').String()
	excludeFile  = kingpin.Flag("exclude-file", "path to a file with filenames to exclude").Short('e').String()
	providerType = kingpin.Flag("provider", "VCS provider: github, gitlab or bitbucket").String()
	base         = kingpin.Flag("base", "base commit, overrides the CI event").String()
	head         = kingpin.Flag("head", "head commit, overrides the CI event").String()
	repository   = kingpin.Flag("repository", "repository, e.g. owner/repo, overrides the CI event").String()
)

func main() {
	kingpin.Version(lang.Check(Version, "dev"))
	kingpin.Parse()

	var err error
	ctx := contem.New(contem.WithLogger(logze.DefaultPtr()), contem.Exit(&err))
	defer ctx.Shutdown()
	err = run(ctx)
	if err != nil {
		logze.DefaultPtr().Error("cannot run", "error", err)
	}
}

func run(ctx contem.Context) error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return erro.Wrap(err, "load config")
	}
	applyFlags(&cfg)

	logze.Init(logze.C().WithConsole().WithLevel(lang.If(cfg.Debug, logze.LevelDebug, logze.LevelInfo)))
	logze.Debug("starting", "version", Version, "branch", Branch, "commit", Commit, "build_date", BuildDate)

	changedFiles, err := app.New(cfg)
	if err != nil {
		return erro.Wrap(err, "new app")
	}

	if err := changedFiles.Run(ctx); err != nil {
		return erro.Wrap(err, "run")
	}

	return nil
}

func applyFlags(cfg *config.Config) {
	cfg.Format = lang.Check(*format, cfg.Format)
	cfg.ExcludeFile = lang.Check(*excludeFile, cfg.ExcludeFile)
	cfg.Provider.Type = lang.Check(provider.ProviderType(*providerType), cfg.Provider.Type)
	cfg.Base = lang.Check(*base, cfg.Base)
	cfg.Head = lang.Check(*head, cfg.Head)
	cfg.Repository = lang.Check(*repository, cfg.Repository)
}
