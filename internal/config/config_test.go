package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/maxbolgarin/changed-files/internal/formatter"
	"github.com/maxbolgarin/changed-files/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("INPUT_FORMAT", "csv")
	t.Setenv("INPUT_EXCLUDE-FILE", ".changed-files-ignore")
	t.Setenv("INPUT_TOKEN", "secret")
	t.Setenv("INPUT_PROVIDER", "gitlab")
	t.Setenv("RUNNER_DEBUG", "1")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "csv", cfg.Format)
	assert.Equal(t, ".changed-files-ignore", cfg.ExcludeFile)
	assert.Equal(t, "secret", cfg.Provider.Token)
	assert.Equal(t, provider.GitLab, cfg.Provider.Type)
	assert.True(t, cfg.Debug)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
format: json
exclude_file: ignore.txt
base: main
head: feature
provider:
  type: bitbucket
  token: file-token
output:
  type: dotenv
  dotenv_file: out.env
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "ignore.txt", cfg.ExcludeFile)
	assert.Equal(t, "main", cfg.Base)
	assert.Equal(t, "feature", cfg.Head)
	assert.Equal(t, provider.Bitbucket, cfg.Provider.Type)
	assert.Equal(t, "file-token", cfg.Provider.Token)
	assert.Equal(t, "out.env", cfg.Output.DotenvPath)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
		anyErr  bool
	}{
		{name: "valid", cfg: Config{Format: "space-delimited", Provider: provider.Config{Token: "t"}}},
		{name: "missing format", cfg: Config{Provider: provider.Config{Token: "t"}}, wantErr: ErrMissingFormat},
		{name: "missing token", cfg: Config{Format: "csv"}, wantErr: ErrMissingToken},
		{name: "invalid format", cfg: Config{Format: "xml", Provider: provider.Config{Token: "t"}}, anyErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				var formatErr *formatter.UnsupportedFormatError
				require.ErrorAs(t, err, &formatErr)
			default:
				require.NoError(t, err)
			}
		})
	}
}
