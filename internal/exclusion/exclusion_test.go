package exclusion

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/maxbolgarin/changed-files/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		included []string
		excluded []string
		size     int
	}{
		{
			name:    "empty content",
			content: "",
			size:    0,
		},
		{
			name:     "trims whitespace",
			content:  "  a.txt  \n\tb/c.go\t\n",
			included: []string{"a.txt", "b/c.go"},
			excluded: []string{"  a.txt  "},
			size:     2,
		},
		{
			name:     "skips blank and comment lines",
			content:  "# generated files\n\n   \n  # indented comment\nvendor/lib.go\n",
			included: []string{"vendor/lib.go"},
			excluded: []string{"# generated files", "# indented comment"},
			size:     1,
		},
		{
			name:     "windows line endings",
			content:  "a.txt\r\nb.txt\r\n",
			included: []string{"a.txt", "b.txt"},
			size:     2,
		},
		{
			name:     "hash inside a name is kept",
			content:  "docs/c#.md\n",
			included: []string{"docs/c#.md"},
			size:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := Parse(tt.content)
			assert.Equal(t, tt.size, set.Len())
			for _, name := range tt.included {
				assert.True(t, set.Has(name), name)
			}
			for _, name := range tt.excluded {
				assert.False(t, set.Has(name), name)
			}
		})
	}
}

func TestParseLongLine(t *testing.T) {
	long := strings.Repeat("x", 2*1024*1024)
	set := Parse("a.txt\n" + long + "\nb.txt\n")

	assert.Equal(t, 3, set.Len())
	assert.True(t, set.Has("a.txt"))
	assert.True(t, set.Has(long))
	assert.True(t, set.Has("b.txt"))
}

func TestSetExactMatch(t *testing.T) {
	set := Parse("src/main.go\n")

	assert.True(t, set.Has("src/main.go"))
	assert.False(t, set.Has("src/Main.go"))
	assert.False(t, set.Has("src/main.go "))
	assert.False(t, set.Has("src/main.g"))
	assert.False(t, set.Has("./src/main.go"))
}

func TestZeroSet(t *testing.T) {
	var set Set
	assert.Equal(t, 0, set.Len())
	assert.False(t, set.Has("anything"))
}

func TestLoad(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		set, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 0, set.Len())
	})

	t.Run("missing file", func(t *testing.T) {
		set, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
		require.NoError(t, err)
		assert.Equal(t, 0, set.Len())
	})

	t.Run("existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".changed-files-ignore")
		require.NoError(t, os.WriteFile(path, []byte("# skip\nb.txt\n"), 0o600))

		set, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 1, set.Len())
		assert.True(t, set.Has("b.txt"))
	})

	t.Run("unreadable path", func(t *testing.T) {
		set, err := Load(t.TempDir())
		require.Error(t, err)
		assert.Equal(t, 0, set.Len())
	})
}

func TestFilter(t *testing.T) {
	var reported []string
	filter := NewFilter(Parse("b.txt\nd.txt"), func(filename string) {
		reported = append(reported, filename)
	})

	records := []model.ChangeRecord{
		{Filename: "a.txt", Status: model.FileStatusAdded},
		{Filename: "b.txt", Status: model.FileStatusModified},
		{Filename: "c.txt", Status: model.FileStatusRemoved},
		{Filename: "d.txt", Status: "copied"},
	}

	var excluded []string
	for _, record := range records {
		if filter.Excluded(record) {
			excluded = append(excluded, record.Filename)
		}
	}

	assert.Equal(t, []string{"b.txt", "d.txt"}, excluded)
	assert.Equal(t, []string{"b.txt", "d.txt"}, reported)
}

func TestFilterWithoutHook(t *testing.T) {
	filter := NewFilter(Parse("a.txt"), nil)
	assert.True(t, filter.Excluded(model.ChangeRecord{Filename: "a.txt"}))
	assert.False(t, filter.Excluded(model.ChangeRecord{Filename: "b.txt"}))
}
