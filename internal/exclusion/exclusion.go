package exclusion

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/maxbolgarin/changed-files/internal/model"
	"github.com/maxbolgarin/errm"
)

const commentPrefix = "#"

// Set is an immutable collection of filenames to suppress.
// The zero value is a valid empty set.
type Set struct {
	patterns map[string]struct{}
}

// Parse builds a set from exclusion file content, one filename per line.
// Lines are trimmed; blank lines and lines starting with '#' are ignored.
func Parse(content string) Set {
	patterns := make(map[string]struct{})

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		patterns[line] = struct{}{}
	}

	return Set{patterns: patterns}
}

// Load reads an exclusion file. An empty path or a missing file is an empty set.
// Any other failure returns an empty set together with the error so the caller
// can decide to carry on without exclusions.
func Load(path string) (Set, error) {
	if path == "" {
		return Set{}, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Set{}, nil
		}
		return Set{}, errm.Wrap(err, "failed to read exclude file")
	}

	return Parse(string(content)), nil
}

// Has reports whether filename is listed verbatim
func (s Set) Has(filename string) bool {
	_, ok := s.patterns[filename]
	return ok
}

// Len returns the number of patterns
func (s Set) Len() int {
	return len(s.patterns)
}

// Filter decides per change record whether it is excluded and reports every exclusion
type Filter struct {
	set        Set
	onExcluded func(filename string)
}

// NewFilter creates a filter over set. onExcluded may be nil.
func NewFilter(set Set, onExcluded func(filename string)) *Filter {
	return &Filter{
		set:        set,
		onExcluded: onExcluded,
	}
}

// Excluded reports whether the record is suppressed
func (f *Filter) Excluded(record model.ChangeRecord) bool {
	if !f.set.Has(record.Filename) {
		return false
	}
	if f.onExcluded != nil {
		f.onExcluded(record.Filename)
	}
	return true
}
