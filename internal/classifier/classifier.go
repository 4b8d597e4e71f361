package classifier

import (
	"github.com/maxbolgarin/changed-files/internal/model"
)

// Filter decides whether a change record is left out of classification
type Filter interface {
	Excluded(record model.ChangeRecord) bool
}

type noFilter struct{}

func (noFilter) Excluded(model.ChangeRecord) bool { return false }

// Classify buckets records by change status in a single forward pass.
// Records rejected by filter only land in Skipped. A record with an unknown
// status aborts classification and no buckets are returned.
func Classify(records []model.ChangeRecord, filter Filter) (model.Buckets, error) {
	if filter == nil {
		filter = noFilter{}
	}

	var acc accumulator
	for _, record := range records {
		if filter.Excluded(record) {
			acc.skipped = append(acc.skipped, record.Filename)
			continue
		}
		if err := acc.add(record); err != nil {
			return model.Buckets{}, err
		}
	}

	return acc.buckets(), nil
}

type accumulator struct {
	all, added, modified, removed, renamed, addedModified, skipped []string
}

func (a *accumulator) add(record model.ChangeRecord) error {
	name := record.Filename

	switch record.Status {
	case model.FileStatusAdded:
		a.added = append(a.added, name)
		a.addedModified = append(a.addedModified, name)
	case model.FileStatusModified:
		a.modified = append(a.modified, name)
		a.addedModified = append(a.addedModified, name)
	case model.FileStatusRemoved:
		a.removed = append(a.removed, name)
	case model.FileStatusRenamed:
		a.renamed = append(a.renamed, name)
	default:
		return &UnsupportedStatusError{Filename: name, Status: record.Status}
	}

	a.all = append(a.all, name)
	return nil
}

func (a *accumulator) buckets() model.Buckets {
	return model.Buckets{
		All:           nonNil(a.all),
		Added:         nonNil(a.added),
		Modified:      nonNil(a.modified),
		Removed:       nonNil(a.removed),
		Renamed:       nonNil(a.renamed),
		AddedModified: nonNil(a.addedModified),
		Skipped:       nonNil(a.skipped),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
