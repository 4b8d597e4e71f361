package classifier

import (
	"fmt"
	"strings"

	"github.com/maxbolgarin/changed-files/internal/model"
)

// UnsupportedStatusError is returned when a change record carries a status
// outside of model.SupportedFileStatuses
type UnsupportedStatusError struct {
	Filename string
	Status   model.FileStatus
}

func (e *UnsupportedStatusError) Error() string {
	expected := make([]string, 0, len(model.SupportedFileStatuses))
	for _, status := range model.SupportedFileStatuses {
		expected = append(expected, fmt.Sprintf("'%s'", status))
	}
	return fmt.Sprintf("file '%s' has an unsupported file status '%s', expected one of %s",
		e.Filename, e.Status, strings.Join(expected, ", "))
}
