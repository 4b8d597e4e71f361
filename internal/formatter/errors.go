package formatter

import "fmt"

// UnsupportedFormatError is returned for a format outside of SupportedFormats
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format '%s', expected 'space-delimited', 'csv' or 'json'", e.Format)
}

// SpaceInFilenameError is returned when a space-delimited output is requested
// but a filename contains the delimiter
type SpaceInFilenameError struct {
	Filename string
}

func (e *SpaceInFilenameError) Error() string {
	return fmt.Sprintf("file '%s' includes a space, consider using a different output format or removing spaces from your filenames", e.Filename)
}
