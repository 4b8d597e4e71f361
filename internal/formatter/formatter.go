package formatter

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/maxbolgarin/abstract"
	"github.com/maxbolgarin/changed-files/internal/model"
	"github.com/maxbolgarin/errm"
)

// Format identifies how a bucket is turned into a single string
type Format string

const (
	FormatSpaceDelimited Format = "space-delimited"
	FormatCSV            Format = "csv"
	FormatJSON           Format = "json"
)

// SupportedFormats lists every accepted format
var SupportedFormats = []Format{FormatSpaceDelimited, FormatCSV, FormatJSON}

// json mirrors JSON.stringify: no HTML escaping
var json = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// encoder renders one bucket. check, when set, runs once per filename
// before anything is encoded.
type encoder struct {
	encode func(files []string) (string, error)
	check  func(filename string) error
}

var encoders = abstract.NewSafeMap(map[Format]encoder{
	FormatSpaceDelimited: {
		encode: joinWith(" "),
		check: func(filename string) error {
			if strings.Contains(filename, " ") {
				return &SpaceInFilenameError{Filename: filename}
			}
			return nil
		},
	},
	FormatCSV: {
		encode: joinWith(","),
	},
	FormatJSON: {
		encode: encodeJSON,
	},
})

// ParseFormat validates a user supplied format
func ParseFormat(raw string) (Format, error) {
	f := Format(raw)
	if _, ok := encoders.Lookup(f); !ok {
		return "", &UnsupportedFormatError{Format: raw}
	}
	return f, nil
}

// Render encodes every bucket of model.BucketNames with the given format.
// Nothing is rendered if any classified filename cannot be represented.
func Render(buckets model.Buckets, format Format) (model.FormattedOutput, error) {
	enc, ok := encoders.Lookup(format)
	if !ok {
		return nil, &UnsupportedFormatError{Format: string(format)}
	}

	if enc.check != nil {
		for _, name := range model.BucketNames {
			if name == model.BucketSkipped {
				continue
			}
			for _, filename := range buckets.Get(name) {
				if err := enc.check(filename); err != nil {
					return nil, err
				}
			}
		}
	}

	out := make(model.FormattedOutput, len(model.BucketNames))
	for _, name := range model.BucketNames {
		value, err := enc.encode(buckets.Get(name))
		if err != nil {
			return nil, errm.Wrap(err, "failed to encode "+string(name))
		}
		out[name] = value
	}

	return out, nil
}

func joinWith(sep string) func([]string) (string, error) {
	return func(files []string) (string, error) {
		return strings.Join(files, sep), nil
	}
}

func encodeJSON(files []string) (string, error) {
	if files == nil {
		files = []string{}
	}
	return json.MarshalToString(files)
}
