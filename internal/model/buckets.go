package model

// BucketName is the name of a bucket and of the step output it is published as
type BucketName string

const (
	BucketAll           BucketName = "all"
	BucketAdded         BucketName = "added"
	BucketModified      BucketName = "modified"
	BucketRemoved       BucketName = "removed"
	BucketRenamed       BucketName = "renamed"
	BucketAddedModified BucketName = "added_modified"
	BucketSkipped       BucketName = "skipped"

	// OutputDeleted mirrors BucketRemoved for older consumers
	OutputDeleted BucketName = "deleted"
)

// BucketNames is the order in which buckets are rendered, logged and published
var BucketNames = []BucketName{
	BucketAll,
	BucketAdded,
	BucketModified,
	BucketRemoved,
	BucketRenamed,
	BucketAddedModified,
	BucketSkipped,
}

// Buckets holds changed filenames grouped by classification.
// Every bucket keeps the order in which files appeared in the comparison.
type Buckets struct {
	All           []string
	Added         []string
	Modified      []string
	Removed       []string
	Renamed       []string
	AddedModified []string
	Skipped       []string
}

// Get returns the bucket with the given name, nil for unknown names
func (b Buckets) Get(name BucketName) []string {
	switch name {
	case BucketAll:
		return b.All
	case BucketAdded:
		return b.Added
	case BucketModified:
		return b.Modified
	case BucketRemoved, OutputDeleted:
		return b.Removed
	case BucketRenamed:
		return b.Renamed
	case BucketAddedModified:
		return b.AddedModified
	case BucketSkipped:
		return b.Skipped
	}
	return nil
}

// FormattedOutput maps an output name to its rendered value
type FormattedOutput map[BucketName]string

// Label returns a human readable title used in log lines
func (n BucketName) Label() string {
	switch n {
	case BucketAll:
		return "All"
	case BucketAdded:
		return "Added"
	case BucketModified:
		return "Modified"
	case BucketRemoved:
		return "Removed"
	case BucketRenamed:
		return "Renamed"
	case BucketAddedModified:
		return "Added or modified"
	case BucketSkipped:
		return "Skipped"
	case OutputDeleted:
		return "Deleted"
	}
	return string(n)
}
