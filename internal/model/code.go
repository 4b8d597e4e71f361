package model

// ProviderConfig represents provider-specific configuration
type ProviderConfig struct {
	BaseURL string
	Token   string
}

// FileStatus is the change status of a single file within a commit range
type FileStatus string

const (
	FileStatusAdded    FileStatus = "added"
	FileStatusModified FileStatus = "modified"
	FileStatusRemoved  FileStatus = "removed"
	FileStatusRenamed  FileStatus = "renamed"
)

// SupportedFileStatuses lists every status the classifier knows how to bucket
var SupportedFileStatuses = []FileStatus{FileStatusAdded, FileStatusModified, FileStatusRemoved, FileStatusRenamed}

// ChangeRecord is one file touched by a commit range
type ChangeRecord struct {
	Filename string     `json:"filename"`
	Status   FileStatus `json:"status"`
}

// ComparisonStatus describes how head relates to base
type ComparisonStatus string

const (
	ComparisonAhead     ComparisonStatus = "ahead"
	ComparisonBehind    ComparisonStatus = "behind"
	ComparisonIdentical ComparisonStatus = "identical"
	ComparisonDiverged  ComparisonStatus = "diverged"
)

// Comparison is the result of comparing two commits on the hosted VCS.
// Files is nil when the provider returned no file list at all.
type Comparison struct {
	Status ComparisonStatus
	Files  []ChangeRecord
}
