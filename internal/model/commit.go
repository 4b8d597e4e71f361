package model

import "strings"

const zeroSHA = "0000000000000000000000000000000000000000"

// CommitRange is the (base, head) pair whose changes are classified
type CommitRange struct {
	Base string `json:"base"`
	Head string `json:"head"`
}

// IsComplete reports whether both ends of the range are known.
// An all-zero SHA (a push that created the branch) counts as unknown.
func (r CommitRange) IsComplete() bool {
	return isKnownRevision(r.Base) && isKnownRevision(r.Head)
}

// Event is the CI event that triggered the run
type Event struct {
	Name      string
	ProjectID string
	Range     CommitRange
}

func isKnownRevision(rev string) bool {
	rev = strings.TrimSpace(rev)
	return rev != "" && rev != zeroSHA
}
