package vulnscan

import (
	"time"

	"github.com/lmsec/plugscan/pkg/catalog"
)

// Finding is the outcome of evaluating one detected plugin against one
// advisory. Unmatched findings are kept through matching so the verdict
// trail stays auditable, the Aggregator filters them out of the report.
type Finding struct {
	PluginID         string
	InstalledVersion string

	Advisory     *catalog.Advisory
	Matched      bool
	Reason       string
	ManualReview bool
}

// Report is the final result of a scan. Findings hold matched advisories
// only, deduplicated and ordered by severity. Warnings carry everything an
// operator must not lose sight of: skipped records and constraints needing
// manual review.
type Report struct {
	Target    string
	ScannedAt time.Time

	// MoodleRelease is only known for filesystem scans, remote targets do
	// not expose it reliably.
	MoodleRelease string `json:",omitempty"`

	Findings []*Finding
	Summary  map[catalog.Severity]int
	Warnings []string
}

// Vulnerable reports whether the scan matched any advisory. It decides the
// process exit code.
func (r *Report) Vulnerable() bool {
	return len(r.Findings) > 0
}
