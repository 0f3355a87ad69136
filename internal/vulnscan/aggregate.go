package vulnscan

import (
	"fmt"
	"sort"

	"github.com/lmsec/plugscan/pkg/catalog"
)

// Aggregate turns raw findings into a report: matched findings are
// deduplicated by (plugin, CVE) and ordered by severity, unmatched ones
// that need manual review surface as warnings instead of disappearing.
func Aggregate(findings []*Finding) *Report {
	rep := &Report{
		Summary: map[catalog.Severity]int{},
	}

	seen := map[string]bool{}
	matched := []*Finding{}

	for _, f := range findings {
		key := f.PluginID + "/" + f.Advisory.CVE

		if !f.Matched {
			if f.ManualReview && !seen["review:"+key] {
				seen["review:"+key] = true
				rep.Warnings = append(rep.Warnings,
					fmt.Sprintf("%s %s: %s", f.PluginID, f.Advisory.CVE, f.Reason))
			}
			continue
		}

		if seen[key] {
			continue
		}
		seen[key] = true

		matched = append(matched, f)
	}

	sortSeverity(matched)
	sort.Strings(rep.Warnings)

	rep.Findings = matched
	for _, f := range matched {
		rep.Summary[f.Advisory.Severity]++
	}

	return rep
}

// sortSeverity orders findings by severity rank descending, then CVE and
// plugin id ascending so repeated scans print identically.
func sortSeverity(findings []*Finding) {
	sort.Slice(findings, func(i, j int) bool {
		si := findings[i].Advisory.Severity.Rank()
		sj := findings[j].Advisory.Severity.Rank()
		if si != sj {
			return si > sj
		}

		if findings[i].Advisory.CVE != findings[j].Advisory.CVE {
			return findings[i].Advisory.CVE < findings[j].Advisory.CVE
		}

		return findings[i].PluginID < findings[j].PluginID
	})
}
