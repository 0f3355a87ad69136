package vulnscan

import (
	"strings"

	"github.com/lmsec/plugscan/pkg/catalog"
)

// MatchPlugin evaluates one detected plugin against the catalog. Every
// advisory of the plugin yields exactly one finding, matched or not. A
// plugin absent from the catalog yields no findings, that is not an error.
func MatchPlugin(det catalog.Detected, cat *catalog.Catalog) []*Finding {
	pluginID := strings.ToLower(strings.TrimSpace(det.PluginID))

	findings := []*Finding{}

	for _, adv := range cat.Advisories(pluginID) {
		f := &Finding{
			PluginID:         pluginID,
			InstalledVersion: det.Version,
			Advisory:         adv,
		}

		// An advisory matches when any of its constraints matches.
		reasons := []string{}
		for _, c := range adv.Constraints {
			res := c.Evaluate(det.Version)

			if res.Matched {
				f.Matched = true
				f.Reason = res.Reason
				break
			}

			if res.ManualReview {
				f.ManualReview = true
			}
			reasons = append(reasons, res.Reason)
		}

		if !f.Matched {
			f.Reason = strings.Join(reasons, "; ")
		}

		findings = append(findings, f)
	}

	return findings
}
