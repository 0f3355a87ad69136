package match

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Suggestion is a near-miss catalog key for a detected plugin id the
// catalog does not know, usually a typo or a frankenstyle prefix mixup.
type Suggestion struct {
	PluginID string
	Ratio    float64
}

// Nearest returns the candidate closest to the unknown plugin id, nil when
// nothing is close enough to be worth mentioning.
func Nearest(pluginID string, candidates []string) *Suggestion {
	pluginID = strings.ToLower(strings.TrimSpace(pluginID))

	best := Suggestion{}
	for _, c := range candidates {
		ratio := similarity(pluginID, strings.ToLower(c))
		if ratio > best.Ratio {
			best.PluginID = c
			best.Ratio = ratio
		}
	}

	// Identical ids never reach here, the caller already failed an exact
	// lookup. The lower bound keeps wild guesses out of the report.
	if best.Ratio > 0.70 && best.Ratio < 0.999 {
		return &best
	}

	return nil
}

func similarity(a, b string) float64 {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)

	matches := 0
	for _, diff := range diffs {
		if diff.Type == diffmatchpatch.DiffEqual {
			matches += len(diff.Text)
		}
	}

	sums := len(a) + len(b)
	if sums > 0 {
		return 2.0 * float64(matches) / float64(sums)
	}

	return 1.0
}
