package mversion

import (
	"fmt"
	"regexp"
	"strings"
)

// Result is the outcome of checking one installed version against one
// constraint. Reason keeps the audit trail: which rule fired and the
// boundary values involved.
type Result struct {
	Matched      bool
	Reason       string
	ManualReview bool
}

// Constraint is one machine-checkable rule distilled from an advisory's
// affected version list.
type Constraint interface {
	Evaluate(installed string) Result
	String() string
}

var (
	bareBranchRegex = regexp.MustCompile(`^\d+(\.\d+){1,2}$`)
	beforeRegex     = regexp.MustCompile(`(?i)\bbefore\s+v?([0-9][0-9.]*)`)
)

// ParseConstraints turns a raw affected_moodle_versions list into
// constraints. Bare dotted entries fold into a single BranchSet, "before"
// phrases become exclusive upper bounds, and everything else is preserved
// as Unparseable. The function never fails.
func ParseConstraints(raw []string) []Constraint {
	constraints := []Constraint{}
	branches := []string{}

	for _, entry := range raw {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if bareBranchRegex.MatchString(entry) {
			branch := Branch(entry)

			dup := false
			for _, b := range branches {
				if b == branch {
					dup = true
					break
				}
			}
			if !dup {
				branches = append(branches, branch)
			}

			continue
		}

		if m := beforeRegex.FindStringSubmatch(entry); m != nil {
			threshold := strings.Trim(m[1], ".")

			scheme := InferScheme(threshold)
			if scheme == SchemeUnknown {
				// A threshold that is neither a build number nor a clean
				// dotted version is compared as a branch, and the
				// comparator's refusal keeps it from ever matching.
				scheme = SchemeBranch
			}

			constraints = append(constraints, &UpperBound{
				Threshold: threshold,
				Scheme:    scheme,
			})
			continue
		}

		constraints = append(constraints, &Unparseable{Raw: entry})
	}

	if len(branches) > 0 {
		constraints = append([]Constraint{&BranchSet{Branches: branches}}, constraints...)
	}

	return constraints
}

// BranchSet matches when the installed version belongs to one of the
// enumerated release branches. The patch segment is ignored on purpose:
// advisories enumerate branches, so "3.9.4" counts as branch "3.9".
type BranchSet struct {
	Branches []string
}

func (c *BranchSet) Evaluate(installed string) Result {
	installed = strings.TrimSpace(installed)

	if installed == "" {
		return Result{Reason: "installed version unknown, affected branches " + c.list()}
	}

	switch InferScheme(installed) {
	case SchemeBuild:
		return Result{Reason: fmt.Sprintf(
			"installed version %s is a build number, affected versions are branches %s",
			installed, c.list())}
	case SchemeUnknown:
		return Result{Reason: fmt.Sprintf(
			"installed version %q is not a recognizable branch", installed)}
	}

	branch := Branch(installed)

	for _, b := range c.Branches {
		if Compare(branch, b, SchemeBranch) == Equal {
			return Result{
				Matched: true,
				Reason: fmt.Sprintf("installed version %s is on affected branch %s",
					installed, b),
			}
		}
	}

	return Result{Reason: fmt.Sprintf("installed branch %s not in affected branches %s",
		branch, c.list())}
}

func (c *BranchSet) list() string {
	return strings.Join(c.Branches, ", ")
}

func (c *BranchSet) String() string {
	return "branches " + c.list()
}

// UpperBound matches every version strictly below Threshold. The threshold
// names the first fixed release, so equality never matches.
type UpperBound struct {
	Threshold string
	Scheme    Scheme
}

func (c *UpperBound) Evaluate(installed string) Result {
	installed = strings.TrimSpace(installed)

	if installed == "" {
		return Result{Reason: fmt.Sprintf("installed version unknown, affected before %s",
			c.Threshold)}
	}

	switch Compare(installed, c.Threshold, c.Scheme) {
	case Less:
		return Result{
			Matched: true,
			Reason: fmt.Sprintf("installed version %s is before the fixed %s %s",
				installed, c.Scheme, c.Threshold),
		}
	case Equal:
		return Result{Reason: fmt.Sprintf("installed version %s is the first fixed release",
			installed)}
	case Greater:
		return Result{Reason: fmt.Sprintf("installed version %s is at or past the fixed %s %s",
			installed, c.Scheme, c.Threshold)}
	}

	return Result{Reason: fmt.Sprintf(
		"cannot compare installed version %s with %s under the %s scheme",
		installed, c.Threshold, c.Scheme)}
}

func (c *UpperBound) String() string {
	return fmt.Sprintf("before %s (%s)", c.Threshold, c.Scheme)
}

// Unparseable preserves an affected version spec the parser did not
// recognize. It never matches and is flagged for manual review instead of
// being dropped.
type Unparseable struct {
	Raw string
}

func (c *Unparseable) Evaluate(installed string) Result {
	return Result{
		Reason: fmt.Sprintf("affected version spec %q not recognized, manual review required",
			c.Raw),
		ManualReview: true,
	}
}

func (c *Unparseable) String() string {
	return fmt.Sprintf("unparseable %q", c.Raw)
}
