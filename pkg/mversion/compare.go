package mversion

import (
	"math/big"
	"regexp"
	"strings"

	version2 "github.com/hashicorp/go-version"
)

// Scheme is the version numbering scheme a Moodle plugin release uses.
// Branch identifiers are short dotted numbers ("3.9", "3.11.2"), build
// numbers are long date-derived integers ("2020102601").
type Scheme int

const (
	SchemeUnknown Scheme = iota
	SchemeBranch
	SchemeBuild
)

func (s Scheme) String() string {
	switch s {
	case SchemeBranch:
		return "branch"
	case SchemeBuild:
		return "build"
	}
	return "unknown"
}

// Ordering is the outcome of comparing two version identifiers. Operands
// from different schemes, or malformed ones, are Incomparable rather than
// force-ranked.
type Ordering int

const (
	Incomparable Ordering = iota
	Less
	Equal
	Greater
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "less"
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	}
	return "incomparable"
}

var (
	buildRegex  = regexp.MustCompile(`^\d{8,}$`)
	dottedRegex = regexp.MustCompile(`^\d+(\.\d+)*$`)
)

// InferScheme classifies a raw version identifier. Pure numbers of eight or
// more digits are build numbers, dotted numerics are branch identifiers,
// anything else is unknown.
func InferScheme(raw string) Scheme {
	raw = strings.TrimSpace(raw)

	if buildRegex.MatchString(raw) {
		return SchemeBuild
	}
	if dottedRegex.MatchString(raw) {
		return SchemeBranch
	}

	return SchemeUnknown
}

// Compare orders two version identifiers under the given scheme. Both
// operands must belong to that scheme, otherwise the result is
// Incomparable and the caller decides what a refused comparison means.
func Compare(a, b string, scheme Scheme) Ordering {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)

	switch scheme {
	case SchemeBuild:
		return compareBuild(a, b)
	case SchemeBranch:
		return compareBranch(a, b)
	}

	return Incomparable
}

func compareBuild(a, b string) Ordering {
	if !buildRegex.MatchString(a) || !buildRegex.MatchString(b) {
		return Incomparable
	}

	// Build numbers are opaque ordinals of unbounded length, so they are
	// compared as big integers instead of fixed-width ones.
	av, okA := new(big.Int).SetString(a, 10)
	bv, okB := new(big.Int).SetString(b, 10)
	if !okA || !okB {
		return Incomparable
	}

	switch av.Cmp(bv) {
	case -1:
		return Less
	case 1:
		return Greater
	}

	return Equal
}

func compareBranch(a, b string) Ordering {
	// A build number offered to a branch comparison is a scheme clash,
	// not a very large branch.
	if InferScheme(a) != SchemeBranch || InferScheme(b) != SchemeBranch {
		return Incomparable
	}

	av, err := version2.NewVersion(a)
	if err != nil {
		return Incomparable
	}
	bv, err := version2.NewVersion(b)
	if err != nil {
		return Incomparable
	}

	switch av.Compare(bv) {
	case -1:
		return Less
	case 1:
		return Greater
	}

	return Equal
}

// Branch reduces a dotted version to its release branch, the first two
// segments ("3.9.4" -> "3.9"). Single-segment versions pass through.
func Branch(raw string) string {
	raw = strings.TrimSpace(raw)

	segs := strings.SplitN(raw, ".", 3)
	if len(segs) < 2 {
		return raw
	}

	return segs[0] + "." + segs[1]
}
