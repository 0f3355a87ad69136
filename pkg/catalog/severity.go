package catalog

import (
	"fmt"
	"strings"
)

// Severity is the advisory severity ordinal. The four canonical values are
// the only ones a knowledge base may carry.
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
	SeverityLow      Severity = "Low"
)

var severityRanks = map[Severity]int{
	SeverityCritical: 4,
	SeverityHigh:     3,
	SeverityMedium:   2,
	SeverityLow:      1,
}

// ParseSeverity normalizes a raw severity string. Casing is forgiven,
// unknown values are not.
func ParseSeverity(raw string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "critical":
		return SeverityCritical, nil
	case "high":
		return SeverityHigh, nil
	case "medium":
		return SeverityMedium, nil
	case "low":
		return SeverityLow, nil
	}

	return "", fmt.Errorf("unknown severity %q", raw)
}

// Rank orders severities for sorting and summaries, Critical highest.
func (s Severity) Rank() int {
	return severityRanks[s]
}

func (s Severity) String() string {
	return string(s)
}
