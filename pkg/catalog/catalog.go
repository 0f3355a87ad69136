package catalog

import (
	"sort"
	"strings"

	"github.com/lmsec/plugscan/pkg/mversion"
)

// Advisory is one known vulnerability of a Moodle plugin. Constraints hold
// the machine-checkable form of AffectedVersions, parsed once at load so a
// scan never re-parses specs per comparison.
type Advisory struct {
	Title            string
	CVE              string
	Description      string
	Severity         Severity
	AffectedVersions []string
	Constraints      []mversion.Constraint `json:"-"`
	References       []string
	Remediation      string
}

// Catalog is the loaded knowledge base. It is built once by Load and never
// mutated afterwards, so scans may share it across goroutines freely.
type Catalog struct {
	advisories map[string][]*Advisory
	warnings   []string
}

// Advisories returns the advisories for a plugin id, nil when the plugin is
// not in the catalog. Lookup is case-insensitive.
func (c *Catalog) Advisories(pluginID string) []*Advisory {
	return c.advisories[strings.ToLower(strings.TrimSpace(pluginID))]
}

// Plugins returns the catalog keys in sorted order.
func (c *Catalog) Plugins() []string {
	plugins := make([]string, 0, len(c.advisories))
	for id := range c.advisories {
		plugins = append(plugins, id)
	}

	sort.Strings(plugins)

	return plugins
}

// Warnings returns the schema problems recorded while loading. Each entry
// names the record that was skipped and why.
func (c *Catalog) Warnings() []string {
	return c.warnings
}

// Count returns the number of advisories across all plugins.
func (c *Catalog) Count() int {
	n := 0
	for _, advs := range c.advisories {
		n += len(advs)
	}

	return n
}
