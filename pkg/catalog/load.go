package catalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/lmsec/plugscan/pkg/mversion"

	"github.com/tidwall/gjson"
)

// Load reads and parses a knowledge base file. File and structure problems
// are fatal, record-level schema problems become warnings on the returned
// catalog.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading knowledge base: %w", err)
	}

	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("knowledge base %s: %w", path, err)
	}

	return cat, nil
}

// Parse builds a catalog from raw knowledge base JSON. Plugin keys are
// lowercased; a key appearing twice after normalization is an error, the
// records would silently shadow each other otherwise.
func Parse(data []byte) (*Catalog, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("not valid JSON")
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("root must be an object keyed by plugin id")
	}

	cat := &Catalog{
		advisories: map[string][]*Advisory{},
	}

	var fatal error

	root.ForEach(func(key, value gjson.Result) bool {
		id := strings.ToLower(strings.TrimSpace(key.String()))
		if id == "" {
			fatal = fmt.Errorf("empty plugin id")
			return false
		}

		// gjson walks the raw document, so duplicate keys show up here
		// instead of being collapsed by a map decode.
		if _, ok := cat.advisories[id]; ok {
			fatal = fmt.Errorf("duplicate plugin entry %q", id)
			return false
		}

		if !value.IsArray() {
			fatal = fmt.Errorf("plugin %q must hold an array of advisories", id)
			return false
		}

		advs := []*Advisory{}
		for i, rec := range value.Array() {
			adv := cat.parseAdvisory(id, i, rec)
			if adv != nil {
				advs = append(advs, adv)
			}
		}

		cat.advisories[id] = advs

		return true
	})

	if fatal != nil {
		return nil, fatal
	}

	return cat, nil
}

func (c *Catalog) parseAdvisory(id string, idx int, rec gjson.Result) *Advisory {
	if !rec.IsObject() {
		c.warn("plugin %s: advisory %d is not an object, skipped", id, idx+1)
		return nil
	}

	cve := strings.TrimSpace(rec.Get("cve").String())
	if cve == "" {
		c.warn("plugin %s: advisory %d has no cve identifier, skipped", id, idx+1)
		return nil
	}

	title := strings.TrimSpace(rec.Get("title").String())
	if title == "" {
		c.warn("plugin %s: advisory %s has no title, skipped", id, cve)
		return nil
	}

	severity, err := ParseSeverity(rec.Get("severity").String())
	if err != nil {
		c.warn("plugin %s: advisory %s: %v, skipped", id, cve, err)
		return nil
	}

	affected := []string{}
	for _, v := range rec.Get("affected_moodle_versions").Array() {
		affected = append(affected, v.String())
	}
	if len(affected) == 0 {
		c.warn("plugin %s: advisory %s lists no affected versions, skipped", id, cve)
		return nil
	}

	references := []string{}
	for _, r := range rec.Get("references").Array() {
		references = append(references, r.String())
	}

	return &Advisory{
		Title:            title,
		CVE:              cve,
		Description:      rec.Get("description").String(),
		Severity:         severity,
		AffectedVersions: affected,
		Constraints:      mversion.ParseConstraints(affected),
		References:       references,
		Remediation:      rec.Get("remediation").String(),
	}
}

func (c *Catalog) warn(format string, args ...interface{}) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, args...))
}
