package fsdetect

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/lmsec/plugscan/pkg/catalog"
)

// Installation is what a filesystem walk of a Moodle directory yields.
type Installation struct {
	// Release is the core $release string from the root version.php,
	// verbatim, e.g. "3.9.1+ (Build: 20200710)".
	Release string
	Plugins []catalog.Detected
}

// Plugin roots inside a Moodle tree and the frankenstyle prefix their
// plugins carry. Activity modules keep the bare directory name, which is
// also the knowledge base convention for them.
var pluginRoots = []struct {
	dir    string
	prefix string
}{
	{"mod", ""},
	{"mod/quiz/accessrule", "quizaccess_"},
	{"mod/quiz/report", "quiz_"},
	{"blocks", "block_"},
	{"auth", "auth_"},
	{"enrol", "enrol_"},
	{"theme", "theme_"},
	{"filter", "filter_"},
	{"local", "local_"},
	{"question/type", "qtype_"},
	{"repository", "repository_"},
	{"course/format", "format_"},
	{"lib/editor/atto/plugins", "atto_"},
	{"lib/editor/tinymce/plugins", "tinymce_"},
}

var (
	coreReleaseReg = regexp.MustCompile(`\$release\s*=\s*['"]([^'"]+)['"]`)

	// Old module manifests use $module instead of $plugin.
	pluginReleaseReg = regexp.MustCompile(`\$(?:plugin|module)->release\s*=\s*['"]([^'"]+)['"]`)
	pluginVersionReg = regexp.MustCompile(`\$(?:plugin|module)->version\s*=\s*([0-9]+)`)

	leadingVersionReg = regexp.MustCompile(`^v?([0-9]+(?:\.[0-9]+)*)`)
)

// Detect walks a local Moodle directory and lists the installed plugins
// with their versions. A directory without a core version.php is not a
// Moodle installation and fails the scan.
func Detect(root string) (*Installation, error) {
	coreManifest := filepath.Join(root, "version.php")

	data, err := os.ReadFile(coreManifest)
	if err != nil {
		return nil, fmt.Errorf("%s is not a Moodle installation: %w", root, err)
	}

	inst := &Installation{
		Plugins: []catalog.Detected{},
	}

	if m := coreReleaseReg.FindSubmatch(data); m != nil {
		inst.Release = string(m[1])
	}

	for _, pr := range pluginRoots {
		entries, err := os.ReadDir(filepath.Join(root, pr.dir))
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}

			manifest := filepath.Join(root, pr.dir, entry.Name(), "version.php")
			version, ok := parseManifest(manifest)
			if !ok {
				continue
			}

			inst.Plugins = append(inst.Plugins, catalog.Detected{
				PluginID: pr.prefix + entry.Name(),
				Version:  version,
			})
		}
	}

	return inst, nil
}

// parseManifest pulls a version out of a plugin's version.php. The dotted
// release is preferred, the numeric build is the fallback, and a plugin
// without a manifest is not reported at all.
func parseManifest(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	if m := pluginReleaseReg.FindSubmatch(data); m != nil {
		if v := leadingVersionReg.FindSubmatch(m[1]); v != nil {
			return string(v[1]), true
		}
	}

	if m := pluginVersionReg.FindSubmatch(data); m != nil {
		return string(m[1]), true
	}

	// Manifest exists but leaks no usable version, report it anyway so
	// unparseable-version advisories still flag it for review.
	return "", true
}
