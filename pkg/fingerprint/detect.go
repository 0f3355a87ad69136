package fingerprint

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/lmsec/plugscan/pkg/catalog"

	log "github.com/sirupsen/logrus"
)

// Frankenstyle prefixes mapped to their web roots. Ids without a known
// prefix are treated as activity modules, the catalog's shorthand for
// mod_* plugins.
var typePaths = map[string]string{
	"mod":        "mod",
	"block":      "blocks",
	"theme":      "theme",
	"auth":       "auth",
	"enrol":      "enrol",
	"filter":     "filter",
	"local":      "local",
	"qtype":      "question/type",
	"quizaccess": "mod/quiz/accessrule",
	"quiz":       "mod/quiz/report",
	"repository": "repository",
	"format":     "course/format",
	"atto":       "lib/editor/atto/plugins",
	"tinymce":    "lib/editor/tinymce/plugins",
}

// Plugin directories ship these files, and they are the usual places a
// release identifier leaks from.
var versionFiles = []string{"/upgrade.txt", "/CHANGES.md", "/README.md", "/readme.txt"}

var versionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^=+\s*v?([0-9][0-9.]*)\s*=+`),
	regexp.MustCompile(`(?mi)^#+\s*(?:version|release)?\s*v?([0-9][0-9.]{2,})\s*$`),
	regexp.MustCompile(`(?i)\b(?:version|release)\s*:?\s*v?([0-9][0-9.]*)`),
}

// PluginPath maps a plugin id to the path its directory is served from.
func PluginPath(pluginID string) string {
	pluginID = strings.ToLower(strings.TrimSpace(pluginID))

	if i := strings.Index(pluginID, "_"); i > 0 {
		if root, ok := typePaths[pluginID[:i]]; ok {
			return "/" + root + "/" + pluginID[i+1:]
		}
	}

	return "/mod/" + pluginID
}

// Detect probes the target for every candidate plugin. A candidate counts
// as present when its directory answers with anything but 404. Version
// probing is best effort: when the context runs out mid-plugin the plugin
// is still reported, with the version left unknown.
func (c *Client) Detect(ctx context.Context, candidates []string) []catalog.Detected {
	detected := []catalog.Detected{}

	for _, plugin := range candidates {
		if ctx.Err() != nil {
			log.Warnf("fingerprinting stopped early: %v", ctx.Err())
			break
		}

		path := PluginPath(plugin)

		res, err := c.get(ctx, path+"/")
		if err != nil {
			continue
		}
		res.Body.Close()

		if res.StatusCode == http.StatusNotFound {
			continue
		}

		version := c.probeVersion(ctx, path)
		if version == "" {
			log.Debugf("plugin %s present but version unknown", plugin)
		}

		detected = append(detected, catalog.Detected{
			PluginID: plugin,
			Version:  version,
		})
	}

	return detected
}

func (c *Client) probeVersion(ctx context.Context, pluginPath string) string {
	for _, file := range versionFiles {
		status, body, err := c.fetch(ctx, pluginPath+file)
		if err != nil || status != http.StatusOK {
			continue
		}

		for _, re := range versionPatterns {
			if m := re.FindStringSubmatch(body); m != nil {
				return strings.Trim(m[1], ".")
			}
		}
	}

	return ""
}
