package catalog

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Detected is one plugin found on a target installation. Version may be
// empty when fingerprinting saw the plugin but could not read a version.
type Detected struct {
	PluginID string `json:"plugin"`
	Version  string `json:"version"`
}

// ParseDetections reads a detections file, an array of
// {"plugin": ..., "version": ...} objects produced by a fingerprint run or
// written by hand.
func ParseDetections(data []byte) ([]Detected, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("detections file is not valid JSON")
	}

	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("detections file must be an array")
	}

	detected := []Detected{}
	for i, rec := range root.Array() {
		plugin := strings.TrimSpace(rec.Get("plugin").String())
		if plugin == "" {
			return nil, fmt.Errorf("detection %d has no plugin id", i+1)
		}

		detected = append(detected, Detected{
			PluginID: plugin,
			Version:  strings.TrimSpace(rec.Get("version").String()),
		})
	}

	return detected, nil
}
