package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lmsec/plugscan/config"
	"github.com/lmsec/plugscan/internal/vulnscan"

	log "github.com/sirupsen/logrus"
)

// outputPath resolves the JSON export location from the context. The
// default keeps reports under ./output, one file per day.
func outputPath(ctx context.Context) (string, error) {
	out, _ := ctx.Value("output").(string)

	if out == "" || out == "output" {
		pwd, err := os.Getwd()
		if err != nil {
			return "", err
		}

		dir := filepath.Join(pwd, "output")
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}

		stamp := time.Now().Format("2006-01-02")

		return filepath.Join(dir, fmt.Sprintf("%s.json", stamp)), nil
	}

	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	return out, nil
}

// ScanToJson exports the full report, match reasons and warnings
// included, next to the table output.
func ScanToJson(ctx context.Context, r *vulnscan.Report) error {
	filename, err := outputPath(ctx)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return err
	}

	fmt.Printf("\n")
	log.Infof("Output file is saved in: %s", config.Yellow(filename))

	return nil
}
