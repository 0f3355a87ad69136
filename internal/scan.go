package internal

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/lmsec/plugscan/config"
	"github.com/lmsec/plugscan/internal/report"
	"github.com/lmsec/plugscan/internal/vulnscan"
	"github.com/lmsec/plugscan/pkg/catalog"
	"github.com/lmsec/plugscan/pkg/fingerprint"
	"github.com/lmsec/plugscan/pkg/fsdetect"
	"github.com/lmsec/plugscan/pkg/history"
	"github.com/lmsec/plugscan/pkg/match"

	log "github.com/sirupsen/logrus"
)

// DoScanTarget fingerprints a live installation and correlates every
// detected plugin with the knowledge base. The returned report decides the
// process exit code, an error means the scan could not run at all.
func DoScanTarget(ctx context.Context, opts *config.Options, target string) (*vulnscan.Report, error) {
	cat, err := loadCatalog(opts)
	if err != nil {
		return nil, err
	}

	cli, err := fingerprint.NewClient(target, opts.HTTPTimeout(), opts.UserAgent)
	if err != nil {
		return nil, err
	}

	if err := cli.CheckTarget(ctx); err != nil {
		return nil, err
	}

	log.Infof(config.Green("Begin to fingerprint the target"))

	detected := cli.Detect(ctx, cat.Plugins())
	log.Infof("Detected %d known plugins on %s", len(detected), cli.Target())

	rep := Correlate(ctx, cat, detected, opts.Workers)
	rep.Target = cli.Target()

	if err := finish(ctx, opts, rep); err != nil {
		log.Warnf("saving error %v", err)
	}

	return rep, nil
}

// DoScanFile correlates detections read from a file instead of the network.
func DoScanFile(ctx context.Context, opts *config.Options, path string) (*vulnscan.Report, error) {
	cat, err := loadCatalog(opts)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading detections: %w", err)
	}

	detected, err := catalog.ParseDetections(data)
	if err != nil {
		return nil, err
	}

	rep := Correlate(ctx, cat, detected, opts.Workers)
	rep.Target = path

	if err := finish(ctx, opts, rep); err != nil {
		log.Warnf("saving error %v", err)
	}

	return rep, nil
}

// DoScanFS walks a Moodle installation on the local filesystem, reading the
// version.php manifest of every plugin it finds under the standard plugin
// directories.
func DoScanFS(ctx context.Context, opts *config.Options, path string) (*vulnscan.Report, error) {
	cat, err := loadCatalog(opts)
	if err != nil {
		return nil, err
	}

	inst, err := fsdetect.Detect(path)
	if err != nil {
		return nil, err
	}

	log.Infof("Found Moodle %s with %d plugins under %s",
		inst.Release, len(inst.Plugins), path)

	rep := Correlate(ctx, cat, inst.Plugins, opts.Workers)
	rep.Target = path
	rep.MoodleRelease = inst.Release

	if err := finish(ctx, opts, rep); err != nil {
		log.Warnf("saving error %v", err)
	}

	return rep, nil
}

func loadCatalog(opts *config.Options) (*catalog.Catalog, error) {
	cat, err := catalog.Load(opts.KBFile)
	if err != nil {
		return nil, err
	}

	log.Infof("Loaded %d advisories covering %d plugins",
		cat.Count(), len(cat.Plugins()))

	return cat, nil
}

// Correlate fans the detected plugins across a bounded worker pool. The
// catalog is immutable after load, workers share it without locking, and
// the aggregation sort restores a deterministic order after the fan-in.
func Correlate(ctx context.Context, cat *catalog.Catalog, detected []catalog.Detected, workers int) *vulnscan.Report {
	if workers < 1 {
		workers = 1
	}
	if workers > len(detected) {
		workers = len(detected)
	}

	findings := []*vulnscan.Finding{}

	if len(detected) > 0 {
		jobs := make(chan catalog.Detected)
		results := make(chan []*vulnscan.Finding)

		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for det := range jobs {
					results <- vulnscan.MatchPlugin(det, cat)
				}
			}()
		}

		go func() {
			for _, det := range detected {
				jobs <- det
			}
			close(jobs)
		}()

		go func() {
			wg.Wait()
			close(results)
		}()

		for fs := range results {
			findings = append(findings, fs...)
		}
	}

	rep := vulnscan.Aggregate(findings)
	rep.ScannedAt = time.Now()

	// Loader warnings come first, the scan-time ones follow.
	rep.Warnings = append(append([]string{}, cat.Warnings()...), rep.Warnings...)

	for _, det := range detected {
		if cat.Advisories(det.PluginID) != nil {
			continue
		}

		if sug := match.Nearest(det.PluginID, cat.Plugins()); sug != nil {
			rep.Warnings = append(rep.Warnings,
				fmt.Sprintf("plugin %s is not in the knowledge base, closest known id is %s",
					det.PluginID, sug.PluginID))
		}
	}

	return rep
}

func finish(ctx context.Context, opts *config.Options, rep *vulnscan.Report) error {
	if err := report.ResolveReportData(ctx, rep); err != nil {
		return err
	}

	if err := report.ScanToJson(ctx, rep); err != nil {
		return err
	}

	cli, err := history.Open(opts.HistoryDB)
	if err != nil {
		return err
	}
	defer cli.Close()

	return cli.Append(&history.Record{
		Target:    rep.Target,
		ScannedAt: rep.ScannedAt,
		Critical:  rep.Summary[catalog.SeverityCritical],
		High:      rep.Summary[catalog.SeverityHigh],
		Medium:    rep.Summary[catalog.SeverityMedium],
		Low:       rep.Summary[catalog.SeverityLow],
		Warnings:  len(rep.Warnings),
	})
}
