package report

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/lmsec/plugscan/config"
	"github.com/lmsec/plugscan/internal/vulnscan"
	"github.com/lmsec/plugscan/pkg/catalog"

	"github.com/olekukonko/tablewriter"
)

// ResolveReportData prints the scan result as a summary line and a table
// of matched advisories, warnings last so they are the final thing an
// operator sees.
func ResolveReportData(ctx context.Context, r *vulnscan.Report) error {

	if r.MoodleRelease != "" {
		fmt.Printf("\nMoodle release: %s\n", config.Yellow(r.MoodleRelease))
	}

	fmt.Printf("\nDetected %s vulnerabilities | "+
		"Critical: %s High: %s Medium: %s Low: %s\n\n",
		config.Yellow(len(r.Findings)),
		config.Red(r.Summary[catalog.SeverityCritical]),
		config.Pink(r.Summary[catalog.SeverityHigh]),
		config.Yellow(r.Summary[catalog.SeverityMedium]),
		config.Green(r.Summary[catalog.SeverityLow]))

	if len(r.Findings) == 0 {
		fmt.Printf("%s\n", config.Green("No known plugin vulnerabilities matched"))
	} else {
		table := tablewriter.NewWriter(os.Stdout)

		table.SetHeader([]string{"ID", "Plugin", "Version", "CVEID", "Severity",
			"Title", "Remediation"})
		table.SetRowLine(true)
		table.SetAutoMergeCellsByColumnIndex([]int{1})

		for i, f := range r.Findings {
			version := f.InstalledVersion
			if version == "" {
				version = "unknown"
			}

			title := f.Advisory.Title
			if len(title) > 200 {
				title = title[:200] + " ..."
			}

			vulnData := []string{
				strconv.Itoa(i + 1), f.PluginID, version,
				f.Advisory.CVE, judgeSeverity(f.Advisory.Severity),
				title, f.Advisory.Remediation,
			}

			table.Append(vulnData)
		}

		table.Render()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("\nWarnings:\n")
		for _, w := range r.Warnings {
			fmt.Printf("  - %s\n", config.Yellow(w))
		}
	}

	return nil
}

func judgeSeverity(severity catalog.Severity) string {
	switch severity {
	case catalog.SeverityCritical:
		return config.Red("critical")
	case catalog.SeverityHigh:
		return config.Pink("high")
	case catalog.SeverityMedium:
		return config.Yellow("medium")
	case catalog.SeverityLow:
		return config.Green("low")
	default:
		// ignore
	}
	return "unknown"
}
