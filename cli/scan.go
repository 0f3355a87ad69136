package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/lmsec/plugscan/config"
	"github.com/lmsec/plugscan/internal"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func scanCommand() *cobra.Command {
	scanCmd := &cobra.Command{
		Use:   "scan [OPTIONS]",
		Short: "Plugin vulnerability scan",
		Long: `Examples:
  # Scan a live Moodle installation
  $ plugscan scan target https://moodle.example.edu

  # Scan detections exported by another tool
  $ plugscan scan file detections.json

  # Scan a Moodle directory on this machine
  $ plugscan scan fs /var/www/moodle

  # Use a specific knowledge base and narrow the probe timeout
  $ plugscan scan target -k moodle_plugins.json --timeout 5 https://moodle.example.edu`,
	}

	targetCheck := &cobra.Command{
		Use:   "target [url]",
		Short: "fingerprint and scan a live installation",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 1 {
				fmt.Println("Require at least 1 argument.")
				os.Exit(2)
			}

			ctx := config.Ctx
			ctx = context.WithValue(ctx, "output", outfile)

			opts, err := buildOptions(cmd)
			if err != nil {
				log.Errorf("options error: %v", err)
				os.Exit(2)
			}

			rep, err := internal.DoScanTarget(ctx, opts, args[0])
			if err != nil {
				log.Errorf("scan failed, error: %v", err)
				os.Exit(2)
			}

			if rep.Vulnerable() {
				os.Exit(1)
			}
		},
	}

	fileCheck := &cobra.Command{
		Use:   "file [detections.json]",
		Short: "scan detections from a file",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 1 {
				fmt.Println("Require at least 1 argument.")
				os.Exit(2)
			}

			ctx := config.Ctx
			ctx = context.WithValue(ctx, "output", outfile)

			opts, err := buildOptions(cmd)
			if err != nil {
				log.Errorf("options error: %v", err)
				os.Exit(2)
			}

			rep, err := internal.DoScanFile(ctx, opts, args[0])
			if err != nil {
				log.Errorf("scan failed, error: %v", err)
				os.Exit(2)
			}

			if rep.Vulnerable() {
				os.Exit(1)
			}
		},
	}

	fsCheck := &cobra.Command{
		Use:   "fs [path]",
		Short: "scan a local Moodle installation directory",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 1 {
				fmt.Println("Require at least 1 argument.")
				os.Exit(2)
			}

			ctx := config.Ctx
			ctx = context.WithValue(ctx, "output", outfile)

			opts, err := buildOptions(cmd)
			if err != nil {
				log.Errorf("options error: %v", err)
				os.Exit(2)
			}

			rep, err := internal.DoScanFS(ctx, opts, args[0])
			if err != nil {
				log.Errorf("scan failed, error: %v", err)
				os.Exit(2)
			}

			if rep.Vulnerable() {
				os.Exit(1)
			}
		},
	}

	for _, c := range []*cobra.Command{targetCheck, fileCheck, fsCheck} {
		c.Flags().StringVarP(&outfile, "output", "o", "output", "output file location")
		c.Flags().IntVarP(&workers, "workers", "w", config.DefaultWorkers, "number of matching workers")
		c.Flags().StringVar(&historyDB, "history-db", "", "path of the scan history database")
	}

	targetCheck.Flags().IntVarP(&timeoutSec, "timeout", "t", config.DefaultTimeout, "probe timeout in seconds")
	targetCheck.Flags().StringVar(&userAgent, "agent", "", "user agent for probes")

	scanCmd.AddCommand(targetCheck)
	scanCmd.AddCommand(fileCheck)
	scanCmd.AddCommand(fsCheck)

	return scanCmd
}
