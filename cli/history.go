package cli

import (
	"os"
	"strconv"

	"github.com/lmsec/plugscan/pkg/history"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func historyCommand() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recent scans",
		Args:  NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cli, err := history.Open(historyDB)
			if err != nil {
				log.Errorf("history error: %v", err)
				os.Exit(2)
			}
			defer cli.Close()

			records, err := cli.Recent(historyLimit)
			if err != nil {
				log.Errorf("history error: %v", err)
				os.Exit(2)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Target", "Scanned At", "Critical",
				"High", "Medium", "Low", "Warnings"})
			table.SetRowLine(true)

			for _, r := range records {
				table.Append([]string{
					strconv.Itoa(r.ID), r.Target,
					r.ScannedAt.Format("2006-01-02 15:04"),
					strconv.Itoa(r.Critical), strconv.Itoa(r.High),
					strconv.Itoa(r.Medium), strconv.Itoa(r.Low),
					strconv.Itoa(r.Warnings),
				})
			}

			table.Render()
		},
	}

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of scans to list")
	historyCmd.Flags().StringVar(&historyDB, "history-db", "", "path of the scan history database")

	return historyCmd
}
