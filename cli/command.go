package cli

import (
	"fmt"
	"strings"

	"github.com/lmsec/plugscan/config"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "plugscan [OPTIONS]",
		Short: "Moodle plugin vulnerability correlation",
		Long: `Plugscan correlates Moodle plugins detected on a target with a knowledge
base of known advisories and reports which ones apply, how severe they
are and what remediation is required.`,
	}

	versions = "v0.1.0"

	optsFile     string
	kbFile       string
	outfile      string
	workers      int
	timeoutSec   int
	userAgent    string
	historyDB    string
	historyLimit int
)

func Execute() error {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information and quit",
		Args:  NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(versions)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&optsFile, "config", "c", "", "path of a YAML options file")
	rootCmd.PersistentFlags().StringVarP(&kbFile, "kb", "k", "", "path of the knowledge base file")

	rootCmd.AddCommand(scanCommand())
	rootCmd.AddCommand(kbCommand())
	rootCmd.AddCommand(historyCommand())
	rootCmd.AddCommand(versionCmd)

	return rootCmd.Execute()
}

// NoArgs rejects positional arguments on commands that take none.
func NoArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}

	if cmd.HasSubCommands() {
		return fmt.Errorf("\n%s", strings.TrimRight(cmd.UsageString(), "\n"))
	}

	return fmt.Errorf("\"%s\" accepts no argument(s).\nSee '%s --help'.\n\nUsage:  %s\n\n%s",
		cmd.CommandPath(),
		cmd.CommandPath(),
		cmd.UseLine(),
		cmd.Short)
}

// buildOptions loads the options file and layers the flags the user
// actually set on top.
func buildOptions(cmd *cobra.Command) (*config.Options, error) {
	opts, err := config.LoadOptions(optsFile)
	if err != nil {
		return nil, err
	}

	if kbFile != "" {
		opts.KBFile = kbFile
	}
	if cmd.Flags().Changed("workers") {
		opts.Workers = workers
	}
	if cmd.Flags().Changed("timeout") {
		opts.Timeout = timeoutSec
	}
	if cmd.Flags().Changed("agent") {
		opts.UserAgent = userAgent
	}
	if cmd.Flags().Changed("history-db") {
		opts.HistoryDB = historyDB
	}

	return opts, nil
}
