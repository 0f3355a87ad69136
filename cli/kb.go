package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/lmsec/plugscan/config"
	"github.com/lmsec/plugscan/pkg/catalog"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func kbCommand() *cobra.Command {
	kbCmd := &cobra.Command{
		Use:   "kb",
		Short: "Knowledge base utilities",
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "load the knowledge base and report schema problems",
		Args:  NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			opts, err := buildOptions(cmd)
			if err != nil {
				log.Errorf("options error: %v", err)
				os.Exit(2)
			}

			cat, err := catalog.Load(opts.KBFile)
			if err != nil {
				log.Errorf("validation failed, error: %v", err)
				os.Exit(2)
			}

			fmt.Printf("Knowledge base %s: %s advisories covering %s plugins\n",
				opts.KBFile,
				config.Yellow(cat.Count()),
				config.Yellow(len(cat.Plugins())))

			if ws := cat.Warnings(); len(ws) > 0 {
				fmt.Printf("\nSkipped records:\n")
				for _, w := range ws {
					fmt.Printf("  - %s\n", config.Yellow(w))
				}
			} else {
				fmt.Printf("%s\n", config.Green("No schema problems found"))
			}
		},
	}

	lookupCmd := &cobra.Command{
		Use:   "lookup [plugin]",
		Short: "show the advisories recorded for a plugin id",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 1 {
				fmt.Println("Require at least 1 argument.")
				os.Exit(2)
			}

			opts, err := buildOptions(cmd)
			if err != nil {
				log.Errorf("options error: %v", err)
				os.Exit(2)
			}

			cat, err := catalog.Load(opts.KBFile)
			if err != nil {
				log.Errorf("loading failed, error: %v", err)
				os.Exit(2)
			}

			advs := cat.Advisories(args[0])
			if advs == nil {
				fmt.Printf("Plugin %s is not in the knowledge base\n", args[0])
				return
			}

			for _, adv := range advs {
				fmt.Printf("%s [%s] %s\n", adv.CVE,
					strings.ToLower(string(adv.Severity)), adv.Title)
				fmt.Printf("  affected: %s\n", strings.Join(adv.AffectedVersions, "; "))
				if adv.Remediation != "" {
					fmt.Printf("  fix: %s\n", adv.Remediation)
				}
			}
		},
	}

	kbCmd.AddCommand(validateCmd)
	kbCmd.AddCommand(lookupCmd)

	return kbCmd
}
