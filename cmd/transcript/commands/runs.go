package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JonaxDevelopment/discord-transcript-next/internal/archive"
	"github.com/JonaxDevelopment/discord-transcript-next/internal/config"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded transcript exports",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		db, err := archive.Open(resolveArchivePath(cfg))
		if err != nil {
			return err
		}
		defer db.Close()

		runs, err := db.List(runsLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No recorded exports.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tGENERATED\tFORMATS\tTHEME\tMESSAGES\tADAPTER\tOUTPUT")
		for _, run := range runs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
				run.ID,
				run.GeneratedAt.UTC().Format("2006-01-02 15:04:05"),
				strings.Join(run.Formats, ","),
				run.Theme,
				run.MessageCount,
				run.Adapter,
				run.OutputPath)
		}
		return w.Flush()
	},
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 0, "Maximum number of runs to list (0 = all)")
	rootCmd.AddCommand(runsCmd)
}
