package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dany7865/IITR-esummit07/internal/feedback"
	"github.com/Dany7865/IITR-esummit07/internal/lead"
	"github.com/Dany7865/IITR-esummit07/internal/output"
)

var (
	exportOut      string
	exportPriority string
	exportStatus   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write lead dossiers as Markdown files",
	Long: `Write one Markdown dossier per lead into <out>/leads/ plus an index.md
table linking them, highest score first.`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "dossiers", "Output directory")
	exportCmd.Flags().StringVar(&exportPriority, "priority", "", "Only export this priority")
	exportCmd.Flags().StringVar(&exportStatus, "status", "", "Only export this status")
}

func runExport(cmd *cobra.Command, args []string) error {
	f := lead.Filter{Priority: exportPriority, Limit: lead.MaxLimit}
	if exportStatus != "" {
		f.Status = feedback.Outcome(exportStatus)
		if !f.Status.IsValid() {
			return fmt.Errorf("invalid status %q", exportStatus)
		}
	}

	return withApp(cmd.Context(), func(a *app) error {
		leads, err := a.leads.List(cmd.Context(), f)
		if err != nil {
			return fmt.Errorf("failed to list leads: %w", err)
		}

		files, err := output.NewGenerator(exportOut).Generate(leads)
		if err != nil {
			return fmt.Errorf("failed to generate output: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Generated %d files in %s/\n", len(files), exportOut)
		for _, path := range files {
			fmt.Fprintf(out, "  - %s\n", path)
		}
		return nil
	})
}
