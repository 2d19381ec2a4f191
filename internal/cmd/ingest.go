package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dany7865/IITR-esummit07/internal/db"
	"github.com/Dany7865/IITR-esummit07/internal/logger"
	"github.com/Dany7865/IITR-esummit07/internal/parser"
	"github.com/Dany7865/IITR-esummit07/internal/pipeline"
)

var ingestDryRun bool

var ingestCmd = &cobra.Command{
	Use:   "ingest <glob>",
	Short: "Ingest discovery items from JSON or NDJSON files",
	Long: `Read discovery items (company, raw_text, source, source_url) from every
file matching the glob, score them and store the new ones as leads.
Items whose company and text match a stored lead are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the sample leads into an empty store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			n, err := a.discovery.Seed(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to seed leads: %w", err)
			}
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Store already has leads, nothing seeded")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d sample leads\n", n)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(seedCmd)

	ingestCmd.Flags().BoolVar(&ingestDryRun, "dry-run", false, "Only count the items per source")
}

func runIngest(cmd *cobra.Command, args []string) error {
	pattern := args[0]

	return withApp(cmd.Context(), func(a *app) error {
		ctx := cmd.Context()
		if err := db.LoadJSON(ctx, a.db); err != nil {
			return err
		}
		p := parser.NewParser(a.db)
		out := cmd.OutOrStdout()

		counts, err := p.CountItems(ctx, pattern)
		if err != nil {
			return fmt.Errorf("failed to count items: %w", err)
		}
		for source, n := range counts {
			a.logger.Info("Items found", logger.String("source", source), logger.Int("count", n))
		}
		if ingestDryRun {
			for source, n := range counts {
				fmt.Fprintf(out, "%-10s %d\n", source, n)
			}
			return nil
		}

		items, err := p.ReadItems(ctx, pattern)
		if err != nil {
			return fmt.Errorf("failed to read items: %w", err)
		}

		stored, stats, err := a.discovery.Process(ctx, items)
		if err != nil {
			return fmt.Errorf("failed to process items: %w", err)
		}

		printStats(cmd, stats)
		for _, l := range stored {
			fmt.Fprintf(out, "  %s  %-6s %3d  %s\n", l.ID, l.Dossier.Priority, l.Dossier.Score, l.Dossier.Company)
		}
		return nil
	})
}

func printStats(cmd *cobra.Command, s pipeline.Stats) {
	fmt.Fprintf(cmd.OutOrStdout(), "Read %d, duplicates %d, stored %d, notified %d, failed %d\n",
		s.Read, s.Duplicates, s.Stored, s.Notified, s.Failed)
}
