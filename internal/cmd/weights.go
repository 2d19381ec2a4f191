package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Dany7865/IITR-esummit07/internal/weights"
)

var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "List the adaptive scoring weights",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			records, err := a.weights.All(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list weights: %w", err)
			}
			return printWeights(cmd, records)
		})
	},
}

var weightsRecomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Recompute industry weights from the outcome history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			records, err := a.adapter.RecomputeWeights(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to recompute weights: %w", err)
			}
			return printWeights(cmd, records)
		})
	},
}

func init() {
	rootCmd.AddCommand(weightsCmd)
	weightsCmd.AddCommand(weightsRecomputeCmd)
}

func printWeights(cmd *cobra.Command, records []weights.Record) error {
	if len(records) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No learned weights, every key scores at %.2f\n", weights.DefaultWeight)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tWEIGHT\tTYPE\tUPDATED")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%.2f\t%s\t%s\n", r.Key, r.Weight, r.SignalType, r.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
