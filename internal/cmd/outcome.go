package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dany7865/IITR-esummit07/internal/feedback"
	"github.com/Dany7865/IITR-esummit07/internal/logger"
)

var (
	outcomeOfficer string
	outcomeNotes   string
)

var outcomeCmd = &cobra.Command{
	Use:   "outcome <lead-id> <outcome>",
	Short: "Record a sales outcome for a lead and adapt the weights",
	Long: `Record an outcome (New, Assigned, Accepted, Rejected, Converted) for a
lead. The lead's status changes to the outcome and every industry weight is
recomputed from the full outcome history. --officer must name an active
officer from "leadscope officers".`,
	Args: cobra.ExactArgs(2),
	RunE: runOutcome,
}

func init() {
	rootCmd.AddCommand(outcomeCmd)

	outcomeCmd.Flags().StringVar(&outcomeOfficer, "officer", "", "Sales officer id")
	outcomeCmd.Flags().StringVar(&outcomeNotes, "notes", "", "Free-text notes")
}

func runOutcome(cmd *cobra.Command, args []string) error {
	leadID, outcome := args[0], feedback.Outcome(args[1])

	return withApp(cmd.Context(), func(a *app) error {
		ctx := cmd.Context()
		ev, err := a.adapter.RecordOutcome(ctx, leadID, outcome, outcomeOfficer, outcomeNotes)
		if err != nil {
			return fmt.Errorf("failed to record outcome: %w", err)
		}

		if outcome == feedback.OutcomeAssigned && outcomeOfficer != "" {
			l, err := a.leads.Get(ctx, leadID)
			if err == nil {
				_, err = a.notifier.Assigned(ctx, leadID, outcomeOfficer, l.Dossier)
			}
			if err != nil {
				a.logger.Warn("Assignment notification failed", logger.String("lead_id", leadID), logger.Error(err))
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s for lead %s (event %d)\n", ev.Outcome, ev.LeadID, ev.ID)
		return nil
	})
}
