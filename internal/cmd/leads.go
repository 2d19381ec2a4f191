package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Dany7865/IITR-esummit07/internal/aggregator"
	"github.com/Dany7865/IITR-esummit07/internal/feedback"
	"github.com/Dany7865/IITR-esummit07/internal/lead"
)

var (
	leadsFilter lead.Filter
	leadsStatus string
	leadsMin    int
	leadsMax    int
	leadsJSON   bool
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "List stored leads, highest score first",
	RunE:  runLeads,
}

var leadShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one lead with its dossier and feedback history",
	Args:  cobra.ExactArgs(1),
	RunE:  runLeadShow,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise the lead pipeline per industry",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(leadsCmd)
	rootCmd.AddCommand(statsCmd)
	leadsCmd.AddCommand(leadShowCmd)

	f := leadsCmd.Flags()
	f.StringVar(&leadsFilter.Company, "company", "", "Company name contains")
	f.StringVar(&leadsFilter.Industry, "industry", "", "Industry contains")
	f.StringVar(&leadsFilter.Priority, "priority", "", "HIGH, MEDIUM or LOW")
	f.StringVar(&leadsStatus, "status", "", "Lead status")
	f.IntVar(&leadsMin, "min-score", -1, "Minimum score")
	f.IntVar(&leadsMax, "max-score", -1, "Maximum score")
	f.IntVar(&leadsFilter.Limit, "limit", lead.DefaultLimit, "Maximum leads to list")
	f.IntVar(&leadsFilter.Offset, "offset", 0, "Leads to skip")
	f.BoolVar(&leadsJSON, "json", false, "Print JSON")

	statsCmd.Flags().BoolVar(&leadsJSON, "json", false, "Print JSON")
}

func runLeads(cmd *cobra.Command, args []string) error {
	f := leadsFilter
	if leadsStatus != "" {
		f.Status = feedback.Outcome(leadsStatus)
		if !f.Status.IsValid() {
			return fmt.Errorf("invalid status %q", leadsStatus)
		}
	}
	if leadsMin >= 0 {
		f.MinScore = &leadsMin
	}
	if leadsMax >= 0 {
		f.MaxScore = &leadsMax
	}

	return withApp(cmd.Context(), func(a *app) error {
		leads, err := a.leads.List(cmd.Context(), f)
		if err != nil {
			return fmt.Errorf("failed to list leads: %w", err)
		}
		if leadsJSON {
			return printJSON(cmd, leads)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPRIORITY\tSCORE\tSTATUS\tINDUSTRY\tCOMPANY")
		for _, l := range leads {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
				l.ID, l.Dossier.Priority, l.Dossier.Score, l.Status, l.Dossier.Industry, l.Dossier.Company)
		}
		return w.Flush()
	})
}

func runLeadShow(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		ctx := cmd.Context()
		l, err := a.leads.Get(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get lead %s: %w", args[0], err)
		}
		events, err := a.feedback.Events(ctx, l.ID)
		if err != nil {
			return fmt.Errorf("failed to read feedback: %w", err)
		}
		return printJSON(cmd, map[string]any{"lead": l, "feedback": events})
	})
}

func runStats(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		leads, err := a.leads.List(cmd.Context(), lead.Filter{Limit: lead.MaxLimit})
		if err != nil {
			return fmt.Errorf("failed to list leads: %w", err)
		}
		report := aggregator.NewAggregator(aggregator.DefaultConfig()).Aggregate(leads)
		if leadsJSON {
			return printJSON(cmd, report)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Leads: %d, average score %.1f\n", report.TotalLeads, report.AverageScore)
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "INDUSTRY\tLEADS\tHIGH\tAVG\tMAX\tCONVERSION\tPRODUCTS")
		for _, s := range report.Industries {
			conversion := "-"
			if s.ConversionRate != nil {
				conversion = fmt.Sprintf("%.1f%%", *s.ConversionRate)
			}
			fmt.Fprintf(w, "%s\t%d\t%d\t%.1f\t%d\t%s\t%v\n",
				s.Industry, s.Leads, s.High, s.AverageScore, s.MaxScore, conversion, s.TopProducts)
		}
		return w.Flush()
	})
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
