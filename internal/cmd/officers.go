package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dany7865/IITR-esummit07/internal/notify"
	"github.com/Dany7865/IITR-esummit07/internal/officer"
)

var (
	officersAll   bool
	officerName   string
	officerPhone  string
	officerEmail  string
	officerRegion string

	notificationsOfficer string
	notificationsLimit   int
)

var officersCmd = &cobra.Command{
	Use:   "officers",
	Short: "List the sales officers leads can be assigned to",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			officers, err := a.officers.List(cmd.Context(), !officersAll)
			if err != nil {
				return fmt.Errorf("failed to list officers: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPHONE\tREGION\tACTIVE")
			for _, o := range officers {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", o.ID, o.Name, o.Phone, o.Region, o.Active)
			}
			return w.Flush()
		})
	},
}

var officersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register an active sales officer",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			o := officer.New(officerName, officerPhone, officerEmail, officerRegion, time.Now())
			if err := a.officers.Create(cmd.Context(), o); err != nil {
				return fmt.Errorf("failed to add officer: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added officer %s (%s)\n", o.Name, o.ID)
			return nil
		})
	},
}

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Show an officer's notification history, newest first",
	Long: `Show the alerts delivered to an officer, newest first. Without --officer
the first active officer's history is shown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			ctx := cmd.Context()
			officerID := notificationsOfficer
			if officerID == "" {
				o, err := officer.FirstActive(ctx, a.officers)
				if err != nil {
					return fmt.Errorf("failed to resolve officer: %w", err)
				}
				officerID = o.ID
			}

			records, err := a.inbox.ForOfficer(ctx, officerID, notificationsLimit)
			if err != nil {
				return fmt.Errorf("failed to list notifications: %w", err)
			}
			if len(records) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No notifications for officer %s\n", officerID)
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SENT\tTYPE\tCHANNEL\tLEAD\tTITLE")
			for _, r := range records {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					r.SentAt.Format("2006-01-02 15:04"), r.Kind, r.Channel, r.LeadID, r.Title)
			}
			return w.Flush()
		})
	},
}

func init() {
	rootCmd.AddCommand(officersCmd)
	rootCmd.AddCommand(notificationsCmd)
	officersCmd.AddCommand(officersAddCmd)

	officersCmd.Flags().BoolVar(&officersAll, "all", false, "Include inactive officers")

	f := officersAddCmd.Flags()
	f.StringVar(&officerName, "name", "", "Officer name")
	f.StringVar(&officerPhone, "phone", "", "WhatsApp number")
	f.StringVar(&officerEmail, "email", "", "Email address")
	f.StringVar(&officerRegion, "region", "", "Sales region")
	_ = officersAddCmd.MarkFlagRequired("name")

	notificationsCmd.Flags().StringVar(&notificationsOfficer, "officer", "", "Officer id (default: first active officer)")
	notificationsCmd.Flags().IntVar(&notificationsLimit, "limit", notify.DefaultInboxLimit, "Maximum notifications to show")
}
