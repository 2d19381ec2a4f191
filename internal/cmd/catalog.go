package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Dany7865/IITR-esummit07/internal/signals"
)

var catalogSignals bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the industry verticals, their keywords and product mapping",
	Long: `Show the classification catalog: every vertical in tie-break order with
the keywords that indicate it and the products recommended for it. With
--signals, also show the trigger-to-product signal graph used to build
dossier fingerprints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "INDUSTRY\tKEYWORDS\tPRODUCTS")
		for _, v := range signals.Verticals() {
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				v.Industry,
				strings.Join(v.Keywords, ", "),
				strings.Join(signals.ProductNames(signals.ProductsFor(v.Industry)), ", "))
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if !catalogSignals {
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout())
		w = tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TRIGGER\tCATEGORY\tSTRENGTH\tPRODUCTS")
		for _, e := range signals.SignalGraph() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				e.Trigger, e.Category, e.Strength,
				strings.Join(signals.ProductNames(e.Products), ", "))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().BoolVar(&catalogSignals, "signals", false, "Also show the trigger-to-product signal graph")
}
