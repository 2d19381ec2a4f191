package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dany7865/IITR-esummit07/internal/dossier"
	"github.com/Dany7865/IITR-esummit07/internal/lead"
	"github.com/Dany7865/IITR-esummit07/internal/parser"
	"github.com/Dany7865/IITR-esummit07/internal/scoring"
	"github.com/Dany7865/IITR-esummit07/internal/signals"
)

var (
	scoreFile    string
	scoreCompany string
	scoreJSON    bool
)

var scoreCmd = &cobra.Command{
	Use:   "score [text]",
	Short: "Score a text without storing it",
	Long: `Score a news item or tender text and print the result. The text is read
from the argument, from --file, or from stdin when neither is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringVarP(&scoreFile, "file", "f", "", "Read the text from a file")
	scoreCmd.Flags().StringVarP(&scoreCompany, "company", "c", "", "Company the text is about")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print the full dossier as JSON")
}

func runScore(cmd *cobra.Command, args []string) error {
	text, err := readScoreText(cmd, args)
	if err != nil {
		return err
	}

	return withApp(cmd.Context(), func(a *app) error {
		res := a.scorer.Score(cmd.Context(), text)
		d := dossier.Assemble(lead.NormalizeCompanyName(scoreCompany), text, parser.DefaultSource, "", res)

		out := cmd.OutOrStdout()
		if scoreJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{"result": res, "dossier": d})
		}

		printResult(out, res)
		return nil
	})
}

func readScoreText(cmd *cobra.Command, args []string) (string, error) {
	var raw []byte
	var err error
	switch {
	case len(args) == 1:
		raw = []byte(args[0])
	case scoreFile != "":
		raw, err = os.ReadFile(scoreFile)
	default:
		raw, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return "", fmt.Errorf("failed to read text: %w", err)
	}

	text := strings.TrimSpace(string(raw))
	if text == "" {
		return "", errors.New("no text to score")
	}
	return text, nil
}

func printResult(out io.Writer, res scoring.Result) {
	fmt.Fprintf(out, "Score:      %d\n", res.Score)
	fmt.Fprintf(out, "Priority:   %s\n", res.Priority)
	fmt.Fprintf(out, "Confidence: %d%%\n", res.Confidence)
	fmt.Fprintf(out, "Industry:   %s\n", res.Industry)
	fmt.Fprintf(out, "Products:   %s\n", strings.Join(signals.ProductNames(res.Products), ", "))
	if len(res.RequirementClues) > 0 {
		fmt.Fprintf(out, "Clues:      %s\n", strings.Join(res.RequirementClues, ", "))
	}
	if len(res.Components) > 0 {
		fmt.Fprintln(out, "Components:")
		for _, c := range res.Components {
			if c.Key != "" {
				fmt.Fprintf(out, "  - %s: %d (%s x%.2f)\n", c.Name, c.Points, c.Key, c.Weight)
				continue
			}
			fmt.Fprintf(out, "  - %s: %d\n", c.Name, c.Points)
		}
	}
}
