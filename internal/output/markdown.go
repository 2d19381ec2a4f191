// Package output renders lead dossiers as Markdown files.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Dany7865/IITR-esummit07/internal/dossier"
	"github.com/Dany7865/IITR-esummit07/internal/lead"
	"github.com/Dany7865/IITR-esummit07/internal/signals"
)

type Generator struct {
	outputDir string
}

func NewGenerator(outputDir string) *Generator {
	return &Generator{
		outputDir: outputDir,
	}
}

// Generate writes one file per lead plus an index, returning the paths
// written with the index last.
func (g *Generator) Generate(leads []*lead.Lead) ([]string, error) {
	leadDir := filepath.Join(g.outputDir, "leads")
	if err := os.MkdirAll(leadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create leads directory: %w", err)
	}

	var files []string
	names := make([]string, 0, len(leads))
	for _, l := range leads {
		name := FileName(l)
		path := filepath.Join(leadDir, name)
		if err := os.WriteFile(path, []byte(Render(l)), 0644); err != nil {
			return nil, fmt.Errorf("failed to write dossier %s: %w", l.ID, err)
		}
		files = append(files, path)
		names = append(names, name)
	}

	index := filepath.Join(g.outputDir, "index.md")
	if err := os.WriteFile(index, []byte(renderIndex(leads, names)), 0644); err != nil {
		return nil, fmt.Errorf("failed to write index: %w", err)
	}

	return append(files, index), nil
}

// FileName is "<priority>-<company>-<id prefix>.md".
func FileName(l *lead.Lead) string {
	id := l.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s-%s-%s.md",
		strings.ToLower(string(l.Dossier.Priority)),
		sanitizeFilename(l.Dossier.Company),
		id,
	)
}

// Render formats a single lead's dossier.
func Render(l *lead.Lead) string {
	d := l.Dossier

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", emptyFallback(d.Company, "Unknown company"))
	fmt.Fprintf(&sb, "**Lead:** %s\n", l.ID)
	fmt.Fprintf(&sb, "**Status:** %s\n", l.Status)
	if l.AssignedOfficerID != "" {
		fmt.Fprintf(&sb, "**Officer:** %s\n", l.AssignedOfficerID)
	}
	fmt.Fprintf(&sb, "**Industry:** %s\n", d.Industry)
	fmt.Fprintf(&sb, "**Priority:** %s\n", d.Priority)
	fmt.Fprintf(&sb, "**Score:** %d | **Confidence:** %d | **Intent:** %d\n", d.Score, d.Confidence, d.IntentScore)
	fmt.Fprintf(&sb, "**Source:** %s", emptyFallback(d.Source, "manual"))
	if d.SourceURL != "" {
		fmt.Fprintf(&sb, " (%s)", d.SourceURL)
	}
	fmt.Fprintf(&sb, "\n**Created:** %s\n\n", l.CreatedAt.Format("2006-01-02"))

	sb.WriteString("## Summary\n\n")
	fmt.Fprintf(&sb, "%s\n\n", emptyFallback(d.Summary, truncate(d.RawText, 300)))

	sb.WriteString("## Recommended Products\n\n")
	for i, p := range d.Products {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, p)
	}
	if d.ProductReasoning != "" {
		fmt.Fprintf(&sb, "\n%s\n", d.ProductReasoning)
	}
	sb.WriteString("\n")

	writeList(&sb, "Requirement Clues", d.RequirementClues)
	writeList(&sb, "Suggested Actions", d.SuggestedActions)

	if len(d.Fingerprint) > 0 {
		sb.WriteString("## Signal Fingerprint\n\n")
		for _, f := range d.Fingerprint {
			fmt.Fprintf(&sb, "- **%s** → %s: %s\n", f.Event, strings.Join(signals.ProductNames(f.Products), ", "), f.Reasoning)
		}
		sb.WriteString("\n")
	}

	writeWhyUs(&sb, d.WhyUs)

	if d.PitchScript != "" {
		sb.WriteString("## Pitch Script\n\n")
		fmt.Fprintf(&sb, "> %s\n\n", strings.ReplaceAll(d.PitchScript, "\n", "\n> "))
	}

	sb.WriteString("## Source Text\n\n")
	fmt.Fprintf(&sb, "%s\n", d.RawText)

	return sb.String()
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "## %s\n\n", title)
	for _, it := range items {
		fmt.Fprintf(sb, "- %s\n", it)
	}
	sb.WriteString("\n")
}

func writeWhyUs(sb *strings.Builder, w dossier.WhyUs) {
	if w.PrimaryHeadline == "" {
		return
	}
	sb.WriteString("## Why Us\n\n")
	fmt.Fprintf(sb, "### %s\n\n", w.PrimaryHeadline)
	for _, p := range w.PrimaryPoints {
		fmt.Fprintf(sb, "- %s\n", p)
	}
	if w.PrimaryCTA != "" {
		fmt.Fprintf(sb, "\n**Next step:** %s\n", w.PrimaryCTA)
	}
	sb.WriteString("\n")
}

func renderIndex(leads []*lead.Lead, names []string) string {
	var sb strings.Builder
	sb.WriteString("# Leads\n\n")
	if len(leads) == 0 {
		sb.WriteString("No leads.\n")
		return sb.String()
	}

	sb.WriteString("| Priority | Score | Company | Industry | Status | Dossier |\n")
	sb.WriteString("|---|---|---|---|---|---|\n")
	for i, l := range leads {
		d := l.Dossier
		fmt.Fprintf(&sb, "| %s | %d | %s | %s | %s | [open](leads/%s) |\n",
			d.Priority, d.Score, escapeCell(emptyFallback(d.Company, "Unknown")), escapeCell(string(d.Industry)), l.Status, names[i])
	}
	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func emptyFallback(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

func sanitizeFilename(s string) string {
	result := unsafeChars.ReplaceAllString(s, "-")
	result = strings.Trim(result, "-")
	if len(result) > 50 {
		result = result[:50]
	}
	if result == "" {
		result = "unnamed"
	}
	return strings.ToLower(result)
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) > maxLen {
		return string(r[:maxLen]) + "..."
	}
	return s
}
