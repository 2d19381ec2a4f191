// Package parser reads raw discovery items from newline-delimited JSON files
// using DuckDB's JSON reader.
package parser

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Dany7865/IITR-esummit07/internal/db"
)

const DefaultSource = "manual"

// Item is one unscored piece of text about a company.
type Item struct {
	Company   string `json:"company"`
	RawText   string `json:"raw_text"`
	Source    string `json:"source"`
	SourceURL string `json:"source_url"`
}

// Normalize trims every field and fills in the default source. It reports
// false when the item has no text to score.
func (it Item) Normalize() (Item, bool) {
	it.Company = strings.TrimSpace(it.Company)
	it.RawText = strings.TrimSpace(it.RawText)
	it.Source = strings.ToLower(strings.TrimSpace(it.Source))
	it.SourceURL = strings.TrimSpace(it.SourceURL)
	if it.Source == "" {
		it.Source = DefaultSource
	}
	return it, it.RawText != ""
}

type Parser struct {
	db *sql.DB
}

func NewParser(database *sql.DB) *Parser {
	return &Parser{db: database}
}

// ReadItems reads every item from the JSONL files matching pattern (a path
// or glob). Malformed lines and items without text are skipped; a row that
// cannot be scanned is an error.
func (p *Parser) ReadItems(ctx context.Context, pattern string) ([]Item, error) {
	if err := db.LoadJSON(ctx, p.db); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT
			COALESCE(company, ''),
			COALESCE(raw_text, ''),
			COALESCE(source, ''),
			COALESCE(source_url, '')
		FROM read_json('%s',
			format = 'newline_delimited',
			columns = {company: 'VARCHAR', raw_text: 'VARCHAR', source: 'VARCHAR', source_url: 'VARCHAR'},
			ignore_errors = true
		)
	`, quote(pattern))

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// scanItems drains rows into normalized items. A scan failure aborts the
// read; lines DuckDB could not parse never reach this point.
func scanItems(rows rowScanner) ([]Item, error) {
	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.Company, &it.RawText, &it.Source, &it.SourceURL); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		if it, ok := it.Normalize(); ok {
			items = append(items, it)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return items, nil
}

// CountItems returns the number of readable lines per source.
func (p *Parser) CountItems(ctx context.Context, pattern string) (map[string]int, error) {
	if err := db.LoadJSON(ctx, p.db); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT COALESCE(NULLIF(lower(trim(source)), ''), '%s') AS src, COUNT(*)
		FROM read_json('%s',
			format = 'newline_delimited',
			columns = {source: 'VARCHAR', raw_text: 'VARCHAR'},
			ignore_errors = true
		)
		WHERE raw_text IS NOT NULL AND trim(raw_text) != ''
		GROUP BY src
	`, DefaultSource, quote(pattern))

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count items: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var src string
		var n int
		if err := rows.Scan(&src, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[src] = n
	}
	return counts, rows.Err()
}

func quote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
