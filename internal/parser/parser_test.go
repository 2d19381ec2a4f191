package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dany7865/IITR-esummit07/internal/db"
)

func TestItem_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Item
		want Item
		ok   bool
	}{
		{
			name: "trims and lowercases source",
			in:   Item{Company: " ABC Cement ", RawText: " expansion ", Source: " News "},
			want: Item{Company: "ABC Cement", RawText: "expansion", Source: "news"},
			ok:   true,
		},
		{
			name: "default source",
			in:   Item{RawText: "tender"},
			want: Item{RawText: "tender", Source: DefaultSource},
			ok:   true,
		},
		{
			name: "blank text",
			in:   Item{Company: "ABC", RawText: "   "},
			want: Item{Company: "ABC", Source: DefaultSource},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.in.Normalize()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuote(t *testing.T) {
	assert.Equal(t, "/tmp/o''brien/*.jsonl", quote("/tmp/o'brien/*.jsonl"))
}

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	ctx := context.Background()
	database, err := db.Open(ctx, "")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	if err := db.LoadJSON(ctx, database); err != nil {
		t.Skipf("json extension unavailable: %v", err)
	}
	return NewParser(database)
}

func TestParser_ReadItems(t *testing.T) {
	p := newTestParser(t)

	path := filepath.Join(t.TempDir(), "items.jsonl")
	content := `{"company": "ABC Cement Ltd", "raw_text": "Cement expansion tender fuel supply", "source": "News", "source_url": "https://example.com/a"}
{"company": "Oceanic Shipping", "raw_text": "Marine fuel contract shipping vessels"}
{"company": "Empty", "raw_text": ""}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	items, err := p.ReadItems(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, Item{
		Company:   "ABC Cement Ltd",
		RawText:   "Cement expansion tender fuel supply",
		Source:    "news",
		SourceURL: "https://example.com/a",
	}, items[0])
	assert.Equal(t, DefaultSource, items[1].Source)

	counts, err := p.CountItems(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"news": 1, DefaultSource: 1}, counts)
}

type fakeRows struct {
	rows    [][]string
	scanErr error
	pos     int
}

func (r *fakeRows) Next() bool {
	r.pos++
	return r.pos <= len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	for i, v := range r.rows[r.pos-1] {
		*dest[i].(*string) = v
	}
	return nil
}

func (r *fakeRows) Err() error { return nil }

func TestScanItems(t *testing.T) {
	rows := &fakeRows{rows: [][]string{
		{"ABC Cement", "kiln expansion", "", ""},
		{"Blank", "  ", "news", ""},
	}}

	items, err := scanItems(rows)
	require.NoError(t, err)
	assert.Equal(t, []Item{{Company: "ABC Cement", RawText: "kiln expansion", Source: DefaultSource}}, items)
}

func TestScanItems_ScanFailure(t *testing.T) {
	rows := &fakeRows{
		rows:    [][]string{{"ABC Cement", "kiln expansion", "", ""}},
		scanErr: assert.AnError,
	}

	items, err := scanItems(rows)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, items)
}
