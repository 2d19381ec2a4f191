package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dany7865/IITR-esummit07/internal/logger"
	"github.com/Dany7865/IITR-esummit07/internal/weights"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATABASE_PATH", filepath.Join(dir, "leads.duckdb"))
	t.Setenv("LOG_LEVEL", "error")
	configPath = filepath.Join(dir, "missing.yaml")

	out := run(t, "version")
	assert.Contains(t, out, "leadscope version dev")

	out = run(t, "catalog", "--signals")
	assert.Contains(t, out, "Cement")
	assert.Contains(t, out, "Petcoke, Furnace Oil, Industrial Fuels")
	assert.Contains(t, out, "medium")
	catalogSignals = false

	out = run(t, "score", "Cement expansion tender fuel supply")
	assert.Contains(t, out, "Score:      99")
	assert.Contains(t, out, "Priority:   HIGH")

	out = run(t, "seed")
	assert.Contains(t, out, "Seeded 3 sample leads")
	out = run(t, "seed")
	assert.Contains(t, out, "nothing seeded")

	out = run(t, "leads", "--priority", "high")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "ABC Cement")

	out = run(t, "stats")
	assert.Contains(t, out, "Leads: 3")

	out = run(t, "officers")
	assert.Contains(t, out, "Default Officer")
	out = run(t, "officers", "add", "--name", "West Desk", "--region", "West")
	assert.Contains(t, out, "Added officer West Desk")
	out = run(t, "officers")
	assert.Contains(t, out, "West Desk")

	out = run(t, "notifications")
	assert.Contains(t, out, "new_lead")
	assert.Contains(t, out, "New lead: ABC Cement")

	exportDir := filepath.Join(dir, "out")
	out = run(t, "export", "--out", exportDir)
	assert.Contains(t, out, "Generated 4 files")
	assert.FileExists(t, filepath.Join(exportDir, "index.md"))
}

func TestReadScoreText(t *testing.T) {
	scoreFile = ""
	text, err := readScoreText(scoreCmd, []string{"  tender  "})
	require.NoError(t, err)
	assert.Equal(t, "tender", text)

	scoreCmd.SetIn(strings.NewReader("   "))
	_, err = readScoreText(scoreCmd, nil)
	assert.Error(t, err)
}

type unreadableWeights struct {
	weights.Store
}

func (unreadableWeights) All(context.Context) ([]weights.Record, error) {
	return nil, assert.AnError
}

func TestStoredWeights(t *testing.T) {
	ctx := context.Background()

	store := weights.NewMemoryStore()
	require.NoError(t, store.Upsert(ctx, "industry_Cement", 1.2))
	assert.Equal(t, map[string]float64{"industry_Cement": 1.2}, storedWeights(ctx, store, logger.NewNop()))

	got := storedWeights(ctx, unreadableWeights{store}, logger.NewNop())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
