package pipeline

import (
	"context"
	"fmt"

	"github.com/Dany7865/IITR-esummit07/internal/lead"
	"github.com/Dany7865/IITR-esummit07/internal/parser"
)

// SampleItems are the demo leads loaded into an empty store.
func SampleItems() []parser.Item {
	return []parser.Item{
		{Company: "ABC Cement Ltd", RawText: "Cement expansion tender fuel supply", Source: "news"},
		{Company: "Oceanic Shipping Corp", RawText: "Marine fuel contract shipping vessels", Source: "news"},
		{Company: "Highway Infra Projects", RawText: "Road construction tender bitumen supply", Source: "tender"},
	}
}

// Seed stores the sample leads when no lead exists yet. It reports how many
// were stored.
func (d *Discovery) Seed(ctx context.Context) (int, error) {
	existing, err := d.leads.List(ctx, lead.Filter{Limit: 1})
	if err != nil {
		return 0, fmt.Errorf("failed to check for leads: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	_, stats, err := d.Process(ctx, SampleItems())
	if err != nil {
		return 0, err
	}
	return stats.Stored, nil
}
