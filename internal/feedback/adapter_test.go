package feedback

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dany7865/IITR-esummit07/internal/weights"
)

func TestRecompute(t *testing.T) {
	tests := []struct {
		name     string
		outcomes []IndustryOutcome
		want     map[string]float64
	}{
		{
			name: "marine three converted one rejected",
			outcomes: []IndustryOutcome{
				{"Marine", OutcomeConverted},
				{"Marine", OutcomeConverted},
				{"Marine", OutcomeConverted},
				{"Marine", OutcomeRejected},
			},
			want: map[string]float64{"industry_Marine": 1.11},
		},
		{
			name:     "single rejection",
			outcomes: []IndustryOutcome{{"Cement", OutcomeRejected}},
			want:     map[string]float64{"industry_Cement": 0.85},
		},
		{
			name:     "single acceptance",
			outcomes: []IndustryOutcome{{"Aviation", OutcomeAccepted}},
			want:     map[string]float64{"industry_Aviation": 1.2},
		},
		{
			name: "empty industry groups as unknown",
			outcomes: []IndustryOutcome{
				{"", OutcomeAssigned},
				{"", OutcomeNew},
				{"", OutcomeRejected},
				{"", OutcomeRejected},
			},
			want: map[string]float64{"industry_Unknown": 0.94},
		},
		{
			name:     "no history",
			outcomes: nil,
			want:     map[string]float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := map[string]float64{}
			for _, r := range Recompute(tt.outcomes) {
				assert.Equal(t, weights.TypeIndustry, r.SignalType)
				got[r.Key] = r.Weight
			}
			require.Len(t, got, len(tt.want))
			for k, w := range tt.want {
				assert.InDelta(t, w, got[k], 1e-9, k)
			}
		})
	}
}

func TestRecompute_SortedByKey(t *testing.T) {
	records := Recompute([]IndustryOutcome{
		{"Marine", OutcomeConverted},
		{"Cement", OutcomeRejected},
		{"Aviation", OutcomeAccepted},
	})

	require.Len(t, records, 3)
	assert.Equal(t, "industry_Aviation", records[0].Key)
	assert.Equal(t, "industry_Cement", records[1].Key)
	assert.Equal(t, "industry_Marine", records[2].Key)
}

func TestOutcome(t *testing.T) {
	assert.True(t, OutcomeConverted.IsValid())
	assert.False(t, Outcome("Maybe").IsValid())

	assert.True(t, OutcomeAssigned.Positive())
	assert.True(t, OutcomeAccepted.Positive())
	assert.True(t, OutcomeConverted.Positive())
	assert.False(t, OutcomeRejected.Positive())
	assert.False(t, OutcomeNew.Positive())
}

type fakeLeads struct {
	industries map[string]string
	statuses   map[string]Outcome
	officers   map[string]string
}

func newFakeLeads(industries map[string]string) *fakeLeads {
	return &fakeLeads{
		industries: industries,
		statuses:   map[string]Outcome{},
		officers:   map[string]string{},
	}
}

func (f *fakeLeads) UpdateStatus(_ context.Context, leadID string, status Outcome, officerID string) error {
	if _, ok := f.industries[leadID]; !ok {
		return assert.AnError
	}
	f.statuses[leadID] = status
	if officerID != "" {
		f.officers[leadID] = officerID
	}
	return nil
}

func (f *fakeLeads) Industry(_ context.Context, leadID string) (string, error) {
	return f.industries[leadID], nil
}

func TestAdapter_RecordOutcome(t *testing.T) {
	ctx := context.Background()
	leads := newFakeLeads(map[string]string{
		"m1": "Marine", "m2": "Marine", "m3": "Marine", "m4": "Marine",
	})
	log := NewMemoryLog(leads.Industry)
	store := weights.NewMemoryStore()
	a := NewAdapter(log, leads, store, nil)

	for _, id := range []string{"m1", "m2", "m3"} {
		_, err := a.RecordOutcome(ctx, id, OutcomeConverted, "", "")
		require.NoError(t, err)
	}
	ev, err := a.RecordOutcome(ctx, "m4", OutcomeRejected, "officer-7", "not relevant")
	require.NoError(t, err)

	assert.Equal(t, int64(4), ev.ID)
	assert.Equal(t, "officer-7", ev.OfficerID)
	assert.False(t, ev.CreatedAt.IsZero())

	w, err := store.Get(ctx, "industry_Marine")
	require.NoError(t, err)
	assert.InDelta(t, 1.11, w, 1e-9)

	assert.Equal(t, OutcomeRejected, leads.statuses["m4"])
	assert.Equal(t, "officer-7", leads.officers["m4"])
	assert.Empty(t, leads.officers["m1"])
	assert.Len(t, log.Events(), 4)
}

func TestAdapter_RecordOutcome_Invalid(t *testing.T) {
	ctx := context.Background()
	leads := newFakeLeads(map[string]string{"c1": "Cement"})
	log := NewMemoryLog(leads.Industry)
	a := NewAdapter(log, leads, weights.NewMemoryStore(), nil)

	_, err := a.RecordOutcome(ctx, "c1", Outcome("Maybe"), "", "")
	require.ErrorIs(t, err, ErrInvalidOutcome)

	_, err = a.RecordOutcome(ctx, "missing", OutcomeAccepted, "", "")
	require.Error(t, err)

	_, err = a.RecordOutcome(ctx, "", OutcomeAccepted, "", "")
	require.Error(t, err)

	assert.Empty(t, log.Events())
}

func TestAdapter_RecomputeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	leads := newFakeLeads(map[string]string{"c1": "Cement", "c2": "Cement"})
	log := NewMemoryLog(leads.Industry)
	store := weights.NewMemoryStore()
	a := NewAdapter(log, leads, store, nil)

	_, err := a.RecordOutcome(ctx, "c1", OutcomeAccepted, "", "")
	require.NoError(t, err)
	_, err = a.RecordOutcome(ctx, "c2", OutcomeRejected, "", "")
	require.NoError(t, err)

	first, err := store.All(ctx)
	require.NoError(t, err)

	_, err = a.RecomputeWeights(ctx)
	require.NoError(t, err)
	_, err = a.RecomputeWeights(ctx)
	require.NoError(t, err)

	second, err := store.All(ctx)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Key, second[i].Key)
		assert.InDelta(t, first[i].Weight, second[i].Weight, 0)
	}
}

type unavailableLog struct{ MemoryLog }

func (*unavailableLog) Outcomes(context.Context) ([]IndustryOutcome, error) {
	return nil, assert.AnError
}

func TestAdapter_RefreshWithUnavailableHistoryIsNoop(t *testing.T) {
	ctx := context.Background()
	store := weights.NewMemoryStore()
	require.NoError(t, store.Upsert(ctx, "industry_Marine", 1.2))

	a := NewAdapter(&unavailableLog{}, nil, store, nil)

	_, err := a.RecordOutcome(ctx, "x", OutcomeConverted, "", "")
	require.NoError(t, err)

	all, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.InDelta(t, 1.2, all[0].Weight, 1e-9)

	_, err = a.RecomputeWeights(ctx)
	require.ErrorIs(t, err, assert.AnError)
}

type restorableLeads struct {
	*fakeLeads
}

func (f restorableLeads) Status(_ context.Context, leadID string) (Outcome, string, error) {
	if _, ok := f.industries[leadID]; !ok {
		return "", "", assert.AnError
	}
	status, ok := f.statuses[leadID]
	if !ok {
		status = OutcomeNew
	}
	return status, f.officers[leadID], nil
}

func (f restorableLeads) RestoreStatus(_ context.Context, leadID string, status Outcome, officerID string) error {
	f.statuses[leadID] = status
	if officerID == "" {
		delete(f.officers, leadID)
	} else {
		f.officers[leadID] = officerID
	}
	return nil
}

type failingAppendLog struct{ MemoryLog }

func (*failingAppendLog) Append(context.Context, Event) (Event, error) {
	return Event{}, assert.AnError
}

func TestAdapter_RecordOutcome_AppendFailureRestoresStatus(t *testing.T) {
	ctx := context.Background()
	leads := restorableLeads{newFakeLeads(map[string]string{"c1": "Cement", "c2": "Cement"})}
	leads.statuses["c2"] = OutcomeAssigned
	leads.officers["c2"] = "officer-1"

	a := NewAdapter(&failingAppendLog{}, leads, weights.NewMemoryStore(), nil)

	tests := []struct {
		leadID      string
		officerID   string
		wantStatus  Outcome
		wantOfficer string
	}{
		{"c1", "officer-9", OutcomeNew, ""},
		{"c2", "officer-9", OutcomeAssigned, "officer-1"},
	}

	for _, tt := range tests {
		t.Run(tt.leadID, func(t *testing.T) {
			_, err := a.RecordOutcome(ctx, tt.leadID, OutcomeAssigned, tt.officerID, "")
			require.ErrorIs(t, err, assert.AnError)

			status, officer, err := leads.Status(ctx, tt.leadID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantOfficer, officer)
		})
	}
}

type activeOfficers map[string]bool

func (o activeOfficers) Active(_ context.Context, id string) (bool, error) {
	return o[id], nil
}

func TestAdapter_RecordOutcome_ChecksOfficer(t *testing.T) {
	ctx := context.Background()
	leads := newFakeLeads(map[string]string{"c1": "Cement"})
	log := NewMemoryLog(leads.Industry)
	a := NewAdapter(log, leads, weights.NewMemoryStore(), nil,
		WithOfficers(activeOfficers{"officer-1": true, "retired": false}))

	for _, id := range []string{"ghost", "retired"} {
		_, err := a.RecordOutcome(ctx, "c1", OutcomeAssigned, id, "")
		require.ErrorIs(t, err, ErrUnknownOfficer, id)
	}
	assert.Empty(t, log.Events())
	assert.Empty(t, leads.statuses)

	_, err := a.RecordOutcome(ctx, "c1", OutcomeAssigned, "officer-1", "")
	require.NoError(t, err)
	_, err = a.RecordOutcome(ctx, "c1", OutcomeAccepted, "", "")
	require.NoError(t, err, "outcomes without an officer skip the check")
	assert.Len(t, log.Events(), 2)
}
