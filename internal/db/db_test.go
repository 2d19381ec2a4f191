package db

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dany7865/IITR-esummit07/internal/dossier"
	"github.com/Dany7865/IITR-esummit07/internal/feedback"
	"github.com/Dany7865/IITR-esummit07/internal/lead"
	"github.com/Dany7865/IITR-esummit07/internal/notify"
	"github.com/Dany7865/IITR-esummit07/internal/officer"
	"github.com/Dany7865/IITR-esummit07/internal/scoring"
	"github.com/Dany7865/IITR-esummit07/internal/signals"
	"github.com/Dany7865/IITR-esummit07/internal/weights"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen_Idempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, migrate(context.Background(), db))
}

func TestWeightStore(t *testing.T) {
	ctx := context.Background()
	s := NewWeightStore(openTestDB(t))

	w, err := s.Get(ctx, "industry_Marine")
	require.NoError(t, err)
	assert.Equal(t, weights.DefaultWeight, w)

	require.NoError(t, s.Upsert(ctx, "industry_Marine", 1.11))
	require.NoError(t, s.Upsert(ctx, "industry_Marine", 1.2))
	require.NoError(t, s.Upsert(ctx, "signal_expansion", 0.9))

	w, err = s.Get(ctx, "industry_Marine")
	require.NoError(t, err)
	assert.InDelta(t, 1.2, w, 1e-9)

	all, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "industry_Marine", all[0].Key)
	assert.Equal(t, weights.TypeIndustry, all[0].SignalType)
	assert.Equal(t, "signal_expansion", all[1].Key)
	assert.Equal(t, weights.TypeSignal, all[1].SignalType)
	assert.False(t, all[0].UpdatedAt.IsZero())
}

func testLead(company string, industry signals.Industry, score int, created time.Time) *lead.Lead {
	return lead.New(dossier.Dossier{
		Company:  company,
		RawText:  company + " announces new plant",
		Source:   "news",
		Industry: industry,
		Products: []signals.Product{signals.ProductFurnaceOil},
		Score:    score,
		Priority: scoring.PriorityMedium,
		Fingerprint: []signals.FingerprintEntry{
			{Event: "expansion", Products: []signals.Product{signals.ProductFurnaceOil}},
		},
	}, created)
}

func TestLeadRepository_CreateGet(t *testing.T) {
	ctx := context.Background()
	repo := NewLeadRepository(openTestDB(t))

	l := testLead("Oceanic Shipping", signals.IndustryMarine, 70, time.Now())
	require.NoError(t, repo.Create(ctx, l))

	got, err := repo.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, l.ID, got.ID)
	assert.Equal(t, l.Key, got.Key)
	assert.Equal(t, feedback.OutcomeNew, got.Status)
	assert.Equal(t, "Oceanic Shipping", got.Dossier.Company)
	assert.Equal(t, signals.IndustryMarine, got.Dossier.Industry)
	assert.Equal(t, l.Dossier.Fingerprint, got.Dossier.Fingerprint)

	_, err = repo.Get(ctx, lead.NewID())
	assert.ErrorIs(t, err, lead.ErrNotFound)

	industry, err := repo.Industry(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "Marine", industry)
}

func TestLeadRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := NewLeadRepository(openTestDB(t))
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	a := testLead("ABC Cement", signals.IndustryCement, 99, base)
	b := testLead("Oceanic Shipping", signals.IndustryMarine, 70, base.Add(time.Hour))
	c := testLead("Highway Infra", signals.IndustryConstruction, 70, base.Add(2*time.Hour))
	for _, l := range []*lead.Lead{a, b, c} {
		require.NoError(t, repo.Create(ctx, l))
	}

	all, err := repo.List(ctx, lead.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{a.ID, c.ID, b.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	marine, err := repo.List(ctx, lead.Filter{Industry: "mar"})
	require.NoError(t, err)
	require.Len(t, marine, 1)
	assert.Equal(t, b.ID, marine[0].ID)

	minScore := 80
	high, err := repo.List(ctx, lead.Filter{MinScore: &minScore})
	require.NoError(t, err)
	require.Len(t, high, 1)
	assert.Equal(t, a.ID, high[0].ID)

	page, err := repo.List(ctx, lead.Filter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, c.ID, page[0].ID)

	keys, err := repo.CanonicalKeys(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, 3)
	assert.Contains(t, keys, a.Key)
}

func TestLeadRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewLeadRepository(openTestDB(t))

	l := testLead("ABC Cement", signals.IndustryCement, 99, time.Now())
	require.NoError(t, repo.Create(ctx, l))

	require.NoError(t, repo.UpdateStatus(ctx, l.ID, feedback.OutcomeAssigned, "officer-7"))
	require.NoError(t, repo.UpdateStatus(ctx, l.ID, feedback.OutcomeConverted, ""))

	got, err := repo.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, feedback.OutcomeConverted, got.Status)
	assert.Equal(t, "officer-7", got.AssignedOfficerID)

	err = repo.UpdateStatus(ctx, lead.NewID(), feedback.OutcomeRejected, "")
	assert.ErrorIs(t, err, lead.ErrNotFound)
}

func TestFeedbackLoop(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewLeadRepository(db)
	log := NewFeedbackLog(db)
	store := NewWeightStore(db)
	adapter := feedback.NewAdapter(log, repo, store, nil)

	var ids []string
	for _, name := range []string{"Oceanic Shipping", "Blue Water Lines", "Harbour Marine", "Coastal Tankers"} {
		l := testLead(name, signals.IndustryMarine, 70, time.Now())
		require.NoError(t, repo.Create(ctx, l))
		ids = append(ids, l.ID)
	}

	outcomes := []feedback.Outcome{
		feedback.OutcomeConverted, feedback.OutcomeConverted,
		feedback.OutcomeConverted, feedback.OutcomeRejected,
	}
	for i, o := range outcomes {
		ev, err := adapter.RecordOutcome(ctx, ids[i], o, "", "")
		require.NoError(t, err)
		assert.Positive(t, ev.ID)
	}

	w, err := store.Get(ctx, "industry_Marine")
	require.NoError(t, err)
	assert.InDelta(t, 1.11, w, 1e-9)

	events, err := log.Events(ctx, ids[3])
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, feedback.OutcomeRejected, events[0].Outcome)

	got, err := repo.Get(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, feedback.OutcomeConverted, got.Status)
}

func TestFeedbackLoop_UnknownLead(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewLeadRepository(db)
	log := NewFeedbackLog(db)
	adapter := feedback.NewAdapter(log, repo, NewWeightStore(db), nil)

	_, err := adapter.RecordOutcome(ctx, lead.NewID(), feedback.OutcomeAccepted, "", "")
	assert.ErrorIs(t, err, lead.ErrNotFound)

	outcomes, err := log.Outcomes(ctx)
	require.NoError(t, err)
	assert.Empty(t, outcomes)
}

func TestFeedbackLoop_FailedInsertKeepsLeadStatus(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewLeadRepository(db)
	adapter := feedback.NewAdapter(NewFeedbackLog(db), repo, NewWeightStore(db), nil)

	l := testLead("ABC Cement Ltd", signals.IndustryCement, 99, time.Now())
	require.NoError(t, repo.Create(ctx, l))

	_, err := db.ExecContext(ctx, "DROP TABLE lead_feedback")
	require.NoError(t, err)

	_, err = adapter.RecordOutcome(ctx, l.ID, feedback.OutcomeAssigned, "officer-1", "")
	require.Error(t, err)

	got, err := repo.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, feedback.OutcomeNew, got.Status)
	assert.Empty(t, got.AssignedOfficerID)
}

func TestOfficerRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewOfficerRepository(openTestDB(t))

	created, err := officer.EnsureDefault(ctx, repo, time.Now())
	require.NoError(t, err)
	assert.True(t, created)
	created, err = officer.EnsureDefault(ctx, repo, time.Now())
	require.NoError(t, err)
	assert.False(t, created)

	base := time.Now().Add(time.Hour)
	retired := officer.New("Retired", "", "", "North", base)
	retired.Active = false
	require.NoError(t, repo.Create(ctx, retired))
	west := officer.New("West Desk", "919800000001", "west@example.com", "West", base.Add(time.Minute))
	require.NoError(t, repo.Create(ctx, west))
	assert.ErrorIs(t, repo.Create(ctx, &officer.Officer{}), officer.ErrInvalid)

	all, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Default Officer", all[0].Name)

	active, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, []string{"Default Officer", "West Desk"}, []string{active[0].Name, active[1].Name})

	first, err := officer.FirstActive(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, "91XXXXXXXXXX", first.Phone)

	got, err := repo.Get(ctx, west.ID)
	require.NoError(t, err)
	assert.Equal(t, "west@example.com", got.Email)
	assert.Equal(t, "West", got.Region)
	assert.True(t, got.Active)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, officer.ErrNotFound)

	tests := []struct {
		id   string
		want bool
	}{
		{west.ID, true},
		{retired.ID, false},
		{"missing", false},
	}
	for _, tt := range tests {
		ok, err := repo.Active(ctx, tt.id)
		require.NoError(t, err)
		assert.Equal(t, tt.want, ok, tt.id)
	}
}

func TestFeedbackLoop_RejectsUnknownOfficer(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewLeadRepository(db)
	officers := NewOfficerRepository(db)
	log := NewFeedbackLog(db)
	adapter := feedback.NewAdapter(log, repo, NewWeightStore(db), nil, feedback.WithOfficers(officers))

	o := officer.New("West Desk", "", "", "West", time.Now())
	require.NoError(t, officers.Create(ctx, o))
	l := testLead("ABC Cement Ltd", signals.IndustryCement, 99, time.Now())
	require.NoError(t, repo.Create(ctx, l))

	_, err := adapter.RecordOutcome(ctx, l.ID, feedback.OutcomeAssigned, "ghost", "")
	require.ErrorIs(t, err, feedback.ErrUnknownOfficer)

	_, err = adapter.RecordOutcome(ctx, l.ID, feedback.OutcomeAssigned, o.ID, "")
	require.NoError(t, err)

	got, err := repo.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.AssignedOfficerID)

	events, err := log.Events(ctx, l.ID)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestNotificationLog(t *testing.T) {
	ctx := context.Background()
	nl := NewNotificationLog(openTestDB(t))
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for i, leadID := range []string{"l1", "l2", "l3"} {
		_, err := nl.Append(ctx, notify.Record{
			OfficerID: "o1",
			LeadID:    leadID,
			Channel:   notify.ChannelLog,
			Kind:      notify.KindNewLead,
			Title:     "New lead: " + leadID,
			Body:      "body",
			SentAt:    base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
	rec, err := nl.Append(ctx, notify.Record{OfficerID: "o2", Channel: notify.ChannelLog, Kind: notify.KindAssigned, Title: "t", Body: "b"})
	require.NoError(t, err)
	assert.Positive(t, rec.ID)
	assert.False(t, rec.SentAt.IsZero())

	got, err := nl.ForOfficer(ctx, "o1", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "l3", got[0].LeadID)
	assert.Equal(t, "l2", got[1].LeadID)
	assert.Equal(t, notify.KindNewLead, got[0].Kind)
	assert.Equal(t, notify.ChannelLog, got[0].Channel)

	got, err = nl.ForOfficer(ctx, "o2", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].LeadID)

	got, err = nl.ForOfficer(ctx, "nobody", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
