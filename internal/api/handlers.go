package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Dany7865/IITR-esummit07/internal/dossier"
	"github.com/Dany7865/IITR-esummit07/internal/feedback"
	"github.com/Dany7865/IITR-esummit07/internal/lead"
	"github.com/Dany7865/IITR-esummit07/internal/logger"
	"github.com/Dany7865/IITR-esummit07/internal/notify"
	"github.com/Dany7865/IITR-esummit07/internal/parser"
	"github.com/Dany7865/IITR-esummit07/internal/weights"
)

type scoreRequest struct {
	Text    string `json:"text"`
	Company string `json:"company"`
}

// score returns a full dossier for ad-hoc text without storing it.
func (s *Server) score(c *gin.Context) {
	var req scoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	started := time.Now()
	res := s.deps.Scorer.Score(c.Request.Context(), req.Text)
	if s.deps.Metrics != nil {
		s.deps.Metrics.RecordScore(string(res.Industry), string(res.Priority), res.Score, time.Since(started))
	}

	c.JSON(http.StatusOK, gin.H{
		"result":  res,
		"dossier": dossier.Assemble(lead.NormalizeCompanyName(req.Company), req.Text, parser.DefaultSource, "", res),
	})
}

func (s *Server) createLead(c *gin.Context) {
	var item parser.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	item, ok := item.Normalize()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "raw_text is required"})
		return
	}
	if s.deps.Discovery == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Discovery is not configured"})
		return
	}

	stored, stats, err := s.deps.Discovery.Process(c.Request.Context(), []parser.Item{item})
	if err != nil {
		s.logger.Error("Failed to ingest item", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to ingest item"})
		return
	}
	if stats.Duplicates > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Duplicate lead"})
		return
	}
	if len(stored) == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store lead"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"lead": stored[0], "notified": stats.Notified > 0})
}

func (s *Server) listLeads(c *gin.Context) {
	f, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	leads, err := s.deps.Leads.List(c.Request.Context(), f)
	if err != nil {
		s.logger.Error("Failed to list leads", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list leads"})
		return
	}
	if leads == nil {
		leads = []*lead.Lead{}
	}

	c.JSON(http.StatusOK, gin.H{
		"leads": leads,
		"count": len(leads),
	})
}

func parseFilter(c *gin.Context) (lead.Filter, error) {
	f := lead.Filter{
		Company:  c.Query("company"),
		Industry: c.Query("industry"),
		Priority: c.Query("priority"),
		Status:   feedback.Outcome(c.Query("status")),
	}
	if f.Status != "" && !f.Status.IsValid() {
		return f, errors.New("invalid status")
	}

	ints := []struct {
		name string
		dst  **int
	}{
		{"min_score", &f.MinScore},
		{"max_score", &f.MaxScore},
	}
	for _, p := range ints {
		v, ok, err := queryInt(c, p.name)
		if err != nil {
			return f, err
		}
		if ok {
			*p.dst = &v
		}
	}

	if v, ok, err := queryInt(c, "limit"); err != nil {
		return f, err
	} else if ok {
		f.Limit = v
	}
	if v, ok, err := queryInt(c, "offset"); err != nil {
		return f, err
	} else if ok {
		f.Offset = v
	}

	return f, nil
}

func queryInt(c *gin.Context, name string) (int, bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, errors.New("invalid " + name)
	}
	return v, true, nil
}

func (s *Server) getLead(c *gin.Context) {
	id := c.Param("id")
	if !lead.ValidID(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lead id"})
		return
	}

	l, err := s.deps.Leads.Get(c.Request.Context(), id)
	if errors.Is(err, lead.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}
	if err != nil {
		s.logger.Error("Failed to get lead", logger.String("lead_id", id), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get lead"})
		return
	}

	c.JSON(http.StatusOK, l)
}

type outcomeRequest struct {
	Outcome   string `json:"outcome" binding:"required"`
	OfficerID string `json:"officer_id"`
	Notes     string `json:"notes"`
}

func (s *Server) recordOutcome(c *gin.Context) {
	id := c.Param("id")
	if !lead.ValidID(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lead id"})
		return
	}

	var req outcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	ev, status, err := s.applyOutcome(c, id, feedback.Outcome(strings.TrimSpace(req.Outcome)), req.OfficerID, req.Notes)
	if err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, ev)
}

type updateRequest struct {
	Status            string `json:"status" binding:"required"`
	AssignedOfficerID string `json:"assigned_officer_id"`
	Notes             string `json:"notes"`
}

// updateLead is the status-update form of recordOutcome; it answers with
// the updated lead.
func (s *Server) updateLead(c *gin.Context) {
	id := c.Param("id")
	if !lead.ValidID(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lead id"})
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if _, status, err := s.applyOutcome(c, id, feedback.Outcome(strings.TrimSpace(req.Status)), req.AssignedOfficerID, req.Notes); err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	s.getLead(c)
}

// applyOutcome records an outcome and, for assignments, alerts the officer.
// On failure it returns the HTTP status to report.
func (s *Server) applyOutcome(c *gin.Context, id string, outcome feedback.Outcome, officerID, notes string) (feedback.Event, int, error) {
	ctx := c.Request.Context()

	ev, err := s.deps.Adapter.RecordOutcome(ctx, id, outcome, officerID, notes)
	switch {
	case errors.Is(err, feedback.ErrInvalidOutcome), errors.Is(err, feedback.ErrUnknownOfficer):
		return ev, http.StatusBadRequest, err
	case errors.Is(err, lead.ErrNotFound):
		return ev, http.StatusNotFound, errors.New("lead not found")
	case err != nil:
		s.logger.Error("Failed to record outcome", logger.String("lead_id", id), logger.Error(err))
		return ev, http.StatusInternalServerError, errors.New("failed to record outcome")
	}

	if s.deps.Metrics != nil {
		s.deps.Metrics.RecordFeedback(string(outcome))
		s.publishWeights(c)
	}

	if outcome == feedback.OutcomeAssigned && officerID != "" && s.deps.Notifier != nil {
		s.notifyAssigned(c, id, officerID)
	}

	return ev, http.StatusCreated, nil
}

func (s *Server) notifyAssigned(c *gin.Context, id, officerID string) {
	l, err := s.deps.Leads.Get(c.Request.Context(), id)
	if err != nil {
		s.logger.Warn("Assigned lead not readable", logger.String("lead_id", id), logger.Error(err))
		return
	}
	sent, err := s.deps.Notifier.Assigned(c.Request.Context(), id, officerID, l.Dossier)
	if err != nil {
		s.logger.Warn("Assignment notification failed", logger.String("lead_id", id), logger.Error(err))
		return
	}
	if sent && s.deps.Metrics != nil {
		s.deps.Metrics.RecordNotification(string(notify.KindAssigned))
	}
}

func (s *Server) publishWeights(c *gin.Context) {
	records, err := s.deps.Weights.All(c.Request.Context())
	if err != nil {
		s.logger.Warn("Failed to read weights", logger.Error(err))
		return
	}
	m := make(map[string]float64, len(records))
	for _, r := range records {
		m[r.Key] = r.Weight
	}
	s.deps.Metrics.RecordWeights(m)
}

func (s *Server) listWeights(c *gin.Context) {
	records, err := s.deps.Weights.All(c.Request.Context())
	if err != nil {
		s.logger.Error("Failed to list weights", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list weights"})
		return
	}
	if records == nil {
		records = []weights.Record{}
	}

	c.JSON(http.StatusOK, gin.H{
		"weights": records,
		"count":   len(records),
	})
}

func (s *Server) recomputeWeights(c *gin.Context) {
	records, err := s.deps.Adapter.RecomputeWeights(c.Request.Context())
	if err != nil {
		s.logger.Error("Failed to recompute weights", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to recompute weights"})
		return
	}
	if records == nil {
		records = []weights.Record{}
	}
	if s.deps.Metrics != nil {
		s.publishWeights(c)
	}

	c.JSON(http.StatusOK, gin.H{
		"weights": records,
		"count":   len(records),
	})
}

// pipelineStats summarises up to lead.MaxLimit of the highest-scored leads.
func (s *Server) pipelineStats(c *gin.Context) {
	leads, err := s.deps.Leads.List(c.Request.Context(), lead.Filter{Limit: lead.MaxLimit})
	if err != nil {
		s.logger.Error("Failed to list leads", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list leads"})
		return
	}

	c.JSON(http.StatusOK, s.stats.Aggregate(leads))
}
