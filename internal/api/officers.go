package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Dany7865/IITR-esummit07/internal/logger"
	"github.com/Dany7865/IITR-esummit07/internal/notify"
	"github.com/Dany7865/IITR-esummit07/internal/officer"
)

func (s *Server) listOfficers(c *gin.Context) {
	if s.deps.Officers == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Officer registry not configured"})
		return
	}

	officers, err := s.deps.Officers.List(c.Request.Context(), c.Query("all") != "true")
	if err != nil {
		s.logger.Error("Failed to list officers", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list officers"})
		return
	}
	if officers == nil {
		officers = []*officer.Officer{}
	}
	c.JSON(http.StatusOK, gin.H{"officers": officers, "count": len(officers)})
}

type officerRequest struct {
	Name   string `json:"name" binding:"required"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
	Region string `json:"region"`
}

func (s *Server) createOfficer(c *gin.Context) {
	if s.deps.Officers == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Officer registry not configured"})
		return
	}

	var req officerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	o := officer.New(req.Name, req.Phone, req.Email, req.Region, time.Now())
	if err := s.deps.Officers.Create(c.Request.Context(), o); err != nil {
		if errors.Is(err, officer.ErrInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.logger.Error("Failed to create officer", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create officer"})
		return
	}
	c.JSON(http.StatusCreated, o)
}

// listNotifications serves an officer's notification history, newest first.
func (s *Server) listNotifications(c *gin.Context) {
	if s.deps.Inbox == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Notification log not configured"})
		return
	}

	officerID := strings.TrimSpace(c.Query("officer_id"))
	if officerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "officer_id is required"})
		return
	}
	limit, _, err := queryInt(c, "limit")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	records, err := s.deps.Inbox.ForOfficer(c.Request.Context(), officerID, limit)
	if err != nil {
		s.logger.Error("Failed to list notifications", logger.String("officer_id", officerID), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list notifications"})
		return
	}
	if records == nil {
		records = []notify.Record{}
	}
	c.JSON(http.StatusOK, gin.H{"notifications": records, "count": len(records)})
}
