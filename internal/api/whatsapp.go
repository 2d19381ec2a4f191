package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Dany7865/IITR-esummit07/internal/feedback"
	"github.com/Dany7865/IITR-esummit07/internal/logger"
)

const whatsappObject = "whatsapp_business_account"

// webhookPayload is the subset of a WhatsApp Cloud API notification that
// carries interactive button replies.
type webhookPayload struct {
	Object string `json:"object"`
	Entry  []struct {
		Changes []struct {
			Value struct {
				Messages []struct {
					From        string `json:"from"`
					Interactive *struct {
						ButtonReply *struct {
							ID    string `json:"id"`
							Title string `json:"title"`
						} `json:"button_reply"`
					} `json:"interactive"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// buttonAction maps a reply-id prefix to the outcome it records.
type buttonAction struct {
	prefix  string
	outcome feedback.Outcome
	notes   string
}

var buttonActions = []buttonAction{
	{prefix: "accept_", outcome: feedback.OutcomeAssigned},
	{prefix: "schedule_", outcome: feedback.OutcomeAssigned, notes: "Schedule visit requested via WhatsApp"},
	{prefix: "reject_", outcome: feedback.OutcomeRejected, notes: "Not relevant via WhatsApp"},
}

// parseButtonReply splits a reply id such as "accept_<lead id>" into the
// action and lead id.
func parseButtonReply(id string) (buttonAction, string, bool) {
	id = strings.TrimSpace(id)
	for _, a := range buttonActions {
		if leadID, ok := strings.CutPrefix(id, a.prefix); ok && leadID != "" {
			return a, leadID, true
		}
	}
	return buttonAction{}, "", false
}

func (s *Server) verifyWebhook(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	if mode == "subscribe" && s.deps.VerifyToken != "" && token == s.deps.VerifyToken {
		c.String(http.StatusOK, c.Query("hub.challenge"))
		return
	}
	c.String(http.StatusForbidden, "Forbidden")
}

// receiveWebhook records outcomes from button replies. It always answers
// 200 so the sender does not retry; bad replies are logged and skipped.
func (s *Server) receiveWebhook(c *gin.Context) {
	var payload webhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		s.logger.Warn("Invalid webhook payload", logger.Error(err))
		c.JSON(http.StatusOK, gin.H{"ok": true, "processed": 0})
		return
	}
	if payload.Object != whatsappObject {
		c.JSON(http.StatusOK, gin.H{"ok": true, "processed": 0})
		return
	}

	processed := 0
	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				if msg.Interactive == nil || msg.Interactive.ButtonReply == nil {
					continue
				}
				if s.handleButtonReply(c, msg.From, msg.Interactive.ButtonReply.ID) {
					processed++
				}
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "processed": processed})
}

func (s *Server) handleButtonReply(c *gin.Context, from, replyID string) bool {
	action, leadID, ok := parseButtonReply(replyID)
	if !ok {
		s.logger.Debug("Ignoring button reply", logger.String("reply_id", replyID))
		return false
	}

	if _, err := s.deps.Adapter.RecordOutcome(c.Request.Context(), leadID, action.outcome, "", action.notes); err != nil {
		s.logger.Warn("Failed to record button reply",
			logger.String("reply_id", replyID),
			logger.String("from", from),
			logger.Error(err),
		)
		return false
	}
	if s.deps.Metrics != nil {
		s.deps.Metrics.RecordFeedback(string(action.outcome))
	}

	s.logger.Info("Button reply recorded",
		logger.String("lead_id", leadID),
		logger.String("outcome", string(action.outcome)),
		logger.String("from", from),
	)
	return true
}
