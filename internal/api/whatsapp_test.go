package api

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dany7865/IITR-esummit07/internal/feedback"
)

func TestVerifyWebhook(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		mode   string
		token  string
		status int
		body   string
	}{
		{"valid", "subscribe", "secret", http.StatusOK, "challenge-123"},
		{"wrong token", "subscribe", "nope", http.StatusForbidden, "Forbidden"},
		{"wrong mode", "unsubscribe", "secret", http.StatusForbidden, "Forbidden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := url.Values{}
			q.Set("hub.mode", tt.mode)
			q.Set("hub.verify_token", tt.token)
			q.Set("hub.challenge", "challenge-123")

			rec := env.do(t, http.MethodGet, "/api/whatsapp/webhook?"+q.Encode(), nil)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}
}

func buttonPayload(ids ...string) map[string]any {
	var messages []any
	for _, id := range ids {
		messages = append(messages, map[string]any{
			"from": "919800000000",
			"type": "interactive",
			"interactive": map[string]any{
				"type":         "button_reply",
				"button_reply": map[string]string{"id": id, "title": "x"},
			},
		})
	}
	messages = append(messages, map[string]any{"from": "919800000000", "type": "text"})

	return map[string]any{
		"object": "whatsapp_business_account",
		"entry": []any{map[string]any{
			"changes": []any{map[string]any{
				"value": map[string]any{"messages": messages},
			}},
		}},
	}
}

func TestReceiveWebhook_ButtonReplies(t *testing.T) {
	env := newTestEnv(t)
	a := env.ingest(t, "ABC Cement", "Cement expansion tender fuel supply")
	b := env.ingest(t, "Oceanic Shipping", "Marine fuel contract shipping vessels")
	c := env.ingest(t, "Highway Infra", "Road construction tender bitumen supply")

	rec := env.do(t, http.MethodPost, "/api/whatsapp/webhook",
		buttonPayload("accept_"+a.ID, "schedule_"+b.ID, "reject_"+c.ID, "snooze_"+a.ID))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok": true, "processed": 3}`, rec.Body.String())

	events := env.log.Events()
	require.Len(t, events, 3)
	assert.Equal(t, feedback.OutcomeAssigned, events[0].Outcome)
	assert.Empty(t, events[0].Notes)
	assert.Equal(t, feedback.OutcomeAssigned, events[1].Outcome)
	assert.Equal(t, "Schedule visit requested via WhatsApp", events[1].Notes)
	assert.Equal(t, feedback.OutcomeRejected, events[2].Outcome)
	assert.Equal(t, "Not relevant via WhatsApp", events[2].Notes)

	got, err := env.leads.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, feedback.OutcomeRejected, got.Status)
}

func TestReceiveWebhook_Ignored(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/whatsapp/webhook", map[string]any{"object": "page"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok": true, "processed": 0}`, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/api/whatsapp/webhook", buttonPayload("accept_"+"not-a-lead"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok": true, "processed": 0}`, rec.Body.String())
	assert.Empty(t, env.log.Events())
}

func TestParseButtonReply(t *testing.T) {
	action, id, ok := parseButtonReply(" schedule_abc ")
	require.True(t, ok)
	assert.Equal(t, "abc", id)
	assert.Equal(t, feedback.OutcomeAssigned, action.outcome)

	_, _, ok = parseButtonReply("accept_")
	assert.False(t, ok)
	_, _, ok = parseButtonReply("hello")
	assert.False(t, ok)
}
