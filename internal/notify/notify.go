// Package notify decides when a lead is worth an alert and formats the
// alert text. Delivery goes through a Notifier.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dany7865/IITR-esummit07/internal/dossier"
	"github.com/Dany7865/IITR-esummit07/internal/logger"
	"github.com/Dany7865/IITR-esummit07/internal/officer"
	"github.com/Dany7865/IITR-esummit07/internal/scoring"
	"github.com/Dany7865/IITR-esummit07/internal/signals"
)

type Kind string

const (
	KindNewLead  Kind = "new_lead"
	KindAssigned Kind = "assigned"
)

type Config struct {
	MinConfidence int
	OnNewLead     bool
	OnAssign      bool
	MaxBody       int
	BaseURL       string
}

func DefaultConfig() Config {
	return Config{
		MinConfidence: 50,
		OnNewLead:     true,
		OnAssign:      true,
		MaxBody:       1000,
		BaseURL:       "http://127.0.0.1:5000",
	}
}

// Recipient is the officer a message is addressed to. It is empty when no
// officer directory is configured.
type Recipient struct {
	OfficerID string
	Name      string
	Phone     string
}

func recipientOf(o *officer.Officer) Recipient {
	return Recipient{OfficerID: o.ID, Name: o.Name, Phone: o.Phone}
}

type Message struct {
	Kind   Kind
	LeadID string
	To     Recipient
	Title  string
	Body   string
}

type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// ChannelLog names deliveries made by LogNotifier. Notifiers without a
// Channel method are recorded under it too.
const ChannelLog = "log"

// LogNotifier delivers messages to the log.
type LogNotifier struct {
	logger logger.Logger
}

func NewLogNotifier(log logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.NewNop()
	}
	return &LogNotifier{logger: log}
}

func (n *LogNotifier) Send(_ context.Context, msg Message) error {
	n.logger.Info(msg.Title,
		logger.String("kind", string(msg.Kind)),
		logger.String("lead_id", msg.LeadID),
		logger.String("officer_id", msg.To.OfficerID),
		logger.String("phone", msg.To.Phone),
		logger.String("body", msg.Body),
	)
	return nil
}

func (n *LogNotifier) Channel() string {
	return ChannelLog
}

// ShouldNotify reports whether a new lead is confident and urgent enough to
// alert on.
func ShouldNotify(cfg Config, d dossier.Dossier) bool {
	if d.Confidence < cfg.MinConfidence {
		return false
	}
	return d.Priority == scoring.PriorityHigh || d.Priority == scoring.PriorityMedium
}

// FormatLead renders the new-lead alert, truncated to cfg.MaxBody runes.
func FormatLead(cfg Config, d dossier.Dossier, leadID string) string {
	msg := fmt.Sprintf("🆕 HPCL Lead: %s\nIndustry: %s\nProducts: %s\nScore: %d%% | Confidence: %d%%\nPriority: %s\nView: %s",
		orUnknown(d.Company), d.Industry, productList(d.Products), d.Score, d.Confidence, d.Priority, link(cfg, leadID))
	return truncate(msg, cfg.MaxBody)
}

// FormatAssigned renders the assignment alert, truncated to cfg.MaxBody runes.
func FormatAssigned(cfg Config, d dossier.Dossier, leadID string) string {
	msg := fmt.Sprintf("✅ Lead assigned to you: %s\nIndustry: %s\nProducts: %s\nOpen: %s",
		orUnknown(d.Company), d.Industry, productList(d.Products), link(cfg, leadID))
	return truncate(msg, cfg.MaxBody)
}

func link(cfg Config, leadID string) string {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if leadID == "" {
		return base
	}
	return base + "/api/leads/" + leadID
}

func productList(products []signals.Product) string {
	if len(products) == 0 {
		return "—"
	}
	return strings.Join(signals.ProductNames(products[:min(3, len(products))]), ", ")
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Directory resolves alert recipients.
type Directory interface {
	Get(ctx context.Context, id string) (*officer.Officer, error)
	List(ctx context.Context, activeOnly bool) ([]*officer.Officer, error)
}

// Service applies the notification switches, resolves the recipient and
// hands messages to a Notifier. Delivered messages are kept in the Inbox
// when one is configured.
type Service struct {
	config    Config
	notifier  Notifier
	directory Directory
	inbox     Inbox
	logger    logger.Logger
}

type Option func(*Service)

// WithDirectory routes new-lead alerts to the first active officer and
// assignment alerts to the assigned one.
func WithDirectory(d Directory) Option {
	return func(s *Service) { s.directory = d }
}

// WithInbox records every delivered message for its recipient.
func WithInbox(in Inbox) Option {
	return func(s *Service) { s.inbox = in }
}

func NewService(cfg Config, notifier Notifier, log logger.Logger, opts ...Option) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	if notifier == nil {
		notifier = NewLogNotifier(log)
	}
	s := &Service{config: cfg, notifier: notifier, logger: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Config() Config {
	return s.config
}

// NewLead alerts the first active officer about a freshly stored lead when
// enabled and warranted. With a directory but no active officer nothing is
// sent. It reports whether a message was sent.
func (s *Service) NewLead(ctx context.Context, leadID string, d dossier.Dossier) (bool, error) {
	if !s.config.OnNewLead || !ShouldNotify(s.config, d) {
		return false, nil
	}

	var to Recipient
	if s.directory != nil {
		o, err := officer.FirstActive(ctx, s.directory)
		if errors.Is(err, officer.ErrNotFound) {
			s.logger.Warn("No active officer to alert", logger.String("lead_id", leadID))
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("failed to resolve recipient: %w", err)
		}
		to = recipientOf(o)
	}

	msg := Message{
		Kind:   KindNewLead,
		LeadID: leadID,
		To:     to,
		Title:  "New lead: " + orUnknown(d.Company),
		Body:   FormatLead(s.config, d, leadID),
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		return false, fmt.Errorf("failed to send new lead notification: %w", err)
	}
	s.record(ctx, msg)
	return true, nil
}

// Assigned alerts the officer a lead was assigned to, when enabled. An
// officer the directory does not know is an error.
func (s *Service) Assigned(ctx context.Context, leadID, officerID string, d dossier.Dossier) (bool, error) {
	if !s.config.OnAssign {
		return false, nil
	}

	to := Recipient{OfficerID: officerID}
	if s.directory != nil && officerID != "" {
		o, err := s.directory.Get(ctx, officerID)
		if err != nil {
			return false, fmt.Errorf("failed to resolve officer %s: %w", officerID, err)
		}
		to = recipientOf(o)
	}

	msg := Message{
		Kind:   KindAssigned,
		LeadID: leadID,
		To:     to,
		Title:  "Lead assigned: " + orUnknown(d.Company),
		Body:   FormatAssigned(s.config, d, leadID),
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		return false, fmt.Errorf("failed to send assignment notification: %w", err)
	}
	s.record(ctx, msg)
	return true, nil
}

// record keeps a delivered message in the inbox. Failures are logged; the
// message has already gone out.
func (s *Service) record(ctx context.Context, msg Message) {
	logged := false
	if s.inbox != nil && msg.To.OfficerID != "" {
		_, err := s.inbox.Append(ctx, Record{
			OfficerID: msg.To.OfficerID,
			LeadID:    msg.LeadID,
			Channel:   s.channel(),
			Kind:      msg.Kind,
			Title:     msg.Title,
			Body:      msg.Body,
		})
		if err != nil {
			s.logger.Warn("Failed to log notification",
				logger.String("lead_id", msg.LeadID),
				logger.String("officer_id", msg.To.OfficerID),
				logger.Error(err),
			)
		}
		logged = err == nil
	}

	s.logger.Debug("Notification sent",
		logger.String("kind", string(msg.Kind)),
		logger.String("officer_id", msg.To.OfficerID),
		logger.Bool("logged", logged),
	)
}

func (s *Service) channel() string {
	if c, ok := s.notifier.(interface{ Channel() string }); ok {
		return c.Channel()
	}
	return ChannelLog
}
