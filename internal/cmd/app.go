package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Dany7865/IITR-esummit07/internal/ai"
	"github.com/Dany7865/IITR-esummit07/internal/config"
	"github.com/Dany7865/IITR-esummit07/internal/db"
	"github.com/Dany7865/IITR-esummit07/internal/feedback"
	"github.com/Dany7865/IITR-esummit07/internal/logger"
	"github.com/Dany7865/IITR-esummit07/internal/nlp"
	"github.com/Dany7865/IITR-esummit07/internal/notify"
	"github.com/Dany7865/IITR-esummit07/internal/officer"
	"github.com/Dany7865/IITR-esummit07/internal/pipeline"
	"github.com/Dany7865/IITR-esummit07/internal/scoring"
	"github.com/Dany7865/IITR-esummit07/internal/signals"
	"github.com/Dany7865/IITR-esummit07/internal/telemetry"
	"github.com/Dany7865/IITR-esummit07/internal/weights"
)

// app holds the services shared by the subcommands.
type app struct {
	cfg       *config.Config
	logger    logger.Logger
	db        *sql.DB
	leads     *db.LeadRepository
	weights   *db.WeightStore
	feedback  *db.FeedbackLog
	officers  *db.OfficerRepository
	inbox     *db.NotificationLog
	scorer    *scoring.Scorer
	adapter   *feedback.Adapter
	notifier  *notify.Service
	metrics   *telemetry.Provider
	discovery *pipeline.Discovery
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	database, err := db.Open(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	a := &app{
		cfg:      cfg,
		logger:   log,
		db:       database,
		leads:    db.NewLeadRepository(database),
		weights:  db.NewWeightStore(database),
		feedback: db.NewFeedbackLog(database),
		officers: db.NewOfficerRepository(database),
		inbox:    db.NewNotificationLog(database),
		metrics:  telemetry.NewProvider(nil),
	}

	created, err := officer.EnsureDefault(ctx, a.officers, time.Now())
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to seed officers: %w", err)
	}
	if created {
		log.Info("Registered the default sales officer")
	}

	analyzer := nlp.NewAnalyzer(nlp.Config{
		Tokenizer: nlp.NewTokenizer(cfg.NLP.Tokenizer),
		Entities:  a.entityExtractor(),
		Logger:    log,
	})
	a.scorer = scoring.NewScorer(
		scoring.Config{
			HighThreshold:   cfg.Scoring.HighThreshold,
			MediumThreshold: cfg.Scoring.MediumThreshold,
		},
		signals.NewDetector(analyzer),
		weights.NewResolver(a.weights, log),
		log,
	)
	a.adapter = feedback.NewAdapter(a.feedback, a.leads, a.weights, log, feedback.WithOfficers(a.officers))
	a.notifier = notify.NewService(notify.Config{
		MinConfidence: cfg.Notify.MinConfidence,
		OnNewLead:     cfg.Notify.OnNewLead,
		OnAssign:      cfg.Notify.OnAssign,
		MaxBody:       cfg.Notify.MaxBody,
		BaseURL:       cfg.Server.BaseURL,
	}, notify.NewLogNotifier(log), log, notify.WithDirectory(a.officers), notify.WithInbox(a.inbox))

	a.discovery, err = pipeline.New(pipeline.Config{
		Scorer:   a.scorer,
		Leads:    a.leads,
		Notifier: a.notifier,
		Metrics:  a.metrics,
		Logger:   log,
	})
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to create discovery pipeline: %w", err)
	}

	return a, nil
}

// entityExtractor picks the organisation extractor named in the config. An
// LLM extractor that cannot be built degrades to none.
func (a *app) entityExtractor() nlp.EntityExtractor {
	switch strings.ToLower(a.cfg.NLP.Entities) {
	case "pattern":
		return nlp.PatternExtractor{}
	case "llm":
		ext, err := ai.NewEntityExtractor(ai.Config{Model: a.cfg.NLP.LLMModel})
		if err != nil {
			a.logger.Warn("LLM entity extraction unavailable, continuing without it", logger.Error(err))
			return nlp.NopExtractor{}
		}
		return ext
	default:
		return nlp.NopExtractor{}
	}
}

func (a *app) Close() error {
	_ = a.logger.Sync()
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// withApp runs fn with a freshly built app and closes it afterwards.
func withApp(ctx context.Context, fn func(a *app) error) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = a.Close()
	}()
	return fn(a)
}
