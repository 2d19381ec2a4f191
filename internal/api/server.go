// Package api serves scoring, leads, feedback and the WhatsApp webhook over
// HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Dany7865/IITR-esummit07/internal/aggregator"
	"github.com/Dany7865/IITR-esummit07/internal/feedback"
	"github.com/Dany7865/IITR-esummit07/internal/lead"
	"github.com/Dany7865/IITR-esummit07/internal/logger"
	"github.com/Dany7865/IITR-esummit07/internal/notify"
	"github.com/Dany7865/IITR-esummit07/internal/officer"
	"github.com/Dany7865/IITR-esummit07/internal/pipeline"
	"github.com/Dany7865/IITR-esummit07/internal/scoring"
	"github.com/Dany7865/IITR-esummit07/internal/telemetry"
	"github.com/Dany7865/IITR-esummit07/internal/weights"
)

const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 30 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Deps are the services the handlers call. Notifier, Metrics, Officers and
// Inbox are optional.
type Deps struct {
	Scorer      *scoring.Scorer
	Leads       lead.Repository
	Adapter     *feedback.Adapter
	Weights     weights.Store
	Discovery   *pipeline.Discovery
	Notifier    *notify.Service
	Officers    officer.Repository
	Inbox       notify.Inbox
	Metrics     *telemetry.Provider
	Logger      logger.Logger
	VerifyToken string
}

type Server struct {
	deps   Deps
	router *gin.Engine
	stats  *aggregator.Aggregator
	logger logger.Logger
}

func NewServer(deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = logger.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(RecoveryMiddleware(deps.Logger))
	router.Use(LoggerMiddleware(deps.Logger))

	s := &Server{
		deps:   deps,
		router: router,
		stats:  aggregator.NewAggregator(aggregator.DefaultConfig()),
		logger: deps.Logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if s.deps.Metrics != nil {
		s.router.GET("/metrics", gin.WrapH(s.deps.Metrics.Handler()))
	}

	api := s.router.Group("/api")
	api.POST("/score", s.score)
	api.GET("/leads", s.listLeads)
	api.POST("/leads", s.createLead)
	api.GET("/leads/:id", s.getLead)
	api.PATCH("/leads/:id", s.updateLead)
	api.PUT("/leads/:id", s.updateLead)
	api.POST("/leads/:id/outcome", s.recordOutcome)
	api.GET("/stats", s.pipelineStats)
	api.GET("/weights", s.listWeights)
	api.POST("/weights/recompute", s.recomputeWeights)
	api.GET("/officers", s.listOfficers)
	api.POST("/officers", s.createOfficer)
	api.GET("/notifications", s.listNotifications)

	api.GET("/whatsapp/webhook", s.verifyWebhook)
	api.POST("/whatsapp/webhook", s.receiveWebhook)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", logger.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server", logger.Duration("timeout", shutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	return <-errCh
}
