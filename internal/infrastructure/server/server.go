package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/sadhak/backend/internal/api/http"
	"github.com/GriffinCanCode/sadhak/backend/internal/api/middleware"
	"github.com/GriffinCanCode/sadhak/backend/internal/domain/bigram"
	"github.com/GriffinCanCode/sadhak/backend/internal/domain/query"
	"github.com/GriffinCanCode/sadhak/backend/internal/domain/responder"
	"github.com/GriffinCanCode/sadhak/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/sadhak/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/sadhak/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/sadhak/backend/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/sadhak/backend/internal/providers/math/expression"
	"github.com/GriffinCanCode/sadhak/backend/internal/shared/utils"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router    *gin.Engine
	http      *http.Server
	responder *responder.Responder
	tracer    *tracing.Tracer
	logger    *logging.Logger
	config    *config.Config
	metrics   *monitoring.Metrics
}

// Option configures a Server
type Option func(*Server)

// WithLogger replaces the logger built from configuration
func WithLogger(l *logging.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, opts ...Option) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server: nil config")
	}

	s := &Server{config: cfg}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewFromLevel(cfg.Logging.Level, cfg.Logging.Development)
	}
	logger := s.logger

	logger.Info("Initializing Sadhak Calculator",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("static_dir", cfg.Server.StaticDir),
	)

	s.metrics = monitoring.NewMetrics()
	s.tracer = tracing.New("sadhak", logger.Component("http"))

	evaluator := expression.New(
		expression.WithTimeout(cfg.Expression.Timeout),
		expression.WithMaxLength(cfg.Expression.MaxLength),
		expression.WithLogger(logger.Component("expression")),
	)
	s.responder = responder.New(evaluator,
		responder.WithLogger(logger.Component("responder")),
		responder.WithRecorder(s.metrics),
	)

	generator := bigram.NewTrained()
	logger.Info("Bigram model trained", zap.Int("vocabulary", generator.Vocabulary()))

	handlers := apihttp.NewHandlers(s.responder, generator, s.metrics, logger.Component("api"), apihttp.Config{
		StaticDir:     cfg.Server.StaticDir,
		DefaultLength: cfg.Generator.Length,
	})

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	s.router = s.newRouter(handlers)

	s.http = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server initialized successfully")
	return s, nil
}

func (s *Server) newRouter(handlers *apihttp.Handlers) *gin.Engine {
	cfg := s.config
	router := gin.New()

	router.Use(gin.CustomRecoveryWithWriter(io.Discard, s.recoverPanic))
	router.Use(tracing.HTTPMiddleware(s.tracer))
	router.Use(monitoring.Middleware(s.metrics))
	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.Server.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.Server.CORSOrigins
	}
	router.Use(middleware.CORS(corsCfg))
	router.Use(middleware.BodyLimit(utils.MaxBodySize))
	if cfg.RateLimit.Enabled {
		s.logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
			zap.String("scope", cfg.RateLimit.Scope),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		if cfg.RateLimit.Scope == "global" {
			router.Use(middleware.GlobalRateLimit(rl))
		} else {
			router.Use(middleware.RateLimit(rl))
		}
	}
	if cfg.Server.CompressionEnabled {
		router.Use(middleware.Compress(middleware.DefaultCompressionConfig()))
	}

	// Page
	router.GET("/", handlers.Index)
	router.GET("/styles.css", handlers.Styles)
	router.GET("/script.js", handlers.Script)

	// Calculator
	router.POST("/generate", handlers.Generate)
	router.POST("/continue", handlers.Continue)

	// Operations
	router.GET("/health", handlers.Health)
	router.GET("/metrics", s.metrics.GinHandler())

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, apihttp.ErrorResponse{Error: "not found"})
	})

	return router
}

func (s *Server) recoverPanic(c *gin.Context, rec any) {
	s.logger.Error("Recovered from panic in handler",
		tracing.Field(c.Request.Context()),
		zap.String("path", c.Request.URL.Path),
		zap.Any("panic", rec),
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, apihttp.ErrorResponse{
		Error: "internal server error",
	})
}

// Router returns the configured Gin engine
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP server and blocks until it stops. It returns nil
// after a graceful Shutdown.
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones until ctx
// expires, then flushes request spans and logs.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	err := s.http.Shutdown(ctx)
	if err != nil {
		s.logger.Error("Graceful shutdown failed", zap.Error(err))
		err = fmt.Errorf("failed to shut down http server: %w", err)
	}

	s.tracer.Close()
	_ = s.logger.Sync()

	return err
}

// SelfCheck answers each sample prompt and logs the result.
func (s *Server) SelfCheck(ctx context.Context) []responder.Answer {
	answers := make([]responder.Answer, 0, len(query.SamplePrompts))
	for i, prompt := range query.SamplePrompts {
		answer := s.responder.Respond(ctx, prompt)
		s.logger.Info("Self check",
			zap.Int("case", i+1),
			zap.String("prompt", prompt),
			zap.String("category", string(answer.Category)),
			zap.String("result", answer.Text),
		)
		answers = append(answers, answer)
	}
	return answers
}
