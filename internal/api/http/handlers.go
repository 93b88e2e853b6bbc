package http

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/sadhak/backend/internal/domain/responder"
	"github.com/GriffinCanCode/sadhak/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/sadhak/backend/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/sadhak/backend/internal/shared/id"
	"github.com/GriffinCanCode/sadhak/backend/internal/shared/utils"
)

// MaxContinueLength caps the number of words POST /continue may request.
const MaxContinueLength = 100

var (
	errInvalidBody   = errors.New("request body must be a JSON object")
	errBodyTooLarge  = errors.New("request body too large")
	errMissingPrompt = errors.New("prompt is required")
	errMissingSeed   = errors.New("seed is required")
	errInvalidLength = errors.New("length must be a positive integer")
)

// Answerer answers calculator prompts
type Answerer interface {
	Respond(ctx context.Context, prompt string) responder.Answer
}

// Generator continues text from a seed word
type Generator interface {
	Generate(seed string, length int) string
	Vocabulary() int
}

// Handlers contains all HTTP handlers
type Handlers struct {
	answerer      Answerer
	generator     Generator
	metrics       *monitoring.Metrics
	logger        *zap.Logger
	staticDir     string
	defaultLength int
	instanceID    id.InstanceID
}

// Config configures the handler set
type Config struct {
	StaticDir     string
	DefaultLength int
}

// NewHandlers creates a new handler set
func NewHandlers(
	answerer Answerer,
	generator Generator,
	metrics *monitoring.Metrics,
	logger *zap.Logger,
	cfg Config,
) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultLength < 1 {
		cfg.DefaultLength = 20
	}
	return &Handlers{
		answerer:      answerer,
		generator:     generator,
		metrics:       metrics,
		logger:        logger,
		staticDir:     cfg.StaticDir,
		defaultLength: min(cfg.DefaultLength, MaxContinueLength),
		instanceID:    id.NewInstanceID(),
	}
}

// Index serves the prompt page
func (h *Handlers) Index(c *gin.Context) {
	c.File(filepath.Join(h.staticDir, "index.html"))
}

// Styles serves the page stylesheet
func (h *Handlers) Styles(c *gin.Context) {
	c.File(filepath.Join(h.staticDir, "styles.css"))
}

// Script serves the page script
func (h *Handlers) Script(c *gin.Context) {
	c.File(filepath.Join(h.staticDir, "script.js"))
}

// Generate answers a calculator prompt
func (h *Handlers) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := bindJSON(c, &req); err != nil {
		h.badRequest(c, err)
		return
	}
	if req.Prompt == nil {
		h.badRequest(c, errMissingPrompt)
		return
	}
	if err := utils.ValidatePrompt(*req.Prompt); err != nil {
		h.badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	answer := h.answerer.Respond(ctx, *req.Prompt)

	fields := []zap.Field{
		tracing.Field(ctx),
		zap.String("category", string(answer.Category)),
		zap.Float64s("numbers", answer.Numbers),
	}
	if answer.Failure != "" {
		fields = append(fields, zap.String("failure", answer.Failure))
	}
	h.logger.Info("Answered prompt", fields...)

	c.JSON(http.StatusOK, TextResponse{Response: answer.Text})
}

// Continue extends a seed word with the bigram generator
func (h *Handlers) Continue(c *gin.Context) {
	var req ContinueRequest
	if err := bindJSON(c, &req); err != nil {
		h.badRequest(c, err)
		return
	}
	if req.Seed == nil {
		h.badRequest(c, errMissingSeed)
		return
	}
	if err := utils.ValidateSeed(*req.Seed); err != nil {
		h.badRequest(c, err)
		return
	}

	length := h.defaultLength
	if req.Length != nil {
		if *req.Length < 1 {
			h.badRequest(c, errInvalidLength)
			return
		}
		length = min(*req.Length, MaxContinueLength)
	}

	text := h.generator.Generate(*req.Seed, length)
	h.logger.Debug("Generated continuation",
		tracing.Field(c.Request.Context()),
		zap.String("seed", *req.Seed),
		zap.Int("length", length))

	c.JSON(http.StatusOK, TextResponse{Response: text})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:     "healthy",
		Service:    "sadhak",
		InstanceID: h.instanceID.String(),
		Vocabulary: h.generator.Vocabulary(),
	}
	if h.metrics != nil {
		resp.UptimeSeconds = h.metrics.Uptime().Round(time.Millisecond).Seconds()
		resp.Requests = h.metrics.Snapshot()
	}
	c.JSON(http.StatusOK, resp)
}

// bindJSON decodes the request body. An empty body is invalid; a JSON null
// leaves v untouched.
func bindJSON(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errBodyTooLarge
		}
		return errInvalidBody
	}
	return nil
}

func (h *Handlers) badRequest(c *gin.Context, err error) {
	h.logger.Debug("Rejected request",
		tracing.Field(c.Request.Context()),
		zap.String("path", c.FullPath()),
		zap.Error(err))

	status := http.StatusBadRequest
	if errors.Is(err, errBodyTooLarge) {
		status = http.StatusRequestEntityTooLarge
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}
