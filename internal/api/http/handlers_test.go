package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/sadhak/backend/internal/api/middleware"
	"github.com/GriffinCanCode/sadhak/backend/internal/domain/query"
	"github.com/GriffinCanCode/sadhak/backend/internal/domain/responder"
	"github.com/GriffinCanCode/sadhak/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/sadhak/backend/internal/shared/utils"
)

type mockAnswerer struct {
	mock.Mock
}

func (m *mockAnswerer) Respond(ctx context.Context, prompt string) responder.Answer {
	args := m.Called(ctx, prompt)
	return args.Get(0).(responder.Answer)
}

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(seed string, length int) string {
	return m.Called(seed, length).String(0)
}

func (m *mockGenerator) Vocabulary() int {
	return m.Called().Int(0)
}

func setupRouter(t *testing.T, answerer Answerer, generator Generator) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	for name, body := range map[string]string{
		"index.html": "<!doctype html><title>Sadhak</title>",
		"styles.css": "body { margin: 0; }",
		"script.js":  "console.log('ready');",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}

	h := NewHandlers(answerer, generator, monitoring.NewMetrics(), nil, Config{
		StaticDir:     dir,
		DefaultLength: 20,
	})

	router := gin.New()
	router.GET("/", h.Index)
	router.GET("/styles.css", h.Styles)
	router.GET("/script.js", h.Script)
	router.POST("/generate", h.Generate)
	router.POST("/continue", h.Continue)
	router.GET("/health", h.Health)
	return router
}

func post(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGenerate(t *testing.T) {
	answerer := new(mockAnswerer)
	answerer.On("Respond", mock.Anything, "what's the sum of 2 and 3").
		Return(responder.Answer{
			Category: query.Sum,
			Numbers:  []float64{2, 3},
			Text:     "The sum is 5.0",
		})
	router := setupRouter(t, answerer, new(mockGenerator))

	w := post(router, "/generate", `{"prompt": "what's the sum of 2 and 3"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"response": "The sum is 5.0"}`, w.Body.String())
	answerer.AssertExpectations(t)
}

func TestGenerateEmptyPrompt(t *testing.T) {
	answerer := new(mockAnswerer)
	answerer.On("Respond", mock.Anything, "").
		Return(responder.Answer{Category: query.Unknown, Text: responder.UnknownReply})
	router := setupRouter(t, answerer, new(mockGenerator))

	w := post(router, "/generate", `{"prompt": ""}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp TextResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, responder.UnknownReply, resp.Response)
}

func TestGenerateBadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"missing prompt", `{}`, "prompt is required"},
		{"null prompt", `{"prompt": null}`, "prompt is required"},
		{"null body", `null`, "prompt is required"},
		{"empty body", ``, "request body must be a JSON object"},
		{"malformed", `{"prompt": `, "request body must be a JSON object"},
		{"wrong type", `{"prompt": 42}`, "request body must be a JSON object"},
		{"too long", `{"prompt": "` + strings.Repeat("1 ", utils.MaxPromptLength) + `"}`, "prompt exceeds maximum length of 8192 bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answerer := new(mockAnswerer)
			router := setupRouter(t, answerer, new(mockGenerator))

			w := post(router, "/generate", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantErr, resp.Error)
			answerer.AssertNotCalled(t, "Respond", mock.Anything, mock.Anything)
		})
	}
}

func TestGenerateChunkedBodyTooLarge(t *testing.T) {
	gin.SetMode(gin.TestMode)
	answerer := new(mockAnswerer)
	h := NewHandlers(answerer, new(mockGenerator), nil, nil, Config{StaticDir: t.TempDir()})

	router := gin.New()
	router.Use(middleware.BodyLimit(1024))
	router.POST("/generate", h.Generate)

	body := `{"prompt": "` + strings.Repeat("1 ", 1024) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = -1
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.JSONEq(t, `{"error": "request body too large"}`, w.Body.String())
	answerer.AssertNotCalled(t, "Respond", mock.Anything, mock.Anything)
}

func TestContinue(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantLength int
	}{
		{"default length", `{"seed": "the"}`, 20},
		{"explicit length", `{"seed": "the", "length": 5}`, 5},
		{"capped length", `{"seed": "the", "length": 1000}`, MaxContinueLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator := new(mockGenerator)
			generator.On("Generate", "the", tt.wantLength).Return("the quick brown fox")
			router := setupRouter(t, new(mockAnswerer), generator)

			w := post(router, "/continue", tt.body)

			require.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{"response": "the quick brown fox"}`, w.Body.String())
			generator.AssertExpectations(t)
		})
	}
}

func TestContinueBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing seed", `{"length": 3}`},
		{"empty seed", `{"seed": ""}`},
		{"zero length", `{"seed": "the", "length": 0}`},
		{"negative length", `{"seed": "the", "length": -4}`},
		{"malformed", `seed=the`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator := new(mockGenerator)
			router := setupRouter(t, new(mockAnswerer), generator)

			w := post(router, "/continue", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
		})
	}
}

func TestHealth(t *testing.T) {
	generator := new(mockGenerator)
	generator.On("Vocabulary").Return(42)
	router := setupRouter(t, new(mockAnswerer), generator)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "sadhak", resp.Service)
	assert.Equal(t, 42, resp.Vocabulary)
	assert.GreaterOrEqual(t, resp.UptimeSeconds, 0.0)
	_, err := uuid.Parse(resp.InstanceID)
	assert.NoError(t, err)
}

func TestStaticAssets(t *testing.T) {
	router := setupRouter(t, new(mockAnswerer), new(mockGenerator))

	tests := []struct {
		path        string
		contentType string
		contains    string
	}{
		{"/", "text/html", "<title>Sadhak</title>"},
		{"/styles.css", "text/css", "margin: 0"},
		{"/script.js", "javascript", "ready"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), tt.contentType)
			assert.Contains(t, w.Body.String(), tt.contains)
		})
	}
}

func TestStaticAssetMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandlers(new(mockAnswerer), new(mockGenerator), nil, nil, Config{StaticDir: t.TempDir()})
	router := gin.New()
	router.GET("/", h.Index)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
