package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/sadhak/backend/internal/domain/query"
	"github.com/GriffinCanCode/sadhak/backend/internal/domain/responder"
	"github.com/GriffinCanCode/sadhak/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/sadhak/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/sadhak/backend/internal/infrastructure/server"
)

func startServer(t *testing.T) string {
	t.Helper()
	cfg := config.Default()
	cfg.Logging.Development = true
	cfg.Server.StaticDir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Server.StaticDir, "index.html"), []byte("ok"), 0o644))

	srv, err := server.NewServer(cfg, server.WithLogger(logging.NewNop()))
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(func() {
		ts.Close()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return ts.URL
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAsk(t *testing.T) {
	url := startServer(t)

	out, err := run(t, "--server", url, "hello", "there")

	require.NoError(t, err)
	assert.Equal(t, responder.GreetingReply+"\n", out)
}

func TestAskMultiWordPrompt(t *testing.T) {
	url := startServer(t)

	tests := []struct {
		name string
		args []string
	}{
		{"quoted", []string{"What's the mean of 2, 4, 6, 8?"}},
		{"split words", []string{"What's", "the", "mean", "of", "2,", "4,", "6,", "8?"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"--server", url}, tt.args...)...)

			require.NoError(t, err)
			assert.Contains(t, out, "Mean = Sum / Count = 20.0 / 4 = 5.0")
		})
	}
}

func TestAskRequiresPrompt(t *testing.T) {
	_, err := run(t, "--server", "http://127.0.0.1:1")
	assert.ErrorContains(t, err, "a prompt is required")
}

func TestDemo(t *testing.T) {
	url := startServer(t)

	out, err := run(t, "--server", url, "--demo", "--parallel", "3")

	require.NoError(t, err)
	assert.Equal(t, len(query.SamplePrompts), strings.Count(out, "Test case "))
	assert.Contains(t, out, "Input: Divide 100 by 2, then by 5.")
	assert.Less(t, strings.Index(out, "Test case 1:"), strings.Index(out, "Test case 2:"))
}

func TestContinueCommand(t *testing.T) {
	url := startServer(t)

	out, err := run(t, "--server", url, "continue", "qwerty", "-n", "4")

	require.NoError(t, err)
	assert.Equal(t, "I don't know how to respond to that.\n", out)
}

func TestHealthCommand(t *testing.T) {
	url := startServer(t)

	out, err := run(t, "--server", url, "health")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "healthy (sadhak) instance="))
}

func TestServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "prompt is required"}`))
	}))
	defer ts.Close()

	_, err := run(t, "--server", ts.URL, "anything")
	assert.ErrorContains(t, err, "prompt is required")
}
