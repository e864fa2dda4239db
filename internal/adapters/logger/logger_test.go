package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modpack/internal/adapters/logger"
	"go.trai.ch/modpack/internal/core/domain"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger with an injected bytes.Buffer for isolated testing.
// It also sets NO_COLOR=1 to ensure deterministic output without ANSI escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Info(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Info("Resolving examplemod..")

	assert.Equal(t, "Resolving examplemod..\n", buf.String())
}

func TestLogger_Warn(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Warn(`No matches found for "ghost"`)

	assert.Equal(t, "! No matches found for \"ghost\"\n", buf.String())
}

func TestLogger_Error_Chain(t *testing.T) {
	lg, buf := newTestLogger(t)

	err := zerr.Wrap(errors.New("connection refused"), "failed to fetch artifact")
	err = zerr.With(err, "url", "http://host/a.jar")
	lg.Error(err)

	want := "✗ Error: failed to fetch artifact (url=http://host/a.jar)\n" +
		"\n" +
		"  Caused by:\n" +
		"    → connection refused\n"
	assert.Equal(t, want, buf.String())
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Error(nil)

	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Info("hello")
	lg.Error(errors.New("boom"))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var info map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &info))
	assert.Equal(t, "INFO", info["level"])
	assert.Equal(t, "hello", info["msg"])

	var failure map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &failure))
	assert.Equal(t, "ERROR", failure["level"])
	assert.Equal(t, "boom", failure["error"])
}

func TestLogger_SetOutputKeepsJSONMode(t *testing.T) {
	lg, _ := newTestLogger(t)
	lg.SetJSON(true)

	buf := &bytes.Buffer{}
	lg.SetOutput(buf)
	lg.Warn("still json")

	assert.Contains(t, buf.String(), `"msg":"still json"`)
}

func TestLogger_Outcome(t *testing.T) {
	artifact := &domain.Artifact{Mirrors: []string{"http://host/jei.jar", "http://backup/jei.jar"}}

	tests := []struct {
		name    string
		outcome domain.Outcome
		want    string
	}{
		{
			name: "downloaded",
			outcome: domain.Outcome{
				Identifier: "jei",
				Status:     domain.OutcomeDownloaded,
				Artifact:   artifact,
				Path:       "downloads/1.12.2/jei.jar",
			},
			want: "✓ jei → downloads/1.12.2/jei.jar\n",
		},
		{
			name:    "ignored",
			outcome: domain.Outcome{Identifier: "forge", Status: domain.OutcomeIgnored},
			want:    "– forge ignored\n",
		},
		{
			name:    "unmatched",
			outcome: domain.Outcome{Identifier: "ghost", Status: domain.OutcomeUnmatched},
			want:    "? ghost unmatched\n",
		},
		{
			name: "fetch failed",
			outcome: domain.Outcome{
				Identifier: "jei",
				Status:     domain.OutcomeFetchFailed,
				Artifact:   artifact,
				Err:        errors.New("connection refused"),
			},
			want: "✗ jei (http://host/jei.jar): connection refused\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)

			lg.Outcome(tt.outcome)

			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestLogger_Outcome_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Outcome(domain.Outcome{
		Identifier: "jei",
		Status:     domain.OutcomeFetchFailed,
		Artifact:   &domain.Artifact{Mirrors: []string{"http://host/jei.jar"}},
		Err:        errors.New("connection refused"),
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "fetch_failed", entry["msg"])
	assert.Equal(t, "jei", entry["identifier"])
	assert.Equal(t, "fetch_failed", entry["status"])
	assert.Equal(t, "http://host/jei.jar", entry["url"])
	assert.Equal(t, "connection refused", entry["error"])
	assert.NotContains(t, entry, "path")
}

func TestPrettyHandler_Attributes(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	buf := &bytes.Buffer{}

	h := logger.NewPrettyHandler(buf, nil).WithGroup("fetch").WithAttrs([]slog.Attr{slog.Int("attempt", 2)})
	slog.New(h).Warn("retrying", "url", "http://host/a.jar")

	assert.Equal(t, "! retrying fetch.attempt=2 fetch.url=http://host/a.jar\n", buf.String())
}

func TestPrettyHandler_Level(t *testing.T) {
	buf := &bytes.Buffer{}

	h := logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelWarn})
	slog.New(h).Info("hidden")

	assert.Empty(t, buf.String())
}
