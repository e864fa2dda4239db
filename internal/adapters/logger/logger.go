// Package logger implements a logging adapter using log/slog.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/modpack/internal/core/domain"
	"go.trai.ch/modpack/internal/core/ports"
	"go.trai.ch/modpack/internal/ui/style"
)

// messager describes an error that can report its own message without the chain.
// zerr.Error provides it.
type messager interface {
	Message() string
}

// metadataer describes an error carrying key/value context.
type metadataer interface {
	Metadata() map[string]any
}

// errorEntry is one link of an error chain.
type errorEntry struct {
	message  string
	metadata map[string]any
}

var _ ports.Logger = (*Logger)(nil)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	jsonMode bool
	output   io.Writer
}

// New creates a new Logger instance writing pretty output to stderr.
func New() ports.Logger {
	return &Logger{
		logger: slog.New(newHandler(os.Stderr, false)),
		output: os.Stderr,
	}
}

func newHandler(w io.Writer, jsonMode bool) slog.Handler {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if jsonMode {
		return slog.NewJSONHandler(w, opts)
	}
	return NewPrettyHandler(w, opts)
}

// SetOutput updates the logger's output destination, preserving the JSON mode.
// If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.logger = slog.New(newHandler(w, l.jsonMode))
}

// SetJSON switches between JSON and pretty logging.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable

	w := l.output
	if w == nil {
		w = os.Stderr
	}
	l.logger = slog.New(newHandler(w, enable))
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error with its full cause chain.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if err == nil {
		return
	}

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err)
		return
	}

	l.logger.Error(formatErrorEntries(collectErrorEntries(err)))
}

// Outcome logs how one identifier ended. Downloads and ignored identifiers are
// logged at info level, misses and fetch failures as warnings.
func (l *Logger) Outcome(outcome domain.Outcome) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	attrs := []slog.Attr{
		slog.String(AttrIdentifier, outcome.Identifier),
		slog.String(AttrStatus, string(outcome.Status)),
	}
	if outcome.Artifact != nil {
		if url := outcome.Artifact.PrimaryMirror(); url != "" {
			attrs = append(attrs, slog.String(AttrURL, url))
		}
	}
	if outcome.Path != "" {
		attrs = append(attrs, slog.String(AttrPath, outcome.Path))
	}
	if outcome.Err != nil {
		attrs = append(attrs, slog.String(AttrError, outcome.Err.Error()))
	}

	level := slog.LevelInfo
	if outcome.Status == domain.OutcomeUnmatched || outcome.Status == domain.OutcomeFetchFailed {
		level = slog.LevelWarn
	}

	l.logger.LogAttrs(context.Background(), level, string(outcome.Status), attrs...)
}

// collectErrorEntries walks the chain of zerr errors. The first error without a
// Message method ends the walk and contributes its full Error text.
func collectErrorEntries(err error) []errorEntry {
	var entries []errorEntry
	current := err

	for current != nil {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, errorEntry{message: current.Error()})
			break
		}

		entry := errorEntry{message: m.Message(), metadata: map[string]any{}}
		if md, ok := current.(metadataer); ok {
			for k, v := range md.Metadata() {
				entry.metadata[k] = v
			}
		}
		entries = append(entries, entry)
		current = errors.Unwrap(current)
	}

	return entries
}

// formatErrorEntries renders entries as "Error: ..." followed by an indented
// "Caused by:" list. Metadata is appended to each line in key order.
func formatErrorEntries(entries []errorEntry) string {
	var formattedLines []string

	for i, entry := range entries {
		lines := strings.Split(entry.message+formatMetadata(entry.metadata), "\n")

		if i == 0 {
			formattedLines = append(formattedLines, "Error: "+lines[0])
			for _, line := range lines[1:] {
				formattedLines = append(formattedLines, "       "+line)
			}
			continue
		}

		if i == 1 {
			formattedLines = append(formattedLines, "", "  Caused by:")
		}
		formattedLines = append(formattedLines, "    "+style.Arrow+" "+lines[0])
		for _, line := range lines[1:] {
			formattedLines = append(formattedLines, "      "+line)
		}
	}

	return strings.Join(formattedLines, "\n")
}

func formatMetadata(metadata map[string]any) string {
	if len(metadata) == 0 {
		return ""
	}

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, metadata[k])
	}
	return " (" + strings.Join(parts, ", ") + ")"
}
