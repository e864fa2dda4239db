package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/modpack/internal/core/domain"
	"go.trai.ch/modpack/internal/ui/output"
	"go.trai.ch/modpack/internal/ui/style"
)

// Attribute keys attached to resolution outcome records.
const (
	AttrIdentifier = "identifier"
	AttrStatus     = "status"
	AttrURL        = "url"
	AttrPath       = "path"
	AttrError      = "error"
)

// badge is the icon and color an outcome line is rendered with.
type badge struct {
	icon  string
	color lipgloss.Color
}

var outcomeBadges = map[domain.OutcomeStatus]badge{
	domain.OutcomeDownloaded:  {icon: style.Check, color: style.Green},
	domain.OutcomeIgnored:     {icon: style.Dash, color: style.Slate},
	domain.OutcomeUnmatched:   {icon: style.Unknown, color: style.Yellow},
	domain.OutcomeFetchFailed: {icon: style.Cross, color: style.Red},
}

// PrettyHandler is a slog.Handler rendering records as single colored lines.
// Records carrying a status attribute are rendered as resolution outcomes.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{out: output.New(w), level: level}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes one line for the record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	attrs = append(attrs, h.attrs...)
	r.Attrs(func(attr slog.Attr) bool {
		attrs = append(attrs, attr)
		return true
	})

	var line string
	var color lipgloss.Color

	if status, ok := lookup(attrs, AttrStatus); ok {
		line, color = h.formatOutcome(domain.OutcomeStatus(status), attrs)
	} else {
		line, color = h.formatMessage(r.Level, r.Message, attrs)
	}

	styled := h.out.String(line).Foreground(termenv.RGBColor(string(color)))
	_, err := h.out.WriteString(styled.String() + "\n")

	return err
}

func (h *PrettyHandler) formatMessage(level slog.Level, msg string, attrs []slog.Attr) (string, lipgloss.Color) {
	color := style.Slate
	switch {
	case level >= slog.LevelError:
		msg = style.Cross + " " + msg
		color = style.Red
	case level >= slog.LevelWarn:
		msg = style.Warning + " " + msg
		color = style.Yellow
	}

	parts := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		parts = append(parts, h.formatAttr(attr))
	}
	if len(parts) > 0 {
		msg += " " + strings.Join(parts, " ")
	}

	return msg, color
}

// formatOutcome renders "<icon> <identifier>" followed by the detail that
// matters for the status: the written path, the mirror and its error, or
// the status itself.
func (h *PrettyHandler) formatOutcome(status domain.OutcomeStatus, attrs []slog.Attr) (string, lipgloss.Color) {
	b, ok := outcomeBadges[status]
	if !ok {
		b = badge{icon: style.Warning, color: style.Yellow}
	}

	identifier, _ := lookup(attrs, AttrIdentifier)
	line := b.icon + " " + identifier

	switch status {
	case domain.OutcomeDownloaded:
		if path, ok := lookup(attrs, AttrPath); ok {
			line += " " + style.Arrow + " " + path
		}
	case domain.OutcomeFetchFailed:
		if url, ok := lookup(attrs, AttrURL); ok {
			line += " (" + url + ")"
		}
		if msg, ok := lookup(attrs, AttrError); ok {
			line += ": " + msg
		}
	default:
		line += " " + string(status)
	}

	return line, b.color
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

// WithGroup returns a new Handler with the given group name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.group = name
	return &clone
}

func (h *PrettyHandler) formatAttr(attr slog.Attr) string {
	key := attr.Key
	if h.group != "" {
		key = h.group + "." + key
	}
	return key + "=" + attr.Value.String()
}

func lookup(attrs []slog.Attr, key string) (string, bool) {
	for _, attr := range attrs {
		if attr.Key == key {
			return attr.Value.String(), true
		}
	}
	return "", false
}
