package progrock

import (
	"bytes"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/vito/progrock"
	"go.trai.ch/modpack/internal/ui/output"
	"go.trai.ch/modpack/internal/ui/style"
)

// VertexStatus is the last known state of a vertex.
type VertexStatus string

const (
	// StatusRunning indicates the vertex has started but not finished.
	StatusRunning VertexStatus = "running"
	// StatusCompleted indicates the vertex finished without error.
	StatusCompleted VertexStatus = "completed"
	// StatusSkipped indicates the vertex finished without doing any work.
	StatusSkipped VertexStatus = "skipped"
	// StatusFailed indicates the vertex finished with an error.
	StatusFailed VertexStatus = "failed"
)

// VertexState is a snapshot of one vertex as seen on the tape.
type VertexState struct {
	ID     string
	Name   string
	Status VertexStatus
	Error  string
	Logs   []string
}

var _ progrock.Writer = (*Progress)(nil)

// Progress is a progrock.Writer that folds status updates into per-vertex
// state and prints one line for every vertex that finishes.
type Progress struct {
	mu       sync.Mutex
	out      *termenv.Output
	order    []string
	vertices map[string]*VertexState
	partial  map[string][]byte
	printed  map[string]bool
}

// NewProgress creates a Progress rendering to w. A nil w discards output.
func NewProgress(w io.Writer) *Progress {
	p := &Progress{
		vertices: map[string]*VertexState{},
		partial:  map[string][]byte{},
		printed:  map[string]bool{},
	}
	p.SetOutput(w)
	return p
}

// SetOutput changes where finished vertices are printed. A nil w discards output.
func (p *Progress) SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.out = output.New(w)
}

// WriteStatus applies one update from the recorder.
func (p *Progress) WriteStatus(update *progrock.StatusUpdate) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, l := range update.Logs {
		p.appendLog(l.Vertex, l.Data)
	}

	for _, v := range update.Vertexes {
		state := p.vertex(v.Id, v.Name)

		switch {
		case v.Completed == nil:
			state.Status = StatusRunning
		case v.Error != nil:
			state.Status = StatusFailed
			state.Error = *v.Error
		case v.Cached:
			state.Status = StatusSkipped
		default:
			state.Status = StatusCompleted
		}

		if state.Status != StatusRunning && !p.printed[v.Id] {
			p.printed[v.Id] = true
			if err := p.render(state); err != nil {
				return err
			}
		}
	}

	return nil
}

// Close flushes partial log lines. Further updates are still accepted.
func (p *Progress) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for id, rest := range p.partial {
		if len(rest) > 0 {
			state := p.vertex(id, "")
			state.Logs = append(state.Logs, string(rest))
		}
		delete(p.partial, id)
	}
	return nil
}

// Vertices returns a snapshot of every vertex in the order first seen.
func (p *Progress) Vertices() []VertexState {
	p.mu.Lock()
	defer p.mu.Unlock()

	states := make([]VertexState, 0, len(p.order))
	for _, id := range p.order {
		s := *p.vertices[id]
		s.Logs = append([]string(nil), s.Logs...)
		states = append(states, s)
	}
	return states
}

func (p *Progress) vertex(id, name string) *VertexState {
	state, ok := p.vertices[id]
	if !ok {
		state = &VertexState{ID: id, Status: StatusRunning}
		p.vertices[id] = state
		p.order = append(p.order, id)
	}
	if name != "" {
		state.Name = name
	}
	return state
}

// appendLog splits vertex output into lines, holding back an unterminated tail.
func (p *Progress) appendLog(id string, data []byte) {
	buf := append(p.partial[id], data...)
	state := p.vertex(id, "")

	for {
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			break
		}
		state.Logs = append(state.Logs, string(buf[:i]))
		buf = buf[i+1:]
	}
	p.partial[id] = buf
}

func (p *Progress) render(state *VertexState) error {
	icon, color := style.Check, style.Green
	line := state.Name

	switch state.Status {
	case StatusFailed:
		icon, color = style.Cross, style.Red
		line += ": " + state.Error
	case StatusSkipped:
		icon, color = style.Dash, style.Slate
	}

	var b strings.Builder
	b.WriteString(p.paint(icon+" "+line, color))
	b.WriteString("\n")
	for _, l := range state.Logs {
		b.WriteString(p.paint("    "+l, style.Slate))
		b.WriteString("\n")
	}

	_, err := p.out.WriteString(b.String())
	return err
}

func (p *Progress) paint(s string, color lipgloss.Color) string {
	return p.out.String(s).Foreground(termenv.RGBColor(string(color))).String()
}
