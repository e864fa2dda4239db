// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"
	"io"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/modpack/internal/core/ports"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements the ports.Telemetry interface using the vito/progrock library.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a new Recorder writing to a Progress with its output discarded
// until SetOutput is called.
func New() ports.Telemetry {
	return NewRecorder(NewProgress(nil))
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Record starts recording a new vertex. Vertices are keyed by the digest of their
// name, so recording the same name twice continues the same vertex.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	v := r.rec.Vertex(digest.FromString(name), name)
	vertex := &Vertex{vertex: v}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// SetOutput forwards w to the underlying writer when it can render progress.
func (r *Recorder) SetOutput(w io.Writer) {
	if o, ok := r.w.(interface{ SetOutput(io.Writer) }); ok {
		o.SetOutput(w)
	}
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
