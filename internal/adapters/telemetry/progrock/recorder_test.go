package progrock_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modpack/internal/adapters/telemetry/progrock"
	"go.trai.ch/modpack/internal/core/domain"
	"go.trai.ch/modpack/internal/core/ports"
)

func TestNew(t *testing.T) {
	recorder := progrock.New()
	assert.NotNil(t, recorder)
	assert.NoError(t, recorder.Close())
}

func TestRecorder_VerticesReadBack(t *testing.T) {
	progress := progrock.NewProgress(nil)
	recorder := progrock.NewRecorder(progress)

	ctx, vertex := recorder.Record(context.Background(), "examplemod")
	fromCtx, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, vertex, fromCtx)

	vertex.Log(domain.LogLevelInfo, "Downloading http://host/a-1.0.jar")
	_, err := vertex.Stdout().Write([]byte("fetched 3 bytes"))
	require.NoError(t, err)

	running := progress.Vertices()
	require.Len(t, running, 1)
	assert.Equal(t, "examplemod", running[0].Name)
	assert.Equal(t, progrock.StatusRunning, running[0].Status)

	vertex.Complete(nil)

	_, failed := recorder.Record(context.Background(), "broken")
	failed.Complete(errors.New("checksum mismatch"))

	_, ignored := recorder.Record(context.Background(), "forge")
	ignored.Skipped()

	require.NoError(t, recorder.Close())

	states := progress.Vertices()
	require.Len(t, states, 3)

	assert.Equal(t, "examplemod", states[0].Name)
	assert.Equal(t, progrock.StatusCompleted, states[0].Status)
	assert.Equal(t, []string{"[INFO] Downloading http://host/a-1.0.jar", "fetched 3 bytes"}, states[0].Logs)

	assert.Equal(t, "broken", states[1].Name)
	assert.Equal(t, progrock.StatusFailed, states[1].Status)
	assert.Equal(t, "checksum mismatch", states[1].Error)

	assert.Equal(t, "forge", states[2].Name)
	assert.Equal(t, progrock.StatusSkipped, states[2].Status)
}

func TestRecorder_SameNameContinuesVertex(t *testing.T) {
	progress := progrock.NewProgress(nil)
	recorder := progrock.NewRecorder(progress)

	_, first := recorder.Record(context.Background(), "jei")
	_, second := recorder.Record(context.Background(), "jei")
	second.Complete(nil)
	first.Complete(nil)

	states := progress.Vertices()
	require.Len(t, states, 1)
	assert.Equal(t, progrock.StatusCompleted, states[0].Status)
}

func TestProgress_Render(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	buf := &bytes.Buffer{}

	recorder := progrock.New().(*progrock.Recorder)
	recorder.SetOutput(buf)

	_, done := recorder.Record(context.Background(), "jei")
	done.Log(domain.LogLevelInfo, "Downloading http://host/jei.jar")
	done.Complete(nil)

	_, failed := recorder.Record(context.Background(), "broken")
	failed.Complete(errors.New("checksum mismatch"))

	_, ignored := recorder.Record(context.Background(), "forge")
	ignored.Skipped()

	require.NoError(t, recorder.Close())

	want := "✓ jei\n" +
		"    [INFO] Downloading http://host/jei.jar\n" +
		"✗ broken: checksum mismatch\n" +
		"– forge\n"
	assert.Equal(t, want, buf.String())
}

func TestProgress_DiscardsUntilOutputSet(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	progress := progrock.NewProgress(nil)
	recorder := progrock.NewRecorder(progress)

	_, before := recorder.Record(context.Background(), "a")
	before.Complete(nil)

	buf := &bytes.Buffer{}
	recorder.SetOutput(buf)

	_, after := recorder.Record(context.Background(), "b")
	after.Complete(nil)

	assert.Equal(t, "✓ b\n", buf.String())
	assert.Len(t, progress.Vertices(), 2)
}
