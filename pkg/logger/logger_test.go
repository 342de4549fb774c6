package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, 0)
	log.Info("loaded", "files", 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "loaded", entry[MessageKey])
	assert.EqualValues(t, 2, entry["files"])
	assert.Contains(t, entry, TimeStampKey)
	assert.Contains(t, entry, VersionKey)
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, 0).V(1).Info("hidden")
	assert.Zero(t, buf.Len())

	New(&buf, -1).V(1).Info("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetupFileSink(t *testing.T) {
	t.Cleanup(func() { _, _ = Setup(Options{Sink: Discard}) })
	path := filepath.Join(t.TempDir(), "confviz.log")

	log, err := Setup(Options{Sink: File, Path: path})
	require.NoError(t, err)
	log.Info("hello")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
	assert.Same(t, log, GetGlobalLogger())
}

func TestSetupBadPath(t *testing.T) {
	_, err := Setup(Options{Sink: File, Path: filepath.Join(t.TempDir(), "missing", "x.log")})
	assert.Error(t, err)
}

func TestDiscardSink(t *testing.T) {
	log, err := Setup(Options{Sink: Discard})
	require.NoError(t, err)
	assert.Same(t, &defaultNoopLogger, log)
	assert.NotPanics(t, func() {
		log.Info("nothing")
		Sync()
	})
}

func TestContextPropagation(t *testing.T) {
	ctx := context.Background()
	assert.Same(t, GetGlobalLogger(), FromContext(ctx))

	l := logr.Discard()
	ctx2 := WithLogger(ctx, &l)
	assert.Same(t, &l, FromContext(ctx2))
	assert.Equal(t, ctx2, WithLogger(ctx2, &l))
}

func TestIgnorableSyncErrors(t *testing.T) {
	assert.True(t, isIgnorableSyncError(syscall.ENOTTY))
	assert.True(t, isIgnorableSyncError(&os.PathError{Op: "sync", Path: "/dev/stderr", Err: syscall.EINVAL}))
	assert.False(t, isIgnorableSyncError(os.ErrPermission))
}
