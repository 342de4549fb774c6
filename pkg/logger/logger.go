package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/oakwood-commons/confviz/pkg/settings"
)

type loggerContextKey struct{}

const (
	CommitKey    = "commit"
	VersionKey   = "version"
	GoVersionKey = "go_version"
	TimeStampKey = "timestamp"
	MessageKey   = "message"
)

// Sink selects where log entries go.
type Sink int

const (
	// Stderr is used by the non-interactive subcommands.
	Stderr Sink = iota
	// File appends to Options.Path.
	File
	// Discard drops everything; the TUI owns the terminal.
	Discard
)

// Options configure Setup.
type Options struct {
	Level int8
	Sink  Sink
	Path  string
}

var (
	mu sync.Mutex

	globalZapLogger  *zap.Logger
	globalLogrLogger *logr.Logger
	closer           io.Closer

	defaultNoopLogger = logr.Discard()
)

// Setup replaces the global logger. Level follows zapcore: -1 debug, 0 info.
func Setup(opts Options) (*logr.Logger, error) {
	var ws zapcore.WriteSyncer
	var c io.Closer
	switch opts.Sink {
	case Discard:
		mu.Lock()
		defer mu.Unlock()
		closeLocked()
		globalZapLogger = nil
		globalLogrLogger = &defaultNoopLogger
		return globalLogrLogger, nil
	case File:
		f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		ws, c = zapcore.AddSync(f), f
	default:
		ws = zapcore.Lock(os.Stderr)
	}
	zl := newZap(ws, opts.Level)

	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	globalZapLogger, closer = zl, c
	gl := zapr.NewLogger(zl)
	globalLogrLogger = &gl
	return globalLogrLogger, nil
}

// New builds a logger writing JSON entries to w without touching the global one.
func New(w io.Writer, level int8) logr.Logger {
	return zapr.NewLogger(newZap(zapcore.AddSync(w), level))
}

func newZap(ws zapcore.WriteSyncer, level int8) *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.TimeKey = TimeStampKey
	encoderCfg.MessageKey = MessageKey

	goVersion := "unknown"
	if info, ok := debug.ReadBuildInfo(); ok {
		goVersion = info.GoVersion
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		ws,
		zap.NewAtomicLevelAt(zapcore.Level(level)),
	).With([]zapcore.Field{
		zap.String(CommitKey, settings.VersionInformation.Commit),
		zap.String(VersionKey, settings.VersionInformation.BuildVersion),
		zap.String(GoVersionKey, goVersion),
	})
	return zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
		zap.WithFatalHook(zapcore.WriteThenPanic),
	)
}

func closeLocked() {
	if globalZapLogger != nil {
		_ = globalZapLogger.Sync()
	}
	if closer != nil {
		_ = closer.Close()
		closer = nil
	}
}

// WithLogger returns ctx carrying log.
func WithLogger(ctx context.Context, log *logr.Logger) context.Context {
	if lp, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok && lp == log {
		return ctx
	}
	return context.WithValue(ctx, loggerContextKey{}, log)
}

// FromContext returns the logger in ctx, else the global logger, else a no-op logger.
func FromContext(ctx context.Context) *logr.Logger {
	if log, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok {
		return log
	}
	return GetGlobalLogger()
}

// GetGlobalLogger returns the logger from the last Setup, or a no-op logger.
func GetGlobalLogger() *logr.Logger {
	mu.Lock()
	defer mu.Unlock()
	if globalLogrLogger != nil {
		return globalLogrLogger
	}
	return &defaultNoopLogger
}

// Sync flushes buffered entries and closes a log file. Call it before exiting.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	if globalZapLogger != nil {
		if err := globalZapLogger.Sync(); err != nil && !isIgnorableSyncError(err) {
			fmt.Fprintf(os.Stderr, "WARNING: failed to sync zap logger: %v\n", err)
		}
	}
	if closer != nil {
		_ = closer.Close()
		closer = nil
	}
}

// isIgnorableSyncError reports the errors Sync returns on pipes and TTYs.
// Windows consoles wrap ERROR_INVALID_HANDLE, which only matches by text.
func isIgnorableSyncError(err error) bool {
	if errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.EIO) || errors.Is(err, syscall.EBADF) {
		return true
	}
	return strings.Contains(err.Error(), "The handle is invalid")
}
