package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// LogLevel is a thin enum for user friendly level configuration decoupled
// from slog.
type LogLevel int

const (
	// LogLevelDebug is the debug logging level.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is the informational logging level.
	LogLevelInfo
	// LogLevelWarn is the warning logging level.
	LogLevelWarn
	// LogLevelError is the error logging level.
	LogLevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger defines the minimal logging interface for CamState. This allows
// hosting services to provide their own logger implementation or use the
// built-in adapters.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter wraps *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	*slog.Logger
}

// Debug logs a debug message.
func (s *SlogAdapter) Debug(msg string, args ...any) { s.Logger.Debug(msg, args...) }

// Info logs an informational message.
func (s *SlogAdapter) Info(msg string, args ...any) { s.Logger.Info(msg, args...) }

// Warn logs a warning message.
func (s *SlogAdapter) Warn(msg string, args ...any) { s.Logger.Warn(msg, args...) }

// Error logs an error message.
func (s *SlogAdapter) Error(msg string, args ...any) { s.Logger.Error(msg, args...) }

// NewSlogAdapter creates a Logger from *slog.Logger.
func NewSlogAdapter(logger *slog.Logger) Logger {
	return &SlogAdapter{Logger: logger}
}

// NewDefaultSlogLogger creates a Logger using slog.Default().
func NewDefaultSlogLogger() Logger {
	return NewSlogAdapter(slog.Default())
}

// NoOpLogger discards all log messages. Useful for testing or when logging
// is disabled.
type NoOpLogger struct{}

// Debug logs a debug message.
func (NoOpLogger) Debug(string, ...any) {}

// Info logs an informational message.
func (NoOpLogger) Info(string, ...any) {}

// Warn logs a warning message.
func (NoOpLogger) Warn(string, ...any) {}

// Error logs an error message.
func (NoOpLogger) Error(string, ...any) {}

// CamLogger wraps slog.Logger adding contextual cloning helpers and domain
// convenience methods. It should be cheap to copy via With* methods.
type CamLogger struct {
	logger    *slog.Logger
	level     LogLevel
	component string
	cameraID  string
	taskID    int
	hasTask   bool
}

// LoggerConfig configures construction of a CamLogger.
type LoggerConfig struct {
	Level     LogLevel
	Format    string // json or text
	Output    io.Writer
	AddSource bool
	Component string
}

// DefaultLoggerConfig returns a baseline JSON info level configuration.
func DefaultLoggerConfig() *LoggerConfig {
	return &LoggerConfig{Level: LogLevelInfo, Format: "json", Output: os.Stdout, AddSource: false}
}

// NewLogger builds a CamLogger from a config (or defaults if nil).
func NewLogger(cfg *LoggerConfig) *CamLogger {
	if cfg == nil {
		cfg = DefaultLoggerConfig()
	}
	opts := &slog.HandlerOptions{Level: slogLevel(cfg.Level), AddSource: cfg.AddSource}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(cfg.Output, opts)
	} else {
		handler = slog.NewJSONHandler(cfg.Output, opts)
	}
	return &CamLogger{logger: slog.New(handler), level: cfg.Level, component: cfg.Component}
}

// NewSlogLogger creates a new CamLogger with the specified configuration.
func NewSlogLogger(level LogLevel, format string, addSource bool) *CamLogger {
	cfg := DefaultLoggerConfig()
	cfg.Level = level
	if format != "" {
		cfg.Format = format
	}
	cfg.AddSource = addSource
	return NewLogger(cfg)
}

func slogLevel(l LogLevel) slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *CamLogger) clone() *CamLogger {
	nl := *l
	return &nl
}

// WithComponent sets the logical component (monitor, policy, dispatch).
func (l *CamLogger) WithComponent(c string) *CamLogger {
	nl := l.clone()
	nl.component = c
	return nl
}

// WithCamera attaches a camera identifier to every subsequent log entry.
func (l *CamLogger) WithCamera(cameraID string) *CamLogger {
	nl := l.clone()
	nl.cameraID = cameraID
	return nl
}

// WithTask attaches an owning task identifier to every subsequent log entry.
func (l *CamLogger) WithTask(taskID int) *CamLogger {
	nl := l.clone()
	nl.taskID = taskID
	nl.hasTask = true
	return nl
}

func (l *CamLogger) buildAttrs(extra []any) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(extra)/2+4)
	if l.component != "" {
		attrs = append(attrs, slog.String("component", l.component))
	}
	if l.cameraID != "" {
		attrs = append(attrs, slog.String("camera_id", l.cameraID))
	}
	if l.hasTask {
		attrs = append(attrs, slog.Int("task_id", l.taskID))
	}
	for i := 0; i+1 < len(extra); i += 2 {
		if key, ok := extra[i].(string); ok {
			attrs = append(attrs, slog.Any(key, extra[i+1]))
		}
	}
	return attrs
}

func (l *CamLogger) log(level slog.Level, allowed bool, msg string, args ...any) {
	if !allowed {
		return
	}
	l.logger.LogAttrs(context.Background(), level, msg, l.buildAttrs(args)...)
}

// Debug logs at debug level.
func (l *CamLogger) Debug(msg string, args ...any) {
	l.log(slog.LevelDebug, l.level <= LogLevelDebug, msg, args...)
}

// Info logs at info level.
func (l *CamLogger) Info(msg string, args ...any) {
	l.log(slog.LevelInfo, l.level <= LogLevelInfo, msg, args...)
}

// Warn logs at warn level.
func (l *CamLogger) Warn(msg string, args ...any) {
	l.log(slog.LevelWarn, l.level <= LogLevelWarn, msg, args...)
}

// Error logs at error level.
func (l *CamLogger) Error(msg string, args ...any) {
	l.log(slog.LevelError, l.level <= LogLevelError, msg, args...)
}

// LogPolicyDecision records the aggregate answer of one close-consent pass.
func (l *CamLogger) LogPolicyDecision(cameraID string, policies int, canClose bool) {
	l.Info("policy consensus evaluated",
		"camera_id", cameraID, "policy_count", policies, "can_close", canClose)
}

// LogRetryScheduled records a deferred close retry for a vetoed camera.
func (l *CamLogger) LogRetryScheduled(cameraID string, delay time.Duration) {
	l.Info("camera close deferred, retry scheduled",
		"camera_id", cameraID, "delay", delay)
}
