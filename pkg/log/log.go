// Package log provides structured logging for scigo-perf, backed by zerolog.
//
// Library code logs through the small Logger interface using alternating
// key/value pairs, the same shape as log/slog:
//
//	logger := log.GetLoggerWithName("perf").With(log.ComponentKey, "roc")
//	logger.Debug("Evaluation started", log.SamplesKey, n)
//
// Programs configure the global level once:
//
//	log.SetupLogger("debug")
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Standard keys used in structured log fields.
const (
	ComponentKey  = "component"
	ModelNameKey  = "model_name"
	OperationKey  = "operation"
	PhaseKey      = "phase"
	SamplesKey    = "samples"
	PointsKey     = "points"
	AreaKey       = "area"
	DurationMsKey = "duration_ms"
	ErrorKey      = "error"
)

// Values for OperationKey and PhaseKey.
const (
	OperationExplain = "explain_perf"
	OperationPredict = "predict"
	OperationCompare = "compare"

	PhaseInference  = "inference"
	PhaseEvaluation = "evaluation"
)

// Logger is the logging interface used across the library.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
	With(fields ...interface{}) Logger
}

// LoggerProvider hands out Logger instances sharing one configuration.
type LoggerProvider interface {
	GetLogger() Logger
	GetLoggerWithName(name string) Logger
}

var (
	mu         sync.RWMutex
	rootLogger = newRootLogger(os.Stderr, zerolog.InfoLevel)
)

func newRootLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// ToLogLevel parses a level name. Unknown names map to info.
func ToLogLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// SetupLogger configures the global logger to write console output at level.
func SetupLogger(level string) {
	SetOutput(os.Stderr, level)
}

// SetOutput configures the global logger to write console output to w.
func SetOutput(w io.Writer, level string) {
	mu.Lock()
	defer mu.Unlock()
	rootLogger = newRootLogger(w, ToLogLevel(level))
}

// GetLogger returns the underlying global zerolog logger for event-style
// logging: log.GetLogger().Warn().Err(err).Msg("...").
func GetLogger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := rootLogger
	return &l
}

// GetLoggerWithName returns a Logger tagged with the given component name.
func GetLoggerWithName(name string) Logger {
	return &zerologLogger{logger: GetLogger().With().Str("logger", name).Logger()}
}

// LogError logs err at error level on the global logger.
func LogError(err error, msg string) {
	if err == nil {
		return
	}
	l := GetLogger()
	l.Error().Err(err).Msg(msg)
}

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() Logger {
	return &zerologLogger{logger: zerolog.Nop()}
}

// NewZerologLogger adapts an existing zerolog logger.
func NewZerologLogger(l zerolog.Logger) Logger {
	return &zerologLogger{logger: l}
}

type zerologProvider struct {
	base zerolog.Logger
}

// NewZerologProvider returns a provider whose loggers emit at level and above.
func NewZerologProvider(level zerolog.Level) LoggerProvider {
	return &zerologProvider{base: GetLogger().Level(level)}
}

func (p *zerologProvider) GetLogger() Logger {
	return &zerologLogger{logger: p.base}
}

func (p *zerologProvider) GetLoggerWithName(name string) Logger {
	return &zerologLogger{logger: p.base.With().Str("logger", name).Logger()}
}

type zerologLogger struct {
	logger zerolog.Logger
}

func (l *zerologLogger) Debug(msg string, fields ...interface{}) {
	emit(l.logger.Debug(), msg, fields)
}

func (l *zerologLogger) Info(msg string, fields ...interface{}) {
	emit(l.logger.Info(), msg, fields)
}

func (l *zerologLogger) Warn(msg string, fields ...interface{}) {
	emit(l.logger.Warn(), msg, fields)
}

func (l *zerologLogger) Error(msg string, fields ...interface{}) {
	emit(l.logger.Error(), msg, fields)
}

func (l *zerologLogger) With(fields ...interface{}) Logger {
	ctx := l.logger.With()
	for i := 0; i < len(fields); i += 2 {
		key, val := pair(fields, i)
		if err, ok := val.(error); ok && key == ErrorKey {
			ctx = ctx.AnErr(key, err)
			continue
		}
		ctx = ctx.Interface(key, val)
	}
	return &zerologLogger{logger: ctx.Logger()}
}

// emit attaches key/value fields to ev and sends it. ev is nil when the
// level is disabled.
func emit(ev *zerolog.Event, msg string, fields []interface{}) {
	if ev == nil {
		return
	}
	for i := 0; i < len(fields); i += 2 {
		key, val := pair(fields, i)
		if err, ok := val.(error); ok {
			ev = ev.AnErr(key, err)
			continue
		}
		ev = ev.Interface(key, val)
	}
	ev.Msg(msg)
}

func pair(fields []interface{}, i int) (string, interface{}) {
	key, ok := fields[i].(string)
	if !ok {
		key = fmt.Sprint(fields[i])
	}
	if i+1 >= len(fields) {
		return key, "!MISSING"
	}
	return key, fields[i+1]
}
