package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
)

const (
	FormatJSON    = "json"
	FormatConsole = "console"
	FormatPretty  = "pretty"
)

// Logger is a zerolog.Logger carrying the service name.
type Logger struct {
	zl      zerolog.Logger
	service string
}

var global atomic.Pointer[Logger]

// Init replaces the global logger with one built from cfg.
func Init(cfg Config) {
	cfg.ApplyDefaults()
	global.Store(New(&cfg, cfg.ServiceName))
}

// GetGlobalLogger returns the logger installed by Init, or a console
// logger at info level when Init has not run.
func GetGlobalLogger() *Logger {
	if l := global.Load(); l != nil {
		return l
	}
	l := New(&Config{Level: "info", Format: FormatConsole, Output: "stderr", Timestamp: true}, "")
	if global.CompareAndSwap(nil, l) {
		return l
	}
	return global.Load()
}

// New builds a logger writing to cfg.Output (stderr unless "stdout").
func New(cfg *Config, serviceName string) *Logger {
	out := io.Writer(os.Stderr)
	if strings.EqualFold(cfg.Output, "stdout") {
		out = os.Stdout
	}
	return NewWithWriter(cfg, serviceName, out)
}

// NewWithWriter builds a logger writing to w. Unknown levels mean info.
func NewWithWriter(cfg *Config, serviceName string, w io.Writer) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var zl zerolog.Logger
	switch strings.ToLower(cfg.Format) {
	case FormatConsole, FormatPretty:
		zl = zerolog.New(consoleWriter(cfg.NoColor, serviceName, w))
	default:
		zl = zerolog.New(w)
	}

	ctx := zl.Level(level).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	if serviceName != "" {
		ctx = ctx.Str("service", serviceName)
	}
	return &Logger{zl: ctx.Logger(), service: serviceName}
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func (l *Logger) derive(zl zerolog.Logger) *Logger {
	return &Logger{zl: zl, service: l.service}
}

func (l *Logger) WithComponent(name string) *Logger {
	return l.derive(l.zl.With().Str(FieldComponent, name).Logger())
}

func (l *Logger) WithError(err error) *Logger {
	return l.derive(l.zl.With().Err(err).Logger())
}

// WithContext adds the request id stored by ContextWithRequestID, if any.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	id := RequestIDFromContext(ctx)
	if id == "" {
		return l
	}
	return l.derive(l.zl.With().Str(FieldRequestID, id).Logger())
}

func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	emit(l.zl.Debug(), msg, fields)
}

func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	emit(l.zl.Info(), msg, fields)
}

func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	emit(l.zl.Warn(), msg, fields)
}

func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	emit(l.zl.Error(), msg, fields)
}

func emit(ev *zerolog.Event, msg string, fields []map[string]interface{}) {
	// ev is nil when the level is filtered out.
	if ev == nil {
		return
	}
	for _, m := range fields {
		for k, v := range m {
			ev.Interface(k, v)
		}
	}
	ev.Msg(msg)
}

// Package-level shortcuts write through the global logger.

func Info(msg string, fields ...map[string]interface{}) {
	GetGlobalLogger().Info(msg, fields...)
}

func Warn(msg string, fields ...map[string]interface{}) {
	GetGlobalLogger().Warn(msg, fields...)
}

func Error(msg string, fields ...map[string]interface{}) {
	GetGlobalLogger().Error(msg, fields...)
}

type ctxKey struct{}

// ContextWithRequestID tags ctx with a per-fetch id picked up by WithContext.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

var levelTags = map[string]struct{ tag, color string }{
	"trace": {"TRC", "\033[90m"},
	"debug": {"DBG", "\033[36m"},
	"info":  {"INF", "\033[32m"},
	"warn":  {"WRN", "\033[33m"},
	"error": {"ERR", "\033[31m"},
	"fatal": {"FTL", "\033[35m"},
	"panic": {"PNC", "\033[35m"},
}

// consoleWriter renders "[SYN][INF] message key:value" lines, the prefix
// being the first three letters of the service name.
func consoleWriter(noColor bool, serviceName string, w io.Writer) zerolog.ConsoleWriter {
	prefix := ""
	if len(serviceName) >= 3 {
		prefix = "[" + strings.ToUpper(serviceName[:3]) + "]"
		if !noColor {
			prefix = "\033[34m" + prefix + "\033[0m"
		}
	}
	return zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    noColor,
		FormatLevel: func(i interface{}) string {
			name := fmt.Sprint(i)
			lt, ok := levelTags[name]
			if !ok {
				return prefix + "[" + strings.ToUpper(name) + "]"
			}
			tag := "[" + lt.tag + "]"
			if !noColor {
				tag = lt.color + tag + "\033[0m"
			}
			return prefix + tag
		},
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprint(i) + ":"
		},
	}
}
