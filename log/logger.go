package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Lvzhenqian/library/errors"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

type colors int

const (
	Error colors = 31 + iota
	Info
	Panic
	_
	Fatal
	Debug
	Trace
	_
	Weak colors = 2
	Bold colors = 1
	Warn        = Panic
)

var Dict = zerolog.Dict

type ZeroLoggerConfig struct {
	// MaxSize 每个日志文件最大多少 MB
	MaxSize int
	// MaxAge 最大保存多少天前的日志
	MaxAge int
	// MaxBackups 最大保留多少个旧日志
	MaxBackups int
	// Compress 是否压缩旧日志
	Compress bool
	// Filename 文件路径名，为空时只输出到控制台
	Filename string
	// LogLevel 日志级别
	LogLevel string
	// CallerPathPrefix stdout输出文件名路径忽略前缀。
	// 可以通过环境变量名：CONSOLE_CALLER_PATH_PREFIX 修改
	CallerPathPrefix string
	// Console 控制台输出，默认 os.Stdout
	Console io.Writer
}

// ZeroLogger 的 file/multi 创建后不再修改，级别单独原子保存，
// WithCtx 派生的 logger 与原 logger 共享级别
type ZeroLogger struct {
	file  zerolog.Context
	multi zerolog.Context
	level *atomic.Int32
}

func consoleFormatCaller(prefix string, color bool) zerolog.Formatter {
	return func(i interface{}) string {
		var c string
		if cc, ok := i.(string); ok {
			c = cc
		}
		if len(c) > 0 {
			if rel, err := filepath.Rel(prefix, c); err == nil {
				c = rel
			}
			if color {
				c += fmt.Sprintf("\x1b[%d;%dm%s\x1b[0m", Debug, Weak, " >")
			} else {
				c += " >"
			}
		}
		return c
	}
}

// isTerminal 判断输出是否为终端，非终端时关闭颜色
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func NewLogger(conf *ZeroLoggerConfig) (*ZeroLogger, error) {
	level, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil {
		return nil, err
	}
	zerolog.ErrorStackMarshaler = func(err error) interface{} {
		return errors.ErrorStack(err)
	}

	consoleCallerPrefix := conf.CallerPathPrefix
	if prefix, ok := os.LookupEnv("CONSOLE_CALLER_PATH_PREFIX"); ok {
		consoleCallerPrefix = prefix
	}

	out := conf.Console
	if out == nil {
		out = os.Stdout
	}
	color := isTerminal(out)
	consoleWriter := zerolog.ConsoleWriter{
		Out:          out,
		NoColor:      !color,
		TimeFormat:   time.RFC3339,
		FormatCaller: consoleFormatCaller(consoleCallerPrefix, color),
	}
	if color {
		consoleWriter.FormatLevel = func(i interface{}) string {
			value, ok := i.(string)
			if !ok {
				return fmt.Sprintf("%4s", i)
			}
			return colorLevel(value)
		}
		consoleWriter.FormatErrFieldName = func(i interface{}) string {
			value, ok := i.(string)
			if !ok {
				return fmt.Sprintf("%4s", i)
			}
			return fmt.Sprintf("\x1b[%d;%dm%s\x1b[0m=", Warn, Weak, value)
		}
	}

	var fileWriter, multiWriter io.Writer
	if conf.Filename != "" {
		fileWriter = &lumberjack.Logger{
			Filename:   conf.Filename,
			MaxSize:    conf.MaxSize,
			MaxAge:     conf.MaxAge,
			MaxBackups: conf.MaxBackups,
			LocalTime:  true,
			Compress:   conf.Compress,
		}
		multiWriter = zerolog.MultiLevelWriter(consoleWriter, fileWriter)
	} else {
		fileWriter = consoleWriter
		multiWriter = consoleWriter
	}

	l := &ZeroLogger{
		file:  zerolog.New(fileWriter).With().Timestamp().CallerWithSkipFrameCount(zerolog.CallerSkipFrameCount),
		multi: zerolog.New(multiWriter).With().Timestamp().CallerWithSkipFrameCount(zerolog.CallerSkipFrameCount),
		level: new(atomic.Int32),
	}
	l.level.Store(int32(level))
	return l, nil
}

func (l *ZeroLogger) currentLevel() zerolog.Level {
	return zerolog.Level(l.level.Load())
}

func colorLevel(s string) string {
	format := func(color, style colors) string {
		return fmt.Sprintf("|\x1b[%d;%dm%-5s\x1b[0m|", color, style, strings.ToUpper(s))
	}
	same := func(v string) bool {
		return strings.EqualFold(s, v)
	}
	switch {
	case same("panic"):
		return format(Panic, Bold)
	case same("fatal"):
		return format(Fatal, Bold)
	case same("error"):
		return format(Error, Bold)
	case same("warn"):
		return format(Warn, Weak)
	case same("info"):
		return format(Info, Bold)
	case same("debug"):
		return format(Debug, Bold)
	default:
		return format(Trace, Bold)
	}
}

func (l *ZeroLogger) SetLevel(level string) error {
	newLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	l.level.Store(int32(newLevel))
	return nil
}

func (l *ZeroLogger) GetLevel() string {
	return l.currentLevel().String()
}

func (l *ZeroLogger) File() zerolog.Logger {
	return l.file.Logger().Level(l.currentLevel())
}

func (l *ZeroLogger) FileWithSkipFrame(i int) zerolog.Logger {
	return l.file.CallerWithSkipFrameCount(i).Logger().Level(l.currentLevel())
}

func (l *ZeroLogger) Multi() zerolog.Logger {
	return l.multi.Logger().Level(l.currentLevel())
}

func (l *ZeroLogger) MultiWithSkipFrame(i int) zerolog.Logger {
	return l.multi.CallerWithSkipFrameCount(i).Logger().Level(l.currentLevel())
}

func (l *ZeroLogger) Error(msg string) {
	multi := l.MultiWithSkipFrame(3)
	multi.Error().Stack().Msg(msg)
}

func (l *ZeroLogger) Errorf(f string, value ...interface{}) {
	multi := l.MultiWithSkipFrame(3)
	multi.Error().Stack().Msgf(f, value...)
}

func (l *ZeroLogger) WithError(err error, msg string) {
	multi := l.MultiWithSkipFrame(3)
	multi.Error().Stack().Err(err).Msg(msg)
}

func (l *ZeroLogger) Warn(msg string) {
	multi := l.MultiWithSkipFrame(3)
	multi.Warn().Msg(msg)
}

func (l *ZeroLogger) Warnf(f string, value ...interface{}) {
	multi := l.MultiWithSkipFrame(3)
	multi.Warn().Msgf(f, value...)
}

func (l *ZeroLogger) Info(msg string) {
	file := l.FileWithSkipFrame(3)
	file.Info().Msg(msg)
}

func (l *ZeroLogger) Infof(f string, value ...interface{}) {
	file := l.FileWithSkipFrame(3)
	file.Info().Msgf(f, value...)
}

func (l *ZeroLogger) Debugf(f string, value ...interface{}) {
	file := l.FileWithSkipFrame(3)
	file.Debug().Msgf(f, value...)
}

// WithWrapf 记录错误并返回带调用位置的包装错误
func (l *ZeroLogger) WithWrapf(err error, format string, args ...interface{}) error {
	e := errors.Wrapf(err, format, args...)
	multi := l.MultiWithSkipFrame(3)
	multi.Error().Err(e).Msgf(format, args...)
	return e
}

// Outcome 是可以记录到日志的结果值，例如 result.Result
type Outcome interface {
	zerolog.LogObjectMarshaler
	HasError() bool
}

// Result 记录一个结果：成功写 info，失败写 warn
func (l *ZeroLogger) Result(msg string, r Outcome) {
	if r.HasError() {
		multi := l.MultiWithSkipFrame(3)
		multi.Warn().Object("result", r).Msg(msg)
		return
	}
	file := l.FileWithSkipFrame(3)
	file.Info().Object("result", r).Msg(msg)
}

func (l *ZeroLogger) TimeRecord(t time.Time, f string, value ...interface{}) {
	multi := l.MultiWithSkipFrame(3)
	multi.Info().Str("Since", time.Since(t).String()).Msgf(f, value...)
}

// WithCtx 返回一个带 trace_id/span_id 的新 logger，原 logger 不变
func (l *ZeroLogger) WithCtx(ctx context.Context) *ZeroLogger {
	s := trace.SpanContextFromContext(ctx)
	if !s.HasTraceID() {
		return l
	}
	hook := traceHook{
		traceID: s.TraceID().String(),
		spanID:  s.SpanID().String(),
	}
	c := *l
	c.multi = l.multi.Logger().Hook(hook).With()
	c.file = l.file.Logger().Hook(hook).With()
	return &c
}

type traceHook struct {
	traceID string
	spanID  string
}

func (h traceHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	if level != zerolog.NoLevel {
		e.Str("trace_id", h.traceID).Str("span_id", h.spanID)
	}
}
