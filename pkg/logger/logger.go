// Package logger is the structured logging layer of the application and
// interface packages. It emits one flat JSON object per line so that log
// aggregation can index learner_id, lesson_id and friends without
// unpacking a nested fields object.
package logger

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a log message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// ParseLevel parses a string into a Level. Unknown values fall back to
// Info so a typo in LOG_LEVEL never silences errors.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

func String(key, value string) Field      { return Field{Key: key, Value: value} }
func Int(key string, value int) Field     { return Field{Key: key, Value: value} }
func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }
func Any(key string, value any) Field     { return Field{Key: key, Value: value} }

// Err creates an error field. A nil error logs as null.
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Duration creates a duration field using Go's duration notation.
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

// Domain field constructors. Handlers and use cases attach these so the
// same keys show up everywhere a learner or lesson is logged.
func LearnerID(id string) Field  { return String("learner_id", id) }
func Email(email string) Field   { return String("email", email) }
func LessonID(id string) Field   { return String("lesson_id", id) }
func Language(code string) Field { return String("language", code) }
func XPAmount(xp int) Field      { return Int("xp_amount", xp) }
func ScorePercent(pct int) Field { return Int("score_percent", pct) }

// Options configures the logger.
type Options struct {
	Output io.Writer
	Level  Level
}

// Logger writes structured JSON log lines. A Logger is safe for
// concurrent use; With derives child loggers that share the writer.
type Logger struct {
	mu     *sync.Mutex
	output io.Writer
	level  Level
	fields []Field
}

// New creates a Logger with the given options. A nil Output defaults to
// stdout.
func New(opts Options) *Logger {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	return &Logger{
		mu:     &sync.Mutex{},
		output: opts.Output,
		level:  opts.Level,
	}
}

// Default creates a logger writing Info and above to stdout.
func Default() *Logger {
	return New(Options{Level: LevelInfo})
}

// NewNop returns a logger that discards all output. Intended for tests.
func NewNop() *Logger {
	return New(Options{Output: io.Discard, Level: LevelError + 1})
}

// With returns a child Logger that includes the given fields on every
// entry it writes.
func (l *Logger) With(fields ...Field) *Logger {
	child := &Logger{
		mu:     l.mu,
		output: l.output,
		level:  l.level,
		fields: make([]Field, 0, len(l.fields)+len(fields)),
	}
	child.fields = append(child.fields, l.fields...)
	child.fields = append(child.fields, fields...)
	return child
}

func (l *Logger) Debug(msg string, fields ...Field) { l.write(LevelDebug, msg, fields) }
func (l *Logger) Info(msg string, fields ...Field)  { l.write(LevelInfo, msg, fields) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.write(LevelWarn, msg, fields) }
func (l *Logger) Error(msg string, fields ...Field) { l.write(LevelError, msg, fields) }

func (l *Logger) write(level Level, msg string, fields []Field) {
	if level < l.level {
		return
	}

	entry := make(map[string]any, len(l.fields)+len(fields)+3)
	for _, f := range l.fields {
		entry[f.Key] = f.Value
	}
	for _, f := range fields {
		entry[f.Key] = f.Value
	}
	// Reserved keys win over user fields.
	entry["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)
	entry["level"] = level.String()
	entry["message"] = msg

	data, err := json.Marshal(entry)
	if err != nil {
		// A field value that cannot be marshalled should not drop the
		// whole entry.
		data, _ = json.Marshal(map[string]any{
			"timestamp": entry["timestamp"],
			"level":     level.String(),
			"message":   msg,
			"log_error": err.Error(),
		})
	}
	data = append(data, '\n')

	l.mu.Lock()
	l.output.Write(data)
	l.mu.Unlock()
}
