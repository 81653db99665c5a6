package logger

import (
	"fmt"
	"io"
	"sync"
)

// Logger is the minimal logging surface the drivers need.
type Logger interface {
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Debug(msg string, args ...interface{})
}

// DefaultLogger writes one line per entry to an underlying writer. The args
// are alternating key/value pairs.
type DefaultLogger struct {
	wr io.Writer
	mu sync.Mutex
}

func NewDefaultLogger(wr io.Writer) *DefaultLogger {
	return &DefaultLogger{wr: wr}
}

func (s *DefaultLogger) Info(msg string, args ...interface{}) {
	s.log("INFO", msg, args)
}

func (s *DefaultLogger) Warn(msg string, args ...interface{}) {
	s.log("WARN", msg, args)
}

func (s *DefaultLogger) Debug(msg string, args ...interface{}) {
	s.log("DEBUG", msg, args)
}

func (s *DefaultLogger) log(level string, msg string, args []interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.wr, "%s %s%s\n", level, msg, formatArgs(args))
}

func formatArgs(args []interface{}) string {
	if len(args) == 0 {
		return ""
	}
	if len(args)%2 != 0 {
		return fmt.Sprintf(" INVALID_ARGS=%v", args)
	}
	var out string
	for i := 0; i < len(args); i += 2 {
		out += fmt.Sprintf(" %v=%v", args[i], args[i+1])
	}
	return out
}

// Discard drops everything logged to it.
var Discard Logger = discard{}

type discard struct{}

func (discard) Info(msg string, args ...interface{})  {}
func (discard) Warn(msg string, args ...interface{})  {}
func (discard) Debug(msg string, args ...interface{}) {}
