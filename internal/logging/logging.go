package logging

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

// Logger writes one JSON object per line. Every entry gets a "ts" in the
// configured location and a "level" (error when status is "error", info otherwise)
// unless the caller already set one.
type Logger struct {
	mu  sync.Mutex
	enc *json.Encoder
	loc *time.Location
}

// New returns a Logger writing to w. A nil loc means UTC.
func New(w io.Writer, loc *time.Location) *Logger {
	if loc == nil {
		loc = time.UTC
	}
	return &Logger{enc: json.NewEncoder(w), loc: loc}
}

// Stdout returns a Logger writing to os.Stdout.
func Stdout(loc *time.Location) *Logger {
	return New(os.Stdout, loc)
}

// Log writes data as a single JSON line. data is modified in place.
func (l *Logger) Log(data map[string]any) {
	data["ts"] = time.Now().In(l.loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.enc.Encode(data)
}

// Info logs msg with the given fields at info level.
func (l *Logger) Info(msg string, fields map[string]any) {
	l.Log(withMsg("info", msg, fields))
}

// Error logs msg and err at error level.
func (l *Logger) Error(msg string, err error, fields map[string]any) {
	entry := withMsg("error", msg, fields)
	if err != nil {
		entry["error"] = err.Error()
	}
	l.Log(entry)
}

func withMsg(level, msg string, fields map[string]any) map[string]any {
	entry := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		entry[k] = v
	}
	entry["level"] = level
	entry["msg"] = msg
	return entry
}
