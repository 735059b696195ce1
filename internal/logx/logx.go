// Package logx emits one-line JSON log entries to stdout, matching the
// request-log format produced by the HTTP middleware.
package logx

import (
	"encoding/json"
	"log"
	"time"
)

// Info logs an informational event with the given fields.
func Info(event string, fields map[string]any) {
	emit("info", event, fields)
}

// Error logs an error event with the given fields.
func Error(event string, err error, fields map[string]any) {
	if fields == nil {
		fields = map[string]any{}
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	emit("error", event, fields)
}

func emit(level, event string, fields map[string]any) {
	entry := map[string]any{
		"ts":    time.Now().UTC().Format(time.RFC3339Nano),
		"level": level,
		"event": event,
	}
	for k, v := range fields {
		entry[k] = v
	}
	b, err := json.Marshal(entry)
	if err != nil {
		log.Printf("failed to marshal log entry: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
