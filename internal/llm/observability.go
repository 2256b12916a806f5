package llm

import (
	"io"
	"log/slog"
)

// CallEvent records the outcome of a single chat completion call.
type CallEvent struct {
	Task      TaskType
	Model     string
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives call events for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events as structured log lines.
type LogObserver struct {
	log *slog.Logger
}

// NewLogObserver creates an Observer that writes text log lines to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{log: slog.New(slog.NewTextHandler(w, nil))}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	attrs := []any{
		"task", string(event.Task),
		"model", event.Model,
		"latency_ms", event.LatencyMs,
	}
	if event.Success {
		o.log.Info("llm call", attrs...)
		return
	}
	attrs = append(attrs, "error_code", event.ErrorCode)
	o.log.Warn("llm call failed", attrs...)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
