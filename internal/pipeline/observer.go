package pipeline

import (
	"log"
	"time"
)

// Event status values.
const (
	StatusStarted  = "started"
	StatusFinished = "finished"
	StatusSkipped  = "skipped"
	StatusError    = "error"
)

// Event describes the progress of one pipeline stage.
type Event struct {
	RunID    string        `json:"run_id"`
	Stage    string        `json:"stage"`
	Status   string        `json:"status"`
	Rows     int           `json:"rows"`
	Duration time.Duration `json:"duration"`
	Err      string        `json:"error,omitempty"`
	At       time.Time     `json:"at"`
}

// Observer receives stage events. Implementations must not block.
type Observer interface {
	OnEvent(e Event)
}

type ObserverFunc func(e Event)

func (f ObserverFunc) OnEvent(e Event) { f(e) }

// Observers fans an event out to several observers.
type Observers []Observer

func (o Observers) OnEvent(e Event) {
	for _, obs := range o {
		if obs != nil {
			obs.OnEvent(e)
		}
	}
}

// LogObserver writes events as key=value lines.
type LogObserver struct {
	Logger *log.Logger
}

func (l LogObserver) OnEvent(e Event) {
	logger := l.Logger
	if logger == nil {
		logger = log.Default()
	}
	switch e.Status {
	case StatusStarted:
		logger.Printf("pipeline=preprocess run_id=%s step=%s status=started", e.RunID, e.Stage)
	case StatusError:
		logger.Printf("pipeline=preprocess run_id=%s step=%s status=error err=%s", e.RunID, e.Stage, e.Err)
	default:
		logger.Printf("pipeline=preprocess run_id=%s step=%s status=%s rows=%d duration=%s", e.RunID, e.Stage, e.Status, e.Rows, e.Duration)
	}
}
