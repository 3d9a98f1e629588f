package ws

import (
	"encoding/json"

	"jobad-insights/internal/pipeline"
)

const EventTypePipeline = "pipeline_event"

// PipelineMessage is the frame pushed to subscribers for each stage event.
type PipelineMessage struct {
	Type  string         `json:"type"`
	Event pipeline.Event `json:"event"`
}

// PipelineObserver forwards pipeline events to the hub.
type PipelineObserver struct {
	Hub *Hub
}

func (o PipelineObserver) OnEvent(e pipeline.Event) {
	if o.Hub == nil {
		return
	}
	b, err := json.Marshal(PipelineMessage{Type: EventTypePipeline, Event: e})
	if err != nil {
		return
	}
	o.Hub.Broadcast(b)
}
