package dto

import "time"

type PipelineRunResponse struct {
	RunID    string `json:"run_id"`
	StatusWS string `json:"status_ws"`
}

type HealthResponse struct {
	Status     string    `json:"status"`
	WSClients  int       `json:"ws_clients"`
	ServerTime time.Time `json:"server_time"`
}
