package dto

import "deepti.app/relay/internal/model"

type ChatRequest struct {
	History model.History `json:"history,omitempty"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Mode   string `json:"mode"` // "live" or "fallback"
}
