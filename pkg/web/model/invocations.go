package model

import "encoding/json"

type CreateInvocation struct {
	ID     string          `json:"id" example:"4b0f3c1e-1b7e-4c59-9a53-0d5f5b1d2a10"`
	Inputs json.RawMessage `json:"inputs" swaggertype:"object"`
}

type CreateInvocationSuccess struct {
	ID        string `json:"id" example:"4b0f3c1e-1b7e-4c59-9a53-0d5f5b1d2a10"`
	Crawler   string `json:"crawler" example:"peregrineCrawler"`
	RequestID string `json:"requestId,omitempty" example:"d1c9f5a2-7d4e-4c3b-8a1f-5e6b7c8d9e0f"`
}

type HealthStatus struct {
	Status string `json:"status" example:"ok"`
}
