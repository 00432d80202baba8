// internal/models/component.go
package models

import "time"

// GeneratedComponent is a single UI component produced by an agent.
// Instances are immutable once returned; re-analyzing the same query
// produces fresh IDs.
type GeneratedComponent struct {
	ID              string `json:"id"`
	AgentName       string `json:"agentName"`
	ComponentType   string `json:"componentType"`
	ComponentCode   string `json:"componentCode"`
	BusinessContext string `json:"businessContext,omitempty"`
}

// AnalyzeRequest is the body of POST /api/analyze.
type AnalyzeRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"sessionId,omitempty"`
}

// AnalyzeResponse is the envelope returned by POST /api/analyze.
// Sequence increases monotonically per server process so clients can
// discard responses that arrive out of order.
type AnalyzeResponse struct {
	Success         bool                 `json:"success"`
	RequestID       string               `json:"requestId"`
	Sequence        uint64               `json:"sequence"`
	Components      []GeneratedComponent `json:"components"`
	RenderTrees     []RenderedComponent  `json:"renderTrees,omitempty"`
	TotalComponents int                  `json:"totalComponents"`
	ProcessingTime  string               `json:"processingTime"`
	AgentTrace      []string             `json:"agentTrace"`
}

// RenderedComponent pairs a component ID with its resolved render tree.
type RenderedComponent struct {
	ComponentID string      `json:"componentId"`
	Tree        interface{} `json:"tree"`
}

// RenderRequest is the body of POST /api/render.
type RenderRequest struct {
	ComponentType string `json:"componentType"`
	ComponentCode string `json:"componentCode"`
}

// RenderResponse is the envelope returned by POST /api/render.
type RenderResponse struct {
	Success bool        `json:"success"`
	Tree    interface{} `json:"tree"`
}

// HistoryEntry is one recorded query in the per-session history list.
type HistoryEntry struct {
	Query     string    `json:"query"`
	SessionID string    `json:"sessionId,omitempty"`
	AgentName string    `json:"agentName"`
	Timestamp time.Time `json:"timestamp"`
}

// AgentInfo describes one registered agent for GET /api/agents.
type AgentInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tools       []string `json:"tools"`
}

// HealthStatus is the body of GET /.
type HealthStatus struct {
	Status       string   `json:"status"`
	Service      string   `json:"service"`
	Version      string   `json:"version"`
	Agents       []string `json:"agents"`
	CacheHealthy bool     `json:"cacheHealthy"`
}
