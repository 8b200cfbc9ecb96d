// Package protocol defines the HTTP API request and response types.
package protocol

import (
	"time"

	"netlabgen.io/netlabgen/pkg/lab"
)

// ============================================================
// Lab Generation
// ============================================================

// GenerateLabRequest is the body of POST /api/labs.
type GenerateLabRequest struct {
	// Gemini API key supplied by the user. May be empty when the
	// server is configured with its own key.
	APIKey string `json:"api_key"`

	// One of the supported topics
	Topic string `json:"topic"`

	// One of the supported difficulty levels
	Difficulty string `json:"difficulty"`
}

// Edge is one directed topology connection, labels verbatim from the
// lab's connection entries (interface annotations included).
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// GenerateLabResponse is returned after a successful generation.
type GenerateLabResponse struct {
	// Archive ID of the stored lab
	ID string `json:"id"`

	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`

	// The complete generated lab
	Lab *lab.Lab `json:"lab"`

	// Topology edges extracted from the lab's connection entries
	Edges []Edge `json:"edges"`

	// Number of connection entries discarded as malformed
	DroppedConnections int `json:"dropped_connections"`

	// Graphviz DOT document for the topology diagram
	DOT string `json:"dot"`

	CreatedAt time.Time `json:"created_at"`
}

// ============================================================
// Archive
// ============================================================

// LabSummary is one row of the archive listing.
type LabSummary struct {
	ID         string    `json:"id"`
	Topic      string    `json:"topic"`
	Difficulty string    `json:"difficulty"`
	Title      string    `json:"title"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListLabsResponse is returned by GET /api/labs.
type ListLabsResponse struct {
	Labs  []LabSummary `json:"labs"`
	Total int          `json:"total"`
}

// ============================================================
// Meta
// ============================================================

// MetaResponse describes the UI control vocabulary.
type MetaResponse struct {
	// Supported topics, in menu order
	Topics []string `json:"topics"`

	// Difficulty levels, easiest first
	Difficulties []string `json:"difficulties"`
}

// ============================================================
// Health
// ============================================================

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// ============================================================
// Errors
// ============================================================

// ErrorResponse is the standard error format for all API errors.
type ErrorResponse struct {
	// Machine-readable error code
	Error string `json:"error"`

	// Human-readable message
	Message string `json:"message"`

	// Request ID for correlation
	RequestID string `json:"request_id,omitempty"`
}
