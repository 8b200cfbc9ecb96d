// Package handlers provides HTTP request handlers for the lab API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"netlabgen.io/netlabgen/internal/generator"
	"netlabgen.io/netlabgen/internal/storage"
	"netlabgen.io/netlabgen/internal/topology"
	"netlabgen.io/netlabgen/pkg/lab"
	"netlabgen.io/netlabgen/pkg/protocol"
)

// Config holds handler configuration.
type Config struct {
	// Server-side API key; used when the request does not carry one
	ServerAPIKey string

	// Upper bound on one provider call
	GenerateTimeout time.Duration

	// Default archive listing size
	ListLimit int
}

// Handlers contains all API handlers.
type Handlers struct {
	db        *storage.DB
	generator *generator.Generator
	cfg       Config
	version   string
	startTime time.Time
	logger    zerolog.Logger
}

// New creates a new Handlers instance.
func New(db *storage.DB, gen *generator.Generator, cfg Config, version string, startTime time.Time, logger zerolog.Logger) *Handlers {
	if cfg.GenerateTimeout <= 0 {
		cfg.GenerateTimeout = 120 * time.Second
	}
	if cfg.ListLimit <= 0 {
		cfg.ListLimit = 50
	}
	return &Handlers{
		db:        db,
		generator: gen,
		cfg:       cfg,
		version:   version,
		startTime: startTime,
		logger:    logger.With().Str("component", "handlers").Logger(),
	}
}

// ============================================================
// Generation
// ============================================================

// GenerateLab handles POST /api/labs
func (h *Handlers) GenerateLab(w http.ResponseWriter, r *http.Request) {
	var req protocol.GenerateLabRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	topic := lab.Topic(req.Topic)
	if !lab.IsValidTopic(topic) {
		h.writeError(w, r, http.StatusBadRequest, "invalid_request",
			fmt.Sprintf("Unknown topic %q", req.Topic))
		return
	}

	difficulty := lab.Difficulty(req.Difficulty)
	if !lab.IsValidDifficulty(difficulty) {
		h.writeError(w, r, http.StatusBadRequest, "invalid_request",
			fmt.Sprintf("Unknown difficulty %q", req.Difficulty))
		return
	}

	apiKey := req.APIKey
	if apiKey == "" {
		apiKey = h.cfg.ServerAPIKey
	}

	// The provider call is the only blocking operation; bound it.
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.GenerateTimeout)
	defer cancel()

	generated, err := h.generator.Generate(ctx, apiKey, topic, difficulty)
	if err != nil {
		h.writeGenerateError(w, r, err)
		return
	}

	edges, dropped := topology.Extract(generated.Connections)
	if dropped > 0 {
		h.logger.Warn().
			Int("dropped", dropped).
			Msg("Discarded malformed topology entries")
	}

	payload, err := generated.MarshalIndented()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to serialize lab")
		h.writeError(w, r, http.StatusInternalServerError, "internal_error", "Failed to serialize lab")
		return
	}

	record := &storage.LabRecord{
		ID:         uuid.New().String(),
		Topic:      string(topic),
		Difficulty: string(difficulty),
		Title:      generated.Title,
		Payload:    string(payload),
		CreatedAt:  time.Now().UTC(),
	}

	// The archive is an extension of the pipeline, not part of it: a
	// failed insert must not cost the user their lab.
	if err := h.db.CreateLab(r.Context(), record); err != nil {
		h.logger.Error().Err(err).Str("lab_id", record.ID).Msg("Failed to archive lab")
	}

	h.writeJSON(w, http.StatusOK, protocol.GenerateLabResponse{
		ID:                 record.ID,
		Topic:              string(topic),
		Difficulty:         string(difficulty),
		Lab:                generated,
		Edges:              toProtocolEdges(edges),
		DroppedConnections: dropped,
		DOT:                topology.DOT(edges),
		CreatedAt:          record.CreatedAt,
	})
}

// writeGenerateError maps generator failures to API error codes. The
// dashboard shows every class as one error banner; the codes exist for
// operators and tests.
func (h *Handlers) writeGenerateError(w http.ResponseWriter, r *http.Request, err error) {
	var providerErr *generator.ProviderError
	var malformedErr *generator.MalformedResponseError

	switch {
	case errors.Is(err, generator.ErrMissingCredential):
		h.writeError(w, r, http.StatusUnauthorized, "missing_credential",
			"Please enter a Gemini API key")
	case errors.As(err, &malformedErr):
		h.writeError(w, r, http.StatusBadGateway, "malformed_response",
			fmt.Sprintf("Error generating lab: %v", err))
	case errors.As(err, &providerErr):
		h.writeError(w, r, http.StatusBadGateway, "provider_failure",
			fmt.Sprintf("Error generating lab: %v", err))
	default:
		h.logger.Error().Err(err).Msg("Unexpected generation error")
		h.writeError(w, r, http.StatusInternalServerError, "internal_error",
			fmt.Sprintf("Error generating lab: %v", err))
	}
}

// ============================================================
// Archive
// ============================================================

// ListLabs handles GET /api/labs
func (h *Handlers) ListLabs(w http.ResponseWriter, r *http.Request) {
	limit := h.cfg.ListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	records, err := h.db.ListLabs(r.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list labs")
		h.writeError(w, r, http.StatusInternalServerError, "internal_error", "Failed to list labs")
		return
	}

	summaries := make([]protocol.LabSummary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, protocol.LabSummary{
			ID:         rec.ID,
			Topic:      rec.Topic,
			Difficulty: rec.Difficulty,
			Title:      rec.Title,
			CreatedAt:  rec.CreatedAt,
		})
	}

	h.writeJSON(w, http.StatusOK, protocol.ListLabsResponse{
		Labs:  summaries,
		Total: len(summaries),
	})
}

// GetLab handles GET /api/labs/{labID}
func (h *Handlers) GetLab(w http.ResponseWriter, r *http.Request) {
	record, ok := h.lookupLab(w, r)
	if !ok {
		return
	}

	parsed, err := h.parseRecord(record)
	if err != nil {
		h.logger.Error().Err(err).Str("lab_id", record.ID).Msg("Corrupt archived lab")
		h.writeError(w, r, http.StatusInternalServerError, "internal_error", "Archived lab is corrupt")
		return
	}

	edges, dropped := topology.Extract(parsed.Connections)

	h.writeJSON(w, http.StatusOK, protocol.GenerateLabResponse{
		ID:                 record.ID,
		Topic:              record.Topic,
		Difficulty:         record.Difficulty,
		Lab:                parsed,
		Edges:              toProtocolEdges(edges),
		DroppedConnections: dropped,
		DOT:                topology.DOT(edges),
		CreatedAt:          record.CreatedAt,
	})
}

// DeleteLab handles DELETE /api/labs/{labID}
func (h *Handlers) DeleteLab(w http.ResponseWriter, r *http.Request) {
	labID := chi.URLParam(r, "labID")

	if err := h.db.DeleteLab(r.Context(), labID); err != nil {
		h.writeError(w, r, http.StatusNotFound, "lab_not_found", "Lab not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DownloadLab handles GET /api/labs/{labID}/download
func (h *Handlers) DownloadLab(w http.ResponseWriter, r *http.Request) {
	record, ok := h.lookupLab(w, r)
	if !ok {
		return
	}

	filename := lab.DownloadFilename(record.Topic)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(record.Payload)); err != nil {
		h.logger.Error().Err(err).Msg("Failed to write download")
	}
}

// TopologyDOT handles GET /api/labs/{labID}/topology.dot
func (h *Handlers) TopologyDOT(w http.ResponseWriter, r *http.Request) {
	record, ok := h.lookupLab(w, r)
	if !ok {
		return
	}

	parsed, err := h.parseRecord(record)
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "internal_error", "Archived lab is corrupt")
		return
	}

	edges, _ := topology.Extract(parsed.Connections)

	w.Header().Set("Content-Type", "text/vnd.graphviz")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(topology.DOT(edges))); err != nil {
		h.logger.Error().Err(err).Msg("Failed to write DOT")
	}
}

// ============================================================
// Meta and health
// ============================================================

// GetMeta handles GET /api/meta
func (h *Handlers) GetMeta(w http.ResponseWriter, r *http.Request) {
	topics := make([]string, 0, len(lab.Topics))
	for _, t := range lab.Topics {
		topics = append(topics, string(t))
	}

	difficulties := make([]string, 0, len(lab.Difficulties))
	for _, d := range lab.Difficulties {
		difficulties = append(difficulties, string(d))
	}

	h.writeJSON(w, http.StatusOK, protocol.MetaResponse{
		Topics:       topics,
		Difficulties: difficulties,
	})
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, protocol.HealthResponse{
		Status:  "ok",
		Version: h.version,
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
	})
}

// ============================================================
// Helpers
// ============================================================

func (h *Handlers) lookupLab(w http.ResponseWriter, r *http.Request) (*storage.LabRecord, bool) {
	labID := chi.URLParam(r, "labID")

	record, err := h.db.GetLab(r.Context(), labID)
	if err != nil {
		h.logger.Error().Err(err).Str("lab_id", labID).Msg("Failed to get lab")
		h.writeError(w, r, http.StatusInternalServerError, "internal_error", "Failed to get lab")
		return nil, false
	}

	if record == nil {
		h.writeError(w, r, http.StatusNotFound, "lab_not_found", "Lab not found")
		return nil, false
	}

	return record, true
}

func (h *Handlers) parseRecord(record *storage.LabRecord) (*lab.Lab, error) {
	var parsed lab.Lab
	if err := json.Unmarshal([]byte(record.Payload), &parsed); err != nil {
		return nil, err
	}
	return &parsed, nil
}

func toProtocolEdges(edges []topology.Edge) []protocol.Edge {
	out := make([]protocol.Edge, 0, len(edges))
	for _, e := range edges {
		out = append(out, protocol.Edge{Source: e.Source, Target: e.Target})
	}
	return out
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	resp := protocol.ErrorResponse{
		Error:     code,
		Message:   message,
		RequestID: middleware.GetReqID(r.Context()),
	}
	h.writeJSON(w, status, resp)
}
