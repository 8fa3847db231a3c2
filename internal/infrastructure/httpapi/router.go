// SPDX-License-Identifier: Apache-2.0

// Package httpapi exposes an HTTP projection of the Media Source
// subsystem (§4.9 "UI detail projection"): read-only listing and detail
// routes plus a POST route that triggers acquire-detail, grounded on the
// teacher's internal/api/v1 handler style and chi/httprate middleware
// stack. It is an outer surface the domain packages never import.
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	middlewarechi "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/xstudio-go/mediasource/internal/config"
	"github.com/xstudio-go/mediasource/internal/domain/mediasource/model"
	"github.com/xstudio-go/mediasource/internal/log"
	"github.com/xstudio-go/mediasource/internal/registry"
)

// Handler holds the HTTP API's dependencies.
type Handler struct {
	sources *registry.Sources
	logger  zerolog.Logger
}

// NewRouter builds a chi.Mux serving the projection endpoints under
// /sources, rate-limited per cfg.RateLimit.HTTPPerMinute.
func NewRouter(sources *registry.Sources, cfg config.RuntimeConfig, logger zerolog.Logger) *chi.Mux {
	h := &Handler{sources: sources, logger: logger}

	r := chi.NewRouter()
	r.Use(middlewarechi.Recoverer)
	r.Use(middlewarechi.RequestID)
	if cfg.RateLimit.HTTPPerMinute > 0 {
		r.Use(httprate.Limit(cfg.RateLimit.HTTPPerMinute, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
	}

	r.Get("/sources", h.handleList)
	r.Get("/sources/{id}/detail", h.handleDetail)
	r.Get("/sources/{id}/streams/{mediaType}", h.handleStreamDetails)
	r.Post("/sources/{id}/acquire-detail", h.handleAcquireDetail)

	return r
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ids := h.sources.List()
	writeJSON(w, h.logger, http.StatusOK, ids)
}

func (h *Handler) sourceFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid source id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	if _, ok := h.sources.Get(id); !ok {
		http.Error(w, "source not found", http.StatusNotFound)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) handleDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sourceFromPath(w, r)
	if !ok {
		return
	}
	src, _ := h.sources.Get(id)

	ref, err := src.MediaReference(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	name, _ := src.Name(r.Context())
	status, _ := src.Status(r.Context())

	writeJSON(w, h.logger, http.StatusOK, struct {
		UUID   uuid.UUID           `json:"uuid"`
		Name   string              `json:"name"`
		Status model.MediaStatus   `json:"status"`
		URI    string              `json:"uri"`
	}{UUID: id, Name: name, Status: status, URI: ref.URI})
}

func (h *Handler) handleStreamDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sourceFromPath(w, r)
	if !ok {
		return
	}
	src, _ := h.sources.Get(id)
	mt := model.MediaType(chi.URLParam(r, "mediaType"))

	payload, err := src.StreamDetails(r.Context(), mt)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, payload)
}

func (h *Handler) handleAcquireDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sourceFromPath(w, r)
	if !ok {
		return
	}
	src, _ := h.sources.Get(id)

	ctx := log.ContextWithSourceUUID(r.Context(), id.String())
	fallback := model.NewFrameRate(24, 1)
	acquired, err := src.AcquireDetail(ctx, fallback)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, struct {
		Acquired bool `json:"acquired"`
	}{Acquired: acquired})
}

func writeJSON(w http.ResponseWriter, logger zerolog.Logger, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("httpapi: failed to encode response")
	}
}

func writeError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	status := http.StatusInternalServerError
	var merr *model.Error
	if e, ok := err.(*model.Error); ok {
		merr = e
		switch merr.Kind {
		case model.KindInvalidFrameIndex, model.KindNoStreams, model.KindNoFrames:
			status = http.StatusBadRequest
		case model.KindOffline:
			status = http.StatusServiceUnavailable
		}
	}
	logger.Warn().Err(err).Int("status", status).Msg("httpapi: request failed")
	http.Error(w, err.Error(), status)
}
