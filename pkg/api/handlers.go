package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/wordcloud/pkg/buildinfo"
	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/cloud/spiral"
	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/fonts"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/result"
)

// LayoutRequest is the body of POST /v1/layouts.
type LayoutRequest struct {
	Words   []cloud.Word     `json:"words"`
	Options pipeline.Options `json:"options"`
}

// LayoutResponse wraps a stored layout with request metadata.
type LayoutResponse struct {
	result.Layout
	Cached bool `json:"cached"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleSpirals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"spirals": spiral.Names()})
}

func (s *Server) handleFonts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"fonts": fonts.Families()})
}

func (s *Server) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if len(req.Words) > pipeline.MaxWordsLimit {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "too many words: %d (max %d)", len(req.Words), pipeline.MaxWordsLimit))
		return
	}

	opts := req.Options
	if err := opts.Validate(); err != nil {
		writeError(w, err)
		return
	}
	words := pipeline.Limit(req.Words, opts.MaxWords)

	timeout := s.LayoutTimeout
	if timeout <= 0 {
		timeout = DefaultLayoutTimeout
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	l, hit, err := s.Runner.Layout(ctx, words, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := s.Store.Save(r.Context(), l)
	if err != nil {
		writeError(w, err)
		return
	}
	stored, err := s.Store.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Location", "/v1/layouts/"+id)
	writeJSON(w, http.StatusCreated, LayoutResponse{Layout: stored, Cached: hit})
}

func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}
	layouts, err := s.Store.List(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if layouts == nil {
		layouts = []result.Layout{}
	}
	writeJSON(w, http.StatusOK, map[string][]result.Layout{"layouts": layouts})
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	l, err := s.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
