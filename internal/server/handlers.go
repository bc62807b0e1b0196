// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pdiddy/trialscout/internal/names"
	"github.com/pdiddy/trialscout/internal/trials"
	"github.com/pdiddy/trialscout/pkg/types"
)

const (
	maxNameLength      = 200
	maxBodyBytes       = 1 << 20
	maxQueryInRun      = 200
	maxLiteratureLimit = 100
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// drugName reads and validates the {name} path parameter.
func drugName(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "name")
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}
	name := strings.TrimSpace(raw)
	switch {
	case name == "":
		return "", errors.New("drug name is required")
	case len(name) > maxNameLength:
		return "", errors.New("drug name is too long")
	}
	return name, nil
}

// handleDrug resolves a drug name and, unless ?trials=false, searches the
// trials registry for the query and every candidate name.
func (s *Server) handleDrug(w http.ResponseWriter, r *http.Request) {
	name, err := drugName(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ctx := r.Context()

	res, err := s.resolver.Resolve(ctx, name)
	if err != nil {
		s.fail(w, r, "name resolution failed", err)
		return
	}

	if r.URL.Query().Get("trials") == "false" {
		writeJSON(w, http.StatusOK, trials.NamesOnly(res))
		return
	}

	result, err := s.pipeline.AggregateDrug(ctx, res)
	if err != nil {
		s.fail(w, r, "trial aggregation failed", err)
		return
	}

	s.record(ctx, types.RunRecord{
		Kind:          types.RunDrug,
		Query:         name,
		NamesSearched: result.Summary.NamesSearched,
		TrialsFound:   result.Summary.TrialsFound,
		ErrorCount:    len(result.Errors),
		WasTruncated:  result.Summary.WasTruncated,
	})
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCollectNames(w http.ResponseWriter, r *http.Request) {
	name, err := drugName(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.resolver.Resolve(r.Context(), name)
	if err != nil {
		s.fail(w, r, "name resolution failed", err)
		return
	}
	writeData(w, names.Collect(res))
}

type aggregateRequest struct {
	DrugNames *[]string `json:"drugNames"`
}

func (s *Server) handleAggregateTrials(w http.ResponseWriter, r *http.Request) {
	var req aggregateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "drugNames must be an array of strings")
		return
	}
	if req.DrugNames == nil {
		writeError(w, http.StatusBadRequest, "drugNames is required")
		return
	}
	ctx := r.Context()

	out, err := s.pipeline.Aggregate(ctx, *req.DrugNames)
	if errors.Is(err, trials.ErrNoNames) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.fail(w, r, "trial aggregation failed", err)
		return
	}

	prepared, _ := trials.PrepareNames(*req.DrugNames, s.pipeline.MaxNames())
	s.record(ctx, types.RunRecord{
		Kind:          types.RunTrials,
		Query:         runQuery(prepared),
		NamesSearched: out.Stats.TotalSearched,
		TrialsFound:   out.Stats.TotalUniqueTrials,
		ErrorCount:    len(out.Errors),
		WasTruncated:  out.Stats.WasTruncated,
	})
	writeData(w, out)
}

type literatureResponse struct {
	Query  string        `json:"query"`
	Papers []types.Paper `json:"papers"`
}

func (s *Server) handleLiterature(w http.ResponseWriter, r *http.Request) {
	if s.literature == nil {
		writeError(w, http.StatusServiceUnavailable, "literature lookup is not configured")
		return
	}
	name, err := drugName(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxLiteratureLimit {
			writeError(w, http.StatusBadRequest, "limit must be an integer between 1 and 100")
			return
		}
		limit = n
	}

	papers, err := s.literature.Search(r.Context(), name, limit)
	if err != nil {
		s.fail(w, r, "literature lookup failed", err)
		return
	}
	writeData(w, literatureResponse{Query: name, Papers: papers})
}

// fail logs err and answers 500. The client sees msg, never the cause.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	s.logger.Error(msg, "path", r.URL.Path, "request_id", RequestIDFromContext(r.Context()), "error", err)
	writeError(w, http.StatusInternalServerError, msg)
}

// record stores a run in history. Failures are logged and never reach the
// client.
func (s *Server) record(ctx context.Context, run types.RunRecord) {
	if s.history == nil {
		return
	}
	if _, err := s.history.Record(context.WithoutCancel(ctx), run); err != nil {
		s.logger.Warn("recording run failed", "kind", run.Kind, "error", err)
	}
}

// runQuery summarizes a name list for the history log.
func runQuery(names []string) string {
	q := strings.Join(names, ", ")
	if r := []rune(q); len(r) > maxQueryInRun {
		q = string(r[:maxQueryInRun-3]) + "..."
	}
	return q
}
