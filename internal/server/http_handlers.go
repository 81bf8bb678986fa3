package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/pprof"

	"github.com/sanonone/lexvek/pkg/core"
	"github.com/sanonone/lexvek/pkg/metrics"
)

// registerHTTPHandlers sets up the REST API routes.
func (s *Server) registerHTTPHandlers(mux *http.ServeMux) {
	// --- Debug endpoints (pprof) ---
	mux.HandleFunc("GET /debug/pprof/", pprof.Index)
	mux.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("GET /debug/pprof/trace", pprof.Trace)

	// --- Model endpoints ---
	mux.HandleFunc("GET /model/info", s.handleModelInfo)
	mux.HandleFunc("GET /model/words/{word}", s.handleWordVector)
	mux.HandleFunc("POST /model/actions/similar", s.handleSimilar)
	mux.HandleFunc("POST /model/actions/analogy", s.handleAnalogy)
	mux.HandleFunc("POST /model/actions/similarity", s.handleSimilarity)
}

func (s *Server) handleModelInfo(w http.ResponseWriter, r *http.Request) {
	metrics.ModelQueriesTotal.WithLabelValues("info").Inc()
	s.writeHTTPResponse(w, http.StatusOK, ModelInfoResponse{
		Words:       s.model.Size(),
		Dimensions:  s.model.Dim(),
		WindowSize:  s.model.WindowSize,
		MinCount:    s.model.MinCount,
		TotalTokens: s.model.Vocab.TotalTokens(),
		RunID:       s.model.RunID,
		TopWords:    s.model.Vocab.MostFrequent(10),
	})
}

func (s *Server) handleWordVector(w http.ResponseWriter, r *http.Request) {
	word := r.PathValue("word")
	metrics.ModelQueriesTotal.WithLabelValues("vector").Inc()

	vector, ok := s.model.Vector(word)
	if !ok {
		s.writeModelError(w, &core.UnknownWordError{Word: word})
		return
	}
	s.writeHTTPResponse(w, http.StatusOK, WordVectorResponse{
		Word:   word,
		Vector: vector,
		Count:  s.model.Vocab.Count(word),
	})
}

func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	var req SimilarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeHTTPError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Word == "" {
		s.writeHTTPError(w, http.StatusBadRequest, "'word' is required")
		return
	}
	metrics.ModelQueriesTotal.WithLabelValues("similar").Inc()

	matches, err := s.model.Similar(req.Word, req.Limit)
	if err != nil {
		s.writeModelError(w, err)
		return
	}
	s.writeHTTPResponse(w, http.StatusOK, MatchesResponse{Matches: matches})
}

func (s *Server) handleAnalogy(w http.ResponseWriter, r *http.Request) {
	var req AnalogyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeHTTPError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.A == "" || req.B == "" || req.C == "" {
		s.writeHTTPError(w, http.StatusBadRequest, "'a', 'b' and 'c' are required")
		return
	}
	metrics.ModelQueriesTotal.WithLabelValues("analogy").Inc()

	matches, err := s.model.Analogy(req.A, req.B, req.C, req.Limit)
	if err != nil {
		s.writeModelError(w, err)
		return
	}
	s.writeHTTPResponse(w, http.StatusOK, MatchesResponse{Matches: matches})
}

func (s *Server) handleSimilarity(w http.ResponseWriter, r *http.Request) {
	var req SimilarityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeHTTPError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Word1 == "" || req.Word2 == "" {
		s.writeHTTPError(w, http.StatusBadRequest, "'word1' and 'word2' are required")
		return
	}
	metrics.ModelQueriesTotal.WithLabelValues("similarity").Inc()

	similarity, err := s.model.Similarity(req.Word1, req.Word2)
	if err != nil {
		s.writeModelError(w, err)
		return
	}
	s.writeHTTPResponse(w, http.StatusOK, SimilarityResponse{
		Word1:      req.Word1,
		Word2:      req.Word2,
		Similarity: similarity,
	})
}

// --- HTTP response helpers ---

// writeModelError maps model errors to status codes: unknown words are the
// client's problem, everything else is ours.
func (s *Server) writeModelError(w http.ResponseWriter, err error) {
	var unknown *core.UnknownWordError
	if errors.As(err, &unknown) {
		s.writeHTTPError(w, http.StatusNotFound, unknown.Error())
		return
	}
	s.writeHTTPError(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) writeHTTPResponse(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeHTTPError(w http.ResponseWriter, statusCode int, message string) {
	s.writeHTTPResponse(w, statusCode, map[string]string{"error": message})
}
