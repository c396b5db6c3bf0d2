package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/cognicore/speller/pkg/speller/candidate"
	"github.com/cognicore/speller/pkg/speller/internalerr"
	"github.com/cognicore/speller/pkg/speller/report"
)

type engine interface {
	Check(ctx context.Context, text string) (report.Report, error)
	Suggest(word string) []candidate.Candidate
	AddWord(ctx context.Context, word string) (bool, error)
	Search(prefix string) []string
}

func newMux(e engine) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/check", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Text string `json:"text"`
			Fix  bool   `json:"fix"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
			return
		}
		rep, err := e.Check(r.Context(), req.Text)
		if err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
			return
		}
		if !req.Fix {
			writeJSON(w, http.StatusOK, rep)
			return
		}
		fixed, err := rep.Corrected(req.Text)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"report":    rep,
			"corrected": fixed,
		})
	})

	mux.HandleFunc("/api/v1/suggest", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		word := strings.TrimSpace(r.URL.Query().Get("word"))
		if word == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "word is required"})
			return
		}
		cands := e.Suggest(word)
		if cands == nil {
			cands = []candidate.Candidate{}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"word":       word,
			"candidates": cands,
		})
	})

	mux.HandleFunc("/api/v1/custom-word", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Word string `json:"word"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Word) == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
			return
		}
		added, err := e.AddWord(r.Context(), req.Word)
		switch {
		case errors.Is(err, internalerr.ErrInvalidInput):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		case err != nil:
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		case added:
			writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
		default:
			writeJSON(w, http.StatusOK, map[string]string{"status": "exists"})
		}
	})

	mux.HandleFunc("/api/v1/dictionary", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		words := e.Search(r.URL.Query().Get("prefix"))
		if words == nil {
			words = []string{}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"count": len(words),
			"words": words,
		})
	})

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
