//go:build e2e

// Package gatewayfake serves the compliance gateway's JSON API from memory for end-to-end runs.
package gatewayfake

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"time"

	"gst-lifecycle/internal/domain/document"
)

const (
	CodeSuccess  = "1"
	CodeRejected = "2"
)

type incoming struct {
	Kind       document.Kind    `json:"kind"`
	Payload    document.Payload `json:"payload"`
}

type Server struct {
	srv *httptest.Server

	mu        sync.Mutex
	incoming  map[string]incoming
	overrides map[string]string // action -> status code
	failing   map[string]bool   // action -> answer 500
	calls     map[string]int
	seq       atomic.Int64
}

func NewServer() *Server {
	s := &Server{}
	s.Reset()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth", s.handleAuth)
	mux.HandleFunc("POST /documents", s.handleGenerate)
	mux.HandleFunc("GET /documents/{number}", s.handleFetch)
	mux.HandleFunc("POST /documents/{number}/{action}", s.handleAction)
	s.srv = httptest.NewServer(mux)
	return s
}

func (s *Server) URL() string { return s.srv.URL }

func (s *Server) Close() { s.srv.Close() }

func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.incoming = map[string]incoming{}
	s.overrides = map[string]string{}
	s.failing = map[string]bool{}
	s.calls = map[string]int{}
}

// AddIncoming registers an E-Way Bill raised by a counterparty so it can be received.
func (s *Server) AddIncoming(number string, payload document.Payload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.incoming[number] = incoming{Kind: document.KindEWayBill, Payload: payload}
}

// RespondWith makes every later call to action answer with code.
func (s *Server) RespondWith(action, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[action] = code
}

func (s *Server) FailWith500(action string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[action] = true
}

func (s *Server) Calls(action string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[action]
}

func (s *Server) record(action string) (code string, fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[action]++
	code = CodeSuccess
	if c, ok := s.overrides[action]; ok {
		code = c
	}
	return code, s.failing[action]
}

func (s *Server) handleAuth(w http.ResponseWriter, _ *http.Request) {
	if _, fail := s.record("auth"); fail {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status_code": 1,
		"token":       "fake-token",
		"expires_in":  3600,
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	code, fail := s.record("generate")
	if fail {
		w.WriteHeader(http.StatusBadGateway)
		return
	}
	if !authorized(r) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	var body struct {
		Kind string `json:"kind"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	resp := map[string]any{
		"status_code":    code,
		"correlation_id": s.correlationID(),
	}
	if code == CodeSuccess {
		n := s.seq.Add(1)
		if body.Kind == string(document.KindEInvoice) {
			resp["document_number"] = fmt.Sprintf("IRN%012d", n)
			resp["ack_number"] = fmt.Sprintf("1120%08d", n)
		} else {
			resp["document_number"] = fmt.Sprintf("3310%08d", n)
			resp["valid_until"] = time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)
		}
	} else {
		resp["description"] = "Duplicate document"
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	code, fail := s.record("fetch")
	if fail {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	number := r.PathValue("number")
	s.mu.Lock()
	doc, ok := s.incoming[number]
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"status_code": CodeRejected,
			"description": "Document not found",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status_code":     code,
		"correlation_id":  s.correlationID(),
		"document_number": number,
		"valid_until":     time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339),
		"document":        doc,
	})
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	action := r.PathValue("action")
	code, fail := s.record(action)
	if fail {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if !authorized(r) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	resp := map[string]any{
		"status_code":     code,
		"document_number": r.PathValue("number"),
	}
	if code != CodeSuccess {
		resp["description"] = "Rejected by portal"
	}
	w.Header().Set("X-Correlation-ID", s.correlationID())
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) correlationID() string {
	return fmt.Sprintf("corr-%d", time.Now().UnixNano())
}

func authorized(r *http.Request) bool {
	return r.Header.Get("Authorization") == "Bearer fake-token"
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
