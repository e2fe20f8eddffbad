// Package testutil provides testing helpers for rivet clients: a capturing
// HTTP server and typed query decoding. It is import-cycle safe and can be
// used from any package.
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/gorilla/schema"
)

var queryDecoder = schema.NewDecoder()

func init() {
	queryDecoder.IgnoreUnknownKeys(true)
}

// CapturedRequest records one request received by a Server.
type CapturedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

// Server is an httptest.Server that records every request it receives and
// answers with a canned response. Configure with the With* chain before
// issuing requests.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	captured []CapturedRequest
	status   int
	body     []byte
	header   map[string]string
}

// NewServer starts a capturing server that responds 200 with an empty body.
// The caller owns shutdown via Close.
func NewServer() *Server {
	s := &Server{
		status: http.StatusOK,
		header: make(map[string]string),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// WithStatus sets the response status code.
func (s *Server) WithStatus(status int) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	return s
}

// WithJSON sets the response body to the JSON encoding of v.
func (s *Server) WithJSON(v any) *Server {
	data, err := json.Marshal(v)
	if err != nil {
		panic("testutil: WithJSON: " + err.Error())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.body = data
	s.header["Content-Type"] = "application/json"
	return s
}

// WithBody sets the raw response body.
func (s *Server) WithBody(body string) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.body = []byte(body)
	return s
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.captured = append(s.captured, CapturedRequest{
		Method:   r.Method,
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
		Header:   r.Header.Clone(),
		Body:     data,
	})
	status := s.status
	body := s.body
	for k, v := range s.header {
		w.Header().Set(k, v)
	}
	s.mu.Unlock()

	w.WriteHeader(status)
	if len(body) > 0 {
		w.Write(body)
	}
}

// Requests returns a snapshot of all captured requests.
func (s *Server) Requests() []CapturedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CapturedRequest, len(s.captured))
	copy(out, s.captured)
	return out
}

// Last returns the most recently captured request, failing the test if the
// server has seen none.
func (s *Server) Last(t *testing.T) CapturedRequest {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.captured) == 0 {
		t.Fatal("testutil: no requests captured")
	}
	return s.captured[len(s.captured)-1]
}

// DecodeQuery decodes a raw query string into dst using the same schema tag
// vocabulary request types carry, so tests can round-trip query parameters
// back into typed values.
func DecodeQuery(t *testing.T, rawQuery string, dst any) {
	t.Helper()
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		t.Fatalf("testutil: parse query %q: %v", rawQuery, err)
	}
	if err := queryDecoder.Decode(dst, values); err != nil {
		t.Fatalf("testutil: decode query %q: %v", rawQuery, err)
	}
}

// DecodeJSON decodes a captured body into dst.
func DecodeJSON(t *testing.T, data []byte, dst any) {
	t.Helper()
	if err := json.Unmarshal(data, dst); err != nil {
		t.Fatalf("testutil: decode JSON %q: %v", data, err)
	}
}
