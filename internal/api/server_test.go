package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/f1mcp-io/f1mcp/internal/logbuf"
)

// mockToolLister implements ToolLister for testing.
type mockToolLister struct {
	tools []ToolInfo
}

func (m *mockToolLister) ListToolInfo() []ToolInfo { return m.tools }

func newTestServer(tools ToolLister, key string, logs LogQuerier) *Server {
	return NewServer(tools, Config{Host: "127.0.0.1", Port: 0, Key: key}, nil, logs)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&mockToolLister{}, "secret", nil)
	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
	var body map[string]string
	json.NewDecoder(w.Body).Decode(&body)
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestListTools(t *testing.T) {
	lister := &mockToolLister{tools: []ToolInfo{
		{Name: "get_sessions", Description: "Retrieve F1 race sessions"},
		{Name: "overtakes", Description: "Derive overtake events"},
	}}
	srv := newTestServer(lister, "", nil)
	req := httptest.NewRequest("GET", "/api/tools", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var tools []ToolInfo
	json.NewDecoder(w.Body).Decode(&tools)
	if len(tools) != 2 || tools[0].Name != "get_sessions" {
		t.Errorf("tools = %+v", tools)
	}
}

func TestAuthRequired(t *testing.T) {
	srv := newTestServer(&mockToolLister{}, "secret", nil)

	req := httptest.NewRequest("GET", "/api/tools", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d", w.Code)
	}

	req = httptest.NewRequest("GET", "/api/tools", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d", w.Code)
	}

	req = httptest.NewRequest("GET", "/api/tools", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("good token: status = %d", w.Code)
	}
}

func TestGetLogs(t *testing.T) {
	buf := logbuf.New(10)
	now := time.Now()
	buf.Write(logbuf.Entry{Time: now, Level: "DEBUG", Message: "noise"})
	buf.Write(logbuf.Entry{Time: now.Add(time.Second), Level: "ERROR", Message: "bad fetch"})

	srv := newTestServer(&mockToolLister{}, "", buf)
	req := httptest.NewRequest("GET", "/api/logs?level=error", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var entries []logbuf.Entry
	json.NewDecoder(w.Body).Decode(&entries)
	if len(entries) != 1 || entries[0].Message != "bad fetch" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestGetLogsNilQuerier(t *testing.T) {
	srv := newTestServer(&mockToolLister{}, "", nil)
	req := httptest.NewRequest("GET", "/api/logs", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var entries []logbuf.Entry
	if err := json.NewDecoder(w.Body).Decode(&entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %+v", entries)
	}
}
