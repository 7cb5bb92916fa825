package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/SURENDHAN/ai-interview/internal/agent"
	"github.com/SURENDHAN/ai-interview/internal/config"
	"github.com/SURENDHAN/ai-interview/internal/feedback"
	"github.com/SURENDHAN/ai-interview/internal/questionbank"
	"github.com/SURENDHAN/ai-interview/internal/resume"
)

type stubEngine struct{ text string }

func (s stubEngine) ProduceTurn(ctx context.Context, history []agent.Message, role, resumeContext string, codingCompleted bool) agent.TurnResult {
	return agent.TurnResult{Kind: agent.KindReply, Text: s.text}
}

type stubTranscriber struct{}

func (stubTranscriber) Transcribe(ctx context.Context, audio []byte) string { return "" }

type stubRunner struct{}

func (stubRunner) RunPlayground(ctx context.Context, source string) string { return "" }
func (stubRunner) RunAgainstTests(ctx context.Context, problem *questionbank.Problem, source string) string {
	return ""
}

type stubFeedback struct{}

func (stubFeedback) Generate(ctx context.Context, transcriptJSON string, role string) feedback.Report {
	return feedback.Report{OverallScore: 7}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(config.Config{StaticDir: t.TempDir()}, Deps{
		Engine:      stubEngine{text: "Tell me more."},
		Transcriber: stubTranscriber{},
		Runner:      stubRunner{},
		Feedback:    stubFeedback{},
		Bank:        &questionbank.Bank{},
		Resume:      &resume.Store{},
	})
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "ok" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestClientConfigShape(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/config", nil)
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	fb, ok := body["firebase"]
	if !ok {
		t.Fatal("missing firebase key")
	}
	if _, ok := fb["projectId"]; !ok {
		t.Fatal("missing projectId field")
	}
}

func TestUploadResumeMissingFile(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/upload_resume", nil)
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "error" {
		t.Fatalf("expected error status, got %v", body["status"])
	}
}

func TestWebSocketGreetsSelectedRole(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Echo())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(map[string]string{"type": "role_selection", "role": "sales"}); err != nil {
		t.Fatalf("write role: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	var frame struct {
		Type    string `json:"type"`
		Content string `json:"content"`
		Sender  string `json:"sender"`
	}
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read greeting: %v", err)
	}
	if frame.Type != "text" || frame.Sender != "agent" {
		t.Fatalf("unexpected frame %+v", frame)
	}
	if !strings.Contains(frame.Content, "sales") {
		t.Fatalf("greeting does not mention role: %q", frame.Content)
	}
}
