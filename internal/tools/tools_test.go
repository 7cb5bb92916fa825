package tools

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SURENDHAN/ai-interview/internal/questionbank"
)

type fakeVerifier struct {
	summary string
	err     error
}

func (f fakeVerifier) Verify(_ context.Context, _ string) (string, error) {
	return f.summary, f.err
}

func loadedBank(t *testing.T) *questionbank.Bank {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.json")
	content := `[{"id":"7","title":"FizzBuzz","description":"d","signature":"def fizzbuzz(n):","difficulty":"easy","test_cases":[{"input_code":"print(fizzbuzz(3))","expected":"Fizz"}]}]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return questionbank.Load(path)
}

func TestDispatch_GetRandomProblem(t *testing.T) {
	r := NewRegistry(loadedBank(t), fakeVerifier{})
	out := r.Dispatch(context.Background(), "get_random_problem", nil)
	if out["id"] != "7" || out["starter_code"] != "def fizzbuzz(n):" {
		t.Fatalf("unexpected payload: %+v", out)
	}
}

func TestDispatch_GetRandomProblem_EmptyBank(t *testing.T) {
	r := NewRegistry(&questionbank.Bank{}, fakeVerifier{})
	out := r.Dispatch(context.Background(), "get_random_problem", nil)
	if out["error"] != "No questions" {
		t.Fatalf("expected empty-bank error payload, got %+v", out)
	}
}

func TestDispatch_VerifyConcept(t *testing.T) {
	r := NewRegistry(loadedBank(t), fakeVerifier{summary: "B-trees keep keys sorted."})
	out := r.Dispatch(context.Background(), "verify_concept", map[string]any{"topic": "b-tree"})
	res, _ := out["result"].(string)
	if !strings.HasPrefix(res, "Fact Check:\n") || !strings.Contains(res, "B-trees") {
		t.Fatalf("unexpected result: %q", res)
	}
}

func TestVerifyConcept_NeverRaises(t *testing.T) {
	r := NewRegistry(loadedBank(t), fakeVerifier{err: errors.New("dns broke")})
	if got := r.VerifyConcept(context.Background(), "raft"); got != CouldNotVerify {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := r.VerifyConcept(context.Background(), ""); got != CouldNotVerify {
		t.Fatalf("expected fallback for empty topic, got %q", got)
	}
}

func TestDispatch_UnknownTool(t *testing.T) {
	r := NewRegistry(loadedBank(t), fakeVerifier{})
	out := r.Dispatch(context.Background(), "rm_rf", nil)
	if out["error"] != "unknown tool" {
		t.Fatalf("expected unknown tool payload, got %+v", out)
	}
}

func TestDeclarations(t *testing.T) {
	r := NewRegistry(loadedBank(t), fakeVerifier{})
	decls := r.Declarations()
	if len(decls) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(decls))
	}
	names := map[string]bool{}
	for _, d := range decls {
		names[d.Name] = true
	}
	if !names["get_random_problem"] || !names["verify_concept"] {
		t.Fatalf("missing declaration names: %v", names)
	}
}
