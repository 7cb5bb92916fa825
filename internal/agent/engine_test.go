package agent

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/SURENDHAN/ai-interview/internal/questionbank"
	"github.com/SURENDHAN/ai-interview/internal/tools"
)

type fakeLLM struct {
	reply string
	err   error
	// captured system prompt from the last call
	system string
}

func (f *fakeLLM) GenerateWithTools(ctx context.Context, system string, history []Message) (string, error) {
	f.system = system
	return f.reply, f.err
}

func writeQuestions(t *testing.T) *questionbank.Bank {
	t.Helper()
	dir := t.TempDir()
	path := dir + "/questions.json"
	data := `[{"id":"q1","title":"Two Sum","description":"Find two numbers.","signature":"def two_sum(nums, target):","difficulty":"easy","test_cases":[{"input_code":"print(two_sum([1,2],3))","expected":"[0, 1]"}]}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write questions: %v", err)
	}
	return questionbank.Load(path)
}

func TestProduceTurnPlainReply(t *testing.T) {
	llm := &fakeLLM{reply: "  What project are you most proud of?  "}
	e := NewEngine(llm, tools.NewRegistry(writeQuestions(t), nil))
	turn := e.ProduceTurn(context.Background(), nil, "software_engineer", "", false)
	if turn.Kind != KindReply {
		t.Fatalf("expected plain reply, got kind %d", turn.Kind)
	}
	if turn.Text != "What project are you most proud of?" {
		t.Fatalf("unexpected text %q", turn.Text)
	}
}

func TestProduceTurnModelErrorFallsBack(t *testing.T) {
	llm := &fakeLLM{err: errors.New("upstream timeout")}
	e := NewEngine(llm, tools.NewRegistry(writeQuestions(t), nil))
	turn := e.ProduceTurn(context.Background(), nil, "general", "", false)
	if turn.Kind != KindReply || turn.Text != errorReplyFallback {
		t.Fatalf("unexpected turn %+v", turn)
	}
}

func TestProduceTurnNilModelFallsBack(t *testing.T) {
	e := NewEngine(nil, tools.NewRegistry(writeQuestions(t), nil))
	turn := e.ProduceTurn(context.Background(), nil, "general", "", false)
	if turn.Text != errorReplyFallback {
		t.Fatalf("unexpected text %q", turn.Text)
	}
}

func TestProduceTurnEmptyReplyFallsBack(t *testing.T) {
	llm := &fakeLLM{reply: "   "}
	e := NewEngine(llm, tools.NewRegistry(writeQuestions(t), nil))
	turn := e.ProduceTurn(context.Background(), nil, "general", "", false)
	if turn.Kind != KindReply || turn.Text != emptyReplyFallback {
		t.Fatalf("unexpected turn %+v", turn)
	}
}

func TestProduceTurnEndMarkerStripped(t *testing.T) {
	llm := &fakeLLM{reply: "Thank you for your time today. " + EndMarker}
	e := NewEngine(llm, tools.NewRegistry(writeQuestions(t), nil))
	turn := e.ProduceTurn(context.Background(), nil, "sales", "", false)
	if turn.Kind != KindEndInterview {
		t.Fatalf("expected end-of-interview, got kind %d", turn.Kind)
	}
	if strings.Contains(turn.Text, EndMarker) {
		t.Fatalf("marker leaked into visible text: %q", turn.Text)
	}
	if turn.Text != "Thank you for your time today." {
		t.Fatalf("unexpected final text %q", turn.Text)
	}
}

func TestProduceTurnCodingTrigger(t *testing.T) {
	llm := &fakeLLM{reply: `Great, let's move on. START CODING CHALLENGE`}
	e := NewEngine(llm, tools.NewRegistry(writeQuestions(t), nil))
	turn := e.ProduceTurn(context.Background(), nil, "software_engineer", "", false)
	if turn.Kind != KindOfferCoding {
		t.Fatalf("expected coding offer, got kind %d", turn.Kind)
	}
	if turn.Problem == nil || turn.Problem.ID != "q1" {
		t.Fatalf("expected problem q1, got %+v", turn.Problem)
	}
}

func TestProduceTurnCodingJSONStrippedFromVisibleText(t *testing.T) {
	llm := &fakeLLM{reply: `Here is your task. {"id":"q1","starter_code":"def two_sum():"}`}
	e := NewEngine(llm, tools.NewRegistry(writeQuestions(t), nil))
	turn := e.ProduceTurn(context.Background(), nil, "software_engineer", "", false)
	if turn.Kind != KindOfferCoding {
		t.Fatalf("expected coding offer, got kind %d", turn.Kind)
	}
	if strings.Contains(turn.Text, "starter_code") {
		t.Fatalf("raw problem JSON leaked: %q", turn.Text)
	}
	if turn.Text != "Here is your task." {
		t.Fatalf("unexpected visible text %q", turn.Text)
	}
}

func TestProduceTurnCodingJSONOnlyReplyGetsFiller(t *testing.T) {
	llm := &fakeLLM{reply: `{"id":"q1","starter_code":"def two_sum():"}`}
	e := NewEngine(llm, tools.NewRegistry(writeQuestions(t), nil))
	turn := e.ProduceTurn(context.Background(), nil, "software_engineer", "", false)
	if turn.Kind != KindOfferCoding || turn.Text != emptyReplyFallback {
		t.Fatalf("unexpected turn %+v", turn)
	}
}

func TestProduceTurnNoCodingForNonTechnicalRole(t *testing.T) {
	llm := &fakeLLM{reply: `START CODING CHALLENGE`}
	e := NewEngine(llm, tools.NewRegistry(writeQuestions(t), nil))
	turn := e.ProduceTurn(context.Background(), nil, "sales", "", false)
	if turn.Kind != KindReply {
		t.Fatalf("non-technical role must not enter coding, got kind %d", turn.Kind)
	}
}

func TestProduceTurnNoSecondChallenge(t *testing.T) {
	llm := &fakeLLM{reply: `START CODING CHALLENGE`}
	e := NewEngine(llm, tools.NewRegistry(writeQuestions(t), nil))
	turn := e.ProduceTurn(context.Background(), nil, "software_engineer", "", true)
	if turn.Kind != KindReply {
		t.Fatalf("completed coding must not re-trigger, got kind %d", turn.Kind)
	}
}

func TestProduceTurnCodingTriggerEmptyBankDegrades(t *testing.T) {
	llm := &fakeLLM{reply: `Ready? START CODING CHALLENGE`}
	e := NewEngine(llm, tools.NewRegistry(&questionbank.Bank{}, nil))
	turn := e.ProduceTurn(context.Background(), nil, "software_engineer", "", false)
	if turn.Kind != KindReply {
		t.Fatalf("empty bank must degrade to plain reply, got kind %d", turn.Kind)
	}
}

func TestBuildSystemPromptUnknownRoleFallsBack(t *testing.T) {
	p := BuildSystemPrompt("astronaut", "", false)
	if p == "" {
		t.Fatal("expected non-empty prompt for unknown role")
	}
	if p != BuildSystemPrompt("general", "", false) {
		t.Fatal("unknown role should use the general persona")
	}
}

func TestBuildSystemPromptTruncatesResume(t *testing.T) {
	long := strings.Repeat("x", 2000)
	p := BuildSystemPrompt("software_engineer", long, false)
	if !strings.Contains(p, "CANDIDATE RESUME") {
		t.Fatal("expected resume section")
	}
	if strings.Contains(p, strings.Repeat("x", 801)) {
		t.Fatal("resume excerpt not truncated")
	}
}
