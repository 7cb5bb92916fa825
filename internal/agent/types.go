package agent

import (
	"context"

	"github.com/SURENDHAN/ai-interview/internal/feedback"
	"github.com/SURENDHAN/ai-interview/internal/questionbank"
	"github.com/SURENDHAN/ai-interview/internal/tools"
)

// History roles, matching the model API's turn labels.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Message is one conversation turn. History is append-only for the lifetime
// of a session and is passed whole to the model on every turn.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// LLM generates one assistant turn with the tool layer attached.
type LLM interface {
	GenerateWithTools(ctx context.Context, system string, history []Message) (string, error)
}

// Transcriber turns an audio buffer into cleaned text. "" means the input
// carried no usable speech and must be ignored.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) string
}

// Speaker synthesizes spoken audio for a reply. A nil buffer with nil error
// means there is nothing to say.
type Speaker interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// CodeRunner executes candidate code in the sandbox.
type CodeRunner interface {
	RunPlayground(ctx context.Context, source string) string
	RunAgainstTests(ctx context.Context, problem *questionbank.Problem, source string) string
}

// FeedbackSynthesizer produces the end-of-interview report. It never fails;
// degraded paths return a default report.
type FeedbackSynthesizer interface {
	Generate(ctx context.Context, transcriptJSON string, role string) feedback.Report
}

// TurnProducer is the turn engine contract: full history in, normalized
// reply out.
type TurnProducer interface {
	ProduceTurn(ctx context.Context, history []Message, role, resumeContext string, codingCompleted bool) TurnResult
}

// ReplyKind classifies a normalized model reply.
type ReplyKind int

const (
	// KindReply is a plain conversational reply.
	KindReply ReplyKind = iota
	// KindOfferCoding carries a coding challenge for the client to open.
	KindOfferCoding
	// KindEndInterview terminates the interview after the final text.
	KindEndInterview
)

// TurnResult is the engine's normalized output for one turn.
type TurnResult struct {
	Kind    ReplyKind
	Text    string
	Problem *tools.ProblemPayload
}

// ClientConn is the bidirectional session channel. *websocket.Conn satisfies
// it; tests use scripted fakes.
type ClientConn interface {
	ReadMessage() (messageType int, data []byte, err error)
	WriteJSON(v any) error
	WriteMessage(messageType int, data []byte) error
}
