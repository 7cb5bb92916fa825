package agent

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"

	"github.com/SURENDHAN/ai-interview/internal/tools"
)

// EndMarker is the out-of-band terminator the interviewer persona emits in
// its final reply. Detecting control markers inside free text is a known
// fragility of this protocol; it is preserved deliberately.
const EndMarker = "[[END_INTERVIEW]]"

// codingCue is the explicit invitation wording the personas use.
const codingCue = "START CODING CHALLENGE"

// Fixed fallback replies. A bad model turn is never fatal to the session.
const (
	emptyReplyFallback = "I see. Could you tell me more about that?"
	errorReplyFallback = "I apologize, I had a technical issue. Could you please repeat that?"
)

// problemJSONRe matches a raw problem object the model sometimes pastes into
// its visible reply alongside the coding invitation.
var problemJSONRe = regexp.MustCompile(`(?s)\{[^{}]*"starter_code"[^{}]*\}`)

// Engine builds the prompt, invokes the model with tools attached, and
// normalizes the output into one of the reply kinds.
type Engine struct {
	llm   LLM
	tools *tools.Registry
}

func NewEngine(llm LLM, reg *tools.Registry) *Engine {
	return &Engine{llm: llm, tools: reg}
}

// ProduceTurn runs one assistant turn over the full history.
//
// Normalization priority: end-of-interview marker, coding-challenge trigger,
// empty reply, plain reply. Once codingCompleted is true no output can
// trigger a new challenge, regardless of what the model says.
func (e *Engine) ProduceTurn(ctx context.Context, history []Message, role, resumeContext string, codingCompleted bool) TurnResult {
	reply, err := e.generate(ctx, history, role, resumeContext, codingCompleted)
	if err != nil {
		log.Printf("agent: model turn failed: %v", err)
		return TurnResult{Kind: KindReply, Text: errorReplyFallback}
	}
	reply = strings.TrimSpace(reply)

	if strings.Contains(reply, EndMarker) {
		final := strings.TrimSpace(strings.ReplaceAll(reply, EndMarker, ""))
		return TurnResult{Kind: KindEndInterview, Text: final}
	}

	wantsCoding := strings.Contains(reply, `"starter_code"`) || strings.Contains(reply, codingCue)
	if wantsCoding && !codingCompleted && technicalRoles[role] {
		if problem, perr := e.tools.RandomProblem(); perr == nil {
			visible := strings.TrimSpace(problemJSONRe.ReplaceAllString(reply, ""))
			if visible == "" {
				visible = emptyReplyFallback
			}
			return TurnResult{Kind: KindOfferCoding, Text: visible, Problem: problem}
		} else {
			log.Printf("agent: coding trigger without problems available: %v", perr)
		}
	}

	if reply == "" {
		log.Printf("agent: model returned empty reply, using fallback")
		return TurnResult{Kind: KindReply, Text: emptyReplyFallback}
	}
	return TurnResult{Kind: KindReply, Text: reply}
}

func (e *Engine) generate(ctx context.Context, history []Message, role, resumeContext string, codingCompleted bool) (string, error) {
	if e.llm == nil {
		return "", errors.New("no model configured")
	}
	system := BuildSystemPrompt(role, resumeContext, codingCompleted)
	return e.llm.GenerateWithTools(ctx, system, history)
}
