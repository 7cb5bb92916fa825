package agent

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/SURENDHAN/ai-interview/internal/questionbank"
)

// State is the session lifecycle phase.
type State int

const (
	// StateAwaitingRole waits for the client's role selection.
	StateAwaitingRole State = iota
	// StateInterviewing is the normal question/answer loop.
	StateInterviewing
	// StateCoding is the modal coding-challenge phase: audio input and
	// speech output are suppressed so the agent does not talk over the task.
	StateCoding
	// StateConcluded means the interview ended; only feedback requests are
	// still honored while the socket stays open.
	StateConcluded
)

// dropTestNote is folded into history when the candidate abandons the coding
// challenge, so the interviewer acknowledges it on the next turn.
const dropTestNote = "[SYSTEM: User dropped the coding test. They get 0 marks for this section. Please acknowledge this briefly and continue with the next part of the interview.]"

// invalidProblemID is the submission result for an unknown problem id.
const invalidProblemID = "Invalid Problem ID."

// Deps are the collaborators a session orchestrates.
type Deps struct {
	Engine      TurnProducer
	Transcriber Transcriber
	Speaker     Speaker
	Runner      CodeRunner
	Feedback    FeedbackSynthesizer
	Bank        *questionbank.Bank
	// ResumeContext is snapshotted at session creation so concurrent
	// sessions each see a consistent value.
	ResumeContext string
}

// Session is the per-connection orchestrator. All state is owned by the
// single Run loop; events are processed strictly in arrival order.
type Session struct {
	id   string
	conn ClientConn
	deps Deps

	state           State
	role            string
	history         []Message
	codingCompleted bool
}

// NewSession creates a session for one accepted connection.
func NewSession(conn ClientConn, deps Deps) *Session {
	return &Session{id: newSessionID(), conn: conn, deps: deps, state: StateAwaitingRole, role: "general"}
}

func newSessionID() string {
	var b [4]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

// clientMessage is the union of all JSON control frames a client may send.
type clientMessage struct {
	Type      string `json:"type"`
	Role      string `json:"role"`
	Code      string `json:"code"`
	ProblemID string `json:"problem_id"`
	Text      string `json:"text"`
}

// Run drives the session until the client disconnects. Disconnection is a
// normal session end; no partial state survives it.
func (s *Session) Run(ctx context.Context) {
	log.Printf("[%s] session connected", s.id)
	defer log.Printf("[%s] session closed", s.id)

	if err := s.awaitRole(); err != nil {
		return
	}
	s.greet(ctx)

	for {
		mt, data, err := s.conn.ReadMessage()
		if err != nil {
			log.Printf("[%s] client disconnected: %v", s.id, err)
			return
		}

		var userText string
		switch mt {
		case websocket.BinaryMessage:
			if s.state == StateCoding {
				continue
			}
			userText = s.deps.Transcriber.Transcribe(ctx, data)
			if userText == "" {
				continue
			}
			if err := s.sendText(userText); err != nil {
				log.Printf("[%s] echo transcript failed: %v", s.id, err)
			}
		case websocket.TextMessage:
			userText = s.handleControl(ctx, data)
		default:
			continue
		}

		if userText == "" || s.state == StateConcluded {
			continue
		}
		s.runTurn(ctx, userText)
	}
}

// awaitRole consumes the first client frame as a role selection. Any parse
// failure keeps the "general" default and proceeds; only a dead connection
// aborts.
func (s *Session) awaitRole() error {
	_, data, err := s.conn.ReadMessage()
	if err != nil {
		log.Printf("[%s] disconnected before role selection: %v", s.id, err)
		return err
	}
	var m clientMessage
	if jerr := json.Unmarshal(data, &m); jerr == nil && m.Type == "role_selection" && m.Role != "" {
		s.role = m.Role
	}
	s.state = StateInterviewing
	log.Printf("[%s] role selected: %s", s.id, s.role)
	return nil
}

// greet opens the interview with a role-aware greeting.
func (s *Session) greet(ctx context.Context) {
	var greeting string
	if s.deps.ResumeContext != "" {
		greeting = fmt.Sprintf("Hello! I am SURA, your interview practice partner. I've reviewed your resume and I'll be conducting a %s interview today. Let's begin - tell me about yourself?", roleLabel(s.role))
	} else {
		greeting = fmt.Sprintf("Hello! I am SURA, your interview practice partner. I'll be conducting a %s interview today. Let's begin - tell me about yourself?", roleLabel(s.role))
	}
	s.history = append(s.history, Message{Role: RoleModel, Text: greeting})
	if err := s.sendText(greeting); err != nil {
		log.Printf("[%s] send greeting failed: %v", s.id, err)
	}
	s.speak(ctx, greeting)
}

// handleControl processes a JSON control frame and returns the user-facing
// text to fold into the conversation, or "" when the frame is fully handled
// or dropped.
func (s *Session) handleControl(ctx context.Context, data []byte) string {
	var m clientMessage
	if err := json.Unmarshal(data, &m); err != nil {
		// Bare text frame.
		return string(data)
	}

	switch m.Type {
	case "code_submission":
		return s.handleSubmission(ctx, m)

	case "request_feedback":
		report := s.deps.Feedback.Generate(ctx, s.transcriptJSON(), s.role)
		if err := s.sendJSON(map[string]any{"type": "feedback", "data": report}); err != nil {
			log.Printf("[%s] send feedback failed: %v", s.id, err)
		}
		return ""

	case "drop_test":
		log.Printf("[%s] user dropped the coding test", s.id)
		s.codingCompleted = true
		if s.state == StateCoding {
			s.state = StateInterviewing
		}
		return dropTestNote

	default:
		if s.state == StateCoding && m.Text != "" {
			// Coding UI is modal; free text is not an interview turn here.
			return ""
		}
		return m.Text
	}
}

// handleSubmission runs submitted code, reports the result to the client, and
// returns the submission summary to fold into history.
func (s *Session) handleSubmission(ctx context.Context, m clientMessage) string {
	var result string
	if m.ProblemID != "" {
		problem, err := s.deps.Bank.Find(m.ProblemID)
		if err != nil {
			result = invalidProblemID
		} else {
			result = s.deps.Runner.RunAgainstTests(ctx, problem, m.Code)
		}
		if !strings.Contains(result, "FAILED") {
			s.state = StateInterviewing
			s.codingCompleted = true
		}
	} else {
		result = s.deps.Runner.RunPlayground(ctx, m.Code)
	}
	if err := s.sendJSON(map[string]any{"type": "code_result", "output": result}); err != nil {
		log.Printf("[%s] send code result failed: %v", s.id, err)
	}
	return "Code Submitted. Result:\n" + result
}

// runTurn appends the user text, produces one assistant turn, and dispatches
// its normalized output.
func (s *Session) runTurn(ctx context.Context, userText string) {
	s.history = append(s.history, Message{Role: RoleUser, Text: userText})
	turn := s.deps.Engine.ProduceTurn(ctx, s.history, s.role, s.deps.ResumeContext, s.codingCompleted)

	switch turn.Kind {
	case KindEndInterview:
		s.history = append(s.history, Message{Role: RoleModel, Text: turn.Text})
		if err := s.sendText(turn.Text); err != nil {
			log.Printf("[%s] send final reply failed: %v", s.id, err)
		}
		s.speak(ctx, turn.Text)
		report := s.deps.Feedback.Generate(ctx, s.transcriptJSON(), s.role)
		if err := s.sendJSON(map[string]any{"type": "feedback", "data": report}); err != nil {
			log.Printf("[%s] send feedback failed: %v", s.id, err)
		}
		s.state = StateConcluded
		log.Printf("[%s] interview concluded", s.id)

	case KindOfferCoding:
		if err := s.sendJSON(map[string]any{"type": "show_button", "problem": turn.Problem}); err != nil {
			log.Printf("[%s] send show_button failed: %v", s.id, err)
		}
		s.history = append(s.history, Message{Role: RoleModel, Text: turn.Text})
		if err := s.sendText(turn.Text); err != nil {
			log.Printf("[%s] send reply failed: %v", s.id, err)
		}
		// Speak the invitation before the phase mutes speech output.
		s.speak(ctx, turn.Text)
		s.state = StateCoding
		log.Printf("[%s] entered coding phase with problem %s", s.id, turn.Problem.ID)

	default:
		s.history = append(s.history, Message{Role: RoleModel, Text: turn.Text})
		if err := s.sendText(turn.Text); err != nil {
			log.Printf("[%s] send reply failed: %v", s.id, err)
		}
		if s.state != StateCoding {
			s.speak(ctx, turn.Text)
		}
	}
}

// sendText sends an agent text frame. Failures are returned for logging but
// never end the session.
func (s *Session) sendText(content string) error {
	return s.conn.WriteJSON(map[string]any{"type": "text", "content": content, "sender": "agent"})
}

func (s *Session) sendJSON(v any) error {
	return s.conn.WriteJSON(v)
}

// speak synthesizes and sends reply audio; best effort.
func (s *Session) speak(ctx context.Context, text string) {
	if s.deps.Speaker == nil {
		return
	}
	audio, err := s.deps.Speaker.Synthesize(ctx, text)
	if err != nil {
		log.Printf("[%s] tts failed: %v", s.id, err)
		return
	}
	if len(audio) == 0 {
		return
	}
	if err := s.conn.WriteMessage(websocket.BinaryMessage, audio); err != nil {
		log.Printf("[%s] send audio failed: %v", s.id, err)
	}
}

// transcriptJSON renders the full history for the feedback rubric prompt.
func (s *Session) transcriptJSON() string {
	data, err := json.MarshalIndent(s.history, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(data)
}
