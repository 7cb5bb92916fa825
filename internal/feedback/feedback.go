// Package feedback turns a finished interview transcript into a structured,
// rubric-scored report and persists a human-readable copy.
package feedback

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"time"
)

// CategoryScore is one rubric dimension.
type CategoryScore struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// Report is the structured interview assessment returned to the client.
type Report struct {
	OverallScore       int           `json:"overall_score"`
	Communication      CategoryScore `json:"communication"`
	TechnicalKnowledge CategoryScore `json:"technical_knowledge"`
	ProblemSolving     CategoryScore `json:"problem_solving"`
	Strengths          []string      `json:"strengths"`
	Improvements       []string      `json:"improvements"`
	Summary            string        `json:"summary"`
	Filename           string        `json:"filename,omitempty"`
}

// TextGenerator is the single-shot model call used for feedback synthesis.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Store persists the formatted report artifact.
type Store interface {
	Save(name string, data []byte) error
}

// Synthesizer generates reports. Every failure path degrades to a fixed
// moderate-score default so feedback never blocks the session.
type Synthesizer struct {
	llm   TextGenerator
	store Store
	now   func() time.Time
}

func NewSynthesizer(llm TextGenerator, store Store) *Synthesizer {
	return &Synthesizer{llm: llm, store: store, now: time.Now}
}

// jsonBlockRe extracts the first JSON-looking block from a model reply that
// may be wrapped in prose or code fences.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// Generate scores the transcript against the rubric and persists the report.
func (s *Synthesizer) Generate(ctx context.Context, transcriptJSON, role string) Report {
	report := defaultReport()
	if s.llm != nil {
		text, err := s.llm.GenerateText(ctx, buildRubricPrompt(role, transcriptJSON))
		if err != nil {
			log.Printf("feedback: model call failed, using default report: %v", err)
		} else if parsed, ok := parseReport(text); ok {
			report = parsed
		} else {
			log.Printf("feedback: no structured block in model reply, using default report")
		}
	}

	if s.store != nil {
		name := fmt.Sprintf("interview_feedback_%s_%s.txt", role, s.now().Format("20060102_150405"))
		if err := s.store.Save(name, []byte(formatReport(report, role, transcriptJSON, s.now()))); err != nil {
			log.Printf("feedback: persisting report failed: %v", err)
		} else {
			report.Filename = name
			log.Printf("feedback: report saved to %s", name)
		}
	}
	return report
}

func buildRubricPrompt(role, transcriptJSON string) string {
	return fmt.Sprintf(`Analyze this %s interview and provide detailed, comprehensive feedback.

Interview Transcript:
%s

Provide feedback in the following JSON format:
{
    "overall_score": <1-10>,
    "communication": {"score": <1-10>, "feedback": "..."},
    "technical_knowledge": {"score": <1-10>, "feedback": "..."},
    "problem_solving": {"score": <1-10>, "feedback": "..."},
    "strengths": ["strength1", "strength2", "strength3"],
    "improvements": ["area1", "area2", "area3"],
    "summary": "Overall assessment..."
}

Be specific, constructive, and actionable. Provide detailed feedback.`, roleLabel(role), transcriptJSON)
}

// parseReport extracts and decodes the first structured block. A block that
// decodes but carries no scores is treated as a miss.
func parseReport(text string) (Report, bool) {
	block := jsonBlockRe.FindString(text)
	if block == "" {
		return Report{}, false
	}
	var r Report
	if err := json.Unmarshal([]byte(block), &r); err != nil {
		return Report{}, false
	}
	if r.OverallScore == 0 {
		return Report{}, false
	}
	return r, true
}

func defaultReport() Report {
	return Report{
		OverallScore:       7,
		Communication:      CategoryScore{Score: 7, Feedback: "Good communication throughout"},
		TechnicalKnowledge: CategoryScore{Score: 7, Feedback: "Demonstrated knowledge"},
		ProblemSolving:     CategoryScore{Score: 7, Feedback: "Approached problems logically"},
		Strengths:          []string{"Clear communication", "Good attitude"},
		Improvements:       []string{"More specific examples", "Deeper technical details"},
		Summary:            "Overall solid performance in the interview.",
	}
}
