package transcribe

import (
	"context"
	"log"
	"strings"
)

// Per-segment confidence gates. Segments below the log-probability floor or
// above the no-speech ceiling are dropped before the text heuristics run.
const (
	logProbFloor    = -1.0
	noSpeechCeiling = 0.6
)

// Service runs the full transcription pipeline: recognition, per-segment
// confidence gating, then the text-level hallucination heuristics.
type Service struct {
	rec Recognizer
}

func NewService(rec Recognizer) *Service { return &Service{rec: rec} }

// Transcribe converts an audio buffer into cleaned text. Any recognizer
// failure or filtered output yields "", which callers treat as "ignore this
// input", never as an error.
func (s *Service) Transcribe(ctx context.Context, audio []byte) string {
	segments, err := s.rec.Recognize(ctx, audio)
	if err != nil {
		log.Printf("transcribe: recognition failed: %v", err)
		return ""
	}
	var kept []string
	for _, seg := range segments {
		if seg.AvgLogProb < logProbFloor {
			log.Printf("transcribe: skipped low-confidence segment: %q", seg.Text)
			continue
		}
		if seg.NoSpeechProb > noSpeechCeiling {
			log.Printf("transcribe: skipped likely silence: %q", seg.Text)
			continue
		}
		kept = append(kept, strings.TrimSpace(seg.Text))
	}
	text := CleanTranscript(strings.Join(kept, " "))
	if text != "" {
		log.Printf("transcribe: user said: %q", text)
	}
	return text
}
