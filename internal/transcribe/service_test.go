package transcribe

import (
	"context"
	"errors"
	"testing"
)

type fakeRecognizer struct {
	segments []Segment
	err      error
}

func (f fakeRecognizer) Recognize(_ context.Context, _ []byte) ([]Segment, error) {
	return f.segments, f.err
}

func TestService_GatesLowConfidenceSegments(t *testing.T) {
	svc := NewService(fakeRecognizer{segments: []Segment{
		{Text: "solid answer about indexes", AvgLogProb: -0.2, NoSpeechProb: 0.1},
		{Text: "ghost words", AvgLogProb: -2.5, NoSpeechProb: 0.1},
		{Text: "breathing", AvgLogProb: -0.3, NoSpeechProb: 0.9},
	}})
	got := svc.Transcribe(context.Background(), []byte{1})
	if got != "solid answer about indexes" {
		t.Fatalf("expected only confident segment, got %q", got)
	}
}

func TestService_RecognizerErrorYieldsEmpty(t *testing.T) {
	svc := NewService(fakeRecognizer{err: errors.New("engine down")})
	if got := svc.Transcribe(context.Background(), []byte{1}); got != "" {
		t.Fatalf("expected empty on recognizer error, got %q", got)
	}
}

func TestService_NoSegmentsYieldsEmpty(t *testing.T) {
	svc := NewService(fakeRecognizer{})
	if got := svc.Transcribe(context.Background(), []byte{1}); got != "" {
		t.Fatalf("expected empty with no segments, got %q", got)
	}
}
