package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Segment is one recognized span with the confidence signals used for gating.
type Segment struct {
	Text         string  `json:"text"`
	AvgLogProb   float64 `json:"avg_logprob"`
	NoSpeechProb float64 `json:"no_speech_prob"`
}

// Recognizer turns a raw audio buffer into recognized segments. The engine is
// responsible for decoding whatever container the client sent and resampling
// to its canonical rate.
type Recognizer interface {
	Recognize(ctx context.Context, audio []byte) ([]Segment, error)
}

// WhisperClient recognizes speech via a faster-whisper server speaking the
// OpenAI transcription API with verbose_json output.
type WhisperClient struct {
	HTTPClient *http.Client
	BaseURL    string
	Model      string
}

type verboseTranscription struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
}

func NewWhisperClient(baseURL, model string) *WhisperClient {
	return &WhisperClient{
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
		BaseURL:    baseURL,
		Model:      model,
	}
}

// Recognize posts the audio buffer with hallucination-resistant decode
// settings: greedy decoding, VAD gating, and no conditioning on previous text.
func (c *WhisperClient) Recognize(ctx context.Context, audio []byte) ([]Segment, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "utterance.webm")
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(audio); err != nil {
		return nil, err
	}
	fields := map[string]string{
		"model":                      c.Model,
		"response_format":            "verbose_json",
		"temperature":                "0",
		"vad_filter":                 "true",
		"condition_on_previous_text": "false",
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/audio/transcriptions", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("whisper error: status=%d body=%s", resp.StatusCode, string(b))
	}
	var vt verboseTranscription
	if err := json.NewDecoder(resp.Body).Decode(&vt); err != nil {
		return nil, err
	}
	return vt.Segments, nil
}
