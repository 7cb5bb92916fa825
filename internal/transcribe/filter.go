package transcribe

import (
	"log"
	"strings"
)

// Thresholds for the hallucination heuristics. Tuned against faster-whisper
// output on silence and music; keep in sync with the gating constants in
// service.go.
const (
	minNgram         = 3
	maxNgram         = 5
	ngramRepeatLimit = 3
	repetitionRatio  = 4.0
	fillerRatio      = 0.8
)

const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// hallucinationWords is the stoplist of words that make up known ASR
// hallucinations: end-of-video boilerplate and bare fillers. A transcript made
// entirely of these words is discarded.
var hallucinationWords = map[string]struct{}{
	"thanks": {}, "thank": {}, "you": {}, "for": {}, "watching": {},
	"please": {}, "subscribe": {}, "like": {}, "and": {}, "dont": {},
	"forget": {}, "to": {}, "bye": {}, "okay": {}, "ok": {}, "be": {},
	"the": {}, "it": {}, "i": {}, "me": {}, "a": {}, "little": {},
	"bit": {}, "of": {}, "um": {}, "uh": {}, "hmm": {},
}

// fillerWords are functional stopwords; a transcript that is mostly these
// carries no usable speech.
var fillerWords = map[string]struct{}{
	"a": {}, "the": {}, "of": {}, "to": {}, "and": {}, "in": {}, "is": {},
	"it": {}, "that": {}, "for": {}, "on": {}, "with": {}, "as": {},
	"at": {}, "by": {},
}

// normalize lowercases and strips ASCII punctuation for heuristic matching.
func normalize(text string) string {
	lower := strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if !strings.ContainsRune(punctuation, r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// CleanTranscript applies the hallucination heuristics to a raw transcript and
// returns either the trimmed text or "" when the input should be ignored
// entirely. An empty result is not an error; it means "no usable speech".
func CleanTranscript(raw string) string {
	text := strings.TrimSpace(raw)
	cleaned := normalize(text)
	words := strings.Fields(cleaned)

	// 1. Leading n-gram repeated throughout, the classic whisper loop artifact
	// ("a little bit of a little bit of ...").
	if len(words) > 10 {
		for n := minNgram; n <= maxNgram; n++ {
			if len(words) < n*ngramRepeatLimit {
				continue
			}
			pattern := strings.Join(words[:n], " ")
			if strings.Count(cleaned, pattern) >= ngramRepeatLimit {
				log.Printf("transcribe: filtered repetitive pattern %q", pattern)
				return ""
			}
		}
	}

	// 2. Excessive global word repetition.
	if len(words) > 5 {
		unique := make(map[string]struct{}, len(words))
		for _, w := range words {
			unique[w] = struct{}{}
		}
		if float64(len(words))/float64(len(unique)) > repetitionRatio {
			log.Printf("transcribe: filtered excessive repetition: %q", text)
			return ""
		}
	}

	// 3. Whole-text hallucination match or too short to mean anything.
	if len(words) == 0 || len(cleaned) < 2 {
		return ""
	}
	allHallucination := true
	for _, w := range words {
		if _, ok := hallucinationWords[w]; !ok {
			allHallucination = false
			break
		}
	}
	if allHallucination {
		log.Printf("transcribe: filtered hallucination: %q", text)
		return ""
	}

	// 4. Mostly filler words.
	if len(words) > 3 {
		fillers := 0
		for _, w := range words {
			if _, ok := fillerWords[w]; ok {
				fillers++
			}
		}
		if float64(fillers)/float64(len(words)) > fillerRatio {
			log.Printf("transcribe: filtered filler-heavy text: %q", text)
			return ""
		}
	}

	return text
}
