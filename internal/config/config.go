package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	HTTPAddress string
	StaticDir   string

	GeminiAPIKey  string
	GeminiModelID string

	WhisperURL   string
	WhisperModel string

	DeepgramAPIKey   string
	DeepgramTTSModel string

	QuestionsFile string
	PistonURL     string
	FeedbackDir   string

	SupabaseURL    string
	SupabaseKey    string
	SupabaseBucket string
}

// Load reads environment variables and returns Config with sane defaults.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	addr := os.Getenv("HTTP_ADDRESS")
	if addr == "" {
		addr = ":8000"
	}

	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "."
	}

	geminiKey := os.Getenv("GEMINI_API_KEY")
	if geminiKey == "" {
		log.Println("Warning: GEMINI_API_KEY not set - interview turns will fall back to canned replies")
	}
	geminiModel := os.Getenv("GEMINI_MODEL_ID")
	if geminiModel == "" {
		geminiModel = "gemini-2.5-flash"
	}

	whisperURL := os.Getenv("WHISPER_URL")
	if whisperURL == "" {
		whisperURL = "http://127.0.0.1:9000"
	}
	whisperModel := os.Getenv("WHISPER_MODEL_SIZE")
	if whisperModel == "" {
		whisperModel = "base.en"
	}

	deepgramKey := os.Getenv("DEEPGRAM_API_KEY")
	if deepgramKey == "" {
		log.Println("Warning: DEEPGRAM_API_KEY not set - speech synthesis will be skipped")
	}
	deepgramModel := os.Getenv("DEEPGRAM_TTS_MODEL")
	if deepgramModel == "" {
		deepgramModel = "aura-2-thalia-en"
	}

	questionsFile := os.Getenv("QUESTIONS_FILE")
	if questionsFile == "" {
		questionsFile = "questions.json"
	}

	pistonURL := os.Getenv("PISTON_API_URL")
	if pistonURL == "" {
		pistonURL = "https://emkc.org/api/v2/piston/execute"
	}

	feedbackDir := os.Getenv("FEEDBACK_DIR")
	if feedbackDir == "" {
		feedbackDir = "."
	}

	log.Printf("config: HTTP_ADDRESS=%s QUESTIONS_FILE=%s", addr, questionsFile)
	return Config{
		HTTPAddress:      addr,
		StaticDir:        staticDir,
		GeminiAPIKey:     geminiKey,
		GeminiModelID:    geminiModel,
		WhisperURL:       whisperURL,
		WhisperModel:     whisperModel,
		DeepgramAPIKey:   deepgramKey,
		DeepgramTTSModel: deepgramModel,
		QuestionsFile:    questionsFile,
		PistonURL:        pistonURL,
		FeedbackDir:      feedbackDir,
		SupabaseURL:      os.Getenv("SUPABASE_URL"),
		SupabaseKey:      os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		SupabaseBucket:   os.Getenv("SUPABASE_BUCKET"),
	}
}

// FirebaseClientConfig returns the browser-side Firebase settings served at /api/config.
func FirebaseClientConfig() map[string]string {
	return map[string]string{
		"apiKey":            os.Getenv("FIREBASE_API_KEY"),
		"authDomain":        os.Getenv("FIREBASE_AUTH_DOMAIN"),
		"projectId":         os.Getenv("FIREBASE_PROJECT_ID"),
		"storageBucket":     os.Getenv("FIREBASE_STORAGE_BUCKET"),
		"messagingSenderId": os.Getenv("FIREBASE_MESSAGING_SENDER_ID"),
		"appId":             os.Getenv("FIREBASE_APP_ID"),
		"measurementId":     os.Getenv("FIREBASE_MEASUREMENT_ID"),
	}
}
