package httpserver

import (
	"io"
	"log"
	"net/http"
	"path/filepath"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/SURENDHAN/ai-interview/internal/agent"
	"github.com/SURENDHAN/ai-interview/internal/config"
	"github.com/SURENDHAN/ai-interview/internal/questionbank"
	"github.com/SURENDHAN/ai-interview/internal/resume"
)

// Deps are the session collaborators the server hands to each connection.
type Deps struct {
	Engine      agent.TurnProducer
	Transcriber agent.Transcriber
	Speaker     agent.Speaker
	Runner      agent.CodeRunner
	Feedback    agent.FeedbackSynthesizer
	Bank        *questionbank.Bank
	Resume      *resume.Store
}

// Server wires HTTP routes, the resume upload, and the interview WebSocket.
type Server struct {
	echo      *echo.Echo
	deps      Deps
	staticDir string
	upgrader  websocket.Upgrader
}

// New creates a configured Echo server with all routes registered.
func New(cfg config.Config, deps Deps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	s := &Server{
		echo:      e,
		deps:      deps,
		staticDir: cfg.StaticDir,
		upgrader: websocket.Upgrader{
			// Browser clients connect from file:// during local dev.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/", s.servePage("login.html"))
	e.GET("/login.html", s.servePage("login.html"))
	e.GET("/index.html", s.servePage("index2.html"))
	e.GET("/index2.html", s.servePage("index2.html"))
	e.GET("/api/config", s.handleClientConfig)
	e.POST("/upload_resume", s.handleUploadResume)
	e.GET("/ws", s.handleWS)

	return s
}

// Echo exposes the underlying instance for startup and shutdown.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) servePage(name string) echo.HandlerFunc {
	path := filepath.Join(s.staticDir, name)
	return func(c echo.Context) error {
		return c.File(path)
	}
}

// handleClientConfig serves the browser-side Firebase settings so the static
// pages do not embed keys.
func (s *Server) handleClientConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"firebase": config.FirebaseClientConfig()})
}

// handleUploadResume accepts a PDF, extracts its text, and stores it for
// sessions started afterwards.
func (s *Server) handleUploadResume(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"status": "error", "message": "missing file field"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"status": "error", "message": "cannot open upload"})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"status": "error", "message": "cannot read upload"})
	}

	text, err := resume.ExtractPDF(data)
	if err != nil {
		log.Printf("resume extraction failed: %v", err)
		return c.JSON(http.StatusOK, map[string]any{"status": "error", "message": err.Error()})
	}

	s.deps.Resume.Set(text)
	log.Printf("resume uploaded: %d characters extracted", len(text))
	return c.JSON(http.StatusOK, map[string]any{"status": "success", "length": len(text)})
}

// handleWS upgrades the connection and runs one interview session on it.
func (s *Server) handleWS(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return nil
	}
	defer conn.Close()

	sess := agent.NewSession(conn, agent.Deps{
		Engine:        s.deps.Engine,
		Transcriber:   s.deps.Transcriber,
		Speaker:       s.deps.Speaker,
		Runner:        s.deps.Runner,
		Feedback:      s.deps.Feedback,
		Bank:          s.deps.Bank,
		ResumeContext: s.deps.Resume.Get(),
	})
	sess.Run(c.Request().Context())
	return nil
}
