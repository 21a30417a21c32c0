package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/nguyentantai21042004/yt-notes/internal/config"
	"github.com/nguyentantai21042004/yt-notes/internal/logger"
	"github.com/nguyentantai21042004/yt-notes/internal/pipeline"
	"github.com/nguyentantai21042004/yt-notes/internal/summarizer"
	"github.com/nguyentantai21042004/yt-notes/internal/transcribe"
)

type implServer struct {
	cfg         config.ServerConfig
	pipeline    pipeline.Pipeline
	summarizer  summarizer.Summarizer
	transcriber transcribe.Transcriber
	logger      logger.Logger
	validate    *validator.Validate
	engine      *gin.Engine
	httpServer  *http.Server
}

// New wires the routes and middleware. sum may be nil, in which case
// summaries are never produced.
func New(cfg config.ServerConfig, p pipeline.Pipeline, sum summarizer.Summarizer, t transcribe.Transcriber, log logger.Logger) Server {
	gin.SetMode(gin.ReleaseMode)

	s := &implServer{
		cfg:         cfg,
		pipeline:    p,
		summarizer:  sum,
		transcriber: t,
		logger:      log,
		validate:    validator.New(),
		engine:      gin.New(),
	}

	s.engine.Use(s.recovery(), s.requestID(), s.requestLogger())
	s.engine.POST("/yt_notes/transcript", s.handleTranscript)
	s.engine.GET("/health", s.handleHealth)

	// No write timeout: a request lives as long as its job.
	s.httpServer = &http.Server{
		Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:     s.engine,
		ReadTimeout: cfg.ReadTimeout,
	}
	return s
}

func (s *implServer) Handler() http.Handler { return s.engine }
