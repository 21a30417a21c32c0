package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nguyentantai21042004/yt-notes/internal/pipeline"
	"github.com/nguyentantai21042004/yt-notes/pkg/executor"
)

const missingFieldsMessage = "Missing url, start_time, or duration"

type transcriptRequest struct {
	URL       string `json:"url" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	Duration  string `json:"duration" validate:"required"`
	Summarize bool   `json:"summarize"`
}

type transcriptResponse struct {
	Transcript []pipeline.TranscriptChunk `json:"transcript"`
	Summary    string                     `json:"summary,omitempty"`
}

func (s *implServer) handleTranscript(c *gin.Context) {
	var req transcriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": missingFieldsMessage})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": missingFieldsMessage})
		return
	}

	ctx := c.Request.Context()
	transcript, err := s.pipeline.Run(ctx, pipeline.Job{
		URL:       req.URL,
		StartTime: req.StartTime,
		Duration:  req.Duration,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, executor.ErrTimeout) {
			status = http.StatusGatewayTimeout
		}
		s.logger.Error(ctx, "Transcript job failed: %v", err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	if transcript == nil {
		transcript = []pipeline.TranscriptChunk{}
	}

	resp := transcriptResponse{Transcript: transcript}
	if req.Summarize {
		resp.Summary = s.summarize(c, transcript)
	}
	c.JSON(http.StatusOK, resp)
}

// summarize never fails the request; the transcript is returned regardless.
func (s *implServer) summarize(c *gin.Context, transcript []pipeline.TranscriptChunk) string {
	ctx := c.Request.Context()
	if s.summarizer == nil {
		s.logger.Warn(ctx, "Summary requested but no Gemini API keys are configured")
		return ""
	}
	summary, err := s.summarizer.Summarize(ctx, transcript)
	if err != nil {
		s.logger.Warn(ctx, "Failed to summarize transcript: %v", err)
		return ""
	}
	return summary
}

func (s *implServer) handleHealth(c *gin.Context) {
	available := s.transcriber != nil && s.transcriber.IsAvailable(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"status": "ok", "transcriber": available})
}
