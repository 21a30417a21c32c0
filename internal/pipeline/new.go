package pipeline

import (
	"golang.org/x/sync/semaphore"

	"github.com/nguyentantai21042004/yt-notes/internal/config"
	"github.com/nguyentantai21042004/yt-notes/internal/logger"
	"github.com/nguyentantai21042004/yt-notes/internal/transcribe"
)

type implPipeline struct {
	cfg         *config.Config
	source      Source
	transcriber transcribe.Transcriber
	logger      logger.Logger
	gate        *semaphore.Weighted
}

// New creates a Pipeline. At most cfg.Pipeline.MaxConcurrent jobs run at once;
// the rest wait for a slot.
func New(cfg *config.Config, src Source, t transcribe.Transcriber, log logger.Logger) Pipeline {
	slots := int64(cfg.Pipeline.MaxConcurrent)
	if slots < 1 {
		slots = 1
	}
	return &implPipeline{
		cfg:         cfg,
		source:      src,
		transcriber: t,
		logger:      log,
		gate:        semaphore.NewWeighted(slots),
	}
}
