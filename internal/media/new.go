package media

import (
	"github.com/nguyentantai21042004/yt-notes/internal/config"
	"github.com/nguyentantai21042004/yt-notes/internal/logger"
	"github.com/nguyentantai21042004/yt-notes/pkg/executor"
)

const (
	clipPrefix  = "clip"
	chunkPrefix = "chunk"
	audioPrefix = "audio"
)

type implMedia struct {
	cfg      *config.Config
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Media backed by yt-dlp and ffmpeg.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Media {
	return &implMedia{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
