package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/yt-notes/internal/media"
)

// cleanupArtifact removes a job artifact, logs warning if fails
func (p *implPipeline) cleanupArtifact(ctx context.Context, a media.Artifact) {
	if err := a.Remove(); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup artifact %s: %v", a.Path, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up artifact: %s", a.Name)
	}
}
