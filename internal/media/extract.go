package media

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/yt-notes/internal/chunk"
	"github.com/nguyentantai21042004/yt-notes/internal/timecode"
	"github.com/nguyentantai21042004/yt-notes/pkg/executor"
)

// Extract copies window w of src into a new chunk artifact.
func (m *implMedia) Extract(ctx context.Context, src Artifact, w chunk.Window) (Artifact, error) {
	out, err := newArtifact(m.cfg.Media.WorkDir, chunkPrefix, m.cfg.Media.Container)
	if err != nil {
		return Artifact{}, err
	}

	args := []string{
		"-ss", timecode.Format(w.Offset),
		"-i", src.Path,
		"-t", timecode.Format(w.Length),
		"-c", "copy",
		"-y",
		out.Path,
	}

	if _, err := m.executor.Run(ctx, executor.Command{
		Name:    m.cfg.Media.FFmpegBinary,
		Args:    args,
		Timeout: m.cfg.Timeouts.Extract,
	}); err != nil {
		m.removePartial(ctx, out)
		return Artifact{}, fmt.Errorf("ffmpeg extract chunk %s: %w", w, err)
	}
	if !out.Exists() {
		return Artifact{}, fmt.Errorf("ffmpeg extract chunk %s: %s was not written", w, out.Name)
	}

	return out, nil
}
