package media

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/yt-notes/pkg/executor"
)

// ExtractAudio converts src to 16kHz mono PCM WAV, the input whisper.cpp expects.
func (m *implMedia) ExtractAudio(ctx context.Context, src Artifact) (Artifact, error) {
	out, err := newArtifact(m.cfg.Media.WorkDir, audioPrefix, "wav")
	if err != nil {
		return Artifact{}, err
	}

	m.logger.Debug(ctx, "Extracting audio: %s -> %s", src.Name, out.Name)

	// -vn: drop video
	// -ar 16000 -ac 1: 16kHz mono
	// -c:a pcm_s16le: 16-bit little-endian PCM
	args := []string{
		"-i", src.Path,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		out.Path,
	}

	if _, err := m.executor.Run(ctx, executor.Command{
		Name:    m.cfg.Media.FFmpegBinary,
		Args:    args,
		Timeout: m.cfg.Timeouts.Extract,
	}); err != nil {
		m.removePartial(ctx, out)
		return Artifact{}, fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	return out, nil
}
