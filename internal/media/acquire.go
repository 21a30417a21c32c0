package media

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/yt-notes/pkg/executor"
)

// Acquire resolves a direct stream for url and copies [startTime, startTime+duration)
// into a fresh clip artifact. Nothing is retried.
func (m *implMedia) Acquire(ctx context.Context, url, startTime, duration string) AcquisitionResult {
	result := AcquisitionResult{
		URL:       url,
		StartTime: startTime,
		Duration:  duration,
	}

	artifact, err := newArtifact(m.cfg.Media.WorkDir, clipPrefix, m.cfg.Media.Container)
	if err != nil {
		result.Err = err
		return result
	}
	result.Artifact = artifact

	streamURL, err := m.resolveStream(ctx, url)
	if err != nil {
		result.Err = err
		return result
	}
	result.StreamURL = streamURL

	m.logger.Info(ctx, "Cutting segment %s +%s -> %s", startTime, duration, artifact.Name)

	if err := m.cut(ctx, streamURL, startTime, duration, artifact); err != nil {
		result.Err = err
		return result
	}

	result.Success = true
	return result
}

// resolveStream asks yt-dlp for a directly fetchable media URL.
func (m *implMedia) resolveStream(ctx context.Context, url string) (string, error) {
	m.logger.Debug(ctx, "Resolving stream for %s", url)

	res, err := m.executor.Run(ctx, executor.Command{
		Name:    m.cfg.Media.YtDlpBinary,
		Args:    []string{"-f", m.cfg.Media.YtDlpFormat, "-g", url},
		Timeout: m.cfg.Timeouts.Resolve,
	})
	if err != nil {
		return "", fmt.Errorf("resolve stream: %w", err)
	}

	for _, line := range strings.Split(string(res.Stdout), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line, nil
		}
	}
	return "", fmt.Errorf("resolve stream: %s printed no URL", m.cfg.Media.YtDlpBinary)
}

// cut copies a window of input into out with no re-encode, overwriting out.
func (m *implMedia) cut(ctx context.Context, input, start, duration string, out Artifact) error {
	args := []string{
		"-ss", start,
		"-i", input,
		"-t", duration,
		"-c", "copy",
		"-y",
		out.Path,
	}

	_, err := m.executor.Run(ctx, executor.Command{
		Name:    m.cfg.Media.FFmpegBinary,
		Args:    args,
		Timeout: m.cfg.Timeouts.Cut,
	})
	if err != nil {
		m.removePartial(ctx, out)
		return fmt.Errorf("ffmpeg cut segment: %w", err)
	}
	if !out.Exists() {
		return fmt.Errorf("ffmpeg cut segment: %s was not written", out.Name)
	}
	return nil
}

func (m *implMedia) removePartial(ctx context.Context, a Artifact) {
	if err := a.Remove(); err != nil {
		m.logger.Warn(ctx, "Failed to remove partial artifact %s: %v", a.Path, err)
	}
}
