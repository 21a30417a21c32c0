package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/nguyentantai21042004/yt-notes/internal/chunk"
	"github.com/nguyentantai21042004/yt-notes/internal/media"
	"github.com/nguyentantai21042004/yt-notes/internal/timecode"
	"github.com/nguyentantai21042004/yt-notes/pkg/executor"
)

// Run acquires the segment, transcribes it chunk by chunk and returns the
// non-empty chunks in order. A failed acquisition yields an empty transcript
// and no error. Every artifact the job creates is gone when Run returns.
func (p *implPipeline) Run(ctx context.Context, job Job) ([]TranscriptChunk, error) {
	start, err := timecode.Parse(job.StartTime)
	if err != nil {
		return nil, err
	}
	total, err := timecode.Parse(job.Duration)
	if err != nil {
		return nil, err
	}
	// absolute chunk offsets are start+offset
	if total > math.MaxInt-start {
		return nil, &timecode.FormatError{Input: job.Duration}
	}

	if err := p.gate.Acquire(ctx, 1); err != nil {
		return nil, p.abortErr(err)
	}
	defer p.gate.Release(1)

	if p.cfg.Timeouts.Job > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeouts.Job)
		defer cancel()
	}

	began := time.Now()
	p.logger.Info(ctx, "Starting job: %s from %s for %s", job.URL, timecode.Format(start), timecode.Format(total))

	acq := p.source.Acquire(ctx, job.URL, timecode.Format(start), timecode.Format(total))
	if !acq.Success {
		p.cleanupArtifact(ctx, acq.Artifact)
		if ctx.Err() != nil {
			return nil, p.abortErr(ctx.Err())
		}
		p.logger.Error(ctx, "Failed to download video segment %s: %v", job.URL, acq.Err)
		return []TranscriptChunk{}, nil
	}
	defer p.cleanupArtifact(ctx, acq.Artifact)

	transcript := []TranscriptChunk{}
	for w := range chunk.Windows(total, p.chunkLength()) {
		if err := ctx.Err(); err != nil {
			return nil, p.abortErr(err)
		}

		text, err := p.processChunk(ctx, acq.Artifact, w)
		if err != nil {
			if ctx.Err() != nil {
				return nil, p.abortErr(ctx.Err())
			}
			p.logger.Warn(ctx, "Skipping chunk %s: %v", w, err)
			continue
		}
		if text == "" {
			p.logger.Debug(ctx, "No speech in chunk %s", w)
			continue
		}
		transcript = append(transcript, TranscriptChunk{
			StartTime: timecode.Offset(start + w.Offset),
			Text:      text,
		})
	}

	p.logger.Info(ctx, "Job finished: %d chunks with speech in %s", len(transcript), time.Since(began).Round(time.Millisecond))
	for _, c := range transcript {
		p.logger.Info(ctx, "[%s] %s", c.StartTime, c.Text)
	}

	return transcript, nil
}

// processChunk extracts, transcribes and removes one window of src.
func (p *implPipeline) processChunk(ctx context.Context, src media.Artifact, w chunk.Window) (string, error) {
	p.logger.Info(ctx, "Processing segment %s to %s", timecode.Format(w.Offset), timecode.Format(w.End()))

	a, err := p.source.Extract(ctx, src, w)
	if err != nil {
		return "", fmt.Errorf("extract: %w", err)
	}
	defer p.cleanupArtifact(ctx, a)

	res, err := p.transcriber.Transcribe(ctx, a)
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	return strings.TrimSpace(res.Text), nil
}

func (p *implPipeline) chunkLength() int {
	if p.cfg.Pipeline.ChunkLength > 0 {
		return p.cfg.Pipeline.ChunkLength
	}
	return chunk.DefaultLength
}

// abortErr maps a dead job context to the error Run reports.
func (p *implPipeline) abortErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("job aborted: %w", executor.ErrTimeout)
	}
	return fmt.Errorf("job aborted: %w", err)
}
