package transcribe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/nguyentantai21042004/yt-notes/internal/media"
	"github.com/nguyentantai21042004/yt-notes/pkg/executor"
)

type serialTranscriber struct {
	next    Transcriber
	sem     *semaphore.Weighted
	timeout time.Duration
}

// Serialize lets at most one call reach t at a time and bounds each call by
// timeout (zero means no bound). Waiting for the slot honours ctx.
func Serialize(t Transcriber, timeout time.Duration) Transcriber {
	return &serialTranscriber{
		next:    t,
		sem:     semaphore.NewWeighted(1),
		timeout: timeout,
	}
}

func (s *serialTranscriber) Transcribe(ctx context.Context, a media.Artifact) (Result, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return Result{}, fmt.Errorf("%w: waiting for model: %w", ErrTranscription, err)
	}
	defer s.sem.Release(1)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	res, err := s.next.Transcribe(ctx, a)
	if err != nil {
		if !errors.Is(err, ErrTranscription) {
			err = fmt.Errorf("%w: %w", ErrTranscription, err)
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, executor.ErrTimeout) {
			err = fmt.Errorf("%w: %w", err, executor.ErrTimeout)
		}
		return Result{}, err
	}
	return res, nil
}

func (s *serialTranscriber) IsAvailable(ctx context.Context) bool { return s.next.IsAvailable(ctx) }

func (s *serialTranscriber) Name() string { return s.next.Name() }
