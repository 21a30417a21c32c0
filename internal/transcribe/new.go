package transcribe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/nguyentantai21042004/yt-notes/internal/config"
	"github.com/nguyentantai21042004/yt-notes/internal/logger"
	"github.com/nguyentantai21042004/yt-notes/internal/media"
	"github.com/nguyentantai21042004/yt-notes/pkg/executor"
)

const (
	BackendCLI  = "cli"
	BackendHTTP = "http"
)

// New builds the process-wide transcriber selected by cfg.Whisper.Backend.
// The returned value serializes calls and bounds each by cfg.Timeouts.Transcribe.
func New(cfg *config.Config, exec executor.Executor, audio media.AudioExtractor, log logger.Logger) (Transcriber, error) {
	var t Transcriber
	switch cfg.Whisper.Backend {
	case BackendCLI:
		t = newWhisperCPP(cfg.Whisper, exec, audio, log)
	case BackendHTTP:
		t = newSidecar(cfg.Whisper)
	default:
		return nil, fmt.Errorf("unknown whisper backend %q", cfg.Whisper.Backend)
	}
	return Serialize(t, cfg.Timeouts.Transcribe), nil
}

// WaitReady polls t with exponential backoff until it is available or maxWait elapses.
func WaitReady(ctx context.Context, t Transcriber, maxWait time.Duration, log logger.Logger) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = maxWait

	attempt := 0
	op := func() error {
		attempt++
		if t.IsAvailable(ctx) {
			return nil
		}
		log.Debug(ctx, "Transcriber %s not ready (attempt %d)", t.Name(), attempt)
		return errors.New("not ready")
	}

	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		return fmt.Errorf("transcriber %s not available after %s: %w", t.Name(), maxWait, err)
	}
	return nil
}
