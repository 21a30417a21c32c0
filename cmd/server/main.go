package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/nguyentantai21042004/yt-notes/internal/config"
	"github.com/nguyentantai21042004/yt-notes/internal/logger"
	"github.com/nguyentantai21042004/yt-notes/internal/media"
	"github.com/nguyentantai21042004/yt-notes/internal/pipeline"
	"github.com/nguyentantai21042004/yt-notes/internal/server"
	"github.com/nguyentantai21042004/yt-notes/internal/summarizer"
	"github.com/nguyentantai21042004/yt-notes/internal/transcribe"
	"github.com/nguyentantai21042004/yt-notes/internal/watcher"
	"github.com/nguyentantai21042004/yt-notes/pkg/executor"
)

const sidecarReadyTimeout = time.Minute

func main() {
	ctx := context.Background()

	configPath := os.Getenv("YTNOTES_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info(ctx, "========================================")
	log.Info(ctx, "yt-notes transcription service")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s, CPU Cores: %d", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	log.Info(ctx, "Whisper: %s backend, language %s", cfg.Whisper.Backend, cfg.Whisper.Language)
	log.Info(ctx, "Chunk length: %ds, max concurrent jobs: %d", cfg.Pipeline.ChunkLength, cfg.Pipeline.MaxConcurrent)

	if err := os.MkdirAll(cfg.Media.WorkDir, 0755); err != nil {
		log.Error(ctx, "Failed to create work dir %s: %v", cfg.Media.WorkDir, err)
		os.Exit(1)
	}

	// Initialize dependencies
	exec := executor.New(executor.Options{
		BinDir:      cfg.Media.BinDir,
		GracePeriod: cfg.Timeouts.GracePeriod,
	})
	m := media.New(cfg, exec, log)

	tr, err := transcribe.New(cfg, exec, m, log)
	if err != nil {
		log.Error(ctx, "Failed to create transcriber: %v", err)
		os.Exit(1)
	}
	if cfg.Whisper.Backend == transcribe.BackendHTTP {
		if err := transcribe.WaitReady(ctx, tr, sidecarReadyTimeout, log); err != nil {
			log.Error(ctx, "Whisper sidecar unavailable: %v", err)
			os.Exit(1)
		}
	} else if !tr.IsAvailable(ctx) {
		log.Warn(ctx, "whisper.cpp binary or model not found (%s, %s)", cfg.Whisper.BinaryPath, cfg.Whisper.ModelPath)
	}
	log.Info(ctx, "Transcriber ready: %s", tr.Name())

	pipe := pipeline.New(cfg, m, tr, log)

	var sum summarizer.Summarizer
	if len(cfg.Gemini.APIKeys) > 0 {
		sum = summarizer.New(cfg.Gemini.APIKeys, cfg.Gemini.Model, log)
		log.Info(ctx, "Gemini summaries enabled (%d keys)", len(cfg.Gemini.APIKeys))
	}

	srv := server.New(cfg.Server, pipe, sum, tr, log)
	if err := srv.Start(ctx); err != nil {
		log.Error(ctx, "Failed to start server: %v", err)
		os.Exit(1)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Hot reload of the log level
	w, err := watcher.New(configPath, reloadLogLevel(log), log, 0)
	if err != nil {
		log.Warn(ctx, "Config watcher disabled: %v", err)
	} else {
		defer w.Stop()
		go func() {
			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error(ctx, "Config watcher error: %v", err)
			}
		}()
	}

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Info(ctx, "Ready: POST http://%s:%d/yt_notes/transcript", cfg.Server.Host, cfg.Server.Port)

	<-sigChan
	log.Info(ctx, "Shutdown signal received, shutting down gracefully...")
	cancel()

	if err := srv.Stop(context.Background()); err != nil {
		log.Error(context.Background(), "Shutdown error: %v", err)
	}
	log.Info(context.Background(), "yt-notes stopped")
}

// reloadLogLevel re-reads the config and applies its log level. Other
// settings need a restart.
func reloadLogLevel(log logger.Logger) watcher.EventHandler {
	return func(ctx context.Context, path string) error {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		log.SetLevel(cfg.Logging.Level)
		log.Info(ctx, "Config reloaded, log level: %s", cfg.Logging.Level)
		return nil
	}
}
