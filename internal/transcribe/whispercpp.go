package transcribe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/yt-notes/internal/config"
	"github.com/nguyentantai21042004/yt-notes/internal/logger"
	"github.com/nguyentantai21042004/yt-notes/internal/media"
	"github.com/nguyentantai21042004/yt-notes/pkg/executor"
)

// whisperCPP runs the whisper.cpp CLI against a WAV rendition of the artifact.
type whisperCPP struct {
	cfg      config.WhisperConfig
	executor executor.Executor
	audio    media.AudioExtractor
	logger   logger.Logger
}

func newWhisperCPP(cfg config.WhisperConfig, exec executor.Executor, audio media.AudioExtractor, log logger.Logger) *whisperCPP {
	return &whisperCPP{cfg: cfg, executor: exec, audio: audio, logger: log}
}

func (w *whisperCPP) Name() string { return "whisper.cpp" }

func (w *whisperCPP) IsAvailable(ctx context.Context) bool {
	if _, err := os.Stat(w.cfg.ModelPath); err != nil {
		return false
	}
	if _, err := os.Stat(w.cfg.BinaryPath); err == nil {
		return true
	}
	_, err := exec.LookPath(w.cfg.BinaryPath)
	return err == nil
}

func (w *whisperCPP) Transcribe(ctx context.Context, a media.Artifact) (Result, error) {
	if !a.Exists() {
		return Result{}, fmt.Errorf("%w: %s: %w", ErrTranscription, a.Name, fs.ErrNotExist)
	}

	wav, err := w.audio.ExtractAudio(ctx, a)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrTranscription, err)
	}
	defer w.cleanup(ctx, wav.Path)

	// whisper.cpp appends .json to the -of prefix
	outputPrefix := strings.TrimSuffix(wav.Path, ".wav")
	jsonPath := outputPrefix + ".json"
	defer w.cleanup(ctx, jsonPath)

	// -l: force language (prevents hallucination)
	// -oj: JSON output with per-segment offsets
	// -np: no progress prints on stdout
	args := []string{
		"-m", w.cfg.ModelPath,
		"-f", wav.Path,
		"-l", w.cfg.Language,
		"-t", strconv.Itoa(w.cfg.Threads),
		"-oj",
		"-np",
		"-of", outputPrefix,
	}

	w.logger.Debug(ctx, "Running whisper.cpp on %s", wav.Name)

	if _, err := w.executor.Run(ctx, executor.Command{Name: w.cfg.BinaryPath, Args: args}); err != nil {
		return Result{}, fmt.Errorf("%w: whisper.cpp: %w", ErrTranscription, err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return Result{}, fmt.Errorf("%w: read whisper output: %w", ErrTranscription, err)
	}
	res, err := parseWhisperCPP(data)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrTranscription, err)
	}
	return res, nil
}

func (w *whisperCPP) cleanup(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		w.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
	}
}

type whisperCPPOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

func parseWhisperCPP(data []byte) (Result, error) {
	var out whisperCPPOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return Result{}, fmt.Errorf("parse whisper output: %w", err)
	}

	res := Result{Language: out.Result.Language}
	parts := make([]string, 0, len(out.Transcription))
	for _, seg := range out.Transcription {
		text := strings.TrimSpace(seg.Text)
		res.Segments = append(res.Segments, Segment{
			Start: float64(seg.Offsets.From) / 1000,
			End:   float64(seg.Offsets.To) / 1000,
			Text:  text,
		})
		if text != "" {
			parts = append(parts, text)
		}
	}
	res.Text = strings.Join(parts, " ")
	return res, nil
}
