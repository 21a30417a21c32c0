package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/yt-notes/internal/config"
	"github.com/nguyentantai21042004/yt-notes/internal/media"
)

// sidecar talks to a faster-whisper HTTP server that keeps the model loaded.
type sidecar struct {
	cfg    config.WhisperConfig
	client *http.Client
}

func newSidecar(cfg config.WhisperConfig) *sidecar {
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	// Deadlines come from the request context.
	return &sidecar{cfg: cfg, client: &http.Client{}}
}

func (s *sidecar) Name() string { return "whisper-http" }

func (s *sidecar) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.URL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (s *sidecar) Transcribe(ctx context.Context, a media.Artifact) (Result, error) {
	f, err := os.Open(a.Path)
	if err != nil {
		return Result{}, fmt.Errorf("%w: open artifact: %w", ErrTranscription, err)
	}
	defer f.Close()

	body, contentType := multipartBody(f, filepath.Base(a.Path), map[string]string{
		"model":    s.cfg.Model,
		"language": s.cfg.Language,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL+"/transcribe", body)
	if err != nil {
		// unblocks the writer goroutine
		body.CloseWithError(err)
		return Result{}, fmt.Errorf("%w: create request: %w", ErrTranscription, err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := s.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: whisper request: %w", ErrTranscription, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Result{}, fmt.Errorf("%w: whisper error (status %d): %s", ErrTranscription, resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var out Result
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{}, fmt.Errorf("%w: decode whisper response: %w", ErrTranscription, err)
	}
	out.Text = strings.TrimSpace(out.Text)
	return out, nil
}

// multipartBody streams file and fields without buffering the whole upload.
// The caller must read the reader to EOF or close it.
func multipartBody(file io.Reader, filename string, fields map[string]string) (*io.PipeReader, string) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("audio", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		for k, v := range fields {
			if v == "" {
				continue
			}
			if err := mw.WriteField(k, v); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
		pw.CloseWithError(mw.Close())
	}()

	return pr, mw.FormDataContentType()
}
