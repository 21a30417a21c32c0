package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/yt-notes/internal/config"
	"github.com/nguyentantai21042004/yt-notes/internal/logger"
	"github.com/nguyentantai21042004/yt-notes/internal/media"
	"github.com/nguyentantai21042004/yt-notes/internal/pipeline"
	"github.com/nguyentantai21042004/yt-notes/internal/timecode"
	"github.com/nguyentantai21042004/yt-notes/internal/transcribe"
	"github.com/nguyentantai21042004/yt-notes/pkg/executor"
)

type fakePipeline struct {
	jobs  []pipeline.Job
	out   []pipeline.TranscriptChunk
	err   error
	panic bool
	reqID string
}

func (f *fakePipeline) Run(ctx context.Context, job pipeline.Job) ([]pipeline.TranscriptChunk, error) {
	if f.panic {
		panic("boom")
	}
	f.reqID = logger.RequestID(ctx)
	f.jobs = append(f.jobs, job)
	return f.out, f.err
}

type fakeSummarizer struct {
	summary string
	err     error
	calls   int
}

func (f *fakeSummarizer) Summarize(context.Context, []pipeline.TranscriptChunk) (string, error) {
	f.calls++
	return f.summary, f.err
}

type fakeTranscriber struct{ available bool }

func (f fakeTranscriber) Name() string { return "fake" }
func (f fakeTranscriber) IsAvailable(context.Context) bool { return f.available }
func (f fakeTranscriber) Transcribe(context.Context, media.Artifact) (transcribe.Result, error) {
	return transcribe.Result{}, nil
}

func newTestServer(p pipeline.Pipeline, sum *fakeSummarizer) http.Handler {
	var s Server
	if sum == nil {
		s = New(config.ServerConfig{}, p, nil, fakeTranscriber{available: true}, logger.Nop())
	} else {
		s = New(config.ServerConfig{}, p, sum, fakeTranscriber{available: true}, logger.Nop())
	}
	return s.Handler()
}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/yt_notes/transcript", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestTranscriptMissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"missing url", `{"start_time":"00:00:00","duration":"00:00:10"}`},
		{"missing start_time", `{"url":"u","duration":"00:00:10"}`},
		{"empty duration", `{"url":"u","start_time":"00:00:00","duration":""}`},
		{"not json", `url=u`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakePipeline{}
			rec := post(newTestServer(p, nil), tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body["error"] != "Missing url, start_time, or duration" {
				t.Errorf("error = %q", body["error"])
			}
			if len(p.jobs) != 0 {
				t.Error("pipeline should not run")
			}
		})
	}
}

func TestTranscriptSuccess(t *testing.T) {
	p := &fakePipeline{out: []pipeline.TranscriptChunk{
		{StartTime: 60, Text: "namaste"},
		{StartTime: 70, Text: "duniya"},
	}}
	h := newTestServer(p, nil)

	req := httptest.NewRequest(http.MethodPost, "/yt_notes/transcript",
		strings.NewReader(`{"url":"https://youtu.be/x","start_time":"00:01:00","duration":"00:00:25"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	want := `{"transcript":[{"start_time":"00:01:00","text":"namaste"},{"start_time":"00:01:10","text":"duniya"}]}`
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Errorf("body = %s, want %s", got, want)
	}
	if rec.Header().Get("X-Request-Id") != "req-42" || p.reqID != "req-42" {
		t.Errorf("request id not propagated: header %q, ctx %q", rec.Header().Get("X-Request-Id"), p.reqID)
	}
	if p.jobs[0] != (pipeline.Job{URL: "https://youtu.be/x", StartTime: "00:01:00", Duration: "00:00:25"}) {
		t.Errorf("job = %+v", p.jobs[0])
	}
}

func TestTranscriptEmptyResult(t *testing.T) {
	rec := post(newTestServer(&fakePipeline{}, nil), `{"url":"u","start_time":"00:00:00","duration":"00:00:10"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"transcript":[]}` {
		t.Errorf("body = %s", got)
	}
}

func TestTranscriptErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"bad time format", &timecode.FormatError{Input: "1:00"}, http.StatusInternalServerError},
		{"job deadline", fmt.Errorf("job aborted: %w", executor.ErrTimeout), http.StatusGatewayTimeout},
		{"other", errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(newTestServer(&fakePipeline{err: tt.err}, nil), `{"url":"u","start_time":"1:00","duration":"00:00:10"}`)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if !strings.Contains(rec.Body.String(), `"error"`) {
				t.Errorf("body = %s", rec.Body)
			}
		})
	}
}

func TestTranscriptPanicRecovered(t *testing.T) {
	rec := post(newTestServer(&fakePipeline{panic: true}, nil), `{"url":"u","start_time":"00:00:00","duration":"00:00:10"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestTranscriptSummary(t *testing.T) {
	chunks := []pipeline.TranscriptChunk{{StartTime: 0, Text: "hello"}}

	t.Run("included when requested", func(t *testing.T) {
		sum := &fakeSummarizer{summary: "# Notes"}
		rec := post(newTestServer(&fakePipeline{out: chunks}, sum), `{"url":"u","start_time":"00:00:00","duration":"00:00:10","summarize":true}`)

		var body transcriptResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatal(err)
		}
		if body.Summary != "# Notes" || len(body.Transcript) != 1 {
			t.Errorf("body = %+v", body)
		}
	})

	t.Run("not called unless requested", func(t *testing.T) {
		sum := &fakeSummarizer{summary: "# Notes"}
		rec := post(newTestServer(&fakePipeline{out: chunks}, sum), `{"url":"u","start_time":"00:00:00","duration":"00:00:10"}`)
		if sum.calls != 0 || strings.Contains(rec.Body.String(), "summary") {
			t.Errorf("unexpected summary: %s", rec.Body)
		}
	})

	t.Run("failure keeps transcript", func(t *testing.T) {
		sum := &fakeSummarizer{err: errors.New("all API keys exhausted")}
		rec := post(newTestServer(&fakePipeline{out: chunks}, sum), `{"url":"u","start_time":"00:00:00","duration":"00:00:10","summarize":true}`)
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "hello") {
			t.Errorf("status = %d, body = %s", rec.Code, rec.Body)
		}
	})

	t.Run("no summarizer configured", func(t *testing.T) {
		rec := post(newTestServer(&fakePipeline{out: chunks}, nil), `{"url":"u","start_time":"00:00:00","duration":"00:00:10","summarize":true}`)
		if rec.Code != http.StatusOK || strings.Contains(rec.Body.String(), "summary") {
			t.Errorf("status = %d, body = %s", rec.Code, rec.Body)
		}
	})
}

func TestHealth(t *testing.T) {
	s := New(config.ServerConfig{}, &fakePipeline{}, nil, fakeTranscriber{available: false}, logger.Nop())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"status":"ok","transcriber":false}` {
		t.Errorf("body = %s", got)
	}
}

func TestStartStop(t *testing.T) {
	s := New(config.ServerConfig{Host: "127.0.0.1", Port: 0}, &fakePipeline{}, nil, fakeTranscriber{}, logger.Nop())
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
}
