package media

import (
	"context"

	"github.com/nguyentantai21042004/yt-notes/internal/chunk"
)

// Acquirer materializes a time window of a remote video as a local artifact.
type Acquirer interface {
	Acquire(ctx context.Context, url, startTime, duration string) AcquisitionResult
}

// Extractor cuts a window out of a local artifact without re-encoding.
type Extractor interface {
	Extract(ctx context.Context, src Artifact, w chunk.Window) (Artifact, error)
}

// AudioExtractor converts an artifact to 16kHz mono WAV for whisper.cpp.
type AudioExtractor interface {
	ExtractAudio(ctx context.Context, src Artifact) (Artifact, error)
}

// Media bundles every ffmpeg/yt-dlp backed operation.
type Media interface {
	Acquirer
	Extractor
	AudioExtractor
}

// AcquisitionResult describes the outcome of a single Acquire call.
type AcquisitionResult struct {
	Success   bool
	URL       string
	StartTime string
	Duration  string
	StreamURL string
	Artifact  Artifact
	Err       error
}
