package transcribe

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/yt-notes/internal/media"
)

// ErrTranscription is wrapped by every error a Transcriber returns, so callers
// can tell a failed call from a successful one that heard no speech.
var ErrTranscription = errors.New("transcription failed")

// Transcriber turns a local media artifact into text. Implementations hold a
// model configured once at construction; the variant is not chosen per call.
type Transcriber interface {
	Transcribe(ctx context.Context, a media.Artifact) (Result, error)
	// IsAvailable reports whether the backing model can be reached.
	IsAvailable(ctx context.Context) bool
	Name() string
}

// Result is a successful transcription. Empty Text means no speech was found.
type Result struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments,omitempty"`
	Language string    `json:"language,omitempty"`
}

// Segment is a time-aligned slice of a transcript, in seconds from the
// start of the transcribed artifact.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}
