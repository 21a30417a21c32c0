package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/yt-notes/internal/pipeline"
)

// Summarizer turns a chunked transcript into LLM-generated markdown notes.
type Summarizer interface {
	Summarize(ctx context.Context, transcript []pipeline.TranscriptChunk) (string, error)
}
