package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/yt-notes/internal/media"
	"github.com/nguyentantai21042004/yt-notes/internal/timecode"
)

// Pipeline turns a segment of a remote video into a chunked transcript.
type Pipeline interface {
	Run(ctx context.Context, job Job) ([]TranscriptChunk, error)
}

// Source is the part of media the pipeline drives directly.
type Source interface {
	media.Acquirer
	media.Extractor
}

// Job is one transcription request. StartTime and Duration are HH:MM:SS.
type Job struct {
	URL       string
	StartTime string
	Duration  string
}

// TranscriptChunk is the text heard in one chunk, stamped with its absolute
// position in the source video.
type TranscriptChunk struct {
	StartTime timecode.Offset `json:"start_time"`
	Text      string          `json:"text"`
}
