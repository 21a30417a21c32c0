// Package chunk splits a segment duration into fixed-length windows.
package chunk

import (
	"fmt"
	"iter"

	"github.com/nguyentantai21042004/yt-notes/internal/timecode"
)

// DefaultLength is the chunk size in seconds when none is configured.
const DefaultLength = 10

// maxPrealloc bounds the up-front allocation in Plan; total comes from clients.
const maxPrealloc = 1024

// Window is a span relative to the start of some artifact, in seconds.
type Window struct {
	Offset int
	Length int
}

// End returns the exclusive end of the window.
func (w Window) End() int { return w.Offset + w.Length }

func (w Window) String() string {
	return fmt.Sprintf("%s-%s", timecode.Format(w.Offset), timecode.Format(w.End()))
}

// Windows yields the windows covering [0, total) one at a time, the last one
// truncated to fit. Nothing is yielded when total or length is not positive.
func Windows(total, length int) iter.Seq[Window] {
	return func(yield func(Window) bool) {
		if total <= 0 || length <= 0 {
			return
		}
		for offset := 0; offset < total; offset += length {
			if !yield(Window{Offset: offset, Length: min(length, total-offset)}) {
				return
			}
			// last window; also keeps offset+length from overflowing
			if offset >= total-length {
				return
			}
		}
	}
}

// Plan covers [0, total) with consecutive windows of the given length.
// The last window is truncated to fit.
func Plan(total, length int) []Window {
	if total <= 0 || length <= 0 {
		return nil
	}

	windows := make([]Window, 0, min((total-1)/length+1, maxPrealloc))
	for w := range Windows(total, length) {
		windows = append(windows, w)
	}
	return windows
}
