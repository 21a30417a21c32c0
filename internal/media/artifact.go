package media

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Artifact is a local media file owned by exactly one job.
type Artifact struct {
	Name string
	Path string
}

// Remove deletes the file. A missing file is not an error.
func (a Artifact) Remove() error {
	if a.Path == "" {
		return nil
	}
	if err := os.Remove(a.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Exists reports whether the file is present on disk.
func (a Artifact) Exists() bool {
	if a.Path == "" {
		return false
	}
	_, err := os.Stat(a.Path)
	return err == nil
}

// newArtifact reserves a collision-resistant name like clip_1a2b3c4d.mp4 in dir.
// Nothing is created on disk.
func newArtifact(dir, prefix, ext string) (Artifact, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return Artifact{}, fmt.Errorf("resolve work dir: %w", err)
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	name := fmt.Sprintf("%s_%s.%s", prefix, suffix, strings.TrimPrefix(ext, "."))
	return Artifact{Name: name, Path: filepath.Join(absDir, name)}, nil
}
