package frames

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// DirSource replays frames from a directory of image files in lexical
// filename order. Each CurrentFrame call serves the next frame; once the
// directory is exhausted CurrentFrame returns nil, which callers treat as
// "no frame available".
//
// DirSource is safe for concurrent use.
type DirSource struct {
	cache *Cache

	mu    sync.Mutex
	paths []string
	next  int
}

// NewDirSource lists the supported image files under dir. An empty directory
// is an error: a replay with no frames is a misconfiguration.
func NewDirSource(dir string, cache *Cache) (*DirSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read frames dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg", ".gif":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no frames in %s", dir)
	}
	sort.Strings(paths)

	if cache == nil {
		cache = NewCache()
	}
	return &DirSource{cache: cache, paths: paths}, nil
}

// CurrentFrame implements scene.FrameSource. A frame that fails to decode is
// logged and skipped rather than aborting the replay.
func (s *DirSource) CurrentFrame() image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()

	for s.next < len(s.paths) {
		path := s.paths[s.next]
		s.next++

		img, err := s.cache.Load(path)
		if err != nil {
			log.Printf("frames: skipping %s: %v", path, err)
			continue
		}
		return img
	}
	return nil
}

// Len returns the total number of frames in the replay.
func (s *DirSource) Len() int {
	return len(s.paths)
}

// Remaining returns how many frames have not been served yet.
func (s *DirSource) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.paths) - s.next
}
