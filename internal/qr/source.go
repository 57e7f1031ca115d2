package qr

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// FrameSource yields frames for the continuous scanner. Implementations
// must make Close safe to call more than once and from a different
// goroutine than Next; after Close, Next returns [ErrSourceExhausted].
type FrameSource interface {
	Next(ctx context.Context) (image.Image, error)
	Close() error
}

// StillSource serves exactly one frame from an image file: the upload path.
type StillSource struct {
	path string

	mu     sync.Mutex
	served bool
	closed bool
}

func NewStillSource(path string) *StillSource {
	return &StillSource{path: path}
}

func (s *StillSource) Next(_ context.Context) (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.served {
		return nil, ErrSourceExhausted
	}
	s.served = true

	f, err := os.Open(s.path)
	if err != nil {
		return nil, classifyCapture(err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (s *StillSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// DirSource is the camera-feed analog for a terminal client: it polls a drop
// directory and yields each new image file as a frame. Files present before
// the source was opened are ignored, like frames before the camera started.
type DirSource struct {
	dir      string
	interval time.Duration

	mu     sync.Mutex
	seen   map[string]struct{}
	primed bool
	closed bool
}

func NewDirSource(dir string, interval time.Duration) *DirSource {
	return &DirSource{
		dir:      dir,
		interval: interval,
		seen:     make(map[string]struct{}),
	}
}

func (s *DirSource) Next(ctx context.Context) (image.Image, error) {
	for {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return nil, ErrSourceExhausted
		}

		img, err := s.scanOnceLocked()
		s.mu.Unlock()

		if err != nil {
			return nil, err
		}
		if img != nil {
			return img, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.interval):
		}
	}
}

// scanOnceLocked lists the drop directory and returns the first unseen image
// it can decode, or nil when there is nothing new yet.
func (s *DirSource) scanOnceLocked() (image.Image, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, classifyCapture(err)
	}

	if !s.primed {
		for _, entry := range entries {
			s.seen[entry.Name()] = struct{}{}
		}
		s.primed = true
		return nil, nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, done := s.seen[entry.Name()]; done {
			continue
		}
		if !isImageFile(entry.Name()) {
			s.seen[entry.Name()] = struct{}{}
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		f, err := os.Open(filepath.Join(s.dir, name))
		if err != nil {
			continue // likely still being written, retried on the next poll
		}
		img, _, err := image.Decode(f)
		f.Close()
		s.seen[name] = struct{}{}
		if err != nil {
			continue
		}
		return img, nil
	}

	return nil, nil
}

func (s *DirSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func isImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return true
	default:
		return false
	}
}
