package render

import (
	"fmt"
	"image"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"nature-ca/internal/tiles"
)

// Assets decodes tile images in the background. Lookups made before an image
// finishes loading, or for images that failed, return nil and the tile is
// drawn without it.
type Assets struct {
	mu     sync.RWMutex
	images map[*tiles.Type]image.Image
	wg     sync.WaitGroup
}

// LoadAssets starts decoding the image of every catalog entry that declares
// one, resolving relative paths against dir. It returns immediately.
func LoadAssets(dir string, catalog *tiles.Catalog, logger *slog.Logger) *Assets {
	if logger == nil {
		logger = slog.Default()
	}
	a := &Assets{images: make(map[*tiles.Type]image.Image)}
	for _, t := range catalog.Types() {
		if t.Image == "" {
			continue
		}
		path := t.Image
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		a.wg.Add(1)
		go func(t *tiles.Type, path string) {
			defer a.wg.Done()
			img, err := decodeImage(path)
			if err != nil {
				logger.Warn("tile image unavailable", "tile", t.Name, "path", path, "err", err)
				return
			}
			a.mu.Lock()
			a.images[t] = img
			a.mu.Unlock()
		}(t, path)
	}
	return a
}

// Image returns the decoded image for t, or nil when it is not available.
func (a *Assets) Image(t *tiles.Type) image.Image {
	if a == nil || t == nil {
		return nil
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.images[t]
}

// Wait blocks until every load has finished or failed.
func (a *Assets) Wait() {
	if a != nil {
		a.wg.Wait()
	}
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
