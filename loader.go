package faceloop

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp"
)

var errNilImage = errors.New("loader returned no image")

// FileLoader reads images from disk. Relative sources are resolved against
// Root.
type FileLoader struct {
	Root string
}

// Load opens and decodes src.
func (l FileLoader) Load(ctx context.Context, src string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := strings.TrimPrefix(src, "file://")
	if !filepath.IsAbs(path) && l.Root != "" {
		path = filepath.Join(l.Root, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src, err)
	}
	defer f.Close()
	return decodeImage(src, f)
}

// HTTPLoader fetches images over HTTP(S). A nil Client uses
// http.DefaultClient.
type HTTPLoader struct {
	Client *http.Client
}

// Load downloads and decodes src.
func (l HTTPLoader) Load(ctx context.Context, src string) (image.Image, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("load %s: unexpected status %s", src, resp.Status)
	}
	return decodeImage(src, resp.Body)
}

// MuxLoader routes http(s) sources to HTTP and everything else to Files.
type MuxLoader struct {
	HTTP  Loader
	Files Loader
}

// NewLoader returns a MuxLoader reading local files relative to root and
// remote images with the default HTTP client.
func NewLoader(root string) MuxLoader {
	return MuxLoader{HTTP: HTTPLoader{}, Files: FileLoader{Root: root}}
}

// Load dispatches on the scheme of src.
func (m MuxLoader) Load(ctx context.Context, src string) (image.Image, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return m.HTTP.Load(ctx, src)
	}
	return m.Files.Load(ctx, src)
}

func decodeImage(src string, r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", src, err)
	}
	return img, nil
}
