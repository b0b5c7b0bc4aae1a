// Package assets loads the demo's images off the render goroutine and turns them into textures.
package assets

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
)

// EmbedPrefix marks names served from the embedded image directory.
const EmbedPrefix = "embed:"

// Source opens an image by name.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// Sources resolves embed:name against Embedded, http and https URLs with HTTP, and
// anything else as a local path.
type Sources struct {
	Embedded fs.FS
	// Defaults to http.DefaultClient.
	HTTP *http.Client
}

func (s Sources) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	switch {
	case strings.HasPrefix(name, EmbedPrefix):
		if s.Embedded == nil {
			return nil, fmt.Errorf("open %s: no embedded images", name)
		}
		f, err := s.Embedded.Open(strings.TrimPrefix(name, EmbedPrefix))
		if err != nil {
			return nil, fmt.Errorf("open embedded: %w", err)
		}
		return f, nil
	case strings.HasPrefix(name, "http://"), strings.HasPrefix(name, "https://"):
		return s.get(ctx, name)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return f, nil
}

func (s Sources) get(ctx context.Context, url string) (io.ReadCloser, error) {
	client := s.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("get %s: %s", url, resp.Status)
	}
	return resp.Body, nil
}
