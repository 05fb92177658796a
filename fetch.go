package postview

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// Fetcher supplies the raw source text for a data file reference. It is the
// external fetch collaborator of the load sequence; implementations must
// honor ctx for cancellation and timeout.
type Fetcher interface {
	Fetch(ctx context.Context, source string) ([]byte, error)
}

// NewFetcher picks an HTTP fetcher for http(s) URLs and a filesystem fetcher
// for everything else. client may be nil.
func NewFetcher(source string, client *http.Client) Fetcher {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return &HTTPFetcher{Client: client}
	}
	return FileFetcher{}
}

// HTTPFetcher downloads the source document over HTTP. A non-200 response is
// a transport error.
type HTTPFetcher struct {
	Client *http.Client
}

func (f *HTTPFetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("postview: build request: %w", err)
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("postview: fetch %s: %w", source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("postview: fetch %s: HTTP %d", source, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("postview: read %s: %w", source, err)
	}
	return data, nil
}

// FileFetcher reads the source document from the local filesystem.
type FileFetcher struct{}

func (FileFetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("postview: read %s: %w", source, err)
	}
	return data, nil
}
