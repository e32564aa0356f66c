package media

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"
)

type Fetched struct {
	Data []byte
	Mime string
}

// Fetcher loads a RemoteURI source into memory.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) (*Fetched, error)
}

type HTTPFetcher struct {
	client  *http.Client
	maxSize int64
}

func NewHTTPFetcher(timeout time.Duration, maxSize int64) *HTTPFetcher {
	return &HTTPFetcher{
		client:  &http.Client{Timeout: timeout},
		maxSize: maxSize,
	}
}

// NewLocalFetcher also resolves file:// URIs against the local file system.
// Only the CLI uses it; the HTTP API must not read server files.
func NewLocalFetcher(timeout time.Duration, maxSize int64) *HTTPFetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.RegisterProtocol("file", http.NewFileTransport(http.Dir("/")))

	return &HTTPFetcher{
		client:  &http.Client{Timeout: timeout, Transport: transport},
		maxSize: maxSize,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, uri string) (*Fetched, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", uri, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get %s: unexpected status %d", uri, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", uri, err)
	}
	if int64(len(data)) > f.maxSize {
		return nil, fmt.Errorf("get %s: body exceeds %d bytes", uri, f.maxSize)
	}

	contentType := resp.Header.Get("Content-Type")
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mediaType
	}

	return &Fetched{Data: data, Mime: contentType}, nil
}
