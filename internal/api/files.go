package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DownloadFile streams an uploaded attachment from the file-serving endpoint.
// The caller owns closing the returned reader.
func (c *Client) DownloadFile(ctx context.Context, path string) (io.ReadCloser, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)

	u := c.baseURL + "/files/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("build request: %w", err)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("resolve session token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("GET /files/%s: %w", path, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return &cancelReadCloser{ReadCloser: resp.Body, cancel: cancel}, nil
	case resp.StatusCode == http.StatusUnauthorized:
		_ = resp.Body.Close()
		cancel()
		c.notifyUnauthorized()
		return nil, fmt.Errorf("GET /files/%s: %w", path, ErrUnauthorized)
	case resp.StatusCode == http.StatusNotFound:
		_ = resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("GET /files/%s: %w", path, ErrNotFound)
	default:
		_ = resp.Body.Close()
		cancel()
		return nil, &StatusError{Code: resp.StatusCode}
	}
}

type cancelReadCloser struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelReadCloser) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}
