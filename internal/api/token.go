package api

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
)

// TokenSource supplies the bearer token attached to every request. The
// identity provider that issues and refreshes tokens is external; the client
// treats whatever the source returns as opaque.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type StaticTokenSource struct {
	token string
}

func NewStaticTokenSource(token string) *StaticTokenSource {
	return &StaticTokenSource{token: token}
}

func (s *StaticTokenSource) Token(context.Context) (string, error) {
	if s.token == "" {
		return "", fmt.Errorf("no session token configured")
	}
	return s.token, nil
}

// FileTokenSource re-reads the token file on every call so that an external
// refresher can rotate the token under a running client.
type FileTokenSource struct {
	path string

	mu     sync.Mutex
	cached string
}

func NewFileTokenSource(path string) *FileTokenSource {
	return &FileTokenSource{path: path}
}

func (s *FileTokenSource) Token(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if s.cached != "" {
			return s.cached, nil
		}
		return "", fmt.Errorf("read session token: %w", err)
	}
	s.cached = strings.TrimSpace(string(data))
	if s.cached == "" {
		return "", fmt.Errorf("session token file %s is empty", s.path)
	}
	return s.cached, nil
}
