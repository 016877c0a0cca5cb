package cache

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache is the single-user backend: one JSON file per key under a cache
// directory, each wrapped in an envelope carrying its expiry.
type FileCache struct {
	dir string
}

type fileEnvelope struct {
	ExpiresAt time.Time `json:"expires_at"`
	Data      []byte    `json:"data"`
}

func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

func (f *FileCache) path(key string) string {
	name := base64.RawURLEncoding.EncodeToString([]byte(key)) + ".json"
	return filepath.Join(f.dir, name)
}

func (f *FileCache) Get(_ context.Context, key string) ([]byte, bool) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		return nil, false
	}
	var env fileEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		// Corrupt entries read as absent.
		_ = os.Remove(f.path(key))
		return nil, false
	}
	if !env.ExpiresAt.IsZero() && time.Now().After(env.ExpiresAt) {
		_ = os.Remove(f.path(key))
		return nil, false
	}
	return env.Data, true
}

func (f *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) {
	env := fileEnvelope{Data: data}
	if ttl > 0 {
		env.ExpiresAt = time.Now().Add(ttl)
	}
	encoded, err := json.Marshal(env)
	if err != nil {
		return
	}
	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, encoded, 0o600); err != nil {
		return
	}
	_ = os.Rename(tmp, f.path(key))
}

func (f *FileCache) Delete(_ context.Context, key string) {
	_ = os.Remove(f.path(key))
}
