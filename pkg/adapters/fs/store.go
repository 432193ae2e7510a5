// Package fs implements core.Store on a local directory: every key is one
// file named <key><ext>, replaced atomically on each write.
package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/aretw0/jot/pkg/core"
)

// ErrInvalidKey is returned for keys that cannot name a file in the store.
var ErrInvalidKey = errors.New("invalid key")

// Store implements core.Store using the filesystem.
type Store struct {
	Path   string
	config Config
	cache  *cache

	mu            sync.RWMutex
	watcherActive bool
}

// Config holds the configuration for the filesystem store.
type Config struct {
	Path         string
	Ext          string // File extension including the dot. Defaults to ".json".
	AutoInit     bool   // Create Path if it does not exist.
	ReadOnly     bool   // Reject writes with core.ErrReadOnly and never create Path.
	Logger       *slog.Logger
	ErrorHandler func(error) // Receives watcher failures.
}

// NewStore creates a new filesystem-backed store.
func NewStore(config Config) *Store {
	if config.Ext == "" {
		config.Ext = ".json"
	}
	if !strings.HasPrefix(config.Ext, ".") {
		config.Ext = "." + config.Ext
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		Path:   config.Path,
		config: config,
		cache:  newCache(),
	}
}

// Initialize makes sure the store directory is usable.
// A missing directory is created with AutoInit; in read-only mode it is
// tolerated and every key reads as absent.
func (s *Store) Initialize(ctx context.Context) error {
	info, err := os.Stat(s.Path)
	switch {
	case err == nil:
		if !info.IsDir() {
			return fmt.Errorf("data path is not a directory: %s", s.Path)
		}
		return nil
	case !os.IsNotExist(err):
		return fmt.Errorf("failed to stat data path: %w", err)
	case s.config.ReadOnly:
		s.config.Logger.Debug("data path missing, reading as empty", "path", s.Path)
		return nil
	case !s.config.AutoInit:
		return fmt.Errorf("data path does not exist: %s", s.Path)
	}

	if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	s.config.Logger.Debug("data directory created", "path", s.Path)
	return nil
}

// Get implements core.Store.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	path := s.pathFor(key)

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.cache.Delete(key)
			return "", core.ErrNotFound
		}
		return "", fmt.Errorf("failed to stat %s: %w", key, err)
	}

	if v, hit := s.cache.Get(key, info.ModTime(), info.Size()); hit {
		return v, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	s.cache.Set(key, cacheEntry{Value: string(data), ModTime: info.ModTime(), Size: info.Size()})
	return string(data), nil
}

// Set implements core.Store.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := validateKey(key); err != nil {
		return err
	}
	path := s.pathFor(key)

	if err := writeFileAtomic(path, []byte(value), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	if info, err := os.Stat(path); err == nil {
		s.cache.Set(key, cacheEntry{Value: value, ModTime: info.ModTime(), Size: info.Size()})
	} else {
		s.cache.Delete(key)
	}
	return nil
}

// Keys lists the stored keys in lexical order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list data directory: %w", err)
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if key, ok := s.keyFor(e.Name()); ok {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	return keys, nil
}

func (s *Store) pathFor(key string) string {
	return filepath.Join(s.Path, key+s.config.Ext)
}

// keyFor maps a file name (or path) back to its key.
func (s *Store) keyFor(name string) (string, bool) {
	base := filepath.Base(name)
	if isTempFile(base) || strings.HasPrefix(base, ".") {
		return "", false
	}
	key, found := strings.CutSuffix(base, s.config.Ext)
	if !found || key == "" {
		return "", false
	}
	return key, true
}

func validateKey(key string) error {
	switch {
	case key == "":
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	case strings.ContainsAny(key, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidKey, key)
	case strings.HasPrefix(key, "."):
		return fmt.Errorf("%w: %q is hidden", ErrInvalidKey, key)
	case isTempFile(key):
		return fmt.Errorf("%w: %q uses the reserved prefix", ErrInvalidKey, key)
	}
	return nil
}

var (
	_ core.Store     = (*Store)(nil)
	_ core.Watchable = (*Store)(nil)
)
