package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/peterbourgon/diskv/v3"
)

const (
	collectionsDir = "collections"
	tempDir        = ".tmp"
	valueExt       = ".json"
)

// Diskv stores each key as one JSON file under <base>/collections.
type Diskv struct {
	d        *diskv.Diskv
	basePath string
}

// NewDiskv opens (creating if needed) a diskv tree rooted at basePath. A
// leading ~ is expanded to the home directory.
func NewDiskv(basePath string) (*Diskv, error) {
	expanded, err := homedir.Expand(basePath)
	if err != nil {
		return nil, fmt.Errorf("store: expand path %q: %w", basePath, err)
	}
	for _, dir := range []string{collectionsDir, tempDir} {
		if err := os.MkdirAll(filepath.Join(expanded, dir), 0o755); err != nil {
			return nil, fmt.Errorf("store: ensure base path: %w", err)
		}
	}
	return &Diskv{
		d: diskv.New(diskv.Options{
			BasePath:          expanded,
			TempDir:           filepath.Join(expanded, tempDir),
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			// No read cache: Reload has to observe writes made by other processes.
			CacheSizeMax: 0,
		}),
		basePath: expanded,
	}, nil
}

// BasePath is the expanded root directory, the one Watch observes.
func (s *Diskv) BasePath() string {
	return s.basePath
}

func (s *Diskv) Get(_ context.Context, key string) ([]byte, error) {
	val, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return val, nil
}

func (s *Diskv) Put(_ context.Context, key string, value []byte) error {
	if err := s.d.Write(key, value); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (s *Diskv) Delete(_ context.Context, key string) error {
	if err := s.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

func (s *Diskv) Keys(ctx context.Context) ([]string, error) {
	keys := make([]string, 0)
	for key := range s.d.KeysPrefix("", ctx.Done()) {
		keys = append(keys, key)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Diskv) Close() error { return nil }

func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{collectionsDir},
		FileName: key + valueExt,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.TrimSuffix(pathKey.FileName, valueExt)
}

// keyForPath maps a file under the diskv tree back to its key, or "" when the
// path is not a stored value.
func keyForPath(basePath, path string) string {
	rel, err := filepath.Rel(basePath, path)
	if err != nil {
		return ""
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	if len(parts) != 2 || parts[0] != collectionsDir {
		return ""
	}
	if !strings.HasSuffix(parts[1], valueExt) {
		return ""
	}
	return strings.TrimSuffix(parts[1], valueExt)
}
