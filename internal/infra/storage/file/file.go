// Package file implements a KeyedStore that keeps one JSON file per key.
// Writes made by other processes sharing the directory are reported through
// fsnotify.
package file

import (
	"context"
	"crypto/sha256"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"veluna/internal/domain/repository"
	"veluna/internal/errors"
)

const (
	fileExt    = ".json"
	tempPrefix = ".tmp-"

	// ExternalOrigin stamps change events written by another process. The
	// file system does not record who wrote a file.
	ExternalOrigin = "file"
)

// Store writes each key to <dir>/<escaped key>.json.
type Store struct {
	dir    string
	origin string
	mu     sync.Mutex

	// written holds the digest of the last content this store wrote per key;
	// removed keys map to the zero digest.
	written map[string]digest
}

type digest [sha256.Size]byte

var (
	_ repository.KeyedStore    = (*Store)(nil)
	_ repository.ChangeWatcher = (*Store)(nil)
)

// New creates the directory if needed and returns a store rooted at it.
func New(dir, origin string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("file storage directory is required")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create storage directory %s", dir)
	}

	return &Store{dir: dir, origin: origin, written: make(map[string]digest)}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+fileExt)
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, repository.ErrKeyNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", key)
	}

	return data, nil
}

// Set writes through a temp file and rename so readers never see a partial document.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, tempPrefix+"*")
	if err != nil {
		return errors.Wrapf(err, "create temp file for %s", key)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)

		return errors.Wrapf(err, "write %s", key)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)

		return errors.Wrapf(err, "close %s", key)
	}

	s.written[key] = sha256.Sum256(value)
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		_ = os.Remove(tmpName)

		return errors.Wrapf(err, "rename %s", key)
	}

	return nil
}

func (s *Store) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.written[key] = digest{}
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "remove %s", key)
	}

	return nil
}

func (s *Store) Origin() string {
	return s.origin
}

func (s *Store) Close() error {
	return nil
}

// Watch reports writes to the directory made by other processes until ctx is
// done. Events whose file content matches this store's last write are dropped.
func (s *Store) Watch(ctx context.Context) (<-chan repository.ChangeEvent, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create file watcher")
	}
	if err := watcher.Add(s.dir); err != nil {
		_ = watcher.Close()

		return nil, errors.Wrapf(err, "watch %s", s.dir)
	}

	out := make(chan repository.ChangeEvent, 16)
	go func() {
		defer close(out)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				key, foreign := s.foreignChange(event)
				if !foreign {
					continue
				}
				select {
				case out <- repository.ChangeEvent{Key: key, Origin: ExternalOrigin}:
				case <-ctx.Done():
					return
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return out, nil
}

// foreignChange maps a file event to its key and reports whether the current
// content differs from what this store last wrote.
func (s *Store) foreignChange(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return "", false
	}

	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, tempPrefix) || !strings.HasSuffix(name, fileExt) {
		return "", false
	}
	key, err := url.PathUnescape(strings.TrimSuffix(name, fileExt))
	if err != nil {
		return "", false
	}

	var current digest
	if data, err := os.ReadFile(event.Name); err == nil {
		current = sha256.Sum256(data)
	} else if !os.IsNotExist(err) {
		return "", false
	}

	s.mu.Lock()
	own, ok := s.written[key]
	s.mu.Unlock()

	return key, !ok || own != current
}
