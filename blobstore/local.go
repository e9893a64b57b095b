package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/time/rate"

	"github.com/RoyMachineLearning/SparkGBM/internal/mmap"
)

// LocalStore implements BlobStore on the local filesystem. Reads are
// memory-mapped; writes go through a temp file and rename, so a blob is
// never observable half-written.
type LocalStore struct {
	root    string
	limiter *rate.Limiter
}

// LocalOption configures a LocalStore.
type LocalOption func(*LocalStore)

// WithWriteLimit caps write throughput at bytesPerSec. Background matrix
// flushes use this to avoid starving training reads on the same disk.
func WithWriteLimit(bytesPerSec int) LocalOption {
	return func(s *LocalStore) {
		if bytesPerSec > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(bytesPerSec), bytesPerSec)
		}
	}
}

// NewLocalStore creates a LocalStore rooted at dir.
func NewLocalStore(dir string, opts ...LocalOption) *LocalStore {
	s := &LocalStore{root: dir}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open memory-maps the blob for reading.
func (s *LocalStore) Open(_ context.Context, name string) (Blob, error) {
	m, err := mmap.Open(filepath.Join(s.root, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &localBlob{m: m}, nil
}

// Create opens a temp file next to the target; Close renames it into place.
func (s *LocalStore) Create(_ context.Context, name string) (WritableBlob, error) {
	path := filepath.Join(s.root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, err
	}
	return &localWriter{store: s, f: f, path: path}, nil
}

// Put writes a complete blob atomically.
func (s *LocalStore) Put(ctx context.Context, name string, data []byte) error {
	w, err := s.Create(ctx, name)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// Delete removes a blob.
func (s *LocalStore) Delete(_ context.Context, name string) error {
	err := os.Remove(filepath.Join(s.root, name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// List returns the names of blobs with the given prefix.
func (s *LocalStore) List(_ context.Context, prefix string) ([]string, error) {
	if _, err := os.Stat(s.root); os.IsNotExist(err) {
		return nil, nil
	}

	var names []string
	err := filepath.WalkDir(s.root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		// Skip in-flight temp files from Create.
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if strings.HasPrefix(rel, prefix) {
			names = append(names, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

type localBlob struct {
	m *mmap.Mapping
}

func (b *localBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	data := b.m.Bytes()
	if off < 0 || off >= int64(len(data)) {
		return 0, io.EOF
	}
	n := copy(p, data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b *localBlob) Size() int64 {
	return int64(b.m.Size())
}

func (b *localBlob) Close() error {
	return b.m.Close()
}

func (b *localBlob) Bytes() ([]byte, error) {
	return b.m.Bytes(), nil
}

type localWriter struct {
	store *LocalStore
	f     *os.File
	path  string
}

func (w *localWriter) Write(p []byte) (int, error) {
	if lim := w.store.limiter; lim != nil {
		// Reserve in burst-sized chunks; a single huge write must not exceed
		// the limiter burst or WaitN fails outright.
		for rest := p; len(rest) > 0; {
			n := min(len(rest), lim.Burst())
			if err := lim.WaitN(context.Background(), n); err != nil {
				return 0, err
			}
			rest = rest[n:]
		}
	}
	return w.f.Write(p)
}

func (w *localWriter) Close() error {
	if err := w.f.Sync(); err != nil {
		_ = w.f.Close()
		_ = os.Remove(w.f.Name())
		return err
	}
	if err := w.f.Close(); err != nil {
		_ = os.Remove(w.f.Name())
		return err
	}
	return os.Rename(w.f.Name(), w.path)
}
