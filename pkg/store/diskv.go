package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/peterbourgon/diskv/v3"
)

// FileStore is the whole-blob key/value contract the session persists
// through. Missing keys read as ("", false, nil). Writes create any
// intermediate path segments.
type FileStore interface {
	Read(ctx context.Context, key string) (string, bool, error)
	Write(ctx context.Context, key, text string) error
	ReadNested(ctx context.Context, path []string, key string) (string, bool, error)
	WriteNested(ctx context.Context, path []string, key, text string) error
}

// Persistence is a FileStore that can also list nested keys and report
// changes made outside the process.
type Persistence interface {
	FileStore
	List(ctx context.Context, path []string) ([]string, error)
	Watch(ctx context.Context) (<-chan Event, error)
	BasePath() string
}

var (
	// ErrInvalidKey rejects empty keys and segments that would escape the
	// store.
	ErrInvalidKey = errors.New("store: invalid key")
	// ErrWrite matches every *WriteError.
	ErrWrite = errors.New("store: write failed")
)

// WriteError reports a failed write. The store is left with either the old
// or the new content of Key, never a partial blob.
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("store: write %s: %v", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func (e *WriteError) Is(target error) bool { return target == ErrWrite }

const tempDir = ".tmp"

// Load creates a Persistence backed by diskv using the provided config.
// Option adjusts a store opened by Load.
type Option func(*persistence)

// WithLogger routes watcher diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(p *persistence) { p.logger = l }
}

func Load(cfg Config, opts ...Option) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	p := &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		TempDir:           filepath.Join(basePath, tempDir),
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		// The active document is edited outside the process too, so every
		// read goes to disk.
		CacheSizeMax: 0,
	}), basePath: basePath, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	logger   *log.Logger
}

func (p *persistence) BasePath() string {
	return p.basePath
}

func (p *persistence) Read(ctx context.Context, key string) (string, bool, error) {
	return p.ReadNested(ctx, nil, key)
}

func (p *persistence) Write(ctx context.Context, key, text string) error {
	return p.WriteNested(ctx, nil, key, text)
}

func (p *persistence) ReadNested(ctx context.Context, path []string, key string) (string, bool, error) {
	full, err := Join(path, key)
	if err != nil {
		return "", false, err
	}
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	val, err := p.d.Read(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("store: read %s: %w", full, err)
	}
	return string(val), true, nil
}

func (p *persistence) WriteNested(ctx context.Context, path []string, key, text string) error {
	full, err := Join(path, key)
	if err != nil {
		return &WriteError{Key: full, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return &WriteError{Key: full, Err: err}
	}
	if err := p.d.Write(full, []byte(text)); err != nil {
		return &WriteError{Key: full, Err: err}
	}
	return nil
}

// List returns the file names stored directly under path, sorted.
func (p *persistence) List(ctx context.Context, path []string) ([]string, error) {
	for _, seg := range path {
		if err := validSegment(seg); err != nil {
			return nil, err
		}
	}
	prefix := ""
	if len(path) > 0 {
		prefix = strings.Join(path, "/") + "/"
	}
	var names []string
	for key := range p.d.KeysPrefix(prefix, ctx.Done()) {
		pk := keyToPathTransform(key)
		if len(pk.Path) != len(path) || (len(pk.Path) > 0 && pk.Path[0] == tempDir) {
			continue
		}
		names = append(names, pk.FileName)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Join validates path and key and returns the flat key diskv stores them
// under, segments separated by "/".
func Join(path []string, key string) (string, error) {
	segs := append(append([]string(nil), path...), key)
	for _, seg := range segs {
		if err := validSegment(seg); err != nil {
			return strings.Join(segs, "/"), err
		}
	}
	return strings.Join(segs, "/"), nil
}

func validSegment(seg string) error {
	switch {
	case seg == "", seg == ".", seg == "..", seg == tempDir:
		return fmt.Errorf("%w: segment %q", ErrInvalidKey, seg)
	case strings.ContainsAny(seg, `/\`), strings.ContainsRune(seg, os.PathSeparator):
		return fmt.Errorf("%w: segment %q", ErrInvalidKey, seg)
	}
	return nil
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.Join(append(append([]string(nil), pathKey.Path...), pathKey.FileName), "/")
}
