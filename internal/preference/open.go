package preference

import (
	"fmt"
	"io"
	"time"
)

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend  string
	Path     string
	CacheTTL time.Duration
}

// Opened is a ready store together with its cleanup.
type Opened struct {
	Store Store
	// File is set for the file backend so callers can watch it.
	File   *FileStore
	Cached *CachedStore
	closer io.Closer
}

// Close releases backend resources.
func (o *Opened) Close() error {
	if o.closer == nil {
		return nil
	}
	return o.closer.Close()
}

// Open builds the store described by opts, wrapped in a CachedStore.
func Open(opts Options) (*Opened, error) {
	var (
		backend Store
		out     = &Opened{}
	)

	switch opts.Backend {
	case BackendSQLite:
		db, err := OpenSQLite(opts.Path)
		if err != nil {
			return nil, err
		}
		backend = db
		out.closer = db
	case BackendFile:
		if opts.Path == "" {
			return nil, fmt.Errorf("file preference path cannot be empty")
		}
		file := NewFileStore(opts.Path)
		backend = file
		out.File = file
	case BackendMemory, "":
		backend = NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown preference backend %q", opts.Backend)
	}

	out.Cached = NewCachedStore(backend, opts.CacheTTL)
	out.Store = out.Cached
	return out, nil
}
