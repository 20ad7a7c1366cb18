package bookshelf

import (
	"fmt"
	"io"
)

// Backend names accepted by OpenBackend.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// Backend is a KeyValue that must be closed when the process is done with it.
type Backend interface {
	KeyValue
	io.Closer
}

// OpenBackend opens the named backend at path. The memory backend ignores
// path.
func OpenBackend(kind, path string) (Backend, error) {
	switch kind {
	case BackendSQLite:
		return NewDatabase(path)
	case BackendBadger:
		return OpenBadger(path)
	case BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", kind)
	}
}
