package bookshelf

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// StorageKey is the single key the whole collection is stored under.
const StorageKey = "BOOKSHELF_APPS"

// ErrMalformedState is returned by Load when the stored value is not a JSON
// array of books.
var ErrMalformedState = errors.New("malformed bookshelf state")

// KeyValue is the synchronous key-value store the shelf persists into.
type KeyValue interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Available() bool
}

// Persistence saves and loads the collection as one JSON blob.
type Persistence struct {
	kv        KeyValue
	available bool
	log       *zap.Logger
}

// NewPersistence probes kv once. When it is unavailable every Save and Load
// is a no-op for the life of the Persistence.
func NewPersistence(kv KeyValue, log *zap.Logger) *Persistence {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Persistence{kv: kv, log: log}
	p.available = kv != nil && kv.Available()
	if !p.available {
		log.Info("storage unavailable, shelf lives in memory only")
	}
	return p
}

// Available reports the result of the startup probe.
func (p *Persistence) Available() bool { return p.available }

// Save writes books under StorageKey.
func (p *Persistence) Save(books []Book) error {
	if !p.available {
		return nil
	}
	data, err := EncodeBooks(books)
	if err != nil {
		return err
	}
	if err := p.kv.Set(StorageKey, data); err != nil {
		return fmt.Errorf("write %s: %w", StorageKey, err)
	}
	p.log.Debug("shelf saved", zap.Int("books", len(books)))
	return nil
}

// Load reads the stored collection. A missing key yields an empty slice.
func (p *Persistence) Load() ([]Book, error) {
	if !p.available {
		return []Book{}, nil
	}
	raw, ok, err := p.kv.Get(StorageKey)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", StorageKey, err)
	}
	if !ok {
		return []Book{}, nil
	}
	books, err := DecodeBooks([]byte(raw))
	if err != nil {
		return nil, err
	}
	p.log.Debug("shelf loaded", zap.Int("books", len(books)))
	return books, nil
}

// EncodeBooks renders books the way JSON.stringify does: no HTML escaping
// and no trailing newline.
func EncodeBooks(books []Book) (string, error) {
	if books == nil {
		books = []Book{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(books); err != nil {
		return "", fmt.Errorf("encode shelf: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// DecodeBooks parses a stored collection. JSON null decodes to an empty
// slice.
func DecodeBooks(data []byte) ([]Book, error) {
	var books []Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}
