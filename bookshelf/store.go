package bookshelf

import (
	"strings"

	"go.uber.org/zap"
)

// Store owns the ordered book collection. It only mutates memory; saving and
// repainting are the Shelf's job.
type Store struct {
	books  []Book
	ids    *IDSource
	images *ImagePicker
	log    *zap.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithIDSource overrides the id source.
func WithIDSource(ids *IDSource) StoreOption {
	return func(s *Store) { s.ids = ids }
}

// WithImagePicker overrides the cover picker.
func WithImagePicker(p *ImagePicker) StoreOption {
	return func(s *Store) { s.images = p }
}

// WithLogger sets the logger used for mutation traces.
func WithLogger(log *zap.Logger) StoreOption {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// NewStore returns an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	if s.ids == nil {
		s.ids = NewIDSource(nil)
	}
	if s.images == nil {
		s.images = NewImagePicker(DefaultImages, nil)
	}
	return s
}

// Load replaces the collection with books, in order and unvalidated.
func (s *Store) Load(books []Book) {
	s.books = append(s.books[:0:0], books...)
	for _, b := range s.books {
		s.ids.Observe(b.ID)
	}
}

// Add validates the raw fields and appends a new book.
func (s *Store) Add(title, author, year string, isComplete bool) (Book, error) {
	nb, err := ParseForm(Form{Title: title, Author: author, Year: year, IsComplete: isComplete})
	if err != nil {
		return Book{}, err
	}
	return s.create(nb), nil
}

// Insert appends an already parsed book after trimming and validating it.
func (s *Store) Insert(nb NewBook) (Book, error) {
	nb.Title = strings.TrimSpace(nb.Title)
	nb.Author = strings.TrimSpace(nb.Author)
	if err := nb.check(); err != nil {
		return Book{}, err
	}
	return s.create(nb), nil
}

func (s *Store) create(nb NewBook) Book {
	b := Book{
		ID:         s.nextID(),
		Title:      nb.Title,
		Author:     nb.Author,
		Year:       nb.Year,
		Image:      s.images.Pick(),
		IsComplete: nb.IsComplete,
	}
	s.books = append(s.books, b)
	s.log.Debug("book added", zap.Int64("id", b.ID), zap.String("title", b.Title))
	return b
}

// nextID skips any id already present, which only happens when loaded
// state carries ids from the future.
func (s *Store) nextID() int64 {
	for {
		id := s.ids.Next()
		if s.indexOf(id) < 0 {
			return id
		}
	}
}

func (s *Store) indexOf(id int64) int {
	for i := range s.books {
		if s.books[i].ID == id {
			return i
		}
	}
	return -1
}

// FindByID returns the first book with id.
func (s *Store) FindByID(id int64) (Book, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Book{}, false
	}
	return s.books[i], true
}

// ToggleComplete flips the completion flag of id. It reports whether the
// book existed.
func (s *Store) ToggleComplete(id int64) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.books[i].IsComplete = !s.books[i].IsComplete
	s.log.Debug("book toggled", zap.Int64("id", id), zap.Bool("complete", s.books[i].IsComplete))
	return true
}

// Remove deletes id. It reports whether the book existed.
func (s *Store) Remove(id int64) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.books = append(s.books[:i], s.books[i+1:]...)
	s.log.Debug("book removed", zap.Int64("id", id))
	return true
}

// Replace edits a book by removing it and adding the new values as a fresh
// record: the result has a new id and cover and sits at the end. Invalid
// input leaves the collection untouched.
func (s *Store) Replace(id int64, title, author, year string, isComplete bool) (Book, error) {
	nb, err := ParseForm(Form{Title: title, Author: author, Year: year, IsComplete: isComplete})
	if err != nil {
		return Book{}, err
	}
	s.Remove(id)
	return s.create(nb), nil
}

// All returns a copy of the collection in insertion order.
func (s *Store) All() []Book {
	return append([]Book(nil), s.books...)
}

// Len returns the number of books.
func (s *Store) Len() int { return len(s.books) }
