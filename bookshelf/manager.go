package bookshelf

import (
	"fmt"

	"go.uber.org/zap"
)

// Shelf sequences user intents: mutate the Store, save, repaint, recount.
type Shelf struct {
	store   *Store
	persist *Persistence
	view    *Projector
	log     *zap.Logger

	filter  Predicate
	onCount func(int)
	onEdit  func(Form)
}

// NewShelf wires the parts together. A nil view skips painting.
func NewShelf(store *Store, persist *Persistence, view *Projector, log *zap.Logger) *Shelf {
	if log == nil {
		log = zap.NewNop()
	}
	if view == nil {
		view = NewProjector(nil, nil)
	}
	return &Shelf{store: store, persist: persist, view: view, log: log}
}

// OnCount registers the consumer of the collection length.
func (s *Shelf) OnCount(fn func(int)) { s.onCount = fn }

// OnEdit registers the consumer of edit prefills, called by the Edit hook of
// rendered units.
func (s *Shelf) OnEdit(fn func(Form)) { s.onEdit = fn }

// Open loads persisted state into the store and paints it.
func (s *Shelf) Open() error {
	books, err := s.persist.Load()
	if err != nil {
		return fmt.Errorf("load shelf: %w", err)
	}
	s.store.Load(books)
	s.log.Debug("shelf opened", zap.Int("books", len(books)))
	s.refresh()
	return nil
}

// SubmitAdd validates f and adds it as a new book.
func (s *Shelf) SubmitAdd(f Form) (Book, error) {
	b, err := s.store.Add(f.Title, f.Author, f.Year, f.IsComplete)
	if err != nil {
		return Book{}, err
	}
	s.commit("add")
	return b, nil
}

// ToggleComplete flips id's completion. Unknown ids are ignored.
func (s *Shelf) ToggleComplete(id int64) bool {
	if !s.store.ToggleComplete(id) {
		return false
	}
	s.commit("toggle")
	return true
}

// Delete removes id. Unknown ids are ignored.
func (s *Shelf) Delete(id int64) bool {
	if !s.store.Remove(id) {
		return false
	}
	s.commit("delete")
	return true
}

// Edit removes id and returns its values as a form prefill. Submitting the
// prefill through SubmitAdd completes the edit.
func (s *Shelf) Edit(id int64) (Form, bool) {
	b, ok := s.store.FindByID(id)
	if !ok {
		return Form{}, false
	}
	f := FormOf(b)
	if s.onEdit != nil {
		s.onEdit(f)
	}
	s.Delete(id)
	return f, true
}

// Update replaces id with f in one step.
func (s *Shelf) Update(id int64, f Form) (Book, error) {
	b, err := s.store.Replace(id, f.Title, f.Author, f.Year, f.IsComplete)
	if err != nil {
		return Book{}, err
	}
	s.commit("edit")
	return b, nil
}

// Search repaints with only the books whose title contains query. It does
// not touch the store.
func (s *Shelf) Search(query string) (incomplete, complete []Book) {
	s.filter = TitleContains(query)
	return s.paint()
}

// Show clears any search filter and repaints the whole shelf.
func (s *Shelf) Show() (incomplete, complete []Book) {
	s.filter = nil
	return s.paint()
}

// Find returns the book with id.
func (s *Shelf) Find(id int64) (Book, bool) { return s.store.FindByID(id) }

// Books returns the collection in insertion order.
func (s *Shelf) Books() []Book { return s.store.All() }

// Count returns the collection length.
func (s *Shelf) Count() int { return s.store.Len() }

// Import loads books into the store, either replacing the collection or
// appending them as new records with fresh ids and covers, then saves.
func (s *Shelf) Import(books []Book, appendMode bool) (int, error) {
	if !appendMode {
		s.store.Load(books)
		s.commit("import")
		return len(books), nil
	}
	for i, b := range books {
		if _, err := s.store.Insert(NewBook{Title: b.Title, Author: b.Author, Year: b.Year, IsComplete: b.IsComplete}); err != nil {
			s.commit("import")
			return i, fmt.Errorf("import book %d: %w", i, err)
		}
	}
	s.commit("import")
	return len(books), nil
}

func (s *Shelf) commit(op string) {
	if err := s.persist.Save(s.store.All()); err != nil {
		s.log.Warn("save shelf", zap.String("op", op), zap.Error(err))
	}
	s.filter = nil
	s.refresh()
}

func (s *Shelf) refresh() {
	s.paint()
	if s.onCount != nil {
		s.onCount(s.store.Len())
	}
}

func (s *Shelf) paint() (incomplete, complete []Book) {
	return s.view.Project(s.store.All(), s.filter, s.actions)
}

func (s *Shelf) actions(id int64) Actions {
	return Actions{
		ToggleComplete: func() { s.ToggleComplete(id) },
		Delete:         func() { s.Delete(id) },
		Edit:           func() { s.Edit(id) },
	}
}
