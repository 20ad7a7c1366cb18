package bookshelf

import "strconv"

// Book is a single shelf record. The JSON layout is the one stored under
// StorageKey and must stay compatible with previously saved state.
type Book struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	Year       int    `json:"year"`
	Image      string `json:"image"`
	IsComplete bool   `json:"isComplete"`
}

// Form is the raw add/edit input as typed by the user.
type Form struct {
	Title      string
	Author     string
	Year       string
	IsComplete bool
}

// NewBook is a parsed and trimmed Form, ready to become a Book.
type NewBook struct {
	Title      string `json:"title" validate:"required"`
	Author     string `json:"author" validate:"required"`
	Year       int    `json:"year"`
	IsComplete bool   `json:"isComplete"`
}

// FormOf returns the form prefill for an existing book.
func FormOf(b Book) Form {
	return Form{
		Title:      b.Title,
		Author:     b.Author,
		Year:       strconv.Itoa(b.Year),
		IsComplete: b.IsComplete,
	}
}
