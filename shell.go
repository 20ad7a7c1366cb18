package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"bookshelf-manager/bookshelf"

	"golang.org/x/term"
)

// isTerminal reports whether r is an interactive terminal. Prompts are only
// printed for terminals so piped input produces clean output.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type shell struct {
	sc          *bufio.Scanner
	app         *application
	interactive bool
}

func (s *shell) prompt(format string, args ...any) {
	if s.interactive {
		fmt.Fprintf(s.app.out, format, args...)
	}
}

func (s *shell) readLine(format string, args ...any) (string, bool) {
	s.prompt(format, args...)
	if !s.sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.sc.Text()), true
}

func runShell(in io.Reader, a *application, interactive bool) {
	s := &shell{sc: bufio.NewScanner(in), app: a, interactive: interactive}

	if interactive {
		fmt.Fprintln(a.out, "Welcome to your bookshelf!")
		fmt.Fprintln(a.out, "Available commands:")
		fmt.Fprintln(a.out, "  Books: add book, edit book, delete book, toggle book")
		fmt.Fprintln(a.out, "  Browse: list books, search book, count")
		fmt.Fprintln(a.out, "  System: exit")
	}

	for {
		s.prompt("\n> ")
		if !s.sc.Scan() {
			break
		}
		cmd := strings.TrimSpace(s.sc.Text())

		switch cmd {
		case "add book":
			s.handleAddBook(bookshelf.Form{})
		case "edit book":
			s.handleEditBook()
		case "delete book":
			s.handleDeleteBook()
		case "toggle book":
			s.handleToggleBook()
		case "list books":
			s.handleListBooks()
		case "search book":
			s.handleSearchBook()
		case "count":
			a.printCount()
		case "exit":
			fmt.Fprintln(a.out, "Goodbye!")
			return
		case "":
			continue
		default:
			fmt.Fprintln(a.out, "Unknown command. Type one of the available commands listed above.")
		}
	}
}

// readForm prompts for every field, offering prefill values as defaults.
func (s *shell) readForm(prefill bookshelf.Form) (bookshelf.Form, bool) {
	f := prefill
	fields := []struct {
		label string
		value *string
	}{
		{"Title", &f.Title},
		{"Author", &f.Author},
		{"Year", &f.Year},
	}
	for _, field := range fields {
		label := field.label
		if *field.value != "" {
			label = fmt.Sprintf("%s [%s]", field.label, *field.value)
		}
		v, ok := s.readLine("%s: ", label)
		if !ok {
			return f, false
		}
		if v != "" {
			*field.value = v
		}
	}

	def := "y/N"
	if f.IsComplete {
		def = "Y/n"
	}
	v, ok := s.readLine("Finished reading? (%s): ", def)
	if !ok {
		return f, false
	}
	switch strings.ToLower(v) {
	case "y", "yes":
		f.IsComplete = true
	case "n", "no":
		f.IsComplete = false
	}
	return f, true
}

// handleAddBook keeps prompting until the form validates or input ends. It
// reports whether a book was added.
func (s *shell) handleAddBook(prefill bookshelf.Form) bool {
	for {
		f, ok := s.readForm(prefill)
		if !ok {
			return false
		}
		b, err := s.app.shelf.SubmitAdd(f)
		if err == nil {
			fmt.Fprintf(s.app.out, "Added book ID %d.\n", b.ID)
			s.app.printCount()
			return true
		}
		if !errors.Is(err, bookshelf.ErrValidation) {
			fmt.Fprintf(s.app.out, "Error adding book: %v\n", err)
			return false
		}
		fmt.Fprintf(s.app.out, "%v\n", err)
		prefill = f
	}
}

func (s *shell) readID() (int64, bool) {
	v, ok := s.readLine("Book ID: ")
	if !ok {
		return 0, false
	}
	id, err := parseID(v)
	if err != nil {
		fmt.Fprintln(s.app.out, err)
		return 0, false
	}
	return id, true
}

func (s *shell) handleEditBook() {
	id, ok := s.readID()
	if !ok {
		return
	}
	prefill, ok := s.app.shelf.Edit(id)
	if !ok {
		return
	}
	if s.handleAddBook(prefill) {
		return
	}

	// The book is already off the shelf; put the old values back.
	b, err := s.app.shelf.SubmitAdd(prefill)
	if err != nil {
		fmt.Fprintf(s.app.out, "Warning: edit not finished, book ID %d was removed: %v\n", id, err)
		return
	}
	fmt.Fprintf(s.app.out, "Edit not finished, book restored as ID %d.\n", b.ID)
	s.app.printCount()
}

func (s *shell) handleDeleteBook() {
	id, ok := s.readID()
	if !ok {
		return
	}
	if s.app.shelf.Delete(id) {
		fmt.Fprintf(s.app.out, "Deleted book ID %d.\n", id)
		s.app.printCount()
	}
}

func (s *shell) handleToggleBook() {
	id, ok := s.readID()
	if !ok {
		return
	}
	if s.app.shelf.ToggleComplete(id) {
		b, _ := s.app.shelf.Find(id)
		fmt.Fprintf(s.app.out, "Book '%s' marked %s.\n", b.Title, statusLabel(b.IsComplete))
		s.app.printCount()
	}
}

func (s *shell) handleListBooks() {
	s.app.shelf.Show()
	s.app.sink.Flush()
}

func (s *shell) handleSearchBook() {
	query, ok := s.readLine("Title: ")
	if !ok {
		return
	}
	incomplete, complete := s.app.shelf.Search(query)
	if len(incomplete)+len(complete) == 0 {
		fmt.Fprintf(s.app.out, "No books found matching '%s'.\n", query)
		return
	}
	fmt.Fprintf(s.app.out, "Found %d book(s) matching '%s':\n", len(incomplete)+len(complete), query)
	s.app.sink.Flush()
}
