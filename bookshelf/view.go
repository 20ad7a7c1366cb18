package bookshelf

import "strings"

// Predicate selects books for display.
type Predicate func(Book) bool

// AcceptAll matches every book.
func AcceptAll(Book) bool { return true }

// TitleContains matches titles containing q, ignoring case and surrounding
// whitespace in q. An empty q matches everything.
func TitleContains(q string) Predicate {
	needle := strings.ToLower(strings.TrimSpace(q))
	return func(b Book) bool {
		return strings.Contains(strings.ToLower(b.Title), needle)
	}
}

// Partition filters books with pred (nil means AcceptAll) and splits the
// result by completion, keeping relative order.
func Partition(books []Book, pred Predicate) (incomplete, complete []Book) {
	if pred == nil {
		pred = AcceptAll
	}
	incomplete = []Book{}
	complete = []Book{}
	for _, b := range books {
		if !pred(b) {
			continue
		}
		if b.IsComplete {
			complete = append(complete, b)
		} else {
			incomplete = append(incomplete, b)
		}
	}
	return incomplete, complete
}

// Section names one of the two rendered lists.
type Section int

const (
	Incomplete Section = iota
	Complete
)

func (s Section) String() string {
	if s == Complete {
		return "complete"
	}
	return "incomplete"
}

// Actions are the per-book hooks a rendered unit exposes.
type Actions struct {
	ToggleComplete func()
	Delete         func()
	Edit           func()
}

// ActionFactory builds the hooks for the book with id.
type ActionFactory func(id int64) Actions

// Unit is what a sink receives for one book.
type Unit struct {
	ID         int64
	Title      string
	Author     string
	Year       int
	Image      string
	IsComplete bool
	Actions    Actions
}

// RenderFunc turns a book and its hooks into a unit.
type RenderFunc func(Book, Actions) Unit

// DefaultRender copies the book fields into a unit.
func DefaultRender(b Book, a Actions) Unit {
	return Unit{
		ID:         b.ID,
		Title:      b.Title,
		Author:     b.Author,
		Year:       b.Year,
		Image:      b.Image,
		IsComplete: b.IsComplete,
		Actions:    a,
	}
}

// Sink receives rendered units.
type Sink interface {
	Clear()
	Append(section Section, u Unit)
}

// Projector paints partitions into a Sink.
type Projector struct {
	sink   Sink
	render RenderFunc
}

// NewProjector returns a projector over sink. A nil render uses
// DefaultRender.
func NewProjector(sink Sink, render RenderFunc) *Projector {
	if render == nil {
		render = DefaultRender
	}
	return &Projector{sink: sink, render: render}
}

// Project clears the sink and appends every matching book to its section.
// It returns the two partitions it painted.
func (p *Projector) Project(books []Book, pred Predicate, actions ActionFactory) (incomplete, complete []Book) {
	incomplete, complete = Partition(books, pred)
	if p.sink == nil {
		return incomplete, complete
	}
	p.sink.Clear()
	for _, b := range incomplete {
		p.sink.Append(Incomplete, p.render(b, hooks(actions, b.ID)))
	}
	for _, b := range complete {
		p.sink.Append(Complete, p.render(b, hooks(actions, b.ID)))
	}
	return incomplete, complete
}

func hooks(actions ActionFactory, id int64) Actions {
	if actions == nil {
		return Actions{}
	}
	return actions(id)
}
