package bookshelf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBooks() []Book {
	return []Book{
		{ID: 1, Title: "A", Author: "X", Year: 2001, IsComplete: false},
		{ID: 2, Title: "B", Author: "Y", Year: 1999, IsComplete: true},
		{ID: 3, Title: "Cantik Itu Luka", Author: "Eka Kurniawan", Year: 2002, IsComplete: false},
		{ID: 4, Title: "Ronggeng Dukuh Paruk", Author: "Ahmad Tohari", Year: 1982, IsComplete: true},
	}
}

func TestPartitionDefaultPredicate(t *testing.T) {
	books := sampleBooks()

	incomplete, complete := Partition(books, nil)

	assert.Len(t, append(incomplete, complete...), len(books))
	assert.ElementsMatch(t, ids(books), ids(append(incomplete, complete...)))
	for _, b := range incomplete {
		assert.False(t, b.IsComplete)
	}
	for _, b := range complete {
		assert.True(t, b.IsComplete)
	}
	assert.Equal(t, []int64{1, 3}, ids(incomplete))
	assert.Equal(t, []int64{2, 4}, ids(complete))
}

func TestPartitionIsPure(t *testing.T) {
	books := sampleBooks()
	snapshot := append([]Book(nil), books...)

	i1, c1 := Partition(books, TitleContains("a"))
	i2, c2 := Partition(books, TitleContains("a"))

	assert.Equal(t, i1, i2)
	assert.Equal(t, c1, c2)
	assert.Equal(t, snapshot, books)
}

func TestPartitionEmpty(t *testing.T) {
	incomplete, complete := Partition(nil, nil)
	assert.NotNil(t, incomplete)
	assert.NotNil(t, complete)
	assert.Empty(t, incomplete)
	assert.Empty(t, complete)
}

func TestSearchScenario(t *testing.T) {
	books := []Book{
		{ID: 1, Title: "A", Author: "X", Year: 2001, IsComplete: false},
		{ID: 2, Title: "B", Author: "Y", Year: 1999, IsComplete: true},
	}

	incomplete, complete := Partition(books, TitleContains("a"))

	assert.Equal(t, []Book{books[0]}, incomplete)
	assert.Empty(t, complete)
}

func TestTitleContains(t *testing.T) {
	b := Book{Title: "Laskar Pelangi"}

	assert.True(t, TitleContains("pelangi")(b))
	assert.True(t, TitleContains("  LASKAR ")(b))
	assert.True(t, TitleContains("")(b))
	assert.False(t, TitleContains("bumi")(b))
	assert.False(t, TitleContains("Hirata")(Book{Title: "Sang Pemimpi", Author: "Andrea Hirata"}), "only titles are searched")
}

func TestProjectorPaintsSink(t *testing.T) {
	sink := &fakeSink{}
	p := NewProjector(sink, nil)

	var hooked []int64
	actions := func(id int64) Actions {
		hooked = append(hooked, id)
		return Actions{Delete: func() {}}
	}

	p.Project(sampleBooks(), nil, actions)

	assert.Equal(t, 1, sink.clears)
	assert.Equal(t, []string{"A", "Cantik Itu Luka"}, sink.titles(Incomplete))
	assert.Equal(t, []string{"B", "Ronggeng Dukuh Paruk"}, sink.titles(Complete))
	assert.Equal(t, []int64{1, 3, 2, 4}, hooked)

	u, ok := sink.unit("Ronggeng Dukuh Paruk")
	require.True(t, ok)
	assert.Equal(t, int64(4), u.ID)
	assert.Equal(t, "Ahmad Tohari", u.Author)
	assert.Equal(t, 1982, u.Year)
	assert.True(t, u.IsComplete)
	assert.NotNil(t, u.Actions.Delete)
}

func TestProjectorRepaintClearsFirst(t *testing.T) {
	sink := &fakeSink{}
	p := NewProjector(sink, nil)

	p.Project(sampleBooks(), nil, nil)
	p.Project(sampleBooks(), TitleContains("luka"), nil)

	assert.Equal(t, 2, sink.clears)
	assert.Equal(t, []string{"Cantik Itu Luka"}, sink.titles(Incomplete))
	assert.Empty(t, sink.titles(Complete))
}

func TestProjectorCustomRender(t *testing.T) {
	sink := &fakeSink{}
	p := NewProjector(sink, func(b Book, a Actions) Unit {
		u := DefaultRender(b, a)
		u.Title = "[" + b.Title + "]"
		return u
	})

	p.Project([]Book{{ID: 1, Title: "A"}}, nil, nil)
	assert.Equal(t, []string{"[A]"}, sink.titles(Incomplete))
}

func TestProjectorWithoutSink(t *testing.T) {
	p := NewProjector(nil, nil)
	incomplete, complete := p.Project(sampleBooks(), nil, nil)
	assert.Len(t, incomplete, 2)
	assert.Len(t, complete, 2)
}

func TestSectionString(t *testing.T) {
	assert.Equal(t, "incomplete", Incomplete.String())
	assert.Equal(t, "complete", Complete.String())
}
