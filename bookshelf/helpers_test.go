package bookshelf

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"
)

// clockFrom returns a clock frozen at ms, so ids come out as ms, ms+1, ...
func clockFrom(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(
		WithIDSource(NewIDSource(clockFrom(1_000))),
		WithImagePicker(NewImagePicker(DefaultImages, rand.NewPCG(1, 2))),
	)
}

type appended struct {
	section Section
	unit    Unit
}

type fakeSink struct {
	clears int
	units  []appended
}

func (f *fakeSink) Clear() {
	f.clears++
	f.units = nil
}

func (f *fakeSink) Append(section Section, u Unit) {
	f.units = append(f.units, appended{section: section, unit: u})
}

func (f *fakeSink) titles(section Section) []string {
	var out []string
	for _, a := range f.units {
		if a.section == section {
			out = append(out, a.unit.Title)
		}
	}
	return out
}

func (f *fakeSink) unit(title string) (Unit, bool) {
	for _, a := range f.units {
		if a.unit.Title == title {
			return a.unit, true
		}
	}
	return Unit{}, false
}

// countingKV wraps MemoryKV and counts calls; it can be made unavailable or
// made to fail writes.
type countingKV struct {
	*MemoryKV
	unavailable bool
	failSet     bool
	probes      int
	sets        int
}

func newCountingKV() *countingKV { return &countingKV{MemoryKV: NewMemoryKV()} }

func (c *countingKV) Available() bool {
	c.probes++
	return !c.unavailable
}

func (c *countingKV) Set(key, value string) error {
	c.sets++
	if c.failSet {
		return errors.New("disk full")
	}
	return c.MemoryKV.Set(key, value)
}

func ids(books []Book) []int64 {
	out := make([]int64, 0, len(books))
	for _, b := range books {
		out = append(out, b.ID)
	}
	return out
}
