package bookshelf

import "time"

// IDSource hands out millisecond timestamps as ids. Two calls inside the same
// millisecond, or a clock that steps backwards, still yield increasing ids.
type IDSource struct {
	now  func() time.Time
	last int64
}

// NewIDSource returns a source driven by now. A nil now uses time.Now.
func NewIDSource(now func() time.Time) *IDSource {
	if now == nil {
		now = time.Now
	}
	return &IDSource{now: now}
}

// Next returns a fresh id.
func (s *IDSource) Next() int64 {
	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}

// Observe records an id handed out elsewhere (e.g. loaded from storage) so
// later ids never collide with it.
func (s *IDSource) Observe(id int64) {
	if id > s.last {
		s.last = id
	}
}
