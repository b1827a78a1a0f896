// Package interact models the interactive behaviour of the live preview as
// small state machines that can be driven without a DOM. Runtime hands their
// parameters to the browser scripts, which follow the same transitions.
package interact

// DefaultSpyOffset is how far below the viewport top a section may start and
// still count as the current one
const DefaultSpyOffset = 96

// SpyState is the scroll-spy state
type SpyState int

const (
	SpyIdle SpyState = iota
	SpyTracking
)

func (s SpyState) String() string {
	if s == SpyTracking {
		return "tracking"
	}
	return "idle"
}

// SectionBox is the position of one section in page coordinates
type SectionBox struct {
	ID  string
	Top float64
}

// ScrollSpy tracks the section nearest the top of the viewport
type ScrollSpy struct {
	state    SpyState
	offset   float64
	sections []SectionBox
	active   string
}

// NewScrollSpy creates an idle spy. A non-positive offset uses DefaultSpyOffset.
func NewScrollSpy(offset float64) *ScrollSpy {
	if offset <= 0 {
		offset = DefaultSpyOffset
	}
	return &ScrollSpy{offset: offset}
}

// State returns the current state
func (s *ScrollSpy) State() SpyState {
	return s.state
}

// Active returns the active section id, or "" while idle
func (s *ScrollSpy) Active() string {
	return s.active
}

// Bind starts tracking sections and resolves the active one for scrollTop.
// Binding an empty list leaves the spy idle.
func (s *ScrollSpy) Bind(sections []SectionBox, scrollTop float64) string {
	s.sections = append([]SectionBox(nil), sections...)
	if len(s.sections) == 0 {
		s.Unbind()
		return ""
	}
	s.state = SpyTracking
	return s.OnScroll(scrollTop)
}

// Unbind stops tracking. Later scroll and resize events are ignored.
func (s *ScrollSpy) Unbind() {
	s.state = SpyIdle
	s.sections = nil
	s.active = ""
}

// OnScroll recomputes the active section: the last one whose top is at or
// above scrollTop plus the offset, or the first section when none is
func (s *ScrollSpy) OnScroll(scrollTop float64) string {
	if s.state != SpyTracking {
		return ""
	}
	active := s.sections[0].ID
	for _, box := range s.sections {
		if box.Top <= scrollTop+s.offset {
			active = box.ID
		}
	}
	s.active = active
	return active
}

// OnResize replaces the section positions after a layout change
func (s *ScrollSpy) OnResize(sections []SectionBox, scrollTop float64) string {
	if s.state != SpyTracking {
		return ""
	}
	return s.Bind(sections, scrollTop)
}
