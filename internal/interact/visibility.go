package interact

// Visibility records which sections have entered the viewport. Once a
// section is visible it stays visible.
type Visibility struct {
	seen map[string]bool
}

// NewVisibility creates an empty tracker
func NewVisibility() *Visibility {
	return &Visibility{seen: make(map[string]bool)}
}

// Observe applies one intersection event and reports whether id is visible
func (v *Visibility) Observe(id string, intersecting bool) bool {
	if intersecting {
		v.seen[id] = true
	}
	return v.seen[id]
}

// Visible reports whether id has been seen
func (v *Visibility) Visible(id string) bool {
	return v.seen[id]
}

// Count returns the number of sections seen so far
func (v *Visibility) Count() int {
	return len(v.seen)
}

// Reset forgets every section, for a fresh configuration
func (v *Visibility) Reset() {
	v.seen = make(map[string]bool)
}
