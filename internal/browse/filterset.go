// internal/browse/filterset.go
package browse

// FilterSet holds the per-section filter states for one browsing session.
// States are created lazily on first access and persist until an explicit
// reset. Not safe for concurrent use; the owning engine serializes access.
type FilterSet struct {
	states map[string]*FilterState
}

// NewFilterSet creates an empty FilterSet.
func NewFilterSet() *FilterSet {
	return &FilterSet{states: map[string]*FilterState{}}
}

// Get returns the filter state for a section, creating the default state on
// first access.
func (fs *FilterSet) Get(group, member string) *FilterState {
	key := SectionKey(group, member)
	state, ok := fs.states[key]
	if !ok {
		def := DefaultFilterState()
		state = &def
		fs.states[key] = state
	}
	return state
}

// Reset returns a section's state to the defaults.
func (fs *FilterSet) Reset(group, member string) {
	def := DefaultFilterState()
	fs.states[SectionKey(group, member)] = &def
}

// ToggleTag flips one tag on a section's state.
func (fs *FilterSet) ToggleTag(group, member string, tag Tag) {
	state := fs.Get(group, member)
	if state.Tags[tag] {
		delete(state.Tags, tag)
	} else {
		state.Tags[tag] = true
	}
}
