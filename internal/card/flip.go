package card

import "sort"

// FlipSet tracks which rows show their back side, keyed by row id.
// A nil *FlipSet reads as empty.
type FlipSet struct {
	ids map[string]struct{}
}

// NewFlipSet creates a set, optionally pre-flipped
func NewFlipSet(ids ...string) *FlipSet {
	f := &FlipSet{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		f.ids[id] = struct{}{}
	}
	return f
}

// Toggle flips id and reports the new state
func (f *FlipSet) Toggle(id string) bool {
	if f.ids == nil {
		f.ids = make(map[string]struct{})
	}
	if _, ok := f.ids[id]; ok {
		delete(f.ids, id)
		return false
	}
	f.ids[id] = struct{}{}
	return true
}

// Has reports whether id is flipped
func (f *FlipSet) Has(id string) bool {
	if f == nil {
		return false
	}
	_, ok := f.ids[id]
	return ok
}

// Clear unflips every row
func (f *FlipSet) Clear() {
	f.ids = make(map[string]struct{})
}

// IDs returns the flipped ids in sorted order
func (f *FlipSet) IDs() []string {
	if f == nil {
		return []string{}
	}
	out := make([]string, 0, len(f.ids))
	for id := range f.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
