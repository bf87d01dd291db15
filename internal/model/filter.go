package model

import "strings"

// FilterBy names the field a Filter matches against.
type FilterBy int

const (
	FilterByName FilterBy = iota
	FilterByImage
	FilterByStatus
	FilterByAll
)

// Next cycles Name -> Image -> Status -> All -> Name.
func (f FilterBy) Next() FilterBy {
	return (f + 1) % 4
}

// Previous cycles the other way.
func (f FilterBy) Previous() FilterBy {
	return (f + 3) % 4
}

func (f FilterBy) String() string {
	switch f {
	case FilterByName:
		return "name"
	case FilterByImage:
		return "image"
	case FilterByStatus:
		return "status"
	default:
		return "all"
	}
}

// Filter selects which containers are visible. An empty Term means the
// filter is inactive and everything is visible (spec.md §3).
type Filter struct {
	By   FilterBy
	Term string
}

// Active reports whether the filter currently hides anything.
func (f Filter) Active() bool {
	return f.Term != ""
}

// Matches reports whether the filter selects this item. Matching is a
// case-insensitive substring match against the chosen field(s) — the
// Open Question decision recorded in DESIGN.md.
func (f Filter) Matches(item *ContainerItem) bool {
	if !f.Active() {
		return true
	}
	needle := strings.ToLower(f.Term)
	switch f.By {
	case FilterByName:
		return strings.Contains(strings.ToLower(item.Name), needle)
	case FilterByImage:
		return strings.Contains(strings.ToLower(item.Image), needle)
	case FilterByStatus:
		return strings.Contains(strings.ToLower(item.Status), needle)
	default: // FilterByAll
		return strings.Contains(strings.ToLower(item.Name), needle) ||
			strings.Contains(strings.ToLower(item.Image), needle) ||
			strings.Contains(strings.ToLower(item.Status), needle)
	}
}

// Push appends a character to the filter term.
func (f *Filter) Push(ch rune) {
	f.Term += string(ch)
}

// Pop removes the last character of the filter term, if any.
func (f *Filter) Pop() {
	if f.Term == "" {
		return
	}
	runes := []rune(f.Term)
	f.Term = string(runes[:len(runes)-1])
}

// Clear empties the filter term (but keeps the chosen field).
func (f *Filter) Clear() {
	f.Term = ""
}
