package model

import "strconv"

// StatefulList is an ordered sequence with an optional selected index, the
// way spec.md §3 describes. The zero value is an empty, unselected list.
type StatefulList[T any] struct {
	Items    []T
	Selected *int
}

// Len returns the number of items.
func (l *StatefulList[T]) Len() int {
	return len(l.Items)
}

// Title renders "i/n" (1-indexed) or "" when the list is empty.
func (l *StatefulList[T]) Title() string {
	if len(l.Items) == 0 {
		return ""
	}
	i := 0
	if l.Selected != nil {
		i = *l.Selected
	}
	return strconv.Itoa(i+1) + "/" + strconv.Itoa(len(l.Items))
}

// Start selects the first item, or clears the selection if empty.
func (l *StatefulList[T]) Start() {
	if len(l.Items) == 0 {
		l.Selected = nil
		return
	}
	l.setSelected(0)
}

// End selects the last item, or clears the selection if empty.
func (l *StatefulList[T]) End() {
	if len(l.Items) == 0 {
		l.Selected = nil
		return
	}
	l.setSelected(len(l.Items) - 1)
}

// Next advances the selection by n, saturating at the last item. A no-op
// on an empty list.
func (l *StatefulList[T]) Next(n int) {
	if len(l.Items) == 0 {
		l.Selected = nil
		return
	}
	cur := 0
	if l.Selected != nil {
		cur = *l.Selected
	}
	cur += n
	if cur > len(l.Items)-1 {
		cur = len(l.Items) - 1
	}
	l.setSelected(cur)
}

// Previous retreats the selection by n, saturating at the first item. A
// no-op on an empty list.
func (l *StatefulList[T]) Previous(n int) {
	if len(l.Items) == 0 {
		l.Selected = nil
		return
	}
	cur := 0
	if l.Selected != nil {
		cur = *l.Selected
	}
	cur -= n
	if cur < 0 {
		cur = 0
	}
	l.setSelected(cur)
}

// SelectedIndex returns the current index and whether one is selected.
func (l *StatefulList[T]) SelectedIndex() (int, bool) {
	if l.Selected == nil {
		return 0, false
	}
	return *l.Selected, true
}

// SelectedItem returns the currently selected item, if any.
func (l *StatefulList[T]) SelectedItem() (T, bool) {
	var zero T
	if l.Selected == nil || *l.Selected < 0 || *l.Selected >= len(l.Items) {
		return zero, false
	}
	return l.Items[*l.Selected], true
}

func (l *StatefulList[T]) setSelected(i int) {
	l.Selected = &i
}

// RemoveAt removes the item at index j, adjusting the selection per
// spec.md §8: if selection was i and j <= i, the new selection is
// min(i, len-1); if j > i, the selection is unchanged; if the list
// becomes empty, the selection is cleared.
func (l *StatefulList[T]) RemoveAt(j int) {
	if j < 0 || j >= len(l.Items) {
		return
	}
	l.Items = append(l.Items[:j], l.Items[j+1:]...)

	if len(l.Items) == 0 {
		l.Selected = nil
		return
	}
	if l.Selected == nil {
		return
	}
	i := *l.Selected
	if j <= i {
		newI := i - 1
		if newI < 0 {
			newI = 0
		}
		if newI > len(l.Items)-1 {
			newI = len(l.Items) - 1
		}
		l.setSelected(newI)
	}
}
