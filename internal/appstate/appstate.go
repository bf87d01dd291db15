// Package appstate implements Application State (spec.md §4.1): the
// single, lock-guarded, authoritative mirror of the user-visible world.
// It is grounded on the teacher's ContainerMutex/StatsMutex discipline in
// pkg/commands/docker.go and pkg/commands/container.go, generalised to
// spec.md's inventory-reconcile, stats, logs, sort and filter contract.
package appstate

import (
	"sync"

	"github.com/oxker-go/oxker/internal/apperror"
	"github.com/oxker-go/oxker/internal/daemon"
	"github.com/oxker-go/oxker/internal/model"
	"github.com/oxker-go/oxker/internal/sanitise"
)

// State is the Application State. Its id map is nil in the zero value,
// so build one with New.
type State struct {
	mu sync.Mutex

	// daemonOrder is every known container in the order of the last
	// UpdateContainers call (ResetSort restores it from lastDaemonOrder).
	// Sort never reorders it: recomputeVisible sorts a copy.
	daemonOrder     []*model.ContainerItem
	lastDaemonOrder []*model.ContainerItem
	byID            map[model.ContainerId]*model.ContainerItem

	sortKey model.SortKey
	filter  model.Filter
	visible []*model.ContainerItem

	selectedID *model.ContainerId

	initialLogSweepDone bool

	err *apperror.AppError
}

// New returns an empty, ready-to-use Application State.
func New() *State {
	return &State{byID: map[model.ContainerId]*model.ContainerItem{}}
}

func (s *State) lock()   { s.mu.Lock() }
func (s *State) unlock() { s.mu.Unlock() }

// UpdateContainers reconciles the daemon's inventory into Application
// State (spec.md §4.1).
func (s *State) UpdateContainers(list []daemon.ContainerSummary) {
	s.lock()
	defer s.unlock()

	seen := make(map[model.ContainerId]struct{}, len(list))
	newOrder := make([]*model.ContainerItem, 0, len(list))

	for _, summary := range list {
		seen[summary.Id] = struct{}{}
		name := displayName(summary.Names)
		state := model.ParseState(summary.State, summary.Health)

		item, exists := s.byID[summary.Id]
		if !exists {
			item = model.NewContainerItem(summary.Id, name, summary.Image, summary.Status, state, summary.Ports)
			s.byID[summary.Id] = item
			newOrder = append(newOrder, item)
			if s.selectedID == nil {
				id := item.Id
				s.selectedID = &id
			}
			continue
		}

		item.Name = name
		item.Status = summary.Status
		item.Image = summary.Image
		item.Ports = summary.Ports
		item.SetState(state)
		newOrder = append(newOrder, item)
	}

	// Remove anything the daemon no longer reports, adjusting selection
	// leftwards per spec.md §8.
	removedIndex := -1
	for i, item := range s.daemonOrder {
		if _, ok := seen[item.Id]; !ok {
			delete(s.byID, item.Id)
			if s.selectedID != nil && *s.selectedID == item.Id {
				removedIndex = i
			}
		}
	}

	s.daemonOrder = newOrder
	s.lastDaemonOrder = append([]*model.ContainerItem(nil), newOrder...)

	if removedIndex >= 0 {
		s.selectAfterRemoval(removedIndex)
	}

	s.recomputeVisible()
}

// selectAfterRemoval implements spec.md §8's removal rule: the removed
// item (at index removedIndex in the pre-removal order) was selected, so
// the new selection is the previous index, clamped into the post-removal
// list (or cleared when it's now empty).
func (s *State) selectAfterRemoval(removedIndex int) {
	if len(s.daemonOrder) == 0 {
		s.selectedID = nil
		return
	}
	newIndex := removedIndex - 1
	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex > len(s.daemonOrder)-1 {
		newIndex = len(s.daemonOrder) - 1
	}
	id := s.daemonOrder[newIndex].Id
	s.selectedID = &id
}

func displayName(names []string) string {
	if len(names) == 0 {
		return ""
	}
	n := names[0]
	if len(n) > 0 && n[0] == '/' {
		n = n[1:]
	}
	return n
}

// UpdateStats appends a cpu/mem sample (when running) and overwrites
// mem_limit/rx/tx, per spec.md §4.1.
func (s *State) UpdateStats(id model.ContainerId, cpu, mem *float64, memLimit, rx, tx uint64) {
	s.lock()
	defer s.unlock()

	item, ok := s.byID[id]
	if !ok {
		return
	}
	if item.State.IsRunning() {
		if cpu != nil {
			item.CPUSeries.Push(*cpu)
		}
		if mem != nil {
			item.MemSeries.Push(*mem)
		}
	}
	item.MemLimit = memLimit
	item.RxBytes = rx
	item.TxBytes = tx
}

// UpdateLogs pushes new raw lines through the sanitiser and appends them
// to id's log buffer with sticky-tail semantics (spec.md §4.1).
func (s *State) UpdateLogs(id model.ContainerId, rawLines []string, mode sanitise.Mode, atUnix int64) {
	s.lock()
	defer s.unlock()

	item, ok := s.byID[id]
	if !ok {
		return
	}
	lines := make([]model.LogLine, len(rawLines))
	for i, raw := range rawLines {
		lines[i] = model.LogLine{Styled: sanitise.Line(raw, mode), AtUnix: atUnix}
	}
	item.Logs.Append(lines...)
	item.LastUpdatedUnixS = atUnix
}

// Sort stably reorders the visible list by key (spec.md §4.1).
func (s *State) Sort(key model.SortKey) {
	s.lock()
	defer s.unlock()
	s.sortKey = key
	s.recomputeVisible()
}

// ResetSort reverts to the order of the last UpdateContainers call.
func (s *State) ResetSort() {
	s.lock()
	defer s.unlock()
	s.sortKey = model.SortKey{Field: model.SortNone}
	s.daemonOrder = append([]*model.ContainerItem(nil), s.lastDaemonOrder...)
	s.recomputeVisible()
}

// SetFilter replaces the active filter's field and term.
func (s *State) SetFilter(by model.FilterBy, term string) {
	s.lock()
	defer s.unlock()
	s.filter = model.Filter{By: by, Term: term}
	s.recomputeVisible()
}

// FilterPush appends a character to the filter term.
func (s *State) FilterPush(ch rune) {
	s.lock()
	defer s.unlock()
	s.filter.Push(ch)
	s.recomputeVisible()
}

// FilterPop removes the last character of the filter term.
func (s *State) FilterPop() {
	s.lock()
	defer s.unlock()
	s.filter.Pop()
	s.recomputeVisible()
}

// FilterClear empties the filter term.
func (s *State) FilterClear() {
	s.lock()
	defer s.unlock()
	s.filter.Clear()
	s.recomputeVisible()
}

// FilterCycle moves the filter field forward or backward.
func (s *State) FilterCycle(forward bool) {
	s.lock()
	defer s.unlock()
	if forward {
		s.filter.By = s.filter.By.Next()
	} else {
		s.filter.By = s.filter.By.Previous()
	}
	s.recomputeVisible()
}

// CurrentFilter returns a copy of the active filter.
func (s *State) CurrentFilter() model.Filter {
	s.lock()
	defer s.unlock()
	return s.filter
}

// recomputeVisible rebuilds the visible slice from daemonOrder applying
// sortKey then filter, and preserves the selected id when it is still
// visible; otherwise selects the first visible item, or clears the
// selection when nothing is visible (spec.md §4.1/§8).
func (s *State) recomputeVisible() {
	ordered := append([]*model.ContainerItem(nil), s.daemonOrder...)
	model.Sort(ordered, s.sortKey)

	visible := make([]*model.ContainerItem, 0, len(ordered))
	for _, item := range ordered {
		if s.filter.Matches(item) {
			visible = append(visible, item)
		}
	}
	s.visible = visible

	if s.selectedID != nil {
		for _, item := range visible {
			if item.Id == *s.selectedID {
				return
			}
		}
	}
	if len(visible) == 0 {
		s.selectedID = nil
		return
	}
	id := visible[0].Id
	s.selectedID = &id
}

// VisibleContainers returns the current visible (sorted, filtered)
// slice. The caller must treat it as read-only; it is a fresh slice
// header over the live pointers, valid until the next mutation.
func (s *State) VisibleContainers() []*model.ContainerItem {
	s.lock()
	defer s.unlock()
	out := make([]*model.ContainerItem, len(s.visible))
	copy(out, s.visible)
	return out
}

// SelectContainer moves the selection to the container at visible index
// i, if in range.
func (s *State) SelectContainer(i int) {
	s.lock()
	defer s.unlock()
	if i < 0 || i >= len(s.visible) {
		return
	}
	id := s.visible[i].Id
	s.selectedID = &id
}

// MoveSelection moves the selection by delta within the visible list,
// saturating at the ends.
func (s *State) MoveSelection(delta int) {
	s.lock()
	defer s.unlock()
	if len(s.visible) == 0 {
		s.selectedID = nil
		return
	}
	idx := 0
	if s.selectedID != nil {
		for i, item := range s.visible {
			if item.Id == *s.selectedID {
				idx = i
				break
			}
		}
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx > len(s.visible)-1 {
		idx = len(s.visible) - 1
	}
	id := s.visible[idx].Id
	s.selectedID = &id
}

// GetSelectedContainerId returns the currently selected id, if any.
func (s *State) GetSelectedContainerId() (model.ContainerId, bool) {
	s.lock()
	defer s.unlock()
	if s.selectedID == nil {
		return "", false
	}
	return *s.selectedID, true
}

// GetSelectedIdStateName returns the selected container's state label.
func (s *State) GetSelectedIdStateName() (string, bool) {
	s.lock()
	defer s.unlock()
	if s.selectedID == nil {
		return "", false
	}
	item, ok := s.byID[*s.selectedID]
	if !ok {
		return "", false
	}
	return item.State.Label(), true
}

// Item returns the container with the given id, if known.
func (s *State) Item(id model.ContainerId) (*model.ContainerItem, bool) {
	s.lock()
	defer s.unlock()
	item, ok := s.byID[id]
	return item, ok
}

// AllIds returns every known container id, in daemon order.
func (s *State) AllIds() []model.ContainerId {
	s.lock()
	defer s.unlock()
	ids := make([]model.ContainerId, len(s.daemonOrder))
	for i, item := range s.daemonOrder {
		ids[i] = item.Id
	}
	return ids
}

// RunningIds returns the ids currently in a Running variant.
func (s *State) RunningIds() []model.ContainerId {
	s.lock()
	defer s.unlock()
	var ids []model.ContainerId
	for _, item := range s.daemonOrder {
		if item.State.IsRunning() {
			ids = append(ids, item.Id)
		}
	}
	return ids
}

// MoveCommandSelection moves the selected command within the currently
// selected container's per-state command list (spec.md §4.3.3, Commands
// panel focused).
func (s *State) MoveCommandSelection(delta int) {
	s.lock()
	defer s.unlock()
	item := s.selectedItemLocked()
	if item == nil {
		return
	}
	if delta >= 0 {
		item.Commands.Next(delta)
	} else {
		item.Commands.Previous(-delta)
	}
}

// SelectedCommand returns the command currently highlighted in the
// selected container's Commands panel.
func (s *State) SelectedCommand() (model.CommandKind, bool) {
	s.lock()
	defer s.unlock()
	item := s.selectedItemLocked()
	if item == nil {
		var zero model.CommandKind
		return zero, false
	}
	return item.Commands.SelectedItem()
}

// MoveLogCursor moves the selected container's log cursor by delta
// (spec.md §4.3.3, Logs panel focused).
func (s *State) MoveLogCursor(delta int) {
	s.lock()
	defer s.unlock()
	item := s.selectedItemLocked()
	if item == nil {
		return
	}
	item.Logs.MoveCursor(delta)
}

// JumpLogCursor moves the selected container's log cursor to line index
// i (Home/End bindings resolve i to 0 or len-1 before calling this).
func (s *State) JumpLogCursor(i int) {
	s.lock()
	defer s.unlock()
	item := s.selectedItemLocked()
	if item == nil {
		return
	}
	item.Logs.JumpTo(i)
}

// selectedItemLocked returns the currently selected container, or nil.
// Callers must already hold s.mu.
func (s *State) selectedItemLocked() *model.ContainerItem {
	if s.selectedID == nil {
		return nil
	}
	return s.byID[*s.selectedID]
}

// MarkInitialLogSweepDone records that the bootstrap full-history log
// fetch has completed for every container.
func (s *State) MarkInitialLogSweepDone() {
	s.lock()
	defer s.unlock()
	s.initialLogSweepDone = true
}

// Initialised reports whether every currently-running container has at
// least one cpu sample AND the initial log sweep has completed, per
// spec.md §4.1.
func (s *State) Initialised(allRunningIds []model.ContainerId) bool {
	s.lock()
	defer s.unlock()
	if !s.initialLogSweepDone {
		return false
	}
	for _, id := range allRunningIds {
		item, ok := s.byID[id]
		if !ok || item.CPUSeries.Len() == 0 {
			return false
		}
	}
	return true
}

// SetError records the last AppError and clears it only via ClearError.
func (s *State) SetError(err *apperror.AppError) {
	s.lock()
	defer s.unlock()
	s.err = err
}

// ClearError drops the last recorded error.
func (s *State) ClearError() {
	s.lock()
	defer s.unlock()
	s.err = nil
}

// CurrentError returns the last recorded error, if any.
func (s *State) CurrentError() (*apperror.AppError, bool) {
	s.lock()
	defer s.unlock()
	return s.err, s.err != nil
}
