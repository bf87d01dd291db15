// Package guistate holds GuiState (spec.md §3): the renderer/input
// dispatcher's shared view of popups, focus, the loading spinner and the
// mouse hit-test region map. It is locked on the same discipline as
// Application State (spec.md §5): a single mutex, held only for the
// duration of one field access, never across a suspension point.
package guistate

import (
	"sync"
	"time"

	"github.com/oxker-go/oxker/internal/model"
)

// Panel names one of the three focusable panels.
type Panel int

const (
	PanelContainers Panel = iota
	PanelCommands
	PanelLogs
)

// Status is one bit of the modal status set (spec.md §3/§4.3).
type Status int

const (
	StatusInit Status = iota
	StatusHelp
	StatusError
	StatusDockerConnect
	StatusDeleteConfirm
	StatusFilter
	StatusSearchLogs
	StatusExec
	StatusLogs
)

// Region is a mouse hit-test tag: a header column, a panel body, or a
// popup button.
type Region string

// The canonical region names the Renderer registers and the Input
// Dispatcher hit-tests against (spec.md §4.3.3, §4.5).
const (
	RegionHeaderName   Region = "header:name"
	RegionHeaderState  Region = "header:state"
	RegionHeaderStatus Region = "header:status"
	RegionHeaderCPU    Region = "header:cpu"
	RegionHeaderMemory Region = "header:memory"
	RegionHeaderId     Region = "header:id"
	RegionHeaderImage  Region = "header:image"
	RegionHeaderRx     Region = "header:rx"
	RegionHeaderTx     Region = "header:tx"
	RegionHeaderHelp   Region = "header:help"

	RegionPanelContainers Region = "panel:containers"
	RegionPanelCommands   Region = "panel:commands"
	RegionPanelLogs       Region = "panel:logs"

	RegionDeleteYes Region = "delete:yes"
	RegionDeleteNo  Region = "delete:no"
)

// Rect is a screen rectangle in (x, y, width, height) terminal cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) falls inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// InfoBox is a transient, self-expiring notice (spec.md SPEC_FULL.md
// supplement, grounded on original_source/src/ui/gui_state.rs).
type InfoBox struct {
	Text      string
	ExpiresAt time.Time
}

// LogSearch is the log search handler's state (spec.md §4.3.2): a term
// plus the set of matching line indices within the focused container's
// log buffer. The cursor only ever points at an entry of Matches.
type LogSearch struct {
	Term    string
	Matches []int
	Cursor  int
}

// CurrentMatch returns the log-line index the cursor currently points at.
func (s LogSearch) CurrentMatch() (int, bool) {
	if len(s.Matches) == 0 || s.Cursor < 0 || s.Cursor >= len(s.Matches) {
		return 0, false
	}
	return s.Matches[s.Cursor], true
}

// State is GuiState. Its maps are nil in the zero value, so build one
// with New (Containers focused, no popups, an empty region map).
type State struct {
	mu sync.Mutex

	SelectedPanel Panel
	Status        map[Status]struct{}
	LoadingTokens map[string]struct{}
	LoadingFrame  int
	InfoBox       *InfoBox
	DeleteTarget  *model.ContainerId
	RegionMap     map[Region]Rect
	LogSearch     LogSearch
}

func (st *State) lock()   { st.mu.Lock() }
func (st *State) unlock() { st.mu.Unlock() }

// New returns a freshly initialised GuiState with the Init status set,
// matching the teacher's startup status in pkg/gui/app_status_manager.go.
func New() *State {
	return &State{
		SelectedPanel: PanelContainers,
		Status:        map[Status]struct{}{StatusInit: {}},
		LoadingTokens: map[string]struct{}{},
		RegionMap:     map[Region]Rect{},
	}
}

// HasStatus reports whether s is currently in the status set.
func (st *State) HasStatus(s Status) bool {
	st.lock()
	defer st.unlock()
	_, ok := st.Status[s]
	return ok
}

// AddStatus adds s to the status set.
func (st *State) AddStatus(s Status) {
	st.lock()
	defer st.unlock()
	st.Status[s] = struct{}{}
}

// RemoveStatus removes s from the status set.
func (st *State) RemoveStatus(s Status) {
	st.lock()
	defer st.unlock()
	delete(st.Status, s)
}

// StartLoading registers a loading-animation token (spec.md §9: "keyed
// by opaque tokens so multiple concurrent operations can own a
// spinner").
func (st *State) StartLoading(token string) {
	st.lock()
	defer st.unlock()
	st.LoadingTokens[token] = struct{}{}
}

// StopLoading unregisters a loading-animation token.
func (st *State) StopLoading(token string) {
	st.lock()
	defer st.unlock()
	delete(st.LoadingTokens, token)
}

// IsLoading reports whether the spinner should be visible.
func (st *State) IsLoading() bool {
	st.lock()
	defer st.unlock()
	return len(st.LoadingTokens) > 0
}

// AdvanceLoadingFrame steps the spinner animation forward.
func (st *State) AdvanceLoadingFrame() {
	st.lock()
	defer st.unlock()
	st.LoadingFrame++
}

// CurrentLoadingFrame returns the spinner's current animation frame.
func (st *State) CurrentLoadingFrame() int {
	st.lock()
	defer st.unlock()
	return st.LoadingFrame
}

// SetInfo shows a transient notice that clears itself after ttl.
func (st *State) SetInfo(text string, ttl time.Duration, now time.Time) {
	st.lock()
	defer st.unlock()
	st.InfoBox = &InfoBox{Text: text, ExpiresAt: now.Add(ttl)}
}

// CurrentInfo returns the info box text if one is set and not yet
// expired (the caller supplies "now" so this stays free of wall-clock
// reads, matching the module's general avoidance of hidden clocks).
func (st *State) CurrentInfo(now time.Time) (string, bool) {
	st.lock()
	defer st.unlock()
	if st.InfoBox == nil {
		return "", false
	}
	if now.After(st.InfoBox.ExpiresAt) {
		st.InfoBox = nil
		return "", false
	}
	return st.InfoBox.Text, true
}

// SetRegion records a mouse hit-test rectangle for region, replacing any
// prior entry. The renderer repopulates the whole map once per frame.
func (st *State) SetRegion(region Region, rect Rect) {
	st.lock()
	defer st.unlock()
	st.RegionMap[region] = rect
}

// ClearRegions empties the region map. The renderer calls it at the start
// of every layout pass, so a resize also starts from an empty map.
func (st *State) ClearRegions() {
	st.lock()
	defer st.unlock()
	st.RegionMap = map[Region]Rect{}
}

// HitTest returns the region whose rectangle contains (x, y), if any.
func (st *State) HitTest(x, y int) (Region, bool) {
	st.lock()
	defer st.unlock()
	for region, rect := range st.RegionMap {
		if rect.Contains(x, y) {
			return region, true
		}
	}
	return "", false
}

// SelectPanel sets the focused panel.
func (st *State) SelectPanel(p Panel) {
	st.lock()
	defer st.unlock()
	st.SelectedPanel = p
}

// CurrentPanel returns the focused panel.
func (st *State) CurrentPanel() Panel {
	st.lock()
	defer st.unlock()
	return st.SelectedPanel
}

// SetDeleteTarget records which container a pending delete confirmation
// applies to.
func (st *State) SetDeleteTarget(id model.ContainerId) {
	st.lock()
	defer st.unlock()
	idCopy := id
	st.DeleteTarget = &idCopy
}

// CurrentDeleteTarget returns the pending delete confirmation target, if
// any.
func (st *State) CurrentDeleteTarget() (model.ContainerId, bool) {
	st.lock()
	defer st.unlock()
	if st.DeleteTarget == nil {
		return "", false
	}
	return *st.DeleteTarget, true
}

// ClearDeleteTarget drops the pending delete confirmation target.
func (st *State) ClearDeleteTarget() {
	st.lock()
	defer st.unlock()
	st.DeleteTarget = nil
}

// LogSearchPush appends a character to the search term. It leaves the
// match set as is; the caller recomputes it via SetLogSearchMatches.
func (st *State) LogSearchPush(ch rune) {
	st.lock()
	defer st.unlock()
	st.LogSearch.Term += string(ch)
}

// LogSearchPop removes the last character of the search term.
func (st *State) LogSearchPop() {
	st.lock()
	defer st.unlock()
	term := st.LogSearch.Term
	if term == "" {
		return
	}
	runes := []rune(term)
	st.LogSearch.Term = string(runes[:len(runes)-1])
}

// LogSearchClear resets the search term, matches and cursor.
func (st *State) LogSearchClear() {
	st.lock()
	defer st.unlock()
	st.LogSearch = LogSearch{}
}

// SetLogSearchMatches replaces the match set after the Input Dispatcher
// recomputes it against the focused container's log buffer, keeping the
// cursor at the end (the most recent match) per spec.md §4.3.2.
func (st *State) SetLogSearchMatches(matches []int) {
	st.lock()
	defer st.unlock()
	st.LogSearch.Matches = matches
	if len(matches) == 0 {
		st.LogSearch.Cursor = 0
		return
	}
	st.LogSearch.Cursor = len(matches) - 1
}

// CurrentLogSearch returns a copy of the current log search state.
func (st *State) CurrentLogSearch() LogSearch {
	st.lock()
	defer st.unlock()
	return st.LogSearch
}

// LogSearchNext/LogSearchPrevious move the cursor within Matches,
// saturating at the ends.
func (st *State) LogSearchNext() {
	st.lock()
	defer st.unlock()
	if len(st.LogSearch.Matches) == 0 {
		return
	}
	if st.LogSearch.Cursor < len(st.LogSearch.Matches)-1 {
		st.LogSearch.Cursor++
	}
}

func (st *State) LogSearchPrevious() {
	st.lock()
	defer st.unlock()
	if len(st.LogSearch.Matches) == 0 {
		return
	}
	if st.LogSearch.Cursor > 0 {
		st.LogSearch.Cursor--
	}
}
