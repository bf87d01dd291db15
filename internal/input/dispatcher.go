package input

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oxker-go/oxker/internal/apperror"
	"github.com/oxker-go/oxker/internal/appstate"
	"github.com/oxker-go/oxker/internal/commandbus"
	"github.com/oxker-go/oxker/internal/guistate"
	"github.com/oxker-go/oxker/internal/model"
)

const pageStep = 7

// poller is the subset of *poller.Poller the dispatcher needs.
type poller interface {
	TriggerNow()
}

// Dispatcher is the Input Dispatcher. Build one with New; the zero value
// is not usable.
type Dispatcher struct {
	State  *appstate.State
	Gui    *guistate.State
	Bus    *commandbus.Bus
	Poller poller
	Log    *logrus.Entry

	// ToggleMouseCapture enables/disables terminal mouse reporting; owned
	// by internal/gui since it talks to the terminal directly.
	ToggleMouseCapture func(enable bool) error
	// SaveLogs writes the given container's current log buffer to disk
	// and returns the path written, per spec.md §6.
	SaveLogs func(id model.ContainerId) (string, error)
	// RequestExec attempts to hand off to the Exec Bridge (spec.md §4.6);
	// nil until gui.New sets it to the Renderer's exec request.
	RequestExec func(id model.ContainerId)
	// Quit sets the single atomic "running" flag to false (spec.md §5).
	Quit func()

	// ClearErrorKey is the configured key that dismisses the error popup
	// (spec.md §4.3 "clear (configured key)"); defaults to 'c'.
	ClearErrorKey rune

	// ConfirmDeleteKey/DenyDeleteKey are the configured keys that confirm
	// or cancel the delete-confirmation popup (spec.md §7's keymap
	// derivation, §8 scenario 5); default to 'y'/'n'.
	ConfirmDeleteKey rune
	DenyDeleteKey    rune

	// now is overridable in tests; defaults to time.Now.
	now func() time.Time

	mouseCaptureEnabled bool
	lastHeaderClick     *model.SortKey
}

const infoBoxTTL = 3 * time.Second

func New(state *appstate.State, gui *guistate.State, bus *commandbus.Bus, p poller, log *logrus.Entry) *Dispatcher {
	return &Dispatcher{
		State:               state,
		Gui:                 gui,
		Bus:                 bus,
		Poller:              p,
		Log:                 log,
		ClearErrorKey:       'c',
		ConfirmDeleteKey:    'y',
		DenyDeleteKey:       'n',
		now:                 time.Now,
		mouseCaptureEnabled: true,
	}
}

func (d *Dispatcher) nowFn() time.Time {
	if d.now != nil {
		return d.now()
	}
	return time.Now()
}

// HandleKey routes one keyboard event through the modal dispatch table
// (spec.md §4.3).
func (d *Dispatcher) HandleKey(ev KeyEvent) {
	exempt := d.Gui.HasStatus(guistate.StatusFilter) || d.Gui.HasStatus(guistate.StatusSearchLogs)
	if !exempt && d.isQuit(ev) {
		if d.Quit != nil {
			d.Quit()
		}
		return
	}

	switch {
	case d.Gui.HasStatus(guistate.StatusError):
		d.errorHandler(ev)
	case d.Gui.HasStatus(guistate.StatusHelp):
		d.helpHandler(ev)
	case d.Gui.HasStatus(guistate.StatusFilter):
		d.filterHandler(ev)
	case d.Gui.HasStatus(guistate.StatusDeleteConfirm):
		d.deleteHandler(ev)
	case d.Gui.HasStatus(guistate.StatusSearchLogs):
		d.searchHandler(ev)
	default:
		d.defaultHandler(ev)
	}
}

func (d *Dispatcher) isQuit(ev KeyEvent) bool {
	if ev.Key == KeyCtrlC {
		return true
	}
	return ev.Key == KeyRune && ev.Rune == 'q'
}

// errorHandler implements spec.md §4.3's "contains Error" row: clear
// (configured key) or quit; quit is already handled unconditionally in
// HandleKey.
func (d *Dispatcher) errorHandler(ev KeyEvent) {
	if ev.Key == KeyRune && ev.Rune == d.ClearErrorKey {
		d.Gui.RemoveStatus(guistate.StatusError)
		d.State.ClearError()
	}
}

// helpHandler implements the "contains Help" row: toggle help,
// mouse-capture toggle.
func (d *Dispatcher) helpHandler(ev KeyEvent) {
	if ev.Key != KeyRune {
		return
	}
	switch ev.Rune {
	case 'h':
		d.Gui.RemoveStatus(guistate.StatusHelp)
	case 'm':
		d.toggleMouseCapture()
	}
}

// filterHandler implements §4.3.1.
func (d *Dispatcher) filterHandler(ev KeyEvent) {
	switch ev.Key {
	case KeyEsc:
		d.State.FilterClear()
		d.Gui.RemoveStatus(guistate.StatusFilter)
	case KeyEnter:
		d.Gui.RemoveStatus(guistate.StatusFilter)
	case KeyBackspace:
		d.State.FilterPop()
	case KeyLeft:
		d.State.FilterCycle(false)
	case KeyRight:
		d.State.FilterCycle(true)
	case KeyRune:
		if ev.Rune == '/' {
			d.Gui.RemoveStatus(guistate.StatusFilter)
			return
		}
		if isPrintable(ev.Rune) {
			d.State.FilterPush(ev.Rune)
		}
	}
}

// deleteHandler implements the "contains DeleteConfirm" row, and is also
// reached directly by mouse clicks on the Yes/No popup buttons.
func (d *Dispatcher) deleteHandler(ev KeyEvent) {
	target, ok := d.Gui.CurrentDeleteTarget()
	if !ok {
		d.Gui.RemoveStatus(guistate.StatusDeleteConfirm)
		return
	}
	switch {
	case ev.Key == KeyEnter || (ev.Key == KeyRune && ev.Rune == d.ConfirmDeleteKey):
		d.Bus.Send(commandbus.Delete(target))
	case ev.Key == KeyEsc || (ev.Key == KeyRune && ev.Rune == d.DenyDeleteKey):
		d.Gui.ClearDeleteTarget()
		d.Gui.RemoveStatus(guistate.StatusDeleteConfirm)
	}
}

// searchHandler implements §4.3.2: maintain a term and the set of
// matching line indices; Up/Down move the cursor through matches only.
func (d *Dispatcher) searchHandler(ev KeyEvent) {
	switch ev.Key {
	case KeyEsc:
		d.Gui.LogSearchClear()
		d.Gui.RemoveStatus(guistate.StatusSearchLogs)
	case KeyEnter:
		d.Gui.RemoveStatus(guistate.StatusSearchLogs)
	case KeyBackspace:
		d.Gui.LogSearchPop()
		d.recomputeLogSearchMatches()
	case KeyUp:
		d.Gui.LogSearchPrevious()
	case KeyDown:
		d.Gui.LogSearchNext()
	case KeyRune:
		if isPrintable(ev.Rune) {
			d.Gui.LogSearchPush(ev.Rune)
			d.recomputeLogSearchMatches()
		}
	}
	if idx, ok := d.Gui.CurrentLogSearch().CurrentMatch(); ok {
		d.State.JumpLogCursor(idx)
	}
}

func (d *Dispatcher) recomputeLogSearchMatches() {
	term := strings.ToLower(d.Gui.CurrentLogSearch().Term)
	if term == "" {
		d.Gui.SetLogSearchMatches(nil)
		return
	}
	id, ok := d.State.GetSelectedContainerId()
	if !ok {
		d.Gui.SetLogSearchMatches(nil)
		return
	}
	item, ok := d.State.Item(id)
	if !ok {
		d.Gui.SetLogSearchMatches(nil)
		return
	}
	var matches []int
	for i, line := range item.Logs.Lines {
		if strings.Contains(strings.ToLower(line.Styled), term) {
			matches = append(matches, i)
		}
	}
	d.Gui.SetLogSearchMatches(matches)
}

// defaultHandler implements §4.3.3.
func (d *Dispatcher) defaultHandler(ev KeyEvent) {
	switch ev.Key {
	case KeyTab:
		d.cyclePanel(1)
		return
	case KeyBackTab:
		d.cyclePanel(-1)
		return
	case KeyUp:
		d.moveFocused(-1)
		return
	case KeyDown:
		d.moveFocused(1)
		return
	case KeyPgUp:
		d.moveFocused(-pageStep)
		return
	case KeyPgDn:
		d.moveFocused(pageStep)
		return
	case KeyHome:
		d.moveFocused(-(1 << 30))
		return
	case KeyEnd:
		d.moveFocused(1 << 30)
		return
	case KeyEnter:
		d.activateFocused()
		return
	}

	if ev.Key != KeyRune {
		if ev.Key == KeyF1 {
			d.enterFilter()
		}
		return
	}

	switch ev.Rune {
	case 'k':
		d.moveFocused(-1)
	case 'j':
		d.moveFocused(1)
	case '0':
		d.State.ResetSort()
	case '1':
		d.State.Sort(model.SortKey{Field: model.SortName})
	case '2':
		d.State.Sort(model.SortKey{Field: model.SortState})
	case '3':
		d.State.Sort(model.SortKey{Field: model.SortStatus})
	case '4':
		d.State.Sort(model.SortKey{Field: model.SortCpu})
	case '5':
		d.State.Sort(model.SortKey{Field: model.SortMemory})
	case '6':
		d.State.Sort(model.SortKey{Field: model.SortId})
	case '7':
		d.State.Sort(model.SortKey{Field: model.SortImage})
	case '8':
		d.State.Sort(model.SortKey{Field: model.SortRx})
	case '9':
		d.State.Sort(model.SortKey{Field: model.SortTx})
	case 'e':
		d.attemptExec()
	case 's':
		d.saveLogs()
	case 'm':
		d.toggleMouseCapture()
	case 'h':
		d.Gui.AddStatus(guistate.StatusHelp)
	case '/':
		d.enterFilter()
	}
}

func (d *Dispatcher) cyclePanel(dir int) {
	panels := []guistate.Panel{guistate.PanelContainers, guistate.PanelCommands, guistate.PanelLogs}
	if len(d.State.VisibleContainers()) == 0 {
		panels = []guistate.Panel{guistate.PanelContainers, guistate.PanelLogs}
	}
	cur := d.Gui.CurrentPanel()
	idx := 0
	for i, p := range panels {
		if p == cur {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(panels)) % len(panels)
	d.Gui.SelectPanel(panels[idx])
}

func (d *Dispatcher) moveFocused(delta int) {
	switch d.Gui.CurrentPanel() {
	case guistate.PanelContainers:
		d.State.MoveSelection(delta)
	case guistate.PanelCommands:
		d.State.MoveCommandSelection(delta)
	case guistate.PanelLogs:
		d.State.MoveLogCursor(delta)
	}
}

// activateFocused implements "Enter with Commands focused: send the
// selected command via Command Bus. Delete is routed to ConfirmDelete."
func (d *Dispatcher) activateFocused() {
	if d.Gui.CurrentPanel() != guistate.PanelCommands {
		return
	}
	id, ok := d.State.GetSelectedContainerId()
	if !ok {
		return
	}
	cmd, ok := d.State.SelectedCommand()
	if !ok {
		return
	}
	if cmd == model.CommandDelete {
		d.Bus.Send(commandbus.ConfirmDelete(id))
		return
	}
	d.Bus.Send(commandbus.Control(cmd, id))
}

func (d *Dispatcher) enterFilter() {
	d.Gui.AddStatus(guistate.StatusFilter)
	d.Poller.TriggerNow()
}

func (d *Dispatcher) attemptExec() {
	if d.RequestExec == nil {
		return
	}
	id, ok := d.State.GetSelectedContainerId()
	if !ok {
		return
	}
	d.RequestExec(id)
}

func (d *Dispatcher) saveLogs() {
	if d.SaveLogs == nil {
		return
	}
	id, ok := d.State.GetSelectedContainerId()
	if !ok {
		return
	}
	path, err := d.SaveLogs(id)
	if err != nil {
		d.State.SetError(apperror.SaveLogs(id.Short(), err))
		d.Gui.AddStatus(guistate.StatusError)
		return
	}
	d.Gui.SetInfo("saved logs to "+path, infoBoxTTL, d.nowFn())
}

func (d *Dispatcher) toggleMouseCapture() {
	if d.ToggleMouseCapture == nil {
		return
	}
	next := !d.mouseCaptureEnabled
	if err := d.ToggleMouseCapture(next); err != nil {
		d.State.SetError(apperror.MouseCapture(next, err))
		d.Gui.AddStatus(guistate.StatusError)
		return
	}
	d.mouseCaptureEnabled = next
}

// HandleMouse routes one mouse event (spec.md §4.3.3's mouse rules).
// Mouse events are valid only when no modal popup is active, except
// clicks on the DeleteConfirm Yes/No buttons.
func (d *Dispatcher) HandleMouse(ev MouseEvent) {
	if d.Gui.HasStatus(guistate.StatusDeleteConfirm) {
		if ev.Button != MouseLeft {
			return
		}
		region, ok := d.Gui.HitTest(ev.X, ev.Y)
		if !ok {
			return
		}
		switch region {
		case guistate.RegionDeleteYes:
			d.deleteHandler(KeyEvent{Key: KeyEnter})
		case guistate.RegionDeleteNo:
			d.deleteHandler(KeyEvent{Key: KeyEsc})
		}
		return
	}
	if d.anyPopupActive() {
		return
	}

	switch ev.Button {
	case MouseScrollUp:
		d.moveFocused(-1)
		return
	case MouseScrollDown:
		d.moveFocused(1)
		return
	}

	region, ok := d.Gui.HitTest(ev.X, ev.Y)
	if !ok {
		return
	}
	if field, ok := headerSortField(region); ok {
		d.cycleSort(field)
		return
	}
	switch region {
	case guistate.RegionPanelContainers:
		d.Gui.SelectPanel(guistate.PanelContainers)
	case guistate.RegionPanelCommands:
		d.Gui.SelectPanel(guistate.PanelCommands)
	case guistate.RegionPanelLogs:
		d.Gui.SelectPanel(guistate.PanelLogs)
	case guistate.RegionHeaderHelp:
		d.Gui.AddStatus(guistate.StatusHelp)
	}
}

func (d *Dispatcher) anyPopupActive() bool {
	for _, s := range []guistate.Status{guistate.StatusError, guistate.StatusHelp, guistate.StatusFilter, guistate.StatusSearchLogs} {
		if d.Gui.HasStatus(s) {
			return true
		}
	}
	return false
}

// cycleSort implements the header click rule: cycle Asc -> Desc ->
// unsorted. lastHeaderClick remembers which field/order the previous
// click left active, since Application State exposes sort only as a
// write (spec.md's FrameData is the sole authoritative read path).
func (d *Dispatcher) cycleSort(field model.SortField) {
	if d.lastHeaderClick != nil && d.lastHeaderClick.Field == field {
		switch d.lastHeaderClick.Order {
		case model.SortAsc:
			key := model.SortKey{Field: field, Order: model.SortDesc}
			d.lastHeaderClick = &key
			d.State.Sort(key)
		default:
			d.lastHeaderClick = nil
			d.State.ResetSort()
		}
		return
	}
	key := model.SortKey{Field: field, Order: model.SortAsc}
	d.lastHeaderClick = &key
	d.State.Sort(key)
}

func headerSortField(region guistate.Region) (model.SortField, bool) {
	switch region {
	case guistate.RegionHeaderName:
		return model.SortName, true
	case guistate.RegionHeaderState:
		return model.SortState, true
	case guistate.RegionHeaderStatus:
		return model.SortStatus, true
	case guistate.RegionHeaderCPU:
		return model.SortCpu, true
	case guistate.RegionHeaderMemory:
		return model.SortMemory, true
	case guistate.RegionHeaderId:
		return model.SortId, true
	case guistate.RegionHeaderImage:
		return model.SortImage, true
	case guistate.RegionHeaderRx:
		return model.SortRx, true
	case guistate.RegionHeaderTx:
		return model.SortTx, true
	default:
		return model.SortNone, false
	}
}

func isPrintable(r rune) bool {
	return r >= 0x20 && r != 0x7f
}
