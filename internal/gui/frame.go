package gui

import (
	"time"

	"github.com/oxker-go/oxker/internal/apperror"
	"github.com/oxker-go/oxker/internal/appstate"
	"github.com/oxker-go/oxker/internal/config"
	"github.com/oxker-go/oxker/internal/guistate"
	"github.com/oxker-go/oxker/internal/model"
)

// frameData is the Renderer's per-frame snapshot (spec.md §4.5): every
// value a draw pass needs, read once from Application State and GuiState
// through their own lock-guarded accessors so no single draw call holds
// either lock for longer than one field access.
type frameData struct {
	containers []*model.ContainerItem
	selected   model.ContainerId
	hasSel     bool

	selectedCommands model.StatefulList[model.CommandKind]
	hasCommands      bool

	selectedItem *model.ContainerItem

	filter model.Filter
	sort   model.SortKey

	panel   guistate.Panel
	status  map[guistate.Status]struct{}
	loading bool

	deleteTarget model.ContainerId
	hasDelete    bool

	logSearch guistate.LogSearch

	infoText string
	hasInfo  bool

	err    *apperror.AppError
	colors config.Colors
	keymap config.Keymap
}

func buildFrame(state *appstate.State, gs *guistate.State, colors config.Colors, keymap config.Keymap, now time.Time) frameData {
	f := frameData{
		containers: state.VisibleContainers(),
		filter:     state.CurrentFilter(),
		panel:      gs.CurrentPanel(),
		loading:    gs.IsLoading(),
		logSearch:  gs.CurrentLogSearch(),
		colors:     colors,
		keymap:     keymap,
	}

	if id, ok := state.GetSelectedContainerId(); ok {
		f.selected = id
		f.hasSel = true
		if item, ok := state.Item(id); ok {
			f.selectedItem = item
			f.selectedCommands = item.Commands
			f.hasCommands = true
		}
	}

	if id, ok := gs.CurrentDeleteTarget(); ok {
		f.deleteTarget = id
		f.hasDelete = true
	}

	if text, ok := gs.CurrentInfo(now); ok {
		f.infoText = text
		f.hasInfo = true
	}

	if err, ok := state.CurrentError(); ok {
		f.err = err
	}

	f.status = snapshotStatus(gs)

	return f
}

// snapshotStatus reads every Status bit via HasStatus rather than
// reaching into GuiState.Status directly, keeping the same
// single-field-access lock discipline as everything else here.
func snapshotStatus(gs *guistate.State) map[guistate.Status]struct{} {
	all := []guistate.Status{
		guistate.StatusInit,
		guistate.StatusHelp,
		guistate.StatusError,
		guistate.StatusDockerConnect,
		guistate.StatusDeleteConfirm,
		guistate.StatusFilter,
		guistate.StatusSearchLogs,
		guistate.StatusExec,
		guistate.StatusLogs,
	}
	out := make(map[guistate.Status]struct{}, len(all))
	for _, s := range all {
		if gs.HasStatus(s) {
			out[s] = struct{}{}
		}
	}
	return out
}

func (f frameData) has(s guistate.Status) bool {
	_, ok := f.status[s]
	return ok
}
