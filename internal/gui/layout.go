package gui

import (
	"fmt"

	"github.com/jesseduffield/gocui"

	"github.com/oxker-go/oxker/internal/guistate"
)

const (
	viewHeader       = "header"
	viewContainers   = "containers"
	viewCommands     = "commands"
	viewLogs         = "logs"
	viewCharts       = "charts"
	viewPorts        = "ports"
	viewStatusLine   = "statusline"
	viewHelp         = "help"
	viewError        = "error"
	viewDelete       = "delete"
)

// layout is gocui's ManagerFunc: it re-derives every view's geometry from
// the terminal size and the current frame snapshot, and repopulates
// GuiState's region map so mouse hit-testing stays in sync (spec.md
// §4.5/§9).
func (gui *Gui) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	gui.GuiState.ClearRegions()

	f := buildFrame(gui.State, gui.GuiState, gui.Config.Colors, gui.Config.Keymap, gui.now())

	if err := gui.layoutHeader(g, f, maxX); err != nil {
		return err
	}

	bodyTop := 2
	bodyBottom := maxY - 2
	hasCommands := len(f.containers) > 0

	containersWidth := maxX - 1
	if hasCommands {
		containersWidth = maxX*9/10 - 1
	}
	if err := gui.layoutContainers(g, f, bodyTop, bodyBottom, containersWidth); err != nil {
		return err
	}
	if hasCommands {
		if err := gui.layoutCommands(g, f, bodyTop, bodyBottom, containersWidth+1, maxX-1); err != nil {
			return err
		}
	} else {
		g.DeleteView(viewCommands)
	}

	logsTop := bodyBottom + 1
	logsBottom := maxY - 1
	hasSelected := f.selectedItem != nil

	logsWidth := maxX - 1
	if hasSelected {
		logsWidth = maxX*3/4 - 1
	}
	if err := gui.layoutLogs(g, f, logsTop, logsBottom, logsWidth); err != nil {
		return err
	}
	if hasSelected {
		if err := gui.layoutChartsAndPorts(g, f, logsTop, logsBottom, logsWidth+1, maxX-1); err != nil {
			return err
		}
	} else {
		g.DeleteView(viewCharts)
		g.DeleteView(viewPorts)
	}

	if err := gui.layoutStatusLine(g, f, maxX, maxY); err != nil {
		return err
	}

	if err := gui.layoutPopups(g, f, maxX, maxY); err != nil {
		return err
	}

	return nil
}

func (gui *Gui) layoutHeader(g *gocui.Gui, f frameData, maxX int) error {
	v, isNew, err := setView(g, viewHeader, 0, 0, maxX-1, 1)
	if err != nil {
		return err
	}
	if isNew {
		v.Frame = false
	}
	v.Clear()

	spinner := " "
	if f.loading {
		spinner = spinnerGlyph(gui.GuiState.CurrentLoadingFrame())
	}
	fmt.Fprintf(v, "%s  %s", spinner, headerLine())

	offset := 3
	for _, c := range headerColumns() {
		gui.GuiState.SetRegion(c.region, guistate.Rect{X: offset, Y: 0, W: c.width, H: 1})
		offset += c.width
	}
	gui.GuiState.SetRegion(guistate.RegionHeaderHelp, guistate.Rect{X: 0, Y: 0, W: 2, H: 1})
	return nil
}

func (gui *Gui) layoutContainers(g *gocui.Gui, f frameData, top, bottom, right int) error {
	v, isNew, err := setView(g, viewContainers, 0, top, right, bottom)
	if err != nil {
		return err
	}
	if isNew {
		v.Title = "Containers"
		v.Highlight = true
	}
	v.Clear()

	selected := -1
	if f.hasSel {
		for i, item := range f.containers {
			if item.Id == f.selected {
				selected = i
				break
			}
		}
	}
	fmt.Fprint(v, renderContainers(f, selected))
	gui.GuiState.SetRegion(guistate.RegionPanelContainers, guistate.Rect{X: 0, Y: top, W: right, H: bottom - top})
	return nil
}

func (gui *Gui) layoutCommands(g *gocui.Gui, f frameData, top, bottom, left, right int) error {
	v, isNew, err := setView(g, viewCommands, left, top, right, bottom)
	if err != nil {
		return err
	}
	if isNew {
		v.Title = "Commands"
		v.Highlight = true
	}
	v.Clear()
	fmt.Fprint(v, renderCommands(f))
	gui.GuiState.SetRegion(guistate.RegionPanelCommands, guistate.Rect{X: left, Y: top, W: right - left, H: bottom - top})
	return nil
}

func (gui *Gui) layoutLogs(g *gocui.Gui, f frameData, top, bottom, right int) error {
	v, isNew, err := setView(g, viewLogs, 0, top, right, bottom)
	if err != nil {
		return err
	}
	if isNew {
		v.Title = "Logs"
		v.Wrap = false
	}
	v.Clear()
	height := bottom - top - 1
	if height < 1 {
		height = 1
	}
	fmt.Fprint(v, renderLogs(f, height))
	gui.GuiState.SetRegion(guistate.RegionPanelLogs, guistate.Rect{X: 0, Y: top, W: right, H: bottom - top})
	return nil
}

func (gui *Gui) layoutChartsAndPorts(g *gocui.Gui, f frameData, top, bottom, left, right int) error {
	mid := top + (bottom-top)*2/3
	cv, isNew, err := setView(g, viewCharts, left, top, right, mid)
	if err != nil {
		return err
	}
	if isNew {
		cv.Title = "Charts"
	}
	cv.Clear()
	fmt.Fprint(cv, renderCharts(f))

	pv, isNew, err := setView(g, viewPorts, left, mid+1, right, bottom)
	if err != nil {
		return err
	}
	if isNew {
		pv.Title = "Ports"
	}
	pv.Clear()
	fmt.Fprint(pv, renderPorts(f))
	return nil
}

func (gui *Gui) layoutStatusLine(g *gocui.Gui, f frameData, maxX, maxY int) error {
	v, isNew, err := setView(g, viewStatusLine, 0, maxY-2, maxX-1, maxY-1)
	if err != nil {
		return err
	}
	if isNew {
		v.Frame = false
	}
	v.Clear()

	switch {
	case f.has(guistate.StatusFilter):
		fmt.Fprint(v, renderFilter(f))
	case f.has(guistate.StatusSearchLogs):
		fmt.Fprint(v, renderSearch(f))
	default:
		if text, ok := renderInfo(f); ok {
			fmt.Fprint(v, text)
		} else {
			fmt.Fprint(v, "q quit  h help  / filter  e exec  s save logs  m mouse")
		}
	}
	return nil
}

func (gui *Gui) layoutPopups(g *gocui.Gui, f frameData, maxX, maxY int) error {
	if err := gui.layoutPopup(g, viewError, f.err != nil, renderError(f), maxX, maxY); err != nil {
		return err
	}
	if err := gui.layoutPopup(g, viewDelete, f.hasDelete, renderDeleteConfirm(f), maxX, maxY); err != nil {
		return err
	}
	if err := gui.layoutPopup(g, viewHelp, f.has(guistate.StatusHelp), renderHelp(f), maxX, maxY); err != nil {
		return err
	}
	return nil
}

func (gui *Gui) layoutPopup(g *gocui.Gui, name string, show bool, content string, maxX, maxY int) error {
	if !show {
		g.DeleteView(name)
		return nil
	}
	w, h := maxX*2/3, maxY/2
	x0, y0 := (maxX-w)/2, (maxY-h)/2
	v, isNew, err := setView(g, name, x0, y0, x0+w, y0+h)
	if err != nil {
		return err
	}
	if isNew {
		v.Wrap = true
		v.FgColor = gui.theme.popupBorder()
	}
	v.Clear()
	fmt.Fprint(v, content)
	if name == viewDelete {
		gui.GuiState.SetRegion(guistate.RegionDeleteYes, guistate.Rect{X: x0 + 2, Y: y0 + h - 2, W: 6, H: 1})
		gui.GuiState.SetRegion(guistate.RegionDeleteNo, guistate.Rect{X: x0 + 10, Y: y0 + h - 2, W: 6, H: 1})
	}
	if _, err := g.SetViewOnTop(name); err != nil {
		return err
	}
	return nil
}

// setView wraps gocui.Gui.SetView, reporting whether the view was just
// created (gocui.ErrUnknownView) so callers only set static properties
// once.
func setView(g *gocui.Gui, name string, x0, y0, x1, y1 int) (*gocui.View, bool, error) {
	v, err := g.SetView(name, x0, y0, x1, y1, 0)
	if err != nil {
		if err == gocui.ErrUnknownView {
			return v, true, nil
		}
		return nil, false, err
	}
	return v, false, nil
}
