package gui

import (
	"fmt"
	"strings"

	"github.com/jesseduffield/asciigraph"

	"github.com/oxker-go/oxker/internal/guistate"
	"github.com/oxker-go/oxker/internal/model"
	"github.com/oxker-go/oxker/internal/utils"
)

// headerColumn is one column of the Containers panel header: its label,
// display width, sortable field and the Region mouse clicks on it are
// registered under (spec.md §4.3.3, §4.5).
type headerColumn struct {
	label  string
	width  int
	field  model.SortField
	region guistate.Region
}

func headerColumns() []headerColumn {
	return []headerColumn{
		{"NAME", 20, model.SortName, guistate.RegionHeaderName},
		{"STATE", 10, model.SortState, guistate.RegionHeaderState},
		{"STATUS", 16, model.SortStatus, guistate.RegionHeaderStatus},
		{"CPU", 8, model.SortCpu, guistate.RegionHeaderCPU},
		{"MEM", 8, model.SortMemory, guistate.RegionHeaderMemory},
		{"ID", 10, model.SortId, guistate.RegionHeaderId},
		{"IMAGE", 20, model.SortImage, guistate.RegionHeaderImage},
		{"RX", 10, model.SortRx, guistate.RegionHeaderRx},
		{"TX", 10, model.SortTx, guistate.RegionHeaderTx},
	}
}

const chartWidth = 60
const chartHeight = 8

var spinnerFrames = []string{"|", "/", "-", "\\"}

func spinnerGlyph(frame int) string {
	return spinnerFrames[frame%len(spinnerFrames)]
}

// headerLine renders the fixed-width column headers shown above the
// Containers panel, per spec.md §4.5.
func headerLine() string {
	var b strings.Builder
	for _, c := range headerColumns() {
		b.WriteString(utils.WithPadding(c.label, c.width))
	}
	return b.String()
}

// containerRow renders one data row of the Containers panel.
func containerRow(item *model.ContainerItem) string {
	cpu := "--"
	if v, ok := item.LastCPU(); ok {
		cpu = utils.FormatCPUPercent(v)
	}
	mem := "--"
	if v, ok := item.LastMem(); ok {
		mem = utils.FormatCPUPercent(v)
	}

	state := colouredString(utils.WithPadding(item.State.Glyph()+" "+item.State.Label(), 10), item.State.Colour())

	cols := []string{
		utils.WithPadding(item.Name, 20),
		state,
		utils.WithPadding(item.Status, 16),
		utils.WithPadding(cpu, 8),
		utils.WithPadding(mem, 8),
		utils.WithPadding(item.Id.Short(), 10),
		utils.WithPadding(item.Image, 20),
		utils.WithPadding(utils.FormatDecimalBytes(item.RxBytes), 10),
		utils.WithPadding(utils.FormatDecimalBytes(item.TxBytes), 10),
	}
	return strings.Join(cols, "")
}

// renderContainers renders the Containers panel body: the header row
// plus one row per visible container, the selected one highlighted.
func renderContainers(f frameData, selectedLine int) string {
	var b strings.Builder
	b.WriteString(headerLine())
	b.WriteByte('\n')
	for i, item := range f.containers {
		row := containerRow(item)
		if i == selectedLine {
			row = colouredString(row, "cyan")
		}
		b.WriteString(row)
		b.WriteByte('\n')
	}
	return b.String()
}

// renderCommands renders the Commands panel: the per-state command list
// for the selected container, one per line, the highlighted one inverted.
func renderCommands(f frameData) string {
	if !f.hasCommands {
		return ""
	}
	var b strings.Builder
	selIdx, _ := f.selectedCommands.SelectedIndex()
	for i, cmd := range f.selectedCommands.Items {
		label := cmd.Label()
		if i == selIdx {
			label = colouredString("> "+label, "cyan")
		} else {
			label = "  " + label
		}
		b.WriteString(label)
		b.WriteByte('\n')
	}
	return b.String()
}

// renderLogs renders the Logs panel body for the selected container,
// highlighting the cursor line and any active log-search matches.
func renderLogs(f frameData, visibleHeight int) string {
	if f.selectedItem == nil {
		return ""
	}
	lines := f.selectedItem.Logs.Lines
	cursor := f.selectedItem.Logs.Cursor
	if len(lines) == 0 {
		return ""
	}

	start := cursor - visibleHeight + 1
	if start < 0 {
		start = 0
	}
	end := start + visibleHeight
	if end > len(lines) {
		end = len(lines)
	}

	matchSet := make(map[int]struct{}, len(f.logSearch.Matches))
	for _, m := range f.logSearch.Matches {
		matchSet[m] = struct{}{}
	}
	currentMatch, hasMatch := f.logSearch.CurrentMatch()

	var b strings.Builder
	for i := start; i < end; i++ {
		line := lines[i].Styled
		if _, ok := matchSet[i]; ok {
			if hasMatch && i == currentMatch {
				line = colouredString(line, "yellow")
			} else {
				line = colouredString(line, "magenta")
			}
		}
		if i == cursor {
			line = "> " + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// renderCharts renders the cpu/mem asciigraph charts for the selected
// container, grounded on the teacher's presentation.RenderStats.
func renderCharts(f frameData) string {
	if f.selectedItem == nil {
		return "no container selected"
	}
	cpuGraph := plotSeries(f.selectedItem.CPUSeries.Values(), "cpu %", f.colors.ChartCPU)
	memGraph := plotSeries(f.selectedItem.MemSeries.Values(), "mem %", f.colors.ChartMemory)
	return cpuGraph + "\n\n" + memGraph
}

func plotSeries(data []float64, caption, colorName string) string {
	if len(data) == 0 {
		return caption + ": collecting samples..."
	}
	max := 0.0
	for _, v := range data {
		if v > max {
			max = v
		}
	}
	graph := asciigraph.Plot(
		data,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Min(0),
		asciigraph.Max(max+0.01),
		asciigraph.Caption(fmt.Sprintf("%s (last: %.2f%%)", caption, data[len(data)-1])),
	)
	return colouredString(graph, colorName)
}

// renderPorts renders the selected container's published ports, sorted
// per model.SortPorts.
func renderPorts(f frameData) string {
	if f.selectedItem == nil {
		return ""
	}
	ports := append([]model.ContainerPort(nil), f.selectedItem.Ports...)
	model.SortPorts(ports)
	if len(ports) == 0 {
		return "no published ports"
	}
	var b strings.Builder
	for _, p := range ports {
		if p.HasPublic() {
			fmt.Fprintf(&b, "%s:%d -> %d\n", p.IP, p.Public, p.Private)
		} else {
			fmt.Fprintf(&b, "%d (unpublished)\n", p.Private)
		}
	}
	return b.String()
}

// renderHelp renders the Help popup: every bound action and its keys.
func renderHelp(f frameData) string {
	order := []string{"quit", "filter", "exec", "save_logs", "toggle_mouse", "help", "clear_error", "delete", "delete_confirm", "delete_deny"}
	var b strings.Builder
	b.WriteString("keybindings\n\n")
	for _, action := range order {
		keys, ok := f.keymap[action]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%-14s %s\n", action, strings.Join(keys, ", "))
	}
	b.WriteString("\npress h to close")
	return b.String()
}

// renderError renders the Error popup.
func renderError(f frameData) string {
	if f.err == nil {
		return ""
	}
	dismiss := keyLabel(f.keymap["clear_error"], "c")
	return fmt.Sprintf("%s\n\npress %s to dismiss", f.err.Error(), dismiss)
}

// renderDeleteConfirm renders the delete-confirmation popup. Its confirm/cancel
// labels are derived from the configured keymap (spec.md §7, §8 scenario 5),
// not hardcoded to "y"/"n".
func renderDeleteConfirm(f frameData) string {
	if !f.hasDelete {
		return ""
	}
	confirm := keyLabel(f.keymap["delete_confirm"], "y")
	deny := keyLabel(f.keymap["delete_deny"], "n")
	return fmt.Sprintf("delete container %s?\n\nconfirm [%s]   cancel [%s]", f.deleteTarget.Short(), confirm, deny)
}

// keyLabel renders a popup's dismissal keys: every configured key joined
// with " | ", falling back to fallback when none are configured.
func keyLabel(keys []string, fallback string) string {
	if len(keys) == 0 {
		return fallback
	}
	return strings.Join(keys, " | ")
}

// renderFilter renders the filter status line shown while Filter is
// active.
func renderFilter(f frameData) string {
	return fmt.Sprintf("filter (%s): %s", f.filter.By.String(), f.filter.Term)
}

// renderSearch renders the log-search status line.
func renderSearch(f frameData) string {
	pos := ""
	if len(f.logSearch.Matches) > 0 {
		pos = fmt.Sprintf(" (%d/%d)", f.logSearch.Cursor+1, len(f.logSearch.Matches))
	}
	return fmt.Sprintf("search logs: %s%s", f.logSearch.Term, pos)
}

// renderInfo renders the transient info box text, if any.
func renderInfo(f frameData) (string, bool) {
	if !f.hasInfo {
		return "", false
	}
	return f.infoText, true
}
