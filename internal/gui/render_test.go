package gui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oxker-go/oxker/internal/apperror"
	"github.com/oxker-go/oxker/internal/config"
	"github.com/oxker-go/oxker/internal/guistate"
	"github.com/oxker-go/oxker/internal/model"
)

func TestHeaderLineListsEveryColumn(t *testing.T) {
	line := headerLine()
	for _, c := range headerColumns() {
		assert.Contains(t, line, c.label)
	}
}

func TestContainerRowShowsDashWhenNoSamplesYet(t *testing.T) {
	item := model.NewContainerItem("abcdef123456", "web", "nginx", "Up 3 minutes", model.StateRunningHealthy, nil)
	row := containerRow(item)
	assert.Contains(t, row, "web")
	assert.Contains(t, row, "nginx")
	assert.Contains(t, row, "--") // no cpu/mem samples recorded yet
}

func TestRenderContainersHighlightsSelectedLine(t *testing.T) {
	a := model.NewContainerItem("1", "a", "img", "Up", model.StateRunningHealthy, nil)
	b := model.NewContainerItem("2", "b", "img", "Up", model.StateRunningHealthy, nil)
	f := frameData{containers: []*model.ContainerItem{a, b}}

	out := renderContainers(f, 1)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// header + 2 rows
	assert.Len(t, lines, 3)
}

func TestRenderCommandsEmptyWhenNoSelection(t *testing.T) {
	assert.Equal(t, "", renderCommands(frameData{hasCommands: false}))
}

func TestRenderCommandsMarksSelectedEntry(t *testing.T) {
	list := model.StatefulList[model.CommandKind]{Items: []model.CommandKind{model.CommandPause, model.CommandStop}}
	list.Start()
	f := frameData{hasCommands: true, selectedCommands: list}

	out := renderCommands(f)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], ">")
}

func TestRenderLogsEmptyWithoutSelection(t *testing.T) {
	assert.Equal(t, "", renderLogs(frameData{}, 10))
}

func TestRenderLogsWindowsAroundCursor(t *testing.T) {
	item := model.NewContainerItem("1", "a", "img", "Up", model.StateRunningHealthy, nil)
	for i := 0; i < 20; i++ {
		item.Logs.Append(model.LogLine{Styled: "line"})
	}
	f := frameData{selectedItem: item}

	out := renderLogs(f, 5)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 5)
}

func TestRenderPortsListsSortedPublishedAndUnpublished(t *testing.T) {
	item := model.NewContainerItem("1", "a", "img", "Up", model.StateRunningHealthy, []model.ContainerPort{
		{Private: 80, Public: 8080, IP: "0.0.0.0"},
		{Private: 22},
	})
	f := frameData{selectedItem: item}
	out := renderPorts(f)
	assert.Contains(t, out, "0.0.0.0:8080 -> 80")
	assert.Contains(t, out, "22 (unpublished)")
}

func TestRenderPortsNoneWhenEmpty(t *testing.T) {
	item := model.NewContainerItem("1", "a", "img", "Up", model.StateRunningHealthy, nil)
	f := frameData{selectedItem: item}
	assert.Equal(t, "no published ports", renderPorts(f))
}

func TestRenderErrorEmptyWithoutError(t *testing.T) {
	out := renderError(frameData{})
	assert.Equal(t, "", out)
}

func TestRenderErrorShowsDismissKey(t *testing.T) {
	f := frameData{
		err:    apperror.Exec("pause", assert.AnError),
		keymap: config.Keymap{"clear_error": {"c"}},
	}
	out := renderError(f)
	assert.Contains(t, out, "press c to dismiss")
}

func TestRenderDeleteConfirmEmptyWithoutTarget(t *testing.T) {
	assert.Equal(t, "", renderDeleteConfirm(frameData{hasDelete: false}))
}

func TestRenderDeleteConfirmNamesTarget(t *testing.T) {
	f := frameData{hasDelete: true, deleteTarget: "abcdef123456"}
	out := renderDeleteConfirm(f)
	assert.Contains(t, out, "abcdef12")
	assert.Contains(t, out, "confirm [y]")
	assert.Contains(t, out, "cancel [n]")
}

func TestRenderDeleteConfirmUsesConfiguredKeys(t *testing.T) {
	f := frameData{
		hasDelete:    true,
		deleteTarget: "abcdef123456",
		keymap:       config.Keymap{"delete_confirm": {"x"}, "delete_deny": {"z"}},
	}
	out := renderDeleteConfirm(f)
	assert.Contains(t, out, "confirm [x]")
	assert.Contains(t, out, "cancel [z]")
}

func TestRenderErrorJoinsMultipleDismissKeys(t *testing.T) {
	f := frameData{
		err:    apperror.Exec("pause", assert.AnError),
		keymap: config.Keymap{"clear_error": {"c", "C"}},
	}
	out := renderError(f)
	assert.Contains(t, out, "press c | C to dismiss")
}

func TestRenderFilterShowsFieldAndTerm(t *testing.T) {
	f := frameData{filter: model.Filter{By: model.FilterByImage, Term: "nginx"}}
	assert.Equal(t, "filter (image): nginx", renderFilter(f))
}

func TestRenderSearchShowsMatchPosition(t *testing.T) {
	f := frameData{logSearch: guistate.LogSearch{Term: "err", Matches: []int{1, 5, 9}, Cursor: 1}}
	assert.Equal(t, "search logs: err (2/3)", renderSearch(f))
}

func TestRenderSearchOmitsPositionWithoutMatches(t *testing.T) {
	f := frameData{logSearch: guistate.LogSearch{Term: "xyz"}}
	assert.Equal(t, "search logs: xyz", renderSearch(f))
}

func TestRenderInfoReportsAbsence(t *testing.T) {
	_, ok := renderInfo(frameData{hasInfo: false})
	assert.False(t, ok)
}

func TestRenderInfoReturnsText(t *testing.T) {
	text, ok := renderInfo(frameData{hasInfo: true, infoText: "saved logs to /tmp/x"})
	assert.True(t, ok)
	assert.Equal(t, "saved logs to /tmp/x", text)
}

func TestGocuiAttributeUnknownFallsBackToDefault(t *testing.T) {
	assert.NotPanics(t, func() { gocuiAttribute("not-a-colour") })
}

func TestPlotSeriesReportsCollectingWhenEmpty(t *testing.T) {
	out := plotSeries(nil, "cpu %", "cyan")
	assert.Contains(t, out, "collecting samples")
}
