package gui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/oxker-go/oxker/internal/appstate"
	"github.com/oxker-go/oxker/internal/config"
	"github.com/oxker-go/oxker/internal/daemon"
	"github.com/oxker-go/oxker/internal/guistate"
)

func TestBuildFrameSnapshotsSelectionAndCommands(t *testing.T) {
	state := appstate.New()
	state.UpdateContainers([]daemon.ContainerSummary{
		{Id: "1", Names: []string{"/web"}, State: "running"},
	})
	gs := guistate.New()

	f := buildFrame(state, gs, config.Colors{}, config.Keymap{}, time.Now())

	assert.Len(t, f.containers, 1)
	assert.True(t, f.hasSel)
	assert.True(t, f.hasCommands)
	assert.False(t, f.hasDelete)
	assert.False(t, f.hasInfo)
	assert.Nil(t, f.err)
}

func TestBuildFrameCarriesDeleteTargetAndInfo(t *testing.T) {
	state := appstate.New()
	gs := guistate.New()
	gs.SetDeleteTarget("abc")
	now := time.Now()
	gs.SetInfo("saved", time.Minute, now)

	f := buildFrame(state, gs, config.Colors{}, config.Keymap{}, now)

	assert.True(t, f.hasDelete)
	assert.Equal(t, "abc", string(f.deleteTarget))
	assert.True(t, f.hasInfo)
	assert.Equal(t, "saved", f.infoText)
}

func TestBuildFrameCarriesStatusSnapshot(t *testing.T) {
	state := appstate.New()
	gs := guistate.New()
	gs.AddStatus(guistate.StatusHelp)

	f := buildFrame(state, gs, config.Colors{}, config.Keymap{}, time.Now())
	assert.True(t, f.has(guistate.StatusHelp))
	assert.False(t, f.has(guistate.StatusError))
}
