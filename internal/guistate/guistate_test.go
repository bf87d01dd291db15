package guistate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewStartsWithInitStatusAndContainersFocused(t *testing.T) {
	st := New()
	assert.True(t, st.HasStatus(StatusInit))
	assert.Equal(t, PanelContainers, st.CurrentPanel())
}

func TestStatusSetAddRemove(t *testing.T) {
	st := New()
	st.AddStatus(StatusHelp)
	assert.True(t, st.HasStatus(StatusHelp))
	st.RemoveStatus(StatusHelp)
	assert.False(t, st.HasStatus(StatusHelp))
}

func TestLoadingTokensTrackMultipleOwners(t *testing.T) {
	st := New()
	assert.False(t, st.IsLoading())

	st.StartLoading("poll")
	st.StartLoading("exec-probe")
	assert.True(t, st.IsLoading())

	st.StopLoading("poll")
	assert.True(t, st.IsLoading(), "still loading while exec-probe token is held")

	st.StopLoading("exec-probe")
	assert.False(t, st.IsLoading())
}

func TestLoadingFrameAdvances(t *testing.T) {
	st := New()
	assert.Equal(t, 0, st.CurrentLoadingFrame())
	st.AdvanceLoadingFrame()
	st.AdvanceLoadingFrame()
	assert.Equal(t, 2, st.CurrentLoadingFrame())
}

func TestInfoBoxExpiresByInjectedNow(t *testing.T) {
	st := New()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	st.SetInfo("saved logs", time.Second, base)

	text, ok := st.CurrentInfo(base.Add(500 * time.Millisecond))
	assert.True(t, ok)
	assert.Equal(t, "saved logs", text)

	_, ok = st.CurrentInfo(base.Add(2 * time.Second))
	assert.False(t, ok)

	// once expired the box stays cleared even if queried again "earlier"
	_, ok = st.CurrentInfo(base.Add(500 * time.Millisecond))
	assert.False(t, ok)
}

func TestRegionMapSetClearHitTest(t *testing.T) {
	st := New()
	st.SetRegion(RegionHeaderName, Rect{X: 0, Y: 0, W: 10, H: 1})
	st.SetRegion(RegionPanelLogs, Rect{X: 0, Y: 1, W: 80, H: 20})

	region, ok := st.HitTest(5, 0)
	assert.True(t, ok)
	assert.Equal(t, RegionHeaderName, region)

	region, ok = st.HitTest(5, 5)
	assert.True(t, ok)
	assert.Equal(t, RegionPanelLogs, region)

	_, ok = st.HitTest(500, 500)
	assert.False(t, ok)

	st.ClearRegions()
	_, ok = st.HitTest(5, 0)
	assert.False(t, ok)
}

func TestRectContainsBoundaries(t *testing.T) {
	r := Rect{X: 2, Y: 2, W: 3, H: 3}
	assert.True(t, r.Contains(2, 2))
	assert.True(t, r.Contains(4, 4))
	assert.False(t, r.Contains(5, 4))
	assert.False(t, r.Contains(1, 2))
}

func TestDeleteTargetSetClear(t *testing.T) {
	st := New()
	_, ok := st.CurrentDeleteTarget()
	assert.False(t, ok)

	st.SetDeleteTarget("abc123")
	id, ok := st.CurrentDeleteTarget()
	assert.True(t, ok)
	assert.Equal(t, "abc123", string(id))

	st.ClearDeleteTarget()
	_, ok = st.CurrentDeleteTarget()
	assert.False(t, ok)
}

func TestLogSearchPushPopClear(t *testing.T) {
	st := New()
	st.LogSearchPush('e')
	st.LogSearchPush('r')
	st.LogSearchPush('r')
	assert.Equal(t, "err", st.CurrentLogSearch().Term)

	st.LogSearchPop()
	assert.Equal(t, "er", st.CurrentLogSearch().Term)

	st.LogSearchClear()
	assert.Equal(t, "", st.CurrentLogSearch().Term)
	assert.Empty(t, st.CurrentLogSearch().Matches)
}

func TestLogSearchPopOnEmptyTermIsNoOp(t *testing.T) {
	st := New()
	st.LogSearchPop()
	assert.Equal(t, "", st.CurrentLogSearch().Term)
}

func TestSetLogSearchMatchesParksCursorAtMostRecent(t *testing.T) {
	st := New()
	st.SetLogSearchMatches([]int{3, 7, 12})
	assert.Equal(t, 2, st.CurrentLogSearch().Cursor)
	idx, ok := st.CurrentLogSearch().CurrentMatch()
	assert.True(t, ok)
	assert.Equal(t, 12, idx)

	st.SetLogSearchMatches(nil)
	assert.Equal(t, 0, st.CurrentLogSearch().Cursor)
	_, ok = st.CurrentLogSearch().CurrentMatch()
	assert.False(t, ok)
}

func TestLogSearchNextPreviousSaturate(t *testing.T) {
	st := New()
	st.SetLogSearchMatches([]int{1, 2, 3})
	assert.Equal(t, 2, st.CurrentLogSearch().Cursor)

	st.LogSearchNext()
	assert.Equal(t, 2, st.CurrentLogSearch().Cursor, "already at the last match")

	st.LogSearchPrevious()
	st.LogSearchPrevious()
	st.LogSearchPrevious()
	assert.Equal(t, 0, st.CurrentLogSearch().Cursor, "saturates at zero")
}

func TestCurrentMatchOutOfRangeCursorIsFalse(t *testing.T) {
	s := LogSearch{Matches: []int{1, 2}, Cursor: 5}
	_, ok := s.CurrentMatch()
	assert.False(t, ok)
}
