package poller

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/oxker-go/oxker/internal/appstate"
	"github.com/oxker-go/oxker/internal/daemon"
	"github.com/oxker-go/oxker/internal/guistate"
	"github.com/oxker-go/oxker/internal/model"
)

func discardLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l.WithField("test", true)
}

func newTestPoller(client daemon.Client) (*Poller, *appstate.State, *guistate.State) {
	state := appstate.New()
	gs := guistate.New()
	p := New(client, state, gs, discardLogger())
	return p, state, gs
}

func TestBootstrapFetchesLogsAndWaitsForStats(t *testing.T) {
	client := &fakeClient{
		containers: []daemon.ContainerSummary{
			{Id: "1", Names: []string{"/a"}, State: "running"},
		},
		stats: map[model.ContainerId]daemon.StatsSample{
			"1": {CPU: daemon.CPUStats{TotalUsage: 100, SystemCPUUsage: 1000, OnlineCPUs: 1}, PreCPU: daemon.CPUStats{}},
		},
		logs: map[model.ContainerId][][]byte{"1": {[]byte("hello")}},
	}
	p, state, _ := newTestPoller(client)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := p.Bootstrap(ctx)
	assert.NoError(t, err)

	item, ok := state.Item("1")
	assert.True(t, ok)
	assert.Len(t, item.Logs.Lines, 1)
	assert.Equal(t, "hello", item.Logs.Lines[0].Styled)
}

func TestTriggerNowWakesRunLoopEarly(t *testing.T) {
	client := &fakeClient{
		containers: []daemon.ContainerSummary{
			{Id: "1", Names: []string{"/a"}, State: "running"},
		},
	}
	p, _, _ := newTestPoller(client)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = p.Run(ctx, time.Hour)
		close(done)
	}()

	// give Run a moment to reach its sleep, then wake it and cancel.
	time.Sleep(10 * time.Millisecond)
	p.TriggerNow()
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not exit after context cancellation")
	}
	// one poll on start, one more woken by TriggerNow long before the
	// hour-long interval would have elapsed.
	client.mu.Lock()
	statsCalls := client.statsCalls
	client.mu.Unlock()
	assert.GreaterOrEqual(t, statsCalls, 2)
}

func TestPollOnceReconcilesAndFetchesSelectedLogs(t *testing.T) {
	client := &fakeClient{
		containers: []daemon.ContainerSummary{
			{Id: "1", Names: []string{"/a"}, State: "running"},
		},
		stats: map[model.ContainerId]daemon.StatsSample{"1": {}},
		logs:  map[model.ContainerId][][]byte{"1": {[]byte("line1")}},
	}
	p, state, _ := newTestPoller(client)

	err := p.pollOnce(context.Background())
	assert.NoError(t, err)

	_, ok := state.GetSelectedContainerId()
	assert.True(t, ok)
	assert.Equal(t, 1, client.logCalls)
	assert.Equal(t, 1, client.statsCalls)
}
