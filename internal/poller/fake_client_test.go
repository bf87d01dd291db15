package poller

import (
	"context"
	"sync"

	"github.com/oxker-go/oxker/internal/daemon"
	"github.com/oxker-go/oxker/internal/model"
)

// fakeClient is a minimal daemon.Client double: it returns whatever the
// test configures and counts calls, grounded on the teacher's
// pkg/commands test doubles.
type fakeClient struct {
	mu sync.Mutex

	containers []daemon.ContainerSummary
	listErr    error

	stats    map[model.ContainerId]daemon.StatsSample
	statsErr error

	logs    map[model.ContainerId][][]byte
	logsErr error

	statsCalls int
	logCalls   int
}

func (c *fakeClient) ListContainers(ctx context.Context, all bool) ([]daemon.ContainerSummary, error) {
	return c.containers, c.listErr
}

func (c *fakeClient) Stats(ctx context.Context, id model.ContainerId, oneShot bool) (daemon.StatsSample, error) {
	c.mu.Lock()
	c.statsCalls++
	c.mu.Unlock()
	if c.statsErr != nil {
		return daemon.StatsSample{}, c.statsErr
	}
	return c.stats[id], nil
}

func (c *fakeClient) Logs(ctx context.Context, id model.ContainerId, timestamps bool, sinceUnix int64, stdout, stderr bool) ([][]byte, error) {
	c.mu.Lock()
	c.logCalls++
	c.mu.Unlock()
	if c.logsErr != nil {
		return nil, c.logsErr
	}
	// like the daemon, only a fetch from the start of history (since 0)
	// returns the configured lines; a later since sees nothing new.
	if sinceUnix != 0 {
		return nil, nil
	}
	return c.logs[id], nil
}

func (c *fakeClient) CreateExec(ctx context.Context, id model.ContainerId, opts daemon.ExecOptions) (string, error) {
	return "", nil
}
func (c *fakeClient) StartExec(ctx context.Context, execId string) (daemon.ExecSession, error) {
	return daemon.ExecSession{}, nil
}
func (c *fakeClient) ResizeExec(ctx context.Context, execId string, width, height uint) error {
	return nil
}
func (c *fakeClient) Pause(ctx context.Context, id model.ContainerId) error   { return nil }
func (c *fakeClient) Unpause(ctx context.Context, id model.ContainerId) error { return nil }
func (c *fakeClient) Start(ctx context.Context, id model.ContainerId) error  { return nil }
func (c *fakeClient) Stop(ctx context.Context, id model.ContainerId) error   { return nil }
func (c *fakeClient) Restart(ctx context.Context, id model.ContainerId) error { return nil }
func (c *fakeClient) Remove(ctx context.Context, id model.ContainerId) error { return nil }
func (c *fakeClient) Ping(ctx context.Context) error                        { return nil }
