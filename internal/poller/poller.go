// Package poller implements the Poller (spec.md §4.2): it keeps
// Application State fresh by periodically reconciling the daemon's
// inventory and fanning out per-container stat/log fetches, grounded on
// the teacher's pkg/commands/docker.go
// (MonitorClientContainerStats/createClientStatMonitor/
// RefreshContainersAndServices).
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oxker-go/oxker/internal/appstate"
	"github.com/oxker-go/oxker/internal/daemon"
	"github.com/oxker-go/oxker/internal/guistate"
	"github.com/oxker-go/oxker/internal/model"
	"github.com/oxker-go/oxker/internal/sanitise"
)

const bootstrapLoadingToken = "bootstrap"

// Poller periodically reconciles the daemon view into Application State.
type Poller struct {
	Client       daemon.Client
	State        *appstate.State
	Gui          *guistate.State
	Log          *logrus.Entry
	SanitiseMode sanitise.Mode

	// ShowStderr controls whether stderr lines are included in the log
	// fetches (spec.md §6 "no_stderr").
	ShowStderr bool
	Timestamps bool

	// now is overridable in tests; defaults to time.Now.
	now func() time.Time

	trigger chan struct{}
}

func New(client daemon.Client, state *appstate.State, gui *guistate.State, log *logrus.Entry) *Poller {
	return &Poller{
		Client:     client,
		State:      state,
		Gui:        gui,
		Log:        log,
		ShowStderr: true,
		Timestamps: true,
		now:        time.Now,
		trigger:    make(chan struct{}, 1),
	}
}

// TriggerNow wakes a sleeping Run loop for an out-of-band poll, used by the
// Command Bus's Update message and the Input Dispatcher's filter-entry
// shortcut (spec.md §4.3.3, §4.4).
func (p *Poller) TriggerNow() {
	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

// Run loops forever, polling at `interval`, until ctx is cancelled
// (spec.md §4.2, §5).
func (p *Poller) Run(ctx context.Context, interval time.Duration) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		start := p.nowFn()
		if err := p.pollOnce(ctx); err != nil {
			p.Log.WithError(err).Trace("poll tick failed")
		}
		elapsed := p.nowFn().Sub(start)

		sleep := interval - elapsed
		if sleep < 0 {
			sleep = 0
		}
		select {
		case <-time.After(sleep):
		case <-p.trigger:
		case <-ctx.Done():
			return nil
		}
	}
}

// Bootstrap performs the initialisation sweep: one poll, plus a full log
// history fetch for every container, blocking until Application State
// reports Initialised (spec.md §4.2).
func (p *Poller) Bootstrap(ctx context.Context) error {
	p.Gui.StartLoading(bootstrapLoadingToken)
	defer p.Gui.StopLoading(bootstrapLoadingToken)

	if err := p.pollOnce(ctx); err != nil {
		return err
	}

	ids := p.State.AllIds()
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id model.ContainerId) {
			defer wg.Done()
			p.fetchLogs(ctx, id, 0)
		}(id)
	}
	wg.Wait()
	p.State.MarkInitialLogSweepDone()

	for !p.State.Initialised(p.State.RunningIds()) {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(20 * time.Millisecond):
		}
	}
	return nil
}

// pollOnce runs one reconcile tick, per spec.md §4.2 steps 1-3.
func (p *Poller) pollOnce(ctx context.Context) error {
	list, err := p.Client.ListContainers(ctx, true)
	if err != nil {
		return err
	}
	p.State.UpdateContainers(list)

	if selected, ok := p.State.GetSelectedContainerId(); ok {
		p.fetchLogs(ctx, selected, 0)
	}

	var wg sync.WaitGroup
	for _, id := range p.State.AllIds() {
		wg.Add(1)
		go func(id model.ContainerId) {
			defer wg.Done()
			p.fetchStats(ctx, id)
		}(id)
	}
	wg.Wait()

	return nil
}

// fetchLogs fetches a log slice for id and applies it. A non-zero
// sinceOverride is used as the since value; with 0, the fetch starts at
// the container's last_updated_unix_s, or at the beginning of its history
// if it has never been fetched. "now" is read before the call and is
// stored as last_updated_unix_s together with the fetched lines, so the
// field itself changes only after the call returns.
func (p *Poller) fetchLogs(ctx context.Context, id model.ContainerId, sinceOverride int64) {
	item, ok := p.State.Item(id)
	if !ok {
		return
	}
	since := sinceOverride
	if sinceOverride == 0 && item.LastUpdatedUnixS != 0 {
		since = item.LastUpdatedUnixS
	}
	now := p.nowFn().Unix()

	raw, err := p.Client.Logs(ctx, id, p.Timestamps, since, true, p.ShowStderr)
	if err != nil {
		// Recoverable silent per spec.md §7: drop this container's tick.
		p.Log.WithError(err).WithField("container", id.Short()).Trace("log fetch failed")
		return
	}

	lines := make([]string, len(raw))
	for i, b := range raw {
		lines[i] = string(b)
	}
	p.State.UpdateLogs(id, lines, p.SanitiseMode, now)
}

// fetchStats fetches one stats sample for id. Running containers use
// streaming=false; non-running containers use one_shot=true so we still
// learn limits/network without growing the cpu/mem series (spec.md
// §4.2).
func (p *Poller) fetchStats(ctx context.Context, id model.ContainerId) {
	item, ok := p.State.Item(id)
	if !ok {
		return
	}
	running := item.State.IsRunning()

	sample, err := p.Client.Stats(ctx, id, !running)
	if err != nil {
		p.Log.WithError(err).WithField("container", id.Short()).Trace("stats fetch failed")
		return
	}

	var cpu, mem *float64
	if running {
		c := CPUPercentage(sample)
		m := MemoryPercentage(sample)
		cpu, mem = &c, &m
	}
	p.State.UpdateStats(id, cpu, mem, sample.Memory.Limit, sample.Network.RxBytes, sample.Network.TxBytes)
}

func (p *Poller) nowFn() time.Time {
	if p.now != nil {
		return p.now()
	}
	return time.Now()
}
