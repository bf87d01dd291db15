// Package commandbus implements the Command Bus (spec.md §4.4): a single
// serialised worker that holds the Daemon Client and applies mutations
// without blocking the renderer, grounded on the teacher's
// DockerCommand/RefreshContainersAndServices single-writer pattern in
// pkg/commands/docker.go.
package commandbus

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oxker-go/oxker/internal/apperror"
	"github.com/oxker-go/oxker/internal/appstate"
	"github.com/oxker-go/oxker/internal/daemon"
	"github.com/oxker-go/oxker/internal/guistate"
	"github.com/oxker-go/oxker/internal/model"
)

// kind tags a Message's variant (spec.md §4.4's message taxonomy).
type kind int

const (
	kindUpdate kind = iota
	kindControl
	kindConfirmDelete
	kindDelete
	kindExec
)

// Message is one Command Bus entry. Build one with the Update/Control/...
// constructors rather than the struct literal directly.
type Message struct {
	kind      kind
	command   model.CommandKind
	id        model.ContainerId
	execReply chan<- daemon.Client
}

// Update forces an immediate poll.
func Update() Message { return Message{kind: kindUpdate} }

// Control applies a lifecycle command (pause/unpause/start/stop/restart)
// to a container.
func Control(command model.CommandKind, id model.ContainerId) Message {
	return Message{kind: kindControl, command: command, id: id}
}

// ConfirmDelete opens the delete confirmation dialog for id.
func ConfirmDelete(id model.ContainerId) Message {
	return Message{kind: kindConfirmDelete, id: id}
}

// Delete actually removes id.
func Delete(id model.ContainerId) Message {
	return Message{kind: kindDelete, id: id}
}

// Exec requests a Daemon Client handle for the Exec Bridge, delivered on
// reply.
func Exec(reply chan<- daemon.Client) Message {
	return Message{kind: kindExec, execReply: reply}
}

// poller is the subset of *poller.Poller the bus needs; named here rather
// than imported to avoid a poller<->commandbus import cycle.
type poller interface {
	TriggerNow()
}

// Bus is the Command Bus. The zero value is not usable; build one with
// New.
type Bus struct {
	Client daemon.Client
	State  *appstate.State
	Gui    *guistate.State
	Poller poller
	Log    *logrus.Entry
	inbox  chan Message
}

func New(client daemon.Client, state *appstate.State, gui *guistate.State, p poller, log *logrus.Entry) *Bus {
	return &Bus{
		Client: client,
		State:  state,
		Gui:    gui,
		Poller: p,
		Log:    log,
		inbox:  make(chan Message, 32),
	}
}

// Send enqueues a message. Messages are applied strictly FIFO by Run
// (spec.md §5).
func (b *Bus) Send(msg Message) {
	b.inbox <- msg
}

// Run drains the inbox in FIFO order until ctx is cancelled.
func (b *Bus) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-b.inbox:
			b.apply(ctx, msg)
		}
	}
}

func (b *Bus) apply(ctx context.Context, msg Message) {
	switch msg.kind {
	case kindUpdate:
		b.Poller.TriggerNow()

	case kindControl:
		b.applyControl(ctx, msg.command, msg.id)

	case kindConfirmDelete:
		b.Gui.SetDeleteTarget(msg.id)
		b.Gui.AddStatus(guistate.StatusDeleteConfirm)

	case kindDelete:
		if err := b.Client.Remove(ctx, msg.id); err != nil {
			b.fail("delete", err)
			return
		}
		b.Gui.ClearDeleteTarget()
		b.Gui.RemoveStatus(guistate.StatusDeleteConfirm)
		b.Poller.TriggerNow()

	case kindExec:
		if msg.execReply != nil {
			msg.execReply <- b.Client
		}
	}
}

func (b *Bus) applyControl(ctx context.Context, command model.CommandKind, id model.ContainerId) {
	var op string
	var err error
	switch command {
	case model.CommandPause:
		op, err = "pause", b.Client.Pause(ctx, id)
	case model.CommandResume:
		op, err = "unpause", b.Client.Unpause(ctx, id)
	case model.CommandStart:
		op, err = "start", b.Client.Start(ctx, id)
	case model.CommandStop:
		op, err = "stop", b.Client.Stop(ctx, id)
	case model.CommandRestart:
		op, err = "restart", b.Client.Restart(ctx, id)
	case model.CommandDelete:
		// Delete never arrives via Control: the Input Dispatcher routes
		// it to ConfirmDelete instead (spec.md §4.3.3).
		return
	default:
		return
	}
	if err != nil {
		b.fail(op, err)
		return
	}
	b.Poller.TriggerNow()
}

func (b *Bus) fail(op string, err error) {
	b.Log.WithError(err).WithField("op", op).Warn("command bus operation failed")
	b.State.SetError(apperror.DaemonCommand(op, err))
	b.Gui.AddStatus(guistate.StatusError)
}
