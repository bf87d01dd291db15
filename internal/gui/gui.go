package gui

import (
	"context"
	"errors"
	"time"

	"github.com/jesseduffield/gocui"
	"github.com/sirupsen/logrus"

	"github.com/oxker-go/oxker/internal/appstate"
	"github.com/oxker-go/oxker/internal/commandbus"
	"github.com/oxker-go/oxker/internal/config"
	"github.com/oxker-go/oxker/internal/guistate"
	"github.com/oxker-go/oxker/internal/input"
	"github.com/oxker-go/oxker/internal/model"
)

// tickInterval is how often the draw loop redraws regardless of input,
// so the spinner, charts and log tail keep moving, grounded on the
// teacher's goEvery(time.Millisecond*30, gui.reRenderMain) refresh.
const tickInterval = 100 * time.Millisecond

// errExecRequested is the sentinel Run returns when the Input Dispatcher
// asked for an exec session, grounded on the teacher's RunWithSubprocesses
// loop (subprocess.go): each iteration gets a fresh gocui.Gui, and the
// outer loop decides whether to hand the terminal to a subprocess and
// loop again, or stop.
var errExecRequested = errors.New("exec requested")

// Gui is the Renderer (spec.md §4.5). It owns the gocui.Gui and, by
// extension, the controlling terminal for as long as Run is active.
type Gui struct {
	State      *appstate.State
	GuiState   *guistate.State
	Bus        *commandbus.Bus
	Dispatcher *input.Dispatcher
	Config     config.Config
	Log        *logrus.Entry

	theme theme
	now   func() time.Time

	g          *gocui.Gui
	execTarget model.ContainerId
}

// New wires a Gui around already-constructed state and dispatcher.
func New(state *appstate.State, gs *guistate.State, bus *commandbus.Bus, dispatcher *input.Dispatcher, cfg config.Config, log *logrus.Entry) *Gui {
	gui := &Gui{
		State:      state,
		GuiState:   gs,
		Bus:        bus,
		Dispatcher: dispatcher,
		Config:     cfg,
		Log:        log,
		theme:      newTheme(cfg.Colors),
		now:        time.Now,
	}
	dispatcher.ToggleMouseCapture = gui.ToggleMouseCapture
	dispatcher.RequestExec = gui.requestExec
	return gui
}

// RunWithExec drives the Renderer until ctx is cancelled, handing the
// terminal off to runExec whenever the Input Dispatcher requests one and
// resuming the gocui surface afterwards (spec.md §4.6).
func (gui *Gui) RunWithExec(ctx context.Context, runExec func(context.Context, model.ContainerId) error) error {
	for {
		err := gui.Run(ctx)
		if err == nil {
			return nil
		}
		if errors.Is(err, errExecRequested) {
			target := gui.execTarget
			if runExec != nil {
				_ = runExec(ctx, target)
			}
			if ctx.Err() != nil {
				return nil
			}
			continue
		}
		return err
	}
}

func (gui *Gui) requestExec(id model.ContainerId) {
	gui.execTarget = id
	if gui.g != nil {
		gui.g.Update(func(*gocui.Gui) error { return errExecRequested })
	}
}

// Run starts a fresh gocui main loop and blocks until ctx is cancelled,
// the user quits, or an exec session is requested.
func (gui *Gui) Run(ctx context.Context) error {
	g, err := gocui.NewGui(gocui.OutputTrue, false, gocui.NORMAL, false, map[rune]string{})
	if err != nil {
		return err
	}
	gui.g = g

	g.Mouse = true
	g.Cursor = false
	g.FgColor = gui.theme.border()
	g.SelFgColor = gocuiAttribute(gui.Config.Colors.HeadersBar)

	g.SetManagerFunc(gui.layout)

	if err := gui.keybindings(g); err != nil {
		g.Close()
		return err
	}

	tickCtx, stopTick := context.WithCancel(ctx)
	go gui.tick(tickCtx)

	go func() {
		<-ctx.Done()
		g.Update(func(*gocui.Gui) error { return gocui.ErrQuit })
	}()

	runErr := g.MainLoop()
	stopTick()
	g.Close()
	gui.g = nil

	if runErr == gocui.ErrQuit || runErr == nil {
		return nil
	}
	if errors.Is(runErr, errExecRequested) {
		return errExecRequested
	}
	return runErr
}

// tick forces a periodic redraw so the spinner, charts and log tail
// advance even without user input.
func (gui *Gui) tick(ctx context.Context) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if gui.g == nil {
				continue
			}
			gui.GuiState.AdvanceLoadingFrame()
			gui.g.Update(func(*gocui.Gui) error { return nil })
		}
	}
}

// ToggleMouseCapture flips gocui's mouse event capture, used by the
// Input Dispatcher's "m" binding (spec.md §4.3.3).
func (gui *Gui) ToggleMouseCapture(enable bool) error {
	if gui.g == nil {
		return nil
	}
	gui.g.Mouse = enable
	return nil
}
