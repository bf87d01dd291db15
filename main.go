// Command oxker is the entry point: it resolves configuration, dials the
// daemon, wires Application State, GuiState, the Poller, the Command
// Bus, the Input Dispatcher, the Exec Bridge and the Renderer together,
// then blocks until the user quits. Grounded on the teacher's main.go
// (the go-errors stack-trace-on-panic wrapper, updateBuildInfo's
// version-from-vcs fallback) and pkg/app/app.go's component wiring
// order.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/go-errors/errors"
	"github.com/samber/lo"

	"github.com/oxker-go/oxker/internal/apperror"
	"github.com/oxker-go/oxker/internal/appstate"
	"github.com/oxker-go/oxker/internal/commandbus"
	"github.com/oxker-go/oxker/internal/config"
	"github.com/oxker-go/oxker/internal/daemon"
	execbridge "github.com/oxker-go/oxker/internal/exec"
	"github.com/oxker-go/oxker/internal/gui"
	"github.com/oxker-go/oxker/internal/guistate"
	"github.com/oxker-go/oxker/internal/input"
	"github.com/oxker-go/oxker/internal/log"
	"github.com/oxker-go/oxker/internal/model"
	"github.com/oxker-go/oxker/internal/poller"
)

// defaultVersion is overwritten at link time via -ldflags; when it
// wasn't, updateVersion falls back to the embedded VCS revision, as the
// teacher's updateBuildInfo does.
const defaultVersion = "unversioned"

var version = defaultVersion

func main() {
	updateVersion()

	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("%v", r)
			}
			fmt.Fprint(os.Stderr, errors.Wrap(err, 0).ErrorStack())
			os.Exit(1)
		}
	}()

	cfg, err := config.Resolve(version)
	if err != nil {
		fatal(err)
	}

	logger := log.New(cfg.ConfigDir, cfg.Debug, version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := daemon.NewDockerClient(cfg.Host)
	if err != nil {
		fatal(apperror.DaemonConnect(err))
	}
	if err := client.Ping(ctx); err != nil {
		fatal(apperror.DaemonConnect(err))
	}

	state := appstate.New()
	gs := guistate.New()

	p := poller.New(client, state, gs, logger)
	bus := commandbus.New(client, state, gs, p, logger)
	dispatcher := input.New(state, gs, bus, p, logger)
	dispatcher.Quit = stop
	dispatcher.SaveLogs = saveLogsFunc(state, cfg)
	dispatcher.ClearErrorKey = firstKey(cfg.Keymap["clear_error"], dispatcher.ClearErrorKey)
	dispatcher.ConfirmDeleteKey = firstKey(cfg.Keymap["delete_confirm"], dispatcher.ConfirmDeleteKey)
	dispatcher.DenyDeleteKey = firstKey(cfg.Keymap["delete_deny"], dispatcher.DenyDeleteKey)

	bridge := execbridge.New(client, logger)
	bridge.ForceExternal = cfg.UseCLI

	if err := p.Bootstrap(ctx); err != nil {
		logger.WithError(err).Warn("initial bootstrap poll failed")
	}
	if !cfg.ShowSelf {
		bridge.SelfId = detectSelfId(state)
	}

	renderer := gui.New(state, gs, bus, dispatcher, cfg, logger)

	interval := time.Duration(cfg.IntervalMS) * time.Millisecond

	go func() {
		if err := p.Run(ctx, interval); err != nil && ctx.Err() == nil {
			logger.WithError(err).Error("poller stopped")
		}
	}()
	go func() {
		if err := bus.Run(ctx); err != nil && ctx.Err() == nil {
			logger.WithError(err).Error("command bus stopped")
		}
	}()

	if err := renderer.RunWithExec(ctx, bridge.Run); err != nil {
		fatal(err)
	}
}

// saveLogsFunc wires the Input Dispatcher's "s" action to the selected
// container's current log buffer, writing to cfg.SaveDir per spec.md §6.
func saveLogsFunc(state *appstate.State, cfg config.Config) func(model.ContainerId) (string, error) {
	return func(id model.ContainerId) (string, error) {
		item, ok := state.Item(id)
		if !ok {
			return "", apperror.SaveLogs("container no longer present", nil)
		}
		path := config.SaveFileName(cfg.SaveDir, item.Name, time.Now().Unix())
		f, err := os.Create(path)
		if err != nil {
			return "", apperror.SaveLogs(err.Error(), err)
		}
		defer f.Close()
		for _, line := range item.Logs.Lines {
			if _, err := fmt.Fprintln(f, line.Styled); err != nil {
				return "", apperror.SaveLogs(err.Error(), err)
			}
		}
		return path, nil
	}
}

// detectSelfId matches the process hostname against the inventory's
// short container ids: docker-compatible engines set a container's
// hostname to its short id by default, grounded on sonac-dashi's
// hostname-as-selfID pattern.
func detectSelfId(state *appstate.State) model.ContainerId {
	hostname, err := os.Hostname()
	if err != nil {
		return ""
	}
	for _, id := range state.AllIds() {
		if id.Short() == hostname {
			return id
		}
	}
	return ""
}

// firstKey extracts the primary key label from a configured keymap entry as
// a rune, falling back to fallback when the entry is absent or not a single
// rune (spec.md §7's keymap-derivation requirement).
func firstKey(labels []string, fallback rune) rune {
	if len(labels) == 0 {
		return fallback
	}
	runes := []rune(labels[0])
	if len(runes) != 1 {
		return fallback
	}
	return runes[0]
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

// updateVersion mirrors the teacher's updateBuildInfo: when no version
// was injected at link time, fall back to the embedded VCS revision.
func updateVersion() {
	if version != defaultVersion {
		return
	}
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	revision, ok := lo.Find(buildInfo.Settings, func(setting debug.BuildSetting) bool {
		return setting.Key == "vcs.revision"
	})
	if ok && len(revision.Value) >= 7 {
		version = revision.Value[:7]
	}
}
