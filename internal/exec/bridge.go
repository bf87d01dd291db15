// Package exec implements the Exec Bridge (spec.md §4.6): it hands the
// controlling terminal to an in-container shell and recovers cleanly
// afterwards. The probe/gate sequence and the Internal-vs-External split
// are grounded on the teacher's pkg/gui/subprocess.go (External mode: an
// inherited-stdio child process) and banksean-sand's containers.go
// (term.IsTerminal/term.MakeRaw on stdin for the Internal mode, which
// attaches to a daemon exec session with a TTY rather than a local pty).
package exec

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/creack/pty"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/oxker-go/oxker/internal/apperror"
	"github.com/oxker-go/oxker/internal/daemon"
	"github.com/oxker-go/oxker/internal/model"
)

// ociFailurePrefix is the well-known prefix docker-compatible engines use
// to report "OCI runtime exec failed" style errors (spec.md §4.6's
// probe gate).
const ociFailurePrefix = "OCI runtime exec failed"

// keyboardQuery is written to stdout on exit from Internal mode to probe
// for the terminal's keyboard-enhancement state, so it can be restored
// (spec.md §4.6).
const keyboardQuery = "\x1b[?u\x1b[c"

const keyboardRecoveryTimeout = 1500 * time.Millisecond

// Mode is which execution path Bridge used for a session.
type Mode int

const (
	ModeInternal Mode = iota
	ModeExternal
)

func (m Mode) String() string {
	if m == ModeExternal {
		return "external"
	}
	return "internal"
}

// Bridge is the Exec Bridge.
type Bridge struct {
	Client daemon.Client
	Log    *logrus.Entry

	// SelfId is this process's own observed container id, if any (the
	// self-check gate in spec.md §4.6); empty when running outside a
	// container.
	SelfId model.ContainerId

	// ForceExternal is set from cfg.UseCLI (spec.md §6 "use_cli"): when
	// true, Run always shells out to the external docker CLI rather
	// than trying the daemon exec API first.
	ForceExternal bool

	// PauseRenderer/ResumeRenderer suspend and resume the Renderer's
	// draw loop around the handoff (spec.md §4.6). Both are nil unless a
	// caller sets them, and Run skips them when nil; main.go leaves them
	// unset.
	PauseRenderer  func()
	ResumeRenderer func()

	// TTYReadable reports whether the controlling TTY device can be
	// read from directly, overridable in tests.
	TTYReadable func() bool

	// dockerPath is the external docker CLI binary name, overridable in
	// tests.
	dockerPath string
}

func New(client daemon.Client, log *logrus.Entry) *Bridge {
	return &Bridge{
		Client:      client,
		Log:         log,
		TTYReadable: defaultTTYReadable,
		dockerPath:  "docker",
	}
}

func defaultTTYReadable() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// CanOffer reports whether exec should be offered for id, per spec.md
// §4.6's four-part gate. It runs the probe (which may make a daemon
// call), so it should only be invoked when the user actually requests
// exec rather than every frame.
func (b *Bridge) CanOffer(ctx context.Context, id model.ContainerId, state model.State) bool {
	if b.SelfId != "" && b.SelfId == id {
		return false
	}
	if b.TTYReadable != nil && !b.TTYReadable() {
		return false
	}
	if !state.IsRunning() {
		return false
	}
	return b.probe(ctx, id)
}

// probe tries the daemon exec API first, falling back to the external
// docker CLI, per spec.md §4.6.
func (b *Bridge) probe(ctx context.Context, id model.ContainerId) bool {
	if b.probeViaDaemon(ctx, id) {
		return true
	}
	return b.probeViaCLI(ctx, id)
}

func (b *Bridge) probeViaDaemon(ctx context.Context, id model.ContainerId) bool {
	execId, err := b.Client.CreateExec(ctx, id, daemon.ExecOptions{
		AttachStdout: true,
		AttachStderr: true,
		Cmd:          []string{"pwd"},
	})
	if err != nil {
		return false
	}
	session, err := b.Client.StartExec(ctx, execId)
	if err != nil {
		return false
	}
	defer session.Closer.Close()

	out, _ := io.ReadAll(io.LimitReader(session.Reader, 4096))
	return !bytes.HasPrefix(out, []byte(ociFailurePrefix))
}

func (b *Bridge) probeViaCLI(ctx context.Context, id model.ContainerId) bool {
	cmd := exec.CommandContext(ctx, b.dockerPath, "exec", string(id), "pwd")
	out, _ := cmd.CombinedOutput()
	return !bytes.HasPrefix(out, []byte(ociFailurePrefix))
}

// Run hands off the controlling terminal to an in-container shell,
// preferring Internal mode and falling back to External when the daemon
// exec API fails. Terminal errors from Internal mode (raw mode, the
// keyboard-protocol recovery timeout) are returned as is, without a
// fallback. It pauses/resumes the renderer around the handoff (spec.md
// §4.6).
func (b *Bridge) Run(ctx context.Context, id model.ContainerId) error {
	if b.PauseRenderer != nil {
		b.PauseRenderer()
	}
	defer func() {
		if b.ResumeRenderer != nil {
			b.ResumeRenderer()
		}
	}()

	clearScreenHome()

	mode := b.chooseMode()
	b.Log.WithField("mode", mode.String()).Debug("exec bridge session starting")

	if mode == ModeExternal {
		return b.runExternal(ctx, id)
	}

	err := b.runInternal(ctx, id)
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Kind == apperror.KindTerminal {
		return err
	}
	if err != nil {
		b.Log.WithError(err).Warn("internal exec failed, falling back to external docker CLI")
		err = b.runExternal(ctx, id)
	}
	return err
}

// chooseMode picks the exec path for the next Run: ForceExternal (cfg.UseCLI,
// spec.md §6) always wins, otherwise Internal is tried first.
func (b *Bridge) chooseMode() Mode {
	if b.ForceExternal {
		return ModeExternal
	}
	return ModeInternal
}

// runInternal implements the Internal mode of spec.md §4.6.
func (b *Bridge) runInternal(ctx context.Context, id model.ContainerId) error {
	execId, err := b.Client.CreateExec(ctx, id, daemon.ExecOptions{
		AttachStdin:  true,
		AttachStdout: true,
		AttachStderr: true,
		TTY:          true,
		Cmd:          []string{"sh"},
	})
	if err != nil {
		return err
	}
	session, err := b.Client.StartExec(ctx, execId)
	if err != nil {
		return err
	}
	defer session.Closer.Close()

	if w, h, err := term.GetSize(int(os.Stdin.Fd())); err == nil {
		_ = b.Client.ResizeExec(ctx, execId, uint(w), uint(h))
	}

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return apperror.Terminal(err.Error())
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)

	done := make(chan struct{})
	go func() {
		io.Copy(os.Stdout, session.Reader)
		close(done)
	}()

	go func() {
		buf := make([]byte, 4096)
		for {
			select {
			case <-done:
				return
			default:
			}
			n, err := os.Stdin.Read(buf)
			if n > 0 {
				if _, werr := session.Writer.Write(buf[:n]); werr != nil {
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()

	<-done

	return b.recoverKeyboardProtocol()
}

// recoverKeyboardProtocol writes the keyboard-enhancement query and waits
// for one of the two recognised terminator shapes, per spec.md §4.6.
func (b *Bridge) recoverKeyboardProtocol() error {
	os.Stdout.WriteString(keyboardQuery)

	result := make(chan []byte, 1)
	go func() {
		buf := make([]byte, 64)
		n, _ := os.Stdin.Read(buf)
		result <- buf[:n]
	}()

	select {
	case got := <-result:
		if isRecognisedTerminator(got) {
			return nil
		}
		return nil // unrecognised sequences are swallowed, not fatal
	case <-time.After(keyboardRecoveryTimeout):
		return apperror.Terminal("keyboard protocol recovery timed out")
	}
}

// terminators lists the two acceptable terminator shapes from spec.md
// §4.6 as (length, final-byte) pairs.
var terminators = []struct {
	length int
	final  byte
}{
	{26, '2'},
	{6, 'c'},
}

func isRecognisedTerminator(b []byte) bool {
	for _, t := range terminators {
		if len(b) == t.length && b[len(b)-1] == t.final {
			return true
		}
	}
	return false
}

// runExternal implements the External mode of spec.md §4.6, grounded on
// the teacher's runCommand in pkg/gui/subprocess.go.
func (b *Bridge) runExternal(ctx context.Context, id model.ContainerId) error {
	cmd := exec.CommandContext(ctx, b.dockerPath, "exec", "-it", string(id), "sh")
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// a non-zero shell exit is not itself an exec-bridge failure
			return nil
		}
		return apperror.Exec("external docker exec", err)
	}
	return nil
}

func clearScreenHome() {
	os.Stdout.WriteString("\x1b[H\x1b[2J")
}

// StartPty starts cmd on a fresh pty and returns its controlling end,
// grounded on banksean-sand's ContainerSvc.Exec pty fallback. Nothing in
// this module calls it: both exec modes use the inherited stdin/stdout.
func StartPty(cmd *exec.Cmd) (*os.File, error) {
	return pty.Start(cmd)
}
