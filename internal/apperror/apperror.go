// Package apperror defines the AppError taxonomy from spec.md §3/§7: a
// small set of tagged variants carried on Application State so the
// Renderer can show a single, consistent error popup regardless of which
// component raised it.
package apperror

import "fmt"

// Kind is the tag of an AppError variant.
type Kind int

const (
	KindDaemonConnect Kind = iota
	KindDaemonCommand
	KindExec
	KindSaveLogs
	KindInterval
	KindInputPoll
	KindMouseCapture
	KindTerminal
	KindIO
	KindParse
)

// AppError is the single error type surfaced to Application State. Op and
// Detail carry the payload for the variants that need one (DaemonCommand
// carries the operation name, MouseCapture carries the enable/disable
// intent, IO/Parse carry a free-form string).
type AppError struct {
	Kind    Kind
	Op      string
	Detail  string
	Enable  bool // only meaningful for KindMouseCapture
	wrapped error
}

func (e *AppError) Error() string {
	switch e.Kind {
	case KindDaemonConnect:
		return "could not connect to the daemon"
	case KindDaemonCommand:
		return fmt.Sprintf("daemon command failed: %s", e.Op)
	case KindExec:
		return fmt.Sprintf("exec failed: %s", e.Detail)
	case KindSaveLogs:
		return fmt.Sprintf("could not save logs: %s", e.Detail)
	case KindInterval:
		return "poll interval must be greater than zero"
	case KindInputPoll:
		return fmt.Sprintf("input poll failed: %s", e.Detail)
	case KindMouseCapture:
		if e.Enable {
			return "could not enable mouse capture"
		}
		return "could not disable mouse capture"
	case KindTerminal:
		return fmt.Sprintf("terminal error: %s", e.Detail)
	case KindIO:
		return fmt.Sprintf("io error: %s", e.Detail)
	case KindParse:
		return fmt.Sprintf("parse error: %s", e.Detail)
	default:
		return "unknown error"
	}
}

func (e *AppError) Unwrap() error {
	return e.wrapped
}

func DaemonConnect(err error) *AppError {
	return &AppError{Kind: KindDaemonConnect, wrapped: err}
}

func DaemonCommand(op string, err error) *AppError {
	return &AppError{Kind: KindDaemonCommand, Op: op, wrapped: err}
}

func Exec(detail string, err error) *AppError {
	return &AppError{Kind: KindExec, Detail: detail, wrapped: err}
}

func SaveLogs(detail string, err error) *AppError {
	return &AppError{Kind: KindSaveLogs, Detail: detail, wrapped: err}
}

func Interval() *AppError {
	return &AppError{Kind: KindInterval}
}

func InputPoll(err error) *AppError {
	return &AppError{Kind: KindInputPoll, Detail: errString(err), wrapped: err}
}

func MouseCapture(enable bool, err error) *AppError {
	return &AppError{Kind: KindMouseCapture, Enable: enable, wrapped: err}
}

func Terminal(detail string) *AppError {
	return &AppError{Kind: KindTerminal, Detail: detail}
}

func IO(detail string, err error) *AppError {
	return &AppError{Kind: KindIO, Detail: detail, wrapped: err}
}

func Parse(detail string) *AppError {
	return &AppError{Kind: KindParse, Detail: detail}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
