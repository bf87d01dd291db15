// Package daemon is the Daemon Client (spec.md §6): a typed wrapper over
// a docker-compatible engine's HTTP API. It is the only package that
// imports github.com/docker/docker; everything above it works against
// the Client interface so it can be faked in tests.
package daemon

import (
	"context"
	"io"

	"github.com/oxker-go/oxker/internal/model"
)

// ContainerSummary is what list_containers(all) returns per spec.md §6.
type ContainerSummary struct {
	Id      model.ContainerId
	Names   []string // first entry is used as the display name
	Image   string
	State   string // raw daemon state string
	Health  string // "" when no healthcheck is configured
	Status  string // human status text, e.g. "Up 3 minutes"
	Ports   []model.ContainerPort
}

// StatsSample is the daemon's one-shot stats payload, shaped exactly as
// spec.md §4.2 requires for the CPU% formula to be reproduced bit for
// bit.
type StatsSample struct {
	CPU     CPUStats
	PreCPU  CPUStats
	Memory  MemoryStats
	Network NetworkStats
}

type CPUStats struct {
	TotalUsage     uint64
	SystemCPUUsage uint64
	OnlineCPUs     uint32 // 0 means "use len(PercpuUsage)"
	PercpuUsage    []uint64
}

type MemoryStats struct {
	Usage uint64
	Limit uint64
}

type NetworkStats struct {
	RxBytes uint64
	TxBytes uint64
}

// ExecOptions configures create_exec per spec.md §6.
type ExecOptions struct {
	AttachStdin  bool
	AttachStdout bool
	AttachStderr bool
	TTY          bool
	Cmd          []string
}

// ExecSession is the result of start_exec: a single connection carrying
// both the exec's stdin and its combined stdout/stderr.
type ExecSession struct {
	Reader io.Reader
	Writer io.Writer
	Closer io.Closer
}

// Client is the Daemon Client contract consumed by the Poller, Command
// Bus and Exec Bridge. All operations are context-bound so every call
// into it is a suspension point per spec.md §5.
type Client interface {
	ListContainers(ctx context.Context, all bool) ([]ContainerSummary, error)
	Stats(ctx context.Context, id model.ContainerId, oneShot bool) (StatsSample, error)
	Logs(ctx context.Context, id model.ContainerId, timestamps bool, sinceUnix int64, stdout, stderr bool) ([][]byte, error)

	CreateExec(ctx context.Context, id model.ContainerId, opts ExecOptions) (string, error)
	StartExec(ctx context.Context, execId string) (ExecSession, error)
	ResizeExec(ctx context.Context, execId string, width, height uint) error

	Pause(ctx context.Context, id model.ContainerId) error
	Unpause(ctx context.Context, id model.ContainerId) error
	Start(ctx context.Context, id model.ContainerId) error
	Stop(ctx context.Context, id model.ContainerId) error
	Restart(ctx context.Context, id model.ContainerId) error
	Remove(ctx context.Context, id model.ContainerId) error

	Ping(ctx context.Context) error
}
