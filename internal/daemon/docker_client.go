package daemon

import (
	"bufio"
	"context"
	"strconv"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"

	"github.com/oxker-go/oxker/internal/model"
)

// DockerClient implements Client against a real docker-compatible
// engine, grounded on the teacher's pkg/commands/docker.go and
// pkg/commands/container.go.
type DockerClient struct {
	cli *client.Client
}

// NewDockerClient dials the daemon at host (empty string means "use the
// platform default socket, honouring DOCKER_HOST"), per spec.md §6.
func NewDockerClient(host string) (*DockerClient, error) {
	opts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}
	if host != "" {
		opts = append(opts, client.WithHost(host))
	}
	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, err
	}
	return &DockerClient{cli: cli}, nil
}

func (d *DockerClient) Ping(ctx context.Context) error {
	_, err := d.cli.Ping(ctx)
	return err
}

func (d *DockerClient) ListContainers(ctx context.Context, all bool) ([]ContainerSummary, error) {
	raw, err := d.cli.ContainerList(ctx, container.ListOptions{All: all})
	if err != nil {
		return nil, err
	}

	summaries := make([]ContainerSummary, 0, len(raw))
	for _, c := range raw {
		ports := make([]model.ContainerPort, 0, len(c.Ports))
		for _, p := range c.Ports {
			ports = append(ports, model.ContainerPort{
				IP:      p.IP,
				Private: p.PrivatePort,
				Public:  p.PublicPort,
			})
		}
		model.SortPorts(ports)

		health := ""
		if idx := strings.Index(c.Status, "(healthy)"); idx >= 0 {
			health = "healthy"
		} else if strings.Contains(c.Status, "(unhealthy)") {
			health = "unhealthy"
		}

		summaries = append(summaries, ContainerSummary{
			Id:     model.ContainerId(c.ID),
			Names:  c.Names,
			Image:  c.Image,
			State:  c.State,
			Health: health,
			Status: c.Status,
			Ports:  ports,
		})
	}
	return summaries, nil
}

func (d *DockerClient) Stats(ctx context.Context, id model.ContainerId, oneShot bool) (StatsSample, error) {
	resp, err := d.cli.ContainerStatsOneShot(ctx, string(id))
	if oneShot {
		if err != nil {
			return StatsSample{}, err
		}
	} else {
		resp, err = d.cli.ContainerStats(ctx, string(id), false)
		if err != nil {
			return StatsSample{}, err
		}
	}
	defer resp.Body.Close()

	var raw types.StatsJSON
	if err := decodeJSON(resp.Body, &raw); err != nil {
		return StatsSample{}, err
	}

	percpu := make([]uint64, len(raw.CPUStats.CPUUsage.PercpuUsage))
	copy(percpu, raw.CPUStats.CPUUsage.PercpuUsage)

	return StatsSample{
		CPU: CPUStats{
			TotalUsage:     raw.CPUStats.CPUUsage.TotalUsage,
			SystemCPUUsage: raw.CPUStats.SystemUsage,
			OnlineCPUs:     raw.CPUStats.OnlineCPUs,
			PercpuUsage:    percpu,
		},
		PreCPU: CPUStats{
			TotalUsage:     raw.PreCPUStats.CPUUsage.TotalUsage,
			SystemCPUUsage: raw.PreCPUStats.SystemUsage,
		},
		Memory: MemoryStats{
			Usage: raw.MemoryStats.Usage,
			Limit: raw.MemoryStats.Limit,
		},
		Network: sumNetworks(raw.Networks),
	}, nil
}

func sumNetworks(nets map[string]types.NetworkStats) NetworkStats {
	var out NetworkStats
	for _, n := range nets {
		out.RxBytes += n.RxBytes
		out.TxBytes += n.TxBytes
	}
	return out
}

func (d *DockerClient) Logs(ctx context.Context, id model.ContainerId, timestamps bool, sinceUnix int64, stdout, stderr bool) ([][]byte, error) {
	rc, err := d.cli.ContainerLogs(ctx, string(id), container.LogsOptions{
		ShowStdout: stdout,
		ShowStderr: stderr,
		Timestamps: timestamps,
		Since:      strconv.FormatInt(sinceUnix, 10),
	})
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var lines [][]byte
	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := make([]byte, len(scanner.Bytes()))
		copy(line, scanner.Bytes())
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

func (d *DockerClient) CreateExec(ctx context.Context, id model.ContainerId, opts ExecOptions) (string, error) {
	resp, err := d.cli.ContainerExecCreate(ctx, string(id), types.ExecConfig{
		AttachStdin:  opts.AttachStdin,
		AttachStdout: opts.AttachStdout,
		AttachStderr: opts.AttachStderr,
		Tty:          opts.TTY,
		Cmd:          opts.Cmd,
	})
	if err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (d *DockerClient) StartExec(ctx context.Context, execId string) (ExecSession, error) {
	hijacked, err := d.cli.ContainerExecAttach(ctx, execId, types.ExecStartCheck{Tty: true})
	if err != nil {
		return ExecSession{}, err
	}
	return ExecSession{
		Reader: hijacked.Reader,
		Writer: hijacked.Conn,
		Closer: hijacked.Conn,
	}, nil
}

func (d *DockerClient) ResizeExec(ctx context.Context, execId string, width, height uint) error {
	return d.cli.ContainerExecResize(ctx, execId, container.ResizeOptions{
		Width:  uint(width),
		Height: uint(height),
	})
}

func (d *DockerClient) Pause(ctx context.Context, id model.ContainerId) error {
	return d.cli.ContainerPause(ctx, string(id))
}

func (d *DockerClient) Unpause(ctx context.Context, id model.ContainerId) error {
	return d.cli.ContainerUnpause(ctx, string(id))
}

func (d *DockerClient) Start(ctx context.Context, id model.ContainerId) error {
	return d.cli.ContainerStart(ctx, string(id), container.StartOptions{})
}

func (d *DockerClient) Stop(ctx context.Context, id model.ContainerId) error {
	return d.cli.ContainerStop(ctx, string(id), container.StopOptions{})
}

func (d *DockerClient) Restart(ctx context.Context, id model.ContainerId) error {
	return d.cli.ContainerRestart(ctx, string(id), container.StopOptions{})
}

func (d *DockerClient) Remove(ctx context.Context, id model.ContainerId) error {
	return d.cli.ContainerRemove(ctx, string(id), container.RemoveOptions{Force: false})
}

func (d *DockerClient) Close() error {
	return d.cli.Close()
}
