package exec

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/oxker-go/oxker/internal/daemon"
	"github.com/oxker-go/oxker/internal/model"
)

func discardLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l.WithField("test", true)
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

type fakeProbeClient struct {
	daemon.Client
	createErr error
	startErr  error
	probeOut  string
}

func (c *fakeProbeClient) CreateExec(ctx context.Context, id model.ContainerId, opts daemon.ExecOptions) (string, error) {
	if c.createErr != nil {
		return "", c.createErr
	}
	return "exec-1", nil
}

func (c *fakeProbeClient) StartExec(ctx context.Context, execId string) (daemon.ExecSession, error) {
	if c.startErr != nil {
		return daemon.ExecSession{}, c.startErr
	}
	return daemon.ExecSession{
		Reader: strings.NewReader(c.probeOut),
		Closer: closerFunc(func() error { return nil }),
	}, nil
}

func newTestBridge(client daemon.Client) *Bridge {
	b := New(client, discardLogger())
	b.TTYReadable = func() bool { return true }
	return b
}

func TestCanOfferRejectsSelf(t *testing.T) {
	b := newTestBridge(&fakeProbeClient{})
	b.SelfId = "1"
	assert.False(t, b.CanOffer(context.Background(), "1", model.StateRunningHealthy))
}

func TestCanOfferRejectsWhenTTYNotReadable(t *testing.T) {
	b := newTestBridge(&fakeProbeClient{})
	b.TTYReadable = func() bool { return false }
	assert.False(t, b.CanOffer(context.Background(), "1", model.StateRunningHealthy))
}

func TestCanOfferRejectsNonRunningContainer(t *testing.T) {
	b := newTestBridge(&fakeProbeClient{})
	assert.False(t, b.CanOffer(context.Background(), "1", model.StateExited))
}

func TestCanOfferSucceedsWhenProbeOutputIsClean(t *testing.T) {
	b := newTestBridge(&fakeProbeClient{probeOut: "/root\n"})
	assert.True(t, b.CanOffer(context.Background(), "1", model.StateRunningHealthy))
}

func TestProbeViaDaemonRejectsOCIFailureOutput(t *testing.T) {
	b := newTestBridge(&fakeProbeClient{probeOut: "OCI runtime exec failed: exec: \"pwd\": not found"})
	assert.False(t, b.probeViaDaemon(context.Background(), "1"))
}

func TestProbeViaDaemonFailsWhenCreateExecErrors(t *testing.T) {
	b := newTestBridge(&fakeProbeClient{createErr: assert.AnError})
	assert.False(t, b.probeViaDaemon(context.Background(), "1"))
}

func TestChooseModeDefaultsToInternal(t *testing.T) {
	b := newTestBridge(&fakeProbeClient{})
	assert.Equal(t, ModeInternal, b.chooseMode())
}

func TestChooseModeForceExternalSkipsInternal(t *testing.T) {
	b := newTestBridge(&fakeProbeClient{})
	b.ForceExternal = true
	assert.Equal(t, ModeExternal, b.chooseMode())
}

func TestIsRecognisedTerminator(t *testing.T) {
	long := make([]byte, 26)
	long[25] = '2'
	assert.True(t, isRecognisedTerminator(long))

	short := make([]byte, 6)
	short[5] = 'c'
	assert.True(t, isRecognisedTerminator(short))

	assert.False(t, isRecognisedTerminator([]byte("unrecognised")))
	assert.False(t, isRecognisedTerminator(nil))
}
