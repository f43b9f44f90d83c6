// internal/connection/manager_test.go
package connection

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfden/werewolf-client/internal/models"
	"github.com/wolfden/werewolf-client/internal/protocol"
)

// fakeChannel is an in-memory duplex channel for manager tests.
type fakeChannel struct {
	in     chan []byte
	closed chan struct{}
	once   sync.Once

	mu     sync.Mutex
	writes [][]byte
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{
		in:     make(chan []byte, 16),
		closed: make(chan struct{}),
	}
}

func (c *fakeChannel) Read(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.closed:
		return nil, errors.New("channel closed")
	case data := <-c.in:
		return data, nil
	}
}

func (c *fakeChannel) Write(ctx context.Context, data []byte) error {
	select {
	case <-c.closed:
		return errors.New("channel closed")
	default:
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writes = append(c.writes, append([]byte(nil), data...))
	return nil
}

func (c *fakeChannel) Close() error {
	c.once.Do(func() { close(c.closed) })
	return nil
}

func (c *fakeChannel) writeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.writes)
}

func newTestManager(fc *fakeChannel) *Manager {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	m := NewManager(func(id string) string { return "ws://test/" + id }, logger)
	m.SetDialFunc(func(ctx context.Context, url string) (Channel, error) {
		return fc, nil
	})
	return m
}

func recvEvent(t *testing.T, ch <-chan protocol.Event) protocol.Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for event")
		return nil
	}
}

func TestOpenDeliversDecodedEvents(t *testing.T) {
	fc := newFakeChannel()
	m := newTestManager(fc)
	defer m.Close()

	events := make(chan protocol.Event, 8)
	require.NoError(t, m.Open(context.Background(), "sess-1",
		func(ev protocol.Event) { events <- ev }, nil))
	assert.True(t, m.Connected())
	assert.Equal(t, "sess-1", m.SessionID())

	fc.in <- []byte(`{"type":"phase_update","phase":"NIGHT"}`)
	ev := recvEvent(t, events)
	assert.Equal(t, protocol.PhaseUpdate{Phase: models.PhaseNight}, ev)
}

func TestMalformedAndUnknownFramesAreSkipped(t *testing.T) {
	fc := newFakeChannel()
	m := newTestManager(fc)
	defer m.Close()

	events := make(chan protocol.Event, 8)
	require.NoError(t, m.Open(context.Background(), "sess-1",
		func(ev protocol.Event) { events <- ev }, nil))

	fc.in <- []byte(`{"phase":"DAY"}`)                  // missing type: dropped
	fc.in <- []byte(`{"type":"shiny_new_thing"}`)       // unknown: no-op
	fc.in <- []byte(`{"type":"phase_update","phase":"DAY"}`) // still delivered

	ev := recvEvent(t, events)
	assert.Equal(t, protocol.PhaseUpdate{Phase: models.PhaseDay}, ev)
	assert.Empty(t, events)
}

func TestSendRequiresOpenChannel(t *testing.T) {
	fc := newFakeChannel()
	m := newTestManager(fc)

	err := m.Send(protocol.NewStartGame())
	assert.ErrorIs(t, err, ErrNotConnected)

	require.NoError(t, m.Open(context.Background(), "sess-1", func(protocol.Event) {}, nil))
	require.NoError(t, m.Send(protocol.NewStartGame()))
	assert.Equal(t, 1, fc.writeCount())

	m.Close()
	err = m.Send(protocol.NewPlayerAction("p0", models.ActionVote, "p1"))
	assert.ErrorIs(t, err, ErrNotConnected, "intents are dropped, not queued")
	assert.Equal(t, 1, fc.writeCount())
}

func TestOpenTwiceFails(t *testing.T) {
	fc := newFakeChannel()
	m := newTestManager(fc)
	defer m.Close()

	require.NoError(t, m.Open(context.Background(), "sess-1", func(protocol.Event) {}, nil))
	err := m.Open(context.Background(), "sess-2", func(protocol.Event) {}, nil)
	assert.ErrorIs(t, err, ErrAlreadyOpen)
}

func TestCloseIsIdempotent(t *testing.T) {
	fc := newFakeChannel()
	m := newTestManager(fc)

	m.Close() // never opened

	require.NoError(t, m.Open(context.Background(), "sess-1", func(protocol.Event) {}, nil))
	m.Close()
	m.Close()
	assert.False(t, m.Connected())
	assert.Empty(t, m.SessionID())
}

func TestNoDeliveryAfterClose(t *testing.T) {
	fc := newFakeChannel()
	m := newTestManager(fc)

	events := make(chan protocol.Event, 8)
	require.NoError(t, m.Open(context.Background(), "sess-1",
		func(ev protocol.Event) { events <- ev }, nil))
	m.Close()

	select {
	case fc.in <- []byte(`{"type":"phase_update","phase":"DAY"}`):
	default:
	}

	select {
	case ev := <-events:
		t.Fatalf("event delivered after close: %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestUnexpectedFailureReportsDisconnect(t *testing.T) {
	fc := newFakeChannel()
	m := newTestManager(fc)

	lost := make(chan error, 1)
	require.NoError(t, m.Open(context.Background(), "sess-1",
		func(protocol.Event) {}, func(err error) { lost <- err }))

	fc.Close() // remote drop

	select {
	case err := <-lost:
		assert.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("disconnect handler never fired")
	}
	assert.False(t, m.Connected())
}

// TestDialWebSocket exercises the production transport against a real
// server-side accept.
func TestDialWebSocket(t *testing.T) {
	fromClient := make(chan []byte, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer c.Close(websocket.StatusNormalClosure, "done")

		ctx := r.Context()
		if err := c.Write(ctx, websocket.MessageText, []byte(`{"type":"phase_update","phase":"NIGHT"}`)); err != nil {
			return
		}
		_, data, err := c.Read(ctx)
		if err != nil {
			return
		}
		fromClient <- data
		// Hold the connection until the client closes it.
		c.Read(ctx)
	}))
	defer srv.Close()

	wsBase := "ws" + strings.TrimPrefix(srv.URL, "http")
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	m := NewManager(func(id string) string { return wsBase + "/ws/game/" + id + "/" }, logger)
	defer m.Close()

	events := make(chan protocol.Event, 8)
	require.NoError(t, m.Open(context.Background(), "sess-1",
		func(ev protocol.Event) { events <- ev }, nil))

	ev := recvEvent(t, events)
	assert.Equal(t, protocol.PhaseUpdate{Phase: models.PhaseNight}, ev)

	require.NoError(t, m.Send(protocol.NewStartGame()))
	select {
	case data := <-fromClient:
		assert.JSONEq(t, `{"type":"start_game"}`, string(data))
	case <-time.After(time.Second):
		t.Fatal("server never saw the intent")
	}
}
