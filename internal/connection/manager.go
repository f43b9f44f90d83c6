// internal/connection/manager.go
package connection

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wolfden/werewolf-client/internal/protocol"
)

// ErrNotConnected is returned by Send when no channel is open. The intent is
// dropped, not queued or retried.
var ErrNotConnected = errors.New("connection: channel is not open")

// ErrAlreadyOpen is returned by Open when the manager already holds a live
// channel. A manager owns at most one channel at a time; leave first.
var ErrAlreadyOpen = errors.New("connection: channel already open")

const writeTimeout = 5 * time.Second

// EventHandler receives each decoded inbound event, one at a time, from a
// single goroutine. An event is fully handled before the next is delivered.
type EventHandler func(ev protocol.Event)

// DisconnectHandler is invoked once when the channel fails unexpectedly. The
// manager does not reconnect; recovering is the caller's job via a fresh Open.
type DisconnectHandler func(err error)

// Manager owns the lifecycle of one realtime channel bound to a session. It
// is held by exactly one session controller; there is no ambient registry of
// connections.
type Manager struct {
	logger *logrus.Logger
	urlFor func(sessionID string) string
	dial   DialFunc

	mu        sync.Mutex
	ch        Channel
	sessionID string
	cancel    context.CancelFunc
	gen       uint64
}

// NewManager builds a manager that dials urlFor(sessionID) over WebSocket.
func NewManager(urlFor func(sessionID string) string, logger *logrus.Logger) *Manager {
	return &Manager{
		logger: logger,
		urlFor: urlFor,
		dial:   DialWebSocket,
	}
}

// SetDialFunc overrides the transport. Used by tests.
func (m *Manager) SetDialFunc(dial DialFunc) {
	m.dial = dial
}

// Open establishes the channel for sessionID and starts routing inbound
// frames to onEvent until Close. ctx bounds the dial only; the read pump
// outlives it.
func (m *Manager) Open(ctx context.Context, sessionID string, onEvent EventHandler, onDisconnect DisconnectHandler) error {
	m.mu.Lock()
	if m.ch != nil {
		m.mu.Unlock()
		return ErrAlreadyOpen
	}
	m.mu.Unlock()

	url := m.urlFor(sessionID)
	ch, err := m.dial(ctx, url)
	if err != nil {
		return fmt.Errorf("dial %s: %w", url, err)
	}

	pumpCtx, cancel := context.WithCancel(context.Background())

	m.mu.Lock()
	if m.ch != nil {
		// Lost the race to a concurrent Open.
		m.mu.Unlock()
		cancel()
		ch.Close()
		return ErrAlreadyOpen
	}
	m.ch = ch
	m.sessionID = sessionID
	m.cancel = cancel
	gen := m.gen
	m.mu.Unlock()

	m.logger.WithFields(logrus.Fields{
		"session": sessionID,
		"url":     url,
	}).Info("game channel connected")

	go m.readPump(pumpCtx, ch, gen, onEvent, onDisconnect)
	return nil
}

// readPump delivers decoded events until the channel fails or is closed
// locally. Parse failures drop the frame and leave state untouched.
func (m *Manager) readPump(ctx context.Context, ch Channel, gen uint64, onEvent EventHandler, onDisconnect DisconnectHandler) {
	for {
		data, err := ch.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				// Closed locally; not a failure.
				return
			}
			sid := m.SessionID()
			if m.detach(gen) {
				m.logger.WithFields(logrus.Fields{
					"session": sid,
					"error":   err,
				}).Warn("game channel lost")
				if onDisconnect != nil {
					onDisconnect(err)
				}
			}
			return
		}

		ev, err := protocol.Decode(data)
		if err != nil {
			m.logger.Warnf("dropping malformed frame: %v", err)
			continue
		}
		if unknown, ok := ev.(protocol.Unknown); ok {
			m.logger.Debugf("ignoring frame with unrecognized type %q", unknown.Type)
			continue
		}
		if !m.current(gen) {
			return
		}
		onEvent(ev)
	}
}

// Send serializes the intent and writes it to the open channel. A send while
// disconnected or a transport failure is reported to the caller and the
// intent is dropped.
func (m *Manager) Send(in protocol.Intent) error {
	m.mu.Lock()
	ch := m.ch
	m.mu.Unlock()
	if ch == nil {
		return ErrNotConnected
	}

	data, err := protocol.EncodeIntent(in)
	if err != nil {
		return fmt.Errorf("encode intent: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := ch.Write(ctx, data); err != nil {
		return fmt.Errorf("write intent: %w", err)
	}
	return nil
}

// Close releases the channel. Idempotent; safe when never opened.
func (m *Manager) Close() {
	m.mu.Lock()
	ch := m.ch
	cancel := m.cancel
	sessionID := m.sessionID
	if ch != nil {
		m.ch = nil
		m.cancel = nil
		m.sessionID = ""
		m.gen++
	}
	m.mu.Unlock()

	if ch == nil {
		return
	}
	cancel()
	if err := ch.Close(); err != nil {
		m.logger.Debugf("closing channel for session %s: %v", sessionID, err)
	}
	m.logger.WithField("session", sessionID).Info("game channel closed")
}

// Connected reports whether a channel is currently open.
func (m *Manager) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ch != nil
}

// SessionID returns the bound session, or "" when closed.
func (m *Manager) SessionID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionID
}

// detach clears the channel after an unexpected failure. Returns false when
// another goroutine already closed or replaced it.
func (m *Manager) detach(gen uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen || m.ch == nil {
		return false
	}
	m.ch.Close()
	m.ch = nil
	m.sessionID = ""
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.gen++
	return true
}

// current reports whether gen still identifies the live channel.
func (m *Manager) current(gen uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen == gen && m.ch != nil
}
