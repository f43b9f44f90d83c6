// internal/session/controller.go
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/wolfden/werewolf-client/internal/actions"
	"github.com/wolfden/werewolf-client/internal/api"
	"github.com/wolfden/werewolf-client/internal/connection"
	"github.com/wolfden/werewolf-client/internal/models"
	"github.com/wolfden/werewolf-client/internal/protocol"
)

var (
	// ErrNotJoined is returned for operations that need a joined session.
	ErrNotJoined = errors.New("session: no session joined")
	// ErrAlreadyJoined is returned by join/create while a session is active.
	ErrAlreadyJoined = errors.New("session: already in a session, leave first")
	// ErrNoIdentity rejects an action submitted before an identity was
	// selected. Nothing is sent.
	ErrNoIdentity = errors.New("session: no local player selected")
	// ErrUnknownPlayer rejects an identity that is not on the roster.
	ErrUnknownPlayer = errors.New("session: player id not on roster")
)

// Controller is the composition root and the only type presentation code
// calls. It owns the connection manager for the joined session and the state
// snapshot, and discards both on leave.
type Controller struct {
	logger *logrus.Logger
	api    *api.Client
	conn   *connection.Manager

	mu    sync.Mutex
	state *State

	// OnUpdate receives a fresh snapshot after every applied event.
	OnUpdate func(State)
	// OnServerError receives protocol-level error messages, which are
	// user-visible and mutate nothing.
	OnServerError func(message string)
	// OnDisconnect fires once when the channel drops unexpectedly. The
	// session is terminal at that point until the user rejoins.
	OnDisconnect func(err error)
}

// NewController wires the HTTP API client and a connection manager together.
// The manager must be owned by this controller alone.
func NewController(apiClient *api.Client, conn *connection.Manager, logger *logrus.Logger) *Controller {
	return &Controller{
		logger: logger,
		api:    apiClient,
		conn:   conn,
	}
}

// CreateSession creates a fresh session on the server and joins it.
func (c *Controller) CreateSession(ctx context.Context) (string, error) {
	c.mu.Lock()
	joined := c.state != nil
	c.mu.Unlock()
	if joined {
		return "", ErrAlreadyJoined
	}

	sessionID, err := c.api.CreateGame(ctx)
	if err != nil {
		return "", err
	}
	if err := c.attach(ctx, sessionID); err != nil {
		return "", err
	}
	return sessionID, nil
}

// JoinSession opens the realtime channel for an existing session, typically
// picked from the room directory.
func (c *Controller) JoinSession(ctx context.Context, sessionID string) error {
	c.mu.Lock()
	joined := c.state != nil
	c.mu.Unlock()
	if joined {
		return ErrAlreadyJoined
	}
	return c.attach(ctx, sessionID)
}

func (c *Controller) attach(ctx context.Context, sessionID string) error {
	if err := c.conn.Open(ctx, sessionID, c.handleEvent, c.handleDisconnect); err != nil {
		return fmt.Errorf("join session %s: %w", sessionID, err)
	}
	c.mu.Lock()
	c.state = NewState(sessionID)
	c.mu.Unlock()
	c.logger.WithField("session", sessionID).Info("joined session")
	return nil
}

// SelectIdentity records which roster entry is the local player. Purely
// client-side; the id is not transmitted until the first submitted action
// carries it.
func (c *Controller) SelectIdentity(playerID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == nil {
		return ErrNotJoined
	}
	if len(c.state.Roster) > 0 {
		if _, ok := c.state.Player(playerID); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownPlayer, playerID)
		}
	}
	c.state.LocalPlayerID = playerID
	return nil
}

// StartGame sends the start_game intent over the channel. Once joined, start
// is socket-only; there is no HTTP fallback.
func (c *Controller) StartGame() error {
	c.mu.Lock()
	joined := c.state != nil
	c.mu.Unlock()
	if !joined {
		return ErrNotJoined
	}
	if err := c.conn.Send(protocol.NewStartGame()); err != nil {
		c.logger.Warnf("start_game not sent: %v", err)
		return err
	}
	return nil
}

// SubmitAction sends a player_action intent carrying the current local
// identity. Precondition violations are rejected locally with a diagnostic
// and never reach the network.
func (c *Controller) SubmitAction(action models.ActionKind, targetID string) error {
	c.mu.Lock()
	if c.state == nil {
		c.mu.Unlock()
		return ErrNotJoined
	}
	localID := c.state.LocalPlayerID
	c.mu.Unlock()

	if localID == "" {
		c.logger.Warnf("dropping %s action: no local player selected", action)
		return ErrNoIdentity
	}

	if err := c.conn.Send(protocol.NewPlayerAction(localID, action, targetID)); err != nil {
		c.logger.Warnf("dropping %s action: %v", action, err)
		return err
	}
	c.logger.WithFields(logrus.Fields{
		"player": localID,
		"action": action,
		"target": targetID,
	}).Debug("action submitted")
	return nil
}

// LeaveSession closes the channel and discards the snapshot, returning the
// controller to the pre-join state. Frames still in flight on the old channel
// can no longer reach live state. Idempotent.
func (c *Controller) LeaveSession() {
	c.conn.Close()
	c.mu.Lock()
	if c.state != nil {
		c.logger.WithField("session", c.state.SessionID).Info("left session")
	}
	c.state = nil
	c.mu.Unlock()
}

// Joined reports whether a session is active.
func (c *Controller) Joined() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state != nil
}

// Snapshot returns a copy of the current state. The second return is false
// when no session is joined.
func (c *Controller) Snapshot() (State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == nil {
		return State{}, false
	}
	return c.state.Snapshot(), true
}

// AvailableActions computes what the local player may do against the current
// snapshot.
func (c *Controller) AvailableActions() actions.ActionSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == nil {
		return actions.ActionSet{}
	}
	return actions.Available(c.state.Phase, c.state.Roster, c.state.LocalPlayerID)
}

// handleEvent is the single event-application path. Events arrive one at a
// time from the manager's read pump; each is applied atomically under the
// lock before the next is processed.
func (c *Controller) handleEvent(ev protocol.Event) {
	if serverErr, ok := ev.(protocol.ServerError); ok {
		c.logger.Errorf("server error: %s", serverErr.Message)
		if c.OnServerError != nil {
			c.OnServerError(serverErr.Message)
		}
		return
	}

	c.mu.Lock()
	if c.state == nil {
		// Session already left; late frames from a detached channel are
		// dropped.
		c.mu.Unlock()
		return
	}
	c.state.Apply(ev)
	snap := c.state.Snapshot()
	c.mu.Unlock()

	if c.OnUpdate != nil {
		c.OnUpdate(snap)
	}
}

func (c *Controller) handleDisconnect(err error) {
	c.logger.Warnf("session disconnected: %v", err)
	if c.OnDisconnect != nil {
		c.OnDisconnect(err)
	}
}
