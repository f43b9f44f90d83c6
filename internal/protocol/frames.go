// internal/protocol/frames.go
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/wolfden/werewolf-client/internal/models"
)

// Inbound frames are decoded exactly once at the channel boundary into a
// tagged variant over the recognized kinds plus an Unknown catch-all.
// Unrecognized type strings are a forward-compatibility contract, never an
// error; frames with a missing type or a malformed phase/players payload are
// parse errors and must be dropped by the caller without touching state.

var ErrMissingType = errors.New("frame has no type discriminator")

// Event is one decoded inbound frame.
type Event interface {
	isEvent()
}

// GameState replaces phase and roster wholesale. Round is nil when the server
// omitted it (the initial lobby snapshot does, per-action broadcasts do not).
type GameState struct {
	Phase   models.Phase
	Players []models.Player
	Round   *int
}

// PhaseUpdate replaces the phase only.
type PhaseUpdate struct {
	Phase models.Phase
}

// PlayerUpdate replaces the roster only.
type PlayerUpdate struct {
	Players []models.Player
}

// ServerError is a protocol-level error announcement. It never mutates state;
// it is surfaced to the user.
type ServerError struct {
	Message string
}

// Unknown is any frame with an unrecognized type discriminator. Applying it
// is a no-op.
type Unknown struct {
	Type string
}

func (GameState) isEvent()    {}
func (PhaseUpdate) isEvent()  {}
func (PlayerUpdate) isEvent() {}
func (ServerError) isEvent()  {}
func (Unknown) isEvent()      {}

// envelope is the raw wire shape before the type switch. Phase and Players
// stay raw here so each frame kind can enforce its own required fields.
type envelope struct {
	Type    string          `json:"type"`
	Phase   *string         `json:"phase"`
	Players json.RawMessage `json:"players"`
	Round   *int            `json:"round"`
	Message *string         `json:"message"`
}

// Decode parses a raw frame into an Event. A non-nil error means the frame
// must be dropped; the caller reports it to its diagnostics sink.
func Decode(raw []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("invalid frame json: %w", err)
	}
	if env.Type == "" {
		return nil, ErrMissingType
	}

	switch env.Type {
	case "game_state":
		phase, err := requirePhase(env.Phase)
		if err != nil {
			return nil, err
		}
		players, err := requirePlayers(env.Players)
		if err != nil {
			return nil, err
		}
		return GameState{Phase: phase, Players: players, Round: env.Round}, nil

	case "phase_update":
		phase, err := requirePhase(env.Phase)
		if err != nil {
			return nil, err
		}
		return PhaseUpdate{Phase: phase}, nil

	case "player_update":
		players, err := requirePlayers(env.Players)
		if err != nil {
			return nil, err
		}
		return PlayerUpdate{Players: players}, nil

	case "error":
		msg := ""
		if env.Message != nil {
			msg = *env.Message
		}
		return ServerError{Message: msg}, nil

	default:
		return Unknown{Type: env.Type}, nil
	}
}

func requirePhase(raw *string) (models.Phase, error) {
	if raw == nil {
		return "", errors.New("frame is missing required field phase")
	}
	phase, err := models.ParsePhase(*raw)
	if err != nil {
		return "", fmt.Errorf("bad phase field: %w", err)
	}
	return phase, nil
}

func requirePlayers(raw json.RawMessage) ([]models.Player, error) {
	if len(raw) == 0 {
		return nil, errors.New("frame is missing required field players")
	}
	var players []models.Player
	if err := json.Unmarshal(raw, &players); err != nil {
		return nil, fmt.Errorf("bad players field: %w", err)
	}
	for i, p := range players {
		if p.ID == "" {
			return nil, fmt.Errorf("bad players field: entry %d has no player_id", i)
		}
	}
	return players, nil
}
