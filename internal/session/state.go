// internal/session/state.go
package session

import (
	"github.com/wolfden/werewolf-client/internal/models"
	"github.com/wolfden/werewolf-client/internal/protocol"
)

// State is the single authoritative local snapshot of a joined game. It is
// mutated only by the controller's event path, one event at a time, so a
// reader of a Snapshot never observes a half-applied update.
type State struct {
	SessionID     string
	Phase         models.Phase
	Round         int
	Roster        []models.Player
	LocalPlayerID string
}

// NewState returns the pre-game snapshot for a freshly joined session.
func NewState(sessionID string) *State {
	return &State{
		SessionID: sessionID,
		Phase:     models.PhaseSetup,
	}
}

// Apply folds one inbound event into the snapshot. Transitions are total and
// last-write-wins per field: replaying the same event is a no-op difference-
// wise, which tolerates at-least-once delivery from the channel.
//
// LocalPlayerID is never touched here. Identity selection is an explicit user
// action, not something inferred from a roster broadcast.
func (s *State) Apply(ev protocol.Event) {
	switch e := ev.(type) {
	case protocol.GameState:
		s.Phase = e.Phase
		s.Roster = clonePlayers(e.Players)
		if e.Round != nil {
			s.Round = *e.Round
		}
	case protocol.PhaseUpdate:
		s.Phase = e.Phase
	case protocol.PlayerUpdate:
		s.Roster = clonePlayers(e.Players)
	case protocol.ServerError, protocol.Unknown:
		// No state mutation. ServerError is surfaced by the controller;
		// Unknown is the forward-compatibility no-op.
	}
}

// Snapshot returns a deep copy safe to hand to presentation code.
func (s *State) Snapshot() State {
	out := *s
	out.Roster = clonePlayers(s.Roster)
	return out
}

// Player looks up a roster entry by id.
func (s *State) Player(id string) (models.Player, bool) {
	for _, p := range s.Roster {
		if p.ID == id {
			return p, true
		}
	}
	return models.Player{}, false
}

func clonePlayers(in []models.Player) []models.Player {
	if in == nil {
		return nil
	}
	out := make([]models.Player, len(in))
	copy(out, in)
	return out
}
