// internal/protocol/intents.go
package protocol

import (
	"encoding/json"

	"github.com/wolfden/werewolf-client/internal/models"
)

// Intent is a client-originated request, not yet validated by the server.
type Intent interface {
	isIntent()
}

// PlayerAction carries the local player's identity, the action kind, and the
// chosen target.
type PlayerAction struct {
	Type     string            `json:"type"`
	PlayerID string            `json:"player_id"`
	Action   models.ActionKind `json:"action"`
	TargetID string            `json:"target_id"`
}

// StartGame asks the server to deal roles and begin the first night.
type StartGame struct {
	Type string `json:"type"`
}

func (PlayerAction) isIntent() {}
func (StartGame) isIntent()    {}

// NewPlayerAction builds a player_action intent.
func NewPlayerAction(playerID string, action models.ActionKind, targetID string) PlayerAction {
	return PlayerAction{
		Type:     "player_action",
		PlayerID: playerID,
		Action:   action,
		TargetID: targetID,
	}
}

// NewStartGame builds a start_game intent.
func NewStartGame() StartGame {
	return StartGame{Type: "start_game"}
}

// EncodeIntent serializes an intent for the wire.
func EncodeIntent(in Intent) ([]byte, error) {
	return json.Marshal(in)
}
