// internal/models/models_test.go
package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePhase(t *testing.T) {
	for _, s := range []string{"SETUP", "POLICEMAN_SELECTION", "NIGHT", "DAY", "ENDED"} {
		p, err := ParsePhase(s)
		require.NoError(t, err)
		assert.Equal(t, Phase(s), p)
	}

	// Legacy server spelling of the terminal phase.
	p, err := ParsePhase("GAME_OVER")
	require.NoError(t, err)
	assert.Equal(t, PhaseEnded, p)

	_, err = ParsePhase("TWILIGHT")
	assert.Error(t, err)
}

func TestPlayerDecode(t *testing.T) {
	raw := []byte(`{
		"player_id": "p3",
		"name": "Player 4",
		"status": "ALIVE",
		"role": "UNASSIGNED",
		"is_policeman": false,
		"running_for_policeman": true,
		"position": 4
	}`)

	var p Player
	require.NoError(t, json.Unmarshal(raw, &p))
	assert.Equal(t, "p3", p.ID)
	assert.Equal(t, StatusAlive, p.Status)
	assert.Equal(t, Role(""), p.Role, "UNASSIGNED normalizes to empty role")
	assert.True(t, p.RunningForPoliceman)
	assert.True(t, p.Alive())
}

func TestPlayerDecodeRejectsBadStatus(t *testing.T) {
	var p Player
	err := json.Unmarshal([]byte(`{"player_id":"p0","status":"SLEEPING"}`), &p)
	assert.Error(t, err)
}

func TestPlayerDecodeRejectsBadRole(t *testing.T) {
	var p Player
	err := json.Unmarshal([]byte(`{"player_id":"p0","status":"ALIVE","role":"VAMPIRE"}`), &p)
	assert.Error(t, err)
}

func TestRoomSummaryDecode(t *testing.T) {
	raw := []byte(`{
		"session_id": "abc-123",
		"phase": "NIGHT",
		"round": 2,
		"alive_players": 9,
		"total_players": 12,
		"pending_actions_count": 3,
		"waiting_for_actions": true,
		"players": [{"player_id": "p0"}]
	}`)

	var r RoomSummary
	require.NoError(t, json.Unmarshal(raw, &r))
	assert.Equal(t, "abc-123", r.SessionID)
	assert.Equal(t, PhaseNight, r.Phase)
	assert.Equal(t, 9, r.AlivePlayers)
	assert.True(t, r.WaitingForActions)
}
