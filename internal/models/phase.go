// internal/models/phase.go
package models

import (
	"encoding/json"
	"fmt"
)

// Phase is the server-declared stage of play. The client never infers a phase
// on its own; it only adopts the value asserted by the server.
type Phase string

const (
	PhaseSetup              Phase = "SETUP"
	PhasePolicemanSelection Phase = "POLICEMAN_SELECTION"
	PhaseNight              Phase = "NIGHT"
	PhaseDay                Phase = "DAY"
	PhaseEnded              Phase = "ENDED"
)

// ParsePhase validates a wire phase string. Older server builds spell the
// terminal phase "GAME_OVER"; both spellings normalize to PhaseEnded.
func ParsePhase(s string) (Phase, error) {
	switch Phase(s) {
	case PhaseSetup, PhasePolicemanSelection, PhaseNight, PhaseDay, PhaseEnded:
		return Phase(s), nil
	}
	if s == "GAME_OVER" {
		return PhaseEnded, nil
	}
	return "", fmt.Errorf("unknown phase %q", s)
}

// UnmarshalJSON decodes and validates a phase, so any struct embedding a Phase
// rejects malformed payloads at the decode boundary.
func (p *Phase) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePhase(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
