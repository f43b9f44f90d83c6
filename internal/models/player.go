// internal/models/player.go
package models

import (
	"encoding/json"
	"fmt"
)

// PlayerStatus is ALIVE or DEAD; the server owns all status transitions.
type PlayerStatus string

const (
	StatusAlive PlayerStatus = "ALIVE"
	StatusDead  PlayerStatus = "DEAD"
)

// UnmarshalJSON rejects anything outside the two known statuses.
func (ps *PlayerStatus) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch PlayerStatus(s) {
	case StatusAlive, StatusDead:
		*ps = PlayerStatus(s)
		return nil
	}
	return fmt.Errorf("unknown player status %q", s)
}

// Role is only populated for the local player's own entry, or for everyone
// once the game has ended. The server sends "UNASSIGNED" before roles are
// dealt; that normalizes to the empty Role.
type Role string

const (
	RoleWerewolf Role = "WEREWOLF"
	RoleVillager Role = "VILLAGER"
	RoleSeer     Role = "SEER"
	RoleWitch    Role = "WITCH"
	RoleHunter   Role = "HUNTER"
	RoleIdiot    Role = "IDIOT"
)

func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch Role(s) {
	case RoleWerewolf, RoleVillager, RoleSeer, RoleWitch, RoleHunter, RoleIdiot:
		*r = Role(s)
	case "", "UNASSIGNED":
		*r = ""
	default:
		return fmt.Errorf("unknown role %q", s)
	}
	return nil
}

// Player is one roster entry. ID is the stable server-assigned key in the
// form "p<index>"; roster order is display order only.
type Player struct {
	ID                  string       `json:"player_id"`
	Name                string       `json:"name"`
	Status              PlayerStatus `json:"status"`
	Role                Role         `json:"role,omitempty"`
	RunningForPoliceman bool         `json:"running_for_policeman"`
	IsPoliceman         bool         `json:"is_policeman"`
	Position            int          `json:"position,omitempty"`
}

func (p Player) Alive() bool {
	return p.Status == StatusAlive
}
