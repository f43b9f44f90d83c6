// internal/actions/resolver.go
package actions

import (
	"github.com/wolfden/werewolf-client/internal/models"
)

// The resolver is a pure mapping from (phase, roster, local player) to the
// set of actions the local player may submit right now, with the obviously
// wrong targets pre-filtered. The server remains the final authority on
// legality; the client must never be the sole enforcer.

// nightActions is the full night set. Which of these a given role may really
// perform is a server concern; the client offers all of them and lets the
// server reject.
var nightActions = []models.ActionKind{
	models.ActionKill,
	models.ActionCheck,
	models.ActionHeal,
	models.ActionPoison,
	models.ActionSleep,
}

// ActionSet is the resolver's result: an ordered action list plus eligible
// targets per action.
type ActionSet struct {
	actions []models.ActionKind
	targets map[models.ActionKind][]string
}

// Actions returns the available action kinds in a stable order.
func (s ActionSet) Actions() []models.ActionKind {
	return s.actions
}

// Contains reports whether kind is currently available.
func (s ActionSet) Contains(kind models.ActionKind) bool {
	for _, a := range s.actions {
		if a == kind {
			return true
		}
	}
	return false
}

// Targets returns the eligible target ids for kind, nil when the action is
// not available.
func (s ActionSet) Targets(kind models.ActionKind) []string {
	return s.targets[kind]
}

// Empty reports whether no action is available.
func (s ActionSet) Empty() bool {
	return len(s.actions) == 0
}

func (s *ActionSet) add(kind models.ActionKind, targets []string) {
	if s.targets == nil {
		s.targets = make(map[models.ActionKind][]string)
	}
	s.actions = append(s.actions, kind)
	s.targets[kind] = targets
}

// Available computes the action set for the local player. With no identity
// selected, or a dead local player, nothing is available.
func Available(phase models.Phase, roster []models.Player, localID string) ActionSet {
	var set ActionSet
	if localID == "" {
		return set
	}
	if local, ok := findPlayer(roster, localID); ok && !local.Alive() {
		// Dead players submit nothing; the server rejects them anyway.
		return set
	}

	switch phase {
	case models.PhaseSetup, models.PhaseEnded:
		// Identity selection during SETUP is a pre-game step, not a
		// submitted action.

	case models.PhasePolicemanSelection:
		candidates := candidateIDs(roster)
		switch {
		case contains(candidates, localID):
			// Candidates may not vote, and are already running.
		case len(candidates) == 0:
			set.add(models.ActionRunForPoliceman, []string{localID})
		default:
			set.add(models.ActionVoteForPoliceman, candidates)
		}

	case models.PhaseNight:
		ids := rosterIDs(roster)
		for _, kind := range nightActions {
			set.add(kind, ids)
		}

	case models.PhaseDay:
		set.add(models.ActionVote, rosterIDs(roster))
	}
	return set
}

func findPlayer(roster []models.Player, id string) (models.Player, bool) {
	for _, p := range roster {
		if p.ID == id {
			return p, true
		}
	}
	return models.Player{}, false
}

func candidateIDs(roster []models.Player) []string {
	var ids []string
	for _, p := range roster {
		if p.RunningForPoliceman {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func rosterIDs(roster []models.Player) []string {
	ids := make([]string, 0, len(roster))
	for _, p := range roster {
		ids = append(ids, p.ID)
	}
	return ids
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
