// internal/models/action.go
package models

// ActionKind is a client-originated intent name, matched to what the server's
// action queue accepts. The client offers actions by phase; finer-grained
// legality (role checks, self-targeting rules) stays a server concern.
type ActionKind string

const (
	ActionKill             ActionKind = "kill"
	ActionCheck            ActionKind = "check"
	ActionHeal             ActionKind = "heal"
	ActionPoison           ActionKind = "poison"
	ActionSleep            ActionKind = "sleep"
	ActionVote             ActionKind = "vote"
	ActionRunForPoliceman  ActionKind = "run_for_policeman"
	ActionVoteForPoliceman ActionKind = "vote_policeman"
)
