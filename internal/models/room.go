// internal/models/room.go
package models

// RoomSummary is one entry from the available-rooms listing. Summaries are
// rebuilt on every directory poll and never retained across polls.
type RoomSummary struct {
	SessionID           string `json:"session_id"`
	Phase               Phase  `json:"phase"`
	Round               int    `json:"round"`
	AlivePlayers        int    `json:"alive_players"`
	TotalPlayers        int    `json:"total_players"`
	PendingActionsCount int    `json:"pending_actions_count"`
	WaitingForActions   bool   `json:"waiting_for_actions"`
}
