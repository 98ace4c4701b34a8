package model

import "time"

// TableID uniquely identifies a table
type TableID string

// PileID uniquely identifies a pile instance
type PileID string

// GameState represents the coarse lifecycle phase of a table's game
type GameState string

const (
	GameStateWaiting GameState = "waiting" // Players joining, no game running
	GameStateActive  GameState = "active"  // Game in progress
	GameStatePaused  GameState = "paused"  // Game suspended, resumable
	GameStateEnded   GameState = "ended"   // Game over, terminal
)

// validTransitions describes the game state machine:
// Waiting -> Active -> {Paused <-> Active} -> Ended, no way out of Ended.
var validTransitions = map[GameState][]GameState{
	GameStateWaiting: {GameStateActive},
	GameStateActive:  {GameStatePaused, GameStateEnded},
	GameStatePaused:  {GameStateActive, GameStateEnded},
	GameStateEnded:   {},
}

// CanTransition reports whether the state machine allows moving from s to next
func (s GameState) CanTransition(next GameState) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PileSnapshot is an observational record of a pile: identity, size, and
// per-card identity only. Not a round-trippable save format.
type PileSnapshot struct {
	ID      PileID   `json:"id"`
	Name    string   `json:"name"`
	Size    int      `json:"size"`
	CardIDs []CardID `json:"card_ids"`
}

// TableSnapshot is an observational record of a table and its registered
// piles, persisted for inspection and history rather than restoration.
type TableSnapshot struct {
	ID              TableID                 `json:"id"`
	Name            string                  `json:"name"`
	GameType        string                  `json:"game_type"`
	State           GameState               `json:"state"`
	CurrentPlayerID PlayerID                `json:"current_player_id,omitempty"`
	Piles           map[string]PileSnapshot `json:"piles"`
	Players         []PlayerID              `json:"players"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

// GameRecord is a lightweight record of a completed game
type GameRecord struct {
	ID        string     `json:"id"`
	TableID   TableID    `json:"table_id"`
	GameType  string     `json:"game_type"`
	Players   []PlayerID `json:"players"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   time.Time  `json:"ended_at"`
}
