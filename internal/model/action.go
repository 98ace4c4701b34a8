package model

// ActionType identifies a player intent routed through the table protocol
type ActionType string

const (
	ActionPlay   ActionType = "play"   // Transfer named cards source -> target
	ActionDraw   ActionType = "draw"   // Transfer the top card source -> target
	ActionReveal ActionType = "reveal" // Show a pile's card faces
	ActionHide   ActionType = "hide"   // Hide a pile's card faces
	ActionPass   ActionType = "pass"   // End this player's turn, no card movement
)

// Action describes a player intent. SourceKey/TargetKey name piles in the
// table registry; CardIDs is empty for draw (implied top card) and pass.
// Unrecognized types are accepted as game-specific extensions.
type Action struct {
	Type      ActionType `json:"type"`
	SourceKey string     `json:"source_key,omitempty"`
	TargetKey string     `json:"target_key,omitempty"`
	CardIDs   []CardID   `json:"card_ids,omitempty"`
}
