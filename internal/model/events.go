package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	// Pile events
	EventCardAdded      EventType = "card_added"
	EventCardsAdded     EventType = "cards_added"
	EventCardRemoved    EventType = "card_removed"
	EventCardsRemoved   EventType = "cards_removed"
	EventCardMoved      EventType = "card_moved"
	EventShuffled       EventType = "shuffled"
	EventCardsOrganized EventType = "cards_organized"
	EventPileCleared    EventType = "pile_cleared"
	EventPileChanged    EventType = "pile_changed"

	// Hand events
	EventCardSelected     EventType = "card_selected"
	EventCardDeselected   EventType = "card_deselected"
	EventSelectionChanged EventType = "selection_changed"

	// Deck events
	EventCardDrawn  EventType = "card_drawn"
	EventCardsDrawn EventType = "cards_drawn"
	EventDeckReset  EventType = "deck_reset"

	// Table events
	EventTransferCompleted EventType = "transfer_completed"
	EventTransferBlocked   EventType = "transfer_blocked"
	EventTransferFailed    EventType = "transfer_failed"
	EventPileRegistered    EventType = "pile_registered"
	EventPileUnregistered  EventType = "pile_unregistered"
	EventPlayerJoined      EventType = "player_joined"
	EventPlayerLeft        EventType = "player_left"
	EventGameStateChanged  EventType = "game_state_changed"
	EventTurnChanged       EventType = "turn_changed"
)

// Event is the base structure for all domain events. Pile-level events set
// PileID; the table re-publishes them with TableID and the registry PileKey
// filled in so observers see one uniform stream.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	TableID   TableID   `json:"table_id,omitempty"`
	PileID    PileID    `json:"pile_id,omitempty"`
	PileKey   string    `json:"pile_key,omitempty"`
	PlayerID  PlayerID  `json:"player_id,omitempty"`
	Payload   any       `json:"payload,omitempty"`
}

// CardAddedPayload contains data for single card addition events
type CardAddedPayload struct {
	Card     Card `json:"card"`
	Position int  `json:"position"`
}

// CardsAddedPayload contains data for batch addition events
type CardsAddedPayload struct {
	Cards    []Card `json:"cards"`
	Position int    `json:"position"`
}

// CardRemovedPayload contains data for single card removal events
type CardRemovedPayload struct {
	Card     Card `json:"card"`
	Position int  `json:"position"`
}

// CardsRemovedPayload contains data for batch removal events
type CardsRemovedPayload struct {
	Cards []Card `json:"cards"`
}

// CardMovedPayload contains data for in-pile relocation events
type CardMovedPayload struct {
	CardID CardID `json:"card_id"`
	From   int    `json:"from"`
	To     int    `json:"to"`
}

// ShuffledPayload contains data for shuffle events
type ShuffledPayload struct {
	Size int `json:"size"`
}

// PileClearedPayload contains data for pile cleared events
type PileClearedPayload struct {
	Cards []Card `json:"cards"`
}

// CardSelectedPayload contains data for card selection events
type CardSelectedPayload struct {
	CardID CardID `json:"card_id"`
}

// CardDeselectedPayload contains data for card deselection events
type CardDeselectedPayload struct {
	CardID CardID `json:"card_id"`
}

// SelectionChangedPayload carries the full selection after any change
type SelectionChangedPayload struct {
	SelectedIDs []CardID `json:"selected_ids"`
}

// CardDrawnPayload contains data for single draw events
type CardDrawnPayload struct {
	Card Card `json:"card"`
}

// CardsDrawnPayload contains data for batch draw events
type CardsDrawnPayload struct {
	Cards []Card `json:"cards"`
}

// DeckResetPayload contains data for deck reset events
type DeckResetPayload struct {
	Size int `json:"size"`
}

// TransferCompletedPayload contains data for completed transfers
type TransferCompletedPayload struct {
	SourceKey string `json:"source_key"`
	TargetKey string `json:"target_key"`
	Cards     []Card `json:"cards"`
}

// TransferBlockedPayload contains data for validation-blocked transfers
type TransferBlockedPayload struct {
	SourceKey string   `json:"source_key"`
	TargetKey string   `json:"target_key"`
	CardIDs   []CardID `json:"card_ids"`
	Reason    string   `json:"reason"`
}

// TransferFailedPayload contains data for transfers that failed mid-execution
type TransferFailedPayload struct {
	SourceKey string `json:"source_key"`
	TargetKey string `json:"target_key"`
	Reason    string `json:"reason"`
}

// PileRegisteredPayload contains data for pile registration events
type PileRegisteredPayload struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// PileUnregisteredPayload contains data for pile unregistration events
type PileUnregisteredPayload struct {
	Key string `json:"key"`
}

// PlayerJoinedPayload contains data for player joined events
type PlayerJoinedPayload struct {
	Player   Player   `json:"player"`
	PileKeys []string `json:"pile_keys"`
}

// PlayerLeftPayload contains data for player left events
type PlayerLeftPayload struct {
	PlayerID    PlayerID `json:"player_id"`
	DisplayName string   `json:"display_name"`
}

// GameStateChangedPayload contains data for game state transitions
type GameStateChangedPayload struct {
	Previous GameState `json:"previous"`
	Current  GameState `json:"current"`
}

// TurnChangedPayload contains data for turn change events
type TurnChangedPayload struct {
	PreviousPlayerID PlayerID `json:"previous_player_id,omitempty"`
	CurrentPlayerID  PlayerID `json:"current_player_id"`
}
