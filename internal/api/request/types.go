package request

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateTableRequest is the request body for creating a table
type CreateTableRequest struct {
	Name     string `json:"name"`
	GameType string `json:"game_type"`
}

// SetTurnRequest is the request body for setting the current player
type SetTurnRequest struct {
	PlayerID string `json:"player_id"`
}

// TransferRequest is the request body for moving cards between piles
type TransferRequest struct {
	SourceKey string   `json:"source_key"`
	TargetKey string   `json:"target_key"`
	CardIDs   []string `json:"card_ids"`
}

// ActionRequest is the request body for a player action
type ActionRequest struct {
	Type      string   `json:"type"`
	SourceKey string   `json:"source_key,omitempty"`
	TargetKey string   `json:"target_key,omitempty"`
	CardIDs   []string `json:"card_ids,omitempty"`
}

// AddBotRequest is the request body for adding a bot to a table
type AddBotRequest struct {
	Strategy string `json:"strategy,omitempty"`
}
