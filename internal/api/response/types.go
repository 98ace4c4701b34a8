package response

import (
	"time"

	"github.com/jmdjr/card-games/internal/model"
	"github.com/jmdjr/card-games/internal/services/auth"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
	IsBot       bool   `json:"is_bot,omitempty"`
	BotStrategy string `json:"bot_strategy,omitempty"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
		IsBot:       !p.IsHuman,
		BotStrategy: p.BotStrategy,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// Pile represents a pile in API responses
type Pile struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Size    int      `json:"size"`
	CardIDs []string `json:"card_ids"`
}

// PileFromSnapshot converts a model.PileSnapshot
func PileFromSnapshot(p model.PileSnapshot) Pile {
	cardIDs := make([]string, len(p.CardIDs))
	for i, id := range p.CardIDs {
		cardIDs[i] = string(id)
	}
	return Pile{
		ID:      string(p.ID),
		Name:    p.Name,
		Size:    p.Size,
		CardIDs: cardIDs,
	}
}

// Table represents a table in API responses
type Table struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	GameType      string          `json:"game_type"`
	State         string          `json:"state"`
	CurrentPlayer string          `json:"current_player,omitempty"`
	Players       []string        `json:"players"`
	Piles         map[string]Pile `json:"piles"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableFromSnapshot converts a model.TableSnapshot
func TableFromSnapshot(s *model.TableSnapshot) Table {
	players := make([]string, len(s.Players))
	for i, p := range s.Players {
		players[i] = string(p)
	}

	piles := make(map[string]Pile, len(s.Piles))
	for key, p := range s.Piles {
		piles[key] = PileFromSnapshot(p)
	}

	return Table{
		ID:            string(s.ID),
		Name:          s.Name,
		GameType:      s.GameType,
		State:         string(s.State),
		CurrentPlayer: string(s.CurrentPlayerID),
		Players:       players,
		Piles:         piles,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// TableList is the response for listing tables
type TableList struct {
	Tables []Table `json:"tables"`
}

// TableListFromSnapshots converts a slice of table snapshots
func TableListFromSnapshots(snapshots []*model.TableSnapshot) TableList {
	tables := make([]Table, len(snapshots))
	for i, s := range snapshots {
		tables[i] = TableFromSnapshot(s)
	}
	return TableList{Tables: tables}
}

// GameRecord represents a completed game in API responses
type GameRecord struct {
	ID        string    `json:"id"`
	TableID   string    `json:"table_id"`
	GameType  string    `json:"game_type"`
	Players   []string  `json:"players"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
}

// GameRecordFromModel converts a model.GameRecord
func GameRecordFromModel(r *model.GameRecord) GameRecord {
	players := make([]string, len(r.Players))
	for i, p := range r.Players {
		players[i] = string(p)
	}
	return GameRecord{
		ID:        r.ID,
		TableID:   string(r.TableID),
		GameType:  r.GameType,
		Players:   players,
		StartedAt: r.StartedAt,
		EndedAt:   r.EndedAt,
	}
}

// GameRecordList is the response for listing a table's game records
type GameRecordList struct {
	Records []GameRecord `json:"records"`
}

// GameRecordListFromModels converts a slice of game records
func GameRecordListFromModels(records []*model.GameRecord) GameRecordList {
	out := make([]GameRecord, len(records))
	for i, r := range records {
		out[i] = GameRecordFromModel(r)
	}
	return GameRecordList{Records: out}
}

// ActionResult is the response for a player action
type ActionResult struct {
	Accepted bool  `json:"accepted"`
	Table    Table `json:"table"`
}

// BotTurn represents one bot turn in a processing run
type BotTurn struct {
	PlayerID string `json:"player_id"`
	Action   string `json:"action"`
	Accepted bool   `json:"accepted"`
}

// BotTurnList is the response for processing bot turns
type BotTurnList struct {
	Turns []BotTurn `json:"turns"`
}
