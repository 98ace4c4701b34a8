package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case Table:
		o.printTable(v)
	case TableList:
		o.printTableList(v)
	case Pile:
		o.printPile(v)
	case GameRecord:
		o.printGameRecord(v)
	case GameRecordList:
		o.printGameRecordList(v)
	case ActionResult:
		o.printActionResult(v)
	case BotTurnList:
		o.printBotTurnList(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
	IsBot       bool   `json:"is_bot,omitempty"`
	BotStrategy string `json:"bot_strategy,omitempty"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// Pile response type
type Pile struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Size    int      `json:"size"`
	CardIDs []string `json:"card_ids"`
}

// Table response type
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

// TableList response type
type TableList struct {
	Tables []Table `json:"tables"`
}

// GameRecord response type
type GameRecord struct {
	ID        string    `json:"id"`
	TableID   string    `json:"table_id"`
	GameType  string    `json:"game_type"`
	Players   []string  `json:"players"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
}

// GameRecordList response type
type GameRecordList struct {
	Records []GameRecord `json:"records"`
}

// ActionResult response type
type ActionResult struct {
	Accepted bool  `json:"accepted"`
	Table    Table `json:"table"`
}

// BotTurn response type
type BotTurn struct {
	PlayerID string `json:"player_id"`
	Action   string `json:"action"`
	Accepted bool   `json:"accepted"`
}

// BotTurnList response type
type BotTurnList struct {
	Turns []BotTurn `json:"turns"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	if p.IsBot {
		fmt.Printf("Bot strategy: %s\n", p.BotStrategy)
		return
	}
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printTable(t Table) {
	fmt.Printf("Table: %s (%s)\n", t.Name, t.ID)
	fmt.Printf("Game: %s\n", t.GameType)
	fmt.Printf("State: %s\n", t.State)
	if t.CurrentPlayer != "" {
		fmt.Printf("Current player: %s\n", t.CurrentPlayer)
	}

	fmt.Printf("Players (%d):\n", len(t.Players))
	for _, p := range t.Players {
		marker := ""
		if p == t.CurrentPlayer {
			marker = " *"
		}
		fmt.Printf("  - %s%s\n", p, marker)
	}

	// Piles in a stable order
	keys := make([]string, 0, len(t.Piles))
	for k := range t.Piles {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Printf("Piles (%d):\n", len(keys))
	for _, k := range keys {
		p := t.Piles[k]
		fmt.Printf("  %-20s %s (%d cards)\n", k, p.Name, p.Size)
	}
}

func (o *Output) printTableList(l TableList) {
	if len(l.Tables) == 0 {
		fmt.Println("No tables")
		return
	}
	for _, t := range l.Tables {
		fmt.Printf("%s  %-20s %-10s %s (%d players)\n",
			t.ID, t.Name, t.GameType, t.State, len(t.Players))
	}
}

func (o *Output) printPile(p Pile) {
	fmt.Printf("Pile: %s (%s)\n", p.Name, p.ID)
	fmt.Printf("Size: %d\n", p.Size)
	if len(p.CardIDs) > 0 {
		fmt.Printf("Cards (bottom to top): %s\n", strings.Join(p.CardIDs, ", "))
	}
}

func (o *Output) printGameRecord(r GameRecord) {
	fmt.Printf("Record: %s\n", r.ID)
	fmt.Printf("Table: %s (%s)\n", r.TableID, r.GameType)
	fmt.Printf("Players: %s\n", strings.Join(r.Players, ", "))
	fmt.Printf("Started: %s\n", r.StartedAt.Format(time.RFC3339))
	fmt.Printf("Ended: %s\n", r.EndedAt.Format(time.RFC3339))
	fmt.Printf("Duration: %s\n", r.EndedAt.Sub(r.StartedAt))
}

func (o *Output) printGameRecordList(l GameRecordList) {
	if len(l.Records) == 0 {
		fmt.Println("No completed games")
		return
	}
	for _, r := range l.Records {
		fmt.Printf("%s  %-10s %s  %d players  %s\n",
			r.ID, r.GameType, r.EndedAt.Format("2006-01-02 15:04"),
			len(r.Players), r.EndedAt.Sub(r.StartedAt))
	}
}

func (o *Output) printActionResult(a ActionResult) {
	if a.Accepted {
		fmt.Println("Action accepted")
	} else {
		fmt.Println("Action rejected")
	}
	o.printTable(a.Table)
}

func (o *Output) printBotTurnList(l BotTurnList) {
	if len(l.Turns) == 0 {
		fmt.Println("No bot turns taken")
		return
	}
	for _, t := range l.Turns {
		status := "ok"
		if !t.Accepted {
			status = "rejected"
		}
		fmt.Printf("%s: %s (%s)\n", t.PlayerID, t.Action, status)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
