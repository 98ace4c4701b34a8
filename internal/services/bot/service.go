package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmdjr/card-games/internal/dependencies/clock"
	"github.com/jmdjr/card-games/internal/dependencies/random"
	"github.com/jmdjr/card-games/internal/model"
	"github.com/jmdjr/card-games/internal/services/session"
	"github.com/jmdjr/card-games/internal/storage"
)

const (
	// PlayerIDAlphabet is the character set for generating bot player IDs
	PlayerIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	// PlayerIDLength is the length of generated bot player IDs
	PlayerIDLength = 16
	// MaxBotTurns is a safety limit for the ProcessBotTurns loop
	MaxBotTurns = 1000
)

// ErrUnknownStrategy is returned when a bot is requested with a strategy
// name that was never registered
var ErrUnknownStrategy = errors.New("unknown bot strategy")

// TurnResult records one bot turn taken during ProcessBotTurns
type TurnResult struct {
	PlayerID model.PlayerID
	Action   model.Action
	Accepted bool
}

// Service manages bot players at tables
type Service struct {
	storage    storage.Storage
	sessions   session.ControllerInterface
	strategies map[string]Strategy
	clock      clock.Clock
	random     random.Random
	logger     *slog.Logger
}

// NewService creates a new bot Service
func NewService(
	store storage.Storage,
	sessions session.ControllerInterface,
	strategies map[string]Strategy,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		storage:    store,
		sessions:   sessions,
		strategies: strategies,
		clock:      clk,
		random:     rnd,
		logger:     logger.With(slog.String("component", "bot-service")),
	}
}

// CreateBotPlayer creates a new bot player and saves it to storage
func (s *Service) CreateBotPlayer(ctx context.Context, displayName string, strategy string) (*model.Player, error) {
	player := &model.Player{
		ID:          model.PlayerID("bot-" + s.random.String(PlayerIDLength, PlayerIDAlphabet)),
		DisplayName: displayName,
		IsHuman:     false,
		IsGuest:     true,
		BotStrategy: strategy,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	return player, nil
}

// AddBotToTable creates a bot player and seats it at the table
func (s *Service) AddBotToTable(ctx context.Context, tableID model.TableID, strategy string) (*model.Player, error) {
	if _, ok := s.strategies[strategy]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, strategy)
	}

	snapshot, err := s.sessions.GetTable(ctx, tableID)
	if err != nil {
		return nil, err
	}

	displayName := fmt.Sprintf("Bot %d", len(snapshot.Players)+1)
	bot, err := s.CreateBotPlayer(ctx, displayName, strategy)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.JoinTable(ctx, tableID, *bot); err != nil {
		return nil, err
	}

	s.logger.Info("bot added to table",
		slog.String("table_id", string(tableID)),
		slog.String("bot_id", string(bot.ID)),
		slog.String("bot_name", displayName),
	)

	return bot, nil
}

// RemoveBotFromTable unseats a bot player. Humans cannot be removed this way.
func (s *Service) RemoveBotFromTable(ctx context.Context, tableID model.TableID, botID model.PlayerID) error {
	player, err := s.storage.GetPlayer(ctx, botID)
	if err != nil {
		return err
	}
	if player.IsHuman {
		return fmt.Errorf("%w: %q is not a bot", model.ErrPlayerNotFound, botID)
	}
	return s.sessions.LeaveTable(ctx, tableID, botID)
}

// TakeTurn has one bot choose and perform a single action
func (s *Service) TakeTurn(ctx context.Context, tableID model.TableID, botID model.PlayerID) (*TurnResult, error) {
	player, err := s.storage.GetPlayer(ctx, botID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.sessions.GetTable(ctx, tableID)
	if err != nil {
		return nil, err
	}

	strategy := s.strategyForPlayer(player)
	if strategy == nil {
		return nil, fmt.Errorf("no strategy available for bot %q", botID)
	}

	action := strategy.ChooseAction(snapshot, botID)
	accepted, err := s.sessions.PerformAction(ctx, tableID, botID, action)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("bot took turn",
		slog.String("table_id", string(tableID)),
		slog.String("bot_id", string(botID)),
		slog.String("action", string(action.Type)),
		slog.Bool("accepted", accepted),
	)

	return &TurnResult{PlayerID: botID, Action: action, Accepted: accepted}, nil
}

// ProcessBotTurns runs turns while the current player is a bot, advancing
// the turn to the next seated player after each one. It stops when the
// turn reaches a human, the table leaves the active state, or the safety
// limit trips. Returns all turns taken so handlers can broadcast updates.
func (s *Service) ProcessBotTurns(ctx context.Context, tableID model.TableID) ([]TurnResult, error) {
	var results []TurnResult

	for i := 0; i < MaxBotTurns; i++ {
		snapshot, err := s.sessions.GetTable(ctx, tableID)
		if err != nil {
			return results, err
		}

		if snapshot.State != model.GameStateActive {
			break
		}
		current := snapshot.CurrentPlayerID
		if current == "" {
			break
		}

		player, err := s.storage.GetPlayer(ctx, current)
		if err != nil {
			return results, err
		}
		if player.IsHuman {
			break
		}

		result, err := s.TakeTurn(ctx, tableID, current)
		if err != nil {
			return results, err
		}
		results = append(results, *result)

		next := nextPlayer(snapshot.Players, current)
		if next == current {
			break // Bot playing alone, one turn is enough
		}
		if err := s.sessions.SetCurrentPlayer(ctx, tableID, next); err != nil {
			return results, err
		}
	}

	return results, nil
}

// nextPlayer returns the player after current in seating order
func nextPlayer(players []model.PlayerID, current model.PlayerID) model.PlayerID {
	for i, id := range players {
		if id == current {
			return players[(i+1)%len(players)]
		}
	}
	if len(players) > 0 {
		return players[0]
	}
	return current
}

// strategyForPlayer returns the strategy for a bot player, falling back to
// the first registered strategy if the player's strategy is not found
func (s *Service) strategyForPlayer(player *model.Player) Strategy {
	if st, ok := s.strategies[player.BotStrategy]; ok {
		return st
	}
	// Fallback: use first available strategy
	for _, st := range s.strategies {
		return st
	}
	return nil
}
