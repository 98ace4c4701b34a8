// Package session owns the live tables: it creates them with
// catalog-seeded piles, seats players, routes actions and transfers, and
// archives snapshots and completed-game records through storage.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jmdjr/card-games/internal/catalog"
	"github.com/jmdjr/card-games/internal/dependencies/clock"
	"github.com/jmdjr/card-games/internal/dependencies/random"
	"github.com/jmdjr/card-games/internal/model"
	"github.com/jmdjr/card-games/internal/pile"
	"github.com/jmdjr/card-games/internal/player"
	"github.com/jmdjr/card-games/internal/storage"
	"github.com/jmdjr/card-games/internal/table"
)

const (
	// TableIDLength is the length of generated table ids
	TableIDLength = 6
	// TableIDAlphabet is the characters used in table ids (avoid confusing chars)
	TableIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// Shared pile registry keys
	DeckKey    = "deck"
	DiscardKey = "discard"
	PlayKey    = "play"

	// HandPile is the local name of the hand every seated player gets
	HandPile = "hand"
)

// session is one live table and everything attached to it. Its mutex
// serializes all mutations of the table and its piles; the core
// collections themselves are unlocked.
type session struct {
	mu        sync.Mutex
	table     *table.Table
	deck      *pile.Deck
	players   map[model.PlayerID]*player.Player
	startedAt time.Time
}

// Controller manages live table sessions
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger

	mu       sync.Mutex
	sessions map[model.TableID]*session
}

// NewController creates a new session controller
func NewController(
	storage storage.Storage,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		storage:  storage,
		clock:    clock,
		random:   random,
		logger:   logger,
		sessions: make(map[model.TableID]*session),
	}
}

func (c *Controller) get(id model.TableID) (*session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sess, ok := c.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrTableNotFound, id)
	}
	return sess, nil
}

// CreateTable creates a live table seeded for the given game type: a
// shuffled deck from the catalog plus shared discard and play piles.
func (c *Controller) CreateTable(ctx context.Context, name, gameType string) (*model.TableSnapshot, error) {
	seed, err := catalog.ForGameType(gameType)
	if err != nil {
		return nil, err
	}

	id := model.TableID(c.random.String(TableIDLength, TableIDAlphabet))
	tbl := table.New(id, name, gameType, c.clock, c.logger)

	deck := pile.NewDeck(
		model.PileID(fmt.Sprintf("%s_deck", id)),
		"draw pile",
		seed,
		pile.DeckConfig{AutoShuffle: true},
		c.clock, c.random,
	)
	discard := pile.New(model.PileID(fmt.Sprintf("%s_discard", id)), "discard pile", pile.Config{}, c.clock, c.random)
	play := pile.New(model.PileID(fmt.Sprintf("%s_play", id)), "play area", pile.Config{}, c.clock, c.random)

	if err := tbl.RegisterPile(DeckKey, deck); err != nil {
		return nil, err
	}
	if err := tbl.RegisterPile(DiscardKey, discard); err != nil {
		return nil, err
	}
	if err := tbl.RegisterPile(PlayKey, play); err != nil {
		return nil, err
	}

	sess := &session{
		table:   tbl,
		deck:    deck,
		players: make(map[model.PlayerID]*player.Player),
	}

	c.mu.Lock()
	c.sessions[id] = sess
	c.mu.Unlock()

	c.logger.Info("table created",
		slog.String("table_id", string(id)),
		slog.String("game_type", gameType),
	)

	snapshot := tbl.Snapshot()
	if err := c.storage.SaveTableSnapshot(ctx, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// GetTable returns the current snapshot of a table, live if possible,
// falling back to the stored snapshot for closed tables
func (c *Controller) GetTable(ctx context.Context, id model.TableID) (*model.TableSnapshot, error) {
	if sess, err := c.get(id); err == nil {
		sess.mu.Lock()
		defer sess.mu.Unlock()
		snapshot := sess.table.Snapshot()
		return &snapshot, nil
	}
	return c.storage.GetTableSnapshot(ctx, id)
}

// ListTables returns snapshots of all known tables
func (c *Controller) ListTables(ctx context.Context) ([]*model.TableSnapshot, error) {
	return c.storage.ListTableSnapshots(ctx)
}

// CloseTable tears down a live table and deletes its stored snapshot.
// Completed-game records are kept.
func (c *Controller) CloseTable(ctx context.Context, id model.TableID) error {
	c.mu.Lock()
	_, ok := c.sessions[id]
	delete(c.sessions, id)
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %q", model.ErrTableNotFound, id)
	}
	c.logger.Info("table closed", slog.String("table_id", string(id)))
	return c.storage.DeleteTableSnapshot(ctx, id)
}

// Subscribe attaches a listener to a live table's event stream
func (c *Controller) Subscribe(id model.TableID, l func(model.Event)) (func(), error) {
	sess, err := c.get(id)
	if err != nil {
		return nil, err
	}
	return sess.table.Subscribe(l), nil
}

// JoinTable seats a player with a fresh hand
func (c *Controller) JoinTable(ctx context.Context, id model.TableID, p model.Player) error {
	sess, err := c.get(id)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	hand := pile.NewHand(
		model.PileID(fmt.Sprintf("%s_hand", p.ID)),
		fmt.Sprintf("%s's hand", p.DisplayName),
		pile.HandConfig{IsPlayerHand: true},
		c.clock, c.random,
	)

	facade := player.New(p, map[string]table.Collection{HandPile: hand}, c.logger)
	if err := facade.JoinTable(sess.table); err != nil {
		return err
	}
	sess.players[p.ID] = facade

	return c.saveSnapshot(ctx, sess)
}

// LeaveTable unseats a player and removes their piles
func (c *Controller) LeaveTable(ctx context.Context, id model.TableID, playerID model.PlayerID) error {
	sess, err := c.get(id)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	facade, ok := sess.players[playerID]
	if !ok {
		return fmt.Errorf("%w: %q", model.ErrPlayerNotFound, playerID)
	}
	if err := facade.LeaveTable(); err != nil {
		return err
	}
	delete(sess.players, playerID)

	return c.saveSnapshot(ctx, sess)
}

// StartGame begins play on a waiting table
func (c *Controller) StartGame(ctx context.Context, id model.TableID) error {
	sess, err := c.get(id)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if len(sess.players) == 0 {
		return model.ErrInsufficientPlayers
	}
	if err := sess.table.StartGame(); err != nil {
		return err
	}
	sess.startedAt = c.clock.Now()

	return c.saveSnapshot(ctx, sess)
}

// PauseGame suspends play
func (c *Controller) PauseGame(ctx context.Context, id model.TableID) error {
	sess, err := c.get(id)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.table.PauseGame(); err != nil {
		return err
	}
	return c.saveSnapshot(ctx, sess)
}

// ResumeGame reactivates a paused game
func (c *Controller) ResumeGame(ctx context.Context, id model.TableID) error {
	sess, err := c.get(id)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.table.ResumeGame(); err != nil {
		return err
	}
	return c.saveSnapshot(ctx, sess)
}

// EndGame finishes the game and archives a completed-game record
func (c *Controller) EndGame(ctx context.Context, id model.TableID) (*model.GameRecord, error) {
	sess, err := c.get(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.table.EndGame(); err != nil {
		return nil, err
	}

	players := sess.table.Players()
	playerIDs := make([]model.PlayerID, len(players))
	for i, p := range players {
		playerIDs[i] = p.ID
	}

	record := &model.GameRecord{
		ID:        uuid.NewString(),
		TableID:   id,
		GameType:  sess.table.GameType(),
		Players:   playerIDs,
		StartedAt: sess.startedAt,
		EndedAt:   c.clock.Now(),
	}
	if err := c.storage.SaveGameRecord(ctx, record); err != nil {
		return nil, err
	}

	c.logger.Info("game ended",
		slog.String("table_id", string(id)),
		slog.String("record_id", record.ID),
	)

	if err := c.saveSnapshot(ctx, sess); err != nil {
		return nil, err
	}
	return record, nil
}

// SetCurrentPlayer hands the turn to a seated player
func (c *Controller) SetCurrentPlayer(ctx context.Context, id model.TableID, playerID model.PlayerID) error {
	sess, err := c.get(id)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.table.SetCurrentPlayer(playerID); err != nil {
		return err
	}
	return c.saveSnapshot(ctx, sess)
}

// PerformAction routes a player intent through their facade. The bool
// mirrors the facade's accepted/rejected outcome; errors are reserved for
// unknown tables and players.
func (c *Controller) PerformAction(ctx context.Context, id model.TableID, playerID model.PlayerID, action model.Action) (bool, error) {
	sess, err := c.get(id)
	if err != nil {
		return false, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	facade, ok := sess.players[playerID]
	if !ok {
		return false, fmt.Errorf("%w: %q", model.ErrPlayerNotFound, playerID)
	}

	accepted := facade.RequestAction(action)
	if accepted {
		if err := c.saveSnapshot(ctx, sess); err != nil {
			return true, err
		}
	}
	return accepted, nil
}

// RequestTransfer moves cards between two registered piles directly,
// without going through a player facade
func (c *Controller) RequestTransfer(ctx context.Context, id model.TableID, sourceKey string, cardIDs []model.CardID, targetKey string) error {
	sess, err := c.get(id)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.table.RequestTransfer(sourceKey, cardIDs, targetKey, nil); err != nil {
		return err
	}
	return c.saveSnapshot(ctx, sess)
}

// GetPile returns the snapshot of one registered pile
func (c *Controller) GetPile(ctx context.Context, id model.TableID, key string) (*model.PileSnapshot, error) {
	sess, err := c.get(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	coll, ok := sess.table.Pile(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrPileNotFound, key)
	}
	snapshot := coll.Snapshot()
	return &snapshot, nil
}

// GetGameRecords returns the completed-game history of a table
func (c *Controller) GetGameRecords(ctx context.Context, id model.TableID) ([]*model.GameRecord, error) {
	return c.storage.GetGameRecordsForTable(ctx, id)
}

// saveSnapshot persists the table's current observational state.
// Caller holds the session mutex.
func (c *Controller) saveSnapshot(ctx context.Context, sess *session) error {
	snapshot := sess.table.Snapshot()
	return c.storage.SaveTableSnapshot(ctx, &snapshot)
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateTable(ctx context.Context, name, gameType string) (*model.TableSnapshot, error)
	GetTable(ctx context.Context, id model.TableID) (*model.TableSnapshot, error)
	ListTables(ctx context.Context) ([]*model.TableSnapshot, error)
	CloseTable(ctx context.Context, id model.TableID) error
	Subscribe(id model.TableID, l func(model.Event)) (func(), error)
	JoinTable(ctx context.Context, id model.TableID, p model.Player) error
	LeaveTable(ctx context.Context, id model.TableID, playerID model.PlayerID) error
	StartGame(ctx context.Context, id model.TableID) error
	PauseGame(ctx context.Context, id model.TableID) error
	ResumeGame(ctx context.Context, id model.TableID) error
	EndGame(ctx context.Context, id model.TableID) (*model.GameRecord, error)
	SetCurrentPlayer(ctx context.Context, id model.TableID, playerID model.PlayerID) error
	PerformAction(ctx context.Context, id model.TableID, playerID model.PlayerID, action model.Action) (bool, error)
	RequestTransfer(ctx context.Context, id model.TableID, sourceKey string, cardIDs []model.CardID, targetKey string) error
	GetPile(ctx context.Context, id model.TableID, key string) (*model.PileSnapshot, error)
	GetGameRecords(ctx context.Context, id model.TableID) ([]*model.GameRecord, error)
}

var _ ControllerInterface = (*Controller)(nil)
