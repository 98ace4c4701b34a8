// Package table implements the transfer authority: a registry of named
// card collections and players, the game state machine, and the single
// place where a card move between collections is proposed, validated, and
// committed.
package table

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/jmdjr/card-games/internal/dependencies/clock"
	"github.com/jmdjr/card-games/internal/model"
)

// Collection is the capability contract every registrable pile-like type
// satisfies, so the table never probes the runtime shape of a participant.
type Collection interface {
	ID() model.PileID
	Name() string
	Size() int
	IsFull() bool
	CanAccept(count int) bool
	HasCard(id model.CardID) bool
	Snapshot() model.PileSnapshot
	Subscribe(l func(model.Event)) func()
}

// Source is a collection that can give up specific cards
type Source interface {
	Collection
	RemoveSpecificCard(id model.CardID) (model.Card, bool)
	RemoveCard() (model.Card, bool)
}

// Target is a collection that accepts cards in batches
type Target interface {
	Collection
	AddCards(cards []model.Card) []model.Card
}

// Transfer is a proposed card move, handed to validators before execution.
// A validator blocks it by calling Block; the first reason recorded wins.
type Transfer struct {
	SourceKey string
	TargetKey string
	Source    Source
	Target    Target
	CardIDs   []model.CardID
	Context   map[string]any

	blocked bool
	reason  string
}

// Block marks the transfer as denied
func (t *Transfer) Block(reason string) {
	t.blocked = true
	if t.reason == "" {
		t.reason = reason
	}
}

// Blocked reports whether a validator denied the transfer, and why
func (t *Transfer) Blocked() (bool, string) {
	return t.blocked, t.reason
}

// Validator is a pluggable game-rule hook run before a transfer executes
type Validator func(*Transfer)

type listenerEntry struct {
	fn func(model.Event)
}

// Table owns collections and players by key (arena-style: participants
// hold keys back into the table, not object references to each other),
// validates and executes transfers between them, and tracks turn and
// game state.
//
// The mutex guards the registries and state fields only; it is never held
// while listeners run or collections mutate, so listeners are free to call
// back into the table. All events fire synchronously before the mutating
// call returns.
type Table struct {
	id       model.TableID
	name     string
	gameType string

	mu          sync.Mutex
	piles       map[string]Collection
	pileDetach  map[string]func()
	pileKeys    map[model.PileID]string
	players     map[model.PlayerID]model.Player
	playerPiles map[model.PlayerID][]string
	state       model.GameState
	currentPlayer model.PlayerID
	validators  []Validator
	listeners   []*listenerEntry

	clock     clock.Clock
	logger    *slog.Logger
	createdAt time.Time
}

// New creates an empty table in the waiting state
func New(id model.TableID, name, gameType string, clk clock.Clock, logger *slog.Logger) *Table {
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Table{
		id:          id,
		name:        name,
		gameType:    gameType,
		piles:       make(map[string]Collection),
		pileDetach:  make(map[string]func()),
		pileKeys:    make(map[model.PileID]string),
		players:     make(map[model.PlayerID]model.Player),
		playerPiles: make(map[model.PlayerID][]string),
		state:       model.GameStateWaiting,
		clock:       clk,
		logger:      logger.With(slog.String("table_id", string(id))),
		createdAt:   clk.Now(),
	}
}

// ID returns the table's identity
func (t *Table) ID() model.TableID {
	return t.id
}

// Name returns the table's display name
func (t *Table) Name() string {
	return t.name
}

// GameType returns the game type the table was created for
func (t *Table) GameType() string {
	return t.gameType
}

// Subscribe attaches a listener to the table's event stream, which carries
// both table-level events and re-published events from registered piles.
// Returns a function that detaches the listener.
func (t *Table) Subscribe(l func(model.Event)) func() {
	entry := &listenerEntry{fn: l}
	t.mu.Lock()
	t.listeners = append(t.listeners, entry)
	t.mu.Unlock()
	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		for i, e := range t.listeners {
			if e == entry {
				t.listeners = append(t.listeners[:i], t.listeners[i+1:]...)
				return
			}
		}
	}
}

// AddValidator registers a game-rule hook consulted before every transfer
func (t *Table) AddValidator(v Validator) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.validators = append(t.validators, v)
}

// dispatch delivers an event to all listeners, outside the table lock
func (t *Table) dispatch(ev model.Event) {
	t.mu.Lock()
	snapshot := make([]*listenerEntry, len(t.listeners))
	copy(snapshot, t.listeners)
	t.mu.Unlock()
	for _, e := range snapshot {
		e.fn(ev)
	}
}

// publish builds and dispatches a table-level event
func (t *Table) publish(typ model.EventType, playerID model.PlayerID, payload any) {
	t.dispatch(model.Event{
		Type:      typ,
		Timestamp: t.clock.Now(),
		TableID:   t.id,
		PlayerID:  playerID,
		Payload:   payload,
	})
}

// RegisterPile registers a collection under a key. The table attaches
// itself as a listener so pile-level events appear on the table stream,
// stamped with the table id and registry key. A collection may hold at
// most one key at a time.
func (t *Table) RegisterPile(key string, c Collection) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", model.ErrPileNotFound)
	}
	t.mu.Lock()
	if _, taken := t.piles[key]; taken {
		t.mu.Unlock()
		return fmt.Errorf("%w: %q", model.ErrPileKeyTaken, key)
	}
	if existing, ok := t.pileKeys[c.ID()]; ok {
		t.mu.Unlock()
		return fmt.Errorf("%w: pile %q already registered as %q", model.ErrPileAlreadyRegistered, c.ID(), existing)
	}
	t.piles[key] = c
	t.pileKeys[c.ID()] = key
	t.mu.Unlock()

	detach := c.Subscribe(func(ev model.Event) {
		ev.TableID = t.id
		ev.PileKey = key
		t.dispatch(ev)
	})

	t.mu.Lock()
	t.pileDetach[key] = detach
	t.mu.Unlock()

	t.logger.Debug("pile registered",
		slog.String("key", key),
		slog.String("pile_id", string(c.ID())),
	)
	t.publish(model.EventPileRegistered, "", model.PileRegisteredPayload{Key: key, Name: c.Name()})
	return nil
}

// UnregisterPile removes a collection from the registry and detaches all
// table listeners from it
func (t *Table) UnregisterPile(key string) error {
	t.mu.Lock()
	c, ok := t.piles[key]
	if !ok {
		t.mu.Unlock()
		return fmt.Errorf("%w: %q", model.ErrPileNotFound, key)
	}
	detach := t.pileDetach[key]
	delete(t.piles, key)
	delete(t.pileDetach, key)
	delete(t.pileKeys, c.ID())
	t.mu.Unlock()

	if detach != nil {
		detach()
	}
	t.publish(model.EventPileUnregistered, "", model.PileUnregisteredPayload{Key: key})
	return nil
}

// Pile looks up a registered collection by key
func (t *Table) Pile(key string) (Collection, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	c, ok := t.piles[key]
	return c, ok
}

// PileKeys returns all registry keys, sorted
func (t *Table) PileKeys() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	keys := make([]string, 0, len(t.piles))
	for k := range t.piles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// PlayerPileKey builds the composite registry key for a player-owned pile
func PlayerPileKey(playerID model.PlayerID, localName string) string {
	return fmt.Sprintf("%s_%s", playerID, localName)
}

// AddPlayer seats a player, registering each of their piles under the
// composite playerID_pileName key so cross-player lookups work uniformly.
// Registration is all-or-nothing: a key collision rolls back the piles
// already registered.
func (t *Table) AddPlayer(p model.Player, piles map[string]Collection) error {
	t.mu.Lock()
	if _, seated := t.players[p.ID]; seated {
		t.mu.Unlock()
		return fmt.Errorf("%w: %q", model.ErrAlreadySeated, p.ID)
	}
	t.players[p.ID] = p
	t.mu.Unlock()

	localNames := make([]string, 0, len(piles))
	for name := range piles {
		localNames = append(localNames, name)
	}
	sort.Strings(localNames)

	var registered []string
	for _, name := range localNames {
		key := PlayerPileKey(p.ID, name)
		if err := t.RegisterPile(key, piles[name]); err != nil {
			for _, k := range registered {
				_ = t.UnregisterPile(k)
			}
			t.mu.Lock()
			delete(t.players, p.ID)
			t.mu.Unlock()
			return err
		}
		registered = append(registered, key)
	}

	t.mu.Lock()
	t.playerPiles[p.ID] = registered
	t.mu.Unlock()

	t.logger.Info("player joined",
		slog.String("player_id", string(p.ID)),
		slog.Int("pile_count", len(registered)),
	)
	t.publish(model.EventPlayerJoined, p.ID, model.PlayerJoinedPayload{Player: p, PileKeys: registered})
	return nil
}

// RemovePlayer unseats a player and unregisters their piles
func (t *Table) RemovePlayer(id model.PlayerID) error {
	t.mu.Lock()
	p, ok := t.players[id]
	if !ok {
		t.mu.Unlock()
		return fmt.Errorf("%w: %q", model.ErrPlayerNotFound, id)
	}
	keys := t.playerPiles[id]
	delete(t.players, id)
	delete(t.playerPiles, id)
	if t.currentPlayer == id {
		t.currentPlayer = ""
	}
	t.mu.Unlock()

	for _, key := range keys {
		_ = t.UnregisterPile(key)
	}

	t.logger.Info("player left", slog.String("player_id", string(id)))
	t.publish(model.EventPlayerLeft, id, model.PlayerLeftPayload{PlayerID: id, DisplayName: p.DisplayName})
	return nil
}

// Player looks up a seated player by id
func (t *Table) Player(id model.PlayerID) (model.Player, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.players[id]
	return p, ok
}

// Players returns all seated players, sorted by id
func (t *Table) Players() []model.Player {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]model.Player, 0, len(t.players))
	for _, p := range t.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// PlayerPiles returns the registry keys of a player's piles
func (t *Table) PlayerPiles(id model.PlayerID) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string{}, t.playerPiles[id]...)
}

// State returns the current game state
func (t *Table) State() model.GameState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// transition attempts a game state change, publishing on success
func (t *Table) transition(next model.GameState) error {
	t.mu.Lock()
	prev := t.state
	if prev == model.GameStateEnded {
		t.mu.Unlock()
		return model.ErrGameEnded
	}
	if !prev.CanTransition(next) {
		t.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", model.ErrInvalidStateTransition, prev, next)
	}
	t.state = next
	t.mu.Unlock()

	t.logger.Info("game state changed",
		slog.String("previous", string(prev)),
		slog.String("current", string(next)),
	)
	t.publish(model.EventGameStateChanged, "", model.GameStateChangedPayload{Previous: prev, Current: next})
	return nil
}

// StartGame moves the table from waiting to active
func (t *Table) StartGame() error {
	return t.transition(model.GameStateActive)
}

// PauseGame suspends an active game
func (t *Table) PauseGame() error {
	return t.transition(model.GameStatePaused)
}

// ResumeGame reactivates a paused game
func (t *Table) ResumeGame() error {
	t.mu.Lock()
	if t.state != model.GameStatePaused {
		prev := t.state
		t.mu.Unlock()
		if prev == model.GameStateEnded {
			return model.ErrGameEnded
		}
		return fmt.Errorf("%w: %s -> %s", model.ErrInvalidStateTransition, prev, model.GameStateActive)
	}
	t.mu.Unlock()
	return t.transition(model.GameStateActive)
}

// EndGame moves the table to the terminal ended state
func (t *Table) EndGame() error {
	return t.transition(model.GameStateEnded)
}

// CurrentPlayerID returns the player whose turn it is, if any
func (t *Table) CurrentPlayerID() model.PlayerID {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currentPlayer
}

// SetCurrentPlayer hands the turn to a seated player. Unknown ids are
// rejected rather than silently accepted.
func (t *Table) SetCurrentPlayer(id model.PlayerID) error {
	t.mu.Lock()
	if _, ok := t.players[id]; !ok {
		t.mu.Unlock()
		return fmt.Errorf("%w: %q", model.ErrPlayerNotFound, id)
	}
	prev := t.currentPlayer
	t.currentPlayer = id
	t.mu.Unlock()

	t.publish(model.EventTurnChanged, id, model.TurnChangedPayload{
		PreviousPlayerID: prev,
		CurrentPlayerID:  id,
	})
	return nil
}

// RequestTransfer proposes moving the named cards from the source
// collection to the target collection. The built-in validation requires
// every requested card to be present in the source and the target to have
// room; registered validators may block for game-specific reasons. A
// blocked transfer mutates nothing.
//
// Execution is atomic in outcome: removals are staged, and any failure
// while committing restores the staged cards to the source, so a non-nil
// error always means the cards are still in the source. By the time a nil
// return is observed, every listener has already seen the completion
// event.
func (t *Table) RequestTransfer(sourceKey string, cardIDs []model.CardID, targetKey string, context map[string]any) error {
	t.mu.Lock()
	srcColl, srcOK := t.piles[sourceKey]
	tgtColl, tgtOK := t.piles[targetKey]
	validators := append([]Validator{}, t.validators...)
	t.mu.Unlock()

	if !srcOK {
		return fmt.Errorf("%w: source %q", model.ErrPileNotFound, sourceKey)
	}
	if !tgtOK {
		return fmt.Errorf("%w: target %q", model.ErrPileNotFound, targetKey)
	}
	src, ok := srcColl.(Source)
	if !ok {
		return fmt.Errorf("%w: %q cannot release cards", model.ErrTransferBlocked, sourceKey)
	}
	tgt, ok := tgtColl.(Target)
	if !ok {
		return fmt.Errorf("%w: %q cannot accept cards", model.ErrTransferBlocked, targetKey)
	}

	transfer := &Transfer{
		SourceKey: sourceKey,
		TargetKey: targetKey,
		Source:    src,
		Target:    tgt,
		CardIDs:   cardIDs,
		Context:   context,
	}

	// Built-in validation: existence in source, room in target
	for _, id := range cardIDs {
		if !src.HasCard(id) {
			transfer.Block(fmt.Sprintf("card %q not in source %q", id, sourceKey))
			break
		}
	}
	if blocked, _ := transfer.Blocked(); !blocked && !tgt.CanAccept(len(cardIDs)) {
		transfer.Block(fmt.Sprintf("target %q cannot accept %d cards", targetKey, len(cardIDs)))
	}

	// Pluggable game-rule validation
	if blocked, _ := transfer.Blocked(); !blocked {
		for _, v := range validators {
			v(transfer)
			if blocked, _ := transfer.Blocked(); blocked {
				break
			}
		}
	}

	if blocked, reason := transfer.Blocked(); blocked {
		t.logger.Warn("transfer blocked",
			slog.String("source", sourceKey),
			slog.String("target", targetKey),
			slog.String("reason", reason),
		)
		t.publish(model.EventTransferBlocked, "", model.TransferBlockedPayload{
			SourceKey: sourceKey,
			TargetKey: targetKey,
			CardIDs:   cardIDs,
			Reason:    reason,
		})
		return fmt.Errorf("%w: %s", model.ErrTransferBlocked, reason)
	}

	// Stage removals
	removed := make([]model.Card, 0, len(cardIDs))
	for _, id := range cardIDs {
		card, ok := src.RemoveSpecificCard(id)
		if !ok {
			t.restore(src, removed)
			return t.fail(sourceKey, targetKey, fmt.Sprintf("card %q vanished from source during transfer", id))
		}
		removed = append(removed, card)
	}

	// Commit
	added := tgt.AddCards(removed)
	if len(added) != len(removed) {
		// Undo the partial add, then put everything back
		for _, card := range added {
			if rem, ok := tgt.(Source); ok {
				_, _ = rem.RemoveSpecificCard(card.ID)
			}
		}
		t.restore(src, removed)
		return t.fail(sourceKey, targetKey, fmt.Sprintf("target %q accepted %d of %d cards", targetKey, len(added), len(removed)))
	}

	t.logger.Info("transfer completed",
		slog.String("source", sourceKey),
		slog.String("target", targetKey),
		slog.Int("card_count", len(removed)),
	)
	t.publish(model.EventTransferCompleted, "", model.TransferCompletedPayload{
		SourceKey: sourceKey,
		TargetKey: targetKey,
		Cards:     removed,
	})
	return nil
}

// restore puts staged cards back into the source after a failed commit
func (t *Table) restore(src Source, cards []model.Card) {
	if len(cards) == 0 {
		return
	}
	if tgt, ok := src.(Target); ok {
		tgt.AddCards(cards)
	}
}

// fail publishes the failure event and returns the transfer error
func (t *Table) fail(sourceKey, targetKey, reason string) error {
	t.logger.Error("transfer failed",
		slog.String("source", sourceKey),
		slog.String("target", targetKey),
		slog.String("reason", reason),
	)
	t.publish(model.EventTransferFailed, "", model.TransferFailedPayload{
		SourceKey: sourceKey,
		TargetKey: targetKey,
		Reason:    reason,
	})
	return fmt.Errorf("%w: %s", model.ErrTransferFailed, reason)
}

// Snapshot returns the table's observational record
func (t *Table) Snapshot() model.TableSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	piles := make(map[string]model.PileSnapshot, len(t.piles))
	for key, c := range t.piles {
		piles[key] = c.Snapshot()
	}
	players := make([]model.PlayerID, 0, len(t.players))
	for id := range t.players {
		players = append(players, id)
	}
	sort.Slice(players, func(i, j int) bool { return players[i] < players[j] })

	return model.TableSnapshot{
		ID:              t.id,
		Name:            t.name,
		GameType:        t.gameType,
		State:           t.state,
		CurrentPlayerID: t.currentPlayer,
		Piles:           piles,
		Players:         players,
		CreatedAt:       t.createdAt,
		UpdatedAt:       t.clock.Now(),
	}
}
