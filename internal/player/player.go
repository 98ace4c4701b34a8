// Package player binds a participant identity to its piles and the table's
// action and turn protocol. A Player holds only ids and a table reference;
// the table owns the collections themselves.
package player

import (
	"log/slog"

	"github.com/jmdjr/card-games/internal/model"
	"github.com/jmdjr/card-games/internal/table"
)

// peeker is the capability a draw action needs from its source when no
// explicit cards are named
type peeker interface {
	Peek() (model.Card, bool)
}

// faceToggler is the capability reveal and hide act on. Visibility is a
// pile-local flag; the table's transfer protocol is not involved.
type faceToggler interface {
	Reveal()
	HideFaces()
}

// Player mediates between generic intents and a table's transfer protocol
type Player struct {
	info  model.Player
	piles map[string]table.Collection

	tbl    *table.Table
	detach func()
	logger *slog.Logger

	onTurnStarted func()
	onTurnEnded   func()
}

// New creates an unseated player holding its local piles by name
func New(info model.Player, piles map[string]table.Collection, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	if piles == nil {
		piles = make(map[string]table.Collection)
	}
	return &Player{
		info:   info,
		piles:  piles,
		logger: logger.With(slog.String("player_id", string(info.ID))),
	}
}

// ID returns the player's identity
func (p *Player) ID() model.PlayerID {
	return p.info.ID
}

// Info returns the player's identity record
func (p *Player) Info() model.Player {
	return p.info
}

// OnTurnStarted registers a callback fired when the turn passes to this player
func (p *Player) OnTurnStarted(fn func()) {
	p.onTurnStarted = fn
}

// OnTurnEnded registers a callback fired when the turn leaves this player
func (p *Player) OnTurnEnded(fn func()) {
	p.onTurnEnded = fn
}

// JoinTable seats the player, registers its piles with the table, and
// starts listening for turn changes
func (p *Player) JoinTable(t *table.Table) error {
	if err := t.AddPlayer(p.info, p.piles); err != nil {
		return err
	}
	p.tbl = t
	p.detach = t.Subscribe(p.handleTableEvent)
	return nil
}

// LeaveTable unseats the player and detaches its listeners
func (p *Player) LeaveTable() error {
	if p.tbl == nil {
		return model.ErrNotSeated
	}
	if p.detach != nil {
		p.detach()
		p.detach = nil
	}
	err := p.tbl.RemovePlayer(p.info.ID)
	p.tbl = nil
	return err
}

// Seated reports whether the player is currently at a table
func (p *Player) Seated() bool {
	return p.tbl != nil
}

// PileKey returns the table registry key for one of this player's piles
func (p *Player) PileKey(localName string) string {
	return table.PlayerPileKey(p.info.ID, localName)
}

func (p *Player) handleTableEvent(ev model.Event) {
	if ev.Type != model.EventTurnChanged {
		return
	}
	payload, ok := ev.Payload.(model.TurnChangedPayload)
	if !ok {
		return
	}
	if payload.PreviousPlayerID == p.info.ID && payload.CurrentPlayerID != p.info.ID && p.onTurnEnded != nil {
		p.onTurnEnded()
	}
	if payload.CurrentPlayerID == p.info.ID && p.onTurnStarted != nil {
		p.onTurnStarted()
	}
}

// RequestAction dispatches an intent by type. Play and draw route through
// the table's transfer protocol; reveal and hide flip the named pile's
// visibility flag directly. Unrecognized types are accepted and reported
// true so games can layer their own actions on top.
func (p *Player) RequestAction(action model.Action) bool {
	if p.tbl == nil {
		p.logger.Warn("action requested while unseated", slog.String("action", string(action.Type)))
		return false
	}

	switch action.Type {
	case model.ActionPlay:
		return p.play(action)
	case model.ActionDraw:
		return p.draw(action)
	case model.ActionReveal:
		return p.setFaces(action, true)
	case model.ActionHide:
		return p.setFaces(action, false)
	case model.ActionPass:
		return p.pass()
	default:
		p.logger.Debug("custom action requested", slog.String("action", string(action.Type)))
		return true
	}
}

func (p *Player) play(action model.Action) bool {
	if action.SourceKey == "" || action.TargetKey == "" || len(action.CardIDs) == 0 {
		return false
	}
	err := p.tbl.RequestTransfer(action.SourceKey, action.CardIDs, action.TargetKey, map[string]any{
		"action":    string(model.ActionPlay),
		"player_id": string(p.info.ID),
	})
	if err != nil {
		p.logger.Warn("play rejected", slog.String("error", err.Error()))
		return false
	}
	return true
}

func (p *Player) draw(action model.Action) bool {
	if action.SourceKey == "" || action.TargetKey == "" {
		return false
	}
	ids := action.CardIDs
	if len(ids) == 0 {
		src, ok := p.tbl.Pile(action.SourceKey)
		if !ok {
			return false
		}
		pk, ok := src.(peeker)
		if !ok {
			return false
		}
		top, ok := pk.Peek()
		if !ok {
			return false
		}
		ids = []model.CardID{top.ID}
	}
	err := p.tbl.RequestTransfer(action.SourceKey, ids, action.TargetKey, map[string]any{
		"action":    string(model.ActionDraw),
		"player_id": string(p.info.ID),
	})
	if err != nil {
		p.logger.Warn("draw rejected", slog.String("error", err.Error()))
		return false
	}
	return true
}

func (p *Player) setFaces(action model.Action, show bool) bool {
	key := action.SourceKey
	if key == "" {
		key = action.TargetKey
	}
	if key == "" {
		return false
	}
	c, ok := p.tbl.Pile(key)
	if !ok {
		return false
	}
	ft, ok := c.(faceToggler)
	if !ok {
		return false
	}
	if show {
		ft.Reveal()
	} else {
		ft.HideFaces()
	}
	return true
}

func (p *Player) pass() bool {
	if p.tbl.CurrentPlayerID() != p.info.ID {
		return false
	}
	p.logger.Debug("turn passed")
	return true
}
