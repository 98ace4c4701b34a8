// Package pile implements the ordered card collections at the heart of the
// system: Pile, the base mutable sequence, plus Deck and Hand built on it.
// Position 0 is the bottom of a pile and the last index is the top. Every
// structural change publishes typed domain events synchronously, in listener
// attachment order, before the mutating call returns.
package pile

import (
	"sort"

	"github.com/jmdjr/card-games/internal/dependencies/clock"
	"github.com/jmdjr/card-games/internal/dependencies/random"
	"github.com/jmdjr/card-games/internal/model"
)

// Listener receives domain events from a pile. An alias so pile types
// satisfy subscription contracts declared against the plain func type.
type Listener = func(model.Event)

// Config holds the rules a pile enforces on additions
type Config struct {
	// Capacity is the maximum card count; 0 means unlimited
	Capacity int

	// AllowDuplicateIDs permits multiple cards with the same id
	AllowDuplicateIDs bool
}

// Pile is an ordered, mutable card sequence with change notification.
// Mutating operations either fully apply or fully reject a single card;
// the batch operations are documented best-effort. Rule violations are
// silent: a false or empty return, no event, no mutation.
//
// A pile is not safe for concurrent use. Each live table's collections are
// mutated only under the table's coordination.
type Pile struct {
	id    model.PileID
	name  string
	cfg   Config
	cards []model.Card

	clock clock.Clock
	rnd   random.Random

	listeners []*listenerEntry

	// beforeRemove runs for each card about to be removed, before the
	// removal is committed and before any event fires. Hand uses it to keep
	// selection consistent with contents.
	beforeRemove func(model.Card)
}

type listenerEntry struct {
	fn Listener
}

// New creates an empty pile. Nil clock or random fall back to the real
// implementations.
func New(id model.PileID, name string, cfg Config, clk clock.Clock, rnd random.Random) *Pile {
	if clk == nil {
		clk = clock.New()
	}
	if rnd == nil {
		rnd = random.New()
	}
	return &Pile{
		id:    id,
		name:  name,
		cfg:   cfg,
		clock: clk,
		rnd:   rnd,
	}
}

// ID returns the pile's identity
func (p *Pile) ID() model.PileID {
	return p.id
}

// Name returns the pile's display name
func (p *Pile) Name() string {
	return p.name
}

// Subscribe attaches a listener and returns a function that detaches it.
// Listeners fire synchronously in attachment order.
func (p *Pile) Subscribe(l Listener) func() {
	entry := &listenerEntry{fn: l}
	p.listeners = append(p.listeners, entry)
	return func() {
		for i, e := range p.listeners {
			if e == entry {
				p.listeners = append(p.listeners[:i], p.listeners[i+1:]...)
				return
			}
		}
	}
}

// publish dispatches an event to all listeners. The listener slice is
// copied so a listener may unsubscribe during dispatch.
func (p *Pile) publish(t model.EventType, payload any) {
	if len(p.listeners) == 0 {
		return
	}
	ev := model.Event{
		Type:      t,
		Timestamp: p.clock.Now(),
		PileID:    p.id,
		Payload:   payload,
	}
	snapshot := make([]*listenerEntry, len(p.listeners))
	copy(snapshot, p.listeners)
	for _, e := range snapshot {
		e.fn(ev)
	}
}

// changed publishes the coarse change marker that follows every mutation
func (p *Pile) changed() {
	p.publish(model.EventPileChanged, nil)
}

// accepts reports whether a single card passes the capacity and
// duplicate-id rules
func (p *Pile) accepts(card model.Card) bool {
	if p.IsFull() {
		return false
	}
	if !p.cfg.AllowDuplicateIDs && p.HasCard(card.ID) {
		return false
	}
	return true
}

// AddCard appends a card to the top of the pile. Returns false with no
// mutation and no event if the pile is full or the duplicate-id rule is
// violated.
func (p *Pile) AddCard(card model.Card) bool {
	return p.AddCardAt(card, len(p.cards))
}

// AddCardAt inserts a card at the given position, clamped to the valid
// range. Same rejection rules as AddCard.
func (p *Pile) AddCardAt(card model.Card, position int) bool {
	if !p.accepts(card) {
		return false
	}
	position = clamp(position, 0, len(p.cards))
	p.cards = append(p.cards, model.Card{})
	copy(p.cards[position+1:], p.cards[position:])
	p.cards[position] = card
	p.publish(model.EventCardAdded, model.CardAddedPayload{Card: card, Position: position})
	p.changed()
	return true
}

// AddCards appends a batch of cards to the top of the pile. Best-effort:
// cards individually rejected by the capacity or duplicate-id rules are
// skipped, the rest are inserted contiguously. Returns the accepted cards;
// one batch event fires only if at least one card was accepted.
func (p *Pile) AddCards(cards []model.Card) []model.Card {
	return p.AddCardsAt(cards, len(p.cards))
}

// AddCardsAt is AddCards inserting contiguously at the given position
func (p *Pile) AddCardsAt(cards []model.Card, position int) []model.Card {
	position = clamp(position, 0, len(p.cards))

	var accepted []model.Card
	room := len(cards)
	if p.cfg.Capacity > 0 {
		room = p.cfg.Capacity - len(p.cards)
	}
	seen := make(map[model.CardID]bool)
	for _, card := range cards {
		if len(accepted) >= room {
			break
		}
		if !p.cfg.AllowDuplicateIDs && (p.HasCard(card.ID) || seen[card.ID]) {
			continue
		}
		seen[card.ID] = true
		accepted = append(accepted, card)
	}
	if len(accepted) == 0 {
		return nil
	}

	p.cards = append(p.cards[:position], append(append([]model.Card{}, accepted...), p.cards[position:]...)...)
	p.publish(model.EventCardsAdded, model.CardsAddedPayload{Cards: accepted, Position: position})
	p.changed()
	return accepted
}

// RemoveCard pops the top card. Returns false on an empty pile, with no
// event.
func (p *Pile) RemoveCard() (model.Card, bool) {
	return p.RemoveCardAt(len(p.cards) - 1)
}

// RemoveCardAt pops the card at the given position. Returns false if the
// position is out of range.
func (p *Pile) RemoveCardAt(position int) (model.Card, bool) {
	if position < 0 || position >= len(p.cards) {
		return model.Card{}, false
	}
	card := p.cards[position]
	if p.beforeRemove != nil {
		p.beforeRemove(card)
	}
	p.cards = append(p.cards[:position], p.cards[position+1:]...)
	p.publish(model.EventCardRemoved, model.CardRemovedPayload{Card: card, Position: position})
	p.changed()
	return card, true
}

// RemoveCards removes up to count cards from the top, stopping early if the
// pile empties. Returned cards are in removal order, top first. One batch
// event fires if anything was removed.
func (p *Pile) RemoveCards(count int) []model.Card {
	if count <= 0 || len(p.cards) == 0 {
		return nil
	}
	if count > len(p.cards) {
		count = len(p.cards)
	}
	removed := make([]model.Card, 0, count)
	for i := 0; i < count; i++ {
		card := p.cards[len(p.cards)-1]
		if p.beforeRemove != nil {
			p.beforeRemove(card)
		}
		p.cards = p.cards[:len(p.cards)-1]
		removed = append(removed, card)
	}
	p.publish(model.EventCardsRemoved, model.CardsRemovedPayload{Cards: removed})
	p.changed()
	return removed
}

// RemoveCardsAt removes up to count cards starting at the given position,
// stopping early if the pile runs out
func (p *Pile) RemoveCardsAt(position, count int) []model.Card {
	if count <= 0 || position < 0 || position >= len(p.cards) {
		return nil
	}
	end := position + count
	if end > len(p.cards) {
		end = len(p.cards)
	}
	removed := append([]model.Card{}, p.cards[position:end]...)
	if p.beforeRemove != nil {
		for _, card := range removed {
			p.beforeRemove(card)
		}
	}
	p.cards = append(p.cards[:position], p.cards[end:]...)
	p.publish(model.EventCardsRemoved, model.CardsRemovedPayload{Cards: removed})
	p.changed()
	return removed
}

// RemoveSpecificCard removes the card with the given id from anywhere in
// the sequence. Returns false if the id is absent.
func (p *Pile) RemoveSpecificCard(id model.CardID) (model.Card, bool) {
	idx := p.indexOf(id)
	if idx < 0 {
		return model.Card{}, false
	}
	return p.RemoveCardAt(idx)
}

// Peek returns the top card without removing it
func (p *Pile) Peek() (model.Card, bool) {
	return p.PeekAt(len(p.cards) - 1)
}

// PeekAt returns the card at the given position without removing it
func (p *Pile) PeekAt(position int) (model.Card, bool) {
	if position < 0 || position >= len(p.cards) {
		return model.Card{}, false
	}
	return p.cards[position], true
}

// PeekMultiple returns up to count cards from the top, top first, without
// removing them
func (p *Pile) PeekMultiple(count int) []model.Card {
	if count <= 0 {
		return nil
	}
	if count > len(p.cards) {
		count = len(p.cards)
	}
	out := make([]model.Card, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, p.cards[len(p.cards)-1-i])
	}
	return out
}

// Shuffle randomizes the card order in place with a Fisher-Yates pass over
// the injected random source. Always legal; a permutation of 0 or 1 cards
// is a no-op but the events still fire.
func (p *Pile) Shuffle() {
	p.rnd.Shuffle(len(p.cards), func(i, j int) {
		p.cards[i], p.cards[j] = p.cards[j], p.cards[i]
	})
	p.publish(model.EventShuffled, model.ShuffledPayload{Size: len(p.cards)})
	p.changed()
}

// Organize sorts the pile in place using the caller's comparator
func (p *Pile) Organize(less func(a, b model.Card) bool) {
	sort.SliceStable(p.cards, func(i, j int) bool {
		return less(p.cards[i], p.cards[j])
	})
	p.publish(model.EventCardsOrganized, nil)
	p.changed()
}

// MoveCard relocates one card within the pile. Returns false if the id is
// absent or the target index is out of range.
func (p *Pile) MoveCard(id model.CardID, targetIndex int) bool {
	from := p.indexOf(id)
	if from < 0 || targetIndex < 0 || targetIndex >= len(p.cards) {
		return false
	}
	card := p.cards[from]
	p.cards = append(p.cards[:from], p.cards[from+1:]...)
	p.cards = append(p.cards[:targetIndex], append([]model.Card{card}, p.cards[targetIndex:]...)...)
	p.publish(model.EventCardMoved, model.CardMovedPayload{CardID: id, From: from, To: targetIndex})
	p.changed()
	return true
}

// Clear empties the pile and returns what was removed. No event on an
// already-empty pile.
func (p *Pile) Clear() []model.Card {
	if len(p.cards) == 0 {
		return nil
	}
	removed := p.cards
	if p.beforeRemove != nil {
		for _, card := range removed {
			p.beforeRemove(card)
		}
	}
	p.cards = nil
	p.publish(model.EventPileCleared, model.PileClearedPayload{Cards: removed})
	p.changed()
	return removed
}

// Size returns the number of cards in the pile
func (p *Pile) Size() int {
	return len(p.cards)
}

// IsEmpty reports whether the pile holds no cards
func (p *Pile) IsEmpty() bool {
	return len(p.cards) == 0
}

// IsFull reports whether the pile is at capacity; always false when no
// capacity is configured
func (p *Pile) IsFull() bool {
	return p.cfg.Capacity > 0 && len(p.cards) >= p.cfg.Capacity
}

// CanAccept reports whether the pile has room for count more cards
func (p *Pile) CanAccept(count int) bool {
	return p.cfg.Capacity == 0 || len(p.cards)+count <= p.cfg.Capacity
}

// HasCard reports whether a card with the given id is present
func (p *Pile) HasCard(id model.CardID) bool {
	return p.indexOf(id) >= 0
}

// FindCard returns the first card matching the predicate, bottom first
func (p *Pile) FindCard(pred func(model.Card) bool) (model.Card, bool) {
	idx := p.FindCardIndex(pred)
	if idx < 0 {
		return model.Card{}, false
	}
	return p.cards[idx], true
}

// FindCardIndex returns the position of the first card matching the
// predicate, or -1
func (p *Pile) FindCardIndex(pred func(model.Card) bool) int {
	for i, card := range p.cards {
		if pred(card) {
			return i
		}
	}
	return -1
}

// Cards returns a copy of the pile's contents, bottom first
func (p *Pile) Cards() []model.Card {
	out := make([]model.Card, len(p.cards))
	copy(out, p.cards)
	return out
}

// Snapshot returns the pile's observational record
func (p *Pile) Snapshot() model.PileSnapshot {
	ids := make([]model.CardID, len(p.cards))
	for i, card := range p.cards {
		ids[i] = card.ID
	}
	return model.PileSnapshot{
		ID:      p.id,
		Name:    p.name,
		Size:    len(p.cards),
		CardIDs: ids,
	}
}

func (p *Pile) indexOf(id model.CardID) int {
	for i, card := range p.cards {
		if card.ID == id {
			return i
		}
	}
	return -1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
