package pile

import (
	"github.com/jmdjr/card-games/internal/dependencies/clock"
	"github.com/jmdjr/card-games/internal/dependencies/random"
	"github.com/jmdjr/card-games/internal/model"
)

// DeckConfig holds deck construction settings
type DeckConfig struct {
	// AutoShuffle shuffles the deck after seeding and after Reset
	AutoShuffle bool
}

// Deck is a pile seeded from a frozen card sequence, with a discard side
// sequence and reset-to-origin semantics. The discard sequence is internal
// bookkeeping: Discard and ReshuffleDiscard do not route through the main
// pile's add/remove operations.
type Deck struct {
	*Pile

	cfg      DeckConfig
	original []model.Card
	discard  []model.Card
}

// NewDeck creates a deck seeded from the given cards. The seed is frozen
// as the deck's origin for Reset.
func NewDeck(id model.PileID, name string, seed []model.Card, cfg DeckConfig, clk clock.Clock, rnd random.Random) *Deck {
	d := &Deck{
		Pile:     New(id, name, Config{}, clk, rnd),
		cfg:      cfg,
		original: append([]model.Card{}, seed...),
	}
	d.cards = append([]model.Card{}, seed...)
	if cfg.AutoShuffle {
		d.shuffleInPlace()
	}
	return d
}

// shuffleInPlace permutes without events, for construction and reset
func (d *Deck) shuffleInPlace() {
	d.rnd.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card. Emits the deck-level drawn event
// after the pile-level removal events. Returns false on an empty deck.
func (d *Deck) Draw() (model.Card, bool) {
	card, ok := d.RemoveCard()
	if !ok {
		return model.Card{}, false
	}
	d.publish(model.EventCardDrawn, model.CardDrawnPayload{Card: card})
	return card, true
}

// DrawMultiple removes and returns up to count cards from the top, top
// first, stopping early if the deck empties
func (d *Deck) DrawMultiple(count int) []model.Card {
	drawn := d.RemoveCards(count)
	if len(drawn) > 0 {
		d.publish(model.EventCardsDrawn, model.CardsDrawnPayload{Cards: drawn})
	}
	return drawn
}

// Discard appends a card to the discard sequence
func (d *Deck) Discard(card model.Card) {
	d.discard = append(d.discard, card)
}

// DiscardSize returns the number of discarded cards
func (d *Deck) DiscardSize() int {
	return len(d.discard)
}

// TopDiscard returns the most recently discarded card
func (d *Deck) TopDiscard() (model.Card, bool) {
	if len(d.discard) == 0 {
		return model.Card{}, false
	}
	return d.discard[len(d.discard)-1], true
}

// ReshuffleDiscard moves the discarded cards back into the main pile and
// shuffles. With keepTop the most recent discard stays behind as the sole
// remaining discard. Returns the number of cards returned to the pile.
func (d *Deck) ReshuffleDiscard(keepTop bool) int {
	if len(d.discard) == 0 {
		return 0
	}
	returned := d.discard
	if keepTop && len(returned) > 1 {
		top := returned[len(returned)-1]
		returned = returned[:len(returned)-1]
		d.discard = []model.Card{top}
	} else if keepTop {
		return 0
	} else {
		d.discard = nil
	}
	added := d.AddCards(returned)
	d.Shuffle()
	return len(added)
}

// Reset restores the pile to its original seed, clears the discards, and
// reshuffles when configured. The total card count always returns to the
// seed count, making back-to-back resets idempotent.
func (d *Deck) Reset() {
	d.cards = append([]model.Card{}, d.original...)
	d.discard = nil
	if d.cfg.AutoShuffle {
		d.shuffleInPlace()
	}
	d.publish(model.EventDeckReset, model.DeckResetPayload{Size: len(d.cards)})
	d.changed()
}

// OriginalSize returns the size of the frozen seed
func (d *Deck) OriginalSize() int {
	return len(d.original)
}
