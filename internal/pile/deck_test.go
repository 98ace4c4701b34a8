package pile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jmdjr/card-games/internal/dependencies/mocks"
	"github.com/jmdjr/card-games/internal/model"
)

type DeckSuite struct {
	suite.Suite
	clock  *mocks.MockClock
	random *mocks.MockRandom
	deck   *Deck
	events []model.Event
}

func TestDeckSuite(t *testing.T) {
	suite.Run(t, new(DeckSuite))
}

func (s *DeckSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.deck = NewDeck("deck-1", "Test Deck", cards("A", "B", "C", "D", "E"), DeckConfig{}, s.clock, s.random)
	s.events = nil
	s.deck.Subscribe(func(ev model.Event) {
		s.events = append(s.events, ev)
	})
}

func (s *DeckSuite) TestSeededInOrderWithoutAutoShuffle() {
	s.Equal([]model.CardID{"A", "B", "C", "D", "E"}, idsOf(s.deck.Cards()))
	s.Equal(5, s.deck.OriginalSize())
	s.Equal(0, s.random.ShuffleCalls)
}

func (s *DeckSuite) TestAutoShuffleShufflesOnConstruction() {
	rnd := mocks.NewMockRandom()
	d := NewDeck("deck-2", "Shuffled", cards("A", "B", "C"), DeckConfig{AutoShuffle: true}, s.clock, rnd)

	s.Equal(1, rnd.ShuffleCalls)
	s.ElementsMatch([]model.CardID{"A", "B", "C"}, idsOf(d.Cards()))
}

func (s *DeckSuite) TestDrawReturnsTopOfStackOrder() {
	first, ok := s.deck.Draw()
	s.Require().True(ok)
	second, _ := s.deck.Draw()
	third, _ := s.deck.Draw()

	s.Equal(model.CardID("E"), first.ID)
	s.Equal(model.CardID("D"), second.ID)
	s.Equal(model.CardID("C"), third.ID)
	s.Equal([]model.CardID{"A", "B"}, idsOf(s.deck.Cards()))
	s.Equal(2, s.deck.Size())
}

func (s *DeckSuite) TestDrawEmitsDeckEventAfterPileEvents() {
	s.deck.Draw()

	types := make([]model.EventType, len(s.events))
	for i, ev := range s.events {
		types[i] = ev.Type
	}
	s.Equal([]model.EventType{model.EventCardRemoved, model.EventPileChanged, model.EventCardDrawn}, types)
	payload := s.events[2].Payload.(model.CardDrawnPayload)
	s.Equal(model.CardID("E"), payload.Card.ID)
}

func (s *DeckSuite) TestDrawFromEmptyDeck() {
	s.deck.RemoveCards(5)
	s.events = nil

	_, ok := s.deck.Draw()

	s.False(ok)
	s.Empty(s.events)
}

func (s *DeckSuite) TestDrawMultipleStopsAtEmpty() {
	drawn := s.deck.DrawMultiple(7)

	s.Equal([]model.CardID{"E", "D", "C", "B", "A"}, idsOf(drawn))
	s.True(s.deck.IsEmpty())

	last := s.events[len(s.events)-1]
	s.Equal(model.EventCardsDrawn, last.Type)
}

func (s *DeckSuite) TestDiscardBypassesPileEvents() {
	c, _ := s.deck.Draw()
	s.events = nil

	s.deck.Discard(c)

	s.Equal(1, s.deck.DiscardSize())
	s.Empty(s.events)
	top, ok := s.deck.TopDiscard()
	s.Require().True(ok)
	s.Equal(c.ID, top.ID)
}

func (s *DeckSuite) TestReshuffleDiscardReturnsAllWhenNotKeepingTop() {
	for i := 0; i < 3; i++ {
		c, _ := s.deck.Draw()
		s.deck.Discard(c)
	}

	moved := s.deck.ReshuffleDiscard(false)

	s.Equal(3, moved)
	s.Equal(0, s.deck.DiscardSize())
	s.Equal(5, s.deck.Size())
}

func (s *DeckSuite) TestReshuffleDiscardKeepsTopCard() {
	var last model.Card
	for i := 0; i < 3; i++ {
		last, _ = s.deck.Draw()
		s.deck.Discard(last)
	}

	moved := s.deck.ReshuffleDiscard(true)

	s.Equal(2, moved)
	s.Equal(1, s.deck.DiscardSize())
	top, _ := s.deck.TopDiscard()
	s.Equal(last.ID, top.ID)
	s.Equal(4, s.deck.Size())
}

func (s *DeckSuite) TestReshuffleDiscardWithSingleDiscardAndKeepTop() {
	c, _ := s.deck.Draw()
	s.deck.Discard(c)

	moved := s.deck.ReshuffleDiscard(true)

	s.Equal(0, moved)
	s.Equal(1, s.deck.DiscardSize())
}

func (s *DeckSuite) TestResetRestoresSeedCount() {
	s.deck.DrawMultiple(3)
	c, _ := s.deck.Draw()
	s.deck.Discard(c)

	s.deck.Reset()

	s.Equal(5, s.deck.Size())
	s.Equal(0, s.deck.DiscardSize())
	s.ElementsMatch([]model.CardID{"A", "B", "C", "D", "E"}, idsOf(s.deck.Cards()))
}

func (s *DeckSuite) TestResetIsIdempotent() {
	s.deck.DrawMultiple(2)

	s.deck.Reset()
	first := s.deck.Size()
	s.deck.Reset()

	s.Equal(s.deck.OriginalSize(), first)
	s.Equal(s.deck.OriginalSize(), s.deck.Size())
}

func (s *DeckSuite) TestResetEmitsDeckReset() {
	s.deck.Draw()
	s.events = nil

	s.deck.Reset()

	s.Require().Len(s.events, 2)
	s.Equal(model.EventDeckReset, s.events[0].Type)
	s.Equal(model.EventPileChanged, s.events[1].Type)
	payload := s.events[0].Payload.(model.DeckResetPayload)
	s.Equal(5, payload.Size)
}
