package pile

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jmdjr/card-games/internal/dependencies/mocks"
	"github.com/jmdjr/card-games/internal/model"
)

// card builds a minimal playing card for tests
func card(id string) model.Card {
	return model.Card{
		ID:          model.CardID(id),
		Kind:        model.CardKindPlaying,
		Playing:     &model.PlayingCard{Suit: model.SuitSpades, Rank: 2},
		DisplayName: id,
		ShortName:   id,
		IsPlayable:  true,
	}
}

func cards(ids ...string) []model.Card {
	out := make([]model.Card, len(ids))
	for i, id := range ids {
		out[i] = card(id)
	}
	return out
}

func idsOf(cs []model.Card) []model.CardID {
	out := make([]model.CardID, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

type PileSuite struct {
	suite.Suite
	clock  *mocks.MockClock
	random *mocks.MockRandom
	pile   *Pile
	events []model.Event
}

func TestPileSuite(t *testing.T) {
	suite.Run(t, new(PileSuite))
}

func (s *PileSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.pile = New("pile-1", "Test Pile", Config{}, s.clock, s.random)
	s.events = nil
	s.pile.Subscribe(func(ev model.Event) {
		s.events = append(s.events, ev)
	})
}

func (s *PileSuite) eventTypes() []model.EventType {
	out := make([]model.EventType, len(s.events))
	for i, ev := range s.events {
		out[i] = ev.Type
	}
	return out
}

// Add tests

func (s *PileSuite) TestAddCardAppendsToTop() {
	s.True(s.pile.AddCard(card("a")))
	s.True(s.pile.AddCard(card("b")))

	top, ok := s.pile.Peek()
	s.Require().True(ok)
	s.Equal(model.CardID("b"), top.ID)
	s.Equal(2, s.pile.Size())
}

func (s *PileSuite) TestAddCardEmitsAddedThenChanged() {
	s.pile.AddCard(card("a"))

	s.Equal([]model.EventType{model.EventCardAdded, model.EventPileChanged}, s.eventTypes())
	payload := s.events[0].Payload.(model.CardAddedPayload)
	s.Equal(model.CardID("a"), payload.Card.ID)
	s.Equal(0, payload.Position)
	s.Equal(model.PileID("pile-1"), s.events[0].PileID)
}

func (s *PileSuite) TestAddCardAtInsertsAtPosition() {
	s.pile.AddCards(cards("a", "b", "c"))

	s.True(s.pile.AddCardAt(card("x"), 1))

	s.Equal([]model.CardID{"a", "x", "b", "c"}, idsOf(s.pile.Cards()))
}

func (s *PileSuite) TestAddCardRejectsDuplicateID() {
	s.True(s.pile.AddCard(card("a")))
	s.events = nil

	s.False(s.pile.AddCard(card("a")))

	s.Equal(1, s.pile.Size())
	s.Empty(s.events, "rejected add must not emit events")
}

func (s *PileSuite) TestAddCardAllowsDuplicatesWhenConfigured() {
	p := New("pile-2", "Dup Pile", Config{AllowDuplicateIDs: true}, s.clock, s.random)
	s.True(p.AddCard(card("a")))
	s.True(p.AddCard(card("a")))
	s.Equal(2, p.Size())
}

func (s *PileSuite) TestAddCardRejectsWhenFull() {
	p := New("pile-3", "Small Pile", Config{Capacity: 2}, s.clock, s.random)
	s.True(p.AddCard(card("a")))
	s.True(p.AddCard(card("b")))

	s.False(p.AddCard(card("c")))

	s.Equal(2, p.Size())
	s.True(p.IsFull())
}

func (s *PileSuite) TestCapacityHoldsUnderAnyAddSequence() {
	p := New("pile-4", "Capped", Config{Capacity: 3}, s.clock, s.random)
	for i := 0; i < 10; i++ {
		p.AddCard(card(fmt.Sprintf("c%d", i)))
	}
	s.Equal(3, p.Size())
}

func (s *PileSuite) TestAddCardsIsBestEffort() {
	p := New("pile-5", "Capped", Config{Capacity: 3}, s.clock, s.random)
	p.AddCard(card("a"))

	var got []model.Event
	p.Subscribe(func(ev model.Event) { got = append(got, ev) })

	accepted := p.AddCards(cards("a", "b", "c", "d"))

	// "a" is a duplicate, "d" exceeds capacity
	s.Equal([]model.CardID{"b", "c"}, idsOf(accepted))
	s.Equal([]model.CardID{"a", "b", "c"}, idsOf(p.Cards()))
	s.Require().Len(got, 2)
	s.Equal(model.EventCardsAdded, got[0].Type)
	s.Equal(model.EventPileChanged, got[1].Type)
}

func (s *PileSuite) TestAddCardsAllRejectedEmitsNothing() {
	s.pile.AddCard(card("a"))
	s.events = nil

	accepted := s.pile.AddCards(cards("a", "a"))

	s.Empty(accepted)
	s.Empty(s.events)
}

// Remove tests

func (s *PileSuite) TestAddThenRemoveRoundTrips() {
	s.pile.AddCards(cards("a", "b"))
	before := s.pile.Size()

	s.True(s.pile.AddCard(card("c")))
	got, ok := s.pile.RemoveCard()

	s.Require().True(ok)
	s.Equal(model.CardID("c"), got.ID)
	s.Equal(before, s.pile.Size())
}

func (s *PileSuite) TestRemoveCardOnEmptyPile() {
	_, ok := s.pile.RemoveCard()
	s.False(ok)
	s.Empty(s.events, "empty removal must not emit events")
}

func (s *PileSuite) TestRemoveCardEmitsRemovedThenChanged() {
	s.pile.AddCard(card("a"))
	s.events = nil

	s.pile.RemoveCard()

	s.Equal([]model.EventType{model.EventCardRemoved, model.EventPileChanged}, s.eventTypes())
	payload := s.events[0].Payload.(model.CardRemovedPayload)
	s.Equal(model.CardID("a"), payload.Card.ID)
}

func (s *PileSuite) TestRemoveCardsStopsWhenPileEmpties() {
	s.pile.AddCards(cards("a", "b", "c"))

	removed := s.pile.RemoveCards(5)

	s.Equal([]model.CardID{"c", "b", "a"}, idsOf(removed))
	s.True(s.pile.IsEmpty())
}

func (s *PileSuite) TestRemoveSpecificCardFromMiddle() {
	s.pile.AddCards(cards("a", "b", "c"))

	got, ok := s.pile.RemoveSpecificCard("b")

	s.Require().True(ok)
	s.Equal(model.CardID("b"), got.ID)
	s.Equal([]model.CardID{"a", "c"}, idsOf(s.pile.Cards()))
}

func (s *PileSuite) TestRemoveSpecificCardAbsentID() {
	s.pile.AddCard(card("a"))
	s.events = nil

	_, ok := s.pile.RemoveSpecificCard("zzz")

	s.False(ok)
	s.Empty(s.events)
}

// Peek tests

func (s *PileSuite) TestPeekDoesNotMutateOrEmit() {
	s.pile.AddCards(cards("a", "b"))
	s.events = nil

	top, ok := s.pile.Peek()

	s.Require().True(ok)
	s.Equal(model.CardID("b"), top.ID)
	s.Equal(2, s.pile.Size())
	s.Empty(s.events)
}

func (s *PileSuite) TestPeekMultipleReturnsTopFirst() {
	s.pile.AddCards(cards("a", "b", "c"))

	got := s.pile.PeekMultiple(2)

	s.Equal([]model.CardID{"c", "b"}, idsOf(got))
	s.Equal(3, s.pile.Size())
}

// Shuffle and organize tests

func (s *PileSuite) TestShufflePreservesMultiset() {
	s.pile.AddCards(cards("a", "b", "c", "d"))
	before := idsOf(s.pile.Cards())

	s.pile.Shuffle()

	after := idsOf(s.pile.Cards())
	s.ElementsMatch(before, after)
	s.NotEqual(before, after, "mock shuffle rotates, so order must differ for n>1")
}

func (s *PileSuite) TestShuffleEmitsShuffledThenChanged() {
	s.pile.AddCards(cards("a", "b"))
	s.events = nil

	s.pile.Shuffle()

	s.Equal([]model.EventType{model.EventShuffled, model.EventPileChanged}, s.eventTypes())
}

func (s *PileSuite) TestShuffleOnEmptyPileIsLegal() {
	s.pile.Shuffle()
	s.Equal(0, s.pile.Size())
}

func (s *PileSuite) TestOrganizeSortsWithComparator() {
	s.pile.AddCards(cards("c", "a", "b"))
	s.events = nil

	s.pile.Organize(func(x, y model.Card) bool { return x.ID < y.ID })

	s.Equal([]model.CardID{"a", "b", "c"}, idsOf(s.pile.Cards()))
	s.Equal([]model.EventType{model.EventCardsOrganized, model.EventPileChanged}, s.eventTypes())
}

// Move and clear tests

func (s *PileSuite) TestMoveCardRelocatesWithinPile() {
	s.pile.AddCards(cards("a", "b", "c"))

	s.True(s.pile.MoveCard("a", 2))

	s.Equal([]model.CardID{"b", "c", "a"}, idsOf(s.pile.Cards()))
}

func (s *PileSuite) TestMoveCardRejectsAbsentIDAndBadIndex() {
	s.pile.AddCards(cards("a", "b"))

	s.False(s.pile.MoveCard("zzz", 0))
	s.False(s.pile.MoveCard("a", 2))
	s.False(s.pile.MoveCard("a", -1))

	s.Equal([]model.CardID{"a", "b"}, idsOf(s.pile.Cards()))
}

func (s *PileSuite) TestClearReturnsRemovedCards() {
	s.pile.AddCards(cards("a", "b"))
	s.events = nil

	removed := s.pile.Clear()

	s.Equal([]model.CardID{"a", "b"}, idsOf(removed))
	s.True(s.pile.IsEmpty())
	s.Equal([]model.EventType{model.EventPileCleared, model.EventPileChanged}, s.eventTypes())
}

func (s *PileSuite) TestClearOnEmptyPileEmitsNothing() {
	removed := s.pile.Clear()
	s.Empty(removed)
	s.Empty(s.events)
}

// Query tests

func (s *PileSuite) TestFindCardAndIndex() {
	s.pile.AddCards(cards("a", "b", "c"))

	found, ok := s.pile.FindCard(func(c model.Card) bool { return c.ID == "b" })
	s.Require().True(ok)
	s.Equal(model.CardID("b"), found.ID)

	s.Equal(2, s.pile.FindCardIndex(func(c model.Card) bool { return c.ID == "c" }))
	s.Equal(-1, s.pile.FindCardIndex(func(c model.Card) bool { return c.ID == "zzz" }))
}

func (s *PileSuite) TestIsFullFalseWithoutCapacity() {
	s.pile.AddCards(cards("a", "b", "c"))
	s.False(s.pile.IsFull())
}

// Listener tests

func (s *PileSuite) TestListenersFireInAttachmentOrder() {
	var order []string
	s.pile.Subscribe(func(model.Event) { order = append(order, "first") })
	s.pile.Subscribe(func(model.Event) { order = append(order, "second") })

	s.pile.AddCard(card("a"))

	// Two events (added, changed), each hitting both listeners in order
	s.Equal([]string{"first", "second", "first", "second"}, order)
}

func (s *PileSuite) TestUnsubscribeStopsDelivery() {
	var count int
	unsub := s.pile.Subscribe(func(model.Event) { count++ })

	s.pile.AddCard(card("a"))
	delivered := count
	unsub()
	s.pile.AddCard(card("b"))

	s.Equal(delivered, count)
}

func (s *PileSuite) TestSnapshotCarriesIdentityAndCardIDs() {
	s.pile.AddCards(cards("a", "b"))

	snap := s.pile.Snapshot()

	s.Equal(model.PileID("pile-1"), snap.ID)
	s.Equal("Test Pile", snap.Name)
	s.Equal(2, snap.Size)
	s.Equal([]model.CardID{"a", "b"}, snap.CardIDs)
}
