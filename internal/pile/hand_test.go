package pile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jmdjr/card-games/internal/dependencies/mocks"
	"github.com/jmdjr/card-games/internal/model"
)

type HandSuite struct {
	suite.Suite
	clock  *mocks.MockClock
	random *mocks.MockRandom
	hand   *Hand
	events []model.Event
}

func TestHandSuite(t *testing.T) {
	suite.Run(t, new(HandSuite))
}

func (s *HandSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.hand = NewHand("hand-1", "Test Hand", HandConfig{AllowMultiSelect: true, IsPlayerHand: true}, s.clock, s.random)
	s.hand.AddCards(cards("a", "b", "c"))
	s.events = nil
	s.hand.Subscribe(func(ev model.Event) {
		s.events = append(s.events, ev)
	})
}

func (s *HandSuite) eventTypes() []model.EventType {
	out := make([]model.EventType, len(s.events))
	for i, ev := range s.events {
		out[i] = ev.Type
	}
	return out
}

// Selection tests

func (s *HandSuite) TestSelectCardSucceeds() {
	s.True(s.hand.SelectCard("a"))

	s.True(s.hand.IsSelected("a"))
	s.Equal([]model.CardID{"a"}, s.hand.SelectedIDs())
	s.Equal([]model.EventType{model.EventCardSelected, model.EventSelectionChanged}, s.eventTypes())
}

func (s *HandSuite) TestSelectCardFailsForAbsentID() {
	s.False(s.hand.SelectCard("zzz"))
	s.Empty(s.events)
}

func (s *HandSuite) TestSelectCardFailsWhenAlreadySelected() {
	s.hand.SelectCard("a")
	s.events = nil

	s.False(s.hand.SelectCard("a"))
	s.Empty(s.events)
}

func (s *HandSuite) TestMultiSelectAccumulates() {
	s.hand.SelectCard("a")
	s.hand.SelectCard("b")

	s.Equal([]model.CardID{"a", "b"}, s.hand.SelectedIDs())
}

func (s *HandSuite) TestSingleSelectClearsPriorSelection() {
	h := NewHand("hand-2", "Single", HandConfig{AllowMultiSelect: false}, s.clock, s.random)
	h.AddCards(cards("x", "y"))

	s.True(h.SelectCard("x"))
	s.True(h.SelectCard("y"))

	s.Equal([]model.CardID{"y"}, h.SelectedIDs())
	s.False(h.IsSelected("x"))
}

func (s *HandSuite) TestDeselectCard() {
	s.hand.SelectCard("a")
	s.events = nil

	s.True(s.hand.DeselectCard("a"))

	s.Empty(s.hand.SelectedIDs())
	s.Equal([]model.EventType{model.EventCardDeselected, model.EventSelectionChanged}, s.eventTypes())
}

func (s *HandSuite) TestDeselectCardFailsWhenNotSelected() {
	s.False(s.hand.DeselectCard("a"))
	s.Empty(s.events)
}

func (s *HandSuite) TestToggleCardSelection() {
	s.True(s.hand.ToggleCardSelection("a"))
	s.True(s.hand.IsSelected("a"))

	s.True(s.hand.ToggleCardSelection("a"))
	s.False(s.hand.IsSelected("a"))
}

func (s *HandSuite) TestClearSelectionEmitsEmptySet() {
	s.hand.SelectCard("a")
	s.hand.SelectCard("b")
	s.events = nil

	s.hand.ClearSelection()

	s.Require().Len(s.events, 1)
	s.Equal(model.EventSelectionChanged, s.events[0].Type)
	payload := s.events[0].Payload.(model.SelectionChangedPayload)
	s.Empty(payload.SelectedIDs)
}

func (s *HandSuite) TestClearSelectionNoOpWhenEmpty() {
	s.hand.ClearSelection()
	s.Empty(s.events)
}

// Selection consistency under removal

func (s *HandSuite) TestRemovingSelectedCardClearsItsSelection() {
	s.hand.SelectCard("c")
	s.events = nil

	_, ok := s.hand.RemoveSpecificCard("c")

	s.Require().True(ok)
	s.False(s.hand.IsSelected("c"))
	s.Empty(s.hand.SelectedIDs())
}

func (s *HandSuite) TestSelectionShrinksBeforeRemovalEventFires() {
	s.hand.SelectCard("c")
	s.events = nil

	var selectedAtRemoval []model.CardID
	var sawRemoval bool
	s.hand.Subscribe(func(ev model.Event) {
		if ev.Type == model.EventCardRemoved {
			sawRemoval = true
			selectedAtRemoval = s.hand.SelectedIDs()
		}
	})

	s.hand.RemoveCard()

	s.True(sawRemoval)
	s.Empty(selectedAtRemoval, "removal listeners must never observe a dangling selection")

	// SelectionChanged precedes CardRemoved in the delivered stream
	types := s.eventTypes()
	s.Equal(model.EventSelectionChanged, types[0])
	s.Equal(model.EventCardRemoved, types[1])
}

func (s *HandSuite) TestClearDropsAllSelections() {
	s.hand.SelectCard("a")
	s.hand.SelectCard("b")

	s.hand.Clear()

	s.Empty(s.hand.SelectedIDs())
	s.True(s.hand.IsEmpty())
}

func (s *HandSuite) TestSelectionAlwaysSubsetOfContents() {
	s.hand.SelectCard("a")
	s.hand.SelectCard("b")
	s.hand.RemoveSpecificCard("a")
	s.hand.RemoveCards(1)

	for _, id := range s.hand.SelectedIDs() {
		s.True(s.hand.HasCard(id))
	}
}

// PlaySelectedCards tests

func (s *HandSuite) TestPlaySelectedCardsRemovesAndReturnsInSelectionOrder() {
	s.hand.SelectCard("c")
	s.hand.SelectCard("a")

	played := s.hand.PlaySelectedCards()

	s.Equal([]model.CardID{"c", "a"}, idsOf(played))
	s.Equal([]model.CardID{"b"}, idsOf(s.hand.Cards()))
	s.Empty(s.hand.SelectedIDs())
}

func (s *HandSuite) TestPlaySelectedCardsWithEmptySelection() {
	played := s.hand.PlaySelectedCards()
	s.Empty(played)
	s.Equal(3, s.hand.Size())
}

// Sort tests

func (s *HandSuite) TestSortCardsDefaultOrdersBySuitThenRank() {
	h := NewHand("hand-3", "Sorted", HandConfig{}, s.clock, s.random)
	h.AddCard(model.Card{ID: "h5", Kind: model.CardKindPlaying, Playing: &model.PlayingCard{Suit: model.SuitHearts, Rank: 5}})
	h.AddCard(model.Card{ID: "s9", Kind: model.CardKindPlaying, Playing: &model.PlayingCard{Suit: model.SuitSpades, Rank: 9}})
	h.AddCard(model.Card{ID: "s2", Kind: model.CardKindPlaying, Playing: &model.PlayingCard{Suit: model.SuitSpades, Rank: 2}})

	h.SortCards(nil)

	s.Equal([]model.CardID{"s2", "s9", "h5"}, idsOf(h.Cards()))
}

func (s *HandSuite) TestSortCardsPreservesSelection() {
	s.hand.SelectCard("b")

	s.hand.SortCards(func(a, b model.Card) bool { return a.ID > b.ID })

	s.True(s.hand.IsSelected("b"))
	s.Equal([]model.CardID{"c", "b", "a"}, idsOf(s.hand.Cards()))
}

// Visibility tests

func (s *HandSuite) TestRevealAndHideFaces() {
	s.False(s.hand.ShowCardFaces())

	s.hand.Reveal()
	s.True(s.hand.ShowCardFaces())

	s.hand.HideFaces()
	s.False(s.hand.ShowCardFaces())

	s.Empty(s.events, "visibility flags are presentation data, not events")
}

func (s *HandSuite) TestIsPlayerHandFlag() {
	s.True(s.hand.IsPlayerHand())
}
