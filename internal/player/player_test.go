package player_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jmdjr/card-games/internal/dependencies/mocks"
	"github.com/jmdjr/card-games/internal/model"
	"github.com/jmdjr/card-games/internal/pile"
	"github.com/jmdjr/card-games/internal/player"
	"github.com/jmdjr/card-games/internal/table"
)

type PlayerSuite struct {
	suite.Suite
	clock *mocks.MockClock
	rnd   *mocks.MockRandom
	tbl   *table.Table
	hand  *pile.Hand
	p1    *player.Player
}

func (s *PlayerSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.rnd = mocks.NewMockRandom()
	s.tbl = table.New("table-1", "Test Table", "standard", s.clock, nil)
	s.hand = pile.NewHand("h1", "hand", pile.HandConfig{IsPlayerHand: true}, s.clock, s.rnd)
	s.p1 = player.New(
		model.Player{ID: "p1", DisplayName: "Alice", IsHuman: true},
		map[string]table.Collection{"hand": s.hand},
		nil,
	)
}

func card(id string) model.Card {
	return model.Card{ID: model.CardID(id), Kind: model.CardKindSpecial, DisplayName: id}
}

func cards(ids ...string) []model.Card {
	out := make([]model.Card, 0, len(ids))
	for _, id := range ids {
		out = append(out, card(id))
	}
	return out
}

func (s *PlayerSuite) join() {
	s.Require().NoError(s.p1.JoinTable(s.tbl))
}

func (s *PlayerSuite) addSharedPile(key string, cs ...model.Card) *pile.Pile {
	p := pile.New(model.PileID(key), key, pile.Config{}, s.clock, s.rnd)
	p.AddCards(cs)
	s.Require().NoError(s.tbl.RegisterPile(key, p))
	return p
}

func (s *PlayerSuite) TestJoinAndLeave() {
	s.False(s.p1.Seated())
	s.join()
	s.True(s.p1.Seated())

	_, ok := s.tbl.Pile("p1_hand")
	s.True(ok)
	s.Equal("p1_hand", s.p1.PileKey("hand"))

	s.Require().NoError(s.p1.LeaveTable())
	s.False(s.p1.Seated())
	_, ok = s.tbl.Pile("p1_hand")
	s.False(ok)

	s.ErrorIs(s.p1.LeaveTable(), model.ErrNotSeated)
}

func (s *PlayerSuite) TestJoinTwiceRejected() {
	s.join()
	other := player.New(model.Player{ID: "p1"}, nil, nil)
	s.ErrorIs(other.JoinTable(s.tbl), model.ErrAlreadySeated)
}

func (s *PlayerSuite) TestPlayAction() {
	s.join()
	discard := s.addSharedPile("discard")
	s.hand.AddCards(cards("a", "b"))

	ok := s.p1.RequestAction(model.Action{
		Type:      model.ActionPlay,
		SourceKey: s.p1.PileKey("hand"),
		TargetKey: "discard",
		CardIDs:   []model.CardID{"a"},
	})

	s.True(ok)
	s.Equal(1, s.hand.Size())
	s.True(discard.HasCard("a"))
}

func (s *PlayerSuite) TestPlayActionMissingFields() {
	s.join()
	s.False(s.p1.RequestAction(model.Action{Type: model.ActionPlay, SourceKey: "x"}))
	s.False(s.p1.RequestAction(model.Action{Type: model.ActionPlay, SourceKey: "x", TargetKey: "y"}))
}

func (s *PlayerSuite) TestPlayActionBlockedTransfer() {
	s.join()
	s.addSharedPile("discard")
	s.hand.AddCard(card("a"))

	ok := s.p1.RequestAction(model.Action{
		Type:      model.ActionPlay,
		SourceKey: s.p1.PileKey("hand"),
		TargetKey: "discard",
		CardIDs:   []model.CardID{"not-held"},
	})
	s.False(ok)
	s.Equal(1, s.hand.Size())
}

func (s *PlayerSuite) TestDrawImpliedTopCard() {
	s.join()
	deck := s.addSharedPile("deck", cards("a", "b", "c")...)

	ok := s.p1.RequestAction(model.Action{
		Type:      model.ActionDraw,
		SourceKey: "deck",
		TargetKey: s.p1.PileKey("hand"),
	})

	s.True(ok)
	s.Equal(2, deck.Size())
	s.Require().Equal(1, s.hand.Size())
	// Implied draw takes the top card
	s.True(s.hand.HasCard("c"))
}

func (s *PlayerSuite) TestDrawExplicitCards() {
	s.join()
	deck := s.addSharedPile("deck", cards("a", "b", "c")...)

	ok := s.p1.RequestAction(model.Action{
		Type:      model.ActionDraw,
		SourceKey: "deck",
		TargetKey: s.p1.PileKey("hand"),
		CardIDs:   []model.CardID{"a", "b"},
	})

	s.True(ok)
	s.Equal(1, deck.Size())
	s.Equal(2, s.hand.Size())
}

func (s *PlayerSuite) TestDrawFromEmptyPile() {
	s.join()
	s.addSharedPile("deck")

	ok := s.p1.RequestAction(model.Action{
		Type:      model.ActionDraw,
		SourceKey: "deck",
		TargetKey: s.p1.PileKey("hand"),
	})
	s.False(ok)
}

func (s *PlayerSuite) TestRevealAndHide() {
	s.join()
	s.Require().False(s.hand.ShowCardFaces())

	ok := s.p1.RequestAction(model.Action{Type: model.ActionReveal, SourceKey: s.p1.PileKey("hand")})
	s.True(ok)
	s.True(s.hand.ShowCardFaces())

	ok = s.p1.RequestAction(model.Action{Type: model.ActionHide, SourceKey: s.p1.PileKey("hand")})
	s.True(ok)
	s.False(s.hand.ShowCardFaces())
}

func (s *PlayerSuite) TestRevealNonHandPile() {
	s.join()
	s.addSharedPile("deck", cards("a")...)
	ok := s.p1.RequestAction(model.Action{Type: model.ActionReveal, SourceKey: "deck"})
	s.False(ok)
}

func (s *PlayerSuite) TestPassOnlyOnOwnTurn() {
	s.join()
	p2 := player.New(model.Player{ID: "p2"}, nil, nil)
	s.Require().NoError(p2.JoinTable(s.tbl))

	s.Require().NoError(s.tbl.SetCurrentPlayer("p2"))
	s.False(s.p1.RequestAction(model.Action{Type: model.ActionPass}))

	s.Require().NoError(s.tbl.SetCurrentPlayer("p1"))
	s.True(s.p1.RequestAction(model.Action{Type: model.ActionPass}))
}

func (s *PlayerSuite) TestCustomActionAccepted() {
	s.join()
	s.True(s.p1.RequestAction(model.Action{Type: "uno_shout"}))
}

func (s *PlayerSuite) TestActionWhileUnseated() {
	s.False(s.p1.RequestAction(model.Action{Type: model.ActionPass}))
}

func (s *PlayerSuite) TestTurnNotifications() {
	s.join()
	p2 := player.New(model.Player{ID: "p2"}, nil, nil)
	s.Require().NoError(p2.JoinTable(s.tbl))

	var started, ended int
	s.p1.OnTurnStarted(func() { started++ })
	s.p1.OnTurnEnded(func() { ended++ })

	s.Require().NoError(s.tbl.SetCurrentPlayer("p1"))
	s.Equal(1, started)
	s.Equal(0, ended)

	s.Require().NoError(s.tbl.SetCurrentPlayer("p2"))
	s.Equal(1, started)
	s.Equal(1, ended)

	s.Require().NoError(s.tbl.SetCurrentPlayer("p1"))
	s.Equal(2, started)
}

func (s *PlayerSuite) TestNoNotificationsAfterLeaving() {
	s.join()
	p2 := player.New(model.Player{ID: "p2"}, nil, nil)
	s.Require().NoError(p2.JoinTable(s.tbl))

	var started int
	s.p1.OnTurnStarted(func() { started++ })
	s.Require().NoError(s.p1.LeaveTable())

	s.Require().NoError(s.tbl.SetCurrentPlayer("p2"))
	s.Equal(0, started)
}

func TestPlayerSuite(t *testing.T) {
	suite.Run(t, new(PlayerSuite))
}
