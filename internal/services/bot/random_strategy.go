package bot

import (
	"github.com/jmdjr/card-games/internal/dependencies/random"
	"github.com/jmdjr/card-games/internal/model"
	"github.com/jmdjr/card-games/internal/services/session"
	"github.com/jmdjr/card-games/internal/table"
)

// RandomStrategy plays a random hand card when it can, draws when the
// hand is empty, and passes when there is nothing left to do
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// ChooseAction picks the bot's next intent from the snapshot
func (s *RandomStrategy) ChooseAction(snapshot *model.TableSnapshot, playerID model.PlayerID) model.Action {
	handKey := table.PlayerPileKey(playerID, session.HandPile)
	hand, hasHand := snapshot.Piles[handKey]
	deck, hasDeck := snapshot.Piles[session.DeckKey]

	if hasHand && hand.Size > 0 {
		card := hand.CardIDs[s.random.Intn(hand.Size)]
		return model.Action{
			Type:      model.ActionPlay,
			SourceKey: handKey,
			TargetKey: session.PlayKey,
			CardIDs:   []model.CardID{card},
		}
	}

	if hasDeck && deck.Size > 0 {
		return model.Action{
			Type:      model.ActionDraw,
			SourceKey: session.DeckKey,
			TargetKey: handKey,
		}
	}

	return model.Action{Type: model.ActionPass}
}
