package catalog

import (
	"fmt"

	"github.com/jmdjr/card-games/internal/model"
)

// Game type constants selecting a card set
const (
	GameTypeStandard = "standard"
	GameTypeUno      = "uno"
	GameTypeDice     = "dice"
)

// Catalog is an immutable registry of card definitions, built once at
// startup and consulted by decks at construction and reset time.
type Catalog struct {
	byID    map[model.CardID]model.Card
	ordered []model.Card
}

// New creates a catalog from the given definitions. Duplicate ids are a
// configuration error and rejected outright.
func New(cards []model.Card) (*Catalog, error) {
	byID := make(map[model.CardID]model.Card, len(cards))
	ordered := make([]model.Card, 0, len(cards))
	for _, c := range cards {
		if _, exists := byID[c.ID]; exists {
			return nil, fmt.Errorf("duplicate card id %q in catalog", c.ID)
		}
		byID[c.ID] = c
		ordered = append(ordered, c)
	}
	return &Catalog{byID: byID, ordered: ordered}, nil
}

// Card looks up a definition by id
func (c *Catalog) Card(id model.CardID) (model.Card, bool) {
	card, ok := c.byID[id]
	return card, ok
}

// Cards returns a copy of all definitions in registration order
func (c *Catalog) Cards() []model.Card {
	out := make([]model.Card, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Size returns the number of definitions in the catalog
func (c *Catalog) Size() int {
	return len(c.ordered)
}

// ForGameType returns the card set seeding decks of the given game type
func ForGameType(gameType string) ([]model.Card, error) {
	switch gameType {
	case GameTypeStandard:
		return StandardDeck(), nil
	case GameTypeUno:
		return UnoDeck(), nil
	case GameTypeDice:
		return DiceSet(5), nil
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownGameType, gameType)
	}
}

var rankNames = map[int]string{
	1: "Ace", 2: "Two", 3: "Three", 4: "Four", 5: "Five", 6: "Six",
	7: "Seven", 8: "Eight", 9: "Nine", 10: "Ten",
	11: "Jack", 12: "Queen", 13: "King",
}

var rankShort = map[int]string{
	1: "A", 11: "J", 12: "Q", 13: "K",
}

var suitNames = map[model.Suit]string{
	model.SuitSpades:   "Spades",
	model.SuitHearts:   "Hearts",
	model.SuitDiamonds: "Diamonds",
	model.SuitClubs:    "Clubs",
}

var suitShort = map[model.Suit]string{
	model.SuitSpades:   "S",
	model.SuitHearts:   "H",
	model.SuitDiamonds: "D",
	model.SuitClubs:    "C",
}

// StandardDeck builds the 52-card playing card set
func StandardDeck() []model.Card {
	cards := make([]model.Card, 0, 52)
	for _, suit := range model.Suits {
		for rank := 1; rank <= 13; rank++ {
			short := rankShort[rank]
			if short == "" {
				short = fmt.Sprintf("%d", rank)
			}
			cards = append(cards, model.Card{
				ID:           model.CardID(fmt.Sprintf("playing_%s_%d", suit, rank)),
				Kind:         model.CardKindPlaying,
				Playing:      &model.PlayingCard{Suit: suit, Rank: rank},
				DisplayName:  fmt.Sprintf("%s of %s", rankNames[rank], suitNames[suit]),
				ShortName:    short + suitShort[suit],
				AssetKey:     fmt.Sprintf("cards/%s_%d", suit, rank),
				BackAssetKey: "cards/back",
				IsPlayable:   true,
			})
		}
	}
	return cards
}

var unoActionNames = map[int]string{
	10: "Skip", 11: "Reverse", 12: "Draw Two", 13: "Wild", 14: "Wild Draw Four",
}

// unoCard builds a single Uno card; copy distinguishes duplicate definitions
func unoCard(color model.UnoColor, rank, copyIdx int) model.Card {
	name := unoActionNames[rank]
	if name == "" {
		name = fmt.Sprintf("%d", rank)
	}
	display := name
	if color != model.UnoWild {
		display = fmt.Sprintf("%s %s", colorName(color), name)
	}
	action := rank >= 10
	return model.Card{
		ID:           model.CardID(fmt.Sprintf("uno_%s_%d_%d", color, rank, copyIdx)),
		Kind:         model.CardKindUno,
		Uno:          &model.UnoCard{Color: color, Rank: rank},
		DisplayName:  display,
		ShortName:    fmt.Sprintf("%c%d", color[0], rank),
		AssetKey:     fmt.Sprintf("uno/%s_%d", color, rank),
		BackAssetKey: "uno/back",
		IsPlayable:   true,
		IsSpecial:    action,
		CanStack:     rank == 12 || rank == 14,
	}
}

func colorName(color model.UnoColor) string {
	switch color {
	case model.UnoRed:
		return "Red"
	case model.UnoYellow:
		return "Yellow"
	case model.UnoGreen:
		return "Green"
	case model.UnoBlue:
		return "Blue"
	default:
		return "Wild"
	}
}

// UnoDeck builds the 108-card Uno set: per color one 0, two each of 1-9
// and the three action cards, plus four wilds and four wild-draw-fours.
func UnoDeck() []model.Card {
	colors := []model.UnoColor{model.UnoRed, model.UnoYellow, model.UnoGreen, model.UnoBlue}
	cards := make([]model.Card, 0, 108)
	for _, color := range colors {
		cards = append(cards, unoCard(color, 0, 0))
		for rank := 1; rank <= 12; rank++ {
			cards = append(cards, unoCard(color, rank, 0), unoCard(color, rank, 1))
		}
	}
	for i := 0; i < 4; i++ {
		cards = append(cards, unoCard(model.UnoWild, 13, i), unoCard(model.UnoWild, 14, i))
	}
	return cards
}

// DiceSet builds count six-sided dice as cards, one per face
func DiceSet(count int) []model.Card {
	cards := make([]model.Card, 0, count*6)
	for die := 0; die < count; die++ {
		for pips := 1; pips <= 6; pips++ {
			cards = append(cards, model.Card{
				ID:          model.CardID(fmt.Sprintf("die_%d_%d", die, pips)),
				Kind:        model.CardKindDie,
				Die:         &model.Die{Pips: pips},
				DisplayName: fmt.Sprintf("Die %d showing %d", die+1, pips),
				ShortName:   fmt.Sprintf("D%d", pips),
				AssetKey:    fmt.Sprintf("dice/%d", pips),
				IsPlayable:  true,
				CanStack:    true,
			})
		}
	}
	return cards
}
