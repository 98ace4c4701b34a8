package model

// CardID uniquely identifies a card definition across the system
type CardID string

// CardKind discriminates the semantic variant a Card carries
type CardKind string

const (
	CardKindPlaying CardKind = "playing" // Standard suit/rank playing card
	CardKindUno     CardKind = "uno"     // Color/rank Uno-style card
	CardKindDie     CardKind = "die"     // A die face
	CardKindSpecial CardKind = "special" // Game-specific special card
)

// Suit identifies a playing card suit
type Suit string

const (
	SuitSpades   Suit = "spades"
	SuitHearts   Suit = "hearts"
	SuitDiamonds Suit = "diamonds"
	SuitClubs    Suit = "clubs"
)

// Suits lists the playing card suits in canonical sort order
var Suits = []Suit{SuitSpades, SuitHearts, SuitDiamonds, SuitClubs}

// UnoColor identifies an Uno card color
type UnoColor string

const (
	UnoRed    UnoColor = "red"
	UnoYellow UnoColor = "yellow"
	UnoGreen  UnoColor = "green"
	UnoBlue   UnoColor = "blue"
	UnoWild   UnoColor = "wild"
)

// PlayingCard carries the semantic value of a standard playing card
type PlayingCard struct {
	Suit Suit `json:"suit"`
	Rank int  `json:"rank"` // 1 (ace) through 13 (king)
}

// UnoCard carries the semantic value of an Uno-style card
type UnoCard struct {
	Color UnoColor `json:"color"`
	Rank  int      `json:"rank"` // 0-9 for number cards, 10+ for action cards
}

// Die carries the face value of a die card
type Die struct {
	Pips int `json:"pips"`
}

// SpecialCard carries game-specific special card data
type SpecialCard struct {
	Subtype string `json:"subtype"`
}

// Card is an immutable card definition. Cards are created once by the
// catalog at startup and shared by reference between collections: moving a
// card means removing it from one collection and appending it to another,
// never copying it.
type Card struct {
	ID   CardID   `json:"id"`
	Kind CardKind `json:"kind"`

	// Exactly one of these is set, matching Kind
	Playing *PlayingCard `json:"playing,omitempty"`
	Uno     *UnoCard     `json:"uno,omitempty"`
	Die     *Die         `json:"die,omitempty"`
	Special *SpecialCard `json:"special,omitempty"`

	// Presentation metadata, opaque to collection logic
	DisplayName  string `json:"display_name"`
	ShortName    string `json:"short_name"`
	AssetKey     string `json:"asset_key,omitempty"`
	BackAssetKey string `json:"back_asset_key,omitempty"`

	// Flags consumed by game-specific rule logic, not enforced here
	IsPlayable bool `json:"is_playable"`
	IsSpecial  bool `json:"is_special"`
	CanStack   bool `json:"can_stack"`
}

// suitOrder maps suits to their canonical sort position
var suitOrder = map[Suit]int{
	SuitSpades:   0,
	SuitHearts:   1,
	SuitDiamonds: 2,
	SuitClubs:    3,
}

// unoColorOrder maps Uno colors to their canonical sort position
var unoColorOrder = map[UnoColor]int{
	UnoRed:    0,
	UnoYellow: 1,
	UnoGreen:  2,
	UnoBlue:   3,
	UnoWild:   4,
}

// sortKey flattens a card into (group, rank) for the default ordering:
// suit/color first, then rank. Kinds sort in declaration order so mixed
// piles group by kind.
func (c Card) sortKey() (int, int) {
	switch c.Kind {
	case CardKindPlaying:
		if c.Playing != nil {
			return suitOrder[c.Playing.Suit], c.Playing.Rank
		}
	case CardKindUno:
		if c.Uno != nil {
			return 10 + unoColorOrder[c.Uno.Color], c.Uno.Rank
		}
	case CardKindDie:
		if c.Die != nil {
			return 20, c.Die.Pips
		}
	case CardKindSpecial:
		return 30, 0
	}
	return 40, 0
}

// DefaultCardLess is the default comparator for sorting cards: suit/color
// first, then rank, with ties broken by id for a stable result.
func DefaultCardLess(a, b Card) bool {
	ag, ar := a.sortKey()
	bg, br := b.sortKey()
	if ag != bg {
		return ag < bg
	}
	if ar != br {
		return ar < br
	}
	return a.ID < b.ID
}
