package pile

import (
	"github.com/jmdjr/card-games/internal/dependencies/clock"
	"github.com/jmdjr/card-games/internal/dependencies/random"
	"github.com/jmdjr/card-games/internal/model"
)

// HandConfig holds hand construction settings
type HandConfig struct {
	// Capacity caps the hand size; 0 means unlimited
	Capacity int

	// AllowMultiSelect permits more than one card selected at a time.
	// When false, selecting a card first clears any existing selection.
	AllowMultiSelect bool

	// IsPlayerHand and ShowCardFaces are visibility flags consumed by
	// presentation, not by any collection logic here
	IsPlayerHand  bool
	ShowCardFaces bool
}

// Hand is a pile with per-card selection state. The selection is always a
// subset of the hand's contents: any removal path (single, batch, clear,
// transfer) drops the card's selection before the removal events fire, so
// listeners never observe a selected id that is no longer held.
type Hand struct {
	*Pile

	cfg       HandConfig
	showFaces bool

	selected      map[model.CardID]struct{}
	selectedOrder []model.CardID
}

// NewHand creates an empty hand
func NewHand(id model.PileID, name string, cfg HandConfig, clk clock.Clock, rnd random.Random) *Hand {
	h := &Hand{
		Pile:      New(id, name, Config{Capacity: cfg.Capacity}, clk, rnd),
		cfg:       cfg,
		showFaces: cfg.ShowCardFaces,
		selected:  make(map[model.CardID]struct{}),
	}
	h.Pile.beforeRemove = h.dropSelection
	return h
}

// dropSelection clears a departing card's selection. Runs before the
// removal is committed, so the selection-changed notification precedes the
// removal events and no listener sees a dangling selection.
func (h *Hand) dropSelection(card model.Card) {
	if _, ok := h.selected[card.ID]; !ok {
		return
	}
	h.deselect(card.ID)
	h.publishSelectionChanged()
}

func (h *Hand) deselect(id model.CardID) {
	delete(h.selected, id)
	for i, sid := range h.selectedOrder {
		if sid == id {
			h.selectedOrder = append(h.selectedOrder[:i], h.selectedOrder[i+1:]...)
			return
		}
	}
}

func (h *Hand) publishSelectionChanged() {
	h.publish(model.EventSelectionChanged, model.SelectionChangedPayload{SelectedIDs: h.SelectedIDs()})
}

// SelectCard marks a card as selected. Fails if the id is absent from the
// hand or already selected. In single-select mode any existing selection is
// first deselected.
func (h *Hand) SelectCard(id model.CardID) bool {
	if !h.HasCard(id) {
		return false
	}
	if _, already := h.selected[id]; already {
		return false
	}
	if !h.cfg.AllowMultiSelect {
		for _, prev := range h.SelectedIDs() {
			h.deselect(prev)
			h.publish(model.EventCardDeselected, model.CardDeselectedPayload{CardID: prev})
		}
	}
	h.selected[id] = struct{}{}
	h.selectedOrder = append(h.selectedOrder, id)
	h.publish(model.EventCardSelected, model.CardSelectedPayload{CardID: id})
	h.publishSelectionChanged()
	return true
}

// DeselectCard unmarks a selected card. Fails if it is not currently
// selected.
func (h *Hand) DeselectCard(id model.CardID) bool {
	if _, ok := h.selected[id]; !ok {
		return false
	}
	h.deselect(id)
	h.publish(model.EventCardDeselected, model.CardDeselectedPayload{CardID: id})
	h.publishSelectionChanged()
	return true
}

// ToggleCardSelection selects or deselects based on current state
func (h *Hand) ToggleCardSelection(id model.CardID) bool {
	if _, ok := h.selected[id]; ok {
		return h.DeselectCard(id)
	}
	return h.SelectCard(id)
}

// ClearSelection deselects everything. No event when the selection is
// already empty.
func (h *Hand) ClearSelection() {
	if len(h.selected) == 0 {
		return
	}
	h.selected = make(map[model.CardID]struct{})
	h.selectedOrder = nil
	h.publishSelectionChanged()
}

// SelectedIDs returns the selected card ids in selection order
func (h *Hand) SelectedIDs() []model.CardID {
	out := make([]model.CardID, len(h.selectedOrder))
	copy(out, h.selectedOrder)
	return out
}

// IsSelected reports whether the card id is currently selected
func (h *Hand) IsSelected(id model.CardID) bool {
	_, ok := h.selected[id]
	return ok
}

// PlaySelectedCards removes every currently-selected card from the hand in
// selection order and returns them. The caller (typically the table)
// routes the removed cards to their destination; this does not transfer
// anywhere itself.
func (h *Hand) PlaySelectedCards() []model.Card {
	ids := h.SelectedIDs()
	played := make([]model.Card, 0, len(ids))
	for _, id := range ids {
		if card, ok := h.RemoveSpecificCard(id); ok {
			played = append(played, card)
		}
	}
	return played
}

// SortCards organizes the hand with the given comparator, defaulting to
// suit/color then rank
func (h *Hand) SortCards(less func(a, b model.Card) bool) {
	if less == nil {
		less = model.DefaultCardLess
	}
	h.Organize(less)
}

// Reveal shows the hand's card faces
func (h *Hand) Reveal() {
	h.showFaces = true
}

// HideFaces hides the hand's card faces
func (h *Hand) HideFaces() {
	h.showFaces = false
}

// ShowCardFaces reports whether faces are currently shown
func (h *Hand) ShowCardFaces() bool {
	return h.showFaces
}

// IsPlayerHand reports whether this hand belongs to a player
func (h *Hand) IsPlayerHand() bool {
	return h.cfg.IsPlayerHand
}
