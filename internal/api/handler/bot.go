package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jmdjr/card-games/internal/api/request"
	"github.com/jmdjr/card-games/internal/api/response"
	"github.com/jmdjr/card-games/internal/model"
	"github.com/jmdjr/card-games/internal/services/bot"
)

// DefaultBotStrategy is used when an add-bot request names no strategy
const DefaultBotStrategy = "random"

// BotHandler handles bot-related endpoints
type BotHandler struct {
	botService *bot.Service
}

// NewBotHandler creates a new bot handler
func NewBotHandler(botService *bot.Service) *BotHandler {
	return &BotHandler{
		botService: botService,
	}
}

// Add handles POST /api/v1/tables/{id}/bots
func (h *BotHandler) Add(w http.ResponseWriter, r *http.Request) {
	id := model.TableID(mux.Vars(r)["id"])

	var req request.AddBotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Empty body selects the default strategy
		req = request.AddBotRequest{}
	}

	strategy := req.Strategy
	if strategy == "" {
		strategy = DefaultBotStrategy
	}

	botPlayer, err := h.botService.AddBotToTable(r.Context(), id, strategy)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(botPlayer))
}

// Remove handles DELETE /api/v1/tables/{id}/bots/{player_id}
func (h *BotHandler) Remove(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := model.TableID(vars["id"])
	botID := model.PlayerID(vars["player_id"])

	if err := h.botService.RemoveBotFromTable(r.Context(), id, botID); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// ProcessTurns handles POST /api/v1/tables/{id}/bots/process
func (h *BotHandler) ProcessTurns(w http.ResponseWriter, r *http.Request) {
	id := model.TableID(mux.Vars(r)["id"])

	results, err := h.botService.ProcessBotTurns(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	turns := make([]response.BotTurn, len(results))
	for i, res := range results {
		turns[i] = response.BotTurn{
			PlayerID: string(res.PlayerID),
			Action:   string(res.Action.Type),
			Accepted: res.Accepted,
		}
	}
	response.JSON(w, http.StatusOK, response.BotTurnList{Turns: turns})
}
