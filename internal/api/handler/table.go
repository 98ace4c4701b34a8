package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jmdjr/card-games/internal/api/middleware"
	"github.com/jmdjr/card-games/internal/api/request"
	"github.com/jmdjr/card-games/internal/api/response"
	"github.com/jmdjr/card-games/internal/model"
	"github.com/jmdjr/card-games/internal/services/session"
	"github.com/jmdjr/card-games/internal/sse"
)

// TableHandler handles table-related endpoints
type TableHandler struct {
	sessions    session.ControllerInterface
	hubManager  *sse.HubManager
	broadcaster *sse.Broadcaster
}

// NewTableHandler creates a new table handler
func NewTableHandler(sessions session.ControllerInterface, hubManager *sse.HubManager, broadcaster *sse.Broadcaster) *TableHandler {
	return &TableHandler{
		sessions:    sessions,
		hubManager:  hubManager,
		broadcaster: broadcaster,
	}
}

// Create handles POST /api/v1/tables
func (h *TableHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}
	if req.GameType == "" {
		WriteError(w, NewInvalidRequestError("game_type is required"))
		return
	}

	snapshot, err := h.sessions.CreateTable(r.Context(), req.Name, req.GameType)
	if err != nil {
		WriteError(w, err)
		return
	}

	// Start forwarding the table's events to SSE clients
	if h.broadcaster != nil {
		if err := h.broadcaster.Attach(snapshot.ID); err != nil {
			WriteError(w, err)
			return
		}
	}

	response.JSON(w, http.StatusCreated, response.TableFromSnapshot(snapshot))
}

// List handles GET /api/v1/tables
func (h *TableHandler) List(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.sessions.ListTables(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.TableListFromSnapshots(snapshots))
}

// Get handles GET /api/v1/tables/{id}
func (h *TableHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.TableID(mux.Vars(r)["id"])

	snapshot, err := h.sessions.GetTable(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.TableFromSnapshot(snapshot))
}

// Close handles DELETE /api/v1/tables/{id}
func (h *TableHandler) Close(w http.ResponseWriter, r *http.Request) {
	id := model.TableID(mux.Vars(r)["id"])

	if err := h.sessions.CloseTable(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.Detach(id)
	}

	response.NoContent(w)
}

// Join handles POST /api/v1/tables/{id}/join
func (h *TableHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.TableID(mux.Vars(r)["id"])

	if err := h.sessions.JoinTable(r.Context(), id, *player); err != nil {
		WriteError(w, err)
		return
	}

	snapshot, err := h.sessions.GetTable(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.TableFromSnapshot(snapshot))
}

// Leave handles POST /api/v1/tables/{id}/leave
func (h *TableHandler) Leave(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.TableID(mux.Vars(r)["id"])

	if err := h.sessions.LeaveTable(r.Context(), id, player.ID); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Start handles POST /api/v1/tables/{id}/start
func (h *TableHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.sessions.StartGame)
}

// Pause handles POST /api/v1/tables/{id}/pause
func (h *TableHandler) Pause(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.sessions.PauseGame)
}

// Resume handles POST /api/v1/tables/{id}/resume
func (h *TableHandler) Resume(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.sessions.ResumeGame)
}

// End handles POST /api/v1/tables/{id}/end
func (h *TableHandler) End(w http.ResponseWriter, r *http.Request) {
	id := model.TableID(mux.Vars(r)["id"])

	record, err := h.sessions.EndGame(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameRecordFromModel(record))
}

// SetTurn handles PUT /api/v1/tables/{id}/turn
func (h *TableHandler) SetTurn(w http.ResponseWriter, r *http.Request) {
	id := model.TableID(mux.Vars(r)["id"])

	var req request.SetTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	if err := h.sessions.SetCurrentPlayer(r.Context(), id, model.PlayerID(req.PlayerID)); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Transfer handles POST /api/v1/tables/{id}/transfers
func (h *TableHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	id := model.TableID(mux.Vars(r)["id"])

	var req request.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.SourceKey == "" || req.TargetKey == "" {
		WriteError(w, NewInvalidRequestError("source_key and target_key are required"))
		return
	}
	if len(req.CardIDs) == 0 {
		WriteError(w, NewInvalidRequestError("card_ids is required"))
		return
	}

	cardIDs := make([]model.CardID, len(req.CardIDs))
	for i, cid := range req.CardIDs {
		cardIDs[i] = model.CardID(cid)
	}

	if err := h.sessions.RequestTransfer(r.Context(), id, req.SourceKey, cardIDs, req.TargetKey); err != nil {
		WriteError(w, err)
		return
	}

	snapshot, err := h.sessions.GetTable(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.TableFromSnapshot(snapshot))
}

// Act handles POST /api/v1/tables/{id}/actions
func (h *TableHandler) Act(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.TableID(mux.Vars(r)["id"])

	var req request.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Type == "" {
		WriteError(w, NewInvalidRequestError("type is required"))
		return
	}

	cardIDs := make([]model.CardID, len(req.CardIDs))
	for i, cid := range req.CardIDs {
		cardIDs[i] = model.CardID(cid)
	}

	action := model.Action{
		Type:      model.ActionType(req.Type),
		SourceKey: req.SourceKey,
		TargetKey: req.TargetKey,
		CardIDs:   cardIDs,
	}

	accepted, err := h.sessions.PerformAction(r.Context(), id, player.ID, action)
	if err != nil {
		WriteError(w, err)
		return
	}

	snapshot, err := h.sessions.GetTable(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ActionResult{
		Accepted: accepted,
		Table:    response.TableFromSnapshot(snapshot),
	})
}

// GetPile handles GET /api/v1/tables/{id}/piles/{key}
func (h *TableHandler) GetPile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := model.TableID(vars["id"])
	key := vars["key"]

	snapshot, err := h.sessions.GetPile(r.Context(), id, key)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PileFromSnapshot(*snapshot))
}

// Records handles GET /api/v1/tables/{id}/records
func (h *TableHandler) Records(w http.ResponseWriter, r *http.Request) {
	id := model.TableID(mux.Vars(r)["id"])

	records, err := h.sessions.GetGameRecords(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameRecordListFromModels(records))
}

// Events handles GET /api/v1/tables/{id}/events as a server-sent event stream
func (h *TableHandler) Events(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.TableID(mux.Vars(r)["id"])

	// Table must exist before a stream is opened for it
	if _, err := h.sessions.GetTable(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		if err := h.broadcaster.Attach(id); err != nil {
			WriteError(w, err)
			return
		}
	}

	hub := h.hubManager.GetOrCreateHub(id)
	sse.ServeSSE(w, r, hub, player.ID)
}

// transition runs a game state transition and responds with the updated table
func (h *TableHandler) transition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id model.TableID) error) {
	id := model.TableID(mux.Vars(r)["id"])

	if err := fn(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	snapshot, err := h.sessions.GetTable(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.TableFromSnapshot(snapshot))
}
