package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jmdjr/card-games/internal/api/handler"
	"github.com/jmdjr/card-games/internal/api/middleware"
	"github.com/jmdjr/card-games/internal/services/auth"
	"github.com/jmdjr/card-games/internal/services/bot"
	"github.com/jmdjr/card-games/internal/services/session"
	"github.com/jmdjr/card-games/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	AuthService       *auth.Service
	SessionController session.ControllerInterface
	BotService        *bot.Service
	HubManager        *sse.HubManager
	Broadcaster       *sse.Broadcaster
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	tableHandler := handler.NewTableHandler(cfg.SessionController, cfg.HubManager, cfg.Broadcaster)
	botHandler := handler.NewBotHandler(cfg.BotService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/logout", playerHandler.Logout).Methods(http.MethodPost)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)

	// Table routes (all require auth)
	tables := api.PathPrefix("/tables").Subrouter()
	tables.Use(authMiddleware)
	tables.HandleFunc("", tableHandler.Create).Methods(http.MethodPost)
	tables.HandleFunc("", tableHandler.List).Methods(http.MethodGet)
	tables.HandleFunc("/{id}", tableHandler.Get).Methods(http.MethodGet)
	tables.HandleFunc("/{id}", tableHandler.Close).Methods(http.MethodDelete)
	tables.HandleFunc("/{id}/join", tableHandler.Join).Methods(http.MethodPost)
	tables.HandleFunc("/{id}/leave", tableHandler.Leave).Methods(http.MethodPost)
	tables.HandleFunc("/{id}/start", tableHandler.Start).Methods(http.MethodPost)
	tables.HandleFunc("/{id}/pause", tableHandler.Pause).Methods(http.MethodPost)
	tables.HandleFunc("/{id}/resume", tableHandler.Resume).Methods(http.MethodPost)
	tables.HandleFunc("/{id}/end", tableHandler.End).Methods(http.MethodPost)
	tables.HandleFunc("/{id}/turn", tableHandler.SetTurn).Methods(http.MethodPut)
	tables.HandleFunc("/{id}/transfers", tableHandler.Transfer).Methods(http.MethodPost)
	tables.HandleFunc("/{id}/actions", tableHandler.Act).Methods(http.MethodPost)
	tables.HandleFunc("/{id}/piles/{key}", tableHandler.GetPile).Methods(http.MethodGet)
	tables.HandleFunc("/{id}/records", tableHandler.Records).Methods(http.MethodGet)
	tables.HandleFunc("/{id}/events", tableHandler.Events).Methods(http.MethodGet)

	// Bot routes
	tables.HandleFunc("/{id}/bots", botHandler.Add).Methods(http.MethodPost)
	tables.HandleFunc("/{id}/bots/process", botHandler.ProcessTurns).Methods(http.MethodPost)
	tables.HandleFunc("/{id}/bots/{player_id}", botHandler.Remove).Methods(http.MethodDelete)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
