package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jmdjr/card-games/internal/model"
	"github.com/jmdjr/card-games/internal/services/auth"
	"github.com/jmdjr/card-games/internal/services/bot"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest         = "INVALID_REQUEST"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodePlayerNotFound         = "PLAYER_NOT_FOUND"
	CodeTableNotFound          = "TABLE_NOT_FOUND"
	CodePileNotFound           = "PILE_NOT_FOUND"
	CodeCardNotFound           = "CARD_NOT_FOUND"
	CodeRecordNotFound         = "RECORD_NOT_FOUND"
	CodeAlreadySeated          = "ALREADY_SEATED"
	CodeNotSeated              = "NOT_SEATED"
	CodePileKeyTaken           = "PILE_KEY_TAKEN"
	CodeInvalidStateTransition = "INVALID_STATE_TRANSITION"
	CodeGameEnded              = "GAME_ENDED"
	CodeInsufficientPlayers    = "INSUFFICIENT_PLAYERS"
	CodeTransferBlocked        = "TRANSFER_BLOCKED"
	CodeTransferFailed         = "TRANSFER_FAILED"
	CodeUnknownGameType        = "UNKNOWN_GAME_TYPE"
	CodeUnknownStrategy        = "UNKNOWN_STRATEGY"
	CodeUsernameExists         = "USERNAME_EXISTS"
	CodeInvalidCredentials     = "INVALID_CREDENTIALS"
	CodeInternalError          = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrTableNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeTableNotFound, "Table not found"}}
	case errors.Is(err, model.ErrSnapshotNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeTableNotFound, "Table not found"}}
	case errors.Is(err, model.ErrPileNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePileNotFound, "Pile not found"}}
	case errors.Is(err, model.ErrCardNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeCardNotFound, "Card not found"}}
	case errors.Is(err, model.ErrRecordNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRecordNotFound, "Game record not found"}}
	case errors.Is(err, model.ErrAlreadySeated):
		return &httpError{http.StatusConflict, APIError{CodeAlreadySeated, "Player is already seated at this table"}}
	case errors.Is(err, model.ErrNotSeated):
		return &httpError{http.StatusNotFound, APIError{CodeNotSeated, "Player is not seated at this table"}}
	case errors.Is(err, model.ErrPileKeyTaken):
		return &httpError{http.StatusConflict, APIError{CodePileKeyTaken, "Pile key is already registered"}}
	case errors.Is(err, model.ErrPileAlreadyRegistered):
		return &httpError{http.StatusConflict, APIError{CodePileKeyTaken, "Pile is already registered under another key"}}
	case errors.Is(err, model.ErrInvalidStateTransition):
		return &httpError{http.StatusConflict, APIError{CodeInvalidStateTransition, "Invalid game state transition"}}
	case errors.Is(err, model.ErrGameEnded):
		return &httpError{http.StatusConflict, APIError{CodeGameEnded, "Game has ended"}}
	case errors.Is(err, model.ErrInsufficientPlayers):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientPlayers, "Not enough players to start"}}
	case errors.Is(err, model.ErrTransferBlocked):
		return &httpError{http.StatusConflict, APIError{CodeTransferBlocked, err.Error()}}
	case errors.Is(err, model.ErrTransferFailed):
		return &httpError{http.StatusConflict, APIError{CodeTransferFailed, err.Error()}}
	case errors.Is(err, model.ErrUnknownGameType):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownGameType, "Unknown game type"}}
	case errors.Is(err, bot.ErrUnknownStrategy):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownStrategy, "Unknown bot strategy"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) error {
	return &httpError{http.StatusForbidden, APIError{CodeUnauthorized, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
