package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrAlreadySeated  = errors.New("player is already seated at the table")
	ErrNotSeated      = errors.New("player is not seated at this table")

	// Table errors
	ErrTableNotFound          = errors.New("table not found")
	ErrPileNotFound           = errors.New("pile not found")
	ErrPileKeyTaken           = errors.New("pile key is already registered")
	ErrPileAlreadyRegistered  = errors.New("pile is already registered under another key")
	ErrInvalidStateTransition = errors.New("invalid game state transition")
	ErrGameEnded              = errors.New("game has ended")
	ErrInsufficientPlayers    = errors.New("insufficient players to start game")

	// Transfer errors
	ErrTransferBlocked = errors.New("transfer blocked by validation")
	ErrTransferFailed  = errors.New("transfer failed during execution")

	// Card errors
	ErrCardNotFound = errors.New("card not found")

	// Catalog errors
	ErrUnknownGameType = errors.New("unknown game type")

	// Storage errors
	ErrSnapshotNotFound = errors.New("table snapshot not found")
	ErrRecordNotFound   = errors.New("game record not found")
)
