package storage

import (
	"context"

	"github.com/jmdjr/card-games/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Table snapshot operations
	SaveTableSnapshot(ctx context.Context, snapshot *model.TableSnapshot) error
	GetTableSnapshot(ctx context.Context, id model.TableID) (*model.TableSnapshot, error)
	DeleteTableSnapshot(ctx context.Context, id model.TableID) error
	ListTableSnapshots(ctx context.Context) ([]*model.TableSnapshot, error)

	// Game record operations
	SaveGameRecord(ctx context.Context, record *model.GameRecord) error
	GetGameRecord(ctx context.Context, id string) (*model.GameRecord, error)
	GetGameRecordsForTable(ctx context.Context, tableID model.TableID) ([]*model.GameRecord, error)
}
