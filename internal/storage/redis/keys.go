package redis

import (
	"fmt"

	"github.com/jmdjr/card-games/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "cardgames"

// Key generation functions for each entity type

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// snapshotKey returns the Redis key for a TableSnapshot
func snapshotKey(id model.TableID) string {
	return fmt.Sprintf("%s:snapshot:%s", keyPrefix, id)
}

// snapshotIndexKey returns the Redis key for the SET of all snapshot keys
func snapshotIndexKey() string {
	return fmt.Sprintf("%s:idx:snapshots", keyPrefix)
}

// recordKey returns the Redis key for a GameRecord
func recordKey(id string) string {
	return fmt.Sprintf("%s:record:%s", keyPrefix, id)
}

// recordsForTableIndexKey returns the Redis key for the SET of records for a table
func recordsForTableIndexKey(tableID model.TableID) string {
	return fmt.Sprintf("%s:idx:records_for_table:%s", keyPrefix, tableID)
}
