package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jmdjr/card-games/internal/model"
	"github.com/jmdjr/card-games/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	key := playerKey(player.ID)

	// Apply TTL only for guest players
	var ttl time.Duration
	if player.IsGuest {
		ttl = s.cfg.GuestPlayerTTL
	}

	if ttl > 0 {
		return s.client.Set(ctx, key, data, ttl).Err()
	}
	return s.client.Set(ctx, key, data, 0).Err()
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	return s.client.Del(ctx, playerKey(id)).Err()
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	data, err := json.Marshal(rp)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, registeredPlayerKey(rp.PlayerID), data, 0) // No TTL
	pipe.Set(ctx, usernameIndexKey(rp.Username), string(rp.PlayerID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	data, err := s.client.Get(ctx, registeredPlayerKey(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var rp model.RegisteredPlayer
	if err := json.Unmarshal(data, &rp); err != nil {
		return nil, err
	}
	return &rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	// Look up player ID from username index
	playerIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	return s.GetRegisteredPlayer(ctx, model.PlayerID(playerIDStr))
}

// Table snapshot operations

func (s *Storage) SaveTableSnapshot(ctx context.Context, snapshot *model.TableSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	key := snapshotKey(snapshot.ID)
	indexKey := snapshotIndexKey()

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, s.cfg.SnapshotTTL)
	pipe.SAdd(ctx, indexKey, key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetTableSnapshot(ctx context.Context, id model.TableID) (*model.TableSnapshot, error) {
	data, err := s.client.Get(ctx, snapshotKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSnapshotNotFound
		}
		return nil, err
	}

	var snapshot model.TableSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (s *Storage) DeleteTableSnapshot(ctx context.Context, id model.TableID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, snapshotKey(id))
	pipe.SRem(ctx, snapshotIndexKey(), snapshotKey(id))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) ListTableSnapshots(ctx context.Context) ([]*model.TableSnapshot, error) {
	keys, err := s.client.SMembers(ctx, snapshotIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []*model.TableSnapshot{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	snapshots := make([]*model.TableSnapshot, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Snapshot may have expired
		}
		var snapshot model.TableSnapshot
		if err := json.Unmarshal([]byte(val.(string)), &snapshot); err != nil {
			continue // Skip invalid data
		}
		snapshots = append(snapshots, &snapshot)
	}
	sort.Slice(snapshots, func(i, j int) bool { return snapshots[i].ID < snapshots[j].ID })

	return snapshots, nil
}

// Game record operations

func (s *Storage) SaveGameRecord(ctx context.Context, record *model.GameRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	key := recordKey(record.ID)
	indexKey := recordsForTableIndexKey(record.TableID)

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0) // Records are permanent
	pipe.SAdd(ctx, indexKey, key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGameRecord(ctx context.Context, id string) (*model.GameRecord, error) {
	data, err := s.client.Get(ctx, recordKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRecordNotFound
		}
		return nil, err
	}

	var record model.GameRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Storage) GetGameRecordsForTable(ctx context.Context, tableID model.TableID) ([]*model.GameRecord, error) {
	keys, err := s.client.SMembers(ctx, recordsForTableIndexKey(tableID)).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []*model.GameRecord{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*model.GameRecord, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var record model.GameRecord
		if err := json.Unmarshal([]byte(val.(string)), &record); err != nil {
			continue // Skip invalid data
		}
		records = append(records, &record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].EndedAt.Before(records[j].EndedAt) })

	return records, nil
}
