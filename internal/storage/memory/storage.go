package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jmdjr/card-games/internal/model"
	"github.com/jmdjr/card-games/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players           map[model.PlayerID]*model.Player
	registeredPlayers map[model.PlayerID]*model.RegisteredPlayer
	usernameIndex     map[string]model.PlayerID
	snapshots         map[model.TableID]*model.TableSnapshot
	records           map[string]*model.GameRecord
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:           make(map[model.PlayerID]*model.Player),
		registeredPlayers: make(map[model.PlayerID]*model.RegisteredPlayer),
		usernameIndex:     make(map[string]model.PlayerID),
		snapshots:         make(map[model.TableID]*model.TableSnapshot),
		records:           make(map[string]*model.GameRecord),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return nil
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registeredPlayers[rp.PlayerID] = rp
	s.usernameIndex[rp.Username] = rp.PlayerID
	return nil
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playerID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

// Table snapshot operations

func (s *Storage) SaveTableSnapshot(ctx context.Context, snapshot *model.TableSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snapshot.ID] = snapshot
	return nil
}

func (s *Storage) GetTableSnapshot(ctx context.Context, id model.TableID) (*model.TableSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot, ok := s.snapshots[id]
	if !ok {
		return nil, model.ErrSnapshotNotFound
	}
	return snapshot, nil
}

func (s *Storage) DeleteTableSnapshot(ctx context.Context, id model.TableID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, id)
	return nil
}

func (s *Storage) ListTableSnapshots(ctx context.Context) ([]*model.TableSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshots := make([]*model.TableSnapshot, 0, len(s.snapshots))
	for _, snap := range s.snapshots {
		snapshots = append(snapshots, snap)
	}
	sort.Slice(snapshots, func(i, j int) bool { return snapshots[i].ID < snapshots[j].ID })
	return snapshots, nil
}

// Game record operations

func (s *Storage) SaveGameRecord(ctx context.Context, record *model.GameRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = record
	return nil
}

func (s *Storage) GetGameRecord(ctx context.Context, id string) (*model.GameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, model.ErrRecordNotFound
	}
	return record, nil
}

func (s *Storage) GetGameRecordsForTable(ctx context.Context, tableID model.TableID) ([]*model.GameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var records []*model.GameRecord
	for _, record := range s.records {
		if record.TableID == tableID {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].EndedAt.Before(records[j].EndedAt) })
	return records, nil
}
