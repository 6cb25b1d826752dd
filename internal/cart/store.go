package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	pkgerrors "github.com/feiroulabs/feirou-backend/pkg/errors"
	"github.com/feiroulabs/feirou-backend/pkg/redis"
)

// SnapshotStore is the persistence collaborator contract: Load returns a
// previously saved registry or the empty default, and Save is idempotent.
type SnapshotStore interface {
	Load(ctx context.Context, clientID string) (RegistrySnapshot, error)
	Save(ctx context.Context, clientID string, snap RegistrySnapshot) error
	Delete(ctx context.Context, clientID string) error
}

type redisSnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSnapshotStore persists registry snapshots as JSON blobs in redis.
func NewRedisSnapshotStore(client *redis.Client, ttl time.Duration) SnapshotStore {
	return &redisSnapshotStore{client: client, ttl: ttl}
}

func (s *redisSnapshotStore) Load(ctx context.Context, clientID string) (RegistrySnapshot, error) {
	raw, err := s.client.Get(ctx, s.client.CartKey(clientID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return RegistrySnapshot{}, nil
		}
		return RegistrySnapshot{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart snapshot")
	}

	var snap RegistrySnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return RegistrySnapshot{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode cart snapshot")
	}
	return snap, nil
}

func (s *redisSnapshotStore) Save(ctx context.Context, clientID string, snap RegistrySnapshot) error {
	if snap.IsEmpty() {
		return s.Delete(ctx, clientID)
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart snapshot")
	}
	if err := s.client.Set(ctx, s.client.CartKey(clientID), payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart snapshot")
	}
	return nil
}

func (s *redisSnapshotStore) Delete(ctx context.Context, clientID string) error {
	if err := s.client.Del(ctx, s.client.CartKey(clientID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart snapshot")
	}
	return nil
}
