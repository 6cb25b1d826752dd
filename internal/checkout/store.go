package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	pkgerrors "github.com/feiroulabs/feirou-backend/pkg/errors"
	"github.com/feiroulabs/feirou-backend/pkg/redis"
)

// SessionStore persists one checkout session per client. Load on a client
// without a session returns a not found error; Delete is idempotent.
type SessionStore interface {
	Load(ctx context.Context, clientID string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, clientID string) error
}

type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore persists sessions as JSON blobs in redis.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) SessionStore {
	return &redisSessionStore{client: client, ttl: ttl}
}

func (s *redisSessionStore) Load(ctx context.Context, clientID string) (*Session, error) {
	raw, err := s.client.Get(ctx, s.client.CheckoutKey(clientID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no checkout session")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load checkout session")
	}

	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode checkout session")
	}
	return &session, nil
}

func (s *redisSessionStore) Save(ctx context.Context, session *Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode checkout session")
	}
	if err := s.client.Set(ctx, s.client.CheckoutKey(session.ClientID), payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save checkout session")
	}
	return nil
}

func (s *redisSessionStore) Delete(ctx context.Context, clientID string) error {
	if err := s.client.Del(ctx, s.client.CheckoutKey(clientID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete checkout session")
	}
	return nil
}
