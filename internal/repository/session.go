package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	sessionKeyPrefix = "session:"
	maxUpdateRetries = 5
)

// UpdateFunc receives the stored state (found is false when the session has none) and returns the
// state to store. Returning an error stores nothing; the returned state is still handed back to the caller.
type UpdateFunc func(current entity.GameState, found bool) (entity.GameState, error)

type SessionRepository interface {
	Get(ctx context.Context, sessionID string) (entity.GameState, error)
	Save(ctx context.Context, sessionID string, state entity.GameState) error
	Delete(ctx context.Context, sessionID string) error

	// Update runs fn and stores its result without interleaving with other updates of the same session.
	Update(ctx context.Context, sessionID string, fn UpdateFunc) (entity.GameState, error)
}

type redisSession struct {
	client *redis.Client
	ttl    time.Duration
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func NewRedisSessionRepository(client *redis.Client, ttl time.Duration) SessionRepository {
	return &redisSession{
		client: client,
		ttl:    ttl,
	}
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func (that *redisSession) Get(ctx context.Context, sessionID string) (entity.GameState, error) {
	state, found, err := that.load(ctx, that.client, sessionKey(sessionID))
	if err != nil {
		return entity.GameState{}, err
	}

	if !found {
		return entity.GameState{}, apperror.ErrSessionNotFound
	}

	return state, nil
}

func (that *redisSession) Save(ctx context.Context, sessionID string, state entity.GameState) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("could not marshal game state: %w", err)
	}

	if err = that.client.Set(ctx, sessionKey(sessionID), stateJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set game state: %w", err)
	}

	return nil
}

func (that *redisSession) Delete(ctx context.Context, sessionID string) error {
	deleted, err := that.client.Del(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	if deleted == 0 {
		return apperror.ErrSessionNotFound
	}

	return nil
}

func (that *redisSession) Update(ctx context.Context, sessionID string, fn UpdateFunc) (entity.GameState, error) {
	key := sessionKey(sessionID)

	var (
		result entity.GameState
		fnErr  error
	)

	txf := func(tx *redis.Tx) error {
		current, found, err := that.load(ctx, tx, key)
		if err != nil {
			return err
		}

		result, fnErr = fn(current, found)
		if fnErr != nil {
			return fnErr
		}

		stateJSON, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("could not marshal game state: %w", err)
		}

		// EXEC fails with redis.TxFailedErr if the key changed after WATCH
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, stateJSON, that.ttl)
			return nil
		})

		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := that.client.Watch(ctx, txf, key)
		switch {
		case err == nil:
			return result, nil
		case errors.Is(err, redis.TxFailedErr):
			continue
		case fnErr != nil:
			return result, fnErr
		default:
			return result, fmt.Errorf("failed to update session: %w", err)
		}
	}

	return result, apperror.ErrConcurrentUpdate
}

func (that *redisSession) load(ctx context.Context, getter stringGetter, key string) (entity.GameState, bool, error) {
	response, err := getter.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return entity.GameState{}, false, nil
	}

	if err != nil {
		return entity.GameState{}, false, fmt.Errorf("failed to get game state: %w", err)
	}

	var state entity.GameState
	if err = json.Unmarshal([]byte(response), &state); err != nil {
		return entity.GameState{}, false, fmt.Errorf("failed to unmarshal game state: %w", err)
	}

	return state, true, nil
}
