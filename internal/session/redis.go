package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"pageforge.app/planner/common/llm"
)

const keyPrefix = "planner:session:"

type redisStore struct {
	client *redis.Client
}

// NewRedisStore returns a Store backed by a redis list per session, letting
// chat history survive restarts and be shared across replicas. The handler
// contract is identical to the in-memory store.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context, id string) ([]llm.Turn, error) {
	entries, err := s.client.LRange(ctx, keyPrefix+id, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("reading session %s: %w", id, err)
	}
	if len(entries) == 0 {
		return nil, ErrNotFound
	}

	turns := make([]llm.Turn, 0, len(entries))
	for i, entry := range entries {
		var t llm.Turn
		if err := json.Unmarshal([]byte(entry), &t); err != nil {
			return nil, fmt.Errorf("decoding turn %d of session %s: %w", i, id, err)
		}
		turns = append(turns, t)
	}
	return turns, nil
}

func (s *redisStore) Append(ctx context.Context, id string, turns ...llm.Turn) error {
	if len(turns) == 0 {
		return nil
	}

	values := make([]any, 0, len(turns))
	for _, t := range turns {
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("encoding turn: %w", err)
		}
		values = append(values, data)
	}

	if err := s.client.RPush(ctx, keyPrefix+id, values...).Err(); err != nil {
		return fmt.Errorf("appending to session %s: %w", id, err)
	}
	return nil
}

func (s *redisStore) Len(ctx context.Context, id string) (int, error) {
	n, err := s.client.LLen(ctx, keyPrefix+id).Result()
	if err != nil {
		return 0, fmt.Errorf("measuring session %s: %w", id, err)
	}
	return int(n), nil
}
