// Package redis persists the live session state in Redis so a restarted
// process can recover mid-session.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	backend "github.com/redis/go-redis/v9"

	"github.com/sjtrotter/dashbuddy/pkg/domain"
)

// Store implements ports.StateStore on a Redis client. States are stored
// JSON-encoded under prefix + "state:" + slot.
type Store struct {
	client *backend.Client
	prefix string
}

// NewStore creates a Redis-backed state store.
func NewStore(client *backend.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

func (s *Store) key(slot string) string {
	return s.prefix + "state:" + slot
}

// Save persists the state.
func (s *Store) Save(ctx context.Context, slot string, state domain.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := s.client.Set(ctx, s.key(slot), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Load retrieves the state.
// Returns domain.ErrSessionNotFound when the slot is empty.
func (s *Store) Load(ctx context.Context, slot string) (domain.State, error) {
	data, err := s.client.Get(ctx, s.key(slot)).Bytes()
	if errors.Is(err, backend.Nil) {
		return domain.State{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return domain.State{}, fmt.Errorf("redis get: %w", err)
	}

	var state domain.State
	if err := json.Unmarshal(data, &state); err != nil {
		return domain.State{}, fmt.Errorf("decode state: %w", err)
	}
	return state, nil
}

// Delete removes the persisted state.
func (s *Store) Delete(ctx context.Context, slot string) error {
	if err := s.client.Del(ctx, s.key(slot)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
