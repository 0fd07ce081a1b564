package state

import (
	"context"
	"fmt"

	"github.com/doplab/jobfinder/internal/store"
)

// Clear deletes every row from the store and empties the projection.
func (s *State) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.store.InTx(ctx, func(q *store.Queries) error {
		return q.ClearAll(ctx)
	})
	if err != nil {
		return fmt.Errorf("clear store: %w", err)
	}
	s.clearLocked()
	s.log.Info("state cleared")
	return nil
}

// Reset drops and recreates the schema, then empties the projection.
func (s *State) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Reset(ctx); err != nil {
		return fmt.Errorf("reset store: %w", err)
	}
	s.clearLocked()
	s.log.Info("state reset")
	return nil
}
