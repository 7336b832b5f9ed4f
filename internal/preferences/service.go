// Package preferences stores the last visualizer state per account.
package preferences

import (
	"context"
	"errors"
	"fmt"

	"github.com/areaviz/areaviz/backend-go/internal/visualizer"
)

var (
	ErrNotFound     = errors.New("preferences not found")
	ErrInvalidState = errors.New("invalid preferences state")
)

// State is the persisted form state.
type State = visualizer.Snapshot

type Store interface {
	GetPreferences(ctx context.Context, accountID string) (State, error)
	PutPreferences(ctx context.Context, accountID string, s State) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context, accountID string) (*State, error) {
	state, err := s.store.GetPreferences(ctx, accountID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	return &state, nil
}

// Put normalizes state with the engine's constraint rules before storing
// it, and returns what was stored.
func (s *Service) Put(ctx context.Context, accountID string, state State) (*State, error) {
	normalized, err := visualizer.Normalize(state)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	if err := s.store.PutPreferences(ctx, accountID, normalized); err != nil {
		return nil, fmt.Errorf("put preferences: %w", err)
	}
	return &normalized, nil
}
