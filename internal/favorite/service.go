// Package favorite keeps named visualizer states per account.
package favorite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/areaviz/areaviz/backend-go/internal/typeid"
	"github.com/areaviz/areaviz/backend-go/internal/visualizer"
)

const MaxNameLength = 100

var (
	ErrNotFound     = errors.New("favorite not found")
	ErrInvalidName  = errors.New("invalid favorite name")
	ErrInvalidState = errors.New("invalid favorite state")
)

type Favorite struct {
	ID          string              `json:"id"`
	AccountID   string              `json:"-"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	State       visualizer.Snapshot `json:"state"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// Store persists favorites. Get, Update and Delete are scoped to the
// account and return ErrNotFound for another account's favorite.
type Store interface {
	ListFavorites(ctx context.Context, accountID string) ([]Favorite, error)
	CreateFavorite(ctx context.Context, f Favorite) (Favorite, error)
	GetFavorite(ctx context.Context, accountID, id string) (Favorite, error)
	UpdateFavorite(ctx context.Context, f Favorite) (Favorite, error)
	DeleteFavorite(ctx context.Context, accountID, id string) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Input is the editable part of a favorite.
type Input struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	State       visualizer.Snapshot `json:"state"`
}

func (in Input) validate() (Input, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, fmt.Errorf("%w: name is required", ErrInvalidName)
	}
	if utf8.RuneCountInString(in.Name) > MaxNameLength {
		return in, fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, MaxNameLength)
	}
	state, err := visualizer.Normalize(in.State)
	if err != nil {
		return in, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	in.State = state
	return in, nil
}

func (s *Service) List(ctx context.Context, accountID string) ([]Favorite, error) {
	favorites, err := s.store.ListFavorites(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	if favorites == nil {
		favorites = []Favorite{}
	}
	return favorites, nil
}

func (s *Service) Create(ctx context.Context, accountID string, in Input) (*Favorite, error) {
	in, err := in.validate()
	if err != nil {
		return nil, err
	}

	f, err := s.store.CreateFavorite(ctx, Favorite{
		ID:          typeid.NewFavoriteID(),
		AccountID:   accountID,
		Name:        in.Name,
		Description: in.Description,
		State:       in.State,
	})
	if err != nil {
		return nil, fmt.Errorf("create favorite: %w", err)
	}
	return &f, nil
}

func (s *Service) Get(ctx context.Context, accountID, id string) (*Favorite, error) {
	if err := typeid.Validate(id, typeid.PrefixFavorite); err != nil {
		return nil, ErrNotFound
	}
	f, err := s.store.GetFavorite(ctx, accountID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get favorite: %w", err)
	}
	return &f, nil
}

func (s *Service) Update(ctx context.Context, accountID, id string, in Input) (*Favorite, error) {
	if err := typeid.Validate(id, typeid.PrefixFavorite); err != nil {
		return nil, ErrNotFound
	}
	in, err := in.validate()
	if err != nil {
		return nil, err
	}

	f, err := s.store.UpdateFavorite(ctx, Favorite{
		ID:          id,
		AccountID:   accountID,
		Name:        in.Name,
		Description: in.Description,
		State:       in.State,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update favorite: %w", err)
	}
	return &f, nil
}

func (s *Service) Delete(ctx context.Context, accountID, id string) error {
	if err := typeid.Validate(id, typeid.PrefixFavorite); err != nil {
		return ErrNotFound
	}
	if err := s.store.DeleteFavorite(ctx, accountID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete favorite: %w", err)
	}
	return nil
}
