package favorite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/areaviz/areaviz/backend-go/internal/db"
)

type PGStore struct {
	conn db.DBTX
}

func NewPGStore(conn db.DBTX) *PGStore {
	return &PGStore{conn: conn}
}

const favoriteColumns = `id, account_id, name, description, state, created_at, updated_at`

func scanFavorite(row pgx.Row) (Favorite, error) {
	var f Favorite
	var raw []byte
	if err := row.Scan(&f.ID, &f.AccountID, &f.Name, &f.Description, &raw, &f.CreatedAt, &f.UpdatedAt); err != nil {
		if db.IsNoRows(err) {
			return Favorite{}, ErrNotFound
		}
		return Favorite{}, err
	}
	if err := json.Unmarshal(raw, &f.State); err != nil {
		return Favorite{}, fmt.Errorf("decode favorite state: %w", err)
	}
	return f, nil
}

func (s *PGStore) ListFavorites(ctx context.Context, accountID string) ([]Favorite, error) {
	rows, err := s.conn.Query(ctx,
		`SELECT `+favoriteColumns+` FROM favorites WHERE account_id = $1 ORDER BY created_at`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favorites []Favorite
	for rows.Next() {
		f, err := scanFavorite(rows)
		if err != nil {
			return nil, err
		}
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}

func (s *PGStore) CreateFavorite(ctx context.Context, f Favorite) (Favorite, error) {
	raw, err := json.Marshal(f.State)
	if err != nil {
		return Favorite{}, fmt.Errorf("encode favorite state: %w", err)
	}
	return scanFavorite(s.conn.QueryRow(ctx,
		`INSERT INTO favorites (id, account_id, name, description, state)
		 VALUES ($1, $2, $3, $4, $5) RETURNING `+favoriteColumns,
		f.ID, f.AccountID, f.Name, f.Description, raw))
}

func (s *PGStore) GetFavorite(ctx context.Context, accountID, id string) (Favorite, error) {
	return scanFavorite(s.conn.QueryRow(ctx,
		`SELECT `+favoriteColumns+` FROM favorites WHERE id = $1 AND account_id = $2`, id, accountID))
}

func (s *PGStore) UpdateFavorite(ctx context.Context, f Favorite) (Favorite, error) {
	raw, err := json.Marshal(f.State)
	if err != nil {
		return Favorite{}, fmt.Errorf("encode favorite state: %w", err)
	}
	return scanFavorite(s.conn.QueryRow(ctx,
		`UPDATE favorites SET name = $3, description = $4, state = $5, updated_at = now()
		 WHERE id = $1 AND account_id = $2 RETURNING `+favoriteColumns,
		f.ID, f.AccountID, f.Name, f.Description, raw))
}

func (s *PGStore) DeleteFavorite(ctx context.Context, accountID, id string) error {
	tag, err := s.conn.Exec(ctx,
		`DELETE FROM favorites WHERE id = $1 AND account_id = $2`, id, accountID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
