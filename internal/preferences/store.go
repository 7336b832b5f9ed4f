package preferences

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/areaviz/areaviz/backend-go/internal/db"
)

// PGStore keeps one JSONB state row per account.
type PGStore struct {
	conn db.DBTX
}

func NewPGStore(conn db.DBTX) *PGStore {
	return &PGStore{conn: conn}
}

func (s *PGStore) GetPreferences(ctx context.Context, accountID string) (State, error) {
	var raw []byte
	err := s.conn.QueryRow(ctx,
		`SELECT state FROM preferences WHERE account_id = $1`, accountID,
	).Scan(&raw)
	if db.IsNoRows(err) {
		return State{}, ErrNotFound
	}
	if err != nil {
		return State{}, err
	}

	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		return State{}, fmt.Errorf("decode preferences: %w", err)
	}
	return state, nil
}

func (s *PGStore) PutPreferences(ctx context.Context, accountID string, state State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	_, err = s.conn.Exec(ctx,
		`INSERT INTO preferences (account_id, state, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (account_id) DO UPDATE SET state = EXCLUDED.state, updated_at = now()`,
		accountID, raw)
	return err
}
