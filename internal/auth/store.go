package auth

import (
	"context"

	"github.com/areaviz/areaviz/backend-go/internal/db"
)

// PGStore keeps accounts in Postgres.
type PGStore struct {
	conn db.DBTX
}

func NewPGStore(conn db.DBTX) *PGStore {
	return &PGStore{conn: conn}
}

func (s *PGStore) CreateAccount(ctx context.Context, a Account, passwordHash string) error {
	_, err := s.conn.Exec(ctx,
		`INSERT INTO accounts (id, email, password, display_name) VALUES ($1, $2, $3, $4)`,
		a.ID, a.Email, passwordHash, a.DisplayName)
	if db.IsUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

func (s *PGStore) GetAccountByEmail(ctx context.Context, email string) (Account, string, error) {
	var a Account
	var hash string
	err := s.conn.QueryRow(ctx,
		`SELECT id, email, display_name, password FROM accounts WHERE email = $1`, email,
	).Scan(&a.ID, &a.Email, &a.DisplayName, &hash)
	if db.IsNoRows(err) {
		return Account{}, "", ErrAccountNotFound
	}
	return a, hash, err
}

func (s *PGStore) GetAccountByID(ctx context.Context, id string) (Account, error) {
	var a Account
	err := s.conn.QueryRow(ctx,
		`SELECT id, email, display_name FROM accounts WHERE id = $1`, id,
	).Scan(&a.ID, &a.Email, &a.DisplayName)
	if db.IsNoRows(err) {
		return Account{}, ErrAccountNotFound
	}
	return a, err
}
