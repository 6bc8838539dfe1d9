package repository

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"time"

	"github.com/emzola/bookstore/data"
	"github.com/jmoiron/sqlx"
)

type tokens interface {
	CreateNewToken(ctx context.Context, userID int64, ttl time.Duration, scope string) (*data.Token, error)
	DeleteAllTokensForUser(ctx context.Context, scope string, userID int64) error
}

// tokenEncoding renders the 16 random bytes of a token as 26 characters.
var tokenEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// generateToken returns a token for userID that expires after ttl. Only the
// SHA-256 hash of its plaintext is ever stored.
func generateToken(userID int64, ttl time.Duration, scope string) (*data.Token, error) {
	randomBytes := make([]byte, 16)
	if _, err := rand.Read(randomBytes); err != nil {
		return nil, err
	}
	plaintext := tokenEncoding.EncodeToString(randomBytes)
	hash := sha256.Sum256([]byte(plaintext))
	return &data.Token{
		Plaintext: plaintext,
		Hash:      hash[:],
		UserID:    userID,
		Expiry:    time.Now().Add(ttl),
		Scope:     scope,
	}, nil
}

// CreateNewToken issues and stores a fresh token. The returned token is the
// only place its plaintext appears.
func (r *repository) CreateNewToken(ctx context.Context, userID int64, ttl time.Duration, scope string) (*data.Token, error) {
	token, err := generateToken(userID, ttl, scope)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := insertToken(ctx, r.db, token); err != nil {
		return nil, err
	}
	return token, nil
}

func insertToken(ctx context.Context, q sqlx.ExecerContext, token *data.Token) error {
	query := `
		INSERT INTO tokens (hash, user_id, expiry, scope)
		VALUES ($1, $2, $3, $4)`
	_, err := q.ExecContext(ctx, query, token.Hash, token.UserID, token.Expiry, token.Scope)
	return err
}

// DeleteAllTokensForUser revokes every token of scope held by userID.
func (r *repository) DeleteAllTokensForUser(ctx context.Context, scope string, userID int64) error {
	if userID < 1 {
		return ErrRecordNotFound
	}
	query := `DELETE FROM tokens WHERE scope = $1 AND user_id = $2`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, query, scope, userID)
	return err
}
