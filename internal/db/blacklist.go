package db

import (
	"context"
	"time"

	"github.com/expense-report/backend/internal/model"
)

func (db *Postgres) BlacklistedTokenExists(ctx context.Context, token string) (bool, error) {
	var exists bool
	err := db.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM blacklisted_tokens WHERE token = $1)`, token).Scan(&exists)
	return exists, err
}

// 이미 등록된 토큰이면 아무 것도 하지 않음
func (db *Postgres) InsertBlacklistedToken(ctx context.Context, token, userID string, expiresAt, blacklistedAt time.Time) error {
	query := `
		INSERT INTO blacklisted_tokens (token, user_id, expires_at, blacklisted_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (token) DO NOTHING
	`
	_, err := db.Pool.Exec(ctx, query, token, userID, expiresAt, blacklistedAt)
	return err
}

func (db *Postgres) ListBlacklistedTokens(ctx context.Context) ([]model.BlacklistedToken, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, token, user_id, expires_at, blacklisted_at
		FROM blacklisted_tokens
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.BlacklistedToken
	for rows.Next() {
		var t model.BlacklistedToken
		if err := rows.Scan(&t.ID, &t.Token, &t.UserID, &t.ExpiresAt, &t.BlacklistedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (db *Postgres) DeleteBlacklistedToken(ctx context.Context, id int64) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM blacklisted_tokens WHERE id = $1`, id)
	return err
}
