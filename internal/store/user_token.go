package store

import (
	"context"
	"fmt"

	"edu-platform/internal/database"
	"edu-platform/internal/model"
)

// ReplaceUserToken 以「先刪後插」取代使用者的 token，呼叫端應在 transaction 內執行。
// 先鎖住 users 那一列，讓同一使用者的並行登入依序執行。
func ReplaceUserToken(ctx context.Context, db database.Querier, t *model.IssuedToken) error {
	var locked int64
	if err := db.QueryRow(ctx,
		`SELECT id FROM users WHERE id = $1 FOR UPDATE`,
		t.UserID,
	).Scan(&locked); err != nil {
		return fmt.Errorf("ReplaceUserToken: lock user: %w", err)
	}

	if _, err := db.Exec(ctx,
		`DELETE FROM user_tokens WHERE user_id = $1`,
		t.UserID,
	); err != nil {
		return fmt.Errorf("ReplaceUserToken: delete: %w", err)
	}

	if err := db.QueryRow(ctx,
		`INSERT INTO user_tokens (user_id, token, expires_at)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		t.UserID,
		t.Token,
		t.ExpiresAt,
	).Scan(&t.ID, &t.CreatedAt); err != nil {
		return fmt.Errorf("ReplaceUserToken: insert: %w", err)
	}
	return nil
}

func GetUserTokenByToken(ctx context.Context, db database.Querier, token string) (*model.IssuedToken, error) {
	t := &model.IssuedToken{}
	if err := db.QueryRow(ctx,
		`SELECT id, user_id, token, expires_at, created_at
		 FROM user_tokens WHERE token = $1`,
		token,
	).Scan(
		&t.ID,
		&t.UserID,
		&t.Token,
		&t.ExpiresAt,
		&t.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("GetUserTokenByToken: %w", err)
	}
	return t, nil
}
