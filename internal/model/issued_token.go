// File: internal/model/issued_token.go
package model

import "time"

// IssuedToken 每位使用者最多一筆，代表目前唯一有效的 bearer token
type IssuedToken struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Token     string    `db:"token" json:"token"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Expired 判斷 token 在 now 時是否已過期
func (t IssuedToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
