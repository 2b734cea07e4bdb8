package store

import (
	"context"
	"errors"
	"fmt"

	"edu-platform/internal/database"
	"edu-platform/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation = "23505"

	usernameConstraint = "users_username_key"
	emailConstraint    = "users_email_key"
)

var (
	// ErrUsernameConflict 插入時撞到 username 唯一鍵
	ErrUsernameConflict = errors.New("username already exists")
	// ErrEmailConflict 插入時撞到 email 唯一鍵
	ErrEmailConflict = errors.New("email already exists")
)

const selectUser = `SELECT id, username, email, password_hash, role, created_at FROM users`

func scanUser(row interface{ Scan(dest ...any) error }) (*model.User, error) {
	u := &model.User{}
	var role string
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&role,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	u.Role = model.Role(role)
	return u, nil
}

func GetUserByID(ctx context.Context, db database.Querier, userID int64) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx, selectUser+` WHERE id = $1`, userID))
	if err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", err)
	}
	return u, nil
}

func GetUserByUsername(ctx context.Context, db database.Querier, username string) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx, selectUser+` WHERE username = $1`, username))
	if err != nil {
		return nil, fmt.Errorf("GetUserByUsername: %w", err)
	}
	return u, nil
}

func UsernameExists(ctx context.Context, db database.Querier, username string) (bool, error) {
	var exists bool
	if err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`,
		username,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("UsernameExists: %w", err)
	}
	return exists, nil
}

func EmailExists(ctx context.Context, db database.Querier, email string) (bool, error) {
	var exists bool
	if err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`,
		email,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("EmailExists: %w", err)
	}
	return exists, nil
}

// CreateUser 新增使用者；唯一鍵衝突依 constraint 名稱轉成 ErrUsernameConflict / ErrEmailConflict
func CreateUser(ctx context.Context, db database.Querier, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.Role.String(),
	)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", mapUniqueViolation(err))
	}
	return u, nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case usernameConstraint:
		return ErrUsernameConflict
	case emailConstraint:
		return ErrEmailConflict
	default:
		return err
	}
}
