// File: internal/service/auth.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"edu-platform/internal/cache"
	"edu-platform/internal/database"
	"edu-platform/internal/model"
	"edu-platform/internal/store"
	"edu-platform/internal/worker"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
)

// 可在測試時覆寫
var (
	getUserByUsername   = store.GetUserByUsername
	getUserByID         = store.GetUserByID
	usernameExists      = store.UsernameExists
	emailExists         = store.EmailExists
	createUser          = store.CreateUser
	replaceUserToken    = store.ReplaceUserToken
	getUserTokenByToken = store.GetUserTokenByToken

	withTx = func(ctx context.Context, db database.DB, fn func(pgx.Tx) error) error {
		return pgx.BeginFunc(ctx, db, fn)
	}
)

const cacheTimeout = 3 * time.Second

// RegisterInput 註冊所需欄位，Role 尚未解析
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// AuthService 負責登入、註冊與 token 狀態檢查
type AuthService struct {
	db     database.DB
	cache  cache.Cache
	signer *TokenSigner
	pool   worker.Pool
	logger *log.Logger
}

func NewAuthService(db database.DB, c cache.Cache, signer *TokenSigner, pool worker.Pool, logger *log.Logger) *AuthService {
	if logger == nil {
		logger = log.New("auth")
	}
	return &AuthService{db: db, cache: c, signer: signer, pool: pool, logger: logger}
}

// Login 驗證帳密後簽發新 token，並取代該使用者舊的 token
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.AuthResult, error) {
	if _, err := authenticate(ctx, s.db, username, password); err != nil {
		return nil, err
	}

	user, err := getUserByUsername(ctx, s.db, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var (
		result *model.AuthResult
		issued *model.IssuedToken
	)
	if err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		result, issued, err = s.issue(ctx, tx, *user)
		return err
	}); err != nil {
		return nil, err
	}

	s.logger.Infoj(log.JSON{"event": "login", "user_id": user.ID, "role": result.Role})
	s.primeCache(user.Username, issued)
	return result, nil
}

// Register 建立帳號並直接登入；任何一步失敗整筆 transaction 都不會留下資料
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.AuthResult, error) {
	taken, err := usernameExists(ctx, s.db, in.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	taken, err = emailExists(ctx, s.db, in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	role, err := model.ParseRole(in.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, in.Role)
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var (
		result *model.AuthResult
		issued *model.IssuedToken
	)
	err = withTx(ctx, s.db, func(tx pgx.Tx) error {
		u, err := createUser(ctx, tx, &model.User{
			Username:     in.Username,
			Email:        in.Email,
			PasswordHash: hash,
			Role:         role,
		})
		switch {
		case errors.Is(err, store.ErrUsernameConflict):
			return ErrUsernameTaken
		case errors.Is(err, store.ErrEmailConflict):
			return ErrEmailTaken
		case err != nil:
			return err
		}

		if _, err := authenticate(ctx, tx, in.Username, in.Password); err != nil {
			return err
		}

		result, issued, err = s.issue(ctx, tx, *u)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infoj(log.JSON{"event": "register", "user_id": result.UserID, "role": result.Role})
	s.primeCache(in.Username, issued)
	return result, nil
}

// Authorize 驗證 bearer token 並確認它仍是該使用者目前唯一的 token
func (s *AuthService) Authorize(ctx context.Context, bearer string) (*CustomClaims, error) {
	claims, err := s.signer.Verify(bearer)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenRevoked, err)
	}

	_, cached, err := cache.ActiveToken(ctx, s.cache, claims.Username)
	switch {
	case err == nil && cached == bearer:
		return claims, nil
	case err != nil && !errors.Is(err, redis.Nil):
		s.logger.Warnj(log.JSON{"event": "cache_get_failed", "username": claims.Username, "error": err.Error()})
	}

	// 快取沒命中或內容不同時以資料庫為準
	it, err := getUserTokenByToken(ctx, s.db, bearer)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTokenRevoked
		}
		return nil, err
	}
	if it.Expired(timeNow()) {
		return nil, ErrTokenRevoked
	}

	// 回填只會在快取沒有更新的 token 時生效
	s.primeCache(claims.Username, it)
	return claims, nil
}

// CurrentUser 依 token 內的 user id 回傳目前登入者的資料
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*model.User, error) {
	u, err := getUserByID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// issue 簽發 token 並在同一個 transaction 內取代舊的 token
func (s *AuthService) issue(ctx context.Context, q database.Querier, user model.User) (*model.AuthResult, *model.IssuedToken, error) {
	token, expiresAt, err := s.signer.Sign(user)
	if err != nil {
		return nil, nil, fmt.Errorf("sign token: %w", err)
	}

	issued := &model.IssuedToken{UserID: user.ID, Token: token, ExpiresAt: expiresAt}
	if err := replaceUserToken(ctx, q, issued); err != nil {
		return nil, nil, err
	}
	return model.NewAuthResult(user, token), issued, nil
}

// primeCache 交給 worker 在背景寫入快取，失敗只記 log。
// 寫入以 user_tokens.id 判斷新舊，晚到的舊 token 不會蓋掉新的。
func (s *AuthService) primeCache(username string, it *model.IssuedToken) {
	ttl := it.ExpiresAt.Sub(timeNow())
	if ttl <= 0 || s.pool == nil {
		return
	}
	id, token := it.ID, it.Token
	s.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
		defer cancel()
		if _, err := cache.SetActiveToken(ctx, s.cache, username, id, token, ttl); err != nil {
			s.logger.Warnj(log.JSON{"event": "cache_set_failed", "username": username, "error": err.Error()})
		}
	})
}
