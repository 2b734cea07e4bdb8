package service

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"edu-platform/internal/cache"
	"edu-platform/internal/database"
	"edu-platform/internal/model"
	"edu-platform/internal/store"
	"edu-platform/internal/worker"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func restoreGlobals() {
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
	bcryptCost = bcrypt.DefaultCost
	timeNow = time.Now
	parseWithClaims = jwt.ParseWithClaims
	newTokenID = uuid.NewString

	getUserByUsername = store.GetUserByUsername
	getUserByID = store.GetUserByID
	usernameExists = store.UsernameExists
	emailExists = store.EmailExists
	createUser = store.CreateUser
	replaceUserToken = store.ReplaceUserToken
	getUserTokenByToken = store.GetUserTokenByToken
	withTx = func(ctx context.Context, db database.DB, fn func(pgx.Tx) error) error {
		return pgx.BeginFunc(ctx, db, fn)
	}
}

/* ---------- 記憶體版 store ---------- */

// memStore 以 map 模擬 users / user_tokens，withTx 失敗時還原快照
type memStore struct {
	nextUserID  int64
	nextTokenID int64
	users       map[string]*model.User
	tokens      map[int64][]*model.IssuedToken

	replaceErr error
}

func installMemStore(t *testing.T) *memStore {
	t.Helper()
	t.Cleanup(restoreGlobals)
	bcryptCost = bcrypt.MinCost

	m := &memStore{
		users:  map[string]*model.User{},
		tokens: map[int64][]*model.IssuedToken{},
	}

	getUserByUsername = func(_ context.Context, _ database.Querier, username string) (*model.User, error) {
		u, ok := m.users[username]
		if !ok {
			return nil, fmt.Errorf("GetUserByUsername: %w", pgx.ErrNoRows)
		}
		cp := *u
		return &cp, nil
	}
	getUserByID = func(_ context.Context, _ database.Querier, id int64) (*model.User, error) {
		for _, u := range m.users {
			if u.ID == id {
				cp := *u
				return &cp, nil
			}
		}
		return nil, fmt.Errorf("GetUserByID: %w", pgx.ErrNoRows)
	}
	usernameExists = func(_ context.Context, _ database.Querier, username string) (bool, error) {
		_, ok := m.users[username]
		return ok, nil
	}
	emailExists = func(_ context.Context, _ database.Querier, email string) (bool, error) {
		for _, u := range m.users {
			if u.Email == email {
				return true, nil
			}
		}
		return false, nil
	}
	createUser = func(_ context.Context, _ database.Querier, u *model.User) (*model.User, error) {
		if _, ok := m.users[u.Username]; ok {
			return nil, fmt.Errorf("CreateUser: %w", store.ErrUsernameConflict)
		}
		for _, existing := range m.users {
			if existing.Email == u.Email {
				return nil, fmt.Errorf("CreateUser: %w", store.ErrEmailConflict)
			}
		}
		m.nextUserID++
		u.ID = m.nextUserID
		u.CreatedAt = time.Now()
		cp := *u
		m.users[u.Username] = &cp
		return u, nil
	}
	replaceUserToken = func(_ context.Context, _ database.Querier, it *model.IssuedToken) error {
		delete(m.tokens, it.UserID)
		if m.replaceErr != nil {
			return m.replaceErr
		}
		m.nextTokenID++
		it.ID = m.nextTokenID
		it.CreatedAt = time.Now()
		cp := *it
		m.tokens[it.UserID] = append(m.tokens[it.UserID], &cp)
		return nil
	}
	getUserTokenByToken = func(_ context.Context, _ database.Querier, token string) (*model.IssuedToken, error) {
		for _, list := range m.tokens {
			for _, it := range list {
				if it.Token == token {
					cp := *it
					return &cp, nil
				}
			}
		}
		return nil, fmt.Errorf("GetUserTokenByToken: %w", pgx.ErrNoRows)
	}
	withTx = func(_ context.Context, _ database.DB, fn func(pgx.Tx) error) error {
		users, tokens := m.snapshot()
		if err := fn(nil); err != nil {
			m.users, m.tokens = users, tokens
			return err
		}
		return nil
	}
	return m
}

func (m *memStore) snapshot() (map[string]*model.User, map[int64][]*model.IssuedToken) {
	users := make(map[string]*model.User, len(m.users))
	for k, v := range m.users {
		cp := *v
		users[k] = &cp
	}
	tokens := make(map[int64][]*model.IssuedToken, len(m.tokens))
	for k, list := range m.tokens {
		for _, it := range list {
			cp := *it
			tokens[k] = append(tokens[k], &cp)
		}
	}
	return users, tokens
}

func (m *memStore) seed(t *testing.T, username, email, password string, role model.Role) *model.User {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	u, err := createUser(context.Background(), nil, &model.User{
		Username: username, Email: email, PasswordHash: hash, Role: role,
	})
	require.NoError(t, err)
	return u
}

func (m *memStore) tokenRows(userID int64) []*model.IssuedToken {
	return m.tokens[userID]
}

/* ---------- 其他假實作 ---------- */

// inlinePool 直接在呼叫端執行 task
type inlinePool struct{ submitted int }

func (p *inlinePool) Submit(t worker.Task) bool {
	p.submitted++
	t()
	return true
}

func (p *inlinePool) Stop() {}

// queuedPool 先收下 task，由測試決定執行順序
type queuedPool struct{ tasks []worker.Task }

func (p *queuedPool) Submit(t worker.Task) bool {
	p.tasks = append(p.tasks, t)
	return true
}

func (p *queuedPool) Stop() {}

func (p *queuedPool) flush() {
	tasks := p.tasks
	p.tasks = nil
	for _, t := range tasks {
		t()
	}
}

func (p *queuedPool) flushReversed() {
	tasks := p.tasks
	p.tasks = nil
	for i := len(tasks) - 1; i >= 0; i-- {
		tasks[i]()
	}
}

// tokenCache 以 map 模擬 cache.SetActiveToken 的「只前進」寫入
type tokenCache struct {
	tokens map[string]string
	ids    map[string]int64
}

func (tc *tokenCache) evict(key string) {
	delete(tc.tokens, key)
	delete(tc.ids, key)
}

func recordingCache() (*cache.FakeCache, *tokenCache) {
	tc := &tokenCache{tokens: map[string]string{}, ids: map[string]int64{}}
	c := &cache.FakeCache{
		GetFn: func(_ context.Context, key string) *redis.StringCmd {
			if v, ok := tc.tokens[key]; ok {
				return redis.NewStringResult(fmt.Sprintf("%d:%s", tc.ids[key], v), nil)
			}
			return redis.NewStringResult("", redis.Nil)
		},
		EvalFn: func(_ context.Context, _ string, keys []string, args ...any) *redis.Cmd {
			key, id, token := keys[0], args[0].(int64), args[1].(string)
			if cur, ok := tc.ids[key]; ok && cur >= id {
				return redis.NewCmdResult(int64(0), nil)
			}
			tc.ids[key], tc.tokens[key] = id, token
			return redis.NewCmdResult(int64(1), nil)
		},
	}
	return c, tc
}

func quietLogger() *log.Logger {
	l := log.New("test")
	l.SetOutput(io.Discard)
	return l
}

func newTestSigner(t *testing.T) *TokenSigner {
	t.Helper()
	s, err := NewTokenSigner("test-secret", time.Hour, "edu-platform")
	require.NoError(t, err)
	return s
}

func newTestService(t *testing.T, c cache.Cache, pool worker.Pool) *AuthService {
	t.Helper()
	return NewAuthService(&database.FakeDB{}, c, newTestSigner(t), pool, quietLogger())
}
