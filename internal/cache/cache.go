package cache

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache 封裝 Redis 的最小操作集合，測試時以 FakeCache 取代
// ttl <= 0 表示不設過期
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
	Close() error
}

const activeTokenPrefix = "auth:token:"

// ActiveTokenKey 回傳某使用者目前有效 token 的快取 key
func ActiveTokenKey(username string) string {
	return activeTokenPrefix + username
}

// ErrMalformedEntry 快取內容不是 "<row id>:<token>" 格式
var ErrMalformedEntry = errors.New("malformed active token entry")

// setActiveTokenScript 只在新 row id 大於快取中的 id 時才寫入。
// user_tokens.id 在使用者列鎖內取號，越晚 commit 的 token id 越大。
const setActiveTokenScript = `
local cur = redis.call('GET', KEYS[1])
if cur then
  local id = string.match(cur, '^(%d+):')
  if id and tonumber(id) >= tonumber(ARGV[1]) then
    return 0
  end
end
redis.call('SET', KEYS[1], ARGV[1] .. ':' .. ARGV[2], 'PX', ARGV[3])
return 1
`

// SetActiveToken 寫入使用者目前的 token；快取已有較新的 token 時不覆寫，回傳 false
func SetActiveToken(ctx context.Context, c Cache, username string, tokenID int64, token string, ttl time.Duration) (bool, error) {
	ms := ttl.Milliseconds()
	if ms <= 0 {
		return false, nil
	}
	n, err := c.Eval(ctx, setActiveTokenScript, []string{ActiveTokenKey(username)}, tokenID, token, ms).Int64()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// ActiveToken 讀出使用者目前的 token 與其 row id，沒有資料時回傳 redis.Nil
func ActiveToken(ctx context.Context, c Cache, username string) (int64, string, error) {
	v, err := c.Get(ctx, ActiveTokenKey(username)).Result()
	if err != nil {
		return 0, "", err
	}
	idStr, token, ok := strings.Cut(v, ":")
	if !ok || token == "" {
		return 0, "", ErrMalformedEntry
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, "", ErrMalformedEntry
	}
	return id, token, nil
}

type FakeCache struct {
	GetFn   func(ctx context.Context, key string) *redis.StringCmd
	SetFn   func(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	EvalFn  func(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd
	CloseFn func() error
}

func (f *FakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.GetFn != nil {
		return f.GetFn(ctx, key)
	}
	panic("unexpected Get")
}

func (f *FakeCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if f.SetFn != nil {
		return f.SetFn(ctx, key, value, expiration)
	}
	panic("unexpected Set")
}

func (f *FakeCache) Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd {
	if f.EvalFn != nil {
		return f.EvalFn(ctx, script, keys, args...)
	}
	panic("unexpected Eval")
}

func (f *FakeCache) Close() error {
	if f.CloseFn != nil {
		return f.CloseFn()
	}
	return nil
}
