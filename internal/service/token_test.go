package service

import (
	"testing"
	"time"

	"edu-platform/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestNewTokenSigner(t *testing.T) {
	_, err := NewTokenSigner("", time.Hour, "x")
	require.Error(t, err)

	_, err = NewTokenSigner("s", 0, "x")
	require.Error(t, err)

	s, err := NewTokenSigner("s", 24*time.Hour, "x")
	require.NoError(t, err)
	require.Equal(t, 24*time.Hour, s.ttl)
}

func TestSignAndVerify(t *testing.T) {
	t.Cleanup(restoreGlobals)
	now := time.Now().Truncate(time.Second)
	timeNow = func() time.Time { return now }
	newTokenID = func() string { return "jti-1" }

	s := newTestSigner(t)
	user := model.User{ID: 9, Username: "alice", Role: model.RoleTeacher}

	tok, expiresAt, err := s.Sign(user)
	require.NoError(t, err)
	require.True(t, now.Add(time.Hour).Equal(expiresAt))

	claims, err := s.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "alice", claims.Subject)
	require.Equal(t, "TEACHER", claims.Role)
	require.Equal(t, int64(9), claims.UserID)
	require.Equal(t, "jti-1", claims.ID)
	require.Equal(t, "edu-platform", claims.Issuer)
	require.True(t, now.Add(time.Hour).Equal(claims.ExpiresAt.Time))
}

func TestVerifyRejects(t *testing.T) {
	t.Cleanup(restoreGlobals)
	s := newTestSigner(t)

	_, err := s.Verify("invalid")
	require.Error(t, err)

	tokNone, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"username": "a"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	_, err = s.Verify(tokNone)
	require.Error(t, err)

	// 不同密鑰
	other, err := NewTokenSigner("other", time.Hour, "edu-platform")
	require.NoError(t, err)
	tok, _, err := other.Sign(model.User{Username: "a", Role: model.RoleStudent})
	require.NoError(t, err)
	_, err = s.Verify(tok)
	require.Error(t, err)

	// 不同 issuer
	foreign, err := NewTokenSigner("test-secret", time.Hour, "someone-else")
	require.NoError(t, err)
	tok, _, err = foreign.Sign(model.User{Username: "a", Role: model.RoleStudent})
	require.NoError(t, err)
	_, err = s.Verify(tok)
	require.Error(t, err)

	// 過期
	tok, _, err = s.Sign(model.User{Username: "a", Role: model.RoleStudent})
	require.NoError(t, err)
	timeNow = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = s.Verify(tok)
	require.Error(t, err)

	timeNow = time.Now
	parseWithClaims = func(string, jwt.Claims, jwt.Keyfunc, ...jwt.ParserOption) (*jwt.Token, error) {
		return &jwt.Token{Claims: jwt.MapClaims{}, Valid: false}, nil
	}
	_, err = s.Verify("whatever")
	require.Error(t, err)
}
