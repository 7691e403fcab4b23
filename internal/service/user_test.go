package service_test

import (
	"testing"

	"github.com/MikelBai/Bank-management-application/internal/config"
	"github.com/MikelBai/Bank-management-application/internal/domain"
	"github.com/MikelBai/Bank-management-application/internal/service"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService() *service.UserService {
	return service.NewUserService(&config.Config{PrivateKey: "testkey"})
}

func TestRegister(t *testing.T) {
	s := newUserService()

	token, err := s.Register("alice", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, s.Exists("alice"))
	assert.False(t, s.Exists("bob"))

	_, err = s.Register("alice", "secret")
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestLogin(t *testing.T) {
	s := newUserService()
	_, err := s.Register("alice", "secret")
	require.NoError(t, err)

	token, err := s.Login("alice", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = s.Login("alice", "wrong")
	assert.ErrorIs(t, err, domain.ErrIncorrectCredentials)

	_, err = s.Login("bob", "secret")
	assert.ErrorIs(t, err, domain.ErrIncorrectCredentials)
}

func TestTokenCarriesLogin(t *testing.T) {
	s := newUserService()

	signed, err := s.Register("alice", "secret")
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("testkey"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	assert.Equal(t, "alice", claims.Subject)
}

func TestReplaceKeepsIDSequence(t *testing.T) {
	s := newUserService()
	_, err := s.Register("alice", "secret")
	require.NoError(t, err)

	users := s.All()
	require.Len(t, users, 1)

	fresh := newUserService()
	fresh.Replace(users)
	assert.True(t, fresh.Exists("alice"))

	_, err = fresh.Login("alice", "secret")
	require.NoError(t, err, "hashed passwords survive a restore")
}
