package middleware

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rowdycup/scoreboard/internal/config"
	"github.com/rowdycup/scoreboard/internal/models"
)

func TestIssueTokenRoundTrip(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	user := &models.User{
		ID:          uuid.New(),
		DisplayName: "Test Admin",
		Role:        models.UserRoleAdmin,
	}

	tokenStr, err := IssueToken(cfg, user)
	require.NoError(t, err)

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(*Claims)
	require.True(t, ok)
	require.Equal(t, user.ID.String(), claims.Subject)
	require.Equal(t, "admin", claims.Role)
	require.Equal(t, "Test Admin", claims.Name)
}

func TestIssueTokenRejectsWrongSecret(t *testing.T) {
	cfg := &config.Config{JWTSecret: "right-secret"}
	user := &models.User{ID: uuid.New(), Role: models.UserRolePlayer}

	tokenStr, err := IssueToken(cfg, user)
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte("wrong-secret"), nil
	})
	require.Error(t, err)
}
