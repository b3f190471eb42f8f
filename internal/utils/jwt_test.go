package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medibook/internal/models"
)

func testUser(id uint) *models.User {
	u := &models.User{Email: "jane@example.com", FullName: "Jane Doe"}
	u.ID = id
	return u
}

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(testUser(7), "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.ID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateTokenRejects(t *testing.T) {
	valid, err := GenerateToken(testUser(7), "secret", time.Hour)
	require.NoError(t, err)
	expired, err := GenerateToken(testUser(7), "secret", -time.Minute)
	require.NoError(t, err)
	noUser, err := GenerateToken(testUser(0), "secret", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"wrong secret", valid, "other"},
		{"expired", expired, "secret"},
		{"missing user id", noUser, "secret"},
		{"garbage", "not.a.jwt", "secret"},
		{"empty", "", "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateToken(tt.token, tt.secret)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
