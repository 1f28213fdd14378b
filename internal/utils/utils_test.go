package utils

import (
	"testing"
	"time"

	"github.com/Garvkhullar/cashflow4.0-official/internal/apperrors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, exp, err := GenerateJWT("team-1", "team", "table-1", "secret", time.Hour, "cashflow-game")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "team-1", claims.Subject)
	assert.Equal(t, "team", claims.Role)
	assert.Equal(t, "table-1", claims.TableID)

	_, err = ParseAndValidateJWT(token, "other-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestParseAndValidateJWT_Expired(t *testing.T) {
	token, _, err := GenerateJWT("admin", "admin", "", "secret", -time.Minute, "cashflow-game")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(token, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestGenerateLoginCode(t *testing.T) {
	for range 50 {
		code, err := GenerateLoginCode(4)
		require.NoError(t, err)
		assert.Len(t, code, 4)
		assert.Regexp(t, `^\d{4}$`, code)
	}
	_, err := GenerateLoginCode(0)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("hunter22", hash))
	assert.False(t, CheckPasswordHash("hunter23", hash))
	assert.False(t, CheckPasswordHash("hunter22", ""))

	_, err = HashPassword("")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "162000", FormatMoney(decimal.NewFromInt(162000)))
	assert.Equal(t, "162000.00", FormatMoneyFixed(decimal.NewFromInt(162000)))
	assert.Equal(t, "40%", FormatRate(decimal.RequireFromString("0.40")))
}
