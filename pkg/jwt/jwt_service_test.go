package jwt

import (
	"CookShare-Backend/domain"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundtrip(t *testing.T) {
	service := NewJWTService()

	token := service.GenerateToken("user-123", "cook@example.com")
	require.NotEmpty(t, token)

	userID, email, err := service.GetUserByToken(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", userID)
	require.Equal(t, "cook@example.com", email)
}

func TestTamperedTokenRejected(t *testing.T) {
	service := NewJWTService()

	token := service.GenerateToken("user-123", "cook@example.com")

	// Flip one byte in the signature.
	tampered := []byte(token)
	last := len(tampered) - 1
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}

	_, _, err := service.GetUserByToken(string(tampered))
	require.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestExpiredTokenRejected(t *testing.T) {
	service := NewJWTService()

	claims := jwtUserClaim{
		"user-123",
		"cook@example.com",
		jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	raw := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := raw.SignedString([]byte(service.(*jwtService).secretKey))
	require.NoError(t, err)

	_, _, err = service.GetUserByToken(signed)
	require.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestGarbageTokenRejected(t *testing.T) {
	service := NewJWTService()

	_, _, err := service.GetUserByToken("not-a-token")
	require.ErrorIs(t, err, domain.ErrTokenInvalid)
}
