package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	InitSecretKey("test-secret")

	tokenStr, err := GenerateToken("admin", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	InitSecretKey("test-secret")

	now := time.Now()
	claims := &Claims{
		Username: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey)
	require.NoError(t, err)

	_, err = ParseToken(tokenStr)
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongAlgorithm(t *testing.T) {
	InitSecretKey("test-secret")

	claims := &Claims{
		Username: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	// alg=none 的令牌必须被拒绝，即使负载合法
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseToken(unsigned)
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongKey(t *testing.T) {
	InitSecretKey("secret-a")
	tokenStr, err := GenerateToken("admin", time.Hour)
	require.NoError(t, err)

	InitSecretKey("secret-b")
	_, err = ParseToken(tokenStr)
	assert.Error(t, err)
}
