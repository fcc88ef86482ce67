package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// secretKey 存储JWT签名密钥。
// 配置中未指定时，服务器在启动时随机生成，重启会使所有旧令牌失效。
var secretKey []byte

// Claims 定义了管理员令牌的负载。
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// InitSecretKey 设置签名密钥；传入空字符串则生成一个密码学安全的32字节随机密钥。
func InitSecretKey(configured string) {
	if configured != "" {
		secretKey = []byte(configured)
		return
	}
	key := make([]byte, 32)
	_, err := rand.Read(key)
	if err != nil {
		panic("无法生成安全的密钥: " + err.Error())
	}
	secretKey = key
	fmt.Printf("JWT密钥已随机生成 (指纹: %s)。\n", base64.RawURLEncoding.EncodeToString(key[:6]))
}

// GenerateToken 为管理员签发一个指定有效期的JWT。
func GenerateToken(username string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := time.Now()
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secretKey)
}

// ParseToken 解析并验证JWT，返回Claims。
func ParseToken(tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
