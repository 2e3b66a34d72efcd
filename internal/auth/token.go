package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/talkincode/shopcore/internal/domain"
)

// DefaultTokenTTL bounds session lifetime; there is no server-side session
// table, expiry is the only revocation mechanism.
const DefaultTokenTTL = 24 * time.Hour

// Claims carried by a signed session token.
type Claims struct {
	UserID int64  `json:"uid,string"`
	Level  string `json:"level"`
	jwt.RegisteredClaims
}

// IssueToken signs a stateless session token for the given user.
func IssueToken(user *domain.SysUser, secret string, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	claims := Claims{
		UserID: user.ID,
		Level:  user.Level,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyToken is a pure function over {token, secret}: it depends on no
// server-side state. Malformed, unsigned or tampered tokens all map to
// ErrInvalidToken.
func VerifyToken(tokenString, secret string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
