package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cinegraph/cinegraph/internal/domain"
)

// Identity is what a verified token asserts about the caller.
type Identity struct {
	UserID   int64
	UserType domain.UserType
}

// TokenManager issues and verifies signed bearer tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a TokenManager signing with the given HMAC secret.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Issue signs a token for the given user.
func (m *TokenManager) Issue(userID int64, userType domain.UserType) (string, error) {
	now := time.Now()
	c := claims{
		Role: string(userType),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
}

// Verify parses and validates a token, returning the identity it asserts.
// Any parse or validation failure is reported as an auth error.
func (m *TokenManager) Verify(token string) (Identity, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.AuthFailed("Unexpected token signing method")
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Identity{}, domain.AuthFailed("Invalid or expired token")
	}
	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return Identity{}, domain.AuthFailed("Invalid or expired token")
	}
	userType := domain.UserType(c.Role)
	if !userType.Valid() {
		return Identity{}, domain.AuthFailed("Invalid or expired token")
	}
	return Identity{UserID: userID, UserType: userType}, nil
}
