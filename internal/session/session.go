// Package session issues and resolves the signed tokens that identify a
// logged-in user across requests. A token is an HS256-signed JWT carried in
// an HttpOnly cookie; logout revokes the token's jti in Redis until its
// natural expiry. Without Redis, revocation degrades to clearing the cookie.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// CookieName is the name of the session cookie set on login.
	CookieName = "blog_session"

	// TokenTTL is the session lifetime.
	TokenTTL = 7 * 24 * time.Hour

	issuer   = "inkwell"
	audience = "inkwell-web"
)

// ErrInvalidSession is returned by Resolve for any token that does not
// identify a user: malformed, expired, revoked, or signed with another key.
// Callers treat it as "anonymous", never as a server error.
var ErrInvalidSession = errors.New("invalid session token")

// Manager signs, resolves, and revokes session tokens.
type Manager struct {
	secret []byte
	redis  *redis.Client
}

// NewManager creates a session Manager. redisClient may be nil.
func NewManager(secret string, redisClient *redis.Client) *Manager {
	return &Manager{secret: []byte(secret), redis: redisClient}
}

// Issue creates a signed session token identifying the given user.
func (m *Manager) Issue(userID uint) (string, time.Time, error) {
	if len(m.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("session secret not configured")
	}

	now := time.Now()
	expires := now.Add(TokenTTL)
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": issuer,
		"aud": audience,
		"exp": expires.Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// Resolve maps a session token back to a user ID. Any failure yields
// ErrInvalidSession.
func (m *Manager) Resolve(ctx context.Context, tokenString string) (uint, error) {
	claims, err := m.parse(tokenString)
	if err != nil {
		return 0, ErrInvalidSession
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, ErrInvalidSession
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, ErrInvalidSession
	}

	if jti, ok := claims["jti"].(string); ok && jti != "" && m.redis != nil {
		revoked, err := m.redis.Exists(ctx, blacklistKey(jti)).Result()
		if err == nil && revoked > 0 {
			return 0, ErrInvalidSession
		}
	}

	return uint(userID), nil
}

// Revoke invalidates a token by blacklisting its jti until the token would
// have expired anyway. A no-op without Redis or for already-invalid tokens.
func (m *Manager) Revoke(ctx context.Context, tokenString string) error {
	if m.redis == nil {
		return nil
	}
	claims, err := m.parse(tokenString)
	if err != nil {
		return nil
	}
	jti, ok := claims["jti"].(string)
	if !ok || jti == "" {
		return nil
	}

	ttl := TokenTTL
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		if remaining := time.Until(exp.Time); remaining > 0 {
			ttl = remaining
		}
	}

	return m.redis.Set(ctx, blacklistKey(jti), "1", ttl).Err()
}

func (m *Manager) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

// generateJTI creates a unique token ID so individual sessions can be revoked.
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}

func blacklistKey(jti string) string {
	return "blacklist:" + jti
}
