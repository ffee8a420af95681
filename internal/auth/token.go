package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrOpaqueToken means the access token is not a JWT and carries no
// readable claims.
var ErrOpaqueToken = errors.New("access token is not a JWT")

// TokenInfo is what the CLI can tell about a token without the server's key.
type TokenInfo struct {
	Subject   string     `json:"subject,omitempty" yaml:"subject,omitempty"`
	IssuedAt  *time.Time `json:"issued_at,omitempty" yaml:"issued_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

func (i TokenInfo) Expired(now time.Time) bool {
	return i.ExpiresAt != nil && now.After(*i.ExpiresAt)
}

// DescribeToken decodes the registered claims of a JWT access token. The
// signature is NOT checked; only the service can do that.
func DescribeToken(token string) (TokenInfo, error) {

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return TokenInfo{}, fmt.Errorf("%w: %w", ErrOpaqueToken, err)
	}

	info := TokenInfo{
		Subject: claims.Subject,
	}
	if claims.IssuedAt != nil {
		issued := claims.IssuedAt.Time
		info.IssuedAt = &issued
	}
	if claims.ExpiresAt != nil {
		expires := claims.ExpiresAt.Time
		info.ExpiresAt = &expires
	}

	return info, nil
}
