package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LinkTTL is how long a report download link remains valid.
const LinkTTL = 24 * time.Hour

// ErrInvalidToken is returned for expired, malformed, or mis-scoped tokens.
var ErrInvalidToken = errors.New("invalid report token")

// LinkSigner issues and verifies the signed tokens embedded in report
// download links.
type LinkSigner struct {
	secret []byte
}

// NewLinkSigner returns a signer keyed with the given secret.
func NewLinkSigner(secret []byte) *LinkSigner {
	return &LinkSigner{secret: secret}
}

// Issue returns a token granting access to one report for LinkTTL.
func (s *LinkSigner) Issue(reportID string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   reportID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(LinkTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign report token: %w", err)
	}
	return signed, nil
}

// Verify checks the token's signature and expiry and that it was issued for
// the given report.
func (s *LinkSigner) Verify(tokenString, reportID string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	subject, err := token.Claims.GetSubject()
	if err != nil || subject != reportID {
		return ErrInvalidToken
	}
	return nil
}
