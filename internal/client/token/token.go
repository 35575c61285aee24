// Package token validates and inspects bearer tokens on the client side,
// before a request spends a network round trip.
//
// The client holds no signing key, so claims are read without signature
// verification and are only used for scheduling (e.g. refreshing ahead of
// expiry), never for authorization decisions.
package token

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/healthnav/internal/common"
)

// Shape is the structural classification of a token string.
type Shape int

const (
	ShapeValid Shape = iota
	ShapeMissing
	ShapeMalformed
)

func (s Shape) String() string {
	switch s {
	case ShapeValid:
		return "valid"
	case ShapeMissing:
		return "missing"
	case ShapeMalformed:
		return "malformed"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Result is the outcome of Validate.
type Result struct {
	Shape    Shape
	Segments int
}

// OK reports whether the token is well formed.
func (r Result) OK() bool { return r.Shape == ShapeValid }

// Err returns nil for a valid token and an error wrapping
// common.ErrInvalidToken otherwise.
func (r Result) Err() error {
	switch r.Shape {
	case ShapeValid:
		return nil
	case ShapeMissing:
		return fmt.Errorf("%w: no access token, please log in", common.ErrInvalidToken)
	default:
		return fmt.Errorf("%w: expected 3 segments, got %d", common.ErrInvalidToken, r.Segments)
	}
}

// Validate checks that tok has exactly three non-empty dot-separated
// segments. Whitespace around the token is not tolerated.
func Validate(tok string) Result {
	if tok == "" {
		return Result{Shape: ShapeMissing}
	}
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		return Result{Shape: ShapeMalformed, Segments: len(parts)}
	}
	for _, p := range parts {
		if p == "" || strings.TrimSpace(p) != p {
			return Result{Shape: ShapeMalformed, Segments: len(parts)}
		}
	}
	return Result{Shape: ShapeValid, Segments: 3}
}

// Claims is the unverified subset of the token payload the client uses.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// HasExpiry reports whether the token carried an exp claim.
func (c Claims) HasExpiry() bool { return !c.ExpiresAt.IsZero() }

// ExpiresWithin reports whether the token expires before now+d. Tokens
// without exp never expire.
func (c Claims) ExpiresWithin(d time.Duration, now time.Time) bool {
	if !c.HasExpiry() {
		return false
	}
	return !now.Add(d).Before(c.ExpiresAt)
}

// Inspect decodes the claims of a well-formed token without verifying its
// signature.
func Inspect(tok string) (Claims, error) {
	if err := Validate(tok).Err(); err != nil {
		return Claims{}, err
	}

	var rc jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tok, &rc); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	c := Claims{Subject: rc.Subject}
	if rc.ExpiresAt != nil {
		c.ExpiresAt = rc.ExpiresAt.Time
	}
	if rc.IssuedAt != nil {
		c.IssuedAt = rc.IssuedAt.Time
	}
	return c, nil
}
