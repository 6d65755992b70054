package utils // package utils provides helpers for session token creation and verification

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionToken is a signed JWT proving an authenticated identity. The
// Token field holds the serialized JWT; Exp its UTC expiration. The role
// claim is a snapshot taken at issuance and is used only for coarse
// route gating; authorization-sensitive operations re-read the user
// record instead of trusting it.
type SessionToken struct {
	Token string
	Exp   time.Time
}

// SessionClaims is the decoded content of a session token.
type SessionClaims struct {
	UserID uint64
	Role   string
}

var errInvalidToken = errors.New("invalid session token")

// NewSessionToken builds and signs an HS256 JWT for a user. Claims:
// subject (sub), role, expiration (exp) and issued at (iat). Nothing is
// persisted server-side; the token itself is the whole session.
func NewSessionToken(secret string, userID uint64, role string, ttlMin int) (SessionToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken verifies the signature and expiry of a session token
// and extracts its claims. Tokens signed with any method other than HMAC
// are rejected outright.
func ParseSessionToken(secret, raw string) (SessionClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return SessionClaims{}, errInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return SessionClaims{}, errInvalidToken
	}
	out := SessionClaims{}
	// JWT numbers decode as float64.
	if sub, ok := claims["sub"].(float64); ok {
		out.UserID = uint64(sub)
	}
	if role, ok := claims["role"].(string); ok {
		out.Role = role
	}
	if out.UserID == 0 || out.Role == "" {
		return SessionClaims{}, errInvalidToken
	}
	return out, nil
}
