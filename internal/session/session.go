package session

import (
	jwt "github.com/golang-jwt/jwt/v5"

	apperrors "github.com/spec-kit/bcard-portal/pkg/util"
)

// Session is the per-browser (or per-CLI-invocation) auth state derived from
// the stored token. It is recomputed on every page load and never persisted
// as its own object; only the IsLoggedIn/IsAdmin flags are cached for fast
// reads.
type Session struct {
	IsLoggedIn bool
	IsAdmin    bool
	// IsBusiness mirrors the token's business-account claim. Card creation
	// is reserved for business and admin accounts.
	IsBusiness bool
	UserID     string
	// Token carries the raw bearer token for remote calls. Empty when
	// anonymous.
	Token string
}

// Anonymous is the session of a visitor with no stored token.
var Anonymous = Session{}

// Derive computes a Session from a raw token. The payload segment is decoded
// WITHOUT signature verification: the client treats claims as display hints
// only, and any authorization-sensitive decision is re-validated by the
// directory service.
//
// Decode failures fail soft: the caller gets a logged-in session with no
// identity plus a DecodeFailure diagnostic, never a hard error. Derive is
// pure and idempotent so it is safe to call on every navigation.
func Derive(token string) (Session, error) {
	if token == "" {
		return Anonymous, nil
	}

	sess := Session{IsLoggedIn: true, Token: token}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return sess, apperrors.NewDecodeFailure(err)
	}

	if isAdmin, ok := claims["isAdmin"].(bool); ok && isAdmin {
		sess.IsAdmin = true
	}
	if role, ok := claims["role"].(string); ok && role == "admin" {
		sess.IsAdmin = true
	}
	if isBusiness, ok := claims["isBusiness"].(bool); ok && isBusiness {
		sess.IsBusiness = true
	}
	if id, ok := claims["_id"].(string); ok && id != "" {
		sess.UserID = id
	} else if id, ok := claims["id"].(string); ok {
		sess.UserID = id
	}

	return sess, nil
}
