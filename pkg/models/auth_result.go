package models

// AuthResult is the outcome of resolving a request's caller. It is built
// fresh per request, immutable once returned, and never persisted.
//
// A result is only valid when User or ShareToken is non-nil; with both nil
// the caller must treat the request as unauthorized. The zero-value fields
// are first-class "absent" markers, not errors: a request with no bearer
// token simply has Token == "".
type AuthResult struct {
	// Token is the raw bearer string, if one was presented.
	Token string

	// AuthKey is the session-store key carried by the token payload, if any.
	AuthKey string

	// ShareToken holds the decoded claims of a share token granting read
	// access to a specific resource without an authenticated user.
	ShareToken map[string]any

	// User is the authenticated principal, if identity resolution succeeded.
	User *User
}

// Valid reports whether the result carries a usable identity.
func (r *AuthResult) Valid() bool {
	return r.User != nil || r.ShareToken != nil
}
