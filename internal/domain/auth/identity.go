// Package auth contains domain-level types for authenticated identity.
// It is pure and free of transport/adapter concerns.
package auth

// Identity is the verified principal attached to a request. It is constructed
// only from trusted sources: token verification in the auth service, or the
// gateway-injected identity headers in backend services. Handlers treat it as
// authoritative and never re-parse the original bearer token.
type Identity struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Valid reports whether the identity carries the minimum trusted fields.
func (i Identity) Valid() bool {
	return i.UserID != ""
}
