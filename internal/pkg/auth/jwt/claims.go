package jwt

import "github.com/golang-jwt/jwt"

// Payload defines the JWT claims issued for a signed-in user.
// It carries the standard claims required for validity checks plus the
// identity fields handlers need to act on behalf of the user.
type Payload struct {
	// StandardClaims embeds Exp (Expiration), Iat (Issued At), and Iss
	// (Issuer), which drive token validity checks.
	jwt.StandardClaims `json:"standard_claims"`

	// UserID is the store-assigned numeric identifier of the user.
	UserID int64 `json:"user_id"`

	// Username is the handle the user signed in with.
	Username string `json:"username"`

	// Name is the user's display name, recorded next to history entries.
	Name string `json:"name"`
}
