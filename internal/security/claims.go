package security

import "time"

// TokenClaims is the verified identity carried by an access token. Every
// person in the system (citizen, staff, admin) authenticates the same way.
type TokenClaims struct {
	UserID  string
	Role    string
	Exp     time.Time
	Issuer  string
	Subject string
}
