package auth

// Claims is the identity snapshot embedded in a signed session token.
// The user id is the only claim trusted at verification time; the rest is
// informational and re-read from storage on every session check.
type Claims struct {
	UserID   string
	Name     string
	Username string
	Role     string
	Email    string
}

// TokenManager abstracts session token issuance and verification.
type TokenManager interface {
	Issue(claims Claims) (string, error)
	Verify(token string) (*Claims, error)
}
