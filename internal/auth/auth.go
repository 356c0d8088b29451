package auth

import "errors"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrForbidden    = errors.New("admin role required")
)

// Claims is the identity carried by a validated access token.
type Claims struct {
	UserID int64
	Role   string
}

func (c Claims) IsAdmin() bool {
	return c.Role == "admin"
}

// Authenticator validates the access tokens issued by the customer-facing
// API. The back office never issues tokens for real users.
type Authenticator interface {
	GenerateAccessToken(userID int64, role string) (string, error)
	ValidateAccessToken(token string) (Claims, error)
}
