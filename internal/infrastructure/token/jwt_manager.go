package token

import (
	"errors"
	"time"

	usecase "aiblog/backend/internal/usecase/auth"

	"github.com/golang-jwt/jwt/v5"
)

// JWTManager issues and validates HMAC-signed session tokens.
type JWTManager struct {
	secret     []byte
	expiration time.Duration
	issuer     string
	nowFunc    func() time.Time
}

// NewJWTManager constructs a manager. The secret's presence is enforced at
// process start by config loading, not here.
func NewJWTManager(secret string, expiration time.Duration, issuer string) *JWTManager {
	return &JWTManager{
		secret:     []byte(secret),
		expiration: expiration,
		issuer:     issuer,
		nowFunc:    time.Now,
	}
}

// Ensure JWTManager implements the TokenManager interface.
var _ usecase.TokenManager = (*JWTManager)(nil)

// sessionClaims carries the identity snapshot taken at issuance time.
type sessionClaims struct {
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	Email    string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Issue signs the claims with the configured expiry window.
func (m *JWTManager) Issue(claims usecase.Claims) (string, error) {
	now := m.nowFunc().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Name:     claims.Name,
		Username: claims.Username,
		Role:     claims.Role,
		Email:    claims.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiration)),
		},
	})
	return token.SignedString(m.secret)
}

// Verify parses and validates a token. Malformed input, a signature mismatch,
// and an elapsed expiry all collapse into the same invalid outcome.
func (m *JWTManager) Verify(tokenString string) (*usecase.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return m.nowFunc() }))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return &usecase.Claims{
		UserID:   claims.Subject,
		Name:     claims.Name,
		Username: claims.Username,
		Role:     claims.Role,
		Email:    claims.Email,
	}, nil
}
