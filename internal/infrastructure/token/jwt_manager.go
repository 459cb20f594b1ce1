package token

import (
	"errors"
	"time"

	domain "realty/backend/internal/domain/auth"

	"github.com/golang-jwt/jwt/v5"
)

// JWTManager issues and validates the bearer token carrying identity claims.
// Validation is a pure function of the token and the secret; no store lookup
// is performed, so a token stays valid for its full lifetime even if the
// underlying account changes.
type JWTManager struct {
	secret     []byte
	expiration time.Duration
	issuer     string
	nowFunc    func() time.Time
}

// NewJWTManager constructs a manager with the provided secret and expiration.
func NewJWTManager(secret string, expiration time.Duration, issuer string) *JWTManager {
	return &JWTManager{
		secret:     []byte(secret),
		expiration: expiration,
		issuer:     issuer,
		nowFunc:    time.Now,
	}
}

// Claims represents the bearer token payload. CSRF holds the nonce binding
// the session to its CSRF token.
type Claims struct {
	UserID    int64  `json:"id"`
	Surname   string `json:"surname"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Email     string `json:"email"`
	ImagePath string `json:"imagePath"`
	CSRF      string `json:"csrf,omitempty"`
	jwt.RegisteredClaims
}

// Generate creates a signed JWT embedding the identity and the CSRF nonce it
// is bound to.
func (m *JWTManager) Generate(identity domain.Identity, csrfNonce string) (string, error) {
	now := m.nowFunc().UTC()
	claims := Claims{
		UserID:    identity.ID,
		Surname:   identity.Surname,
		Name:      identity.Name,
		Role:      identity.Role,
		Email:     identity.Email,
		ImagePath: identity.ImagePath,
		CSRF:      csrfNonce,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Email,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate parses and validates the token, returning the embedded identity
// when the signature and expiry check out.
func (m *JWTManager) Validate(tokenString string) (domain.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return m.nowFunc() }))
	if err != nil {
		return domain.Identity{}, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return domain.Identity{}, errors.New("invalid token claims")
	}
	return domain.Identity{
		ID:        claims.UserID,
		Surname:   claims.Surname,
		Name:      claims.Name,
		Role:      claims.Role,
		Email:     claims.Email,
		ImagePath: claims.ImagePath,
		CSRFNonce: claims.CSRF,
	}, nil
}
