package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// csrfSubject is the fixed subject of every CSRF token.
const csrfSubject = "CSRF-TOKEN"

// CSRFManager issues and validates the anti-forgery token. It signs with a
// different secret than the bearer token. The nonce claim is also embedded in
// the bearer token issued alongside, so a CSRF token only passes the guard
// when paired with the session it was minted for.
type CSRFManager struct {
	secret     []byte
	expiration time.Duration
	nowFunc    func() time.Time
}

// NewCSRFManager constructs a manager with the provided secret and expiration.
func NewCSRFManager(secret string, expiration time.Duration) *CSRFManager {
	return &CSRFManager{
		secret:     []byte(secret),
		expiration: expiration,
		nowFunc:    time.Now,
	}
}

type csrfClaims struct {
	Nonce string `json:"csrf"`
	jwt.RegisteredClaims
}

// Generate creates a signed CSRF token with a fresh random nonce, returning
// both the token and the nonce so the caller can bind it to the session.
func (m *CSRFManager) Generate() (string, string, error) {
	now := m.nowFunc().UTC()
	nonce := uuid.NewString()
	claims := csrfClaims{
		Nonce: nonce,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   csrfSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiration)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", "", err
	}
	return signed, nonce, nil
}

// Validate checks the signature and expiry and returns the embedded nonce.
func (m *CSRFManager) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &csrfClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return m.nowFunc() }))
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*csrfClaims)
	if !ok || !token.Valid || claims.Subject != csrfSubject {
		return "", errors.New("invalid CSRF token claims")
	}
	return claims.Nonce, nil
}
