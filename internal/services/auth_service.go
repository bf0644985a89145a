package services

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/architecture-survey/survey-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

const researcherIssuer = "survey-api"

// AuthService issues and verifies researcher session tokens (HS256)
type AuthService struct {
	password []byte
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

// NewAuthService creates an auth service. An empty password rejects every login.
func NewAuthService(password, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		password: []byte(password),
		secret:   []byte(secret),
		ttl:      ttl,
		now:      time.Now,
	}
}

// SetClock replaces the time source used for issuing and validating tokens
func (s *AuthService) SetClock(now func() time.Time) {
	s.now = now
}

// Login exchanges the researcher password for a signed token
func (s *AuthService) Login(password string) (*models.ResearcherTokenResponse, error) {
	if len(s.password) == 0 || len(s.secret) == 0 {
		return nil, models.ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(password), s.password) != 1 {
		return nil, models.ErrInvalidCredentials
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)
	claims := models.ResearcherClaims{
		Role: models.RoleResearcher,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   models.RoleResearcher,
			Issuer:    researcherIssuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &models.ResearcherTokenResponse{Token: signed, ExpiresAt: expiresAt}, nil
}

// Verify checks signature, expiry and role of a researcher token
func (s *AuthService) Verify(tokenString string) (*models.ResearcherClaims, error) {
	if len(s.secret) == 0 || tokenString == "" {
		return nil, models.ErrInvalidToken
	}

	claims := &models.ResearcherClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(researcherIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", models.ErrInvalidToken)
		}
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidToken, err)
	}
	if !claims.IsResearcher() {
		return nil, fmt.Errorf("%w: missing researcher role", models.ErrInvalidToken)
	}
	return claims, nil
}
