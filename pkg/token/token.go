package token

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims carried by both access and refresh tokens. The subject is the
// user's stable external uid, never the internal primary key.
type Claims struct {
	UserUID   uuid.UUID `json:"user_uid"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role,omitempty"`
	TokenType string    `json:"token_type"`

	jwtlib.RegisteredClaims
}

// Pair is an access/refresh token pair issued on register and login.
type Pair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type Service struct {
	accessSecret  []byte
	refreshSecret []byte

	accessExpiresIn  time.Duration
	refreshExpiresIn time.Duration

	now func() time.Time
}

func NewService(accessSecret, refreshSecret string, accessExpiresIn, refreshExpiresIn time.Duration) *Service {
	return &Service{
		accessSecret:     []byte(accessSecret),
		refreshSecret:    []byte(refreshSecret),
		accessExpiresIn:  accessExpiresIn,
		refreshExpiresIn: refreshExpiresIn,
		now:              time.Now,
	}
}

// IssuePair issues a fresh access/refresh pair for the given identity.
func (s *Service) IssuePair(userUID uuid.UUID, email, role string) (Pair, error) {
	access, err := s.generate(TokenTypeAccess, userUID, email, role)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := s.generate(TokenTypeRefresh, userUID, "", "")
	if err != nil {
		return Pair{}, err
	}
	return Pair{Access: access, Refresh: refresh}, nil
}

// ValidateAccess parses and verifies an access token.
func (s *Service) ValidateAccess(tokenString string) (Claims, error) {
	c, err := s.validateWithSecret(tokenString, s.accessSecret)
	if err != nil {
		return Claims{}, err
	}
	if c.TokenType != TokenTypeAccess {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}

// ValidateRefresh parses and verifies a refresh token.
func (s *Service) ValidateRefresh(tokenString string) (Claims, error) {
	c, err := s.validateWithSecret(tokenString, s.refreshSecret)
	if err != nil {
		return Claims{}, err
	}
	if c.TokenType != TokenTypeRefresh {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}

// RefreshTTL reports how long refresh tokens live; used to bound the
// blacklist entries on logout.
func (s *Service) RefreshTTL() time.Duration {
	return s.refreshExpiresIn
}

func (s *Service) generate(tokenType string, userUID uuid.UUID, email, role string) (string, error) {
	now := s.now()
	secret, expIn := s.accessSecret, s.accessExpiresIn
	if tokenType == TokenTypeRefresh {
		secret, expIn = s.refreshSecret, s.refreshExpiresIn
	}
	if len(secret) == 0 || expIn <= 0 {
		return "", ErrTokenInvalid
	}

	exp := now.Add(expIn)

	c := Claims{
		UserUID:   userUID,
		Email:     email,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(now.UTC()),
			ExpiresAt: jwtlib.NewNumericDate(exp.UTC()),
			ID:        uuid.NewString(),
			Subject:   userUID.String(),
		},
	}

	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c)
	return t.SignedString(secret)
}

func (s *Service) validateWithSecret(tokenString string, secret []byte) (Claims, error) {
	p := jwtlib.NewParser(jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}))

	var c Claims
	tok, err := p.ParseWithClaims(tokenString, &c, func(token *jwtlib.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}
