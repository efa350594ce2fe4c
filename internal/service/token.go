package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/expense-report/backend/internal/config"
	"github.com/expense-report/backend/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService issues and verifies HS256 access tokens.
//
// Expiry is checked only by Validate. ExtractIdentity reads the claims of any
// correctly signed token so callers can still learn who an expired token
// belonged to.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type tokenClaims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

func NewTokenService(cfg config.AuthConfig) (*TokenService, error) {
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}

	ttl, err := time.ParseDuration(cfg.JWTTTL)
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("%w: invalid JWT_TTL", ErrMisconfigured)
	}

	return &TokenService{
		secret: []byte(cfg.JWTSecret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (s *TokenService) Issue(userID, username, email string) (string, error) {
	now := s.now()
	claims := tokenClaims{
		Username: username,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *TokenService) ExtractIdentity(tokenStr string) (*model.AuthUser, error) {
	claims, err := s.parse(tokenStr, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" || claims.Email == "" {
		return nil, fmt.Errorf("%w: missing subject or email claim", ErrMalformedToken)
	}

	user := &model.AuthUser{
		ID:       claims.Subject,
		Username: claims.Username,
		Email:    claims.Email,
		Token:    tokenStr,
	}
	if claims.ExpiresAt != nil {
		user.ExpiresAt = claims.ExpiresAt.Time
	}
	return user, nil
}

// Validate reports whether the token is correctly signed, unexpired and
// issued for expectedEmail.
func (s *TokenService) Validate(tokenStr, expectedEmail string) bool {
	claims, err := s.parse(tokenStr, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return false
	}
	return claims.Email != "" && claims.Email == expectedEmail
}

func (s *TokenService) parse(tokenStr string, opts ...jwt.ParserOption) (*tokenClaims, error) {
	claims := &tokenClaims{}
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrMalformedToken
		}
		return s.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	return claims, nil
}
