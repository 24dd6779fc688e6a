package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"authgate/config"
	"authgate/internal/domain/service"
	"authgate/internal/errors"
)

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	secret []byte           // Shared secret for signing and verifying session tokens.
	ttl    time.Duration    // Lifetime applied when the caller does not pass one.
	now    func() time.Time // Clock used for iat/exp and for expiry checks.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	return NewJWTServiceWithClock(cfg, time.Now)
}

// NewJWTServiceWithClock is NewJWTService with an explicit clock.
func NewJWTServiceWithClock(cfg *config.Config, now func() time.Time) (service.TokenService, error) {
	if cfg == nil || strings.TrimSpace(cfg.SecretKey.Access) == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	ttl := config.DefaultTokenTTL
	if cfg.Auth != nil && cfg.Auth.TokenTTL > 0 {
		ttl = cfg.Auth.TokenTTL
	}
	if now == nil {
		now = time.Now
	}

	return &jwtService{
		secret: []byte(cfg.SecretKey.Access),
		ttl:    ttl,
		now:    now,
	}, nil
}

// Issue creates a signed token carrying the identity plus iat and exp.
func (s *jwtService) Issue(identity service.TokenIdentity, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.ttl
	}

	issuedAt := s.now()
	claims := service.Claims{
		UserID: identity.UserID,
		Name:   identity.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Validate checks the validity of a token string and returns its claims.
func (s *jwtService) Validate(tokenString string) (*service.Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, service.ErrMissingToken
	}

	claims := &service.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		// Reject signatures whose final character carries non-zero padding bits.
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.Wrap(service.ErrTokenExpired, err.Error())
		}

		return nil, errors.Wrap(service.ErrInvalidToken, err.Error())
	}

	if claims.UserID == uuid.Nil {
		return nil, errors.Wrap(service.ErrInvalidToken, "token carries no user id")
	}

	return claims, nil
}

// DefaultTTL returns the configured token lifetime.
func (s *jwtService) DefaultTTL() time.Duration {
	return s.ttl
}
