package auth

import (
	"strings"
	"testing"
	"time"

	"authgate/config"
	"authgate/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAccessSecret = "test_access_secret_key_very_long_for_testing"

func newTestConfig(secret string) *config.Config {
	return &config.Config{
		SecretKey: config.SecretKeyConfig{Access: secret},
	}
}

// fakeClock is a manually advanced clock for expiry tests.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestJWTService(t *testing.T, clock *fakeClock) service.TokenService {
	t.Helper()

	jwtService, err := NewJWTServiceWithClock(newTestConfig(testAccessSecret), clock.Now)
	require.NoError(t, err)

	return jwtService
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	jwtService := newTestJWTService(t, clock)

	identity := service.TokenIdentity{UserID: uuid.New(), Name: "Ann"}

	token, err := jwtService.Issue(identity, time.Hour)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := jwtService.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, identity.UserID, claims.UserID)
	assert.Equal(t, "Ann", claims.Name)
	assert.Equal(t, identity.UserID.String(), claims.Subject)
	assert.True(t, clock.now.Equal(claims.IssuedAtTime()))
	assert.True(t, clock.now.Add(time.Hour).Equal(claims.ExpiresAtTime()))
}

func TestJWTService_DefaultTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	jwtService := newTestJWTService(t, clock)
	assert.Equal(t, config.DefaultTokenTTL, jwtService.DefaultTTL())

	token, err := jwtService.Issue(service.TokenIdentity{UserID: uuid.New(), Name: "Ann"}, 0)
	require.NoError(t, err)

	claims, err := jwtService.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, claims.ExpiresAtTime().Sub(claims.IssuedAtTime()))
}

func TestJWTService_ConfiguredTTL(t *testing.T) {
	cfg := newTestConfig(testAccessSecret)
	cfg.Auth = &config.AuthConfig{TokenTTL: 15 * time.Minute}

	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, jwtService.DefaultTTL())
}

func TestJWTService_Expiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	jwtService := newTestJWTService(t, clock)

	token, err := jwtService.Issue(service.TokenIdentity{UserID: uuid.New(), Name: "Ann"}, time.Minute)
	require.NoError(t, err)

	clock.Advance(59 * time.Second)
	_, err = jwtService.Validate(token)
	require.NoError(t, err)

	// now == exp is already expired.
	clock.Advance(time.Second)
	claims, err := jwtService.Validate(token)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, service.ErrTokenExpired))

	clock.Advance(time.Hour)
	_, err = jwtService.Validate(token)
	assert.True(t, errors.Is(err, service.ErrTokenExpired))
}

func TestJWTService_MissingToken(t *testing.T) {
	jwtService := newTestJWTService(t, &fakeClock{now: time.Now()})

	for _, token := range []string{"", "   "} {
		claims, err := jwtService.Validate(token)
		assert.Nil(t, claims)
		assert.True(t, errors.Is(err, service.ErrMissingToken))
	}
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService := newTestJWTService(t, &fakeClock{now: time.Now()})

	for _, token := range []string{"garbage", "clearly-not-a-jwt-token-format", "a.b.c"} {
		claims, err := jwtService.Validate(token)
		assert.Nil(t, claims)
		assert.True(t, errors.Is(err, service.ErrInvalidToken), token)
	}
}

func TestJWTService_TamperedSignature(t *testing.T) {
	jwtService := newTestJWTService(t, &fakeClock{now: time.Now()})

	token, err := jwtService.Issue(service.TokenIdentity{UserID: uuid.New(), Name: "Ann"}, time.Hour)
	require.NoError(t, err)

	lastDot := strings.LastIndex(token, ".")
	signature := token[lastDot+1:]
	require.NotEmpty(t, signature)

	for i := range len(signature) {
		flipped := []byte(signature)
		flipped[i] ^= 0x01
		tampered := token[:lastDot+1] + string(flipped)

		claims, err := jwtService.Validate(tampered)
		assert.Nil(t, claims, "position %d", i)
		assert.True(t, errors.Is(err, service.ErrInvalidToken), "position %d", i)
	}
}

func TestJWTService_TamperedPayload(t *testing.T) {
	jwtService := newTestJWTService(t, &fakeClock{now: time.Now()})

	token, err := jwtService.Issue(service.TokenIdentity{UserID: uuid.New(), Name: "Ann"}, time.Hour)
	require.NoError(t, err)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, service.Claims{
		UserID: uuid.New(),
		Name:   "Mallory",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("some_other_secret"))
	require.NoError(t, err)

	// Splice the forged payload onto the genuine signature.
	parts := strings.Split(token, ".")
	forgedParts := strings.Split(forged, ".")
	spliced := parts[0] + "." + forgedParts[1] + "." + parts[2]

	for _, candidate := range []string{forged, spliced} {
		_, err := jwtService.Validate(candidate)
		assert.True(t, errors.Is(err, service.ErrInvalidToken))
	}
}

func TestJWTService_RejectsOtherSigningMethods(t *testing.T) {
	jwtService := newTestJWTService(t, &fakeClock{now: time.Now()})

	claims := service.Claims{
		UserID: uuid.New(),
		Name:   "Ann",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testAccessSecret))
	require.NoError(t, err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for _, token := range []string{hs512, none} {
		_, err := jwtService.Validate(token)
		assert.True(t, errors.Is(err, service.ErrInvalidToken))
	}
}

func TestJWTService_RequiresExpiryAndUserID(t *testing.T) {
	jwtService := newTestJWTService(t, &fakeClock{now: time.Now()})

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, service.Claims{
		UserID: uuid.New(),
		Name:   "Ann",
	}).SignedString([]byte(testAccessSecret))
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, service.Claims{
		Name: "Ann",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testAccessSecret))
	require.NoError(t, err)

	for _, token := range []string{noExpiry, noUser} {
		_, err := jwtService.Validate(token)
		assert.True(t, errors.Is(err, service.ErrInvalidToken))
	}
}

func TestJWTService_WrongSecret(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	issuer := newTestJWTService(t, clock)

	verifier, err := NewJWTServiceWithClock(newTestConfig("a_completely_different_secret"), clock.Now)
	require.NoError(t, err)

	token, err := issuer.Issue(service.TokenIdentity{UserID: uuid.New(), Name: "Ann"}, time.Hour)
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.True(t, errors.Is(err, service.ErrInvalidToken))
}

func TestJWTService_EmptySecrets(t *testing.T) {
	// Should fail to create service
	jwtService, err := NewJWTService(newTestConfig(""))
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secret must be provided")

	jwtService, err = NewJWTService(nil)
	assert.Error(t, err)
	assert.Nil(t, jwtService)
}
