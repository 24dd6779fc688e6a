package auth

import (
	"strings"
	"testing"

	"authgate/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newHasherConfig(algorithm string) *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			Hasher:     algorithm,
			BcryptCost: bcrypt.MinCost,
		},
	}
}

func TestPasswordHasher_DefaultsToBcrypt(t *testing.T) {
	hasher := NewPasswordHasher(nil)

	hash, err := hasher.Hash("pw123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultBcryptCost, cost)
	assert.True(t, hasher.Check("pw123", hash))
}

func TestPasswordHasher_SelectsArgon2id(t *testing.T) {
	hasher := NewPasswordHasher(newHasherConfig(config.HasherArgon2id))

	hash, err := hasher.Hash("pw123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, argon2Prefix))
	assert.True(t, hasher.Check("pw123", hash))
}

func TestPasswordHasher_ChecksDigestsOfEitherAlgorithm(t *testing.T) {
	bcryptHash, err := NewBcryptHasher(bcrypt.MinCost).Hash("pw123")
	require.NoError(t, err)
	argonHash, err := NewArgon2idHasher().Hash("pw123")
	require.NoError(t, err)

	for _, algorithm := range []string{config.HasherBcrypt, config.HasherArgon2id} {
		hasher := NewPasswordHasher(newHasherConfig(algorithm))

		assert.True(t, hasher.Check("pw123", bcryptHash), algorithm)
		assert.True(t, hasher.Check("pw123", argonHash), algorithm)
		assert.False(t, hasher.Check("other", bcryptHash), algorithm)
		assert.False(t, hasher.Check("other", argonHash), algorithm)
	}
}

func TestPasswordHasher_UnknownDigestFormat(t *testing.T) {
	hasher := NewPasswordHasher(newHasherConfig(config.HasherBcrypt))

	assert.False(t, hasher.Check("pw123", "pw123"))
	assert.False(t, hasher.Check("pw123", "$md5$abc"))
	assert.False(t, hasher.Check("", ""))
}
