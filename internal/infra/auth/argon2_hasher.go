package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"authgate/internal/domain/service"
	"authgate/internal/errors"
)

// OWASP-recommended argon2id parameters.
const (
	argon2Time    = 1         // iterations
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4         // parallelism
	argon2SaltLen = 16        // salt length in bytes
	argon2KeyLen  = 32        // output length in bytes

	argon2Prefix = "$argon2id$"
)

// argon2idHasher implements PasswordHasher using argon2id with PHC-encoded digests.
type argon2idHasher struct{}

// NewArgon2idHasher is the constructor for argon2idHasher.
func NewArgon2idHasher() service.PasswordHasher {
	return &argon2idHasher{}
}

// Hash produces an argon2id digest of the password.
// Format: $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
func (h *argon2idHasher) Hash(password string) (string, error) {
	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "failed to generate argon2id salt")
	}

	key := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argon2Memory,
		argon2Time,
		argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Check recomputes the digest with the parameters embedded in it and compares in constant time.
func (h *argon2idHasher) Check(password, digest string) bool {
	params, salt, expected, ok := parseArgon2idDigest(digest)
	if !ok {
		return false
	}

	computed := argon2.IDKey([]byte(password), salt, params.time, params.memory, params.threads, uint32(len(expected)))

	return subtle.ConstantTimeCompare(computed, expected) == 1
}

func (h *argon2idHasher) handles(digest string) bool {
	return strings.HasPrefix(digest, argon2Prefix)
}

type argon2Params struct {
	memory  uint32
	time    uint32
	threads uint8
}

func parseArgon2idDigest(digest string) (argon2Params, []byte, []byte, bool) {
	var params argon2Params

	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return params, nil, nil, false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return params, nil, nil, false
	}

	var memory, time, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return params, nil, nil, false
	}
	// Threads must fit in uint8 and none of the parameters may be zero.
	if threads == 0 || threads > 255 || memory == 0 || time == 0 {
		return params, nil, nil, false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, false
	}

	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(expected) == 0 || len(expected) > 1<<10 {
		return params, nil, nil, false
	}

	params = argon2Params{memory: memory, time: time, threads: uint8(threads)}

	return params, salt, expected, true
}
