package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"gatekeeper/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"
)

const (
	argon2SaltLen = 16
	argon2KeyLen  = 32

	// Upper bounds accepted when decoding a stored hash.
	argon2MaxTime   = 64
	argon2MaxMemory = 1024 * 1024 // KiB
)

// Argon2Params tunes the argon2id work factor.
type Argon2Params struct {
	Time    uint32 // iterations
	Memory  uint32 // KiB
	Threads uint8  // parallelism
}

// DefaultArgon2Params follow the OWASP recommendation.
var DefaultArgon2Params = Argon2Params{Time: 1, Memory: 64 * 1024, Threads: 4}

// argon2Hasher implements service.PasswordHasher using argon2id and the PHC string format.
type argon2Hasher struct {
	params  Argon2Params
	limiter *hashLimiter
}

// NewArgon2Hasher creates an argon2id-based password hasher.
func NewArgon2Hasher(params Argon2Params, maxConcurrent int) service.PasswordHasher {
	if params.Time == 0 || params.Memory == 0 || params.Threads == 0 {
		params = DefaultArgon2Params
	}

	return &argon2Hasher{
		params:  params,
		limiter: newHashLimiter(maxConcurrent),
	}
}

// Hash produces "$argon2id$v=19$m=MEMORY,t=TIME,p=THREADS$SALT$HASH".
func (h *argon2Hasher) Hash(ctx context.Context, password string) (string, error) {
	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "argon2id: generate salt")
	}

	var key []byte
	if err := h.limiter.run(ctx, func() {
		key = argon2.IDKey([]byte(password), salt, h.params.Time, h.params.Memory, h.params.Threads, argon2KeyLen)
	}); err != nil {
		return "", err
	}

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory, h.params.Time, h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Check recomputes the digest with the parameters embedded in encodedHash.
func (h *argon2Hasher) Check(ctx context.Context, password, encodedHash string) (bool, error) {
	decoded, ok := decodeArgon2Hash(encodedHash)
	if !ok {
		return false, nil
	}

	var key []byte
	if err := h.limiter.run(ctx, func() {
		key = argon2.IDKey([]byte(password), decoded.salt, decoded.params.Time, decoded.params.Memory, decoded.params.Threads, uint32(len(decoded.key)))
	}); err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare(key, decoded.key) == 1, nil
}

type argon2Encoded struct {
	params Argon2Params
	salt   []byte
	key    []byte
}

func decodeArgon2Hash(encoded string) (*argon2Encoded, bool) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, false
	}

	var p Argon2Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return nil, false
	}
	if p.Time == 0 || p.Time > argon2MaxTime || p.Memory == 0 || p.Memory > argon2MaxMemory || p.Threads == 0 {
		return nil, false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return nil, false
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return nil, false
	}

	return &argon2Encoded{params: p, salt: salt, key: key}, true
}
