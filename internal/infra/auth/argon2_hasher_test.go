package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testArgon2Params = Argon2Params{Time: 1, Memory: 1024, Threads: 1}

func TestArgon2Hasher_HashAndCheck(t *testing.T) {
	hasher := NewArgon2Hasher(testArgon2Params, 2)
	ctx := context.Background()

	hash, err := hasher.Hash(ctx, "s3cret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"))

	ok, err := hasher.Check(ctx, "s3cret", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Check(ctx, "wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2Hasher_SaltIsFreshPerCall(t *testing.T) {
	hasher := NewArgon2Hasher(testArgon2Params, 2)
	ctx := context.Background()

	first, err := hasher.Hash(ctx, "same")
	require.NoError(t, err)
	second, err := hasher.Hash(ctx, "same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestArgon2Hasher_MalformedHashes(t *testing.T) {
	hasher := NewArgon2Hasher(testArgon2Params, 1)
	ctx := context.Background()

	malformed := []string{
		"",
		"not-a-hash",
		"$2a$10$abcdefghijklmnopqrstuv",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5",
		"$argon2id$v=19$m=x,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdHNhbHQ$!!!",
		"$argon2id$v=19$m=99999999,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5",
		"$argon2id$v=19$m=1024,t=0,p=1$c2FsdHNhbHQ$a2V5a2V5",
	}

	for _, hash := range malformed {
		ok, err := hasher.Check(ctx, "s3cret", hash)
		assert.NoError(t, err, hash)
		assert.False(t, ok, hash)
	}
}

func TestArgon2Hasher_ZeroParamsUseDefaults(t *testing.T) {
	hasher, ok := NewArgon2Hasher(Argon2Params{}, 1).(*argon2Hasher)
	require.True(t, ok)
	assert.Equal(t, DefaultArgon2Params, hasher.params)
}
