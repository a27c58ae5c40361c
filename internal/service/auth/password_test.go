package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	t.Parallel()

	// MinCost keeps the test fast; the hash format is identical.
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "secret1", hash)

	assert.NoError(t, hasher.Compare(hash, "secret1"))
	assert.Error(t, hasher.Compare(hash, "wrong-password"))
}

func TestBcryptHasher_SamePlaintextDifferentHashes(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)

	first, err := hasher.Hash("secret1")
	require.NoError(t, err)
	second, err := hasher.Hash("secret1")
	require.NoError(t, err)

	// Random salt: equal inputs must not produce equal hashes.
	assert.NotEqual(t, first, second)

	assert.NoError(t, hasher.Compare(first, "secret1"))
	assert.NoError(t, hasher.Compare(second, "secret1"))
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	t.Parallel()

	// Out-of-range costs fall back to the library default.
	hasher := NewBcryptHasher(99)
	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)

	hasher = NewBcryptHasher(0)
	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)
}
