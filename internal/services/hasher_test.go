package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("a@x.com")
	require.NoError(t, err)

	assert.True(t, hasher.Compare(hash, "a@x.com"))
	assert.False(t, hasher.Compare(hash, "b@x.com"))
	assert.False(t, hasher.Compare("not-a-hash", "a@x.com"))
}

func TestBcryptHasher_FreshSalt(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	h1, err := hasher.Hash("a@x.com")
	require.NoError(t, err)
	h2, err := hasher.Hash("a@x.com")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestNewBcryptHasher_CostBounds(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{name: "valid cost", cost: 10, want: 10},
		{name: "too low", cost: 1, want: bcrypt.DefaultCost},
		{name: "too high", cost: 40, want: bcrypt.DefaultCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewBcryptHasher(tt.cost).cost)
		})
	}
}

func TestBcryptHasher_LongEmail(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	long := strings.Repeat("a", 70) + "@universidade.edu.br"
	require.Greater(t, len(long), bcryptInputLimit)

	hash, err := hasher.Hash(long)
	require.NoError(t, err)

	assert.True(t, hasher.Compare(hash, long))
	assert.False(t, hasher.Compare(hash, strings.Repeat("b", 70)+"@universidade.edu.br"))
}

func TestBcryptHasher_TruncatesAt72Bytes(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	prefix := strings.Repeat("x", bcryptInputLimit)

	hash, err := hasher.Hash(prefix + "@a.edu.br")
	require.NoError(t, err)

	// only the first 72 bytes are hashed
	assert.True(t, hasher.Compare(hash, prefix+"@b.edu.br"))
	assert.True(t, hasher.Compare(hash, prefix))
}
