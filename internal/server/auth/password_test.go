package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewPasswordHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.MinCost, NewPasswordHasher(1).Cost())
	assert.Equal(t, bcrypt.MaxCost, NewPasswordHasher(99).Cost())
	assert.Equal(t, 10, NewPasswordHasher(10).Cost())
}

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost)

	hash1, err := h.Hash("pw123456")
	require.NoError(t, err)
	hash2, err := h.Hash("pw123456")
	require.NoError(t, err)

	assert.NotEqual(t, "pw123456", hash1)
	assert.NotEqual(t, hash1, hash2, "hashes must be salted")

	ok, err := h.Verify("pw123456", hash1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("pw123456", hash2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong", hash1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHasher_UTF8(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost)
	hash, err := h.Hash("senha-çãé-密码")
	require.NoError(t, err)

	ok, err := h.Verify("senha-çãé-密码", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPasswordHasher_TooLong(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost)
	_, err := h.Hash(strings.Repeat("a", 73))
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrorValidation))
}

func TestPasswordHasher_VerifyMalformedHash(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost)
	ok, err := h.Verify("pw", "not-a-bcrypt-hash")
	assert.False(t, ok)
	assert.Error(t, err)
}
