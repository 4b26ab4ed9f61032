package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordSaltsPerCall(t *testing.T) {
	first, err := HashPassword("hunter42", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashPassword("hunter42", bcrypt.MinCost)
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.NoError(t, ComparePassword(first, "hunter42"))
	require.NoError(t, ComparePassword(second, "hunter42"))
}

func TestComparePasswordMismatch(t *testing.T) {
	hashed, err := HashPassword("hunter42", bcrypt.MinCost)
	require.NoError(t, err)

	require.Error(t, ComparePassword(hashed, "hunter43"))
	require.Error(t, ComparePassword("not-a-hash", "hunter42"))
}
