package password_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merobooking/shared/password"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name        string
		password    string
		expectedErr error
	}{
		{
			name:     "valid password",
			password: "validPassword123",
		},
		{
			name:        "empty password",
			password:    "",
			expectedErr: password.ErrEmptyPassword,
		},
		{
			name:     "short password",
			password: "abc",
		},
		{
			name:     "password with special characters",
			password: "P@ssw0rd!#$%^&*()",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.password)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)

				return
			}

			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(hash, "$2"))
			assert.NoError(t, password.Verify(tt.password, hash))
		})
	}
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("correct horse battery staple")
	require.NoError(t, err)

	t.Run("matching password", func(t *testing.T) {
		assert.NoError(t, password.Verify("correct horse battery staple", hash))
	})

	t.Run("wrong password", func(t *testing.T) {
		assert.ErrorIs(t, password.Verify("wrong", hash), password.ErrInvalidPassword)
	})

	t.Run("empty password", func(t *testing.T) {
		assert.ErrorIs(t, password.Verify("", hash), password.ErrInvalidPassword)
	})

	t.Run("empty hash", func(t *testing.T) {
		assert.ErrorIs(t, password.Verify("anything", ""), password.ErrInvalidPassword)
	})
}
