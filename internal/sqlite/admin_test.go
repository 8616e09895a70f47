package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/darzi/pkg/types"
)

func TestVerifyCredential(t *testing.T) {
	b := setupBackend(t)

	tests := []struct {
		candidate string
		want      bool
	}{
		{types.DefaultPassword, true},
		{"Esmat", false},
		{"esmat ", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.candidate, func(t *testing.T) {
			ok, err := b.VerifyCredential(tt.candidate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestChangeCredential(t *testing.T) {
	t.Run("wrong current keeps the default", func(t *testing.T) {
		b := setupBackend(t)

		err := b.ChangeCredential("wrong-current", "new")
		assert.ErrorIs(t, err, types.ErrCredentialMismatch)

		ok, err := b.VerifyCredential(types.DefaultPassword)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("empty next is rejected", func(t *testing.T) {
		b := setupBackend(t)

		err := b.ChangeCredential(types.DefaultPassword, "")
		assert.ErrorIs(t, err, types.ErrEmptyCredential)

		ok, err := b.VerifyCredential(types.DefaultPassword)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("change then verify", func(t *testing.T) {
		b := setupBackend(t)

		require.NoError(t, b.ChangeCredential(types.DefaultPassword, "دوکان"))

		ok, err := b.VerifyCredential("دوکان")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = b.VerifyCredential(types.DefaultPassword)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 1, adminRows(t, b))
	})
}
