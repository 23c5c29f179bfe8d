//go:build unit

package user_test

import (
	"testing"

	"lendshare/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	cases := []struct {
		name  string
		uname string
		email string
		errIs error
	}{
		{name: "valid", uname: "Alice", email: "alice@example.com"},
		{name: "blank name", uname: "  ", email: "alice@example.com", errIs: user.ErrEmptyName},
		{name: "missing at sign", uname: "Alice", email: "alice.example.com", errIs: user.ErrInvalidEmail},
		{name: "at sign first", uname: "Alice", email: "@example.com", errIs: user.ErrInvalidEmail},
		{name: "at sign last", uname: "Alice", email: "alice@", errIs: user.ErrInvalidEmail},
		{name: "embedded space", uname: "Alice", email: "al ice@example.com", errIs: user.ErrInvalidEmail},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			u, err := user.NewUser(c.uname, c.email)

			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.uname, u.Name())
			assert.Equal(t, c.email, u.Email())
		})
	}
}

func TestUserPatch(t *testing.T) {
	newUser := func(t *testing.T) *user.User {
		t.Helper()
		u, err := user.NewUser("Alice", "alice@example.com")
		require.NoError(t, err)
		return u
	}

	t.Run("blank fields keep stored values", func(t *testing.T) {
		u := newUser(t)

		require.NoError(t, u.Patch("", ""))

		assert.Equal(t, "Alice", u.Name())
		assert.Equal(t, "alice@example.com", u.Email())
	})

	t.Run("email change is re-validated", func(t *testing.T) {
		u := newUser(t)

		require.ErrorIs(t, u.Patch("", "not-an-email"), user.ErrInvalidEmail)
		assert.Equal(t, "alice@example.com", u.Email())
	})

	t.Run("name only", func(t *testing.T) {
		u := newUser(t)

		require.NoError(t, u.Patch("Bob", ""))

		assert.Equal(t, "Bob", u.Name())
		assert.Equal(t, "alice@example.com", u.Email())
	})
}
