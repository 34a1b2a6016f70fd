package auth

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/locallibrary/internal/admin"
	"github.com/mrlokans/locallibrary/internal/config"
	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/entities"
)

func setupTestService(t *testing.T) (*Service, func()) {
	t.Helper()

	dbPath := "./test_auth_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cfg := config.Auth{
		Mode:       config.AuthModeLocal,
		BcryptCost: bcrypt.MinCost,
	}
	service := NewService(db.DB, cfg)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return service, cleanup
}

func TestCreateUser(t *testing.T) {
	t.Run("creates a valid user", func(t *testing.T) {
		service, cleanup := setupTestService(t)
		defer cleanup()

		user, err := service.CreateUser("librarian1", "desk@example.org", "a-long-password", entities.UserRoleLibrarian)
		require.NoError(t, err)
		assert.Greater(t, user.ID, uint(0))
		assert.Equal(t, entities.UserRoleLibrarian, user.Role)
		assert.NotEqual(t, "a-long-password", user.PasswordHash)
	})

	t.Run("validates inputs", func(t *testing.T) {
		service, cleanup := setupTestService(t)
		defer cleanup()

		_, err := service.CreateUser("", "a@example.org", "a-long-password", entities.UserRoleMember)
		assert.ErrorIs(t, err, ErrUsernameRequired)

		_, err = service.CreateUser("user", "", "a-long-password", entities.UserRoleMember)
		assert.ErrorIs(t, err, ErrEmailRequired)

		_, err = service.CreateUser("user", "a@example.org", "", entities.UserRoleMember)
		assert.ErrorIs(t, err, ErrPasswordRequired)

		_, err = service.CreateUser("x", "a@example.org", "a-long-password", entities.UserRoleMember)
		assert.ErrorIs(t, err, ErrUsernameInvalid)

		_, err = service.CreateUser("user", "not-an-email", "a-long-password", entities.UserRoleMember)
		assert.ErrorIs(t, err, ErrEmailInvalid)

		_, err = service.CreateUser("user", "a@example.org", "a-long-password", entities.UserRole("superuser"))
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("rejects duplicate username or email", func(t *testing.T) {
		service, cleanup := setupTestService(t)
		defer cleanup()

		_, err := service.CreateUser("reader", "reader@example.org", "a-long-password", entities.UserRoleMember)
		require.NoError(t, err)

		_, err = service.CreateUser("reader", "other@example.org", "a-long-password", entities.UserRoleMember)
		assert.ErrorIs(t, err, ErrUserExists)

		_, err = service.CreateUser("other", "reader@example.org", "a-long-password", entities.UserRoleMember)
		assert.ErrorIs(t, err, ErrUserExists)
	})
}

func TestAuthenticate(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	_, err := service.CreateUser("reader", "reader@example.org", "a-long-password", entities.UserRoleMember)
	require.NoError(t, err)

	t.Run("by username", func(t *testing.T) {
		user, err := service.Authenticate("reader", "a-long-password")
		require.NoError(t, err)
		assert.Equal(t, "reader", user.Username)
	})

	t.Run("by email", func(t *testing.T) {
		user, err := service.Authenticate("reader@example.org", "a-long-password")
		require.NoError(t, err)
		assert.Equal(t, "reader", user.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Authenticate("reader", "not-the-password")
		assert.ErrorIs(t, err, ErrInvalidPassword)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := service.Authenticate("nobody", "a-long-password")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestHasUsers(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	has, err := service.HasUsers()
	require.NoError(t, err)
	assert.False(t, has)

	_, err = service.CreateUser("reader", "reader@example.org", "a-long-password", entities.UserRoleMember)
	require.NoError(t, err)

	has, err = service.HasUsers()
	require.NoError(t, err)
	assert.True(t, has)
}

func TestCanEdit(t *testing.T) {
	assert.True(t, CanEdit(entities.UserRoleAdmin))
	assert.True(t, CanEdit(entities.UserRoleLibrarian))
	assert.False(t, CanEdit(entities.UserRoleMember))
	assert.False(t, CanEdit(""))
}

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(entities.UserRoleAdmin, admin.PermCanMarkReturned))
	assert.True(t, HasPermission(entities.UserRoleAdmin, "anything_else"))

	assert.True(t, HasPermission(entities.UserRoleLibrarian, admin.PermCanMarkReturned))
	assert.False(t, HasPermission(entities.UserRoleLibrarian, "anything_else"))

	assert.False(t, HasPermission(entities.UserRoleMember, admin.PermCanMarkReturned))
}
