package demo

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/database/books"
	"github.com/mrlokans/locallibrary/internal/entities"
)

func setupSeedTestDB(t *testing.T) (*database.Database, func()) {
	t.Helper()

	dbPath := "./test_seed_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

func TestSeedPopulatesTheCatalog(t *testing.T) {
	db, cleanup := setupSeedTestDB(t)
	defer cleanup()

	require.NoError(t, Seed(db))

	genres, err := db.GetAllGenres()
	require.NoError(t, err)
	assert.NotEmpty(t, genres)

	languages, err := db.GetAllLanguages()
	require.NoError(t, err)
	assert.NotEmpty(t, languages)

	repo := books.NewRepository(db.DB)
	all, err := repo.GetAll()
	require.NoError(t, err)
	require.NotEmpty(t, all)

	// Every seeded book has an author, a language and at least one copy.
	for _, book := range all {
		fetched, err := repo.GetByID(book.ID)
		require.NoError(t, err)
		assert.NotNil(t, fetched.Author, fetched.Title)
		assert.NotNil(t, fetched.Language, fetched.Title)
		assert.NotEmpty(t, fetched.Instances, fetched.Title)
	}
}

func TestResetRestoresTheCatalogAndKeepsUsers(t *testing.T) {
	db, cleanup := setupSeedTestDB(t)
	defer cleanup()

	require.NoError(t, Seed(db))

	user := entities.User{Username: "demo", Email: "demo@example.org", PasswordHash: "x", Role: entities.UserRoleAdmin}
	require.NoError(t, db.DB.Create(&user).Error)

	// Vandalize the catalog the way a demo visitor would.
	extra, err := db.CreateGenre("Vandalism")
	require.NoError(t, err)
	require.NoError(t, db.DB.Exec("DELETE FROM authors").Error)

	require.NoError(t, Reset(db))

	// Catalog is back.
	var authorCount int64
	require.NoError(t, db.DB.Model(&entities.Author{}).Count(&authorCount).Error)
	assert.Greater(t, authorCount, int64(0))

	_, err = db.GetGenreByID(extra.ID)
	assert.Error(t, err)

	// Accounts survive.
	fetched, err := db.GetUserByUsername("demo")
	require.NoError(t, err)
	assert.Equal(t, user.ID, fetched.ID)
}
