package books

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/entities"
)

func setupTestRepo(t *testing.T) (*Repository, *database.Database, func()) {
	t.Helper()

	dbPath := "./test_books_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return NewRepository(db.DB), db, cleanup
}

func TestCreateBook(t *testing.T) {
	t.Run("persists book with genre associations", func(t *testing.T) {
		repo, db, cleanup := setupTestRepo(t)
		defer cleanup()

		gothic, err := db.CreateGenre("Gothic")
		require.NoError(t, err)
		sf, err := db.CreateGenre("Science Fiction")
		require.NoError(t, err)

		book := &entities.Book{
			Title:  "Frankenstein",
			ISBN:   "9780486282114",
			Genres: []entities.Genre{*gothic, *sf},
		}
		require.NoError(t, repo.Create(book))
		assert.Greater(t, book.ID, uint(0))

		fetched, err := repo.GetByID(book.ID)
		require.NoError(t, err)
		require.Len(t, fetched.Genres, 2)
	})

	t.Run("rejects duplicate ISBN", func(t *testing.T) {
		repo, _, cleanup := setupTestRepo(t)
		defer cleanup()

		require.NoError(t, repo.Create(&entities.Book{Title: "First", ISBN: "9780141439518"}))

		err := repo.Create(&entities.Book{Title: "Second", ISBN: "9780141439518"})
		assert.ErrorIs(t, err, ErrDuplicateISBN)
	})

	t.Run("does not modify referenced genre rows", func(t *testing.T) {
		repo, db, cleanup := setupTestRepo(t)
		defer cleanup()

		genre, err := db.CreateGenre("Classic")
		require.NoError(t, err)

		// A stale name on the passed struct must not overwrite the row.
		tampered := *genre
		tampered.Name = "Renamed"
		require.NoError(t, repo.Create(&entities.Book{
			Title:  "Pride and Prejudice",
			ISBN:   "9780141439518",
			Genres: []entities.Genre{tampered},
		}))

		stored, err := db.GetGenreByID(genre.ID)
		require.NoError(t, err)
		assert.Equal(t, "Classic", stored.Name)
	})
}

func TestGetAllBooksOrdering(t *testing.T) {
	repo, db, cleanup := setupTestRepo(t)
	defer cleanup()

	wells := &entities.Author{FirstName: "Herbert George", LastName: "Wells"}
	require.NoError(t, db.DB.Create(wells).Error)
	austen := &entities.Author{FirstName: "Jane", LastName: "Austen"}
	require.NoError(t, db.DB.Create(austen).Error)

	require.NoError(t, repo.Create(&entities.Book{Title: "The War of the Worlds", ISBN: "9780141441030", AuthorID: &wells.ID}))
	require.NoError(t, repo.Create(&entities.Book{Title: "Emma", ISBN: "9780141439587", AuthorID: &austen.ID}))
	require.NoError(t, repo.Create(&entities.Book{Title: "Anonymous Ballads", ISBN: "9780000000001"}))

	books, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, books, 3)

	// Ordered by title; authorless books still appear.
	assert.Equal(t, "Anonymous Ballads", books[0].Title)
	assert.Equal(t, "Emma", books[1].Title)
	assert.Equal(t, "The War of the Worlds", books[2].Title)

	require.NotNil(t, books[1].Author)
	assert.Equal(t, "Austen", books[1].Author.LastName)
}

func TestDisplayGenreIsDeterministic(t *testing.T) {
	repo, db, cleanup := setupTestRepo(t)
	defer cleanup()

	// Created in this order, so ids ascend: Adventure, Classic, Gothic, Poetry.
	var genres []entities.Genre
	for _, name := range []string{"Adventure", "Classic", "Gothic", "Poetry"} {
		genre, err := db.CreateGenre(name)
		require.NoError(t, err)
		genres = append(genres, *genre)
	}

	// Pass the genres in scrambled order; the preload re-sorts by id.
	book := &entities.Book{
		Title:  "Anthology",
		ISBN:   "9780000000002",
		Genres: []entities.Genre{genres[3], genres[0], genres[2], genres[1]},
	}
	require.NoError(t, repo.Create(book))

	fetched, err := repo.GetByID(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Adventure, Classic, Gothic", fetched.DisplayGenre())
}

func TestUpdateBook(t *testing.T) {
	t.Run("replaces genre associations", func(t *testing.T) {
		repo, db, cleanup := setupTestRepo(t)
		defer cleanup()

		gothic, err := db.CreateGenre("Gothic")
		require.NoError(t, err)
		sf, err := db.CreateGenre("Science Fiction")
		require.NoError(t, err)

		book := &entities.Book{Title: "Frankenstein", ISBN: "9780486282114", Genres: []entities.Genre{*gothic}}
		require.NoError(t, repo.Create(book))

		book.Genres = []entities.Genre{*sf}
		require.NoError(t, repo.Update(book))

		fetched, err := repo.GetByID(book.ID)
		require.NoError(t, err)
		require.Len(t, fetched.Genres, 1)
		assert.Equal(t, "Science Fiction", fetched.Genres[0].Name)
	})

	t.Run("rejects ISBN already used by another book", func(t *testing.T) {
		repo, _, cleanup := setupTestRepo(t)
		defer cleanup()

		require.NoError(t, repo.Create(&entities.Book{Title: "First", ISBN: "9780141439518"}))
		second := &entities.Book{Title: "Second", ISBN: "9780141441030"}
		require.NoError(t, repo.Create(second))

		second.ISBN = "9780141439518"
		assert.ErrorIs(t, repo.Update(second), ErrDuplicateISBN)
	})

	t.Run("keeping own ISBN is not a conflict", func(t *testing.T) {
		repo, _, cleanup := setupTestRepo(t)
		defer cleanup()

		book := &entities.Book{Title: "Emma", ISBN: "9780141439587"}
		require.NoError(t, repo.Create(book))

		book.Title = "Emma (annotated)"
		require.NoError(t, repo.Update(book))
	})
}

func TestDeleteBook(t *testing.T) {
	t.Run("rejected while copies exist", func(t *testing.T) {
		repo, db, cleanup := setupTestRepo(t)
		defer cleanup()

		book := &entities.Book{Title: "Emma", ISBN: "9780141439587"}
		require.NoError(t, repo.Create(book))

		instance := entities.BookInstance{BookID: book.ID, Status: entities.StatusAvailable}
		require.NoError(t, db.DB.Create(&instance).Error)

		assert.ErrorIs(t, repo.Delete(book.ID), ErrBookHasInstances)

		// The book is still there.
		_, err := repo.GetByID(book.ID)
		assert.NoError(t, err)
	})

	t.Run("removes the book and its genre join rows", func(t *testing.T) {
		repo, db, cleanup := setupTestRepo(t)
		defer cleanup()

		genre, err := db.CreateGenre("Classic")
		require.NoError(t, err)
		book := &entities.Book{Title: "Emma", ISBN: "9780141439587", Genres: []entities.Genre{*genre}}
		require.NoError(t, repo.Create(book))

		require.NoError(t, repo.Delete(book.ID))

		_, err = repo.GetByID(book.ID)
		assert.Error(t, err)

		var joinRows int64
		require.NoError(t, db.DB.Table("book_genres").Where("book_id = ?", book.ID).Count(&joinRows).Error)
		assert.Zero(t, joinRows)

		// The genre itself survives.
		_, err = db.GetGenreByID(genre.ID)
		assert.NoError(t, err)
	})
}

func TestGetByISBN(t *testing.T) {
	repo, _, cleanup := setupTestRepo(t)
	defer cleanup()

	require.NoError(t, repo.Create(&entities.Book{Title: "Emma", ISBN: "9780141439587"}))

	book, err := repo.GetByISBN("9780141439587")
	require.NoError(t, err)
	assert.Equal(t, "Emma", book.Title)

	_, err = repo.GetByISBN("9999999999999")
	assert.Error(t, err)
}
