package instances

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/entities"
)

func setupTestRepo(t *testing.T) (*Repository, *database.Database, func()) {
	t.Helper()

	dbPath := "./test_instances_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return NewRepository(db.DB), db, cleanup
}

func createBook(t *testing.T, db *database.Database, title, isbn string) *entities.Book {
	t.Helper()
	book := &entities.Book{Title: title, ISBN: isbn}
	require.NoError(t, db.DB.Create(book).Error)
	return book
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestCreateInstance(t *testing.T) {
	t.Run("assigns a UUID on insert", func(t *testing.T) {
		repo, db, cleanup := setupTestRepo(t)
		defer cleanup()

		book := createBook(t, db, "Emma", "9780141439587")
		instance := &entities.BookInstance{BookID: book.ID, Imprint: "Penguin Classics, 2003"}
		require.NoError(t, repo.Create(instance))

		assert.NotEqual(t, uuid.Nil, instance.ID)
		assert.Equal(t, entities.StatusMaintenance, instance.Status)
	})

	t.Run("rejects a copy of a missing book", func(t *testing.T) {
		repo, _, cleanup := setupTestRepo(t)
		defer cleanup()

		err := repo.Create(&entities.BookInstance{BookID: 12345})
		assert.Error(t, err)
	})

	t.Run("rejects unknown status codes", func(t *testing.T) {
		repo, db, cleanup := setupTestRepo(t)
		defer cleanup()

		book := createBook(t, db, "Emma", "9780141439587")
		err := repo.Create(&entities.BookInstance{BookID: book.ID, Status: "x"})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestInstanceIDIsStable(t *testing.T) {
	repo, db, cleanup := setupTestRepo(t)
	defer cleanup()

	book := createBook(t, db, "Emma", "9780141439587")
	instance := &entities.BookInstance{BookID: book.ID, Status: entities.StatusAvailable}
	require.NoError(t, repo.Create(instance))
	id := instance.ID

	instance.Status = entities.StatusOnLoan
	instance.DueBack = datePtr(2026, 4, 1)
	require.NoError(t, repo.Update(instance))

	fetched, err := repo.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, id, fetched.ID)
	assert.Equal(t, entities.StatusOnLoan, fetched.Status)
}

func TestGetAllFiltersAndOrdering(t *testing.T) {
	repo, db, cleanup := setupTestRepo(t)
	defer cleanup()

	book := createBook(t, db, "Emma", "9780141439587")

	onLoanLate := &entities.BookInstance{BookID: book.ID, Status: entities.StatusOnLoan, DueBack: datePtr(2026, 5, 1)}
	onLoanSoon := &entities.BookInstance{BookID: book.ID, Status: entities.StatusOnLoan, DueBack: datePtr(2026, 4, 1)}
	available := &entities.BookInstance{BookID: book.ID, Status: entities.StatusAvailable}
	for _, instance := range []*entities.BookInstance{onLoanLate, onLoanSoon, available} {
		require.NoError(t, repo.Create(instance))
	}

	t.Run("no filter returns everything ordered by due date, nulls first", func(t *testing.T) {
		all, err := repo.GetAll(Filter{})
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, available.ID, all[0].ID)
		assert.Equal(t, onLoanSoon.ID, all[1].ID)
		assert.Equal(t, onLoanLate.ID, all[2].ID)
	})

	t.Run("status filter", func(t *testing.T) {
		onLoan, err := repo.GetAll(Filter{Status: entities.StatusOnLoan})
		require.NoError(t, err)
		assert.Len(t, onLoan, 2)
	})

	t.Run("due date range filter", func(t *testing.T) {
		due, err := repo.GetAll(Filter{DueBefore: datePtr(2026, 4, 15)})
		require.NoError(t, err)
		require.Len(t, due, 1)
		assert.Equal(t, onLoanSoon.ID, due[0].ID)
	})

	t.Run("book relation is preloaded", func(t *testing.T) {
		all, err := repo.GetAll(Filter{})
		require.NoError(t, err)
		require.NotNil(t, all[1].Book)
		assert.Equal(t, "Emma", all[1].Book.Title)
	})
}

func TestGetOverdue(t *testing.T) {
	repo, db, cleanup := setupTestRepo(t)
	defer cleanup()

	book := createBook(t, db, "Emma", "9780141439587")
	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

	overdue := &entities.BookInstance{BookID: book.ID, Status: entities.StatusOnLoan, DueBack: datePtr(2026, 3, 10)}
	dueToday := &entities.BookInstance{BookID: book.ID, Status: entities.StatusOnLoan, DueBack: datePtr(2026, 3, 15)}
	future := &entities.BookInstance{BookID: book.ID, Status: entities.StatusOnLoan, DueBack: datePtr(2026, 4, 1)}
	noDue := &entities.BookInstance{BookID: book.ID, Status: entities.StatusAvailable}
	for _, instance := range []*entities.BookInstance{overdue, dueToday, future, noDue} {
		require.NoError(t, repo.Create(instance))
	}

	result, err := repo.GetOverdue(now)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, overdue.ID, result[0].ID)
}

func TestMarkReturned(t *testing.T) {
	repo, db, cleanup := setupTestRepo(t)
	defer cleanup()

	user := entities.User{Username: "reader", Email: "reader@example.org", PasswordHash: "x", Role: entities.UserRoleMember}
	require.NoError(t, db.DB.Create(&user).Error)

	book := createBook(t, db, "Emma", "9780141439587")
	instance := &entities.BookInstance{
		BookID:     book.ID,
		Status:     entities.StatusOnLoan,
		DueBack:    datePtr(2026, 4, 1),
		BorrowerID: &user.ID,
	}
	require.NoError(t, repo.Create(instance))

	returned, err := repo.MarkReturned(instance.ID)
	require.NoError(t, err)

	assert.Equal(t, entities.StatusAvailable, returned.Status)
	assert.Nil(t, returned.DueBack)
	assert.Nil(t, returned.BorrowerID)

	t.Run("unknown copy", func(t *testing.T) {
		_, err := repo.MarkReturned(uuid.New())
		assert.Error(t, err)
	})
}

func TestGetByBorrower(t *testing.T) {
	repo, db, cleanup := setupTestRepo(t)
	defer cleanup()

	user := entities.User{Username: "reader", Email: "reader@example.org", PasswordHash: "x", Role: entities.UserRoleMember}
	require.NoError(t, db.DB.Create(&user).Error)

	book := createBook(t, db, "Emma", "9780141439587")
	loaned := &entities.BookInstance{BookID: book.ID, Status: entities.StatusOnLoan, BorrowerID: &user.ID, DueBack: datePtr(2026, 4, 1)}
	unrelated := &entities.BookInstance{BookID: book.ID, Status: entities.StatusAvailable}
	require.NoError(t, repo.Create(loaned))
	require.NoError(t, repo.Create(unrelated))

	result, err := repo.GetByBorrower(user.ID)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, loaned.ID, result[0].ID)
}

func TestDeleteAndCount(t *testing.T) {
	repo, db, cleanup := setupTestRepo(t)
	defer cleanup()

	book := createBook(t, db, "Emma", "9780141439587")
	instance := &entities.BookInstance{BookID: book.ID, Status: entities.StatusAvailable}
	require.NoError(t, repo.Create(instance))

	count, err := repo.CountForBook(book.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.Delete(instance.ID))

	count, err = repo.CountForBook(book.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
