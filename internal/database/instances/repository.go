// Package instances provides database operations for the loanable
// copies of books.
package instances

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// ErrInvalidStatus is returned when a copy is created or updated with a
// status code outside the known set.
var ErrInvalidStatus = errors.New("invalid copy status")

// Filter narrows copy listings. Zero values mean "no constraint".
// It mirrors the admin list filters: status and due date.
type Filter struct {
	Status    entities.LoanStatus
	DueBefore *time.Time
	DueAfter  *time.Time
}

// Repository handles all book copy database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new book copy repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new copy. The UUID is assigned on insert when the
// caller did not set one. The referenced book must exist.
func (r *Repository) Create(instance *entities.BookInstance) error {
	if instance.Status != "" && !instance.Status.Valid() {
		return ErrInvalidStatus
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, instance.BookID).Error; err != nil {
			return err
		}
		return tx.Omit("Book", "Borrower").Create(instance).Error
	})
}

// GetByID retrieves a copy with its book and borrower preloaded.
func (r *Repository) GetByID(id uuid.UUID) (*entities.BookInstance, error) {
	var instance entities.BookInstance
	err := r.db.Preload("Book").Preload("Borrower").
		First(&instance, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &instance, nil
}

// GetAll retrieves copies matching the filter, ordered by due date
// ascending. Copies without a due date sort first (SQLite's NULL
// ordering on ASC).
func (r *Repository) GetAll(filter Filter) ([]entities.BookInstance, error) {
	query := r.db.Preload("Book").Preload("Borrower").Order("due_back ASC")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DueBefore != nil {
		query = query.Where("due_back < ?", filter.DueBefore)
	}
	if filter.DueAfter != nil {
		query = query.Where("due_back > ?", filter.DueAfter)
	}

	var result []entities.BookInstance
	err := query.Find(&result).Error
	return result, err
}

// GetByBorrower retrieves the copies currently referencing a borrower,
// ordered by due date.
func (r *Repository) GetByBorrower(userID uint) ([]entities.BookInstance, error) {
	var result []entities.BookInstance
	err := r.db.Preload("Book").Where("borrower_id = ?", userID).
		Order("due_back ASC").Find(&result).Error
	return result, err
}

// GetOverdue retrieves copies whose due date is strictly before the
// current date. Overdue is computed at query time; it is never a
// persisted status.
func (r *Repository) GetOverdue(now time.Time) ([]entities.BookInstance, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var result []entities.BookInstance
	err := r.db.Preload("Book").Preload("Borrower").
		Where("due_back IS NOT NULL AND due_back < ?", today).
		Order("due_back ASC").Find(&result).Error
	return result, err
}

// Update saves changes to a copy. The UUID is immutable; callers update
// a copy fetched by id, never the id itself.
func (r *Repository) Update(instance *entities.BookInstance) error {
	if !instance.Status.Valid() {
		return ErrInvalidStatus
	}
	return r.db.Omit("Book", "Borrower").Save(instance).Error
}

// MarkReturned closes out a loan: the copy becomes available, and its
// due date and borrower are cleared, in one transaction.
func (r *Repository) MarkReturned(id uuid.UUID) (*entities.BookInstance, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var instance entities.BookInstance
		if err := tx.First(&instance, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Model(&instance).Updates(map[string]any{
			"status":      entities.StatusAvailable,
			"due_back":    nil,
			"borrower_id": nil,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

// Delete removes a copy.
func (r *Repository) Delete(id uuid.UUID) error {
	return r.db.Delete(&entities.BookInstance{}, "id = ?", id).Error
}

// CountForBook returns how many copies reference a book.
func (r *Repository) CountForBook(bookID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.BookInstance{}).Where("book_id = ?", bookID).
		Count(&count).Error
	return count, err
}
