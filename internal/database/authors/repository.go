// Package authors provides database operations for author management.
package authors

import (
	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new author.
func (r *Repository) Create(author *entities.Author) error {
	return r.db.Create(author).Error
}

// GetByID retrieves an author with their books preloaded, ordered by title.
func (r *Repository) GetByID(id uint) (*entities.Author, error) {
	var author entities.Author
	err := r.db.Preload("Books", func(db *gorm.DB) *gorm.DB {
		return db.Order("title ASC")
	}).First(&author, id).Error
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// GetAll retrieves all authors ordered by last name, then first name.
func (r *Repository) GetAll() ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Order("last_name ASC, first_name ASC").Find(&authors).Error
	return authors, err
}

// Update saves changes to an existing author.
func (r *Repository) Update(author *entities.Author) error {
	return r.db.Save(author).Error
}

// Delete removes an author and clears the author reference on any books
// they wrote, in one transaction. The books themselves are kept.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Book{}).Where("author_id = ?", id).
			Update("author_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Author{}, id).Error
	})
}
