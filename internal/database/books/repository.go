// Package books provides database operations for book management.
//
// Books carry the two hard constraints of the catalog: ISBN values are
// globally unique, and a book cannot be deleted while loanable copies
// of it exist (restrict-on-delete).
package books

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/locallibrary/internal/entities"
)

var (
	// ErrDuplicateISBN is returned when a create or update would store an
	// ISBN that another book already has.
	ErrDuplicateISBN = errors.New("a book with this ISBN already exists")

	// ErrBookHasInstances is returned when deleting a book that still has
	// copies referencing it.
	ErrBookHasInstances = errors.New("book has copies and cannot be deleted")
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// preloadGenres orders the many-to-many relation by genre id so that
// DisplayGenre output is deterministic.
func preloadGenres(db *gorm.DB) *gorm.DB {
	return db.Order("genres.id ASC")
}

// Create persists a new book together with its genre associations.
// Returns ErrDuplicateISBN when the ISBN is already taken.
func (r *Repository) Create(book *entities.Book) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entities.Book{}).Where("isbn = ?", book.ISBN).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateISBN
		}
		// Insert join rows for the genres but never touch the genre
		// rows themselves; related entities are referenced by id only.
		return tx.Omit("Author", "Language", "Instances", "Genres.*").Create(book).Error
	})
}

// GetByID retrieves a book with author, language, genres and copies
// preloaded. Copies are ordered by due date.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.
		Preload("Author").
		Preload("Language").
		Preload("Genres", preloadGenres).
		Preload("Instances", func(db *gorm.DB) *gorm.DB {
			return db.Order("due_back ASC")
		}).
		First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetByISBN retrieves a book by its ISBN.
func (r *Repository) GetByISBN(isbn string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Author").Preload("Genres", preloadGenres).
		Where("isbn = ?", isbn).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetAll retrieves all books ordered by title, then by author name.
// Books without an author sort together (SQLite places NULL join values
// first on ascending order).
func (r *Repository) GetAll() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.
		Preload("Author").
		Preload("Language").
		Preload("Genres", preloadGenres).
		Joins("LEFT JOIN authors ON authors.id = books.author_id").
		Order("books.title ASC, authors.last_name ASC, authors.first_name ASC").
		Find(&books).Error
	return books, err
}

// Update saves changes to a book and replaces its genre associations
// with the set on the passed entity. Returns ErrDuplicateISBN when the
// new ISBN belongs to a different book.
func (r *Repository) Update(book *entities.Book) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entities.Book{}).
			Where("isbn = ? AND id <> ?", book.ISBN, book.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateISBN
		}
		if err := tx.Omit(clause.Associations).Save(book).Error; err != nil {
			return err
		}
		return tx.Model(book).Association("Genres").Replace(book.Genres)
	})
}

// Delete removes a book and its genre associations. The delete is
// rejected with ErrBookHasInstances while copies of the book exist.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entities.BookInstance{}).Where("book_id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrBookHasInstances
		}
		if err := tx.Exec("DELETE FROM book_genres WHERE book_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Book{}, id).Error
	})
}
