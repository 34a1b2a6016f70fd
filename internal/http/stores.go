package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/locallibrary/internal/database/instances"
	"github.com/mrlokans/locallibrary/internal/entities"
)

// This file consolidates the store interface definitions used by HTTP
// controllers. Each controller depends on the smallest interface that
// covers its operations; the concrete implementations are the Database
// struct and the repositories under internal/database.

// GenreStore provides genre CRUD. Implemented by *database.Database.
type GenreStore interface {
	CreateGenre(name string) (*entities.Genre, error)
	GetGenreByID(id uint) (*entities.Genre, error)
	GetAllGenres() ([]entities.Genre, error)
	UpdateGenre(genre *entities.Genre) error
	DeleteGenre(id uint) error
}

// LanguageStore provides language CRUD. Implemented by *database.Database.
type LanguageStore interface {
	CreateLanguage(name string) (*entities.Language, error)
	GetLanguageByID(id uint) (*entities.Language, error)
	GetAllLanguages() ([]entities.Language, error)
	UpdateLanguage(language *entities.Language) error
	DeleteLanguage(id uint) error
}

// AuthorStore provides author CRUD. Implemented by *authors.Repository.
type AuthorStore interface {
	Create(author *entities.Author) error
	GetByID(id uint) (*entities.Author, error)
	GetAll() ([]entities.Author, error)
	Update(author *entities.Author) error
	Delete(id uint) error
}

// BookStore provides book CRUD. Implemented by *books.Repository.
type BookStore interface {
	Create(book *entities.Book) error
	GetByID(id uint) (*entities.Book, error)
	GetAll() ([]entities.Book, error)
	Update(book *entities.Book) error
	Delete(id uint) error
}

// InstanceStore provides book copy CRUD. Implemented by *instances.Repository.
type InstanceStore interface {
	Create(instance *entities.BookInstance) error
	GetByID(id uuid.UUID) (*entities.BookInstance, error)
	GetAll(filter instances.Filter) ([]entities.BookInstance, error)
	GetOverdue(now time.Time) ([]entities.BookInstance, error)
	Update(instance *entities.BookInstance) error
	MarkReturned(id uuid.UUID) (*entities.BookInstance, error)
	Delete(id uuid.UUID) error
}

// UserStore provides borrower account management. Implemented by
// *database.Database.
type UserStore interface {
	GetUserByID(id uint) (*entities.User, error)
	GetAllUsers() ([]entities.User, error)
	DeleteUser(id uint) error
}
