package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoanStatus is the availability state of a single book copy.
// Stored as a one-character code.
type LoanStatus string

const (
	StatusMaintenance LoanStatus = "m"
	StatusOnLoan      LoanStatus = "o"
	StatusAvailable   LoanStatus = "a"
	StatusReserved    LoanStatus = "r"
)

// Label returns the human-readable name for a status code.
func (s LoanStatus) Label() string {
	switch s {
	case StatusMaintenance:
		return "Maintenance"
	case StatusOnLoan:
		return "On loan"
	case StatusAvailable:
		return "Available"
	case StatusReserved:
		return "Reserved"
	}
	return string(s)
}

// Valid reports whether the status is one of the known codes.
func (s LoanStatus) Valid() bool {
	switch s {
	case StatusMaintenance, StatusOnLoan, StatusAvailable, StatusReserved:
		return true
	}
	return false
}

// Genre is a book genre (e.g. Science Fiction).
// Name uniqueness is intentionally not enforced at the storage layer.
type Genre struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"index;size:200" json:"name"`
	Books     []Book    `gorm:"many2many:book_genres;" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Language is a book's natural language (e.g. English, French).
type Language struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"index;size:200" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Author owns zero or more books. Deleting an author clears the
// author reference on its books rather than deleting them.
type Author struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	FirstName   string     `gorm:"size:100" json:"first_name"`
	LastName    string     `gorm:"index;size:100" json:"last_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	DateOfDeath *time.Time `json:"date_of_death,omitempty"`
	Books       []Book     `gorm:"foreignKey:AuthorID" json:"books,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Book is a catalog title, not a specific physical copy.
type Book struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Title      string         `gorm:"index;size:200" json:"title"`
	AuthorID   *uint          `gorm:"index" json:"author_id,omitempty"`
	Author     *Author        `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Summary    string         `gorm:"type:text" json:"summary"`
	ISBN       string         `gorm:"column:isbn;uniqueIndex;size:13" json:"isbn"`
	Genres     []Genre        `gorm:"many2many:book_genres;" json:"genres,omitempty"`
	LanguageID *uint          `gorm:"index" json:"language_id,omitempty"`
	Language   *Language      `gorm:"foreignKey:LanguageID" json:"language,omitempty"`
	Instances  []BookInstance `gorm:"foreignKey:BookID" json:"instances,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// BookInstance is a single loanable copy of a book. Its ID is a random
// UUID assigned at creation and never changed afterwards. The book
// reference is restrict-on-delete: a book with copies cannot be removed.
type BookInstance struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	BookID     uint       `gorm:"index;not null" json:"book_id"`
	Book       *Book      `gorm:"foreignKey:BookID" json:"book,omitempty"`
	Imprint    string     `gorm:"size:200" json:"imprint"`
	DueBack    *time.Time `gorm:"index" json:"due_back,omitempty"`
	BorrowerID *uint      `gorm:"index" json:"borrower_id,omitempty"`
	Borrower   *User      `gorm:"foreignKey:BorrowerID" json:"borrower,omitempty"`
	Status     LoanStatus `gorm:"size:1;default:'m'" json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// BeforeCreate assigns the copy's UUID unless the caller already set one.
func (i *BookInstance) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.Status == "" {
		i.Status = StatusMaintenance
	}
	return nil
}

func (Genre) TableName() string {
	return "genres"
}

func (Language) TableName() string {
	return "languages"
}

func (Author) TableName() string {
	return "authors"
}

func (Book) TableName() string {
	return "books"
}

func (BookInstance) TableName() string {
	return "book_instances"
}

// DisplayLabel returns the admin display string for a genre.
func (g Genre) DisplayLabel() string {
	return g.Name
}

// DisplayLabel returns the admin display string for a language.
func (l Language) DisplayLabel() string {
	return l.Name
}

// DisplayLabel returns the admin display string, "last name, first name".
func (a Author) DisplayLabel() string {
	return fmt.Sprintf("%s, %s", a.LastName, a.FirstName)
}

// AbsoluteURL returns the canonical detail path for this author.
func (a Author) AbsoluteURL() string {
	return fmt.Sprintf("/catalog/authors/%d", a.ID)
}

// DisplayLabel returns the admin display string for a book.
func (b Book) DisplayLabel() string {
	return b.Title
}

// AbsoluteURL returns the canonical detail path for this book.
func (b Book) AbsoluteURL() string {
	return fmt.Sprintf("/catalog/books/%d", b.ID)
}

// DisplayGenre joins the names of up to the first three loaded genres.
// The order is whatever order Genres was loaded in; repositories preload
// the relation ordered by join-row id, i.e. insertion order.
func (b Book) DisplayGenre() string {
	names := make([]string, 0, 3)
	for _, genre := range b.Genres {
		if len(names) == 3 {
			break
		}
		names = append(names, genre.Name)
	}
	return strings.Join(names, ", ")
}

// DisplayLabel returns "id (book title)". The book title is empty when
// the relation was not preloaded.
func (i BookInstance) DisplayLabel() string {
	title := ""
	if i.Book != nil {
		title = i.Book.Title
	}
	return fmt.Sprintf("%s (%s)", i.ID, title)
}

// IsOverdue reports whether the copy's due date has passed. It compares
// at date precision: true only when due_back is strictly before the
// current date. A copy with no due date is never overdue.
func (i BookInstance) IsOverdue(now time.Time) bool {
	if i.DueBack == nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return i.DueBack.Before(today)
}
