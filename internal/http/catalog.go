package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CatalogController serves the public, read-only detail pages that the
// entities' canonical urls point at.
type CatalogController struct {
	books   BookStore
	authors AuthorStore
	now     func() time.Time
}

func NewCatalogController(books BookStore, authors AuthorStore) *CatalogController {
	return &CatalogController{books: books, authors: authors, now: time.Now}
}

// BookDetail returns a book with its author, genres, language and the
// availability of each copy.
// GET /catalog/books/:id
func (ctrl *CatalogController) BookDetail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := ctrl.books.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}

	copies := make([]gin.H, 0, len(book.Instances))
	for _, instance := range book.Instances {
		copies = append(copies, gin.H{
			"id":           instance.ID,
			"imprint":      instance.Imprint,
			"status":       instance.Status,
			"status_label": instance.Status.Label(),
			"due_back":     instance.DueBack,
			"is_overdue":   instance.IsOverdue(ctrl.now()),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"book":          book,
		"display_label": book.DisplayLabel(),
		"display_genre": book.DisplayGenre(),
		"url":           book.AbsoluteURL(),
		"copies":        copies,
	})
}

// AuthorDetail returns an author and their books.
// GET /catalog/authors/:id
func (ctrl *CatalogController) AuthorDetail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := ctrl.authors.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "author")
			return
		}
		respondInternalError(c, err, "get author")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"author":        author,
		"display_label": author.DisplayLabel(),
		"url":           author.AbsoluteURL(),
	})
}
