package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/admin"
	"github.com/mrlokans/locallibrary/internal/audit"
	"github.com/mrlokans/locallibrary/internal/database/books"
	"github.com/mrlokans/locallibrary/internal/entities"
)

// BooksController serves admin CRUD for books.
type BooksController struct {
	store        BookStore
	auditService *audit.Service
}

func NewBooksController(store BookStore, auditService *audit.Service) *BooksController {
	return &BooksController{store: store, auditService: auditService}
}

type bookRequest struct {
	Title      string `json:"title" binding:"required"`
	AuthorID   *uint  `json:"author_id"`
	Summary    string `json:"summary"`
	ISBN       string `json:"isbn" binding:"required,len=13"`
	GenreIDs   []uint `json:"genre_ids"`
	LanguageID *uint  `json:"language_id"`
}

func (req *bookRequest) apply(book *entities.Book) {
	book.Title = req.Title
	book.AuthorID = req.AuthorID
	book.Summary = req.Summary
	book.ISBN = req.ISBN
	book.LanguageID = req.LanguageID
	book.Genres = make([]entities.Genre, 0, len(req.GenreIDs))
	for _, id := range req.GenreIDs {
		book.Genres = append(book.Genres, entities.Genre{ID: id})
	}
}

// List returns all books ordered by title, then author, shaped by the
// admin registry (title, author label, display_genre).
// GET /admin/books
func (ctrl *BooksController) List(c *gin.Context) {
	all, err := ctrl.store.GetAll()
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}

	cfg, _ := admin.Get(admin.EntityBook)
	rows := make([]gin.H, 0, len(all))
	for _, book := range all {
		authorLabel := ""
		if book.Author != nil {
			authorLabel = book.Author.DisplayLabel()
		}
		rows = append(rows, gin.H{
			"id":            book.ID,
			"title":         book.Title,
			"author":        authorLabel,
			"display_genre": book.DisplayGenre(),
			"url":           book.AbsoluteURL(),
		})
	}
	c.JSON(http.StatusOK, ListResponse{Columns: cfg.ListDisplay, Count: len(rows), Results: rows})
}

// Get returns one book with author, language, genres and copies. The
// copies mirror the inline instance editing on the book's admin page.
// GET /admin/books/:id
func (ctrl *BooksController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := ctrl.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"book":          book,
		"display_label": book.DisplayLabel(),
		"display_genre": book.DisplayGenre(),
		"url":           book.AbsoluteURL(),
	})
}

// Create adds a book. A duplicate ISBN is a validation error.
// POST /admin/books
func (ctrl *BooksController) Create(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title and a 13-character isbn are required")
		return
	}

	var book entities.Book
	req.apply(&book)

	if err := ctrl.store.Create(&book); err != nil {
		if errors.Is(err, books.ErrDuplicateISBN) {
			respondConflict(c, err.Error())
			return
		}
		respondInternalError(c, err, "create book")
		return
	}

	ctrl.logChange(c, &book, entities.AuditActionCreate)

	created, err := ctrl.store.GetByID(book.ID)
	if err != nil {
		respondCreated(c, book)
		return
	}
	respondCreated(c, created)
}

// Update saves changes to a book, replacing its genre set.
// PUT /admin/books/:id
func (ctrl *BooksController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title and a 13-character isbn are required")
		return
	}

	book, err := ctrl.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}

	req.apply(book)
	book.Instances = nil

	if err := ctrl.store.Update(book); err != nil {
		if errors.Is(err, books.ErrDuplicateISBN) {
			respondConflict(c, err.Error())
			return
		}
		respondInternalError(c, err, "update book")
		return
	}

	ctrl.logChange(c, book, entities.AuditActionUpdate)

	updated, err := ctrl.store.GetByID(id)
	if err != nil {
		c.JSON(http.StatusOK, book)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes a book. The delete is rejected while loanable copies
// of the book exist.
// DELETE /admin/books/:id
func (ctrl *BooksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := ctrl.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}

	if err := ctrl.store.Delete(id); err != nil {
		if errors.Is(err, books.ErrBookHasInstances) {
			respondConflict(c, err.Error())
			return
		}
		respondInternalError(c, err, "delete book")
		return
	}

	ctrl.logChange(c, book, entities.AuditActionDelete)
	respondSuccess(c, "book deleted")
}

func (ctrl *BooksController) logChange(c *gin.Context, book *entities.Book, action entities.AuditAction) {
	if ctrl.auditService == nil {
		return
	}
	ctrl.auditService.LogChange(GetUserID(c), admin.EntityBook,
		strconv.FormatUint(uint64(book.ID), 10), book.DisplayLabel(), action, nil)
}
