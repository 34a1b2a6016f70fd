package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/admin"
	"github.com/mrlokans/locallibrary/internal/audit"
	"github.com/mrlokans/locallibrary/internal/entities"
)

// AuthorsController serves admin CRUD for authors. The detail view
// includes the author's books, mirroring the inline book editing on the
// author's admin page.
type AuthorsController struct {
	store        AuthorStore
	auditService *audit.Service
}

func NewAuthorsController(store AuthorStore, auditService *audit.Service) *AuthorsController {
	return &AuthorsController{store: store, auditService: auditService}
}

type authorRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	DateOfBirth string `json:"date_of_birth"`
	DateOfDeath string `json:"date_of_death"`
}

func (req *authorRequest) apply(author *entities.Author) error {
	born, err := parseDateField(req.DateOfBirth)
	if err != nil {
		return errors.New("date_of_birth must be a YYYY-MM-DD date")
	}
	died, err := parseDateField(req.DateOfDeath)
	if err != nil {
		return errors.New("date_of_death must be a YYYY-MM-DD date")
	}

	author.FirstName = req.FirstName
	author.LastName = req.LastName
	author.DateOfBirth = born
	author.DateOfDeath = died
	return nil
}

// List returns all authors ordered by last name, then first name.
// GET /admin/authors
func (ctrl *AuthorsController) List(c *gin.Context) {
	authors, err := ctrl.store.GetAll()
	if err != nil {
		respondInternalError(c, err, "list authors")
		return
	}

	cfg, _ := admin.Get(admin.EntityAuthor)
	rows := make([]gin.H, 0, len(authors))
	for _, author := range authors {
		rows = append(rows, gin.H{
			"id":            author.ID,
			"last_name":     author.LastName,
			"first_name":    author.FirstName,
			"date_of_birth": author.DateOfBirth,
			"date_of_death": author.DateOfDeath,
			"url":           author.AbsoluteURL(),
		})
	}
	c.JSON(http.StatusOK, ListResponse{Columns: cfg.ListDisplay, Count: len(rows), Results: rows})
}

// Get returns one author with their books.
// GET /admin/authors/:id
func (ctrl *AuthorsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := ctrl.store.GetByID(id)
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

// Create adds an author.
// POST /admin/authors
func (ctrl *AuthorsController) Create(c *gin.Context) {
	var req authorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "first_name and last_name are required")
		return
	}

	var author entities.Author
	if err := req.apply(&author); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if err := ctrl.store.Create(&author); err != nil {
		respondInternalError(c, err, "create author")
		return
	}

	ctrl.logChange(c, &author, entities.AuditActionCreate)
	respondCreated(c, author)
}

// Update saves changes to an author.
// PUT /admin/authors/:id
func (ctrl *AuthorsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req authorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "first_name and last_name are required")
		return
	}

	author, err := ctrl.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "author")
			return
		}
		respondInternalError(c, err, "get author")
		return
	}

	if err := req.apply(author); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	// Books stay attached through their author_id; only the author's
	// own fields are written here.
	author.Books = nil
	if err := ctrl.store.Update(author); err != nil {
		respondInternalError(c, err, "update author")
		return
	}

	ctrl.logChange(c, author, entities.AuditActionUpdate)
	c.JSON(http.StatusOK, author)
}

// Delete removes an author. Their books stay in the catalog with the
// author reference cleared.
// DELETE /admin/authors/:id
func (ctrl *AuthorsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := ctrl.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "author")
			return
		}
		respondInternalError(c, err, "get author")
		return
	}

	if err := ctrl.store.Delete(id); err != nil {
		respondInternalError(c, err, "delete author")
		return
	}

	ctrl.logChange(c, author, entities.AuditActionDelete)
	respondSuccess(c, "author deleted")
}

func (ctrl *AuthorsController) logChange(c *gin.Context, author *entities.Author, action entities.AuditAction) {
	if ctrl.auditService == nil {
		return
	}
	ctrl.auditService.LogChange(GetUserID(c), admin.EntityAuthor,
		strconv.FormatUint(uint64(author.ID), 10), author.DisplayLabel(), action, nil)
}
