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

// GenresController serves admin CRUD for genres.
type GenresController struct {
	store        GenreStore
	auditService *audit.Service
}

func NewGenresController(store GenreStore, auditService *audit.Service) *GenresController {
	return &GenresController{store: store, auditService: auditService}
}

type genreRequest struct {
	Name string `json:"name" binding:"required"`
}

// List returns all genres shaped by the admin registry.
// GET /admin/genres
func (ctrl *GenresController) List(c *gin.Context) {
	genres, err := ctrl.store.GetAllGenres()
	if err != nil {
		respondInternalError(c, err, "list genres")
		return
	}

	cfg, _ := admin.Get(admin.EntityGenre)
	rows := make([]gin.H, 0, len(genres))
	for _, genre := range genres {
		rows = append(rows, gin.H{
			"id":   genre.ID,
			"name": genre.Name,
		})
	}
	c.JSON(http.StatusOK, ListResponse{Columns: cfg.ListDisplay, Count: len(rows), Results: rows})
}

// Get returns one genre.
// GET /admin/genres/:id
func (ctrl *GenresController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	genre, err := ctrl.store.GetGenreByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "genre")
			return
		}
		respondInternalError(c, err, "get genre")
		return
	}
	c.JSON(http.StatusOK, genre)
}

// Create adds a genre.
// POST /admin/genres
func (ctrl *GenresController) Create(c *gin.Context) {
	var req genreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	genre, err := ctrl.store.CreateGenre(req.Name)
	if err != nil {
		respondInternalError(c, err, "create genre")
		return
	}

	ctrl.logChange(c, genre, entities.AuditActionCreate)
	respondCreated(c, genre)
}

// Update renames a genre.
// PUT /admin/genres/:id
func (ctrl *GenresController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req genreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	genre, err := ctrl.store.GetGenreByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "genre")
			return
		}
		respondInternalError(c, err, "get genre")
		return
	}

	genre.Name = req.Name
	if err := ctrl.store.UpdateGenre(genre); err != nil {
		respondInternalError(c, err, "update genre")
		return
	}

	ctrl.logChange(c, genre, entities.AuditActionUpdate)
	c.JSON(http.StatusOK, genre)
}

// Delete removes a genre. Books keep existing; only the association
// rows go away with it.
// DELETE /admin/genres/:id
func (ctrl *GenresController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	genre, err := ctrl.store.GetGenreByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "genre")
			return
		}
		respondInternalError(c, err, "get genre")
		return
	}

	if err := ctrl.store.DeleteGenre(id); err != nil {
		respondInternalError(c, err, "delete genre")
		return
	}

	ctrl.logChange(c, genre, entities.AuditActionDelete)
	respondSuccess(c, "genre deleted")
}

func (ctrl *GenresController) logChange(c *gin.Context, genre *entities.Genre, action entities.AuditAction) {
	if ctrl.auditService == nil {
		return
	}
	ctrl.auditService.LogChange(GetUserID(c), admin.EntityGenre,
		strconv.FormatUint(uint64(genre.ID), 10), genre.DisplayLabel(), action, nil)
}
