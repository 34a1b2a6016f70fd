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

// LanguagesController serves admin CRUD for languages.
type LanguagesController struct {
	store        LanguageStore
	auditService *audit.Service
}

func NewLanguagesController(store LanguageStore, auditService *audit.Service) *LanguagesController {
	return &LanguagesController{store: store, auditService: auditService}
}

type languageRequest struct {
	Name string `json:"name" binding:"required"`
}

// List returns all languages shaped by the admin registry.
// GET /admin/languages
func (ctrl *LanguagesController) List(c *gin.Context) {
	languages, err := ctrl.store.GetAllLanguages()
	if err != nil {
		respondInternalError(c, err, "list languages")
		return
	}

	cfg, _ := admin.Get(admin.EntityLanguage)
	rows := make([]gin.H, 0, len(languages))
	for _, language := range languages {
		rows = append(rows, gin.H{
			"id":   language.ID,
			"name": language.Name,
		})
	}
	c.JSON(http.StatusOK, ListResponse{Columns: cfg.ListDisplay, Count: len(rows), Results: rows})
}

// Get returns one language.
// GET /admin/languages/:id
func (ctrl *LanguagesController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	language, err := ctrl.store.GetLanguageByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "language")
			return
		}
		respondInternalError(c, err, "get language")
		return
	}
	c.JSON(http.StatusOK, language)
}

// Create adds a language.
// POST /admin/languages
func (ctrl *LanguagesController) Create(c *gin.Context) {
	var req languageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	language, err := ctrl.store.CreateLanguage(req.Name)
	if err != nil {
		respondInternalError(c, err, "create language")
		return
	}

	ctrl.logChange(c, language, entities.AuditActionCreate)
	respondCreated(c, language)
}

// Update renames a language.
// PUT /admin/languages/:id
func (ctrl *LanguagesController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req languageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	language, err := ctrl.store.GetLanguageByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "language")
			return
		}
		respondInternalError(c, err, "get language")
		return
	}

	language.Name = req.Name
	if err := ctrl.store.UpdateLanguage(language); err != nil {
		respondInternalError(c, err, "update language")
		return
	}

	ctrl.logChange(c, language, entities.AuditActionUpdate)
	c.JSON(http.StatusOK, language)
}

// Delete removes a language. Books that referenced it keep existing
// with the language cleared.
// DELETE /admin/languages/:id
func (ctrl *LanguagesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	language, err := ctrl.store.GetLanguageByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "language")
			return
		}
		respondInternalError(c, err, "get language")
		return
	}

	if err := ctrl.store.DeleteLanguage(id); err != nil {
		respondInternalError(c, err, "delete language")
		return
	}

	ctrl.logChange(c, language, entities.AuditActionDelete)
	respondSuccess(c, "language deleted")
}

func (ctrl *LanguagesController) logChange(c *gin.Context, language *entities.Language, action entities.AuditAction) {
	if ctrl.auditService == nil {
		return
	}
	ctrl.auditService.LogChange(GetUserID(c), admin.EntityLanguage,
		strconv.FormatUint(uint64(language.ID), 10), language.DisplayLabel(), action, nil)
}
