package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/admin"
	"github.com/mrlokans/locallibrary/internal/audit"
)

// AdminConfigController serves the static admin registry and the admin
// action log.
type AdminConfigController struct {
	auditService *audit.Service
}

func NewAdminConfigController(auditService *audit.Service) *AdminConfigController {
	return &AdminConfigController{auditService: auditService}
}

// Config returns the full admin registry: one entry per manageable
// entity with its list columns, filters, fieldsets, inlines and extra
// permissions. Clients render forms from this instead of hardcoding
// the schema.
// GET /admin/config
func (ctrl *AdminConfigController) Config(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"models": admin.All()})
}

// Log returns the most recent admin actions, newest first.
// GET /admin/log?limit=50
func (ctrl *AdminConfigController) Log(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondBadRequest(c, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	entries, err := ctrl.auditService.GetRecent(limit)
	if err != nil {
		respondInternalError(c, err, "read admin log")
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}
