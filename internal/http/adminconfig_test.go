package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/locallibrary/internal/admin"
	"github.com/mrlokans/locallibrary/internal/audit"
	"github.com/mrlokans/locallibrary/internal/database"
	auditrepo "github.com/mrlokans/locallibrary/internal/database/audit"
	"github.com/mrlokans/locallibrary/internal/entities"
)

func setupAdminConfigTest(t *testing.T) (*AdminConfigController, *audit.Service, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_adminconfig_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	service := audit.NewService(auditrepo.NewRepository(db.DB))
	controller := NewAdminConfigController(service)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return controller, service, cleanup
}

func TestAdminConfigController_Config(t *testing.T) {
	controller, _, cleanup := setupAdminConfigTest(t)
	defer cleanup()

	router := gin.New()
	router.GET("/admin/config", controller.Config)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/config", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Models []admin.ModelAdmin `json:"models"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Models, 6)
	assert.Equal(t, admin.EntityGenre, resp.Models[0].Entity)
	assert.Equal(t, admin.EntityBookInstance, resp.Models[4].Entity)
}

func TestAdminConfigController_Log(t *testing.T) {
	controller, service, cleanup := setupAdminConfigTest(t)
	defer cleanup()

	require.NoError(t, service.Log(&entities.AuditEntry{
		ActorID:    1,
		EntityType: admin.EntityGenre,
		EntityID:   "3",
		Label:      "Gothic",
		Action:     entities.AuditActionCreate,
	}))

	router := gin.New()
	router.GET("/admin/log", controller.Log)

	t.Run("returns recorded entries", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/admin/log", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Count   int                   `json:"count"`
			Entries []entities.AuditEntry `json:"entries"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, "Gothic", resp.Entries[0].Label)
		assert.Equal(t, entities.AuditActionCreate, resp.Entries[0].Action)
	})

	t.Run("400 for a non-positive limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/admin/log?limit=0", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
