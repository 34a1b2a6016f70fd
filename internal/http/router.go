package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/admin"
	"github.com/mrlokans/locallibrary/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	// Apply CSRF protection if auth is enabled
	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	// Apply session middleware if enabled
	// Session runs after CSRF so session context isn't overwritten by CSRF's request replacement
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	// Apply auth middleware if enabled
	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	} else {
		// No auth - inject default user with full rights
		router.Use(func(c *gin.Context) {
			c.Set(auth.ContextKeyUserID, auth.DefaultUserID)
			c.Next()
		})
	}

	// Apply demo mode middleware if enabled
	if cfg.DemoMiddleware != nil && cfg.DemoMiddleware.IsEnabled() {
		router.Use(cfg.DemoMiddleware.Handler())
	}

	// Register auth routes if auth service is available
	if cfg.AuthService != nil && cfg.AuthService.IsAuthEnabled() {
		authController := auth.NewController(cfg.AuthService, cfg.SessionManager)
		authController.RegisterRoutes(router)
	}

	healthController := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", healthController.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.String(200, "pong")
	})

	genres := NewGenresController(cfg.Database, cfg.AuditService)
	languages := NewLanguagesController(cfg.Database, cfg.AuditService)
	authors := NewAuthorsController(cfg.AuthorStore, cfg.AuditService)
	books := NewBooksController(cfg.BookStore, cfg.AuditService)
	bookInstances := NewInstancesController(cfg.InstanceStore, cfg.AuditService)
	users := NewUsersController(cfg.Database, cfg.AuthService, cfg.AuditService)
	adminConfig := NewAdminConfigController(cfg.AuditService)
	catalog := NewCatalogController(cfg.BookStore, cfg.AuthorStore)

	// Public detail pages. The canonical urls in list and detail
	// payloads resolve here.
	router.GET("/catalog/books/:id", catalog.BookDetail)
	router.GET("/catalog/authors/:id", catalog.AuthorDetail)

	// Admin interface. Reads require a logged-in account, writes
	// additionally require edit rights.
	adminGroup := router.Group("/admin")
	adminGroup.GET("/config", adminConfig.Config)
	adminGroup.GET("/log", adminConfig.Log)

	registerCRUD(adminGroup, cfg.AuthMiddleware, "/genres", crudHandlers{
		list: genres.List, get: genres.Get, create: genres.Create,
		update: genres.Update, delete: genres.Delete,
	})
	registerCRUD(adminGroup, cfg.AuthMiddleware, "/languages", crudHandlers{
		list: languages.List, get: languages.Get, create: languages.Create,
		update: languages.Update, delete: languages.Delete,
	})
	registerCRUD(adminGroup, cfg.AuthMiddleware, "/authors", crudHandlers{
		list: authors.List, get: authors.Get, create: authors.Create,
		update: authors.Update, delete: authors.Delete,
	})
	registerCRUD(adminGroup, cfg.AuthMiddleware, "/books", crudHandlers{
		list: books.List, get: books.Get, create: books.Create,
		update: books.Update, delete: books.Delete,
	})
	registerCRUD(adminGroup, cfg.AuthMiddleware, "/instances", crudHandlers{
		list: bookInstances.List, get: bookInstances.Get, create: bookInstances.Create,
		update: bookInstances.Update, delete: bookInstances.Delete,
	})
	adminGroup.GET("/instances/overdue", bookInstances.Overdue)

	// Marking a copy as returned is gated by its own permission rather
	// than generic edit rights.
	adminGroup.POST("/instances/:id/return",
		requirePermission(cfg.AuthMiddleware, admin.PermCanMarkReturned),
		bookInstances.MarkReturned)

	// Account management is admin-only.
	userGroup := adminGroup.Group("/users")
	if cfg.AuthMiddleware != nil {
		userGroup.Use(cfg.AuthMiddleware.RequireAdmin())
	}
	userGroup.GET("", users.List)
	userGroup.GET("/:id", users.Get)
	userGroup.POST("", users.Create)
	userGroup.DELETE("/:id", users.Delete)

	return router
}

type crudHandlers struct {
	list   gin.HandlerFunc
	get    gin.HandlerFunc
	create gin.HandlerFunc
	update gin.HandlerFunc
	delete gin.HandlerFunc
}

// registerCRUD wires the standard five routes for an admin entity,
// with edit rights required on the mutating three.
func registerCRUD(group *gin.RouterGroup, mw *auth.Middleware, prefix string, h crudHandlers) {
	group.GET(prefix, h.list)
	group.GET(prefix+"/:id", h.get)

	editor := func(c *gin.Context) { c.Next() }
	if mw != nil {
		editor = mw.RequireEditor()
	}
	group.POST(prefix, editor, h.create)
	group.PUT(prefix+"/:id", editor, h.update)
	group.DELETE(prefix+"/:id", editor, h.delete)
}

func requirePermission(mw *auth.Middleware, codename string) gin.HandlerFunc {
	if mw == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return mw.RequirePermission(codename)
}
