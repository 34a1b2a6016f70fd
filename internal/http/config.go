package http

import (
	"github.com/mrlokans/locallibrary/internal/audit"
	"github.com/mrlokans/locallibrary/internal/auth"
	"github.com/mrlokans/locallibrary/internal/config"
	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/demo"
)

// RouterConfig carries every dependency the router needs. A single
// config struct keeps NewRouter's signature stable as wiring grows.
type RouterConfig struct {
	// Database is used for health checks and the simple lookup stores
	// (genres, languages, users).
	Database *database.Database

	// Stores for the catalog entities.
	AuthorStore   AuthorStore
	BookStore     BookStore
	InstanceStore InstanceStore

	// AuditService records admin actions; nil disables logging.
	AuditService *audit.Service

	// Auth wiring. AuthService is always set; the middleware and
	// session manager are nil when auth mode is "none".
	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware
	SessionManager *auth.SessionManager
	AuthConfig     config.Auth
	CSRFSecret     []byte
	SecureCookies  bool

	// DemoMiddleware blocks writes in demo mode; nil outside demos.
	DemoMiddleware *demo.Middleware

	Version string
}
