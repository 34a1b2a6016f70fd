// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - GenreStore, LanguageStore, UserStore: lookup tables served directly
//     by the Database struct (internal/http/stores.go)
//   - AuthorStore, BookStore, InstanceStore: catalog repositories with
//     relation handling (internal/http/stores.go)
//
// # Adding a New Catalog Entity
//
// To add a new data domain (e.g., publishers):
//
//  1. Define the entity in internal/entities/ with its gorm tags and add
//     it to AutoMigrate in internal/database/database.go
//
//  2. Create a sub-package internal/database/publishers/ with a repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Declare the store interface next to the others in
//     internal/http/stores.go and write a controller for it
//
//  4. Describe the entity in the admin registry (internal/admin) so
//     clients can render its list columns and forms
//
//  5. Register the routes in internal/http/router.go
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
