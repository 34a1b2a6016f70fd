// Package database provides the data access layer for the catalog.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, genre/language/user operations
//	├── authors/         # Author CRUD, set-null on delete for owned books
//	├── books/           # Book CRUD, ISBN uniqueness, restrict-on-delete
//	├── instances/       # Book copy CRUD, status/due-date filters, mark-returned
//	└── audit/           # Admin action log
//
// # Referential actions
//
// The relational semantics between entities are enforced here, inside the
// same transaction as the delete, rather than through database triggers:
//
//   - deleting an Author or Language clears the reference on dependent books
//   - deleting a User clears the borrower reference on its loans
//   - deleting a Book is rejected while copies of it exist
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.NewDatabase("./locallibrary.db")
//
//	booksRepo := books.NewRepository(db.DB)
//	instancesRepo := instances.NewRepository(db.DB)
//
//	book, err := booksRepo.GetByID(123)
//	overdue, err := instancesRepo.GetOverdue(time.Now())
//
// Simple lookup entities (genres, languages, users) are served by methods on
// the Database struct itself.
package database
