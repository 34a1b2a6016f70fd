package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/database/authors"
	"github.com/mrlokans/locallibrary/internal/database/books"
	"github.com/mrlokans/locallibrary/internal/database/instances"
	"github.com/mrlokans/locallibrary/internal/http"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// Lookup table stores implemented directly on the Database struct
var _ http.GenreStore = (*database.Database)(nil)
var _ http.LanguageStore = (*database.Database)(nil)
var _ http.UserStore = (*database.Database)(nil)

// Catalog repositories
var _ http.AuthorStore = (*authors.Repository)(nil)
var _ http.BookStore = (*books.Repository)(nil)
var _ http.InstanceStore = (*instances.Repository)(nil)
