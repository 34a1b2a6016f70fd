// Package admin holds the static configuration for the administrative
// interface: which entities are manageable, which fields their list
// views show, which filters apply, how edit forms group fields, and
// which child entities are editable inline.
//
// The registry is plain data built once at startup. The HTTP layer
// reads it to shape list responses and validate filter parameters, and
// serves it verbatim at GET /admin/config so clients can render forms
// without hardcoding the schema.
package admin

// FieldGroup is a named section of fields on an edit form. The name is
// empty for the default, unnamed section.
type FieldGroup struct {
	Name   string   `json:"name,omitempty"`
	Fields []string `json:"fields"`
}

// Permission is a named permission beyond the generic edit rights.
type Permission struct {
	Codename string `json:"codename"`
	Name     string `json:"name"`
}

// ModelAdmin describes how one entity is presented and edited in the
// admin interface.
type ModelAdmin struct {
	Entity      string       `json:"entity"`
	Label       string       `json:"label"`
	LabelPlural string       `json:"label_plural"`
	ListDisplay []string     `json:"list_display"`
	ListFilter  []string     `json:"list_filter,omitempty"`
	Fieldsets   []FieldGroup `json:"fieldsets,omitempty"`
	Inlines     []string     `json:"inlines,omitempty"`
	Ordering    []string     `json:"ordering,omitempty"`
	Permissions []Permission `json:"permissions,omitempty"`
}

// Entity keys used in the registry and in admin log entries.
const (
	EntityGenre        = "genre"
	EntityLanguage     = "language"
	EntityAuthor       = "author"
	EntityBook         = "book"
	EntityBookInstance = "bookinstance"
	EntityUser         = "user"
)

// PermCanMarkReturned gates marking a borrowed copy as returned. It is
// deliberately distinct from generic edit permission so that desk staff
// can be granted just this action.
const PermCanMarkReturned = "can_mark_returned"

// registry is the single source of truth for admin presentation. Order
// matters: All() returns entries in this order.
var registry = []ModelAdmin{
	{
		Entity:      EntityGenre,
		Label:       "Genre",
		LabelPlural: "Genres",
		ListDisplay: []string{"name"},
		Ordering:    []string{"name"},
	},
	{
		Entity:      EntityLanguage,
		Label:       "Language",
		LabelPlural: "Languages",
		ListDisplay: []string{"name"},
		Ordering:    []string{"name"},
	},
	{
		Entity:      EntityAuthor,
		Label:       "Author",
		LabelPlural: "Authors",
		ListDisplay: []string{"last_name", "first_name", "date_of_birth", "date_of_death"},
		Fieldsets: []FieldGroup{
			{Fields: []string{"first_name", "last_name"}},
			{Fields: []string{"date_of_birth", "date_of_death"}},
		},
		Inlines:  []string{EntityBook},
		Ordering: []string{"last_name", "first_name"},
	},
	{
		Entity:      EntityBook,
		Label:       "Book",
		LabelPlural: "Books",
		ListDisplay: []string{"title", "author", "display_genre"},
		Fieldsets: []FieldGroup{
			{Fields: []string{"title", "author", "summary", "isbn", "genre", "language"}},
		},
		Inlines:  []string{EntityBookInstance},
		Ordering: []string{"title", "author"},
	},
	{
		Entity:      EntityBookInstance,
		Label:       "Book instance",
		LabelPlural: "Book instances",
		ListDisplay: []string{"book", "status", "borrower", "due_back", "id"},
		ListFilter:  []string{"status", "due_back"},
		Fieldsets: []FieldGroup{
			{Fields: []string{"book", "imprint", "id"}},
			{Name: "Availability", Fields: []string{"status", "due_back", "borrower"}},
		},
		Ordering: []string{"due_back"},
		Permissions: []Permission{
			{Codename: PermCanMarkReturned, Name: "Set book as returned"},
		},
	},
	{
		Entity:      EntityUser,
		Label:       "User",
		LabelPlural: "Users",
		ListDisplay: []string{"username", "email", "role"},
		Ordering:    []string{"username"},
	},
}

// index is built once from registry for key lookups.
var index = func() map[string]ModelAdmin {
	m := make(map[string]ModelAdmin, len(registry))
	for _, cfg := range registry {
		m[cfg.Entity] = cfg
	}
	return m
}()

// All returns every registered model configuration in registration order.
func All() []ModelAdmin {
	out := make([]ModelAdmin, len(registry))
	copy(out, registry)
	return out
}

// Get returns the configuration for an entity key.
func Get(entity string) (ModelAdmin, bool) {
	cfg, ok := index[entity]
	return cfg, ok
}

// HasFilter reports whether an entity's list view accepts a filter field.
func HasFilter(entity, field string) bool {
	cfg, ok := index[entity]
	if !ok {
		return false
	}
	for _, f := range cfg.ListFilter {
		if f == field {
			return true
		}
	}
	return false
}
