package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllReturnsEveryEntity(t *testing.T) {
	all := All()
	require.Len(t, all, 6)

	keys := make([]string, 0, len(all))
	for _, cfg := range all {
		keys = append(keys, cfg.Entity)
	}
	assert.Equal(t, []string{
		EntityGenre, EntityLanguage, EntityAuthor,
		EntityBook, EntityBookInstance, EntityUser,
	}, keys)
}

func TestAllReturnsACopy(t *testing.T) {
	first := All()
	first[0].Label = "tampered"

	again := All()
	assert.Equal(t, "Genre", again[0].Label)
}

func TestGet(t *testing.T) {
	book, ok := Get(EntityBook)
	require.True(t, ok)
	assert.Equal(t, []string{"title", "author", "display_genre"}, book.ListDisplay)
	assert.Equal(t, []string{EntityBookInstance}, book.Inlines)

	_, ok = Get("publisher")
	assert.False(t, ok)
}

func TestAuthorConfiguration(t *testing.T) {
	author, ok := Get(EntityAuthor)
	require.True(t, ok)

	assert.Equal(t, []string{"last_name", "first_name", "date_of_birth", "date_of_death"}, author.ListDisplay)
	require.Len(t, author.Fieldsets, 2)
	assert.Equal(t, []string{"first_name", "last_name"}, author.Fieldsets[0].Fields)
	assert.Equal(t, []string{"date_of_birth", "date_of_death"}, author.Fieldsets[1].Fields)
	assert.Equal(t, []string{EntityBook}, author.Inlines)
}

func TestBookInstanceConfiguration(t *testing.T) {
	instance, ok := Get(EntityBookInstance)
	require.True(t, ok)

	assert.Equal(t, []string{"book", "status", "borrower", "due_back", "id"}, instance.ListDisplay)

	require.Len(t, instance.Fieldsets, 2)
	assert.Empty(t, instance.Fieldsets[0].Name)
	assert.Equal(t, "Availability", instance.Fieldsets[1].Name)
	assert.Equal(t, []string{"status", "due_back", "borrower"}, instance.Fieldsets[1].Fields)

	require.Len(t, instance.Permissions, 1)
	assert.Equal(t, PermCanMarkReturned, instance.Permissions[0].Codename)
}

func TestHasFilter(t *testing.T) {
	assert.True(t, HasFilter(EntityBookInstance, "status"))
	assert.True(t, HasFilter(EntityBookInstance, "due_back"))
	assert.False(t, HasFilter(EntityBookInstance, "imprint"))
	assert.False(t, HasFilter(EntityBook, "status"))
	assert.False(t, HasFilter("publisher", "status"))
}
