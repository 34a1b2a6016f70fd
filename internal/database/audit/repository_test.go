package audit

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/entities"
)

func setupTestRepo(t *testing.T) (*Repository, func()) {
	t.Helper()

	dbPath := "./test_audit_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return NewRepository(db.DB), cleanup
}

func TestLogEntryAndGetRecent(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	for _, label := range []string{"first", "second", "third"} {
		require.NoError(t, repo.LogEntry(&entities.AuditEntry{
			ActorID:    1,
			EntityType: "genre",
			EntityID:   "1",
			Label:      label,
			Action:     entities.AuditActionUpdate,
		}))
	}

	entries, err := repo.GetRecent(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "third", entries[0].Label)
	assert.Equal(t, "second", entries[1].Label)
}

func TestGetRecentDefaultsTheLimit(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	entries, err := repo.GetRecent(0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGetByEntity(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	require.NoError(t, repo.LogEntry(&entities.AuditEntry{
		EntityType: "book", EntityID: "7", Label: "Emma", Action: entities.AuditActionCreate,
	}))
	require.NoError(t, repo.LogEntry(&entities.AuditEntry{
		EntityType: "book", EntityID: "7", Label: "Emma", Action: entities.AuditActionDelete,
	}))
	require.NoError(t, repo.LogEntry(&entities.AuditEntry{
		EntityType: "book", EntityID: "8", Label: "Persuasion", Action: entities.AuditActionCreate,
	}))

	entries, err := repo.GetByEntity("book", "7")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, entities.AuditActionDelete, entries[0].Action)
}
