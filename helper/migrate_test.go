package helper

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Bookings and reviews are immutable history: deleting a room must succeed
// even when past stays still reference its id, so their room_id/user_id
// columns may never carry a foreign key back to rooms or users.
func TestHistoryTablesCarryNoRoomOrUserForeignKeys(t *testing.T) {
	referencesRooms := regexp.MustCompile(`(?i)REFERENCES\s+rooms`)
	referencesUsers := regexp.MustCompile(`(?i)REFERENCES\s+users`)

	for _, file := range []string{
		"000004_create_bookings_table.up.sql",
		"000005_create_reviews_table.up.sql",
	} {
		t.Run(file, func(t *testing.T) {
			ddl, err := os.ReadFile(filepath.Join("..", "migrations", "postgres", file))
			require.NoError(t, err)

			assert.False(t, referencesRooms.Match(ddl), "history table must not reference rooms")
			assert.False(t, referencesUsers.Match(ddl), "history table must not reference users")
		})
	}
}
