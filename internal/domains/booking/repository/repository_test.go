package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merobooking/internal/domains/booking/repository"
)

func TestOverlapFilter(t *testing.T) {
	checkIn := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)

	t.Run("renders room, active statuses and strict bounds", func(t *testing.T) {
		group := repository.OverlapFilter("101", checkIn, checkOut, "")

		where, args := group.GetWhereClause()

		assert.Equal(t,
			"(bookings.room_id = :room_id"+
				" AND bookings.status NOT IN (:status_0, :status_1) "+
				" AND bookings.check_in < :query_check_out"+
				" AND bookings.check_out > :query_check_in)",
			where,
		)

		require.Len(t, args, 5)
		assert.Equal(t, "101", args["room_id"])
		assert.Equal(t, "CANCELLED", args["status_0"])
		assert.Equal(t, "REJECTED", args["status_1"])
		assert.Equal(t, checkOut, args["query_check_out"])
		assert.Equal(t, checkIn, args["query_check_in"])
	})

	t.Run("exclude id appends a not-equal clause", func(t *testing.T) {
		group := repository.OverlapFilter("101", checkIn, checkOut, "BK-AAAAA")

		where, args := group.GetWhereClause()

		assert.True(t, len(where) > 0)
		assert.Contains(t, where, " AND bookings.id != :exclude_id)")
		assert.Equal(t, "BK-AAAAA", args["exclude_id"])

		require.Len(t, args, 6)
	})

	t.Run("touching ranges use strict comparison", func(t *testing.T) {
		// A stay ending exactly when another begins must not be counted as an
		// overlap; the bounds render as < and >, never <= or >=.
		group := repository.OverlapFilter("101", checkIn, checkOut, "")

		where, _ := group.GetWhereClause()

		assert.NotContains(t, where, "<=")
		assert.NotContains(t, where, ">=")
	})
}
