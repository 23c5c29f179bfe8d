//go:build unit

package repository

import (
	"testing"
	"time"

	"lendshare/internal/domain/booking"

	"github.com/Masterminds/squirrel"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterPredicate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	toSQL := func(t *testing.T, pred squirrel.Sqlizer) (string, []any) {
		t.Helper()
		sql, args, err := pred.ToSql()
		require.NoError(t, err)
		return sql, args
	}

	t.Run("ALL has no predicate", func(t *testing.T) {
		assert.Nil(t, filterPredicate(booking.FilterAll, now))
	})

	t.Run("CURRENT straddles now on both axes", func(t *testing.T) {
		sql, args := toSQL(t, filterPredicate(booking.FilterCurrent, now))

		assert.Equal(t, "(b.start_date < ? AND b.end_date > ?)", sql)
		if diff := cmp.Diff([]any{now, now}, args); diff != "" {
			t.Errorf("args mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("PAST compares end only", func(t *testing.T) {
		sql, args := toSQL(t, filterPredicate(booking.FilterPast, now))

		assert.Equal(t, "b.end_date < ?", sql)
		if diff := cmp.Diff([]any{now}, args); diff != "" {
			t.Errorf("args mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("FUTURE compares start only", func(t *testing.T) {
		sql, args := toSQL(t, filterPredicate(booking.FilterFuture, now))

		assert.Equal(t, "b.start_date > ?", sql)
		if diff := cmp.Diff([]any{now}, args); diff != "" {
			t.Errorf("args mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("WAITING and REJECTED are status equality", func(t *testing.T) {
		sql, args := toSQL(t, filterPredicate(booking.FilterWaiting, now))
		assert.Equal(t, "b.status = ?", sql)
		assert.Equal(t, []any{"WAITING"}, args)

		sql, args = toSQL(t, filterPredicate(booking.FilterRejected, now))
		assert.Equal(t, "b.status = ?", sql)
		assert.Equal(t, []any{"REJECTED"}, args)
	})
}

func TestBookingListQueryShape(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	q := bookingSelect()
	if pred := filterPredicate(booking.FilterPast, now); pred != nil {
		q = q.Where(pred)
	}
	q = q.OrderBy("b.start_date DESC", "b.id ASC").Offset(2).Limit(3)

	sql, args, err := q.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "JOIN users u ON b.booker_id = u.id")
	assert.Contains(t, sql, "JOIN items i ON b.item_id = i.id")
	assert.Contains(t, sql, "ORDER BY b.start_date DESC, b.id ASC")
	assert.Contains(t, sql, "LIMIT 3")
	assert.Contains(t, sql, "OFFSET 2")
	assert.Equal(t, []any{now}, args)
}
