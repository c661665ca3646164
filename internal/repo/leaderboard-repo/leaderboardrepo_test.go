package leaderboardrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/GlebRadaev/elevatex/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var entryColumns = []string{"id", "user_id", "name", "month", "year", "total_earned", "referrals_count", "rank"}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	t.Cleanup(mockDB.Close)

	return repo, mockDB
}

func TestRepository_Aggregate(t *testing.T) {
	repo, mock := NewMock(t)
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	mock.ExpectQuery(regexp.QuoteMeta("WITH earned AS")).
		WithArgs(from, to).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "total", "count"}).
			AddRow(1, "Ada", decimal.NewFromInt(350), 2).
			AddRow(2, "Bola", decimal.Zero, 1))

	entries, err := repo.Aggregate(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].TotalEarned.Equal(decimal.NewFromInt(350)))
	assert.Equal(t, 1, entries[1].ReferralsCount)

	mock.ExpectQuery(regexp.QuoteMeta("WITH earned AS")).
		WithArgs(from, to).
		WillReturnError(errors.New("database error"))
	_, err = repo.Aggregate(context.Background(), from, to)
	assert.Error(t, err)
}

func TestRepository_UpsertAndClear(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE leaderboards SET rank = 0 WHERE month = $1 AND year = $2")).
		WithArgs(5, 2024).
		WillReturnResult(pgxmock.NewResult("UPDATE", 4))
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (user_id, month, year) DO UPDATE")).
		WithArgs(1, 5, 2024, pgxmock.AnyArg(), 2, 1).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.ClearRanks(context.Background(), 5, 2024))
	require.NoError(t, repo.Upsert(context.Background(), &domain.LeaderboardEntry{
		UserID:         1,
		Month:          5,
		Year:           2024,
		TotalEarned:    decimal.NewFromInt(350),
		ReferralsCount: 2,
		Rank:           1,
	}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListTop(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY l.rank ASC")).
		WithArgs(5, 2024, 10).
		WillReturnRows(pgxmock.NewRows(entryColumns).
			AddRow(1, 1, "Ada", 5, 2024, decimal.NewFromInt(350), 2, 1).
			AddRow(2, 2, "Bola", 5, 2024, decimal.NewFromInt(200), 1, 2))

	entries, err := repo.ListTop(context.Background(), 5, 2024, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Ada", entries[0].UserName)
	assert.Equal(t, 2, entries[1].Rank)
}

func TestRepository_FindByUser(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE l.user_id = $1 AND l.month = $2 AND l.year = $3")).
		WithArgs(1, 5, 2024).
		WillReturnRows(pgxmock.NewRows(entryColumns).AddRow(1, 1, "Ada", 5, 2024, decimal.NewFromInt(350), 2, 1))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE l.user_id = $1")).
		WithArgs(2, 5, 2024).
		WillReturnError(pgx.ErrNoRows)

	entry, err := repo.FindByUser(context.Background(), 1, 5, 2024)
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Rank)

	entry, err = repo.FindByUser(context.Background(), 2, 5, 2024)
	require.NoError(t, err)
	assert.Nil(t, entry)
}
