package outbox

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
)

func newRepo(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	db := dbmetrics.Wrap(sqlDB, nil)
	return NewRepository(db), db, mock
}

func TestAdd(t *testing.T) {
	repo, _, mock := newRepo(t)
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO outbox_events .* RETURNING id`).
		WithArgs("evt-1", "booking", "42", "booking.created", []byte(`{}`), now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	e := &domain.OutboxEvent{
		EventID: "evt-1", AggregateType: domain.AggregateBooking, AggregateID: "42",
		EventType: domain.EventBookingCreated, Payload: []byte(`{}`), CreatedAt: now,
	}
	require.NoError(t, repo.Add(context.Background(), e))
	assert.Equal(t, int64(7), e.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchAndMarkPublished_InTransaction(t *testing.T) {
	repo, db, mock := newRepo(t)
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	txCtx := dbmetrics.WithTx(ctx, tx)

	mock.ExpectQuery(`FROM outbox_events WHERE published_at IS NULL ORDER BY id LIMIT 10 FOR UPDATE SKIP LOCKED`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "aggregate_type", "aggregate_id", "event_type", "payload", "created_at"}).
			AddRow(int64(1), "evt-1", "booking", "42", "booking.created", []byte(`{"a":1}`), now).
			AddRow(int64(2), "evt-2", "booking", "43", "booking.created", []byte(`{"a":2}`), now))

	events, err := repo.FetchUnpublished(txCtx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "evt-2", events[1].EventID)

	mock.ExpectExec(`UPDATE outbox_events SET published_at = now\(\) WHERE id = ANY\(\$1\)`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.MarkPublished(txCtx, events))

	mock.ExpectCommit()
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkPublished_Empty(t *testing.T) {
	repo, _, mock := newRepo(t)
	require.NoError(t, repo.MarkPublished(context.Background(), nil))
	require.NoError(t, mock.ExpectationsWereMet())
}
