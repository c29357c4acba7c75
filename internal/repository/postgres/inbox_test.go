package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfinley/rostercoach/internal/notify"
)

func newMockInbox(t *testing.T) (*Inbox, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewInbox(sqlx.NewDb(db, "postgres"), time.Second), mock
}

func TestNotifyInsertsAndReturnsID(t *testing.T) {
	inbox, mock := newMockInbox(t)

	mock.ExpectExec("INSERT INTO notifications").
		WithArgs(sqlmock.AnyArg(), notify.CategoryWaivers, "Waiver targets", "1. WR B", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := inbox.Notify(context.Background(), notify.CategoryWaivers, "Waiver targets", "1. WR B", map[string]any{"items": []string{"fa.wr"}})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotifyWrapsFailures(t *testing.T) {
	inbox, mock := newMockInbox(t)

	mock.ExpectExec("INSERT INTO notifications").
		WillReturnError(errors.New("connection reset"))

	id, err := inbox.Notify(context.Background(), notify.CategoryLineup, "Week 3 lineup swaps", "body", nil)
	require.Error(t, err)
	assert.Empty(t, id)

	var notifyErr *notify.Error
	require.True(t, errors.As(err, &notifyErr))
	assert.Equal(t, notify.CategoryLineup, notifyErr.Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUnreadFirst(t *testing.T) {
	inbox, mock := newMockInbox(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "kind", "title", "body", "payload", "is_read", "created_at"}).
		AddRow("n2", "waivers", "Waiver targets", "body2", []byte(`{}`), false, now).
		AddRow("n1", "lineup", "Week 3 lineup swaps", "body1", []byte(`{}`), true, now.Add(-time.Hour))
	mock.ExpectQuery("SELECT id, kind, title, body, payload, is_read, created_at").
		WillReturnRows(rows)

	got, err := inbox.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "n2", got[0].ID)
	assert.False(t, got[0].IsRead)
	assert.Equal(t, "n1", got[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListFiltersByKind(t *testing.T) {
	inbox, mock := newMockInbox(t)

	rows := sqlmock.NewRows([]string{"id", "kind", "title", "body", "payload", "is_read", "created_at"}).
		AddRow("n1", "trades", "Trade proposals", "body", []byte(`{}`), false, time.Now())
	mock.ExpectQuery("FROM notifications WHERE kind").
		WithArgs("trades").
		WillReturnRows(rows)

	got, err := inbox.List(context.Background(), "trades")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "trades", got[0].Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNotFound(t *testing.T) {
	inbox, mock := newMockInbox(t)

	mock.ExpectQuery("FROM notifications WHERE id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "kind", "title", "body", "payload", "is_read", "created_at"}))

	_, err := inbox.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkRead(t *testing.T) {
	inbox, mock := newMockInbox(t)

	mock.ExpectExec("UPDATE notifications SET is_read").
		WithArgs("n1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, inbox.MarkRead(context.Background(), "n1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnreadCount(t *testing.T) {
	inbox, mock := newMockInbox(t)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := inbox.UnreadCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordAudit(t *testing.T) {
	inbox, mock := newMockInbox(t)

	mock.ExpectExec("INSERT INTO audit_log").
		WithArgs(sqlmock.AnyArg(), "lineup", "week 3: 2 swaps proposed").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, inbox.RecordAudit(context.Background(), "lineup", "week 3: 2 swaps proposed"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
