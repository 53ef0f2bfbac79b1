package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/propmarket/server/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type capturedStmt struct {
	SQL  string
	Vars []interface{}
}

// statementRecorder renders statements without a server and reports
// rowsAffected for every UPDATE, standing in for the row count Postgres returns.
type statementRecorder struct {
	rowsAffected int64
	stmts        []capturedStmt
}

func (r *statementRecorder) record(db *gorm.DB) {
	r.stmts = append(r.stmts, capturedStmt{SQL: db.Statement.SQL.String(), Vars: db.Statement.Vars})
}

func newRecordingDB(t *testing.T, rowsAffected int64) (*gorm.DB, *statementRecorder) {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost user=propmarket dbname=propmarket sslmode=disable"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
	require.NoError(t, err)

	rec := &statementRecorder{rowsAffected: rowsAffected}
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("test:record_update", func(db *gorm.DB) {
		rec.record(db)
		db.RowsAffected = rec.rowsAffected
	}))
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("test:record_create", rec.record))
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:record_query", rec.record))
	require.NoError(t, db.Callback().Row().After("gorm:row").Register("test:record_row", rec.record))
	return db, rec
}

func TestPaymentAdapter_TransitionStatus(t *testing.T) {
	ctx := context.Background()
	paidAt := time.Date(2026, 3, 1, 9, 59, 12, 0, time.UTC)
	transition := &model.StatusTransition{
		Reference: "LISTING_1700000000000_ABCDEFGH",
		From:      model.PaymentStatusPending,
		To:        model.PaymentStatusSuccess,
		PaidAt:    &paidAt,
	}

	t.Run("guards on reference and current status", func(t *testing.T) {
		db, rec := newRecordingDB(t, 1)

		ok, err := NewPaymentAdapter(db).TransitionStatus(ctx, transition)

		require.NoError(t, err)
		assert.True(t, ok)
		require.Len(t, rec.stmts, 1)
		stmt := rec.stmts[0]
		assert.Contains(t, stmt.SQL, `UPDATE "payments" SET`)
		assert.Regexp(t, `WHERE \(?reference = \$\d+ AND status = \$\d+\)?`, stmt.SQL)
		assert.Contains(t, stmt.Vars, transition.Reference)
		assert.Contains(t, stmt.Vars, transition.From)
		assert.Contains(t, stmt.Vars, transition.To)
		assert.Contains(t, stmt.Vars, paidAt)
	})

	t.Run("lost race reports no transition", func(t *testing.T) {
		db, rec := newRecordingDB(t, 0)

		ok, err := NewPaymentAdapter(db).TransitionStatus(ctx, transition)

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Len(t, rec.stmts, 1)
	})

	t.Run("skips unset columns", func(t *testing.T) {
		db, rec := newRecordingDB(t, 1)

		_, err := NewPaymentAdapter(db).TransitionStatus(ctx, &model.StatusTransition{
			Reference: transition.Reference, From: model.PaymentStatusPending, To: model.PaymentStatusFailed,
		})

		require.NoError(t, err)
		require.Len(t, rec.stmts, 1)
		assert.NotContains(t, rec.stmts[0].SQL, "paid_at")
		assert.NotContains(t, rec.stmts[0].SQL, "gateway_response")
	})
}

func TestPaymentAdapter_RotateReference(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	const oldRef, newRef = "BOOST_1700000000000_ABCDEFGH", "BOOST_1700000000999_HGFEDCBA"

	t.Run("swaps a retryable row and retires the old reference", func(t *testing.T) {
		db, rec := newRecordingDB(t, 1)

		ok, err := NewPaymentAdapter(db).RotateReference(ctx, id, oldRef, newRef)

		require.NoError(t, err)
		assert.True(t, ok)
		require.Len(t, rec.stmts, 2)

		update := rec.stmts[0]
		assert.Regexp(t, `WHERE \(?id = \$\d+ AND reference = \$\d+ AND status IN \(\$\d+,\$\d+\)\)?`, update.SQL)
		assert.Contains(t, update.Vars, oldRef)
		assert.Contains(t, update.Vars, newRef)
		assert.Contains(t, update.Vars, model.PaymentStatusFailed)

		insert := rec.stmts[1]
		assert.Contains(t, insert.SQL, `INSERT INTO "payment_retired_references"`)
		assert.Contains(t, insert.Vars, oldRef)
		assert.Contains(t, insert.Vars, id)
	})

	t.Run("settled or already rotated row is left alone", func(t *testing.T) {
		db, rec := newRecordingDB(t, 0)

		ok, err := NewPaymentAdapter(db).RotateReference(ctx, id, oldRef, newRef)

		require.NoError(t, err)
		assert.False(t, ok)
		require.Len(t, rec.stmts, 1)
		assert.Contains(t, rec.stmts[0].SQL, "UPDATE")
	})
}

func TestPaymentAdapter_RevenueUsesSettlementTime(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	// Scan needs a live server; only the rendered statement is checked.
	filter := model.AnalyticsFilter{From: &from, To: &to}

	t.Run("daily revenue buckets by paid_at", func(t *testing.T) {
		db, rec := newRecordingDB(t, 0)

		_, err := NewPaymentAdapter(db).GroupByDay(ctx, filter)

		assert.ErrorIs(t, err, gorm.ErrDryRunModeUnsupported)
		require.Len(t, rec.stmts, 1)
		sql := rec.stmts[0].SQL
		assert.Contains(t, sql, "DATE_TRUNC('day', paid_at)")
		assert.Contains(t, sql, "paid_at >= $")
		assert.Contains(t, sql, "paid_at < $")
		assert.NotContains(t, sql, "created_at")
		assert.Contains(t, rec.stmts[0].Vars, to.Add(24*time.Hour))
	})

	t.Run("totals and kinds filter by paid_at", func(t *testing.T) {
		db, rec := newRecordingDB(t, 0)
		adapter := NewPaymentAdapter(db)

		_, err := adapter.SumAmount(ctx, filter)
		assert.ErrorIs(t, err, gorm.ErrDryRunModeUnsupported)
		_, err = adapter.GroupByKind(ctx, filter)
		assert.ErrorIs(t, err, gorm.ErrDryRunModeUnsupported)

		require.Len(t, rec.stmts, 2)
		for _, stmt := range rec.stmts {
			assert.Contains(t, stmt.SQL, "paid_at >= $")
			assert.NotContains(t, stmt.SQL, "created_at")
		}
	})

	t.Run("status counts stay on created_at", func(t *testing.T) {
		db, rec := newRecordingDB(t, 0)

		_, err := NewPaymentAdapter(db).CountByStatus(ctx, filter)

		assert.ErrorIs(t, err, gorm.ErrDryRunModeUnsupported)
		require.Len(t, rec.stmts, 1)
		assert.Contains(t, rec.stmts[0].SQL, "created_at >= $")
	})
}
