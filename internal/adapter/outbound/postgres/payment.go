package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/propmarket/server/internal/model"
	"github.com/propmarket/server/internal/port/outbound"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// paymentAdapter implements outbound.PaymentDatabasePort.
type paymentAdapter struct {
	db *gorm.DB
}

// NewPaymentAdapter creates a new payment database adapter.
func NewPaymentAdapter(db *gorm.DB) outbound.PaymentDatabasePort {
	return &paymentAdapter{db: db}
}

func (a *paymentAdapter) Create(ctx context.Context, payment *model.Payment) error {
	err := conn(ctx, a.db).Create(payment).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return outbound.ErrDuplicateReference
	}
	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

func (a *paymentAdapter) FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	var payment model.Payment
	err := conn(ctx, a.db).First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find payment by id: %w", err)
	}
	return &payment, nil
}

// FindByReference locks the row when called inside a transaction, so
// concurrent finalizers of one reference queue behind each other.
func (a *paymentAdapter) FindByReference(ctx context.Context, reference string) (*model.Payment, error) {
	query := conn(ctx, a.db)
	if inTx(ctx) {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var payment model.Payment
	err := query.First(&payment, "reference = ?", reference).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find payment by reference: %w", err)
	}
	return &payment, nil
}

func (a *paymentAdapter) FindByFilter(ctx context.Context, filter model.PaymentFilter) ([]*model.Payment, int64, error) {
	var payments []*model.Payment
	var total int64

	query := conn(ctx, a.db).Model(&model.Payment{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Kind != nil {
		query = query.Where("kind = ?", *filter.Kind)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	query = within(query, "created_at", filter.From, filter.To)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count payments: %w", err)
	}

	filter.DefaultPagination(0)
	if err := query.Offset(filter.Offset()).Limit(filter.Limit).Order("created_at DESC").Find(&payments).Error; err != nil {
		return nil, 0, fmt.Errorf("find payments: %w", err)
	}

	return payments, total, nil
}

func (a *paymentAdapter) HasSucceeded(ctx context.Context, targetID uuid.UUID, kind model.PaymentKind) (bool, error) {
	var count int64
	err := conn(ctx, a.db).
		Model(&model.Payment{}).
		Where("target_id = ? AND kind = ? AND status = ?", targetID, kind, model.PaymentStatusSuccess).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check succeeded payment: %w", err)
	}
	return count > 0, nil
}

// TransitionStatus is a compare-and-swap on status: it only updates a row still in t.From.
func (a *paymentAdapter) TransitionStatus(ctx context.Context, t *model.StatusTransition) (bool, error) {
	updates := map[string]interface{}{
		"status": t.To,
	}
	if t.PaidAt != nil {
		updates["paid_at"] = *t.PaidAt
	}
	if t.FailureReason != nil {
		updates["failure_reason"] = *t.FailureReason
	}
	if t.GatewayResponse != nil {
		updates["gateway_response"] = *t.GatewayResponse
	}

	result := conn(ctx, a.db).
		Model(&model.Payment{}).
		Where("reference = ? AND status = ?", t.Reference, t.From).
		Updates(updates)
	if result.Error != nil {
		return false, fmt.Errorf("transition payment status: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (a *paymentAdapter) SaveCheckout(ctx context.Context, id uuid.UUID, reference, checkoutURL, checkoutToken string) error {
	err := conn(ctx, a.db).
		Model(&model.Payment{}).
		Where("id = ? AND reference = ? AND status = ?", id, reference, model.PaymentStatusPending).
		Updates(map[string]interface{}{
			"gateway_checkout_url":   checkoutURL,
			"gateway_checkout_token": checkoutToken,
		}).Error
	if err != nil {
		return fmt.Errorf("save checkout: %w", err)
	}
	return nil
}

// RotateReference swaps in newRef and records oldRef as retired. It joins the
// caller's transaction when there is one.
func (a *paymentAdapter) RotateReference(ctx context.Context, id uuid.UUID, oldRef, newRef string) (bool, error) {
	db := conn(ctx, a.db)

	result := db.Model(&model.Payment{}).
		Where("id = ? AND reference = ? AND status IN ?", id, oldRef,
			[]model.PaymentStatus{model.PaymentStatusPending, model.PaymentStatusFailed}).
		Updates(map[string]interface{}{
			"reference":              newRef,
			"status":                 model.PaymentStatusPending,
			"failure_reason":         gorm.Expr("NULL"),
			"gateway_response":       gorm.Expr("NULL"),
			"gateway_checkout_url":   "",
			"gateway_checkout_token": "",
		})
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return false, outbound.ErrDuplicateReference
	}
	if result.Error != nil {
		return false, fmt.Errorf("rotate reference: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	retired := &model.RetiredReference{Reference: oldRef, PaymentID: id, RetiredAt: time.Now().UTC()}
	if err := db.Create(retired).Error; err != nil {
		return false, fmt.Errorf("retire reference: %w", err)
	}
	return true, nil
}

func (a *paymentAdapter) IsRetiredReference(ctx context.Context, reference string) (bool, error) {
	var count int64
	err := conn(ctx, a.db).
		Model(&model.RetiredReference{}).
		Where("reference = ?", reference).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check retired reference: %w", err)
	}
	return count > 0, nil
}

// --- Aggregates ---

// succeeded selects successful payments settled within the filter window.
// Revenue belongs to the day it was paid, not the day checkout opened.
func (a *paymentAdapter) succeeded(ctx context.Context, filter model.AnalyticsFilter) *gorm.DB {
	query := conn(ctx, a.db).Model(&model.Payment{}).Where("status = ?", model.PaymentStatusSuccess)
	return within(query, "paid_at", filter.From, filter.To)
}

func (a *paymentAdapter) SumAmount(ctx context.Context, filter model.AnalyticsFilter) (int64, error) {
	var total int64
	err := a.succeeded(ctx, filter).Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("sum payments: %w", err)
	}
	return total, nil
}

func (a *paymentAdapter) CountByStatus(ctx context.Context, filter model.AnalyticsFilter) (map[model.PaymentStatus]int64, error) {
	var rows []struct {
		Status model.PaymentStatus
		Count  int64
	}
	query := within(conn(ctx, a.db).Model(&model.Payment{}), "created_at", filter.From, filter.To)
	err := query.Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count payments by status: %w", err)
	}

	counts := make(map[model.PaymentStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

func (a *paymentAdapter) GroupByKind(ctx context.Context, filter model.AnalyticsFilter) ([]model.KindRevenue, error) {
	var rows []model.KindRevenue
	err := a.succeeded(ctx, filter).
		Select("kind, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Group("kind").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("group payments by kind: %w", err)
	}
	return rows, nil
}

func (a *paymentAdapter) GroupByDay(ctx context.Context, filter model.AnalyticsFilter) ([]model.DailyRevenue, error) {
	var rows []model.DailyRevenue
	err := a.succeeded(ctx, filter).
		Select("DATE_TRUNC('day', paid_at) AS date, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Group("date").
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("group payments by day: %w", err)
	}
	return rows, nil
}

// within bounds column to [from, to]. to is a calendar day and is inclusive.
func within(query *gorm.DB, column string, from, to *time.Time) *gorm.DB {
	if from != nil {
		query = query.Where(column+" >= ?", *from)
	}
	if to != nil {
		query = query.Where(column+" < ?", to.Add(24*time.Hour))
	}
	return query
}

func inTx(ctx context.Context) bool {
	_, ok := ctx.Value(txContextKey).(*gorm.DB)
	return ok
}

// Compile-time check
var _ outbound.PaymentDatabasePort = (*paymentAdapter)(nil)
