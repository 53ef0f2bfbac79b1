package payment

import (
	"context"
	"fmt"

	"github.com/propmarket/server/internal/model"
	"github.com/propmarket/server/internal/utils/pagination"
	"go.uber.org/zap"
)

func (d *paymentDomain) ListPayments(ctx context.Context, filter model.PaymentFilter) ([]*model.Payment, int64, error) {
	filter.DefaultPagination(pagination.DefaultAdminLimit)
	return d.paymentDB.FindByFilter(ctx, filter)
}

func (d *paymentDomain) GetRevenueAnalytics(ctx context.Context, filter model.AnalyticsFilter) (*model.RevenueAnalytics, error) {
	total, err := d.paymentDB.SumAmount(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}
	counts, err := d.paymentDB.CountByStatus(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count payments: %w", err)
	}
	byKind, err := d.paymentDB.GroupByKind(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("revenue by kind: %w", err)
	}
	byDay, err := d.paymentDB.GroupByDay(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("revenue by day: %w", err)
	}

	recent, _, err := d.paymentDB.FindByFilter(ctx, model.PaymentFilter{
		From:              filter.From,
		To:                filter.To,
		PaginationRequest: model.PaginationRequest{Page: 1, Limit: recentPaymentsLimit},
	})
	if err != nil {
		return nil, fmt.Errorf("recent payments: %w", err)
	}

	if byKind == nil {
		byKind = []model.KindRevenue{}
	}
	if byDay == nil {
		byDay = []model.DailyRevenue{}
	}
	if recent == nil {
		recent = []*model.Payment{}
	}

	return &model.RevenueAnalytics{
		TotalRevenue:       total,
		Currency:           d.cfg.Currency,
		SuccessfulPayments: counts[model.PaymentStatusSuccess],
		FailedPayments:     counts[model.PaymentStatusFailed],
		PendingPayments:    counts[model.PaymentStatusPending],
		RevenueByKind:      byKind,
		RevenueByDay:       byDay,
		RecentPayments:     recent,
	}, nil
}

func (d *paymentDomain) ExportPayments(ctx context.Context, filter model.PaymentFilter) (*model.PaymentExport, error) {
	payments, err := d.collectForExport(ctx, filter)
	if err != nil {
		return nil, err
	}

	content, err := d.report.Render(payments)
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	stamp := d.now().Format("20060102T150405Z")
	export := &model.PaymentExport{
		FileName:    fmt.Sprintf("payments_%s.%s", stamp, d.report.Extension()),
		ContentType: d.report.ContentType(),
	}

	if d.storage == nil {
		export.Content = content
		return export, nil
	}

	key := exportKeyPrefix + stamp + "." + d.report.Extension()
	if err := d.storage.Upload(ctx, key, content, export.ContentType); err != nil {
		return nil, fmt.Errorf("upload report: %w", err)
	}
	url, err := d.storage.DownloadURL(ctx, key, d.cfg.ExportURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign report: %w", err)
	}

	d.log(ctx).Info("payment export uploaded",
		zap.String("key", key),
		zap.Int("rows", len(payments)),
	)
	export.URL = url
	return export, nil
}

// collectForExport pages through every payment matching filter.
func (d *paymentDomain) collectForExport(ctx context.Context, filter model.PaymentFilter) ([]*model.Payment, error) {
	filter.Limit = exportPageSize
	var all []*model.Payment
	for page := 1; ; page++ {
		filter.Page = page
		batch, total, err := d.paymentDB.FindByFilter(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("list payments: %w", err)
		}
		all = append(all, batch...)
		if len(batch) == 0 || int64(len(all)) >= total {
			return all, nil
		}
	}
}
