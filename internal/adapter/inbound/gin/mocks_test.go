package gin

import (
	"context"

	"github.com/google/uuid"
	"github.com/propmarket/server/internal/domain/payment"
	"github.com/propmarket/server/internal/model"
	"github.com/stretchr/testify/mock"
)

type mockPaymentDomain struct {
	mock.Mock
}

func (m *mockPaymentDomain) CreatePayment(ctx context.Context, in *payment.CreatePaymentInput) (*model.Payment, error) {
	args := m.Called(ctx, in)
	if p := args.Get(0); p != nil {
		return p.(*model.Payment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPaymentDomain) InitializePayment(ctx context.Context, paymentID uuid.UUID, actor model.Actor) (*model.CheckoutResponse, error) {
	args := m.Called(ctx, paymentID, actor)
	if r := args.Get(0); r != nil {
		return r.(*model.CheckoutResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPaymentDomain) VerifyPayment(ctx context.Context, reference string) (*model.PaymentStatusResponse, error) {
	args := m.Called(ctx, reference)
	if r := args.Get(0); r != nil {
		return r.(*model.PaymentStatusResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPaymentDomain) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	return m.Called(ctx, payload, signature).Error(0)
}

func (m *mockPaymentDomain) RetryPayment(ctx context.Context, paymentID uuid.UUID, actor model.Actor) (*model.Payment, error) {
	args := m.Called(ctx, paymentID, actor)
	if p := args.Get(0); p != nil {
		return p.(*model.Payment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPaymentDomain) GetPayment(ctx context.Context, paymentID uuid.UUID, actor model.Actor) (*model.Payment, error) {
	args := m.Called(ctx, paymentID, actor)
	if p := args.Get(0); p != nil {
		return p.(*model.Payment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPaymentDomain) ListUserPayments(ctx context.Context, actor model.Actor, filter model.PaymentFilter) ([]*model.Payment, int64, error) {
	args := m.Called(ctx, actor, filter)
	return args.Get(0).([]*model.Payment), args.Get(1).(int64), args.Error(2)
}

func (m *mockPaymentDomain) ListPayments(ctx context.Context, filter model.PaymentFilter) ([]*model.Payment, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*model.Payment), args.Get(1).(int64), args.Error(2)
}

func (m *mockPaymentDomain) GetRevenueAnalytics(ctx context.Context, filter model.AnalyticsFilter) (*model.RevenueAnalytics, error) {
	args := m.Called(ctx, filter)
	if r := args.Get(0); r != nil {
		return r.(*model.RevenueAnalytics), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPaymentDomain) ExportPayments(ctx context.Context, filter model.PaymentFilter) (*model.PaymentExport, error) {
	args := m.Called(ctx, filter)
	if r := args.Get(0); r != nil {
		return r.(*model.PaymentExport), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPaymentDomain) SignatureHeader() string {
	return "x-paystack-signature"
}

type mockNotificationDomain struct {
	mock.Mock
	stream chan *model.NotificationMessage
}

func (m *mockNotificationDomain) Notify(ctx context.Context, userID uuid.UUID, title, message string) {
	m.Called(ctx, userID, title, message)
}

func (m *mockNotificationDomain) List(ctx context.Context, userID uuid.UUID, filter model.NotificationFilter) ([]*model.Notification, int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]*model.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *mockNotificationDomain) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *mockNotificationDomain) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationDomain) Subscribe(ctx context.Context, userID uuid.UUID) (<-chan *model.NotificationMessage, func() error, error) {
	args := m.Called(ctx, userID)
	if err := args.Error(0); err != nil {
		return nil, nil, err
	}
	return m.stream, func() error { return nil }, nil
}
