package payment

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/propmarket/server/internal/model"
	"github.com/propmarket/server/internal/port/outbound"
	"github.com/stretchr/testify/mock"
)

// --- Mock Implementations ---

type MockPaymentDatabasePort struct {
	mock.Mock
}

func (m *MockPaymentDatabasePort) Create(ctx context.Context, payment *model.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentDatabasePort) FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentDatabasePort) FindByReference(ctx context.Context, reference string) (*model.Payment, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentDatabasePort) FindByFilter(ctx context.Context, filter model.PaymentFilter) ([]*model.Payment, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*model.Payment), args.Get(1).(int64), args.Error(2)
}

func (m *MockPaymentDatabasePort) HasSucceeded(ctx context.Context, targetID uuid.UUID, kind model.PaymentKind) (bool, error) {
	args := m.Called(ctx, targetID, kind)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentDatabasePort) TransitionStatus(ctx context.Context, t *model.StatusTransition) (bool, error) {
	args := m.Called(ctx, t)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentDatabasePort) SaveCheckout(ctx context.Context, id uuid.UUID, reference, checkoutURL, checkoutToken string) error {
	args := m.Called(ctx, id, reference, checkoutURL, checkoutToken)
	return args.Error(0)
}

func (m *MockPaymentDatabasePort) RotateReference(ctx context.Context, id uuid.UUID, oldRef, newRef string) (bool, error) {
	args := m.Called(ctx, id, oldRef, newRef)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentDatabasePort) IsRetiredReference(ctx context.Context, reference string) (bool, error) {
	args := m.Called(ctx, reference)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentDatabasePort) SumAmount(ctx context.Context, filter model.AnalyticsFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentDatabasePort) CountByStatus(ctx context.Context, filter model.AnalyticsFilter) (map[model.PaymentStatus]int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(map[model.PaymentStatus]int64), args.Error(1)
}

func (m *MockPaymentDatabasePort) GroupByKind(ctx context.Context, filter model.AnalyticsFilter) ([]model.KindRevenue, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]model.KindRevenue), args.Error(1)
}

func (m *MockPaymentDatabasePort) GroupByDay(ctx context.Context, filter model.AnalyticsFilter) ([]model.DailyRevenue, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]model.DailyRevenue), args.Error(1)
}

type MockWebhookEventDatabasePort struct {
	mock.Mock
}

func (m *MockWebhookEventDatabasePort) Create(ctx context.Context, event *model.WebhookEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockWebhookEventDatabasePort) FindByEventID(ctx context.Context, provider, eventID string) (*model.WebhookEvent, error) {
	args := m.Called(ctx, provider, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WebhookEvent), args.Error(1)
}

func (m *MockWebhookEventDatabasePort) MarkProcessed(ctx context.Context, id uuid.UUID, errMsg *string) error {
	args := m.Called(ctx, id, errMsg)
	return args.Error(0)
}

type MockPaymentGatewayPort struct {
	mock.Mock
}

func (m *MockPaymentGatewayPort) Name() string            { return "paystack" }
func (m *MockPaymentGatewayPort) SignatureHeader() string { return "x-paystack-signature" }

func (m *MockPaymentGatewayPort) Initialize(ctx context.Context, req *model.GatewayInitRequest) (*model.GatewayCheckout, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GatewayCheckout), args.Error(1)
}

func (m *MockPaymentGatewayPort) Verify(ctx context.Context, reference string) (*model.GatewayVerification, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GatewayVerification), args.Error(1)
}

func (m *MockPaymentGatewayPort) ParseWebhook(payload []byte, signature string) (*model.GatewayWebhookEvent, error) {
	args := m.Called(payload, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GatewayWebhookEvent), args.Error(1)
}

type MockListingDatabasePort struct {
	mock.Mock
}

func (m *MockListingDatabasePort) FindByID(ctx context.Context, id uuid.UUID) (*model.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *MockListingDatabasePort) UpdateFields(ctx context.Context, id uuid.UUID, patch *model.ListingPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

type MockUserReaderPort struct {
	mock.Mock
}

func (m *MockUserReaderPort) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type MockEffectApplier struct {
	mock.Mock
}

func (m *MockEffectApplier) Apply(ctx context.Context, p *model.Payment, now time.Time) error {
	args := m.Called(ctx, p, now)
	return args.Error(0)
}

type MockEventPublisherPort struct {
	mock.Mock
}

func (m *MockEventPublisherPort) Publish(ctx context.Context, event interface{}) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockPaymentReportPort struct {
	mock.Mock
}

func (m *MockPaymentReportPort) ContentType() string { return "application/test" }
func (m *MockPaymentReportPort) Extension() string   { return "xlsx" }

func (m *MockPaymentReportPort) Render(payments []*model.Payment) ([]byte, error) {
	args := m.Called(payments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockStoragePort struct {
	mock.Mock
}

func (m *MockStoragePort) Upload(ctx context.Context, key string, content []byte, contentType string) error {
	args := m.Called(ctx, key, content, contentType)
	return args.Error(0)
}

func (m *MockStoragePort) DownloadURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}

// passthroughTx runs fn directly; the mocks stand in for transactional adapters.
type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// recordingNotifier records notifications.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

type sentNotification struct {
	UserID  uuid.UUID
	Title   string
	Message string
}

func (n *recordingNotifier) Notify(_ context.Context, userID uuid.UUID, title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNotification{UserID: userID, Title: title, Message: message})
}

func (n *recordingNotifier) Sent() []sentNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentNotification(nil), n.sent...)
}

var (
	_ outbound.PaymentDatabasePort      = (*MockPaymentDatabasePort)(nil)
	_ outbound.WebhookEventDatabasePort = (*MockWebhookEventDatabasePort)(nil)
	_ outbound.PaymentGatewayPort       = (*MockPaymentGatewayPort)(nil)
	_ outbound.ListingDatabasePort      = (*MockListingDatabasePort)(nil)
	_ outbound.UserReaderPort           = (*MockUserReaderPort)(nil)
	_ outbound.EventPublisherPort       = (*MockEventPublisherPort)(nil)
	_ outbound.PaymentReportPort        = (*MockPaymentReportPort)(nil)
	_ outbound.ExportStoragePort        = (*MockStoragePort)(nil)
	_ outbound.TransactorPort           = passthroughTx{}
	_ Notifier                          = (*recordingNotifier)(nil)
)
