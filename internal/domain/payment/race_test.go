package payment

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/propmarket/server/internal/model"
	"github.com/propmarket/server/internal/port/outbound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memPaymentStore is an in-memory PaymentDatabasePort with an atomic compare-and-swap.
type memPaymentStore struct {
	mu       sync.Mutex
	payments map[uuid.UUID]*model.Payment
	retired  map[string]uuid.UUID
}

func newMemPaymentStore(seed ...*model.Payment) *memPaymentStore {
	s := &memPaymentStore{payments: make(map[uuid.UUID]*model.Payment), retired: make(map[string]uuid.UUID)}
	for _, p := range seed {
		s.payments[p.ID] = clone(p)
	}
	return s
}

func (s *memPaymentStore) Create(_ context.Context, p *model.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.payments {
		if existing.Reference == p.Reference {
			return outbound.ErrDuplicateReference
		}
	}
	s.payments[p.ID] = clone(p)
	return nil
}

func (s *memPaymentStore) FindByID(_ context.Context, id uuid.UUID) (*model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.payments[id]; ok {
		return clone(p), nil
	}
	return nil, nil
}

func (s *memPaymentStore) FindByReference(_ context.Context, reference string) (*model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.Reference == reference {
			return clone(p), nil
		}
	}
	return nil, nil
}

func (s *memPaymentStore) FindByFilter(context.Context, model.PaymentFilter) ([]*model.Payment, int64, error) {
	return nil, 0, nil
}

func (s *memPaymentStore) HasSucceeded(_ context.Context, targetID uuid.UUID, kind model.PaymentKind) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.TargetID == targetID && p.Kind == kind && p.Status == model.PaymentStatusSuccess {
			return true, nil
		}
	}
	return false, nil
}

func (s *memPaymentStore) TransitionStatus(_ context.Context, t *model.StatusTransition) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.Reference != t.Reference {
			continue
		}
		if p.Status != t.From {
			return false, nil
		}
		p.Status = t.To
		p.PaidAt = t.PaidAt
		p.FailureReason = t.FailureReason
		p.GatewayResponse = t.GatewayResponse
		return true, nil
	}
	return false, nil
}

func (s *memPaymentStore) SaveCheckout(_ context.Context, id uuid.UUID, reference, url, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.payments[id]; ok && p.Reference == reference {
		p.GatewayCheckoutURL, p.GatewayCheckoutToken = url, token
	}
	return nil
}

func (s *memPaymentStore) RotateReference(_ context.Context, id uuid.UUID, oldRef, newRef string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[id]
	if !ok || p.Reference != oldRef || !p.Status.CanRetry() {
		return false, nil
	}
	s.retired[oldRef] = id
	p.Reference = newRef
	p.Status = model.PaymentStatusPending
	p.FailureReason = nil
	p.GatewayCheckoutURL, p.GatewayCheckoutToken = "", ""
	return true, nil
}

func (s *memPaymentStore) IsRetiredReference(_ context.Context, reference string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.retired[reference]
	return ok, nil
}

func (s *memPaymentStore) SumAmount(context.Context, model.AnalyticsFilter) (int64, error) {
	return 0, nil
}

func (s *memPaymentStore) CountByStatus(context.Context, model.AnalyticsFilter) (map[model.PaymentStatus]int64, error) {
	return nil, nil
}

func (s *memPaymentStore) GroupByKind(context.Context, model.AnalyticsFilter) ([]model.KindRevenue, error) {
	return nil, nil
}

func (s *memPaymentStore) GroupByDay(context.Context, model.AnalyticsFilter) ([]model.DailyRevenue, error) {
	return nil, nil
}

type memWebhookStore struct {
	mu     sync.Mutex
	events map[string]*model.WebhookEvent
}

func newMemWebhookStore() *memWebhookStore {
	return &memWebhookStore{events: make(map[string]*model.WebhookEvent)}
}

func (s *memWebhookStore) Create(_ context.Context, e *model.WebhookEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := e.Provider + "/" + e.EventID
	if _, ok := s.events[key]; ok {
		return outbound.ErrDuplicateWebhookEvent
	}
	c := *e
	s.events[key] = &c
	return nil
}

func (s *memWebhookStore) FindByEventID(_ context.Context, provider, eventID string) (*model.WebhookEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.events[provider+"/"+eventID]; ok {
		c := *e
		return &c, nil
	}
	return nil, nil
}

func (s *memWebhookStore) MarkProcessed(_ context.Context, id uuid.UUID, errMsg *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e.ID == id {
			e.Processed = errMsg == nil
			e.Error = errMsg
		}
	}
	return nil
}

type memListingStore struct {
	mu       sync.Mutex
	listings map[uuid.UUID]*model.Listing
	updates  int
}

func (s *memListingStore) FindByID(_ context.Context, id uuid.UUID) (*model.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.listings[id]; ok {
		c := *l
		return &c, nil
	}
	return nil, nil
}

func (s *memListingStore) UpdateFields(_ context.Context, id uuid.UUID, patch *model.ListingPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.listings[id]
	if !ok {
		return outbound.ErrListingNotFound
	}
	s.updates++
	if patch.IsVerified != nil {
		l.IsVerified = *patch.IsVerified
	}
	if patch.IsFeatured != nil {
		l.IsFeatured = *patch.IsFeatured
	}
	if patch.FeaturedUntil != nil {
		until := *patch.FeaturedUntil
		l.FeaturedUntil = &until
	}
	if patch.InspectionBooked != nil {
		l.InspectionBooked = *patch.InspectionBooked
	}
	return nil
}

// serialTx runs one transaction at a time.
type serialTx struct{ mu sync.Mutex }

func (tx *serialTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	return fn(ctx)
}

// successGateway reports every reference as paid and signs every webhook.
type successGateway struct {
	amountMinor int64
	webhookSeq  atomic.Int64
	verifies    atomic.Int64
}

func (g *successGateway) Name() string            { return "paystack" }
func (g *successGateway) SignatureHeader() string { return "x-paystack-signature" }

func (g *successGateway) Initialize(_ context.Context, req *model.GatewayInitRequest) (*model.GatewayCheckout, error) {
	return &model.GatewayCheckout{CheckoutURL: "https://checkout.test/" + req.Reference, CheckoutToken: "tok", Reference: req.Reference}, nil
}

func (g *successGateway) Verify(_ context.Context, reference string) (*model.GatewayVerification, error) {
	g.verifies.Add(1)
	return &model.GatewayVerification{Reference: reference, Outcome: model.GatewayOutcomeSuccess, AmountMinor: g.amountMinor}, nil
}

func (g *successGateway) ParseWebhook(payload []byte, _ string) (*model.GatewayWebhookEvent, error) {
	n := g.webhookSeq.Add(1)
	return &model.GatewayWebhookEvent{
		EventID:     fmt.Sprintf("evt-%d", n),
		EventType:   "charge.success",
		Type:        model.GatewayEventSuccess,
		Reference:   string(payload),
		AmountMinor: g.amountMinor,
	}, nil
}

type countingApplier struct {
	inner EffectApplier
	calls atomic.Int64
}

func (a *countingApplier) Apply(ctx context.Context, p *model.Payment, now time.Time) error {
	if err := a.inner.Apply(ctx, p, now); err != nil {
		return err
	}
	a.calls.Add(1)
	return nil
}

type nopPublisher struct{ published atomic.Int64 }

func (p *nopPublisher) Publish(context.Context, interface{}) error {
	p.published.Add(1)
	return nil
}

func TestFinalizeAppliesEffectOnce(t *testing.T) {
	transactors := map[string]outbound.TransactorPort{
		"serialized transactions": &serialTx{},
		"compare-and-swap only":   passthroughTx{},
	}

	for name, tx := range transactors {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			ownerID := uuid.New()
			listing := &model.Listing{ID: uuid.New(), OwnerID: ownerID, Name: "Ikoyi terrace"}
			listings := &memListingStore{listings: map[uuid.UUID]*model.Listing{listing.ID: listing}}

			days := 30
			p := &model.Payment{
				ID: uuid.New(), UserID: ownerID, TargetType: model.TargetTypeListing, TargetID: listing.ID,
				Kind: model.PaymentKindBoost, Amount: 15000, Currency: "NGN", BoostDays: &days,
				Reference: "BOOST_1700000000000_RACERACE", Status: model.PaymentStatusPending,
			}
			payments := newMemPaymentStore(p)
			gateway := &successGateway{amountMinor: ToMinorUnits(p.Amount)}
			applier := &countingApplier{inner: NewEffectApplier(listings)}
			notifier := &recordingNotifier{}
			publisher := &nopPublisher{}

			d := NewPaymentDomain(
				payments, newMemWebhookStore(), tx, gateway, listings, nil,
				applier, notifier, publisher, nil, nil, testPrices,
				Config{Currency: "NGN"}, zap.NewNop(),
			)

			const callers = 16
			var wg sync.WaitGroup
			errs := make(chan error, callers)
			for i := 0; i < callers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					if i%2 == 0 {
						_, err := d.VerifyPayment(ctx, p.Reference)
						errs <- err
						return
					}
					errs <- d.HandleWebhook(ctx, []byte(p.Reference), "sig")
				}(i)
			}
			wg.Wait()
			close(errs)

			for err := range errs {
				assert.NoError(t, err)
			}

			stored, err := payments.FindByReference(ctx, p.Reference)
			require.NoError(t, err)
			assert.Equal(t, model.PaymentStatusSuccess, stored.Status)
			assert.Equal(t, int64(1), applier.calls.Load())
			assert.Equal(t, 1, listings.updates)
			assert.Len(t, notifier.Sent(), 1)
			assert.Equal(t, int64(1), publisher.published.Load())

			featured, _ := listings.FindByID(ctx, listing.ID)
			assert.True(t, featured.IsFeatured)
			require.NotNil(t, featured.FeaturedUntil)

			// Later verifies answer from the record.
			before := gateway.verifies.Load()
			resp, err := d.VerifyPayment(ctx, p.Reference)
			require.NoError(t, err)
			assert.Equal(t, model.PaymentStatusSuccess, resp.Status)
			assert.Equal(t, before, gateway.verifies.Load())
		})
	}
}

func TestRetryRetiresOldReference(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	listing := &model.Listing{ID: uuid.New(), OwnerID: ownerID}
	listings := &memListingStore{listings: map[uuid.UUID]*model.Listing{listing.ID: listing}}

	reason := "card declined"
	p := &model.Payment{
		ID: uuid.New(), UserID: ownerID, TargetType: model.TargetTypeListing, TargetID: listing.ID,
		Kind: model.PaymentKindListing, Amount: 5000, Currency: "NGN",
		Reference: "LISTING_1700000000000_OLDOLDOL", Status: model.PaymentStatusFailed, FailureReason: &reason,
	}
	payments := newMemPaymentStore(p)
	gateway := &successGateway{amountMinor: ToMinorUnits(p.Amount)}
	applier := &countingApplier{inner: NewEffectApplier(listings)}

	d := NewPaymentDomain(
		payments, newMemWebhookStore(), &serialTx{}, gateway, listings, nil,
		applier, &recordingNotifier{}, &nopPublisher{}, nil, nil, testPrices,
		Config{Currency: "NGN"}, zap.NewNop(),
	)

	retried, err := d.RetryPayment(ctx, p.ID, model.Actor{UserID: ownerID})
	require.NoError(t, err)
	assert.NotEqual(t, p.Reference, retried.Reference)
	assert.Equal(t, model.PaymentStatusPending, retried.Status)
	assert.Equal(t, p.Amount, retried.Amount)

	// A late webhook for the retired reference is acknowledged without effect.
	require.NoError(t, d.HandleWebhook(ctx, []byte(p.Reference), "sig"))
	assert.Zero(t, applier.calls.Load())

	_, err = d.VerifyPayment(ctx, p.Reference)
	assert.ErrorIs(t, err, ErrPaymentNotFound)

	resp, err := d.VerifyPayment(ctx, retried.Reference)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusSuccess, resp.Status)
	assert.Equal(t, int64(1), applier.calls.Load())
	assert.True(t, listings.listings[listing.ID].IsVerified)
}
