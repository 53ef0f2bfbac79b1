package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/propmarket/server/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- Mock Implementations ---

type MockNotificationDatabasePort struct {
	mock.Mock
}

func (m *MockNotificationDatabasePort) Create(ctx context.Context, n *model.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationDatabasePort) FindByUser(ctx context.Context, userID uuid.UUID, filter model.NotificationFilter) ([]*model.Notification, int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]*model.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationDatabasePort) MarkRead(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationDatabasePort) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
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

type MockEmailSenderPort struct {
	mock.Mock
}

func (m *MockEmailSenderPort) SendNotification(ctx context.Context, to, name, subject, message string) error {
	args := m.Called(ctx, to, name, subject, message)
	return args.Error(0)
}

type MockRealtimePort struct {
	mock.Mock
}

func (m *MockRealtimePort) Push(ctx context.Context, userID uuid.UUID, msg *model.NotificationMessage) error {
	args := m.Called(ctx, userID, msg)
	return args.Error(0)
}

func (m *MockRealtimePort) Subscribe(ctx context.Context, userID uuid.UUID) (<-chan *model.NotificationMessage, func() error, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(<-chan *model.NotificationMessage), args.Get(1).(func() error), args.Error(2)
}

// --- Tests ---

func TestNotificationDomain_Notify(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("fans out to every channel", func(t *testing.T) {
		db := new(MockNotificationDatabasePort)
		users := new(MockUserReaderPort)
		email := new(MockEmailSenderPort)
		live := new(MockRealtimePort)
		d := NewNotificationDomain(db, users, email, live, zap.NewNop())

		var stored *model.Notification
		db.On("Create", ctx, mock.MatchedBy(func(n *model.Notification) bool {
			stored = n
			return n.UserID == userID && n.Title == "Payment Successful" && !n.IsRead
		})).Return(nil)
		live.On("Push", ctx, userID, mock.MatchedBy(func(msg *model.NotificationMessage) bool {
			return msg.ID == stored.ID && msg.Message == "Your listing payment of ₦5,000 was successful"
		})).Return(nil)
		users.On("FindByID", ctx, userID).Return(&model.User{ID: userID, Email: "ada@propmarket.test", Name: "Ada"}, nil)
		email.On("SendNotification", ctx, "ada@propmarket.test", "Ada", "Payment Successful", "Your listing payment of ₦5,000 was successful").Return(nil)

		d.Notify(ctx, userID, "Payment Successful", "Your listing payment of ₦5,000 was successful")

		db.AssertExpectations(t)
		live.AssertExpectations(t)
		users.AssertExpectations(t)
		email.AssertExpectations(t)
	})

	t.Run("channel failures are swallowed", func(t *testing.T) {
		db := new(MockNotificationDatabasePort)
		users := new(MockUserReaderPort)
		email := new(MockEmailSenderPort)
		live := new(MockRealtimePort)
		d := NewNotificationDomain(db, users, email, live, zap.NewNop())

		db.On("Create", ctx, mock.Anything).Return(errors.New("db down"))
		live.On("Push", ctx, userID, mock.Anything).Return(errors.New("redis down"))
		users.On("FindByID", ctx, userID).Return(&model.User{Email: "ada@propmarket.test"}, nil)
		email.On("SendNotification", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

		assert.NotPanics(t, func() { d.Notify(ctx, userID, "Payment Failed", "x") })
		email.AssertNumberOfCalls(t, "SendNotification", 1)
	})

	t.Run("no email without address", func(t *testing.T) {
		db := new(MockNotificationDatabasePort)
		users := new(MockUserReaderPort)
		email := new(MockEmailSenderPort)
		d := NewNotificationDomain(db, users, email, nil, zap.NewNop())

		db.On("Create", ctx, mock.Anything).Return(nil)
		users.On("FindByID", ctx, userID).Return(nil, nil)

		d.Notify(ctx, userID, "Payment Failed", "x")
		email.AssertNotCalled(t, "SendNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestNotificationDomain_MarkRead(t *testing.T) {
	ctx := context.Background()
	userID, id := uuid.New(), uuid.New()

	db := new(MockNotificationDatabasePort)
	d := NewNotificationDomain(db, nil, nil, nil, zap.NewNop())

	db.On("MarkRead", ctx, userID, id).Return(true, nil).Once()
	require.NoError(t, d.MarkRead(ctx, userID, id))

	db.On("MarkRead", ctx, userID, id).Return(false, nil).Once()
	assert.ErrorIs(t, d.MarkRead(ctx, userID, id), ErrNotificationNotFound)
}

func TestNotificationDomain_List(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	db := new(MockNotificationDatabasePort)
	d := NewNotificationDomain(db, nil, nil, nil, zap.NewNop())

	db.On("FindByUser", ctx, userID, mock.MatchedBy(func(f model.NotificationFilter) bool {
		return f.Page == 1 && f.Limit == 20 && f.UnreadOnly
	})).Return([]*model.Notification{{ID: uuid.New()}}, int64(1), nil)
	db.On("CountUnread", ctx, userID).Return(int64(1), nil)

	items, total, err := d.List(ctx, userID, model.NotificationFilter{UnreadOnly: true})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(1), total)

	unread, err := d.UnreadCount(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)
}

func TestNotificationDomain_Subscribe(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	_, _, err := NewNotificationDomain(new(MockNotificationDatabasePort), nil, nil, nil, zap.NewNop()).Subscribe(ctx, userID)
	assert.Error(t, err)

	live := new(MockRealtimePort)
	ch := make(chan *model.NotificationMessage)
	live.On("Subscribe", ctx, userID).Return((<-chan *model.NotificationMessage)(ch), func() error { return nil }, nil)

	got, closeFn, err := NewNotificationDomain(new(MockNotificationDatabasePort), nil, nil, live, zap.NewNop()).Subscribe(ctx, userID)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.NoError(t, closeFn())
}
