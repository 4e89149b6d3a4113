package usecase_test

import (
	"context"
	"time"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/application/ports/out"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/domain"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) AssignDriver(ctx context.Context, orderID string, asg domain.Assignment) error {
	args := m.Called(ctx, orderID, asg)
	return args.Error(0)
}

func (m *MockOrderRepository) ReassignDriver(ctx context.Context, orderID string, asg domain.Assignment) error {
	args := m.Called(ctx, orderID, asg)
	return args.Error(0)
}

func (m *MockOrderRepository) MarkDelivered(ctx context.Context, orderID string, proof domain.DeliveryProof) error {
	args := m.Called(ctx, orderID, proof)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdatePaymentStatus(ctx context.Context, orderID string, status domain.PaymentStatus, actualMethod, notes string) (*domain.Order, error) {
	args := m.Called(ctx, orderID, status, actualMethod, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, filter out.OrderListFilter) ([]*domain.Order, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Order), args.Int(1), args.Error(2)
}

func (m *MockOrderRepository) FindForDriver(ctx context.Context, orderID, driverID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) DeleteDeliveredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockDriverRegistry struct{ mock.Mock }

func (m *MockDriverRegistry) FindByID(ctx context.Context, driverID string) (*domain.Driver, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Driver), args.Error(1)
}

func (m *MockDriverRegistry) FindByUserID(ctx context.Context, userID string) (*domain.Driver, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Driver), args.Error(1)
}

func (m *MockDriverRegistry) IncrementDeliveryStats(ctx context.Context, driverID string) (*domain.Driver, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Driver), args.Error(1)
}

func (m *MockDriverRegistry) UpdateProfile(ctx context.Context, driverID, name, phone string) (*domain.Driver, error) {
	args := m.Called(ctx, driverID, name, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Driver), args.Error(1)
}

type MockDeviceTokenRepository struct{ mock.Mock }

func (m *MockDeviceTokenRepository) SaveToken(ctx context.Context, driverID, token string) error {
	args := m.Called(ctx, driverID, token)
	return args.Error(0)
}

func (m *MockDeviceTokenRepository) TokensForDriver(ctx context.Context, driverID string) ([]string, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDeviceTokenRepository) DeleteToken(ctx context.Context, driverID, token string) error {
	args := m.Called(ctx, driverID, token)
	return args.Error(0)
}

type MockEventNotifier struct{ mock.Mock }

func (m *MockEventNotifier) BroadcastOrderCreated(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockEventNotifier) NotifyOrderAssigned(ctx context.Context, driverUserID string, order *domain.Order) (bool, error) {
	args := m.Called(ctx, driverUserID, order)
	return args.Bool(0), args.Error(1)
}

func (m *MockEventNotifier) BroadcastOrderDelivered(ctx context.Context, event domain.OrderDeliveredEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockWakeupNotifier struct{ mock.Mock }

func (m *MockWakeupNotifier) NotifyOne(ctx context.Context, token string) bool {
	args := m.Called(ctx, token)
	return args.Bool(0)
}

func (m *MockWakeupNotifier) NotifyMany(ctx context.Context, tokens []string) out.MulticastResult {
	args := m.Called(ctx, tokens)
	return args.Get(0).(out.MulticastResult)
}

func (m *MockWakeupNotifier) Enabled() bool {
	args := m.Called()
	return args.Bool(0)
}

type MockTransactionLedger struct{ mock.Mock }

func (m *MockTransactionLedger) Record(ctx context.Context, tx domain.Transaction) (*domain.Transaction, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionLedger) List(ctx context.Context, filter out.TransactionListFilter) ([]*domain.Transaction, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Transaction), args.Int(1), args.Error(2)
}

type MockTransactionExporter struct{ mock.Mock }

func (m *MockTransactionExporter) AppendTransaction(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionExporter) AppendTransactions(ctx context.Context, txs []*domain.Transaction) (int, error) {
	args := m.Called(ctx, txs)
	return args.Int(0), args.Error(1)
}

func (m *MockTransactionExporter) Enabled() bool {
	args := m.Called()
	return args.Bool(0)
}
