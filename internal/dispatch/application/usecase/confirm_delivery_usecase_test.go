package usecase_test

import (
	"context"
	"testing"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/application/ports/in"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/application/usecase"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/domain"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func confirmInput() in.ConfirmDeliveryInput {
	return in.ConfirmDeliveryInput{
		OrderID:      "ORD-20250901-000042",
		DriverUserID: "usr-1",
		Latitude:     12.9716,
		Longitude:    77.5946,
		Notes:        "left at gate",
	}
}

func orderAssignedTo(driverID string) *domain.Order {
	return &domain.Order{
		OrderID:        "ORD-20250901-000042",
		CustomerName:   "Suresh",
		TotalAmount:    2450.50,
		PaymentMode:    domain.PaymentCash,
		PaymentStatus:  domain.PaymentPending,
		DeliveryStatus: domain.DeliveryAssigned,
		Assignment: &domain.Assignment{
			DriverID:   driverID,
			DriverName: "Ravi Kumar",
		},
	}
}

func TestConfirmDeliveryService_Execute(t *testing.T) {
	log := logger.NewLogger("test")
	ctx := context.Background()

	t.Run("should deliver order, bump stats, record transaction and notify admins", func(t *testing.T) {
		orders := new(MockOrderRepository)
		drivers := new(MockDriverRegistry)
		ledger := new(MockTransactionLedger)
		exporter := new(MockTransactionExporter)
		notifier := new(MockEventNotifier)

		drivers.On("FindByUserID", ctx, "usr-1").Return(testDriver(), nil)
		orders.On("FindByID", ctx, "ORD-20250901-000042").Return(orderAssignedTo("drv-1"), nil)
		orders.On("MarkDelivered", ctx, "ORD-20250901-000042", mock.AnythingOfType("domain.DeliveryProof")).Return(nil)
		drivers.On("IncrementDeliveryStats", ctx, "drv-1").Return(testDriver(), nil)
		ledger.On("Record", ctx, mock.MatchedBy(func(tx domain.Transaction) bool {
			return tx.OrderID == "ORD-20250901-000042" &&
				tx.Amount == 2450.50 &&
				tx.PaymentMode == "Cash" &&
				tx.PaymentStatus == "Completed" &&
				tx.DriverID == "drv-1"
		})).Return(&domain.Transaction{ID: "tx-1", OrderID: "ORD-20250901-000042"}, nil)
		exporter.On("Enabled").Return(false)
		notifier.On("BroadcastOrderDelivered", ctx, mock.MatchedBy(func(e domain.OrderDeliveredEvent) bool {
			return e.OrderID == "ORD-20250901-000042" &&
				e.DeliveryStatus == domain.DeliveryDelivered &&
				e.PaymentStatus == domain.PaymentCompleted &&
				e.DeliveredBy == "Ravi Kumar"
		})).Return(nil)

		svc := usecase.NewConfirmDeliveryService(orders, drivers, ledger, exporter, notifier, log)
		output, err := svc.Execute(ctx, confirmInput())

		require.NoError(t, err)
		assert.Equal(t, "Delivered", output.DeliveryStatus)
		assert.Equal(t, "Completed", output.PaymentStatus)
		orders.AssertExpectations(t)
		drivers.AssertExpectations(t)
		ledger.AssertExpectations(t)
		notifier.AssertExpectations(t)
		exporter.AssertNotCalled(t, "AppendTransaction", mock.Anything, mock.Anything)
	})

	t.Run("should stamp proof with driver name from profile", func(t *testing.T) {
		orders := new(MockOrderRepository)
		drivers := new(MockDriverRegistry)
		ledger := new(MockTransactionLedger)
		exporter := new(MockTransactionExporter)
		notifier := new(MockEventNotifier)

		drivers.On("FindByUserID", ctx, "usr-1").Return(testDriver(), nil)
		orders.On("FindByID", ctx, "ORD-20250901-000042").Return(orderAssignedTo("drv-1"), nil)
		orders.On("MarkDelivered", ctx, "ORD-20250901-000042", mock.MatchedBy(func(p domain.DeliveryProof) bool {
			return p.DeliveredBy == "Ravi Kumar" && p.Latitude == 12.9716 && p.Notes == "left at gate"
		})).Return(nil)
		drivers.On("IncrementDeliveryStats", ctx, "drv-1").Return(testDriver(), nil)
		ledger.On("Record", ctx, mock.AnythingOfType("domain.Transaction")).Return(&domain.Transaction{ID: "tx-1"}, nil)
		exporter.On("Enabled").Return(false)
		notifier.On("BroadcastOrderDelivered", ctx, mock.AnythingOfType("domain.OrderDeliveredEvent")).Return(nil)

		svc := usecase.NewConfirmDeliveryService(orders, drivers, ledger, exporter, notifier, log)
		_, err := svc.Execute(ctx, confirmInput())

		require.NoError(t, err)
		orders.AssertExpectations(t)
	})

	t.Run("should forbid confirming order assigned to another driver", func(t *testing.T) {
		orders := new(MockOrderRepository)
		drivers := new(MockDriverRegistry)
		ledger := new(MockTransactionLedger)
		exporter := new(MockTransactionExporter)
		notifier := new(MockEventNotifier)

		drivers.On("FindByUserID", ctx, "usr-1").Return(testDriver(), nil)
		orders.On("FindByID", ctx, "ORD-20250901-000042").Return(orderAssignedTo("drv-other"), nil)

		svc := usecase.NewConfirmDeliveryService(orders, drivers, ledger, exporter, notifier, log)
		_, err := svc.Execute(ctx, confirmInput())

		require.ErrorIs(t, err, domain.ErrForbidden)
		orders.AssertNotCalled(t, "MarkDelivered", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should reject confirming unassigned order as invalid transition", func(t *testing.T) {
		orders := new(MockOrderRepository)
		drivers := new(MockDriverRegistry)
		ledger := new(MockTransactionLedger)
		exporter := new(MockTransactionExporter)
		notifier := new(MockEventNotifier)

		pending := orderAssignedTo("drv-1")
		pending.DeliveryStatus = domain.DeliveryPending
		pending.Assignment = nil

		drivers.On("FindByUserID", ctx, "usr-1").Return(testDriver(), nil)
		orders.On("FindByID", ctx, "ORD-20250901-000042").Return(pending, nil)

		svc := usecase.NewConfirmDeliveryService(orders, drivers, ledger, exporter, notifier, log)
		_, err := svc.Execute(ctx, confirmInput())

		// Нет назначения — это ошибочный переход Pending → Delivered, а
		// не вопрос прав; Forbidden остается за чужим назначением
		require.ErrorIs(t, err, domain.ErrInvalidTransition)
		require.NotErrorIs(t, err, domain.ErrForbidden)
		orders.AssertNotCalled(t, "MarkDelivered", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should lose race to concurrent confirmation", func(t *testing.T) {
		orders := new(MockOrderRepository)
		drivers := new(MockDriverRegistry)
		ledger := new(MockTransactionLedger)
		exporter := new(MockTransactionExporter)
		notifier := new(MockEventNotifier)

		drivers.On("FindByUserID", ctx, "usr-1").Return(testDriver(), nil)
		orders.On("FindByID", ctx, "ORD-20250901-000042").Return(orderAssignedTo("drv-1"), nil)
		orders.On("MarkDelivered", ctx, "ORD-20250901-000042", mock.AnythingOfType("domain.DeliveryProof")).Return(domain.ErrInvalidTransition)

		svc := usecase.NewConfirmDeliveryService(orders, drivers, ledger, exporter, notifier, log)
		_, err := svc.Execute(ctx, confirmInput())

		require.ErrorIs(t, err, domain.ErrInvalidTransition)
		drivers.AssertNotCalled(t, "IncrementDeliveryStats", mock.Anything, mock.Anything)
		ledger.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	})

	t.Run("should not fail request when ledger rejects duplicate", func(t *testing.T) {
		orders := new(MockOrderRepository)
		drivers := new(MockDriverRegistry)
		ledger := new(MockTransactionLedger)
		exporter := new(MockTransactionExporter)
		notifier := new(MockEventNotifier)

		drivers.On("FindByUserID", ctx, "usr-1").Return(testDriver(), nil)
		orders.On("FindByID", ctx, "ORD-20250901-000042").Return(orderAssignedTo("drv-1"), nil)
		orders.On("MarkDelivered", ctx, "ORD-20250901-000042", mock.AnythingOfType("domain.DeliveryProof")).Return(nil)
		drivers.On("IncrementDeliveryStats", ctx, "drv-1").Return(testDriver(), nil)
		ledger.On("Record", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil, domain.ErrDuplicateTransaction)
		notifier.On("BroadcastOrderDelivered", ctx, mock.AnythingOfType("domain.OrderDeliveredEvent")).Return(nil)

		svc := usecase.NewConfirmDeliveryService(orders, drivers, ledger, exporter, notifier, log)
		output, err := svc.Execute(ctx, confirmInput())

		require.NoError(t, err)
		assert.Equal(t, "Delivered", output.DeliveryStatus)
		exporter.AssertNotCalled(t, "Enabled")
	})

	t.Run("should export transaction when sheets channel enabled", func(t *testing.T) {
		orders := new(MockOrderRepository)
		drivers := new(MockDriverRegistry)
		ledger := new(MockTransactionLedger)
		exporter := new(MockTransactionExporter)
		notifier := new(MockEventNotifier)

		recorded := &domain.Transaction{ID: "tx-1", OrderID: "ORD-20250901-000042"}

		drivers.On("FindByUserID", ctx, "usr-1").Return(testDriver(), nil)
		orders.On("FindByID", ctx, "ORD-20250901-000042").Return(orderAssignedTo("drv-1"), nil)
		orders.On("MarkDelivered", ctx, "ORD-20250901-000042", mock.AnythingOfType("domain.DeliveryProof")).Return(nil)
		drivers.On("IncrementDeliveryStats", ctx, "drv-1").Return(testDriver(), nil)
		ledger.On("Record", ctx, mock.AnythingOfType("domain.Transaction")).Return(recorded, nil)
		exporter.On("Enabled").Return(true)
		exporter.On("AppendTransaction", ctx, recorded).Return(nil)
		notifier.On("BroadcastOrderDelivered", ctx, mock.AnythingOfType("domain.OrderDeliveredEvent")).Return(nil)

		svc := usecase.NewConfirmDeliveryService(orders, drivers, ledger, exporter, notifier, log)
		_, err := svc.Execute(ctx, confirmInput())

		require.NoError(t, err)
		exporter.AssertExpectations(t)
	})

	t.Run("should not fail request when stats or broadcast fail", func(t *testing.T) {
		orders := new(MockOrderRepository)
		drivers := new(MockDriverRegistry)
		ledger := new(MockTransactionLedger)
		exporter := new(MockTransactionExporter)
		notifier := new(MockEventNotifier)

		drivers.On("FindByUserID", ctx, "usr-1").Return(testDriver(), nil)
		orders.On("FindByID", ctx, "ORD-20250901-000042").Return(orderAssignedTo("drv-1"), nil)
		orders.On("MarkDelivered", ctx, "ORD-20250901-000042", mock.AnythingOfType("domain.DeliveryProof")).Return(nil)
		drivers.On("IncrementDeliveryStats", ctx, "drv-1").Return(nil, assert.AnError)
		ledger.On("Record", ctx, mock.AnythingOfType("domain.Transaction")).Return(&domain.Transaction{ID: "tx-1"}, nil)
		exporter.On("Enabled").Return(false)
		notifier.On("BroadcastOrderDelivered", ctx, mock.AnythingOfType("domain.OrderDeliveredEvent")).Return(assert.AnError)

		svc := usecase.NewConfirmDeliveryService(orders, drivers, ledger, exporter, notifier, log)
		output, err := svc.Execute(ctx, confirmInput())

		require.NoError(t, err)
		assert.Equal(t, "Delivery confirmed successfully", output.Message)
	})
}
