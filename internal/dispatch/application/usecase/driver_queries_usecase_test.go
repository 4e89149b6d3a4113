package usecase_test

import (
	"context"
	"testing"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/application/ports/in"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/application/ports/out"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/application/usecase"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/domain"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDriverQueryService(t *testing.T) {
	log := logger.NewLogger("test")
	ctx := context.Background()

	t.Run("should list assigned orders by default", func(t *testing.T) {
		orders := new(MockOrderRepository)
		drivers := new(MockDriverRegistry)

		drivers.On("FindByUserID", ctx, "usr-1").Return(testDriver(), nil)
		orders.On("List", ctx, out.OrderListFilter{
			DriverID: "drv-1",
			Status:   domain.DeliveryAssigned,
		}).Return([]*domain.Order{assignedOrder()}, 1, nil)

		svc := usecase.NewDriverQueryService(orders, drivers, log)
		result, err := svc.ActiveOrders(ctx, in.GetDriverOrdersInput{DriverUserID: "usr-1"})

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "ORD-20250901-000042", result[0].OrderID)
	})

	t.Run("should scope history to delivered orders of this driver", func(t *testing.T) {
		orders := new(MockOrderRepository)
		drivers := new(MockDriverRegistry)

		drivers.On("FindByUserID", ctx, "usr-1").Return(testDriver(), nil)
		orders.On("List", ctx, mock.MatchedBy(func(f out.OrderListFilter) bool {
			return f.DriverID == "drv-1" && f.Status == domain.DeliveryDelivered && f.Page == 2
		})).Return([]*domain.Order{}, 17, nil)

		svc := usecase.NewDriverQueryService(orders, drivers, log)
		result, total, err := svc.History(ctx, "usr-1", out.OrderListFilter{Page: 2, PageLimit: 10})

		require.NoError(t, err)
		assert.Empty(t, result)
		assert.Equal(t, 17, total)
	})

	t.Run("should hide foreign order as not found", func(t *testing.T) {
		orders := new(MockOrderRepository)
		drivers := new(MockDriverRegistry)

		drivers.On("FindByUserID", ctx, "usr-1").Return(testDriver(), nil)
		orders.On("FindForDriver", ctx, "ORD-20250901-000042", "drv-1").Return(nil, domain.ErrForbidden)

		svc := usecase.NewDriverQueryService(orders, drivers, log)
		_, err := svc.Order(ctx, "usr-1", "ORD-20250901-000042")

		require.ErrorIs(t, err, domain.ErrOrderNotFound)
		assert.NotErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("should return own order", func(t *testing.T) {
		orders := new(MockOrderRepository)
		drivers := new(MockDriverRegistry)

		drivers.On("FindByUserID", ctx, "usr-1").Return(testDriver(), nil)
		orders.On("FindForDriver", ctx, "ORD-20250901-000042", "drv-1").Return(assignedOrder(), nil)

		svc := usecase.NewDriverQueryService(orders, drivers, log)
		order, err := svc.Order(ctx, "usr-1", "ORD-20250901-000042")

		require.NoError(t, err)
		assert.Equal(t, "ORD-20250901-000042", order.OrderID)
	})
}

func TestRegisterDeviceTokenService_Execute(t *testing.T) {
	log := logger.NewLogger("test")
	ctx := context.Background()

	t.Run("should save trimmed token under driver profile id", func(t *testing.T) {
		drivers := new(MockDriverRegistry)
		tokens := new(MockDeviceTokenRepository)

		drivers.On("FindByUserID", ctx, "usr-1").Return(testDriver(), nil)
		tokens.On("SaveToken", ctx, "drv-1", "tok-abc").Return(nil)

		svc := usecase.NewRegisterDeviceTokenService(drivers, tokens, log)
		err := svc.Execute(ctx, in.RegisterDeviceTokenInput{DriverUserID: "usr-1", Token: " tok-abc "})

		require.NoError(t, err)
		tokens.AssertExpectations(t)
	})

	t.Run("should reject empty token", func(t *testing.T) {
		drivers := new(MockDriverRegistry)
		tokens := new(MockDeviceTokenRepository)

		svc := usecase.NewRegisterDeviceTokenService(drivers, tokens, log)
		err := svc.Execute(ctx, in.RegisterDeviceTokenInput{DriverUserID: "usr-1", Token: "  "})

		require.ErrorIs(t, err, domain.ErrValidation)
		tokens.AssertNotCalled(t, "SaveToken", mock.Anything, mock.Anything, mock.Anything)
	})
}
