package usecase_test

import (
	"context"
	"testing"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/application/ports/in"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/application/usecase"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/domain"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePackageService_Execute(t *testing.T) {
	log := logger.NewLogger("test")
	ctx := context.Background()

	t.Run("should accept codes with label prefix", func(t *testing.T) {
		orders := new(MockOrderRepository)
		orders.On("FindByID", ctx, "ORD-20250901-000042").Return(assignedOrder(), nil)

		svc := usecase.NewValidatePackageService(orders, log)
		output, err := svc.Execute(ctx, in.ValidatePackageInput{
			OrderID:     "ORD-20250901-000042",
			PackageCode: "PKG-77231",
		})

		require.NoError(t, err)
		assert.True(t, output.Valid)
		assert.Equal(t, "Package verified", output.Message)
	})

	t.Run("should reject codes without label prefix", func(t *testing.T) {
		orders := new(MockOrderRepository)
		orders.On("FindByID", ctx, "ORD-20250901-000042").Return(assignedOrder(), nil)

		svc := usecase.NewValidatePackageService(orders, log)
		output, err := svc.Execute(ctx, in.ValidatePackageInput{
			OrderID:     "ORD-20250901-000042",
			PackageCode: "BOX-77231",
		})

		require.NoError(t, err)
		assert.False(t, output.Valid)
		assert.Equal(t, "Invalid package code", output.Message)
	})

	t.Run("should trim code before checking", func(t *testing.T) {
		orders := new(MockOrderRepository)
		orders.On("FindByID", ctx, "ORD-20250901-000042").Return(assignedOrder(), nil)

		svc := usecase.NewValidatePackageService(orders, log)
		output, err := svc.Execute(ctx, in.ValidatePackageInput{
			OrderID:     "ORD-20250901-000042",
			PackageCode: "  PKG-1  ",
		})

		require.NoError(t, err)
		assert.True(t, output.Valid)
	})

	t.Run("should require non-empty code", func(t *testing.T) {
		orders := new(MockOrderRepository)

		svc := usecase.NewValidatePackageService(orders, log)
		_, err := svc.Execute(ctx, in.ValidatePackageInput{
			OrderID:     "ORD-20250901-000042",
			PackageCode: "   ",
		})

		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("should fail for unknown order", func(t *testing.T) {
		orders := new(MockOrderRepository)
		orders.On("FindByID", ctx, "ORD-missing").Return(nil, domain.ErrOrderNotFound)

		svc := usecase.NewValidatePackageService(orders, log)
		_, err := svc.Execute(ctx, in.ValidatePackageInput{
			OrderID:     "ORD-missing",
			PackageCode: "PKG-1",
		})

		require.ErrorIs(t, err, domain.ErrOrderNotFound)
	})
}
