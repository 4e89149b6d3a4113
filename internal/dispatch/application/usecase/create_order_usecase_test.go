package usecase_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/application/ports/in"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/application/usecase"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/domain"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validCreateInput() in.CreateOrderInput {
	return in.CreateOrderInput{
		CustomerName:    "Suresh",
		CustomerPhone:   "9876500000",
		Items:           []domain.Item{{Name: "Cement bag", Quantity: 2, Price: 450}},
		DeliveryAddress: "12 MG Road, Bengaluru",
		TotalAmount:     900,
		PaymentMode:     "Cash",
	}
}

func TestCreateOrderService_Execute(t *testing.T) {
	log := logger.NewLogger("test")
	ctx := context.Background()

	t.Run("should create cash order with pending payment", func(t *testing.T) {
		orders := new(MockOrderRepository)
		notifier := new(MockEventNotifier)

		orders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)
		notifier.On("BroadcastOrderCreated", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)

		svc := usecase.NewCreateOrderService(orders, notifier, log)
		output, err := svc.Execute(ctx, validCreateInput())

		require.NoError(t, err)
		assert.Equal(t, domain.DeliveryPending, output.Order.DeliveryStatus)
		assert.Equal(t, domain.PaymentPending, output.Order.PaymentStatus)
		assert.Regexp(t, regexp.MustCompile(`^ORD-\d{8}-\d{6}$`), output.Order.OrderID)
		orders.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("should mark prepaid orders as completed upfront", func(t *testing.T) {
		for _, mode := range []string{"UPI", "Card"} {
			orders := new(MockOrderRepository)
			notifier := new(MockEventNotifier)

			orders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)
			notifier.On("BroadcastOrderCreated", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)

			input := validCreateInput()
			input.PaymentMode = mode

			svc := usecase.NewCreateOrderService(orders, notifier, log)
			output, err := svc.Execute(ctx, input)

			require.NoError(t, err)
			assert.Equal(t, domain.PaymentCompleted, output.Order.PaymentStatus, "mode %s", mode)
		}
	})

	t.Run("should survive broadcast failure", func(t *testing.T) {
		orders := new(MockOrderRepository)
		notifier := new(MockEventNotifier)

		orders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)
		notifier.On("BroadcastOrderCreated", ctx, mock.AnythingOfType("*domain.Order")).Return(assert.AnError)

		svc := usecase.NewCreateOrderService(orders, notifier, log)
		output, err := svc.Execute(ctx, validCreateInput())

		require.NoError(t, err)
		assert.NotNil(t, output.Order)
	})

	t.Run("should reject invalid input", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*in.CreateOrderInput)
		}{
			{"empty customer name", func(i *in.CreateOrderInput) { i.CustomerName = "  " }},
			{"empty customer phone", func(i *in.CreateOrderInput) { i.CustomerPhone = "" }},
			{"empty delivery address", func(i *in.CreateOrderInput) { i.DeliveryAddress = "" }},
			{"no items", func(i *in.CreateOrderInput) { i.Items = nil }},
			{"item without name", func(i *in.CreateOrderInput) { i.Items[0].Name = "" }},
			{"item with zero quantity", func(i *in.CreateOrderInput) { i.Items[0].Quantity = 0 }},
			{"item with negative price", func(i *in.CreateOrderInput) { i.Items[0].Price = -1 }},
			{"zero total amount", func(i *in.CreateOrderInput) { i.TotalAmount = 0 }},
			{"unknown payment mode", func(i *in.CreateOrderInput) { i.PaymentMode = "Barter" }},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				orders := new(MockOrderRepository)
				notifier := new(MockEventNotifier)

				input := validCreateInput()
				tc.mutate(&input)

				svc := usecase.NewCreateOrderService(orders, notifier, log)
				_, err := svc.Execute(ctx, input)

				require.ErrorIs(t, err, domain.ErrValidation)
				orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			})
		}
	})
}
