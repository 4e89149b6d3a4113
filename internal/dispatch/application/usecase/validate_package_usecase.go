package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/application/ports/in"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/application/ports/out"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/domain"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/logger"
)

// Коды пакетов печатаются на этикетках с единым префиксом
const packageCodePrefix = "PKG"

// ValidatePackageService — проверка кода пакета перед подтверждением доставки
type ValidatePackageService struct {
	orderRepo out.OrderRepository
	log       *logger.Logger
}

// NewValidatePackageService создает новый сервис
func NewValidatePackageService(orderRepo out.OrderRepository, log *logger.Logger) *ValidatePackageService {
	return &ValidatePackageService{orderRepo: orderRepo, log: log}
}

// Execute сверяет отсканированный код с форматом этикетки
func (s *ValidatePackageService) Execute(ctx context.Context, input in.ValidatePackageInput) (*in.ValidatePackageOutput, error) {
	code := strings.TrimSpace(input.PackageCode)
	if code == "" {
		return nil, fmt.Errorf("%w: package code is required", domain.ErrValidation)
	}

	// Заказ должен существовать
	if _, err := s.orderRepo.FindByID(ctx, input.OrderID); err != nil {
		return nil, err
	}

	valid := strings.HasPrefix(code, packageCodePrefix)
	msg := "Package verified"
	if !valid {
		msg = "Invalid package code"
		s.log.Warn(logger.Entry{
			Action:  "package_code_invalid",
			Message: fmt.Sprintf("order %s: code %q has wrong prefix", input.OrderID, code),
			OrderID: input.OrderID,
		})
	}

	return &in.ValidatePackageOutput{Valid: valid, Message: msg}, nil
}
