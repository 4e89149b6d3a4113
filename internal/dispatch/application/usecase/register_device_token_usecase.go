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

// RegisterDeviceTokenService — регистрация FCM токена устройства водителя
type RegisterDeviceTokenService struct {
	drivers      out.DriverRegistry
	deviceTokens out.DeviceTokenRepository
	log          *logger.Logger
}

// NewRegisterDeviceTokenService создает новый сервис
func NewRegisterDeviceTokenService(
	drivers out.DriverRegistry,
	deviceTokens out.DeviceTokenRepository,
	log *logger.Logger,
) *RegisterDeviceTokenService {
	return &RegisterDeviceTokenService{
		drivers:      drivers,
		deviceTokens: deviceTokens,
		log:          log,
	}
}

// Execute сохраняет токен, повтор того же токена — no-op
func (s *RegisterDeviceTokenService) Execute(ctx context.Context, input in.RegisterDeviceTokenInput) error {
	token := strings.TrimSpace(input.Token)
	if token == "" {
		return fmt.Errorf("%w: device token is required", domain.ErrValidation)
	}

	driver, err := s.drivers.FindByUserID(ctx, input.DriverUserID)
	if err != nil {
		return err
	}

	if err := s.deviceTokens.SaveToken(ctx, driver.ID, token); err != nil {
		return fmt.Errorf("save device token: %w", err)
	}

	s.log.Info(logger.Entry{
		Action:  "device_token_registered",
		Message: fmt.Sprintf("driver %s registered device token", driver.ID),
	})
	return nil
}
