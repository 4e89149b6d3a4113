package in

import "context"

// RegisterDeviceTokenInput — FCM-токен устройства водителя
type RegisterDeviceTokenInput struct {
	DriverUserID string
	Token        string
}

// RegisterDeviceTokenUseCase — сохранение токена для push-пробуждения
type RegisterDeviceTokenUseCase interface {
	Execute(ctx context.Context, input RegisterDeviceTokenInput) error
}
