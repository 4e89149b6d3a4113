package out

import "context"

// DeviceTokenRepository — хранилище FCM токенов устройств.
// У водителя ноль или больше токенов (несколько устройств).
type DeviceTokenRepository interface {
	// SaveToken сохраняет токен устройства (идемпотентно по паре driver+token)
	SaveToken(ctx context.Context, driverID, token string) error

	// TokensForDriver возвращает все токены водителя
	TokensForDriver(ctx context.Context, driverID string) ([]string, error)

	// DeleteToken удаляет протухший токен
	DeleteToken(ctx context.Context, driverID, token string) error
}
