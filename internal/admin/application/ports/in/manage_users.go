package in

import (
	"context"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/admin/domain"
)

// CreateUserInput — данные новой учетной записи
type CreateUserInput struct {
	Name  string
	Phone string
	Role  string // admin | driver
}

// CreateUserOutput — созданная учетная запись с одноразовым паролем
type CreateUserOutput struct {
	User            *domain.User
	DriverProfileID string // пусто для админов
	DefaultPassword string
	Message         string
}

// CreateUserUseCase — провижининг учетной записи с дефолтным паролем
type CreateUserUseCase interface {
	Execute(ctx context.Context, input CreateUserInput) (*CreateUserOutput, error)
}

// DeleteUserOutput — итог удаления
type DeleteUserOutput struct {
	UserID  string
	Role    string
	Message string
}

// DeleteUserUseCase — удаление учетной записи с принудительным разлогином
type DeleteUserUseCase interface {
	Execute(ctx context.Context, userID string) (*DeleteUserOutput, error)
}
