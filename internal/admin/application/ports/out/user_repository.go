package out

import (
	"context"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/admin/domain"
)

// UserListFilter — фильтры листинга пользователей
type UserListFilter struct {
	Role      string
	Status    string
	Page      int
	PageLimit int
}

// UserRepository — хранилище учетных записей.
// Для водителя Create заводит и профиль delivery_boy (одной транзакцией)
type UserRepository interface {
	// Create сохраняет пользователя; ErrPhoneExists при дубликате телефона.
	// Для роли driver возвращает ID созданного профиля водителя
	Create(ctx context.Context, user *domain.User) (driverProfileID string, err error)

	// FindByID находит пользователя
	FindByID(ctx context.Context, userID string) (*domain.User, error)

	// List возвращает пользователей по фильтру
	List(ctx context.Context, filter UserListFilter) ([]*domain.User, int, error)

	// Delete удаляет пользователя; профиль водителя уходит каскадом
	Delete(ctx context.Context, userID string) error
}
