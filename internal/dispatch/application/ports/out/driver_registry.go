package out

import (
	"context"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/domain"
)

// DriverRegistry — реестр водителей
type DriverRegistry interface {
	// FindByID находит водителя по ID профиля
	FindByID(ctx context.Context, driverID string) (*domain.Driver, error)

	// FindByUserID находит водителя по ID учетной записи
	FindByUserID(ctx context.Context, userID string) (*domain.Driver, error)

	// IncrementDeliveryStats атомарно увеличивает оба счетчика на единицу
	// и возвращает обновленный профиль. Инкремент идет одним UPDATE,
	// конкурентные подтверждения по одному водителю не теряются.
	//
	// Счетчики растут только здесь, при подтверждении доставки; при
	// перенацеливании заказа ничего не откатывается (известный пробел,
	// поведение перенесено как есть).
	IncrementDeliveryStats(ctx context.Context, driverID string) (*domain.Driver, error)

	// UpdateProfile обновляет имя/телефон профиля водителя
	UpdateProfile(ctx context.Context, driverID, name, phone string) (*domain.Driver, error)
}
