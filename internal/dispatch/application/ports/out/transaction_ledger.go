package out

import (
	"context"
	"time"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/domain"
)

// TransactionListFilter — фильтры листинга транзакций
type TransactionListFilter struct {
	DateFrom  *time.Time
	DateTo    *time.Time
	Page      int
	PageLimit int
}

// TransactionLedger — append-only журнал финансовых записей.
// Record должен вызываться не более одного раза на заказ; повторный вызов —
// нарушение контракта, всплывает как ErrDuplicateTransaction, не
// дедуплицируется молча.
type TransactionLedger interface {
	Record(ctx context.Context, tx domain.Transaction) (*domain.Transaction, error)

	// List — листинг для админской отчетности
	List(ctx context.Context, filter TransactionListFilter) ([]*domain.Transaction, int, error)
}
