package out

import (
	"context"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/domain"
)

// TransactionExporter — выгрузка транзакций во внешнюю таблицу.
// Best-effort, как и EventNotifier: сбой экспорта не влияет на подтверждение.
type TransactionExporter interface {
	// AppendTransaction дописывает одну запись
	AppendTransaction(ctx context.Context, tx *domain.Transaction) error

	// AppendTransactions дописывает пачку записей одним запросом,
	// возвращает число выгруженных строк
	AppendTransactions(ctx context.Context, txs []*domain.Transaction) (int, error)

	// Enabled — сконфигурирован ли экспорт
	Enabled() bool
}
