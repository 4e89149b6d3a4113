package export

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/domain"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/config"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/logger"
)

// SheetsExporter дописывает финансовые записи в Google-таблицу.
// Внешняя таблица — это удобство бухгалтерии, а не источник правды:
// сбой экспорта никогда не влияет на подтверждение доставки
type SheetsExporter struct {
	svc           *sheets.Service
	spreadsheetID string
	appendRange   string
	log           *logger.Logger
}

// NewSheetsExporter инициализирует клиент Sheets API. Без credentials
// возвращает выключенный экспортер
func NewSheetsExporter(ctx context.Context, cfg config.SheetsConfig, log *logger.Logger) (*SheetsExporter, error) {
	if cfg.CredentialsFile == "" || cfg.SpreadsheetID == "" {
		log.Warn(logger.Entry{
			Action:  "sheets_export_disabled",
			Message: "google sheets credentials not configured, export disabled",
		})
		return &SheetsExporter{log: log}, nil
	}

	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("init sheets client: %w", err)
	}

	appendRange := cfg.Range
	if appendRange == "" {
		appendRange = "Sheet1!A:H"
	}

	log.Info(logger.Entry{
		Action:  "sheets_export_initialized",
		Message: "google sheets transaction export enabled",
	})
	return &SheetsExporter{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		appendRange:   appendRange,
		log:           log,
	}, nil
}

// Enabled — сконфигурирован ли экспорт
func (e *SheetsExporter) Enabled() bool {
	return e.svc != nil
}

// AppendTransaction дописывает одну запись в конец таблицы
func (e *SheetsExporter) AppendTransaction(ctx context.Context, tx *domain.Transaction) error {
	if e.svc == nil {
		return nil
	}

	_, err := e.svc.Spreadsheets.Values.
		Append(e.spreadsheetID, e.appendRange, &sheets.ValueRange{Values: [][]any{transactionRow(tx)}}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append transaction row: %w", err)
	}

	e.log.Info(logger.Entry{
		Action:  "transaction_exported",
		Message: fmt.Sprintf("transaction for order %s appended to sheet", tx.OrderID),
		OrderID: tx.OrderID,
	})
	return nil
}

// AppendTransactions выгружает пачку записей одним запросом к API.
// Используется админским bulk-экспортом
func (e *SheetsExporter) AppendTransactions(ctx context.Context, txs []*domain.Transaction) (int, error) {
	if e.svc == nil || len(txs) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, transactionRow(tx))
	}

	_, err := e.svc.Spreadsheets.Values.
		Append(e.spreadsheetID, e.appendRange, &sheets.ValueRange{Values: rows}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("append transaction rows: %w", err)
	}

	e.log.Info(logger.Entry{
		Action:  "transactions_bulk_exported",
		Message: fmt.Sprintf("%d transactions appended to sheet", len(rows)),
	})
	return len(rows), nil
}

func transactionRow(tx *domain.Transaction) []any {
	return []any{
		tx.OrderID,
		tx.CustomerRef,
		tx.Amount,
		tx.PaymentMode,
		tx.PaymentStatus,
		tx.DriverID,
		tx.CreatedAt.Format("02/01/2006 15:04"),
	}
}
