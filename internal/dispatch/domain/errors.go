package domain

import "errors"

var (
	// ErrValidation возникает при некорректных или неполных входных данных
	ErrValidation = errors.New("validation failed")

	// ErrOrderNotFound возникает, когда заказ не найден
	ErrOrderNotFound = errors.New("order not found")

	// ErrDriverNotFound возникает, когда водитель не найден
	ErrDriverNotFound = errors.New("driver not found")

	// ErrAlreadyAssigned возникает, когда заказ уже назначен другим диспетчером
	ErrAlreadyAssigned = errors.New("order already assigned")

	// ErrInvalidTransition возникает при недопустимом переходе статуса заказа
	ErrInvalidTransition = errors.New("invalid delivery status transition")

	// ErrForbidden возникает, когда водитель подтверждает чужой заказ
	ErrForbidden = errors.New("order is not assigned to this driver")

	// ErrDuplicateTransaction возникает при повторной записи транзакции по заказу.
	// Это нарушение контракта вызывающего, а не бизнес-конфликт.
	ErrDuplicateTransaction = errors.New("transaction already recorded for order")
)
