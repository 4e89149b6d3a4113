package out

import "context"

// TokenResult — результат отправки на один токен
type TokenResult struct {
	Token     string
	Delivered bool
	Err       error
}

// MulticastResult — результат мультикаста.
// Один плохой токен не валит остальные.
type MulticastResult struct {
	SuccessCount int
	FailureCount int
	Results      []TokenResult
	Disabled     bool
}

// WakeupNotifier — внеполосный сигнал "переподключись" на устройство водителя.
// Контента не несет, адресуется по device token, а не по user id.
//
// Реализация обязана переживать неконфигурированный канал (Disabled-результат
// вместо ошибки) и бизнес-ошибки провайдера (невалидный/протухший токен) —
// наружу уходит только инфраструктурная недоступность, и то не как panic.
type WakeupNotifier interface {
	// NotifyOne будит одно устройство. false — не доставлено (или канал выключен).
	NotifyOne(ctx context.Context, token string) bool

	// NotifyMany будит несколько устройств, толерантно к частичным сбоям
	NotifyMany(ctx context.Context, tokens []string) MulticastResult

	// Enabled — сконфигурирован ли push-канал
	Enabled() bool
}
