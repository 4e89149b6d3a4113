package fcm

import (
	"context"
	"fmt"
	"strconv"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/application/ports/out"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/config"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/logger"
)

// Пробуждающий push живет недолго: либо приложение проснулось сразу,
// либо слать уже поздно
const wakeupTTL = 30 * time.Second

// WakeupNotifier — data-only push через Firebase Cloud Messaging.
// Сообщение не несет контента, только сигнал переподключиться
type WakeupNotifier struct {
	client *messaging.Client
	log    *logger.Logger
}

// NewWakeupNotifier инициализирует FCM клиент. Без credentials возвращает
// выключенный нотификатор, а не ошибку: push-канал опционален
func NewWakeupNotifier(ctx context.Context, cfg config.FCMConfig, log *logger.Logger) (*WakeupNotifier, error) {
	if cfg.CredentialsFile == "" {
		log.Warn(logger.Entry{
			Action:  "fcm_disabled",
			Message: "firebase credentials not configured, push notifications disabled",
		})
		return &WakeupNotifier{log: log}, nil
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("init fcm client: %w", err)
	}

	log.Info(logger.Entry{
		Action:  "fcm_initialized",
		Message: "firebase push notifications enabled",
	})
	return &WakeupNotifier{client: client, log: log}, nil
}

// Enabled — сконфигурирован ли push-канал
func (n *WakeupNotifier) Enabled() bool {
	return n.client != nil
}

func wakeupData() map[string]string {
	return map[string]string{
		"type":      "LOCATION_REQUEST",
		"timestamp": strconv.FormatInt(time.Now().UnixMilli(), 10),
	}
}

func wakeupAndroidConfig() *messaging.AndroidConfig {
	ttl := wakeupTTL
	return &messaging.AndroidConfig{
		Priority: "high",
		TTL:      &ttl,
	}
}

// NotifyOne будит одно устройство. false — не доставлено или канал выключен
func (n *WakeupNotifier) NotifyOne(ctx context.Context, token string) bool {
	if n.client == nil {
		return false
	}

	msg := &messaging.Message{
		Token:   token,
		Data:    wakeupData(),
		Android: wakeupAndroidConfig(),
	}

	if _, err := n.client.Send(ctx, msg); err != nil {
		n.log.Warn(logger.Entry{
			Action:  "fcm_send_failed",
			Message: err.Error(),
		})
		return false
	}
	return true
}

// NotifyMany будит несколько устройств. Один плохой токен не валит
// остальные: частичные сбои возвращаются поштучно в Results.
// Err ставится только для невалидных токенов — по нему вызывающий
// решает, чистить ли токен из хранилища
func (n *WakeupNotifier) NotifyMany(ctx context.Context, tokens []string) out.MulticastResult {
	if n.client == nil {
		return out.MulticastResult{Disabled: true, FailureCount: len(tokens)}
	}
	if len(tokens) == 0 {
		return out.MulticastResult{}
	}

	msg := &messaging.MulticastMessage{
		Tokens:  tokens,
		Data:    wakeupData(),
		Android: wakeupAndroidConfig(),
	}

	resp, err := n.client.SendEachForMulticast(ctx, msg)
	if err != nil {
		// Инфраструктурный сбой всего батча
		n.log.Warn(logger.Entry{
			Action:  "fcm_multicast_failed",
			Message: err.Error(),
		})
		result := out.MulticastResult{FailureCount: len(tokens)}
		for _, t := range tokens {
			result.Results = append(result.Results, out.TokenResult{Token: t})
		}
		return result
	}

	result := out.MulticastResult{
		SuccessCount: resp.SuccessCount,
		FailureCount: resp.FailureCount,
	}
	for i, r := range resp.Responses {
		tr := out.TokenResult{Token: tokens[i], Delivered: r.Success}
		if !r.Success && r.Error != nil &&
			(messaging.IsUnregistered(r.Error) || messaging.IsInvalidArgument(r.Error)) {
			tr.Err = r.Error
		}
		result.Results = append(result.Results, tr)
	}

	n.log.Info(logger.Entry{
		Action:  "fcm_multicast_sent",
		Message: fmt.Sprintf("%d success, %d failed", resp.SuccessCount, resp.FailureCount),
	})
	return result
}
