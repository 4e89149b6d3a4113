package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/admin/application/ports/in"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/admin/application/ports/out"
	dispatch "github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/domain"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/logger"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/ws"
)

// DeleteUserService — удаление учетной записи.
// Если пользователь подключен по WebSocket, ему уходит FORCE_LOGOUT
// и сессия закрывается: удаленный аккаунт не должен оставаться в эфире
type DeleteUserService struct {
	users out.UserRepository
	hub   *ws.Hub
	log   *logger.Logger
}

// NewDeleteUserService создает новый сервис
func NewDeleteUserService(users out.UserRepository, hub *ws.Hub, log *logger.Logger) *DeleteUserService {
	return &DeleteUserService{users: users, hub: hub, log: log}
}

// Execute удаляет пользователя и принудительно разлогинивает его
func (s *DeleteUserService) Execute(ctx context.Context, userID string) (*in.DeleteUserOutput, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return nil, fmt.Errorf("delete user: %w", err)
	}

	// Выбиваем живую сессию с прощальным сообщением
	farewell, _ := json.Marshal(map[string]string{
		"type":    dispatch.EventForceLogout,
		"message": "Your account has been deleted",
	})
	s.hub.DisconnectUser(userID, farewell)

	s.log.Info(logger.Entry{
		Action:  "user_deleted",
		Message: fmt.Sprintf("%s account %s deleted", user.Role, userID),
		Additional: map[string]any{
			"user_id": userID,
			"role":    user.Role,
		},
	})

	return &in.DeleteUserOutput{
		UserID:  userID,
		Role:    user.Role,
		Message: "User deleted successfully",
	}, nil
}
