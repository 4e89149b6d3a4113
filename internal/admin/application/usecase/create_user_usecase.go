package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/admin/application/ports/in"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/admin/application/ports/out"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/admin/domain"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/logger"
)

// CreateUserService — провижининг учетных записей админом.
// Пароль выдается дефолтный, его меняют при первом входе во внешней
// системе аутентификации
type CreateUserService struct {
	users           out.UserRepository
	defaultPassword string
	log             *logger.Logger
}

// NewCreateUserService создает новый сервис
func NewCreateUserService(users out.UserRepository, defaultPassword string, log *logger.Logger) *CreateUserService {
	if defaultPassword == "" {
		defaultPassword = "123456"
	}
	return &CreateUserService{
		users:           users,
		defaultPassword: defaultPassword,
		log:             log,
	}
}

// Execute создает учетную запись; для водителя — вместе с профилем
func (s *CreateUserService) Execute(ctx context.Context, input in.CreateUserInput) (*in.CreateUserOutput, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)

	if name == "" || phone == "" {
		return nil, fmt.Errorf("%w: name and phone are required", domain.ErrValidation)
	}
	if input.Role != domain.RoleAdmin && input.Role != domain.RoleDriver {
		return nil, fmt.Errorf("%w: role must be admin or driver", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Phone:        phone,
		Email:        phone + "@dsk.com",
		Role:         input.Role,
		Status:       "active",
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	profileID, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info(logger.Entry{
		Action:  "user_created",
		Message: fmt.Sprintf("%s account created for %s", input.Role, phone),
		Additional: map[string]any{
			"user_id": user.ID,
			"role":    input.Role,
		},
	})

	return &in.CreateUserOutput{
		User:            user,
		DriverProfileID: profileID,
		DefaultPassword: s.defaultPassword,
		Message:         fmt.Sprintf("Account created. Share credentials: username=%s, password=%s", phone, s.defaultPassword),
	}, nil
}
