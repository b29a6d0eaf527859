package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/cemetery-console/internal/models"
	"github.com/noah-isme/cemetery-console/internal/viewmodel"
	appErrors "github.com/noah-isme/cemetery-console/pkg/errors"
)

type userRepository interface {
	Register(ctx context.Context, in models.UserInput) error
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id int64, in models.UserInput) error
	Delete(ctx context.Context, id int64) error
}

// UserFilter narrows the users table.
type UserFilter struct {
	Query    string `form:"q"`
	Role     string `form:"role"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// UserService handles operator account management through the auth service.
type UserService struct {
	repo      userRepository
	validator *validator.Validate
	logger    *zap.Logger
	pageSize  int
}

// NewUserService creates an instance of UserService.
func NewUserService(repo userRepository, validate *validator.Validate, pageSize int, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if pageSize <= 0 {
		pageSize = viewmodel.DefaultPageSize
	}
	return &UserService{repo: repo, validator: validate, logger: logger, pageSize: pageSize}
}

// RoleLabel is the short role name shown in tables ("ROLE_ADMIN" and "ADMIN" both read "Admin").
func RoleLabel(role string) string {
	short := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(role)), "ROLE_")
	if short == "" {
		return "Usuario"
	}
	return short[:1] + strings.ToLower(short[1:])
}

// List returns one page of users matching filter.
func (s *UserService) List(ctx context.Context, filter UserFilter) (viewmodel.Page[models.User], error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return viewmodel.Page[models.User]{}, err
	}

	role := ""
	if filter.Role != "" {
		role = RoleLabel(filter.Role)
	}
	filtered := viewmodel.Filter(users, func(u models.User) bool {
		if role != "" && RoleLabel(u.Role) != role {
			return false
		}
		return viewmodel.Matches(filter.Query, u.Username, u.Email, u.IdentificationNumber)
	})

	size := filter.PageSize
	if size <= 0 {
		size = s.pageSize
	}
	return viewmodel.Paginate(filtered, filter.Page, size), nil
}

// Register creates an operator account. A password is mandatory.
func (s *UserService) Register(ctx context.Context, in models.UserInput) error {
	in = trimUserInput(in)
	if err := s.validator.Struct(in); err != nil {
		return validationError(err)
	}
	if in.Password == "" {
		return appErrors.Clone(appErrors.ErrValidation, "Complete correctamente los campos: Password")
	}
	if err := s.repo.Register(ctx, in); err != nil {
		s.logger.Warn("register user failed", zap.String("username", in.Username), zap.Error(err))
		return err
	}
	s.logger.Info("user registered", zap.String("username", in.Username))
	return nil
}

// Update changes an account. An empty password keeps the current one.
func (s *UserService) Update(ctx context.Context, id int64, in models.UserInput) error {
	if id <= 0 {
		return appErrors.Clone(appErrors.ErrValidation, "Identificador de usuario inválido")
	}
	in = trimUserInput(in)
	if err := s.validator.Struct(in); err != nil {
		return validationError(err)
	}
	if err := s.repo.Update(ctx, id, in); err != nil {
		s.logger.Warn("update user failed", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

// Delete removes an account.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return appErrors.Clone(appErrors.ErrValidation, "Identificador de usuario inválido")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Warn("delete user failed", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

func trimUserInput(in models.UserInput) models.UserInput {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.IdentificationNumber = strings.TrimSpace(in.IdentificationNumber)
	return in
}
