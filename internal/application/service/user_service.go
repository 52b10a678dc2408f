package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/restopos/backoffice/internal/domain/entity"
	"github.com/restopos/backoffice/internal/domain/enum"
	"github.com/restopos/backoffice/internal/domain/repository"
	"github.com/restopos/backoffice/pkg/apperror"
	"github.com/restopos/backoffice/pkg/utils"
)

// UserService handles operator account management. All mutations are
// admin only.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func requireAdmin(ctx context.Context) error {
	op, ok := OperatorFromContext(ctx)
	if !ok {
		return apperror.ErrUnauthorized
	}
	if !op.IsAdmin() {
		return apperror.ErrForbidden
	}
	return nil
}

// CreateUserInput represents the create user input
type CreateUserInput struct {
	Username string
	FullName string
	Password string
	Role     enum.Role
}

// CreateUser creates a new operator account
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if !input.Role.Valid() {
		return nil, apperror.NewBadRequestError("Invalid role")
	}

	existing, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Username already taken")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:     input.Username,
		FullName:     input.FullName,
		PasswordHash: hashed,
		Role:         input.Role,
		Active:       true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves an operator account by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// ListUsers lists operator accounts
func (s *UserService) ListUsers(ctx context.Context, includeInactive bool) ([]entity.User, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx, includeInactive)
}

// UpdateUserInput represents the update user input
type UpdateUserInput struct {
	FullName *string
	Password *string
	Role     *enum.Role
	Active   *bool
}

// UpdateUser updates an operator account
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, input *UpdateUserInput) (*entity.User, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Password != nil {
		hashed, err := utils.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, apperror.NewBadRequestError("Invalid role")
		}
		user.Role = *input.Role
	}
	if input.Active != nil {
		user.Active = *input.Active
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser soft deletes an operator account. Committed orders keep
// their cashier reference.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	op, _ := OperatorFromContext(ctx)
	if op.ID == id {
		return apperror.NewBadRequestError("Cannot delete your own account")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}
	return s.userRepo.Delete(ctx, id)
}
