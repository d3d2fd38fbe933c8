package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/httptim/clientportal/internal/core/authz"
	"github.com/httptim/clientportal/internal/core/domain"
	"github.com/httptim/clientportal/internal/core/ports"
)

// UserService manages accounts. Listing, creating, updating and deleting are
// admin operations; Get additionally allows a customer to read their own row.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) List(ctx context.Context, id *authz.Identity, f ports.UserFilter) (*ports.ListResult[*domain.User], error) {
	if err := authz.RequireAdmin(id); err != nil {
		return nil, err
	}

	page := authz.NormalizePage(f.Page, f.Limit, authz.LimitCustomers)
	f.Page, f.Limit = page.Page, page.Limit

	users, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	return &ports.ListResult[*domain.User]{
		Items: users,
		Total: total,
		Page:  page.Page,
		Limit: page.Limit,
		Pages: authz.Pages(total, page.Limit),
	}, nil
}

func (s *UserService) Create(ctx context.Context, id *authz.Identity, in ports.CreateUserInput) (*domain.User, error) {
	if err := authz.RequireAdmin(id); err != nil {
		return nil, err
	}

	var missing []string
	if in.Name == "" {
		missing = append(missing, "name")
	}
	if in.Email == "" {
		missing = append(missing, "email")
	}
	if in.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, domain.MissingFields(missing...)
	}
	if !in.Role.Valid() {
		return nil, domain.NewValidationError("role must be one of: ADMIN, CUSTOMER")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		Company:      in.Company,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Role:         in.Role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user created")
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id *authz.Identity, userID string) (*domain.User, error) {
	if err := authz.RequireOwner(id, userID); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, userID)
}

func (s *UserService) Update(ctx context.Context, id *authz.Identity, userID string, in ports.UpdateUserInput) (*domain.User, error) {
	if err := authz.RequireAdmin(id); err != nil {
		return nil, err
	}

	if in.Name == nil && in.Email == nil && in.Company == nil && in.Phone == nil {
		return nil, domain.NewValidationError("no valid fields provided")
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Company != nil {
		user.Company = *in.Company
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes an account. Two guards beyond the admin gate: the caller may
// not delete themselves, and the last remaining admin may not be deleted.
func (s *UserService) Delete(ctx context.Context, id *authz.Identity, userID string) error {
	if err := authz.RequireAdmin(id); err != nil {
		return err
	}
	if id.ID == userID {
		return domain.ErrSelfDelete
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.Role == domain.RoleAdmin {
		admins, err := s.repo.CountByRole(ctx, domain.RoleAdmin)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return domain.ErrLastAdmin
		}
	}

	if owned, err := s.repo.CountOwned(ctx, userID); err != nil {
		return err
	} else if owned > 0 {
		return domain.NewValidationError("user still owns projects; reassign or delete them first")
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", userID).Str("deleted_by", id.ID).Msg("user deleted")
	return nil
}
