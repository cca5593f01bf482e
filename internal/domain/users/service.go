package users

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"mochini/internal/core/apperror"
	"mochini/internal/core/id"
	"mochini/internal/domain"
	"mochini/pkg/logger"
)

// Service manages users and their credentials.
type Service struct {
	repo *domain.Repository[*User]
}

// NewService creates a user service.
func NewService(repo *domain.Repository[*User]) *Service {
	return &Service{repo: repo}
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

// GetByID returns one user.
func (s *Service) GetByID(ctx context.Context, userID id.ID) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

// Create validates and stores a new user.
func (s *Service) Create(ctx context.Context, u *User) error {
	if err := u.Validate(ctx); err != nil {
		return err
	}
	if _, err := s.repo.Add(ctx, u); err != nil {
		return err
	}
	logger.Info(ctx, "user created", "id", u.ID, "nombre", u.Nombre, "rol", u.Rol)
	return nil
}

// Update validates and replaces a user.
func (s *Service) Update(ctx context.Context, u *User) error {
	if err := u.Validate(ctx); err != nil {
		return err
	}
	_, err := s.repo.Update(ctx, u)
	return err
}

// Delete removes a user.
func (s *Service) Delete(ctx context.Context, userID id.ID) error {
	return s.repo.Remove(ctx, userID)
}

// SetPassword hashes and stores a new login password.
func (s *Service) SetPassword(ctx context.Context, u *User, password string) error {
	if len(password) < 4 {
		return apperror.NewValidation("password must be at least 4 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperror.NewInternal(err)
	}
	u.PasswordHash = string(hash)
	return nil
}

// SetPIN hashes and stores a new authorization PIN.
func (s *Service) SetPIN(ctx context.Context, u *User, pin string) error {
	if len(pin) < 4 {
		return apperror.NewValidation("pin must be at least 4 digits")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return apperror.NewInternal(err)
	}
	u.PINHash = string(hash)
	return nil
}

// Authenticate checks a name/password pair and returns the matching active
// user, or UNAUTHORIZED.
func (s *Service) Authenticate(ctx context.Context, nombre, password string) (*User, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range all {
		if u.Nombre != nombre || !u.Activo || u.PasswordHash == "" {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil {
			return u, nil
		}
	}
	return nil, apperror.NewUnauthorized("invalid credentials")
}

// AuthorizePIN finds the active user whose PIN matches. Sensitive operations
// such as stock transfers gate on this.
func (s *Service) AuthorizePIN(ctx context.Context, pin string) (*User, error) {
	if pin == "" {
		return nil, apperror.NewUnauthorized("authorization pin required")
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range all {
		if !u.Activo || u.PINHash == "" {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PINHash), []byte(pin)) == nil {
			return u, nil
		}
	}
	return nil, apperror.NewUnauthorized("invalid authorization pin")
}
