// Package service contains the business logic layer: the account service
// and the catalog service. Handlers parse HTTP and delegate here; this
// layer decides, through internal/rules, whether a request is well-formed
// and authorized, then effects it through the repository interfaces.
//
// Services accept primitives and small input structs, never HTTP types,
// and return domain errors from internal/apperror — the handler layer owns
// the translation to status codes.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bfarias-dev/movienotes/internal/apperror"
	"github.com/bfarias-dev/movienotes/internal/auth"
	"github.com/bfarias-dev/movienotes/internal/model"
	"github.com/bfarias-dev/movienotes/internal/repository"
	"github.com/bfarias-dev/movienotes/internal/rules"
)

// UserService handles account registration, listing and profile updates.
type UserService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewUserService creates a UserService with all required dependencies.
func NewUserService(users repository.UserRepository, passwords *auth.PasswordService, logger *slog.Logger) *UserService {
	return &UserService{
		users:     users,
		passwords: passwords,
		logger:    logger,
	}
}

// List returns all accounts ordered lexically by name. The listing is
// intentionally public; handlers serialize only name and email.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// Get returns a single account by id. Absence is an error here — the same
// not-found discipline the catalog service applies to movies.
func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create registers a new account.
//
// Pipeline: presence of name, email and password first, then the email
// uniqueness check, then the password digest, then the insert. The digest
// is computed only after every check has passed.
func (s *UserService) Create(ctx context.Context, name, email, password string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if err := rules.Required(
		rules.Field{Name: "name", Value: name},
		rules.Field{Name: "email", Value: email},
		rules.Field{Name: "password", Value: password},
	); err != nil {
		return nil, err
	}

	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		s.logger.Error("failed to check email uniqueness", slog.String("error", err.Error()))
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if existing != nil {
		return nil, apperror.EmailAlreadyRegistered(email)
	}

	digest, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: digest,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		s.logger.Error("failed to create user",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user created",
		slog.Int64("id", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}

// UpdateUserInput carries the optional fields of an account update. A nil
// pointer means "leave unchanged".
type UpdateUserInput struct {
	Name        *string
	Email       *string
	Password    *string
	OldPassword *string
}

// Update merges the supplied fields into an existing account.
//
// Pipeline: the account must exist; a new email must not belong to a
// DIFFERENT account (re-submitting one's own email is fine); a new
// password requires the current one to verify against the stored digest.
// Unsupplied fields resolve to their current values.
func (s *UserService) Update(ctx context.Context, id int64, in UpdateUserInput) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		other, err := s.users.GetUserByEmail(ctx, email)
		if err != nil {
			s.logger.Error("failed to check email uniqueness", slog.String("error", err.Error()))
			return nil, fmt.Errorf("checking email: %w", err)
		}
		if other != nil && other.ID != user.ID {
			return nil, apperror.EmailAlreadyRegistered(email)
		}
		in.Email = &email
	}

	if err := rules.AuthorizePasswordChange(in.Password, in.OldPassword, user.Password, s.passwords); err != nil {
		return nil, err
	}

	user.Name = rules.Resolve(in.Name, user.Name)
	user.Email = rules.Resolve(in.Email, user.Email)
	if in.Password != nil {
		digest, err := s.passwords.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		user.Password = digest
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		s.logger.Error("failed to update user",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("user updated", slog.Int64("id", user.ID))

	return user, nil
}
