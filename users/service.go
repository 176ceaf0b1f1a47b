package users

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-guard/core"
)

type Config struct {
	Store  core.UserStore
	Issuer core.CredentialIssuer
	Hasher *Hasher
	Logger core.Logger
}

type Service struct {
	store  core.UserStore
	issuer core.CredentialIssuer
	hasher *Hasher
	logger core.Logger
}

func NewService(cfg Config) (*Service, error) {
	if cfg.Store == nil {
		return nil, usersOperation(nil, "users: store is required")
	}
	if cfg.Issuer == nil {
		return nil, usersOperation(nil, "users: credential issuer is required")
	}
	if cfg.Hasher == nil {
		return nil, usersOperation(nil, "users: hasher is required")
	}
	return &Service{
		store:  cfg.Store,
		issuer: cfg.Issuer,
		hasher: cfg.Hasher,
		logger: glog.Ensure(cfg.Logger),
	}, nil
}

// Register creates the account and signs a credential for it in one step.
func (s *Service) Register(ctx context.Context, in core.CreateUserInput) (core.User, string, error) {
	if s == nil {
		return core.User{}, "", usersOperation(nil, "users: service is not configured")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return core.User{}, "", usersBadInput("A valid email is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return core.User{}, "", usersBadInput("Name is required")
	}
	if len(in.Password) < 8 {
		return core.User{}, "", usersBadInput("Password must be at least 8 characters")
	}

	_, exists, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return core.User{}, "", usersOperation(err, "users: email lookup failed")
	}
	if exists {
		return core.User{}, "", usersBadInput("User with this email already exists")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return core.User{}, "", usersOperation(err, "users: password hashing failed")
	}

	created, err := s.store.Create(ctx, core.CreateUserInput{Email: email, Name: in.Name}, hash)
	if err != nil {
		return core.User{}, "", usersOperation(err, "users: account creation failed")
	}

	token, err := s.issuer.Issue(created.ID, created.Role)
	if err != nil {
		return core.User{}, "", usersOperation(err, "users: credential issuance failed")
	}

	s.logger.WithContext(ctx).Info("user registered", "user_id", created.ID)
	return created, token, nil
}

// Login checks the account exists, is not blocked, and that the password
// matches, then signs a fresh credential.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	if s == nil {
		return "", usersOperation(nil, "users: service is not configured")
	}

	user, found, err := s.store.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", usersOperation(err, "users: email lookup failed")
	}
	if !found {
		return "", usersBadInput("This user does not exist")
	}
	if !user.Active {
		return "", usersBadInput("This user is blocked")
	}
	if !s.hasher.Compare(user.PasswordHash, password) {
		return "", usersUnauthenticated("Invalid credentials")
	}

	token, err := s.issuer.Issue(user.ID, user.Role)
	if err != nil {
		return "", usersOperation(err, "users: credential issuance failed")
	}
	return token, nil
}

func (s *Service) Get(ctx context.Context, id string) (core.User, error) {
	if s == nil {
		return core.User{}, usersOperation(nil, "users: service is not configured")
	}
	user, found, err := s.store.GetByID(ctx, id)
	if err != nil {
		return core.User{}, usersOperation(err, "users: lookup failed")
	}
	if !found {
		return core.User{}, usersNotFound("User not found")
	}
	return user, nil
}

func (s *Service) List(ctx context.Context, filter core.UserFilter) ([]core.User, error) {
	if s == nil {
		return nil, usersOperation(nil, "users: service is not configured")
	}
	listed, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, usersOperation(err, "users: list failed")
	}
	return listed, nil
}

func (s *Service) Update(ctx context.Context, id string, in core.UpdateUserInput) (core.User, error) {
	if s == nil {
		return core.User{}, usersOperation(nil, "users: service is not configured")
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return core.User{}, err
	}

	if email := strings.ToLower(strings.TrimSpace(in.Email)); email != "" && email != current.Email {
		_, taken, err := s.store.GetByEmail(ctx, email)
		if err != nil {
			return core.User{}, usersOperation(err, "users: email lookup failed")
		}
		if taken {
			return core.User{}, usersConflict("User with this email already exists")
		}
	}

	updated, err := s.store.Update(ctx, id, in)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.User{}, usersNotFound("User not found")
		}
		return core.User{}, usersOperation(err, "users: update failed")
	}
	return updated, nil
}

// Block flips the account's active flag. Blocked accounts fail the active
// gate on their next request.
func (s *Service) Block(ctx context.Context, id string, active bool) (core.User, error) {
	if s == nil {
		return core.User{}, usersOperation(nil, "users: service is not configured")
	}
	updated, err := s.store.SetActive(ctx, id, active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.User{}, usersNotFound("User not found")
		}
		return core.User{}, usersOperation(err, "users: block failed")
	}
	s.logger.WithContext(ctx).Info("user active flag changed", "user_id", updated.ID, "active", active)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if s == nil {
		return usersOperation(nil, "users: service is not configured")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return usersNotFound("User not found")
		}
		return usersOperation(err, "users: delete failed")
	}
	return nil
}
