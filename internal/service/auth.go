package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/shop_api/internal/events"
	"github.com/Skotchmaster/shop_api/internal/hash"
	"github.com/Skotchmaster/shop_api/internal/logging"
	"github.com/Skotchmaster/shop_api/internal/models"
	"github.com/Skotchmaster/shop_api/internal/repo"
	"github.com/Skotchmaster/shop_api/internal/tokens"
)

// AuthService creates accounts and exchanges credentials for access tokens.
type AuthService struct {
	Repo   AccountStore
	Tokens *tokens.Manager
	Events events.Publisher
}

type LoginResult struct {
	AccessToken string
	AccessExp   time.Time
	AccountID   uuid.UUID
}

func (s *AuthService) Signup(ctx context.Context, email, password string) (*models.Account, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signup")

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password required", ErrValidation)
	}
	if len(password) > hash.MaxPasswordBytes {
		return nil, fmt.Errorf("%w: password longer than %d bytes", ErrValidation, hash.MaxPasswordBytes)
	}

	existing, err := s.Repo.FindAccountByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if existing != nil {
		l.Warn("signup_rejected", "status", 409, "reason", "account exists")
		return nil, fmt.Errorf("%w: account exists", ErrConflict)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &models.Account{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: pwHash,
	}
	if err := s.Repo.CreateAccount(ctx, account); err != nil {
		// a concurrent signup won the race; the unique index caught it
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account exists", ErrConflict)
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	publish(ctx, s.Events, events.TopicUser, events.New("account_created", account.ID.String(), map[string]any{
		"email": account.Email,
	}))
	l.Info("signup_success", "account_id", account.ID)
	return account, nil
}

// Login fails with ErrAuthFailed for an unknown email and for a wrong password alike.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	email = strings.TrimSpace(email)
	if email == "" || password == "" || len(password) > hash.MaxPasswordBytes {
		hash.CheckDummy(password)
		l.Warn("login_failed", "status", 401, "reason", "unusable credentials")
		return nil, ErrAuthFailed
	}

	account, err := s.Repo.FindAccountByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if account == nil {
		hash.CheckDummy(password)
		l.Warn("login_failed", "status", 401, "reason", "unknown email")
		return nil, ErrAuthFailed
	}
	if !hash.CheckPassword(account.PasswordHash, password) {
		l.Warn("login_failed", "status", 401, "reason", "password mismatch", "account_id", account.ID)
		return nil, ErrAuthFailed
	}

	token, exp, err := s.Tokens.Issue(account.Email, account.ID.String())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	l.Info("login_success", "account_id", account.ID)
	return &LoginResult{AccessToken: token, AccessExp: exp, AccountID: account.ID}, nil
}

func (s *AuthService) GetAccount(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	account, err := s.Repo.GetAccount(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return account, nil
}

func (s *AuthService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteAccount(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("%w: account %s", ErrNotFound, id)
		}
		return fmt.Errorf("delete account: %w", err)
	}

	publish(ctx, s.Events, events.TopicUser, events.New("account_deleted", id.String(), nil))
	return nil
}
