package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/models"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/repositories"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/logger"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/validate"
)

type credentialsInput struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=72"`
}

// AccountView is what the account screen shows.
type AccountView struct {
	Name       string
	TotalSpent decimal.Decimal
	Tier       Tier
}

type AccountService struct {
	customers repositories.CustomerRepository
	verifier  CredentialVerifier
}

func NewAccountService(customers repositories.CustomerRepository, verifier CredentialVerifier) *AccountService {
	return &AccountService{customers: customers, verifier: verifier}
}

// Register creates a customer with zero spend and opens a session for it.
func (s *AccountService) Register(ctx context.Context, name, password string) (*Session, error) {
	const op = "AccountService.Register"

	in := credentialsInput{Name: strings.TrimSpace(name), Password: password}
	if err := validate.Check(in); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err := s.customers.FindByName(ctx, in.Name)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%s: %w", op, ErrCustomerExists)
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stored, err := s.verifier.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c := models.Customer{Name: in.Name, Password: stored, TotalSpent: decimal.Zero}
	if err := s.customers.Insert(ctx, c); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			err = ErrCustomerExists
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.WithCtx(ctx).Info("customer registered", "op", op, "customer", c.Name)
	return NewSession(c), nil
}

// Login checks the credentials and opens a session. An unknown name and a
// wrong password both yield ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, name, password string) (*Session, error) {
	const op = "AccountService.Login"

	in := credentialsInput{Name: strings.TrimSpace(name), Password: password}
	if err := validate.Check(in); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c, err := s.customers.FindByName(ctx, in.Name)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !s.verifier.Verify(c.Password, in.Password) {
		logger.WithCtx(ctx).Warn("login rejected", "op", op, "customer", c.Name)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	return NewSession(c), nil
}

// Exists reports whether a customer named name is registered.
func (s *AccountService) Exists(ctx context.Context, name string) (bool, error) {
	_, err := s.customers.FindByName(ctx, strings.TrimSpace(name))
	if errors.Is(err, repositories.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Account re-reads the session's customer and reports spend and tier.
func (s *AccountService) Account(ctx context.Context, sess *Session) (AccountView, error) {
	const op = "AccountService.Account"

	c, err := s.customers.FindByName(ctx, sess.Customer.Name)
	if errors.Is(err, repositories.ErrNotFound) {
		return AccountView{}, fmt.Errorf("%s: %w", op, ErrCustomerNotFound)
	}
	if err != nil {
		return AccountView{}, fmt.Errorf("%s: %w", op, err)
	}

	sess.Customer.TotalSpent = c.TotalSpent
	return AccountView{Name: c.Name, TotalSpent: c.TotalSpent, Tier: TierFor(c.TotalSpent)}, nil
}
