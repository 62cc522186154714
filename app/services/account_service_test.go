package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/validate"
)

func TestAccountService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewAccountService(newStore().Customers, PlainVerifier{})

	sess, err := svc.Register(ctx, "  Sara ", "123")
	require.NoError(t, err)
	assert.Equal(t, "Sara", sess.Customer.Name)
	assert.True(t, sess.Customer.TotalSpent.IsZero())
	assert.Equal(t, NotStarted, sess.State())

	sess, err = svc.Login(ctx, "sara", " 123 ")
	require.NoError(t, err)
	assert.Equal(t, "Sara", sess.Customer.Name, "session carries the stored name")

	ok, err := svc.Exists(ctx, "SARA")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAccountService_RegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	svc := NewAccountService(newStore().Customers, PlainVerifier{})

	_, err := svc.Register(ctx, "Jimmy", "456")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "JIMMY", "x")
	assert.True(t, errors.Is(err, ErrCustomerExists), "got %v", err)
}

func TestAccountService_RegisterRequiresNameAndPassword(t *testing.T) {
	svc := NewAccountService(newStore().Customers, PlainVerifier{})

	_, err := svc.Register(context.Background(), "   ", "")
	var verrs validate.Errors
	require.True(t, errors.As(err, &verrs), "got %v", err)
	assert.Contains(t, verrs, "name")
	assert.Contains(t, verrs, "password")
}

func TestAccountService_LoginFailures(t *testing.T) {
	ctx := context.Background()
	svc := NewAccountService(newStore().Customers, PlainVerifier{})
	_, err := svc.Register(ctx, "Alessia", "789")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "Alessia", "000")
	assert.True(t, errors.Is(err, ErrInvalidCredentials), "got %v", err)

	_, err = svc.Login(ctx, "Nobody", "789")
	assert.True(t, errors.Is(err, ErrInvalidCredentials), "got %v", err)
}

func TestAccountService_BcryptScheme(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	svc := NewAccountService(store.Customers, BcryptVerifier{})

	_, err := svc.Register(ctx, "Sara", "123")
	require.NoError(t, err)

	c, err := store.Customers.FindByName(ctx, "Sara")
	require.NoError(t, err)
	assert.NotEqual(t, "123", c.Password)

	_, err = svc.Login(ctx, "Sara", "123")
	assert.NoError(t, err)
}

func TestAccountService_Account(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	svc := NewAccountService(store.Customers, PlainVerifier{})

	sess, err := svc.Register(ctx, "Sara", "123")
	require.NoError(t, err)
	_, err = store.Customers.AddSpend(ctx, "Sara", dec("210"))
	require.NoError(t, err)

	view, err := svc.Account(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, "Sara", view.Name)
	assertDecimal(t, "210", view.TotalSpent)
	assert.Equal(t, TierSilver, view.Tier)
	assertDecimal(t, "210", sess.Customer.TotalSpent)
}
