package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/models"
)

func TestSession_StateMachine(t *testing.T) {
	sess := NewSession(models.Customer{Name: "Sara"})
	assert.Equal(t, NotStarted, sess.State())
	assert.ErrorIs(t, sess.Add(product("Apple", "12.99"), 1), ErrSessionClosed)

	sess.StartShopping()
	assert.Equal(t, Selecting, sess.State())
	require.NoError(t, sess.Add(product("Apple", "12.99"), 1))
	require.NoError(t, sess.Add(product("Apple", "12.99"), 2))
	assert.Equal(t, 3, sess.Selection().Quantity(product("Apple", "12.99")))

	sess.StartShopping()
	assert.Equal(t, 1, sess.Selection().Len(), "restarting mid-run keeps the selection")

	assert.ErrorIs(t, sess.Add(product("Milk", "15.90"), 0), ErrInvalidQuantity)

	sess.finish(Saved)
	assert.ErrorIs(t, sess.Add(product("Milk", "15.90"), 1), ErrSessionClosed)

	sess.StartShopping()
	assert.True(t, sess.Selection().Empty(), "a new run starts fresh")
	assert.Equal(t, "selecting", sess.State().String())
}

func TestSession_AbandonDropsUnsavedRun(t *testing.T) {
	sess := NewSession(models.Customer{Name: "Sara"})
	sess.Abandon()
	assert.Equal(t, NotStarted, sess.State())

	sess.StartShopping()
	require.NoError(t, sess.Add(product("Apple", "12.99"), 2))

	sess.Abandon()
	assert.Equal(t, NotStarted, sess.State())
	assert.True(t, sess.Selection().Empty())
	assert.ErrorIs(t, sess.Add(product("Apple", "12.99"), 1), ErrSessionClosed)

	sess.StartShopping()
	assert.True(t, sess.Selection().Empty())

	require.NoError(t, sess.Add(product("Milk", "15.90"), 1))
	sess.finish(PaidOut)
	sess.Abandon()
	assert.Equal(t, PaidOut, sess.State(), "finished runs are left alone")
}
