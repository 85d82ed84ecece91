package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisstore "github.com/sjtrotter/dashbuddy/pkg/adapters/redis"
	"github.com/sjtrotter/dashbuddy/pkg/domain"
)

func newTestStore(t *testing.T) *redisstore.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redisstore.NewStore(client, "dashbuddy:")
}

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	pay := 14.50
	state := domain.State{
		Kind:      domain.StateOfferPresented,
		SessionID: "01J0ABCDEF",
		OfferHash: "aaaa",
		Merchant:  "Burger Spot",
		Amount:    &pay,
	}

	require.NoError(t, store.Save(ctx, "active", state))

	got, err := store.Load(ctx, "active")
	require.NoError(t, err)
	assert.Equal(t, state.Kind, got.Kind)
	assert.Equal(t, state.SessionID, got.SessionID)
	assert.Equal(t, state.OfferHash, got.OfferHash)
	require.NotNil(t, got.Amount)
	assert.Equal(t, 14.50, *got.Amount)
}

func TestStoreLoadMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load(context.Background(), "active")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStoreDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "active", domain.State{Kind: domain.StateAwaitingOffer, SessionID: "s1"}))
	require.NoError(t, store.Delete(ctx, "active"))

	_, err := store.Load(ctx, "active")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// Deleting an absent slot is not an error.
	assert.NoError(t, store.Delete(ctx, "active"))
}

func TestStoreOverwrite(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "active", domain.State{Kind: domain.StateAwaitingOffer, SessionID: "s1"}))
	require.NoError(t, store.Save(ctx, "active", domain.State{Kind: domain.StateOnPickup, SessionID: "s1", StoreName: "Burger Spot"}))

	got, err := store.Load(ctx, "active")
	require.NoError(t, err)
	assert.Equal(t, domain.StateOnPickup, got.Kind)
	assert.Equal(t, "Burger Spot", got.StoreName)
}
