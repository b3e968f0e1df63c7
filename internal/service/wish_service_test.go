package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gift-service/internal/core/apperr"
)

func newWishFixture(t *testing.T) (*memStore, *WishService) {
	t.Helper()
	st := newMemStore()
	return st, NewWishService(&memWishRepo{st}, nil, time.Second)
}

func TestWishCreate(t *testing.T) {
	ctx := context.Background()
	st, svc := newWishFixture(t)
	owner := st.seedUser("alice", "alice@example.com")

	w, err := svc.Create(ctx, owner.ID, CreateWishInput{
		Name:  "camera",
		Price: decimal.RequireFromString("199.99"),
	})
	require.NoError(t, err)
	assert.NotZero(t, w.ID)
	assert.Equal(t, owner.ID, w.OwnerID)
	assert.True(t, w.Raised.IsZero(), "new wish starts with nothing raised")

	_, err = svc.Create(ctx, owner.ID, CreateWishInput{
		Name:  "bad",
		Price: decimal.RequireFromString("-1.00"),
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestWishUpdateOwnerOnly(t *testing.T) {
	ctx := context.Background()
	st, svc := newWishFixture(t)
	owner := st.seedUser("alice", "alice@example.com")
	other := st.seedUser("bob", "bob@example.com")
	w := st.seedWish(owner.ID, "camera", "100.00")

	name := "camera pro"
	got, err := svc.Update(ctx, w.ID, owner.ID, UpdateWishInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "camera pro", got.Name)

	_, err = svc.Update(ctx, w.ID, other.ID, UpdateWishInput{Name: &name})
	require.Error(t, err)
	assert.True(t, apperr.IsForbidden(err))

	_, err = svc.Update(ctx, 9999, owner.ID, UpdateWishInput{Name: &name})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

// 有人出资后连 owner 也改不了
func TestWishUpdateFrozenAfterFunding(t *testing.T) {
	ctx := context.Background()
	st, svc := newWishFixture(t)
	owner := st.seedUser("alice", "alice@example.com")
	backer := st.seedUser("bob", "bob@example.com")
	w := st.seedWish(owner.ID, "camera", "100.00")

	offerSvc := NewOfferService(&memOfferRepo{st}, &memWishRepo{st})
	_, err := offerSvc.Create(ctx, backer.ID, CreateOfferInput{
		ItemID: w.ID,
		Amount: decimal.RequireFromString("1.00"),
	})
	require.NoError(t, err)

	name := "camera pro"
	_, err = svc.Update(ctx, w.ID, owner.ID, UpdateWishInput{Name: &name})
	require.Error(t, err)
	assert.True(t, apperr.IsForbidden(err))
}

func TestWishDelete(t *testing.T) {
	ctx := context.Background()
	st, svc := newWishFixture(t)
	owner := st.seedUser("alice", "alice@example.com")
	other := st.seedUser("bob", "bob@example.com")
	w := st.seedWish(owner.ID, "camera", "100.00")

	err := svc.Delete(ctx, w.ID, other.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsForbidden(err))

	require.NoError(t, svc.Delete(ctx, w.ID, owner.ID))

	_, err = svc.Get(ctx, w.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

// 复制：副本归新 owner、筹资清零、源 copied+1、副本 copied=0
func TestWishCopy(t *testing.T) {
	ctx := context.Background()
	st, svc := newWishFixture(t)
	owner := st.seedUser("alice", "alice@example.com")
	copier := st.seedUser("bob", "bob@example.com")
	w := st.seedWish(owner.ID, "camera", "100.00")

	offerSvc := NewOfferService(&memOfferRepo{st}, &memWishRepo{st})
	_, err := offerSvc.Create(ctx, copier.ID, CreateOfferInput{
		ItemID: w.ID,
		Amount: decimal.RequireFromString("60.00"),
	})
	require.NoError(t, err)

	clone, err := svc.Copy(ctx, w.ID, copier.ID)
	require.NoError(t, err)
	assert.NotEqual(t, w.ID, clone.ID)
	assert.Equal(t, copier.ID, clone.OwnerID)
	assert.Equal(t, w.Name, clone.Name)
	assert.True(t, clone.Price.Equal(w.Price))
	assert.True(t, clone.Raised.IsZero(), "copy starts unfunded")
	assert.Equal(t, 0, clone.Copied)

	src, err := svc.Get(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, src.Copied)
	assert.True(t, src.Raised.Equal(decimal.RequireFromString("60.00")), "source funding untouched")

	_, err = svc.Copy(ctx, 9999, copier.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestWishFeeds(t *testing.T) {
	ctx := context.Background()
	st, svc := newWishFixture(t)
	owner := st.seedUser("alice", "alice@example.com")

	a := st.seedWish(owner.ID, "a", "10.00")
	b := st.seedWish(owner.ID, "b", "10.00")
	c := st.seedWish(owner.ID, "c", "10.00")

	st.mu.Lock()
	st.wishes[b.ID].Copied = 5
	st.wishes[a.ID].Copied = 2
	st.mu.Unlock()

	recent, err := svc.Recent(ctx)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, c.ID, recent[0].ID)

	popular, err := svc.Popular(ctx)
	require.NoError(t, err)
	require.Len(t, popular, 3)
	assert.Equal(t, b.ID, popular[0].ID)
	assert.Equal(t, a.ID, popular[1].ID)
}

func TestWishSearch(t *testing.T) {
	ctx := context.Background()
	st, svc := newWishFixture(t)
	owner := st.seedUser("alice", "alice@example.com")
	st.seedWish(owner.ID, "Film Camera", "10.00")
	st.seedWish(owner.ID, "Tripod", "10.00")

	byName, err := svc.SearchByName(ctx, "camera")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Film Camera", byName[0].Name)

	none, err := svc.SearchByName(ctx, "drone")
	require.NoError(t, err)
	assert.Empty(t, none)
}
