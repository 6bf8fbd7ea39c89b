package repository

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	bCtx "github.com/x-market/goapi/base/ctx"
	"github.com/x-market/goapi/domain"
	"github.com/x-market/goapi/domain/marketplace"
)

func TestListingStore(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	store := NewListingStore()

	id := marketplace.ListingId{Collection: "0xa", TokenId: "1"}

	_, err := store.Get(ctx, id)
	req.ErrorIs(err, domain.ErrNotFound)

	listing := &marketplace.Listing{
		Collection: "0xa",
		TokenId:    "1",
		Seller:     "0xseller",
		Price:      decimal.NewFromInt(10),
		ListedAt:   time.Now(),
	}
	store.Put(ctx, listing)

	got, err := store.Get(ctx, id)
	req.NoError(err)
	req.Equal(listing.Seller, got.Seller)
	req.True(listing.Price.Equal(got.Price))

	// records are copied in, mutating the argument afterwards must not
	// leak into the store
	listing.Seller = "0xother"
	got, err = store.Get(ctx, id)
	req.NoError(err)
	req.Equal(domain.Address("0xseller"), got.Seller)

	// replace wholesale
	store.Put(ctx, &marketplace.Listing{
		Collection: "0xa",
		TokenId:    "1",
		Seller:     "0xseller",
		Price:      decimal.NewFromInt(20),
	})
	got, err = store.Get(ctx, id)
	req.NoError(err)
	req.True(decimal.NewFromInt(20).Equal(got.Price))

	store.Remove(ctx, id)
	_, err = store.Get(ctx, id)
	req.ErrorIs(err, domain.ErrNotFound)

	// removing again is a no-op
	store.Remove(ctx, id)
}
