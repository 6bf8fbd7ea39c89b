package repository

import (
	bCtx "github.com/x-market/goapi/base/ctx"
	"github.com/x-market/goapi/domain"
	"github.com/x-market/goapi/domain/marketplace"
)

// listingStore keeps the canonical listing records in memory, keyed by
// (collection, tokenId). It holds copies, never caller pointers, so a
// record can only change by being replaced through Put.
type listingStore struct {
	listings map[marketplace.ListingId]marketplace.Listing
}

func NewListingStore() marketplace.Store {
	return &listingStore{
		listings: map[marketplace.ListingId]marketplace.Listing{},
	}
}

func (s *listingStore) Put(c bCtx.Ctx, listing *marketplace.Listing) {
	s.listings[listing.ToId()] = *listing
}

func (s *listingStore) Get(c bCtx.Ctx, id marketplace.ListingId) (*marketplace.Listing, error) {
	listing, ok := s.listings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &listing, nil
}

func (s *listingStore) Remove(c bCtx.Ctx, id marketplace.ListingId) {
	delete(s.listings, id)
}
