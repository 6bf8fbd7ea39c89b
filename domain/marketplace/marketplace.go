package marketplace

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/x-market/goapi/base/ctx"
	"github.com/x-market/goapi/domain"
)

// ListingId identifies a listing by its collection contract and token id.
// At most one active listing exists per id.
type ListingId struct {
	Collection domain.Address `json:"collection" bson:"collection"`
	TokenId    domain.TokenId `json:"tokenId" bson:"tokenId"`
}

// Listing is an active fixed-price offer. Records are replaced wholesale,
// never mutated in place.
type Listing struct {
	Collection domain.Address  `json:"collection"`
	TokenId    domain.TokenId  `json:"tokenId"`
	Seller     domain.Address  `json:"seller"`
	Price      decimal.Decimal `json:"price"`
	ListedAt   time.Time       `json:"listedAt"`
}

func (l *Listing) ToId() ListingId {
	return ListingId{Collection: l.Collection, TokenId: l.TokenId}
}

// SearchResult is one page of listings plus the total count at read time
type SearchResult struct {
	Items []*Listing `json:"items"`
	Total int        `json:"total"`
}

// Store keeps the canonical listing records. It is a pure container with
// O(1) lookups; validation lives in the usecase. Implementations are not
// required to be goroutine safe, the usecase serializes access.
type Store interface {
	Put(c ctx.Ctx, listing *Listing)
	// Get returns domain.ErrNotFound if no listing exists for the id
	Get(c ctx.Ctx, id ListingId) (*Listing, error)
	// Remove is a no-op for an absent id
	Remove(c ctx.Ctx, id ListingId)
}

// Index is the two-level secondary index over listed tokens: the set of
// collections with at least one listing, and per collection the set of
// listed token ids. A collection is a member iff its token set is
// non-empty. Iteration order is stable within a single read but does not
// survive removals.
type Index interface {
	Add(c ctx.Ctx, id ListingId)
	Remove(c ctx.Ctx, id ListingId)
	Contains(c ctx.Ctx, id ListingId) bool
	// TotalCount is the number of listed tokens across all collections
	TotalCount(c ctx.Ctx) int
	Collections(c ctx.Ctx) []domain.Address
	TokenIds(c ctx.Ctx, collection domain.Address) []domain.TokenId
}

// Ownership is the external title registry for tokens. Queries are
// read-only; Transfer moves title and fails if from is not the current
// owner or the operator lacks approval.
type Ownership interface {
	OwnerOf(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId) (domain.Address, error)
	IsApproved(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId, operator domain.Address) (bool, error)
	Transfer(c ctx.Ctx, collection domain.Address, tokenId domain.TokenId, from, to domain.Address) error
}

// Payment moves funds between two accounts. A declined transfer is an
// ordinary error return, never a panic, so the usecase can translate it
// into domain.ErrPaymentFailed.
type Payment interface {
	TransferFunds(c ctx.Ctx, from, to domain.Address, amount decimal.Decimal) error
}

type Usecase interface {
	// List puts a token up for sale at a fixed positive price. The caller
	// must own the token and have approved the marketplace for transfer.
	List(c ctx.Ctx, caller domain.Address, id ListingId, price decimal.Decimal) error
	// Unlist removes the caller's own listing
	Unlist(c ctx.Ctx, caller domain.Address, id ListingId) error
	// Buy atomically exchanges payment for the listed token
	Buy(c ctx.Ctx, caller domain.Address, id ListingId) error

	GetListing(c ctx.Ctx, id ListingId) (*Listing, error)
	IsListed(c ctx.Ctx, id ListingId) bool
	// GetListings returns one page of active listings in index order,
	// flattened across collections
	GetListings(c ctx.Ctx, offset, limit int) (*SearchResult, error)
	TotalCount(c ctx.Ctx) int
}
