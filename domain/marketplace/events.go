package marketplace

import (
	"github.com/shopspring/decimal"
	"github.com/x-market/goapi/base/ctx"
	"github.com/x-market/goapi/domain"
)

type ListedEvent struct {
	Seller     domain.Address
	Collection domain.Address
	TokenId    domain.TokenId
	Price      decimal.Decimal
}

type PurchasedEvent struct {
	Buyer      domain.Address
	Seller     domain.Address
	Collection domain.Address
	TokenId    domain.TokenId
	Price      decimal.Decimal
}

type UnlistedEvent struct {
	Seller     domain.Address
	Collection domain.Address
	TokenId    domain.TokenId
}

// Notifier receives marketplace events after the state change committed.
// Delivery is fire-and-forget, an implementation must not fail the
// operation that produced the event.
type Notifier interface {
	NotifyListed(c ctx.Ctx, e *ListedEvent)
	NotifyPurchased(c ctx.Ctx, e *PurchasedEvent)
	NotifyUnlisted(c ctx.Ctx, e *UnlistedEvent)
}
