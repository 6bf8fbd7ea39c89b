package usecase

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	bCtx "github.com/x-market/goapi/base/ctx"
	"github.com/x-market/goapi/base/log"
	"github.com/x-market/goapi/domain"
	"github.com/x-market/goapi/domain/marketplace"
)

type MarketplaceUsecaseCfg struct {
	Store     marketplace.Store
	Index     marketplace.Index
	Ownership marketplace.Ownership
	Payment   marketplace.Payment
	Notifier  marketplace.Notifier
	// Operator is the account sellers approve for transfers, usually the
	// marketplace signer address
	Operator domain.Address
}

// impl orchestrates list / unlist / buy over the store and index.
//
// Two locks with distinct jobs: mu serializes store+index access so a
// commit is one unit, and gate protects the busy flag that rejects
// nested calls. The flag cannot live under mu because buy holds no lock
// across the external payment and ownership calls, which may call back
// into the engine.
type impl struct {
	store     marketplace.Store
	index     marketplace.Index
	ownership marketplace.Ownership
	payment   marketplace.Payment
	notifier  marketplace.Notifier
	operator  domain.Address

	mu   sync.RWMutex
	gate sync.Mutex
	busy bool
}

func NewMarketplaceUsecase(cfg *MarketplaceUsecaseCfg) marketplace.Usecase {
	return &impl{
		store:     cfg.Store,
		index:     cfg.Index,
		ownership: cfg.Ownership,
		payment:   cfg.Payment,
		notifier:  cfg.Notifier,
		operator:  cfg.Operator,
	}
}

// enter claims the engine for one mutating operation. Callers must pair
// it with exit on every return path.
func (im *impl) enter() error {
	im.gate.Lock()
	defer im.gate.Unlock()
	if im.busy {
		return domain.ErrReentrancy
	}
	im.busy = true
	return nil
}

func (im *impl) exit() {
	im.gate.Lock()
	im.busy = false
	im.gate.Unlock()
}

func (im *impl) List(c bCtx.Ctx, caller domain.Address, id marketplace.ListingId, price decimal.Decimal) error {
	if err := im.enter(); err != nil {
		c.WithFields(log.Fields{
			"collection": id.Collection,
			"tokenId":    id.TokenId,
		}).Warn("rejected reentrant list")
		return err
	}
	defer im.exit()

	if !price.IsPositive() {
		return domain.ErrInvalidPrice
	}

	owner, err := im.ownership.OwnerOf(c, id.Collection, id.TokenId)
	if err != nil {
		c.WithField("err", err).Error("ownership.OwnerOf failed")
		return err
	}
	if !owner.Equals(caller) {
		return domain.ErrNotOwner
	}

	approved, err := im.ownership.IsApproved(c, id.Collection, id.TokenId, im.operator)
	if err != nil {
		c.WithField("err", err).Error("ownership.IsApproved failed")
		return err
	}
	if !approved {
		return domain.ErrNotApproved
	}

	listing := &marketplace.Listing{
		Collection: id.Collection,
		TokenId:    id.TokenId,
		Seller:     caller,
		Price:      price,
		ListedAt:   time.Now(),
	}

	im.mu.Lock()
	im.store.Put(c, listing)
	im.index.Add(c, id)
	im.mu.Unlock()

	im.notifier.NotifyListed(c, &marketplace.ListedEvent{
		Seller:     caller,
		Collection: id.Collection,
		TokenId:    id.TokenId,
		Price:      price,
	})
	return nil
}

func (im *impl) Unlist(c bCtx.Ctx, caller domain.Address, id marketplace.ListingId) error {
	if err := im.enter(); err != nil {
		c.WithFields(log.Fields{
			"collection": id.Collection,
			"tokenId":    id.TokenId,
		}).Warn("rejected reentrant unlist")
		return err
	}
	defer im.exit()

	im.mu.Lock()
	defer im.mu.Unlock()

	listing, err := im.store.Get(c, id)
	if err != nil {
		// absent listing and wrong seller are deliberately the same error
		return domain.ErrNotSeller
	}
	if !listing.Seller.Equals(caller) {
		return domain.ErrNotSeller
	}

	im.store.Remove(c, id)
	im.index.Remove(c, id)

	im.notifier.NotifyUnlisted(c, &marketplace.UnlistedEvent{
		Seller:     listing.Seller,
		Collection: id.Collection,
		TokenId:    id.TokenId,
	})
	return nil
}

func (im *impl) Buy(c bCtx.Ctx, caller domain.Address, id marketplace.ListingId) error {
	if err := im.enter(); err != nil {
		c.WithFields(log.Fields{
			"collection": id.Collection,
			"tokenId":    id.TokenId,
		}).Warn("rejected reentrant buy")
		return err
	}
	defer im.exit()

	im.mu.RLock()
	listing, err := im.store.Get(c, id)
	im.mu.RUnlock()
	if err != nil {
		return domain.ErrNotListed
	}
	if listing.Seller.Equals(caller) {
		return domain.ErrSelfPurchase
	}

	// payment strictly before the ownership transfer, so a declined
	// payment never moves the item
	if err := im.payment.TransferFunds(c, caller, listing.Seller, listing.Price); err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"buyer":  caller,
			"seller": listing.Seller,
			"price":  listing.Price,
		}).Warn("payment.TransferFunds failed")
		return domain.ErrPaymentFailed
	}

	if err := im.ownership.Transfer(c, id.Collection, id.TokenId, listing.Seller, caller); err != nil {
		c.WithFields(log.Fields{
			"err":        err,
			"collection": id.Collection,
			"tokenId":    id.TokenId,
		}).Error("ownership.Transfer failed")
		// give the funds back so an aborted purchase leaves nothing moved
		if rerr := im.payment.TransferFunds(c, listing.Seller, caller, listing.Price); rerr != nil {
			c.WithFields(log.Fields{
				"err":   rerr,
				"buyer": caller,
				"price": listing.Price,
			}).Error("refund after failed transfer also failed")
		}
		return err
	}

	im.mu.Lock()
	im.store.Remove(c, id)
	im.index.Remove(c, id)
	im.mu.Unlock()

	im.notifier.NotifyPurchased(c, &marketplace.PurchasedEvent{
		Buyer:      caller,
		Seller:     listing.Seller,
		Collection: id.Collection,
		TokenId:    id.TokenId,
		Price:      listing.Price,
	})
	return nil
}

func (im *impl) GetListing(c bCtx.Ctx, id marketplace.ListingId) (*marketplace.Listing, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.store.Get(c, id)
}

func (im *impl) IsListed(c bCtx.Ctx, id marketplace.ListingId) bool {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.index.Contains(c, id)
}

func (im *impl) TotalCount(c bCtx.Ctx) int {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.index.TotalCount(c)
}

// GetListings flattens the two-level index into one page. The page is a
// point-in-time view, not a stable cursor across calls.
func (im *impl) GetListings(c bCtx.Ctx, offset, limit int) (*marketplace.SearchResult, error) {
	if offset < 0 || limit < 0 {
		return nil, domain.ErrBadParamInput
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	total := im.index.TotalCount(c)
	size := total - offset
	if size > limit {
		size = limit
	}
	if size < 0 {
		size = 0
	}

	res := &marketplace.SearchResult{
		Items: make([]*marketplace.Listing, 0, size),
		Total: total,
	}
	if size == 0 {
		return res, nil
	}

	skipped := 0
	for _, collection := range im.index.Collections(c) {
		for _, tokenId := range im.index.TokenIds(c, collection) {
			if skipped < offset {
				skipped++
				continue
			}
			id := marketplace.ListingId{Collection: collection, TokenId: tokenId}
			listing, err := im.store.Get(c, id)
			if err != nil {
				// the index and store commit together, a miss here is a bug
				c.WithFields(log.Fields{
					"collection": collection,
					"tokenId":    tokenId,
				}).Error("indexed listing missing from store")
				return nil, domain.ErrInternalServerError
			}
			res.Items = append(res.Items, listing)
			if len(res.Items) == size {
				return res, nil
			}
		}
	}
	return res, nil
}
