package usecase

import (
	"time"

	"github.com/google/uuid"

	bCtx "github.com/x-market/goapi/base/ctx"
	"github.com/x-market/goapi/base/log"
	"github.com/x-market/goapi/domain/activity"
	"github.com/x-market/goapi/domain/marketplace"
)

type impl struct {
	repo activity.Repo
}

// New returns the activity usecase. It doubles as a marketplace event
// subscriber so every listing change leaves a history row.
func New(repo activity.Repo) activity.Usecase {
	return &impl{repo: repo}
}

// NewRecorder exposes the same implementation as a marketplace.Notifier
func NewRecorder(repo activity.Repo) marketplace.Notifier {
	return &impl{repo: repo}
}

func (im *impl) GetActivities(c bCtx.Ctx, opts ...activity.FindAllOptionsFunc) ([]*activity.Activity, error) {
	res, err := im.repo.FindAll(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("repo.FindAll failed")
		return nil, err
	}
	return res, nil
}

// record is best-effort, a failed insert must not fail the operation
// that produced the event
func (im *impl) record(c bCtx.Ctx, a *activity.Activity) {
	a.Id = uuid.NewString()
	a.Time = time.Now()
	if err := im.repo.Insert(c, a); err != nil {
		c.WithFields(log.Fields{
			"err":  err,
			"type": a.Type,
		}).Warn("failed to record activity")
	}
}

func (im *impl) NotifyListed(c bCtx.Ctx, e *marketplace.ListedEvent) {
	im.record(c, &activity.Activity{
		Type:       activity.TypeList,
		Collection: e.Collection,
		TokenId:    e.TokenId,
		Account:    e.Seller,
		Price:      e.Price.String(),
	})
}

func (im *impl) NotifyUnlisted(c bCtx.Ctx, e *marketplace.UnlistedEvent) {
	im.record(c, &activity.Activity{
		Type:       activity.TypeCancelListing,
		Collection: e.Collection,
		TokenId:    e.TokenId,
		Account:    e.Seller,
	})
}

func (im *impl) NotifyPurchased(c bCtx.Ctx, e *marketplace.PurchasedEvent) {
	// one purchase, two rows: the buyer's buy and the seller's sale
	im.record(c, &activity.Activity{
		Type:       activity.TypeBuy,
		Collection: e.Collection,
		TokenId:    e.TokenId,
		Account:    e.Buyer,
		To:         e.Seller,
		Price:      e.Price.String(),
	})
	im.record(c, &activity.Activity{
		Type:       activity.TypeSold,
		Collection: e.Collection,
		TokenId:    e.TokenId,
		Account:    e.Seller,
		To:         e.Buyer,
		Price:      e.Price.String(),
	})
}
