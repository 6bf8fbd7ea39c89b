package notifier

import (
	"github.com/x-market/goapi/base/ctx"
	"github.com/x-market/goapi/base/log"
	"github.com/x-market/goapi/domain/marketplace"
)

// LogNotifier writes every marketplace event as a structured log line
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) NotifyListed(c ctx.Ctx, e *marketplace.ListedEvent) {
	c.WithFields(log.Fields{
		"seller":     e.Seller,
		"collection": e.Collection,
		"tokenId":    e.TokenId,
		"price":      e.Price.String(),
	}).Info("listed")
}

func (n *LogNotifier) NotifyPurchased(c ctx.Ctx, e *marketplace.PurchasedEvent) {
	c.WithFields(log.Fields{
		"buyer":      e.Buyer,
		"seller":     e.Seller,
		"collection": e.Collection,
		"tokenId":    e.TokenId,
		"price":      e.Price.String(),
	}).Info("purchased")
}

func (n *LogNotifier) NotifyUnlisted(c ctx.Ctx, e *marketplace.UnlistedEvent) {
	c.WithFields(log.Fields{
		"seller":     e.Seller,
		"collection": e.Collection,
		"tokenId":    e.TokenId,
	}).Info("unlisted")
}
