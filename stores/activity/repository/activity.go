package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-market/goapi/base/ctx"
	"github.com/x-market/goapi/domain"
	"github.com/x-market/goapi/domain/activity"
	"github.com/x-market/goapi/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) activity.Repo {
	return &impl{q: q}
}

func makeFindQuery(opts ...activity.FindAllOptionsFunc) (bson.M, activity.FindAllOptions, error) {
	options, err := activity.GetFindAllOptions(opts...)
	if err != nil {
		return nil, options, err
	}

	qry := bson.M{}
	if options.Collection != nil {
		qry["collection"] = *options.Collection
	}
	if options.TokenId != nil {
		qry["tokenId"] = *options.TokenId
	}
	if options.Account != nil {
		qry["account"] = *options.Account
	}
	if options.Type != nil {
		qry["type"] = *options.Type
	}
	return qry, options, nil
}

func (im *impl) FindAll(c ctx.Ctx, opts ...activity.FindAllOptionsFunc) ([]*activity.Activity, error) {
	qry, options, err := makeFindQuery(opts...)
	if err != nil {
		c.WithField("err", err).Error("makeFindQuery failed")
		return nil, err
	}

	offset := 0
	limit := 0
	sort := "-time"
	if options.Offset != nil {
		offset = int(*options.Offset)
	}
	if options.Limit != nil {
		limit = int(*options.Limit)
	}
	if options.SortBy != nil && options.SortDir != nil {
		if *options.SortDir == domain.SortDirAsc {
			sort = *options.SortBy
		} else {
			sort = "-" + *options.SortBy
		}
	}

	res := []*activity.Activity{}
	if err := im.q.Search(c, domain.TableActivities, offset, limit, sort, qry, &res); err != nil {
		c.WithField("err", err).Error("query.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) Count(c ctx.Ctx, opts ...activity.FindAllOptionsFunc) (int, error) {
	qry, _, err := makeFindQuery(opts...)
	if err != nil {
		c.WithField("err", err).Error("makeFindQuery failed")
		return 0, err
	}

	cnt, err := im.q.Count(c, domain.TableActivities, qry)
	if err != nil {
		c.WithField("err", err).Error("query.Count failed")
		return 0, err
	}
	return cnt, nil
}

func (im *impl) Insert(c ctx.Ctx, value *activity.Activity) error {
	if err := im.q.Insert(c, domain.TableActivities, value); err != nil {
		c.WithField("err", err).Error("query.Insert failed")
		return err
	}
	return nil
}
