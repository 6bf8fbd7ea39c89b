package activity

import (
	"time"

	"github.com/x-market/goapi/base/ctx"
	"github.com/x-market/goapi/domain"
)

type Type string

const (
	TypeList          Type = "list"
	TypeCancelListing Type = "cancelListing"
	TypeBuy           Type = "buy"
	TypeSold          Type = "sold"
)

// Activity is one recorded marketplace event. Buy and sold rows are two
// views of the same purchase, keyed to buyer and seller respectively.
type Activity struct {
	Id         string         `json:"id" bson:"id"`
	Type       Type           `json:"type" bson:"type"`
	Collection domain.Address `json:"collection" bson:"collection"`
	TokenId    domain.TokenId `json:"tokenId" bson:"tokenId"`
	Account    domain.Address `json:"account" bson:"account"`
	To         domain.Address `json:"to,omitempty" bson:"to,omitempty"`
	Price      string         `json:"price,omitempty" bson:"price,omitempty"`
	Time       time.Time      `json:"time" bson:"time"`
}

type FindAllOptions struct {
	SortBy     *string
	SortDir    *domain.SortDir
	Offset     *int32
	Limit      *int32
	Collection *domain.Address
	TokenId    *domain.TokenId
	Account    *domain.Address
	Type       *Type
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithToken(collection domain.Address, tokenId domain.TokenId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Collection = collection.ToLowerPtr()
		options.TokenId = &tokenId
		return nil
	}
}

func WithCollection(collection domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Collection = collection.ToLowerPtr()
		return nil
	}
}

func WithAccount(account domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Account = account.ToLowerPtr()
		return nil
	}
}

func WithType(t Type) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Type = &t
		return nil
	}
}

func WithPagination(offset int32, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func WithSort(sortby string, sortdir domain.SortDir) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.SortBy = &sortby
		options.SortDir = &sortdir
		return nil
	}
}

type Repo interface {
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Activity, error)
	Count(c ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)
	Insert(c ctx.Ctx, value *Activity) error
}

type Usecase interface {
	GetActivities(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Activity, error)
}
