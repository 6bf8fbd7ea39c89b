package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/x-market/goapi/base/ctx"
	"github.com/x-market/goapi/domain/activity"
	"github.com/x-market/goapi/domain/activity/mocks"
	"github.com/x-market/goapi/domain/marketplace"
)

type testsuite struct {
	suite.Suite

	ctx      bCtx.Ctx
	repo     *mocks.Repo
	im       activity.Usecase
	recorder marketplace.Notifier
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) SetupTest() {
	ts.ctx = bCtx.Background()
	ts.repo = &mocks.Repo{}
	ts.im = New(ts.repo)
	ts.recorder = NewRecorder(ts.repo)
}

func (ts *testsuite) TestNotifyListed() {
	var inserted *activity.Activity
	ts.repo.On("Insert", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { inserted = args.Get(1).(*activity.Activity) }).
		Return(nil).Once()

	ts.recorder.NotifyListed(ts.ctx, &marketplace.ListedEvent{
		Seller:     "0xseller",
		Collection: "0xcol",
		TokenId:    "1",
		Price:      decimal.NewFromInt(100),
	})

	ts.repo.AssertExpectations(ts.T())
	ts.Require().NotNil(inserted)
	ts.Equal(activity.TypeList, inserted.Type)
	ts.Equal("100", inserted.Price)
	ts.NotEmpty(inserted.Id)
	ts.False(inserted.Time.IsZero())
}

func (ts *testsuite) TestNotifyPurchasedWritesBuyAndSold() {
	var rows []*activity.Activity
	ts.repo.On("Insert", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { rows = append(rows, args.Get(1).(*activity.Activity)) }).
		Return(nil).Twice()

	ts.recorder.NotifyPurchased(ts.ctx, &marketplace.PurchasedEvent{
		Buyer:      "0xbuyer",
		Seller:     "0xseller",
		Collection: "0xcol",
		TokenId:    "1",
		Price:      decimal.NewFromInt(100),
	})

	ts.repo.AssertExpectations(ts.T())
	ts.Require().Len(rows, 2)
	ts.Equal(activity.TypeBuy, rows[0].Type)
	ts.Equal(activity.TypeSold, rows[1].Type)
	ts.Equal(rows[0].Account, rows[1].To)
	ts.Equal(rows[0].To, rows[1].Account)
	ts.NotEqual(rows[0].Id, rows[1].Id)
}

func (ts *testsuite) TestGetActivities() {
	expected := []*activity.Activity{{Id: "a"}, {Id: "b"}}
	ts.repo.On("FindAll", mock.Anything, mock.Anything).Return(expected, nil).Once()

	res, err := ts.im.GetActivities(ts.ctx, activity.WithCollection("0xcol"))
	ts.Require().NoError(err)
	ts.Equal(expected, res)
}
