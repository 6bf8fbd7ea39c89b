package usecase

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/x-market/goapi/base/ctx"
	"github.com/x-market/goapi/domain"
	"github.com/x-market/goapi/domain/marketplace"
	"github.com/x-market/goapi/domain/marketplace/mocks"
	"github.com/x-market/goapi/stores/marketplace/repository"
)

const operator = domain.Address("0xoperator")

type marketplaceSuite struct {
	suite.Suite

	ctx       bCtx.Ctx
	store     marketplace.Store
	index     marketplace.Index
	ownership *mocks.Ownership
	payment   *mocks.Payment
	notifier  *mocks.Notifier
	uc        marketplace.Usecase
}

func TestMarketplaceSuite(t *testing.T) {
	suite.Run(t, new(marketplaceSuite))
}

func (s *marketplaceSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.store = repository.NewListingStore()
	s.index = repository.NewCollectionIndex()
	s.ownership = &mocks.Ownership{}
	s.payment = &mocks.Payment{}
	s.notifier = &mocks.Notifier{}
	s.notifier.On("NotifyListed", mock.Anything, mock.Anything).Maybe()
	s.notifier.On("NotifyPurchased", mock.Anything, mock.Anything).Maybe()
	s.notifier.On("NotifyUnlisted", mock.Anything, mock.Anything).Maybe()
	s.uc = NewMarketplaceUsecase(&MarketplaceUsecaseCfg{
		Store:     s.store,
		Index:     s.index,
		Ownership: s.ownership,
		Payment:   s.payment,
		Notifier:  s.notifier,
		Operator:  operator,
	})
}

func (s *marketplaceSuite) lid(collection domain.Address, tokenId domain.TokenId) marketplace.ListingId {
	return marketplace.ListingId{Collection: collection, TokenId: tokenId}
}

// mustList arranges the ownership checks to pass and lists the token
func (s *marketplaceSuite) mustList(seller domain.Address, id marketplace.ListingId, price int64) {
	s.ownership.On("OwnerOf", mock.Anything, id.Collection, id.TokenId).Return(seller, nil).Once()
	s.ownership.On("IsApproved", mock.Anything, id.Collection, id.TokenId, operator).Return(true, nil).Once()
	s.Require().NoError(s.uc.List(s.ctx, seller, id, decimal.NewFromInt(price)))
}

func (s *marketplaceSuite) TestListSuccess() {
	id := s.lid("0xcol", "1")
	s.mustList("0xseller", id, 100)

	s.True(s.uc.IsListed(s.ctx, id))
	s.Equal(1, s.uc.TotalCount(s.ctx))

	listing, err := s.uc.GetListing(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(domain.Address("0xseller"), listing.Seller)
	s.True(decimal.NewFromInt(100).Equal(listing.Price))
	s.False(listing.ListedAt.IsZero())

	s.notifier.AssertCalled(s.T(), "NotifyListed", mock.Anything, &marketplace.ListedEvent{
		Seller:     "0xseller",
		Collection: "0xcol",
		TokenId:    "1",
		Price:      listing.Price,
	})
}

func (s *marketplaceSuite) TestListNonPositivePrice() {
	id := s.lid("0xcol", "1")
	s.ErrorIs(s.uc.List(s.ctx, "0xseller", id, decimal.Zero), domain.ErrInvalidPrice)
	s.ErrorIs(s.uc.List(s.ctx, "0xseller", id, decimal.NewFromInt(-1)), domain.ErrInvalidPrice)

	s.False(s.uc.IsListed(s.ctx, id))
	s.Equal(0, s.uc.TotalCount(s.ctx))
	s.ownership.AssertNotCalled(s.T(), "OwnerOf", mock.Anything, mock.Anything, mock.Anything)
	s.notifier.AssertNotCalled(s.T(), "NotifyListed", mock.Anything, mock.Anything)
}

func (s *marketplaceSuite) TestListNotOwner() {
	id := s.lid("0xcol", "1")
	s.ownership.On("OwnerOf", mock.Anything, id.Collection, id.TokenId).Return(domain.Address("0xother"), nil).Once()

	s.ErrorIs(s.uc.List(s.ctx, "0xseller", id, decimal.NewFromInt(100)), domain.ErrNotOwner)
	s.False(s.uc.IsListed(s.ctx, id))
	s.ownership.AssertNotCalled(s.T(), "IsApproved", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *marketplaceSuite) TestListNotApproved() {
	id := s.lid("0xcol", "1")
	s.ownership.On("OwnerOf", mock.Anything, id.Collection, id.TokenId).Return(domain.Address("0xseller"), nil).Once()
	s.ownership.On("IsApproved", mock.Anything, id.Collection, id.TokenId, operator).Return(false, nil).Once()

	s.ErrorIs(s.uc.List(s.ctx, "0xseller", id, decimal.NewFromInt(100)), domain.ErrNotApproved)
	s.False(s.uc.IsListed(s.ctx, id))
	s.Equal(0, s.uc.TotalCount(s.ctx))
}

func (s *marketplaceSuite) TestRelistOverwrites() {
	id := s.lid("0xcol", "1")
	s.mustList("0xseller", id, 100)
	s.mustList("0xseller", id, 250)

	s.Equal(1, s.uc.TotalCount(s.ctx))
	listing, err := s.uc.GetListing(s.ctx, id)
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(250).Equal(listing.Price))
}

func (s *marketplaceSuite) TestUnlist() {
	id := s.lid("0xcol", "1")
	s.mustList("0xseller", id, 100)

	s.Require().NoError(s.uc.Unlist(s.ctx, "0xseller", id))
	s.False(s.uc.IsListed(s.ctx, id))
	s.Equal(0, s.uc.TotalCount(s.ctx))
	s.Empty(s.index.Collections(s.ctx))
	s.notifier.AssertCalled(s.T(), "NotifyUnlisted", mock.Anything, &marketplace.UnlistedEvent{
		Seller:     "0xseller",
		Collection: "0xcol",
		TokenId:    "1",
	})

	// second unlist finds nothing, same error as a foreign caller
	s.ErrorIs(s.uc.Unlist(s.ctx, "0xseller", id), domain.ErrNotSeller)
}

func (s *marketplaceSuite) TestUnlistNotSeller() {
	id := s.lid("0xcol", "1")
	s.mustList("0xseller", id, 100)

	s.ErrorIs(s.uc.Unlist(s.ctx, "0xintruder", id), domain.ErrNotSeller)
	s.True(s.uc.IsListed(s.ctx, id))
	s.Equal(1, s.uc.TotalCount(s.ctx))

	s.ErrorIs(s.uc.Unlist(s.ctx, "0xanyone", s.lid("0xcol", "404")), domain.ErrNotSeller)
}

func (s *marketplaceSuite) TestUnlistLastListingDropsCollection() {
	s.mustList("0xseller", s.lid("0xa", "1"), 10)
	s.mustList("0xseller", s.lid("0xa", "2"), 10)
	s.mustList("0xseller", s.lid("0xb", "1"), 10)

	s.Require().NoError(s.uc.Unlist(s.ctx, "0xseller", s.lid("0xb", "1")))
	s.Equal(2, s.uc.TotalCount(s.ctx))
	s.Equal([]domain.Address{"0xa"}, s.index.Collections(s.ctx))
}

func (s *marketplaceSuite) TestBuySuccess() {
	id := s.lid("0xcol", "1")
	s.mustList("0xseller", id, 100)

	var steps []string
	price := decimal.NewFromInt(100)
	s.payment.On("TransferFunds", mock.Anything, domain.Address("0xbuyer"), domain.Address("0xseller"), price).
		Run(func(mock.Arguments) { steps = append(steps, "payment") }).Return(nil).Once()
	s.ownership.On("Transfer", mock.Anything, id.Collection, id.TokenId, domain.Address("0xseller"), domain.Address("0xbuyer")).
		Run(func(mock.Arguments) { steps = append(steps, "transfer") }).Return(nil).Once()

	s.Require().NoError(s.uc.Buy(s.ctx, "0xbuyer", id))

	s.Equal([]string{"payment", "transfer"}, steps)
	s.False(s.uc.IsListed(s.ctx, id))
	s.Equal(0, s.uc.TotalCount(s.ctx))
	_, err := s.uc.GetListing(s.ctx, id)
	s.ErrorIs(err, domain.ErrNotFound)
	s.notifier.AssertCalled(s.T(), "NotifyPurchased", mock.Anything, &marketplace.PurchasedEvent{
		Buyer:      "0xbuyer",
		Seller:     "0xseller",
		Collection: "0xcol",
		TokenId:    "1",
		Price:      price,
	})

	// the listing is gone, a second buy cannot succeed
	s.ErrorIs(s.uc.Buy(s.ctx, "0xbuyer2", id), domain.ErrNotListed)
}

func (s *marketplaceSuite) TestBuyNotListed() {
	s.ErrorIs(s.uc.Buy(s.ctx, "0xbuyer", s.lid("0xcol", "404")), domain.ErrNotListed)
	s.payment.AssertNotCalled(s.T(), "TransferFunds", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *marketplaceSuite) TestBuySelfPurchase() {
	id := s.lid("0xcol", "1")
	s.mustList("0xseller", id, 100)

	s.ErrorIs(s.uc.Buy(s.ctx, "0xseller", id), domain.ErrSelfPurchase)
	s.True(s.uc.IsListed(s.ctx, id))
	s.payment.AssertNotCalled(s.T(), "TransferFunds", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *marketplaceSuite) TestBuyPaymentFailed() {
	id := s.lid("0xcol", "1")
	s.mustList("0xseller", id, 100)

	s.payment.On("TransferFunds", mock.Anything, domain.Address("0xbuyer"), domain.Address("0xseller"), mock.Anything).
		Return(errors.New("insufficient balance")).Once()

	s.ErrorIs(s.uc.Buy(s.ctx, "0xbuyer", id), domain.ErrPaymentFailed)
	s.True(s.uc.IsListed(s.ctx, id))
	s.Equal(1, s.uc.TotalCount(s.ctx))
	s.ownership.AssertNotCalled(s.T(), "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.notifier.AssertNotCalled(s.T(), "NotifyPurchased", mock.Anything, mock.Anything)
}

func (s *marketplaceSuite) TestBuyTransferFailedRefunds() {
	id := s.lid("0xcol", "1")
	s.mustList("0xseller", id, 100)

	price := decimal.NewFromInt(100)
	transferErr := errors.New("token transfer reverted")
	s.payment.On("TransferFunds", mock.Anything, domain.Address("0xbuyer"), domain.Address("0xseller"), price).Return(nil).Once()
	s.ownership.On("Transfer", mock.Anything, id.Collection, id.TokenId, domain.Address("0xseller"), domain.Address("0xbuyer")).
		Return(transferErr).Once()
	// funds go back to the buyer
	s.payment.On("TransferFunds", mock.Anything, domain.Address("0xseller"), domain.Address("0xbuyer"), price).Return(nil).Once()

	s.ErrorIs(s.uc.Buy(s.ctx, "0xbuyer", id), transferErr)
	s.True(s.uc.IsListed(s.ctx, id))
	s.Equal(1, s.uc.TotalCount(s.ctx))
	s.payment.AssertExpectations(s.T())
	s.notifier.AssertNotCalled(s.T(), "NotifyPurchased", mock.Anything, mock.Anything)
}

func (s *marketplaceSuite) TestBuyRejectsReentrantBuy() {
	id := s.lid("0xcol", "1")
	other := s.lid("0xcol", "2")
	s.mustList("0xseller", id, 100)
	s.mustList("0xseller", other, 100)

	var nestedErr error
	s.payment.On("TransferFunds", mock.Anything, domain.Address("0xbuyer"), domain.Address("0xseller"), mock.Anything).
		Run(func(mock.Arguments) {
			// the payment service calls back into the engine mid-operation
			nestedErr = s.uc.Buy(s.ctx, "0xbuyer", other)
		}).Return(nil).Once()
	s.ownership.On("Transfer", mock.Anything, id.Collection, id.TokenId, domain.Address("0xseller"), domain.Address("0xbuyer")).
		Return(nil).Once()

	s.Require().NoError(s.uc.Buy(s.ctx, "0xbuyer", id))
	s.ErrorIs(nestedErr, domain.ErrReentrancy)

	// the outer buy committed, the nested one left no trace
	s.False(s.uc.IsListed(s.ctx, id))
	s.True(s.uc.IsListed(s.ctx, other))
	s.Equal(1, s.uc.TotalCount(s.ctx))
}

func (s *marketplaceSuite) TestBuyRejectsReentrantListAndUnlist() {
	id := s.lid("0xcol", "1")
	s.mustList("0xseller", id, 100)

	var listErr, unlistErr error
	s.payment.On("TransferFunds", mock.Anything, domain.Address("0xbuyer"), domain.Address("0xseller"), mock.Anything).
		Return(nil).Once()
	s.ownership.On("Transfer", mock.Anything, id.Collection, id.TokenId, domain.Address("0xseller"), domain.Address("0xbuyer")).
		Run(func(mock.Arguments) {
			listErr = s.uc.List(s.ctx, "0xseller", s.lid("0xcol", "9"), decimal.NewFromInt(5))
			unlistErr = s.uc.Unlist(s.ctx, "0xseller", id)
		}).Return(nil).Once()

	s.Require().NoError(s.uc.Buy(s.ctx, "0xbuyer", id))
	s.ErrorIs(listErr, domain.ErrReentrancy)
	s.ErrorIs(unlistErr, domain.ErrReentrancy)
	s.False(s.uc.IsListed(s.ctx, id))
}

func (s *marketplaceSuite) TestGuardClearsAfterFailure() {
	id := s.lid("0xcol", "1")
	s.mustList("0xseller", id, 100)

	s.payment.On("TransferFunds", mock.Anything, domain.Address("0xbuyer"), domain.Address("0xseller"), mock.Anything).
		Return(errors.New("declined")).Once()
	s.ErrorIs(s.uc.Buy(s.ctx, "0xbuyer", id), domain.ErrPaymentFailed)

	// a failed operation releases the guard for the next caller
	s.Require().NoError(s.uc.Unlist(s.ctx, "0xseller", id))
}

func (s *marketplaceSuite) TestGetListings() {
	s.mustList("0xseller", s.lid("0xa", "1"), 10)
	s.mustList("0xseller", s.lid("0xa", "2"), 20)
	s.mustList("0xseller", s.lid("0xb", "7"), 30)

	page := func(offset, limit int) []*marketplace.Listing {
		res, err := s.uc.GetListings(s.ctx, offset, limit)
		s.Require().NoError(err)
		s.Equal(3, res.Total)
		return res.Items
	}

	items := page(0, 2)
	s.Require().Len(items, 2)
	s.Equal(domain.TokenId("1"), items[0].TokenId)
	s.Equal(domain.TokenId("2"), items[1].TokenId)

	// page crosses the collection boundary
	items = page(1, 2)
	s.Require().Len(items, 2)
	s.Equal(domain.TokenId("2"), items[0].TokenId)
	s.Equal(domain.Address("0xb"), items[1].Collection)
	s.Equal(domain.TokenId("7"), items[1].TokenId)

	s.Empty(page(3, 5))

	items = page(0, 10)
	s.Len(items, 3)
}

func (s *marketplaceSuite) TestGetListingsBadParams() {
	_, err := s.uc.GetListings(s.ctx, -1, 10)
	s.ErrorIs(err, domain.ErrBadParamInput)
	_, err = s.uc.GetListings(s.ctx, 0, -1)
	s.ErrorIs(err, domain.ErrBadParamInput)
}

func (s *marketplaceSuite) TestStoreIndexStayInSync() {
	ids := []marketplace.ListingId{
		s.lid("0xa", "1"), s.lid("0xa", "2"), s.lid("0xb", "1"), s.lid("0xc", "5"),
	}
	for _, id := range ids {
		s.mustList("0xseller", id, 10)
	}

	s.payment.On("TransferFunds", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.ownership.On("Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.Require().NoError(s.uc.Buy(s.ctx, "0xbuyer", ids[1]))
	s.Require().NoError(s.uc.Unlist(s.ctx, "0xseller", ids[2]))

	// every indexed entry resolves in the store and the counts agree
	res, err := s.uc.GetListings(s.ctx, 0, 100)
	s.Require().NoError(err)
	s.Equal(s.uc.TotalCount(s.ctx), res.Total)
	s.Len(res.Items, res.Total)
	for _, listing := range res.Items {
		s.True(s.uc.IsListed(s.ctx, listing.ToId()))
	}
}
