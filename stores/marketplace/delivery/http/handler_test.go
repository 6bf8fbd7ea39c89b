package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/x-market/goapi/base/ctx"
	"github.com/x-market/goapi/base/delivery"
	"github.com/x-market/goapi/domain"
	"github.com/x-market/goapi/domain/marketplace"
	"github.com/x-market/goapi/domain/marketplace/mocks"
	mmiddleware "github.com/x-market/goapi/middleware"
	authMiddleware "github.com/x-market/goapi/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/x-market/goapi/stores/auth/usecase"
)

const (
	testCollection = "0x1111111111111111111111111111111111111111"
	testCaller     = domain.Address("0x2222222222222222222222222222222222222222")
)

type handlerSuite struct {
	suite.Suite

	e     *echo.Echo
	uc    *mocks.Usecase
	token string
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}

func (s *handlerSuite) SetupTest() {
	s.e = echo.New()
	middL := mmiddleware.InitMiddleware()
	s.e.Use(middL.AddContext())

	auth := auth_usecase.New("test-secret")
	s.uc = &mocks.Usecase{}
	New(s.e, s.uc, authMiddleware.New(auth), 0)

	token, err := auth.SignToken(bCtx.Background(), testCaller)
	s.Require().NoError(err)
	s.token = token
}

func (s *handlerSuite) do(method, target, body string, authed bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if authed {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+s.token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *handlerSuite) TestGetListings() {
	res := &marketplace.SearchResult{
		Items: []*marketplace.Listing{{
			Collection: testCollection,
			TokenId:    "1",
			Seller:     "0xseller",
			Price:      decimal.NewFromInt(100),
		}},
		Total: 1,
	}
	s.uc.On("GetListings", mock.Anything, 5, 10).Return(res, nil).Once()

	rec := s.do(http.MethodGet, "/marketplace/listings?offset=5&limit=10", "", false)
	s.Equal(http.StatusOK, rec.Code)

	resp := delivery.JsonResponse{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(delivery.JsonResponseStatusSuccess, resp.Status)
	s.uc.AssertExpectations(s.T())
}

func (s *handlerSuite) TestGetListingsBadOffset() {
	rec := s.do(http.MethodGet, "/marketplace/listings?offset=-1", "", false)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.uc.AssertNotCalled(s.T(), "GetListings", mock.Anything, mock.Anything, mock.Anything)
}

func (s *handlerSuite) TestListRequiresAuth() {
	rec := s.do(http.MethodPost, "/marketplace/listings", `{"collection":"`+testCollection+`","tokenId":"1","price":"100"}`, false)
	s.NotEqual(http.StatusOK, rec.Code)
	s.uc.AssertNotCalled(s.T(), "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *handlerSuite) TestList() {
	id := marketplace.ListingId{Collection: testCollection, TokenId: "1"}
	s.uc.On("List", mock.Anything, testCaller, id, mock.Anything).Return(nil).Once()

	rec := s.do(http.MethodPost, "/marketplace/listings", `{"collection":"`+testCollection+`","tokenId":"1","price":"100"}`, true)
	s.Equal(http.StatusOK, rec.Code)
	s.uc.AssertExpectations(s.T())
}

func (s *handlerSuite) TestListInvalidPrice() {
	s.uc.On("List", mock.Anything, testCaller, mock.Anything, mock.Anything).
		Return(domain.ErrInvalidPrice).Once()

	rec := s.do(http.MethodPost, "/marketplace/listings", `{"collection":"`+testCollection+`","tokenId":"1","price":"0"}`, true)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *handlerSuite) TestUnlistNotSeller() {
	s.uc.On("Unlist", mock.Anything, testCaller, mock.Anything).
		Return(domain.ErrNotSeller).Once()

	rec := s.do(http.MethodDelete, "/marketplace/listings/"+testCollection+"/1", "", true)
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *handlerSuite) TestUnlistInvalidCollection() {
	rec := s.do(http.MethodDelete, "/marketplace/listings/zzz/1", "", true)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.uc.AssertNotCalled(s.T(), "Unlist", mock.Anything, mock.Anything, mock.Anything)
}

func (s *handlerSuite) TestBuyErrorMapping() {
	for err, status := range map[error]int{
		domain.ErrNotListed:     http.StatusNotFound,
		domain.ErrSelfPurchase:  http.StatusForbidden,
		domain.ErrPaymentFailed: http.StatusPaymentRequired,
		domain.ErrReentrancy:    http.StatusConflict,
	} {
		s.uc.On("Buy", mock.Anything, testCaller, mock.Anything).Return(err).Once()

		rec := s.do(http.MethodPost, "/marketplace/listings/"+testCollection+"/1/buy", "", true)
		s.Equal(status, rec.Code)
	}
}

func (s *handlerSuite) TestBuy() {
	id := marketplace.ListingId{Collection: testCollection, TokenId: "7"}
	s.uc.On("Buy", mock.Anything, testCaller, id).Return(nil).Once()

	rec := s.do(http.MethodPost, "/marketplace/listings/"+testCollection+"/7/buy", "", true)
	s.Equal(http.StatusOK, rec.Code)
	s.uc.AssertExpectations(s.T())
}

func (s *handlerSuite) TestGetCount() {
	s.uc.On("TotalCount", mock.Anything).Return(3).Once()

	rec := s.do(http.MethodGet, "/marketplace/listings/count", "", false)
	s.Equal(http.StatusOK, rec.Code)

	resp := delivery.JsonResponse{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.EqualValues(3, resp.Data)
}
