package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/x-market/goapi/base/ctx"
	"github.com/x-market/goapi/base/delivery"
	"github.com/x-market/goapi/domain"
	"github.com/x-market/goapi/domain/marketplace"
	"github.com/x-market/goapi/middleware"
	authMiddleware "github.com/x-market/goapi/stores/auth/delivery/http/middleware"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type handler struct {
	marketplace marketplace.Usecase
}

func New(
	e *echo.Echo,
	uc marketplace.Usecase,
	auth *authMiddleware.AuthMiddleware,
	cacheTtl time.Duration) {
	h := &handler{marketplace: uc}

	g := e.Group("/marketplace")

	if cacheTtl > 0 {
		g.GET("/listings", h.getListings, middleware.CacheHttp(cacheTtl))
	} else {
		g.GET("/listings", h.getListings)
	}
	g.GET("/listings/count", h.getCount)
	g.GET("/listings/:collection/:tokenId", h.getListing, middleware.IsValidAddress("collection"))
	g.POST("/listings", h.list, auth.Auth())
	g.DELETE("/listings/:collection/:tokenId", h.unlist, auth.Auth(), middleware.IsValidAddress("collection"))
	g.POST("/listings/:collection/:tokenId/buy", h.buy, auth.Auth(), middleware.IsValidAddress("collection"))
}

func listingId(c echo.Context) marketplace.ListingId {
	return marketplace.ListingId{
		Collection: domain.Address(c.Param("collection")).ToLower(),
		TokenId:    domain.TokenId(c.Param("tokenId")),
	}
}

// getListings
//
//	@Description	Get one page of active listings
//	@Tags			marketplace
//	@Accept			json
//	@Produce		json
//	@Param			offset	query		int	false	"offset"
//	@Param			limit	query		int	false	"limit"
//	@Success		200		{object}	marketplace.SearchResult
//	@Failure		400
//	@Router			/marketplace/listings [get]
func (h *handler) getListings(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	offset := 0
	limit := defaultPageLimit
	if v := c.QueryParam("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
		}
		offset = n
	}
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
		}
		limit = n
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	res, err := h.marketplace.GetListings(ctx, offset, limit)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// getCount
//
//	@Description	Get the number of active listings
//	@Tags			marketplace
//	@Produce		json
//	@Success		200	{object}	int
//	@Router			/marketplace/listings/count [get]
func (h *handler) getCount(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	return delivery.MakeJsonResp(c, http.StatusOK, h.marketplace.TotalCount(ctx))
}

// getListing
//
//	@Description	Get a single active listing
//	@Tags			marketplace
//	@Produce		json
//	@Param			collection	path		string	true	"collection address"
//	@Param			tokenId		path		string	true	"token id"
//	@Success		200			{object}	marketplace.Listing
//	@Failure		404
//	@Router			/marketplace/listings/{collection}/{tokenId} [get]
func (h *handler) getListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	listing, err := h.marketplace.GetListing(ctx, listingId(c))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusNotFound, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, listing)
}

type listPayload struct {
	Collection domain.Address  `json:"collection"`
	TokenId    domain.TokenId  `json:"tokenId"`
	Price      decimal.Decimal `json:"price"`
}

// list
//
//	@Description	List a token for sale at a fixed price
//	@Tags			marketplace
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Success		200
//	@Failure		400
//	@Failure		403
//	@Router			/marketplace/listings [post]
func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	p := &listPayload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	id := marketplace.ListingId{
		Collection: p.Collection.ToLower(),
		TokenId:    p.TokenId,
	}
	if err := h.marketplace.List(ctx, caller, id, p.Price); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

// unlist
//
//	@Description	Remove the caller's listing
//	@Tags			marketplace
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			collection	path	string	true	"collection address"
//	@Param			tokenId		path	string	true	"token id"
//	@Success		200
//	@Failure		403
//	@Router			/marketplace/listings/{collection}/{tokenId} [delete]
func (h *handler) unlist(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	if err := h.marketplace.Unlist(ctx, caller, listingId(c)); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

// buy
//
//	@Description	Buy a listed token at its asking price
//	@Tags			marketplace
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			collection	path	string	true	"collection address"
//	@Param			tokenId		path	string	true	"token id"
//	@Success		200
//	@Failure		402
//	@Failure		403
//	@Failure		404
//	@Router			/marketplace/listings/{collection}/{tokenId}/buy [post]
func (h *handler) buy(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	if err := h.marketplace.Buy(ctx, caller, listingId(c)); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}
