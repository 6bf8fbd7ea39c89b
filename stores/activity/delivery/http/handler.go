package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-market/goapi/base/ctx"
	"github.com/x-market/goapi/base/delivery"
	"github.com/x-market/goapi/domain"
	"github.com/x-market/goapi/domain/activity"
	"github.com/x-market/goapi/middleware"
)

type handler struct {
	activity activity.Usecase
}

func New(e *echo.Echo, uc activity.Usecase, cacheTtl time.Duration) {
	h := &handler{activity: uc}

	g := e.Group("/activities")
	if cacheTtl > 0 {
		g.GET("", h.getActivities, middleware.CacheHttp(cacheTtl))
	} else {
		g.GET("", h.getActivities)
	}
	g.GET("/account/:account", h.getAccountActivities, middleware.IsValidAddress("account"))
}

type getActivitiesParams struct {
	Collection *domain.Address `query:"collection"`
	TokenId    *domain.TokenId `query:"tokenId"`
	Type       *activity.Type  `query:"type"`
	Offset     int32           `query:"offset" validate:"gte=0"`
	Limit      int32           `query:"limit" validate:"gte=0,lte=100"`
}

func (p *getActivitiesParams) toOptions() []activity.FindAllOptionsFunc {
	opts := []activity.FindAllOptionsFunc{}
	if p.Collection != nil && p.TokenId != nil {
		opts = append(opts, activity.WithToken(*p.Collection, *p.TokenId))
	} else if p.Collection != nil {
		opts = append(opts, activity.WithCollection(*p.Collection))
	}
	if p.Type != nil {
		opts = append(opts, activity.WithType(*p.Type))
	}
	limit := p.Limit
	if limit == 0 {
		limit = 20
	}
	opts = append(opts, activity.WithPagination(p.Offset, limit))
	return opts
}

// getActivities
//
//	@Description	Get marketplace activities
//	@Tags			activities
//	@Produce		json
//	@Param			collection	query		string	false	"collection address"
//	@Param			tokenId		query		string	false	"token id"
//	@Param			type		query		string	false	"activity type"
//	@Param			offset		query		int		false	"offset"
//	@Param			limit		query		int		false	"limit"
//	@Success		200			{object}	[]activity.Activity
//	@Failure		400
//	@Router			/activities [get]
func (h *handler) getActivities(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &getActivitiesParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	res, err := h.activity.GetActivities(ctx, p.toOptions()...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// getAccountActivities
//
//	@Description	Get activities of one account
//	@Tags			activities
//	@Produce		json
//	@Param			account	path		string	true	"account address"
//	@Param			offset	query		int		false	"offset"
//	@Param			limit	query		int		false	"limit"
//	@Success		200		{object}	[]activity.Activity
//	@Failure		400
//	@Router			/activities/account/{account} [get]
func (h *handler) getAccountActivities(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &getActivitiesParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	opts := p.toOptions()
	opts = append(opts, activity.WithAccount(domain.Address(c.Param("account"))))

	res, err := h.activity.GetActivities(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
