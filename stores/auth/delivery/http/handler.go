package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-market/goapi/base/ctx"
	"github.com/x-market/goapi/base/delivery"
	"github.com/x-market/goapi/base/validator"
	"github.com/x-market/goapi/domain"
)

type handler struct {
	auth domain.AuthUsecase
}

func New(e *echo.Echo, auth domain.AuthUsecase) {
	h := &handler{auth: auth}

	g := e.Group("/auth")
	g.POST("/token", h.signToken)
}

type signTokenPayload struct {
	Address domain.Address `json:"address"`
}

// signToken
//
//	@Description	Issue an access token for an address
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	string
//	@Failure		400
//	@Router			/auth/token [post]
func (h *handler) signToken(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &signTokenPayload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	if !validator.IsValidAddress(string(p.Address)) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAddress)
	}

	token, err := h.auth.SignToken(ctx, p.Address)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, token)
}
