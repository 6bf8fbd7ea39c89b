package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/x-market/goapi/domain"
	"github.com/x-market/goapi/service/query"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

// MakeJsonResp wraps data into the common response envelope. When data is
// a domain error the status code is refined from the error value.
func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		switch {
		case errors.Is(err, domain.ErrNotFound) || errors.Is(err, query.ErrNotFound) || errors.Is(err, domain.ErrNotListed):
			status = http.StatusNotFound
		case errors.Is(err, domain.ErrBadParamInput) || errors.Is(err, domain.ErrInvalidPrice) || errors.Is(err, domain.ErrInvalidAddress):
			status = http.StatusBadRequest
		case errors.Is(err, domain.ErrNotOwner) || errors.Is(err, domain.ErrNotApproved) ||
			errors.Is(err, domain.ErrNotSeller) || errors.Is(err, domain.ErrSelfPurchase):
			status = http.StatusForbidden
		case errors.Is(err, domain.ErrPaymentFailed):
			status = http.StatusPaymentRequired
		case errors.Is(err, domain.ErrReentrancy):
			status = http.StatusConflict
		}
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}
