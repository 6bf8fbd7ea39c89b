package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")

	// request error
	ErrInvalidAddress = errors.New("Invalid address")

	// marketplace errors, surfaced verbatim to callers
	ErrInvalidPrice  = errors.New("listing price must be positive")
	ErrNotOwner      = errors.New("caller does not own the token")
	ErrNotApproved   = errors.New("marketplace is not approved to transfer the token")
	ErrNotSeller     = errors.New("no listing owned by caller")
	ErrNotListed     = errors.New("token is not listed")
	ErrSelfPurchase  = errors.New("seller can not buy own listing")
	ErrPaymentFailed = errors.New("payment transfer failed")
	ErrReentrancy    = errors.New("reentrant call rejected")
)
