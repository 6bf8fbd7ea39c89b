package contract

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/x-market/goapi/base/abi"
	bCtx "github.com/x-market/goapi/base/ctx"
	"github.com/x-market/goapi/base/log"
	"github.com/x-market/goapi/domain"
	"github.com/x-market/goapi/domain/marketplace"
	"github.com/x-market/goapi/service/chain"
	"golang.org/x/xerrors"
)

// erc20 adapts a payment token contract to marketplace.Payment. Prices
// are denominated in whole token units and scaled by the contract's
// decimals before transfer. Buyers grant the marketplace operator an
// allowance up front, the transfer itself uses transferFrom.
type erc20 struct {
	client   chain.Client
	chainId  domain.ChainId
	token    common.Address
	decimals int32
}

func NewErc20(c bCtx.Ctx, client chain.Client, chainId domain.ChainId, token domain.Address) (marketplace.Payment, error) {
	e := &erc20{
		client:  client,
		chainId: chainId,
		token:   common.HexToAddress(token.ToLowerStr()),
	}
	res, err := client.Call(c, int32(chainId), e.token, nil, abi.ERC20TokenABI, "decimals")
	if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"token": token,
		}).Error("decimals call failed")
		return nil, err
	}
	dec, ok := res[0].(uint8)
	if !ok {
		return nil, xerrors.Errorf("unexpected decimals result %v", res[0])
	}
	e.decimals = int32(dec)
	return e, nil
}

func (e *erc20) TransferFunds(c bCtx.Ctx, from, to domain.Address, amount decimal.Decimal) error {
	value := amount.Shift(e.decimals).BigInt()
	_, err := e.client.Transact(c, int32(e.chainId), e.token, abi.ERC20TokenABI, "transferFrom",
		common.HexToAddress(from.ToLowerStr()), common.HexToAddress(to.ToLowerStr()), value)
	if err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"from":   from,
			"to":     to,
			"amount": amount,
		}).Error("erc20 transferFrom failed")
		return err
	}
	return nil
}
