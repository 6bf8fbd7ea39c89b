package contract

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/x-market/goapi/base/abi"
	bCtx "github.com/x-market/goapi/base/ctx"
	"github.com/x-market/goapi/base/log"
	"github.com/x-market/goapi/domain"
	"github.com/x-market/goapi/domain/marketplace"
	"github.com/x-market/goapi/service/chain"
	"golang.org/x/xerrors"
)

// erc721 adapts an on-chain ERC-721 registry to marketplace.Ownership.
// All tokens are assumed to live on a single configured chain.
type erc721 struct {
	client  chain.Client
	chainId domain.ChainId
}

func NewErc721(client chain.Client, chainId domain.ChainId) marketplace.Ownership {
	return &erc721{client: client, chainId: chainId}
}

func (e *erc721) OwnerOf(c bCtx.Ctx, collection domain.Address, tokenId domain.TokenId) (domain.Address, error) {
	id, err := tokenId.ToBigInt()
	if err != nil {
		return "", err
	}
	res, err := e.client.Call(c, int32(e.chainId), common.HexToAddress(collection.ToLowerStr()), nil, abi.ERC721TokenABI, "ownerOf", id)
	if err != nil {
		c.WithFields(log.Fields{
			"err":        err,
			"collection": collection,
			"tokenId":    tokenId,
		}).Error("ownerOf call failed")
		return "", err
	}
	owner, ok := res[0].(common.Address)
	if !ok {
		return "", xerrors.Errorf("unexpected ownerOf result %v", res[0])
	}
	return domain.Address(strings.ToLower(owner.Hex())), nil
}

func (e *erc721) IsApproved(c bCtx.Ctx, collection domain.Address, tokenId domain.TokenId, operator domain.Address) (bool, error) {
	id, err := tokenId.ToBigInt()
	if err != nil {
		return false, err
	}
	contractAddr := common.HexToAddress(collection.ToLowerStr())
	operatorAddr := common.HexToAddress(operator.ToLowerStr())

	res, err := e.client.Call(c, int32(e.chainId), contractAddr, nil, abi.ERC721TokenABI, "getApproved", id)
	if err != nil {
		c.WithField("err", err).Error("getApproved call failed")
		return false, err
	}
	if approved, ok := res[0].(common.Address); ok && approved == operatorAddr {
		return true, nil
	}

	owner, err := e.OwnerOf(c, collection, tokenId)
	if err != nil {
		return false, err
	}
	res, err = e.client.Call(c, int32(e.chainId), contractAddr, nil, abi.ERC721TokenABI, "isApprovedForAll", common.HexToAddress(owner.ToLowerStr()), operatorAddr)
	if err != nil {
		c.WithField("err", err).Error("isApprovedForAll call failed")
		return false, err
	}
	approvedForAll, ok := res[0].(bool)
	if !ok {
		return false, xerrors.Errorf("unexpected isApprovedForAll result %v", res[0])
	}
	return approvedForAll, nil
}

func (e *erc721) Transfer(c bCtx.Ctx, collection domain.Address, tokenId domain.TokenId, from, to domain.Address) error {
	id, err := tokenId.ToBigInt()
	if err != nil {
		return err
	}
	_, err = e.client.Transact(c, int32(e.chainId), common.HexToAddress(collection.ToLowerStr()), abi.ERC721TokenABI, "transferFrom",
		common.HexToAddress(from.ToLowerStr()), common.HexToAddress(to.ToLowerStr()), id)
	if err != nil {
		c.WithFields(log.Fields{
			"err":        err,
			"collection": collection,
			"tokenId":    tokenId,
			"from":       from,
			"to":         to,
		}).Error("transferFrom failed")
		return err
	}
	return nil
}
