package chain

import (
	"crypto/ecdsa"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	bCtx "github.com/x-market/goapi/base/ctx"
	"github.com/x-market/goapi/base/log"
)

var (
	ErrUnsupportedChain = errors.New("unsupported chain")
	ErrNoSigner         = errors.New("no signing key configured")
	ErrTxReverted       = errors.New("transaction reverted")
)

type ClientCfg struct {
	RpcUrls map[int32]string
	// SignerKey is the hex-encoded private key used for Transact. Leave
	// empty for a read-only client.
	SignerKey string
}

type Client interface {
	// Call performs a read-only contract call at the given block (nil for latest)
	Call(c bCtx.Ctx, chainId int32, addr common.Address, blk *big.Int, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error)
	// Transact sends a state-changing contract call and waits for it to be
	// mined. An on-chain revert is returned as ErrTxReverted.
	Transact(c bCtx.Ctx, chainId int32, addr common.Address, _abi abi.ABI, method string, params ...interface{}) (*types.Receipt, error)
	// SignerAddress is the account Transact sends from
	SignerAddress() (common.Address, error)
}

type clientImpl struct {
	clients    map[int32]*ethclient.Client
	signerKey  *ecdsa.PrivateKey
	signerAddr common.Address
}

func NewClient(ctx bCtx.Ctx, cfg *ClientCfg) (Client, error) {
	var anyerr error
	clients := make(map[int32]*ethclient.Client)
	for chainId, url := range cfg.RpcUrls {
		client, err := ethclient.DialContext(ctx, url)
		if err != nil {
			anyerr = err
			ctx.WithFields(log.Fields{
				"err":     err,
				"chainId": chainId,
				"url":     url,
			}).Warn("failed to dial rpc")
			// soft warning, still let the server start
			continue
		}
		clients[chainId] = client
	}

	im := &clientImpl{clients: clients}
	if cfg.SignerKey != "" {
		key, err := crypto.HexToECDSA(cfg.SignerKey)
		if err != nil {
			return nil, err
		}
		im.signerKey = key
		im.signerAddr = crypto.PubkeyToAddress(key.PublicKey)
	}
	return im, anyerr
}

func (c *clientImpl) SignerAddress() (common.Address, error) {
	if c.signerKey == nil {
		return common.Address{}, ErrNoSigner
	}
	return c.signerAddr, nil
}

func (c *clientImpl) Call(ctx bCtx.Ctx, chainId int32, addr common.Address, blk *big.Int, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error) {
	client, ok := c.clients[chainId]
	if !ok {
		return nil, ErrUnsupportedChain
	}

	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"params": params,
			"err":    err,
		}).Error("abi.Pack failed")
		return nil, err
	}
	msg := ethereum.CallMsg{
		To:   &addr,
		Data: data,
	}
	res, err := client.CallContract(ctx, msg, blk)
	if err != nil {
		ctx.WithField("err", err).Error("client.CallContract failed")
		return nil, err
	}
	unpacked, err := _abi.Unpack(method, res)
	if err != nil {
		ctx.WithField("err", err).Error("abi.Unpack failed")
		return nil, err
	}
	return unpacked, nil
}

func (c *clientImpl) Transact(ctx bCtx.Ctx, chainId int32, addr common.Address, _abi abi.ABI, method string, params ...interface{}) (*types.Receipt, error) {
	client, ok := c.clients[chainId]
	if !ok {
		return nil, ErrUnsupportedChain
	}
	if c.signerKey == nil {
		return nil, ErrNoSigner
	}

	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"params": params,
			"err":    err,
		}).Error("abi.Pack failed")
		return nil, err
	}

	nonce, err := client.PendingNonceAt(ctx, c.signerAddr)
	if err != nil {
		ctx.WithField("err", err).Error("client.PendingNonceAt failed")
		return nil, err
	}
	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("client.SuggestGasPrice failed")
		return nil, err
	}
	gasLimit, err := client.EstimateGas(ctx, ethereum.CallMsg{
		From: c.signerAddr,
		To:   &addr,
		Data: data,
	})
	if err != nil {
		ctx.WithField("err", err).Error("client.EstimateGas failed")
		return nil, err
	}

	tx := types.NewTransaction(nonce, addr, big.NewInt(0), gasLimit, gasPrice, data)
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(big.NewInt(int64(chainId))), c.signerKey)
	if err != nil {
		ctx.WithField("err", err).Error("types.SignTx failed")
		return nil, err
	}

	if err := client.SendTransaction(ctx, signed); err != nil {
		ctx.WithField("err", err).Error("client.SendTransaction failed")
		return nil, err
	}

	receipt, err := bind.WaitMined(ctx, client, signed)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"txHash": signed.Hash().Hex(),
		}).Error("bind.WaitMined failed")
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		ctx.WithField("txHash", signed.Hash().Hex()).Warn("transaction reverted")
		return receipt, ErrTxReverted
	}
	return receipt, nil
}
