package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/Dipraise1/publicfund/internal/config"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// ERC20代币ABI定义（简化版）
const erc20ABI = `[
	{
		"inputs": [
			{"name": "from", "type": "address"},
			{"name": "to", "type": "address"},
			{"name": "amount", "type": "uint256"}
		],
		"name": "transferFrom",
		"outputs": [{"name": "", "type": "bool"}],
		"type": "function"
	},
	{
		"inputs": [
			{"name": "to", "type": "address"},
			{"name": "amount", "type": "uint256"}
		],
		"name": "transfer",
		"outputs": [{"name": "", "type": "bool"}],
		"type": "function"
	},
	{
		"inputs": [{"name": "account", "type": "address"}],
		"name": "balanceOf",
		"outputs": [{"name": "", "type": "uint256"}],
		"type": "function"
	}
]`

// Client 链上资产转移客户端，实现 AssetMover
type Client struct {
	client     *ethclient.Client
	privateKey *ecdsa.PrivateKey
	chainId    *big.Int
	vaultAddr  common.Address
	tokenABI   abi.ABI
}

func Init(cfg config.ChainConfig) (*Client, error) {
	// 连接以太坊客户端
	client, err := ethclient.Dial(cfg.RpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ethereum client: %w", err)
	}

	// 解析私钥
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	// 解析ABI
	parsedABI, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse erc20 ABI: %w", err)
	}

	return &Client{
		client:     client,
		privateKey: privateKey,
		chainId:    big.NewInt(cfg.ChainId),
		vaultAddr:  crypto.PubkeyToAddress(privateKey.PublicKey),
		tokenABI:   parsedABI,
	}, nil
}

// VaultAddress 金库托管账户地址
func (c *Client) VaultAddress() common.Address {
	return c.vaultAddr
}

// PullToken 将捐赠人的代币划入金库（transferFrom，需事先授权额度）
func (c *Client) PullToken(ctx context.Context, token, from string, amount int64) (string, error) {
	tx, err := c.transactToken(ctx, token, "transferFrom",
		common.HexToAddress(from), c.vaultAddr, big.NewInt(amount))
	if err != nil {
		return "", fmt.Errorf("token transferFrom failed: %w", err)
	}
	return tx.Hash().Hex(), nil
}

// PayToken 从金库向外转出代币
func (c *Client) PayToken(ctx context.Context, token, to string, amount int64) (string, error) {
	tx, err := c.transactToken(ctx, token, "transfer",
		common.HexToAddress(to), big.NewInt(amount))
	if err != nil {
		return "", fmt.Errorf("token transfer failed: %w", err)
	}
	return tx.Hash().Hex(), nil
}

// PayNative 从金库向外转出原生资产
func (c *Client) PayNative(ctx context.Context, to string, amount int64) (string, error) {
	nonce, err := c.client.PendingNonceAt(ctx, c.vaultAddr)
	if err != nil {
		return "", fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get gas price: %w", err)
	}

	toAddr := common.HexToAddress(to)
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &toAddr,
		Value:    big.NewInt(amount),
		Gas:      21000,
		GasPrice: gasPrice,
	})

	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainId), c.privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := c.client.SendTransaction(ctx, signedTx); err != nil {
		return "", fmt.Errorf("failed to send transaction: %w", err)
	}

	return signedTx.Hash().Hex(), nil
}

// transactToken 调用ERC20合约方法
func (c *Client) transactToken(ctx context.Context, token, method string, args ...interface{}) (*types.Transaction, error) {
	auth, err := bind.NewKeyedTransactorWithChainID(c.privateKey, c.chainId)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	auth.Context = ctx

	contract := bind.NewBoundContract(common.HexToAddress(token), c.tokenABI, c.client, c.client, c.client)
	return contract.Transact(auth, method, args...)
}
