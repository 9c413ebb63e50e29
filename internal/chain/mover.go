package chain

import (
	"context"
)

// AssetMover 金库与外部世界之间的资产转移接口。
// 捐赠代币时从捐赠人划入金库，出金时从金库划出。
// 返回的交易哈希仅用于记账，链下模式下为空字符串。
type AssetMover interface {
	// PullToken 将捐赠人的代币划入金库（需事先授权额度）
	PullToken(ctx context.Context, token, from string, amount int64) (string, error)
	// PayNative 从金库向外转出原生资产
	PayNative(ctx context.Context, to string, amount int64) (string, error)
	// PayToken 从金库向外转出代币
	PayToken(ctx context.Context, token, to string, amount int64) (string, error)
}

// LedgerMover 纯记账模式：不触链，转移总是成功。
// 用于本地开发和 chain.enabled=false 的部署。
type LedgerMover struct{}

func NewLedgerMover() *LedgerMover {
	return &LedgerMover{}
}

func (m *LedgerMover) PullToken(ctx context.Context, token, from string, amount int64) (string, error) {
	return "", nil
}

func (m *LedgerMover) PayNative(ctx context.Context, to string, amount int64) (string, error) {
	return "", nil
}

func (m *LedgerMover) PayToken(ctx context.Context, token, to string, amount int64) (string, error) {
	return "", nil
}
