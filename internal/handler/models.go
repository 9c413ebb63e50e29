package handler

// DonateEthRequest 原生资产捐赠请求。
// 金额不加 required 校验，零值交给业务层返回统一错误码。
type DonateEthRequest struct {
	Donor  string `json:"donor" binding:"required"`
	Amount int64  `json:"amount"`
}

// DonateTokenRequest 代币捐赠请求
type DonateTokenRequest struct {
	Donor  string `json:"donor" binding:"required"`
	Token  string `json:"token" binding:"required"`
	Amount int64  `json:"amount"`
}

// AddTokenRequest 添加受支持代币请求（仅所有者）
type AddTokenRequest struct {
	Caller   string `json:"caller" binding:"required"`
	Address  string `json:"address" binding:"required"`
	Symbol   string `json:"symbol" binding:"required"`
	Decimals uint8  `json:"decimals"`
}

// CreateProposalRequest 创建提案请求
type CreateProposalRequest struct {
	Proposer     string `json:"proposer" binding:"required"`
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	ContentHash  string `json:"content_hash"`
	Recipient    string `json:"recipient" binding:"required"`
	EthAmount    int64  `json:"eth_amount"`
	TokenAddress string `json:"token_address"`
	TokenAmount  int64  `json:"token_amount"`
}

// VoteRequest 投票请求
type VoteRequest struct {
	Voter   string `json:"voter" binding:"required"`
	Approve *bool  `json:"approve" binding:"required"`
}

// EmergencyWithdrawRequest 紧急提取请求（仅所有者）
type EmergencyWithdrawRequest struct {
	Caller string `json:"caller" binding:"required"`
	Asset  string `json:"asset"` // 零地址或空串表示原生资产
	Amount int64  `json:"amount"`
}
