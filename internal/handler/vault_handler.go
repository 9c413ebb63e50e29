package handler

import (
	"net/http"
	"strconv"

	"github.com/Dipraise1/publicfund/internal/config"
	"github.com/Dipraise1/publicfund/internal/logic"
	"github.com/Dipraise1/publicfund/internal/model"
	"github.com/Dipraise1/publicfund/internal/notify"
	"github.com/gin-gonic/gin"
)

type VaultHandler struct {
	vault         config.VaultConfig
	custodyLogic  *logic.CustodyLogic
	donationLogic *logic.DonationLogic
	proposalLogic *logic.ProposalLogic
	tokenLogic    *logic.TokenLogic
	notifier      *notify.Notifier
}

func NewVaultHandler(
	vault config.VaultConfig,
	custodyLogic *logic.CustodyLogic,
	donationLogic *logic.DonationLogic,
	proposalLogic *logic.ProposalLogic,
	tokenLogic *logic.TokenLogic,
	notifier *notify.Notifier,
) *VaultHandler {
	return &VaultHandler{
		vault:         vault,
		custodyLogic:  custodyLogic,
		donationLogic: donationLogic,
		proposalLogic: proposalLogic,
		tokenLogic:    tokenLogic,
		notifier:      notifier,
	}
}

// GetVault 金库信息：所有者、治理参数、受支持代币
func (h *VaultHandler) GetVault(c *gin.Context) {
	tokens, err := h.tokenLogic.GetSupportedTokens()
	if err != nil {
		FailWith(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"owner":             h.vault.Owner,
		"voting_duration":   h.vault.VotingDuration,
		"proposal_interval": h.vault.ProposalInterval,
		"quorum_percent":    h.vault.QuorumPercent,
		"supported_tokens":  tokens,
	})
}

// GetStats 仪表盘统计
func (h *VaultHandler) GetStats(c *gin.Context) {
	totalDonors, err := h.donationLogic.GetTotalDonors()
	if err != nil {
		FailWith(c, err)
		return
	}
	totalProposals, err := h.proposalLogic.GetTotalProposals()
	if err != nil {
		FailWith(c, err)
		return
	}
	totalEth, err := h.donationLogic.GetTotalEthDonations()
	if err != nil {
		FailWith(c, err)
		return
	}
	ethBalance, err := h.custodyLogic.GetEthBalance()
	if err != nil {
		FailWith(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_donors":        totalDonors,
		"total_proposals":     totalProposals,
		"total_eth_donations": totalEth,
		"eth_balance":         ethBalance,
	})
}

// GetEthBalance 金库原生资产余额
func (h *VaultHandler) GetEthBalance(c *gin.Context) {
	balance, err := h.custodyLogic.GetEthBalance()
	if err != nil {
		FailWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// GetTokenBalance 金库代币余额
func (h *VaultHandler) GetTokenBalance(c *gin.Context) {
	balance, err := h.custodyLogic.GetTokenBalance(c.Param("address"))
	if err != nil {
		FailWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// EmergencyWithdraw 所有者紧急提取（绕过治理的后门，单独审计）
func (h *VaultHandler) EmergencyWithdraw(c *gin.Context) {
	var req EmergencyWithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	payout, err := h.custodyLogic.EmergencyWithdraw(c.Request.Context(), req.Caller, req.Asset, req.Amount)
	if err != nil {
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "emergency withdrawal complete", payout)
}

// GetPayouts 出金记录
func (h *VaultHandler) GetPayouts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	payouts, total, err := h.custodyLogic.GetPayouts(model.PayoutKind(c.Query("kind")), page, pageSize)
	if err != nil {
		FailWith(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payouts":   payouts,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetEvents 事件记录，供展示层轮询
func (h *VaultHandler) GetEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	events, total, err := h.notifier.GetEvents(c.Query("name"), page, pageSize)
	if err != nil {
		FailWith(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events":    events,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}
