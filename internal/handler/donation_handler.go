package handler

import (
	"net/http"

	"github.com/Dipraise1/publicfund/internal/logic"
	"github.com/gin-gonic/gin"
)

type DonationHandler struct {
	donationLogic *logic.DonationLogic
}

func NewDonationHandler(donationLogic *logic.DonationLogic) *DonationHandler {
	return &DonationHandler{donationLogic: donationLogic}
}

// DonateEth 捐赠原生资产
func (h *DonationHandler) DonateEth(c *gin.Context) {
	var req DonateEthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	record, err := h.donationLogic.DonateEth(req.Donor, req.Amount)
	if err != nil {
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "donation recorded", record)
}

// DonateToken 捐赠代币（需事先授权额度）
func (h *DonationHandler) DonateToken(c *gin.Context) {
	var req DonateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	record, err := h.donationLogic.DonateToken(c.Request.Context(), req.Donor, req.Token, req.Amount)
	if err != nil {
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "donation recorded", record)
}

// GetDonor 捐赠人概览：累计捐赠、投票资格、捐过的代币
func (h *DonationHandler) GetDonor(c *gin.Context) {
	address := c.Param("address")

	ethTotal, err := h.donationLogic.EthDonations(address)
	if err != nil {
		FailWith(c, err)
		return
	}

	votingPower, err := h.donationLogic.GetVotingPower(address)
	if err != nil {
		FailWith(c, err)
		return
	}

	participant, err := h.donationLogic.HasDonated(address)
	if err != nil {
		FailWith(c, err)
		return
	}

	tokens, err := h.donationLogic.GetDonorTokens(address)
	if err != nil {
		FailWith(c, err)
		return
	}

	tokenTotals := make(map[string]int64, len(tokens))
	for _, token := range tokens {
		total, err := h.donationLogic.TokenDonations(address, token)
		if err != nil {
			FailWith(c, err)
			return
		}
		tokenTotals[token] = total
	}

	c.JSON(http.StatusOK, gin.H{
		"address":         address,
		"eth_donations":   ethTotal,
		"token_donations": tokenTotals,
		"donor_tokens":    tokens,
		"voting_power":    votingPower,
		"is_participant":  participant,
	})
}

// GetVotingPower 捐赠人的资格标量
func (h *DonationHandler) GetVotingPower(c *gin.Context) {
	power, err := h.donationLogic.GetVotingPower(c.Param("address"))
	if err != nil {
		FailWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"voting_power": power})
}
