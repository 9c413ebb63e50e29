package handler

import (
	"net/http"
	"strconv"

	"github.com/Dipraise1/publicfund/internal/logic"
	"github.com/gin-gonic/gin"
)

type ProposalHandler struct {
	proposalLogic  *logic.ProposalLogic
	voteLogic      *logic.VoteLogic
	executionLogic *logic.ExecutionLogic
}

func NewProposalHandler(proposalLogic *logic.ProposalLogic, voteLogic *logic.VoteLogic, executionLogic *logic.ExecutionLogic) *ProposalHandler {
	return &ProposalHandler{
		proposalLogic:  proposalLogic,
		voteLogic:      voteLogic,
		executionLogic: executionLogic,
	}
}

// CreateProposal 创建提案
func (h *ProposalHandler) CreateProposal(c *gin.Context) {
	var req CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	proposal, err := h.proposalLogic.CreateProposal(logic.CreateProposalInput{
		Proposer:     req.Proposer,
		Title:        req.Title,
		Description:  req.Description,
		ContentHash:  req.ContentHash,
		Recipient:    req.Recipient,
		EthAmount:    req.EthAmount,
		TokenAddress: req.TokenAddress,
		TokenAmount:  req.TokenAmount,
	})
	if err != nil {
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "proposal created", proposal)
}

// GetProposals 提案列表，active=true 时仅返回活跃提案
func (h *ProposalHandler) GetProposals(c *gin.Context) {
	if c.Query("active") == "true" {
		proposals, err := h.proposalLogic.GetActiveProposals()
		if err != nil {
			FailWith(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"proposals": proposals, "total": len(proposals)})
		return
	}

	total, err := h.proposalLogic.GetTotalProposals()
	if err != nil {
		FailWith(c, err)
		return
	}
	proposals, err := h.proposalLogic.GetProposals()
	if err != nil {
		FailWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proposals": proposals, "total": total})
}

// GetProposal 提案详情
func (h *ProposalHandler) GetProposal(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid proposal id")
		return
	}

	proposal, err := h.proposalLogic.GetProposal(uint(id))
	if err != nil {
		FailWith(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"proposal": proposal})
}

// Vote 对提案投票
func (h *ProposalHandler) Vote(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid proposal id")
		return
	}

	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	record, err := h.voteLogic.Vote(uint(id), req.Voter, *req.Approve)
	if err != nil {
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "vote recorded", record)
}

// Execute 投票窗口结束后执行提案
func (h *ProposalHandler) Execute(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid proposal id")
		return
	}

	proposal, err := h.executionLogic.ExecuteProposal(c.Request.Context(), uint(id))
	if err != nil {
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "proposal executed", proposal)
}
