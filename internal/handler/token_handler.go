package handler

import (
	"net/http"

	"github.com/Dipraise1/publicfund/internal/logic"
	"github.com/gin-gonic/gin"
)

type TokenHandler struct {
	tokenLogic *logic.TokenLogic
}

func NewTokenHandler(tokenLogic *logic.TokenLogic) *TokenHandler {
	return &TokenHandler{tokenLogic: tokenLogic}
}

// AddToken 添加受支持代币，仅所有者
func (h *TokenHandler) AddToken(c *gin.Context) {
	var req AddTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.tokenLogic.AddSupportedToken(req.Caller, req.Address, req.Symbol, req.Decimals)
	if err != nil {
		FailWith(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "token added", token)
}

// GetTokens 受支持代币列表
func (h *TokenHandler) GetTokens(c *gin.Context) {
	tokens, err := h.tokenLogic.GetSupportedTokens()
	if err != nil {
		FailWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}
