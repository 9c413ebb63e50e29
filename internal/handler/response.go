package handler

import (
	"errors"
	"net/http"

	"github.com/Dipraise1/publicfund/internal/logic"
	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// FailWith 按错误码映射HTTP状态
func FailWith(c *gin.Context, err error) {
	ErrorResponse(c, statusFor(err), err.Error())
}

// statusFor 金库错误码到HTTP状态的映射
func statusFor(err error) int {
	switch {
	case errors.Is(err, logic.ErrProposalNotFound):
		return http.StatusNotFound
	case errors.Is(err, logic.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, logic.ErrAlreadySupported),
		errors.Is(err, logic.ErrAlreadyVoted),
		errors.Is(err, logic.ErrAlreadyExecuted),
		errors.Is(err, logic.ErrCooldownActive):
		return http.StatusConflict
	case errors.Is(err, logic.ErrInvalidAmount),
		errors.Is(err, logic.ErrInvalidAddress),
		errors.Is(err, logic.ErrEmptyTitle),
		errors.Is(err, logic.ErrUnsupportedToken),
		errors.Is(err, logic.ErrNotAParticipant),
		errors.Is(err, logic.ErrVotingClosed),
		errors.Is(err, logic.ErrVotingStillActive),
		errors.Is(err, logic.ErrProposalNotActive),
		errors.Is(err, logic.ErrQuorumNotReached),
		errors.Is(err, logic.ErrProposalRejected),
		errors.Is(err, logic.ErrInsufficientBalance),
		errors.Is(err, logic.ErrTransferFailed),
		errors.Is(err, logic.ErrSettlementFailed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
