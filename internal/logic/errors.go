package logic

import (
	"errors"
)

// 金库错误码。消息沿用链上合约的回退语义，展示层直接透出。
var (
	ErrInvalidAmount       = errors.New("amount must be greater than 0")
	ErrInvalidAddress      = errors.New("invalid address")
	ErrUnsupportedToken    = errors.New("token not supported")
	ErrAlreadySupported    = errors.New("token already supported")
	ErrNotAParticipant     = errors.New("only donors can vote")
	ErrEmptyTitle          = errors.New("title cannot be empty")
	ErrCooldownActive      = errors.New("must wait before creating another proposal")
	ErrProposalNotFound    = errors.New("proposal does not exist")
	ErrVotingClosed        = errors.New("voting period has ended")
	ErrAlreadyVoted        = errors.New("already voted on this proposal")
	ErrVotingStillActive   = errors.New("voting period is still active")
	ErrProposalNotActive   = errors.New("proposal is not active")
	ErrAlreadyExecuted     = errors.New("proposal already executed")
	ErrQuorumNotReached    = errors.New("quorum not reached")
	ErrProposalRejected    = errors.New("proposal did not pass")
	ErrInsufficientBalance = errors.New("insufficient vault balance")
	ErrTransferFailed      = errors.New("token transfer failed")
	ErrSettlementFailed    = errors.New("settlement transfer failed")
	ErrUnauthorized        = errors.New("caller is not the owner")
)
