package task

import (
	"context"
	"errors"
	"time"

	"github.com/Dipraise1/publicfund/internal/chain"
	"github.com/Dipraise1/publicfund/internal/config"
	"github.com/Dipraise1/publicfund/internal/logger"
	"github.com/Dipraise1/publicfund/internal/logic"
	"github.com/Dipraise1/publicfund/internal/model"
	"github.com/Dipraise1/publicfund/internal/notify"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// ProposalFinalizeJob 提案终结任务：定期结算投票窗口已结束的活跃提案。
// 与手动触发执行走同一状态机，不会重复出金。
type ProposalFinalizeJob struct {
	db             *gorm.DB
	config         *config.Config
	executionLogic *logic.ExecutionLogic
}

// NewProposalFinalizeJob 创建提案终结任务
func NewProposalFinalizeJob(db *gorm.DB, mover chain.AssetMover, notifier *notify.Notifier, cfg *config.Config) *ProposalFinalizeJob {
	return &ProposalFinalizeJob{
		db:             db,
		config:         cfg,
		executionLogic: logic.NewExecutionLogic(db, cfg.Vault, mover, notifier),
	}
}

// GetName 获取任务名称
func (j *ProposalFinalizeJob) GetName() string {
	return "proposal_finalizer"
}

// GetSchedule 获取调度配置
func (j *ProposalFinalizeJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *ProposalFinalizeJob) Execute() {
	logger.Info("Starting proposal finalize task")

	now := time.Now()

	// 查找投票窗口已结束的活跃提案
	var proposals []model.Proposal
	err := j.db.Where("is_active = ? AND executed = ? AND voting_ends_at < ?", true, false, now).
		Order("id ASC").
		Find(&proposals).Error
	if err != nil {
		logger.Error("Failed to fetch expired proposals: %v", err)
		return
	}

	settled := 0
	closed := 0

	for _, proposal := range proposals {
		_, err := j.executionLogic.ExecuteProposal(context.Background(), proposal.ID)
		switch {
		case err == nil:
			logger.Info("Settled proposal %d to %s", proposal.ID, proposal.Recipient)
			settled++
		case errors.Is(err, logic.ErrQuorumNotReached), errors.Is(err, logic.ErrProposalRejected):
			logger.Info("Closed proposal %d: %v", proposal.ID, err)
			closed++
		case errors.Is(err, logic.ErrSettlementFailed):
			// 保持活跃，下一轮重试
			logger.Warn("Settlement failed for proposal %d, will retry: %v", proposal.ID, err)
		default:
			logger.Error("Failed to finalize proposal %d: %v", proposal.ID, err)
		}
	}

	logger.Info("Proposal finalize completed. Settled %d, closed %d of %d expired proposals",
		settled, closed, len(proposals))
}
