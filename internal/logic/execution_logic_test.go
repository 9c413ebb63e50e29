package logic

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dipraise1/publicfund/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteBeforeWindowFails(t *testing.T) {
	vt := newVaultTest(t)
	vt.donate(t, testDonor1, 100)
	id := vt.createEthProposal(t, testDonor1, 10)

	_, err := vt.execution.ExecuteProposal(context.Background(), id)
	assert.ErrorIs(t, err, ErrVotingStillActive)

	// 状态不得变动
	proposal, err := vt.proposals.GetProposal(id)
	require.NoError(t, err)
	assert.True(t, proposal.IsActive)
	assert.False(t, proposal.Executed)
	assert.Empty(t, vt.mover.pays)
}

func TestExecuteUnknownProposal(t *testing.T) {
	vt := newVaultTest(t)

	_, err := vt.execution.ExecuteProposal(context.Background(), 7)
	assert.ErrorIs(t, err, ErrProposalNotFound)
}

// 三个捐赠人各捐1，向收款人转2：法定参与率 3/3，赞成 2 反对 1。
func TestExecuteSettlesApprovedProposal(t *testing.T) {
	vt := newVaultTest(t)
	vt.donate(t, testDonor1, 1)
	vt.donate(t, testDonor2, 1)
	vt.donate(t, testDonor3, 1)
	id := vt.createEthProposal(t, testDonor1, 2)

	_, err := vt.votes.Vote(id, testDonor1, true)
	require.NoError(t, err)
	_, err = vt.votes.Vote(id, testDonor2, true)
	require.NoError(t, err)
	_, err = vt.votes.Vote(id, testDonor3, false)
	require.NoError(t, err)

	vt.clock.Advance(7*24*time.Hour + time.Second)

	proposal, err := vt.execution.ExecuteProposal(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, proposal.Executed)
	assert.False(t, proposal.IsActive)

	// 收款人收到2，金库余1
	require.Len(t, vt.mover.pays, 1)
	assert.Equal(t, int64(2), vt.mover.pays[0].Amount)
	assert.Equal(t, testRecipient, vt.mover.pays[0].To)

	balance, err := vt.custody.GetEthBalance()
	require.NoError(t, err)
	assert.Equal(t, int64(1), balance)

	payouts, total, err := vt.custody.GetPayouts(model.PayoutKindSettlement, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, id, payouts[0].ProposalID)

	// 执行事件携带结算明细
	var event model.EventRecord
	require.NoError(t, vt.db.Where("name = ?", model.EventProposalExecuted).First(&event).Error)
	assert.Contains(t, event.Data, "settlements")
	assert.Contains(t, event.Data, "0xpay1")

	// 重复执行被拒且不再出金
	_, err = vt.execution.ExecuteProposal(context.Background(), id)
	assert.ErrorIs(t, err, ErrAlreadyExecuted)
	assert.Len(t, vt.mover.pays, 1)
}

// 五个捐赠人只有一人投票：1/5 = 20% < 51%，终局失败。
func TestExecuteQuorumNotReached(t *testing.T) {
	vt := newVaultTest(t)
	for _, donor := range []string{testDonor1, testDonor2, testDonor3, testDonor4, testDonor5} {
		vt.donate(t, donor, 1)
	}
	id := vt.createEthProposal(t, testDonor1, 1)

	_, err := vt.votes.Vote(id, testDonor1, true)
	require.NoError(t, err)

	vt.clock.Advance(7*24*time.Hour + time.Second)

	_, err = vt.execution.ExecuteProposal(context.Background(), id)
	assert.ErrorIs(t, err, ErrQuorumNotReached)

	proposal, err := vt.proposals.GetProposal(id)
	require.NoError(t, err)
	assert.False(t, proposal.IsActive)
	assert.False(t, proposal.Executed)
	assert.Empty(t, vt.mover.pays)

	// 终局失败不可重试成功
	_, err = vt.execution.ExecuteProposal(context.Background(), id)
	assert.ErrorIs(t, err, ErrProposalNotActive)
}

func TestExecuteRejectsTie(t *testing.T) {
	vt := newVaultTest(t)
	vt.donate(t, testDonor1, 1)
	vt.donate(t, testDonor2, 1)
	id := vt.createEthProposal(t, testDonor1, 1)

	_, err := vt.votes.Vote(id, testDonor1, true)
	require.NoError(t, err)
	_, err = vt.votes.Vote(id, testDonor2, false)
	require.NoError(t, err)

	vt.clock.Advance(7*24*time.Hour + time.Second)

	// 平票不过：赞成必须严格多于反对
	_, err = vt.execution.ExecuteProposal(context.Background(), id)
	assert.ErrorIs(t, err, ErrProposalRejected)

	proposal, err := vt.proposals.GetProposal(id)
	require.NoError(t, err)
	assert.False(t, proposal.IsActive)
	assert.False(t, proposal.Executed)
}

func TestExecuteSettlementFailureIsRetriable(t *testing.T) {
	vt := newVaultTest(t)
	vt.donate(t, testDonor1, 10)
	id := vt.createEthProposal(t, testDonor1, 5)

	_, err := vt.votes.Vote(id, testDonor1, true)
	require.NoError(t, err)

	vt.clock.Advance(7*24*time.Hour + time.Second)

	vt.mover.payErr = errors.New("rpc unavailable")
	_, err = vt.execution.ExecuteProposal(context.Background(), id)
	assert.ErrorIs(t, err, ErrSettlementFailed)

	// 回滚后提案保持活跃，余额未动
	proposal, err := vt.proposals.GetProposal(id)
	require.NoError(t, err)
	assert.True(t, proposal.IsActive)
	assert.False(t, proposal.Executed)

	balance, err := vt.custody.GetEthBalance()
	require.NoError(t, err)
	assert.Equal(t, int64(10), balance)

	// 故障恢复后重试成功
	vt.mover.payErr = nil
	_, err = vt.execution.ExecuteProposal(context.Background(), id)
	require.NoError(t, err)

	balance, err = vt.custody.GetEthBalance()
	require.NoError(t, err)
	assert.Equal(t, int64(5), balance)
}

func TestExecuteInsufficientCustodyIsSettlementFailure(t *testing.T) {
	vt := newVaultTest(t)
	vt.donate(t, testDonor1, 3)
	id := vt.createEthProposal(t, testDonor1, 5)

	_, err := vt.votes.Vote(id, testDonor1, true)
	require.NoError(t, err)

	vt.clock.Advance(7*24*time.Hour + time.Second)

	_, err = vt.execution.ExecuteProposal(context.Background(), id)
	assert.ErrorIs(t, err, ErrSettlementFailed)

	proposal, err := vt.proposals.GetProposal(id)
	require.NoError(t, err)
	assert.True(t, proposal.IsActive)
}

func TestExecuteTokenProposal(t *testing.T) {
	vt := newVaultTest(t)
	vt.registerToken(t)
	vt.donate(t, testDonor1, 1)
	_, err := vt.donations.DonateToken(context.Background(), testDonor1, testToken, 100)
	require.NoError(t, err)

	proposal, err := vt.proposals.CreateProposal(CreateProposalInput{
		Proposer:     testDonor1,
		Title:        "Token Grant",
		Recipient:    testRecipient,
		TokenAddress: testToken,
		TokenAmount:  40,
	})
	require.NoError(t, err)

	_, err = vt.votes.Vote(proposal.ID, testDonor1, true)
	require.NoError(t, err)

	vt.clock.Advance(7*24*time.Hour + time.Second)

	_, err = vt.execution.ExecuteProposal(context.Background(), proposal.ID)
	require.NoError(t, err)

	require.Len(t, vt.mover.pays, 1)
	assert.Equal(t, int64(40), vt.mover.pays[0].Amount)

	balance, err := vt.custody.GetTokenBalance(testToken)
	require.NoError(t, err)
	assert.Equal(t, int64(60), balance)
}
