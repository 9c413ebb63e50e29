package logic

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Dipraise1/publicfund/internal/config"
	"github.com/Dipraise1/publicfund/internal/notify"
	"github.com/Dipraise1/publicfund/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// 测试地址只用数字位，避免校验和大小写差异
const (
	testOwner     = "0x0000000000000000000000000000000000001001"
	testDonor1    = "0x0000000000000000000000000000000000001111"
	testDonor2    = "0x0000000000000000000000000000000000002222"
	testDonor3    = "0x0000000000000000000000000000000000003333"
	testDonor4    = "0x0000000000000000000000000000000000004444"
	testDonor5    = "0x0000000000000000000000000000000000005555"
	testRecipient = "0x0000000000000000000000000000000000006666"
	testToken     = "0x0000000000000000000000000000000000007777"
	testOutsider  = "0x0000000000000000000000000000000000008888"
)

// fakeClock 可推进的测试时钟
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// moverCall 一次资产转移调用
type moverCall struct {
	Token  string
	From   string
	To     string
	Amount int64
}

// fakeMover 记录调用的资产转移假实现
type fakeMover struct {
	pullErr error
	payErr  error
	pulls   []moverCall
	pays    []moverCall
}

func (m *fakeMover) PullToken(ctx context.Context, token, from string, amount int64) (string, error) {
	if m.pullErr != nil {
		return "", m.pullErr
	}
	m.pulls = append(m.pulls, moverCall{Token: token, From: from, Amount: amount})
	return fmt.Sprintf("0xpull%d", len(m.pulls)), nil
}

func (m *fakeMover) PayNative(ctx context.Context, to string, amount int64) (string, error) {
	if m.payErr != nil {
		return "", m.payErr
	}
	m.pays = append(m.pays, moverCall{To: to, Amount: amount})
	return fmt.Sprintf("0xpay%d", len(m.pays)), nil
}

func (m *fakeMover) PayToken(ctx context.Context, token, to string, amount int64) (string, error) {
	if m.payErr != nil {
		return "", m.payErr
	}
	m.pays = append(m.pays, moverCall{Token: token, To: to, Amount: amount})
	return fmt.Sprintf("0xpay%d", len(m.pays)), nil
}

// vaultTest 金库测试脚手架
type vaultTest struct {
	db        *gorm.DB
	clock     *fakeClock
	mover     *fakeMover
	tokens    *TokenLogic
	donations *DonationLogic
	proposals *ProposalLogic
	votes     *VoteLogic
	execution *ExecutionLogic
	custody   *CustodyLogic
}

func newVaultTest(t *testing.T) *vaultTest {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		NamingStrategy: &schema.NamingStrategy{
			SingularTable: true,
		},
	})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))

	notifier, err := notify.NewNotifier(db, 2)
	require.NoError(t, err)
	t.Cleanup(notifier.Close)

	vault := config.VaultConfig{
		Owner:            testOwner,
		VotingDuration:   7 * 24 * 60 * 60,
		ProposalInterval: 24 * 60 * 60,
		QuorumPercent:    51,
	}

	clock := newFakeClock()
	mover := &fakeMover{}

	vt := &vaultTest{
		db:        db,
		clock:     clock,
		mover:     mover,
		tokens:    NewTokenLogic(db, vault.Owner, notifier),
		donations: NewDonationLogic(db, mover, notifier),
		proposals: NewProposalLogic(db, vault, notifier),
		votes:     NewVoteLogic(db, notifier),
		execution: NewExecutionLogic(db, vault, mover, notifier),
		custody:   NewCustodyLogic(db, vault.Owner, mover, notifier),
	}

	vt.tokens.now = clock.Now
	vt.donations.now = clock.Now
	vt.proposals.now = clock.Now
	vt.votes.now = clock.Now
	vt.execution.now = clock.Now
	vt.custody.now = clock.Now

	return vt
}

// donate 捐赠原生资产的快捷方式
func (vt *vaultTest) donate(t *testing.T, donor string, amount int64) {
	t.Helper()
	_, err := vt.donations.DonateEth(donor, amount)
	require.NoError(t, err)
}

// registerToken 注册测试代币的快捷方式
func (vt *vaultTest) registerToken(t *testing.T) {
	t.Helper()
	_, err := vt.tokens.AddSupportedToken(testOwner, testToken, "TST", 18)
	require.NoError(t, err)
}

// createEthProposal 由 proposer 创建原生资产提案的快捷方式
func (vt *vaultTest) createEthProposal(t *testing.T, proposer string, amount int64) uint {
	t.Helper()
	proposal, err := vt.proposals.CreateProposal(CreateProposalInput{
		Proposer:  proposer,
		Title:     "Community Grant",
		Recipient: testRecipient,
		EthAmount: amount,
	})
	require.NoError(t, err)
	return proposal.ID
}
