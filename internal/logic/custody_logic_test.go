package logic

import (
	"context"
	"testing"

	"github.com/Dipraise1/publicfund/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmergencyWithdrawOwnerOnly(t *testing.T) {
	vt := newVaultTest(t)
	vt.donate(t, testDonor1, 100)

	_, err := vt.custody.EmergencyWithdraw(context.Background(), testDonor1, "", 50)
	assert.ErrorIs(t, err, ErrUnauthorized)

	balance, err := vt.custody.GetEthBalance()
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)
}

func TestEmergencyWithdrawDebitsCustody(t *testing.T) {
	vt := newVaultTest(t)
	vt.donate(t, testDonor1, 100)

	payout, err := vt.custody.EmergencyWithdraw(context.Background(), testOwner, "", 60)
	require.NoError(t, err)
	assert.Equal(t, model.PayoutKindEmergency, payout.Kind)
	assert.Equal(t, int64(60), payout.Amount)

	balance, err := vt.custody.GetEthBalance()
	require.NoError(t, err)
	assert.Equal(t, int64(40), balance)

	require.Len(t, vt.mover.pays, 1)
	assert.Equal(t, testOwner, vt.mover.pays[0].To)

	_, total, err := vt.custody.GetPayouts(model.PayoutKindEmergency, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestEmergencyWithdrawInsufficientBalance(t *testing.T) {
	vt := newVaultTest(t)
	vt.donate(t, testDonor1, 10)

	_, err := vt.custody.EmergencyWithdraw(context.Background(), testOwner, "", 50)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	balance, err := vt.custody.GetEthBalance()
	require.NoError(t, err)
	assert.Equal(t, int64(10), balance)
}

func TestEmergencyWithdrawRejectsNonPositiveAmount(t *testing.T) {
	vt := newVaultTest(t)

	_, err := vt.custody.EmergencyWithdraw(context.Background(), testOwner, "", 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestEmergencyWithdrawToken(t *testing.T) {
	vt := newVaultTest(t)
	vt.registerToken(t)
	vt.donate(t, testDonor1, 1)
	_, err := vt.donations.DonateToken(context.Background(), testDonor1, testToken, 100)
	require.NoError(t, err)

	payout, err := vt.custody.EmergencyWithdraw(context.Background(), testOwner, testToken, 30)
	require.NoError(t, err)
	assert.Equal(t, testToken, payout.Asset)

	balance, err := vt.custody.GetTokenBalance(testToken)
	require.NoError(t, err)
	assert.Equal(t, int64(70), balance)
}
