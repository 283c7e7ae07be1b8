// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ledger_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/mrranger939/crowdFund/address"
	"github.com/mrranger939/crowdFund/database/models"
	"github.com/mrranger939/crowdFund/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const oneToken = uint64(1_000_000_000)

var (
	platformWallet = address.Address{0x01}
	creatorWallet  = address.Address{0x02}
	donorWallet    = address.Address{0x03}
	otherWallet    = address.Address{0x04}
)

func newTestLedger(t *testing.T) *ledger.LedgerState {
	t.Helper()
	ls, err := ledger.NewLedgerState(ledger.LedgerStateConfig{
		TimeNow: func() uint64 { return 1700000000 },
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, ls.Close())
	})
	return ls
}

func setupInitialized(t *testing.T, ls *ledger.LedgerState) {
	t.Helper()
	require.NoError(t, ls.Faucet(platformWallet, 100*oneToken))
	require.NoError(
		t,
		ls.Apply(context.Background(), ledger.Initialize{Signer: platformWallet}),
	)
}

// setupCampaign funds the creator wallet and creates a campaign, returning
// its id
func setupCampaign(
	t *testing.T,
	ls *ledger.LedgerState,
	goal uint64,
) uint64 {
	t.Helper()
	require.NoError(t, ls.Faucet(creatorWallet, 100*oneToken))
	require.NoError(t, ls.Apply(context.Background(), ledger.CreateCampaign{
		Title:       "clean water",
		Description: "a well for the village",
		ImageUrl:    "https://example.com/well.png",
		Signer:      creatorWallet,
		Goal:        goal,
	}))
	state, err := ls.ProgramState()
	require.NoError(t, err)
	return uint64(state.CampaignCount)
}

func walletBalance(
	t *testing.T,
	ls *ledger.LedgerState,
	addr address.Address,
) uint64 {
	t.Helper()
	balance, err := ls.WalletBalance(addr)
	require.NoError(t, err)
	return balance
}

func TestInitialize(t *testing.T) {
	ls := newTestLedger(t)
	require.NoError(t, ls.Faucet(platformWallet, 100*oneToken))

	err := ls.Apply(
		context.Background(),
		ledger.Initialize{Signer: platformWallet},
	)
	require.NoError(t, err)

	state, err := ls.ProgramState()
	require.NoError(t, err)
	assert.True(t, state.Initialized)
	assert.Equal(t, platformWallet.Bytes(), state.PlatformAddress)
	assert.Equal(t, uint64(0), uint64(state.CampaignCount))
	assert.Equal(t, uint64(ledger.DefaultPlatformFee), uint64(state.PlatformFee))

	// The signer paid rent for the state account
	stateAddr, _, err := address.ProgramState()
	require.NoError(t, err)
	acct, err := ls.AccountInfo(stateAddr)
	require.NoError(t, err)
	assert.Equal(t, ledger.KindProgramState, acct.Kind)
	assert.Positive(t, acct.Lamports)
	assert.Equal(
		t,
		100*oneToken-acct.Lamports,
		walletBalance(t, ls, platformWallet),
	)

	// Second initialization is rejected, even from another signer
	require.NoError(t, ls.Faucet(otherWallet, 100*oneToken))
	err = ls.Apply(context.Background(), ledger.Initialize{Signer: otherWallet})
	require.ErrorIs(t, err, ledger.ErrAlreadyInitialized)
}

func TestInitializeRequiresFunds(t *testing.T) {
	ls := newTestLedger(t)

	err := ls.Apply(
		context.Background(),
		ledger.Initialize{Signer: platformWallet},
	)
	require.ErrorIs(t, err, ledger.ErrInsufficientLamports)

	_, err = ls.ProgramState()
	require.ErrorIs(t, err, models.ErrProgramStateNotFound)
}

func TestCreateCampaignValidation(t *testing.T) {
	ls := newTestLedger(t)
	setupInitialized(t, ls)
	require.NoError(t, ls.Faucet(creatorWallet, 100*oneToken))

	base := ledger.CreateCampaign{
		Title:       "title",
		Description: "description",
		ImageUrl:    "https://example.com/img.png",
		Signer:      creatorWallet,
		Goal:        10 * oneToken,
	}

	instr := base
	instr.Title = strings.Repeat("t", ledger.MaxTitleLength+1)
	require.ErrorIs(
		t,
		ls.Apply(context.Background(), instr),
		ledger.ErrTitleTooLong,
	)

	instr = base
	instr.Description = strings.Repeat("d", ledger.MaxDescriptionLength+1)
	require.ErrorIs(
		t,
		ls.Apply(context.Background(), instr),
		ledger.ErrDescriptionTooLong,
	)

	instr = base
	instr.ImageUrl = strings.Repeat("u", ledger.MaxImageUrlLength+1)
	require.ErrorIs(
		t,
		ls.Apply(context.Background(), instr),
		ledger.ErrImageUrlTooLong,
	)

	instr = base
	instr.Goal = 0
	require.ErrorIs(
		t,
		ls.Apply(context.Background(), instr),
		ledger.ErrInvalidGoalAmount,
	)

	// Nothing was created
	campaigns, err := ls.Campaigns(false)
	require.NoError(t, err)
	assert.Empty(t, campaigns)
}

func TestCreateCampaign(t *testing.T) {
	ls := newTestLedger(t)
	setupInitialized(t, ls)

	cid := setupCampaign(t, ls, 10*oneToken)
	assert.Equal(t, uint64(1), cid)

	campaign, err := ls.Campaign(cid)
	require.NoError(t, err)
	assert.Equal(t, "clean water", campaign.Title)
	assert.Equal(t, creatorWallet.Bytes(), campaign.Creator)
	assert.Equal(t, uint64(10*oneToken), uint64(campaign.Goal))
	assert.Equal(t, uint64(0), uint64(campaign.AmountRaised))
	assert.True(t, campaign.Active)

	// Campaign account holds its rent deposit
	campaignAddr, _, err := address.Campaign(cid)
	require.NoError(t, err)
	acct, err := ls.AccountInfo(campaignAddr)
	require.NoError(t, err)
	assert.Equal(t, ledger.KindCampaign, acct.Kind)
	assert.Positive(t, acct.Lamports)

	// Ids are sequential
	require.NoError(t, ls.Apply(context.Background(), ledger.CreateCampaign{
		Title:       "second",
		Description: "another",
		ImageUrl:    "https://example.com/2.png",
		Signer:      creatorWallet,
		Goal:        oneToken,
	}))
	state, err := ls.ProgramState()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), uint64(state.CampaignCount))
}

func TestUpdateCampaign(t *testing.T) {
	ls := newTestLedger(t)
	setupInitialized(t, ls)
	cid := setupCampaign(t, ls, 10*oneToken)

	update := ledger.UpdateCampaign{
		Title:       "clean water v2",
		Description: "two wells",
		ImageUrl:    "https://example.com/v2.png",
		Signer:      creatorWallet,
		Cid:         cid,
		Goal:        20 * oneToken,
	}

	// Only the creator may update
	bad := update
	bad.Signer = otherWallet
	require.ErrorIs(
		t,
		ls.Apply(context.Background(), bad),
		ledger.ErrUnauthorisedAccess,
	)

	// Unknown campaign
	bad = update
	bad.Cid = 42
	require.ErrorIs(
		t,
		ls.Apply(context.Background(), bad),
		ledger.ErrCampaignNotFound,
	)

	require.NoError(t, ls.Apply(context.Background(), update))
	campaign, err := ls.Campaign(cid)
	require.NoError(t, err)
	assert.Equal(t, "clean water v2", campaign.Title)
	assert.Equal(t, uint64(20*oneToken), uint64(campaign.Goal))

	// A campaign deactivated by reaching its goal cannot be updated
	require.NoError(t, ls.Faucet(donorWallet, 100*oneToken))
	require.NoError(t, ls.Apply(context.Background(), ledger.Donate{
		Signer: donorWallet,
		Cid:    cid,
		Amount: 20 * oneToken,
	}))
	require.ErrorIs(
		t,
		ls.Apply(context.Background(), update),
		ledger.ErrInActiveCampaign,
	)
}

func TestDonate(t *testing.T) {
	ls := newTestLedger(t)
	setupInitialized(t, ls)
	cid := setupCampaign(t, ls, 100*oneToken)
	require.NoError(t, ls.Faucet(donorWallet, 100*oneToken))

	// Below the minimum
	err := ls.Apply(context.Background(), ledger.Donate{
		Signer: donorWallet,
		Cid:    cid,
		Amount: oneToken - 1,
	})
	require.ErrorIs(t, err, ledger.ErrInvalidDonationAmount)

	// Unknown campaign
	err = ls.Apply(context.Background(), ledger.Donate{
		Signer: donorWallet,
		Cid:    42,
		Amount: 5 * oneToken,
	})
	require.ErrorIs(t, err, ledger.ErrCampaignNotFound)

	// An unknown campaign wins over a below-minimum amount
	err = ls.Apply(context.Background(), ledger.Donate{
		Signer: donorWallet,
		Cid:    42,
		Amount: oneToken - 1,
	})
	require.ErrorIs(t, err, ledger.ErrCampaignNotFound)

	donorBefore := walletBalance(t, ls, donorWallet)
	require.NoError(t, ls.Apply(context.Background(), ledger.Donate{
		Signer: donorWallet,
		Cid:    cid,
		Amount: 5 * oneToken,
	}))

	campaign, err := ls.Campaign(cid)
	require.NoError(t, err)
	assert.Equal(t, uint64(5*oneToken), uint64(campaign.AmountRaised))
	assert.Equal(t, uint64(5*oneToken), uint64(campaign.Balance))
	assert.Equal(t, uint64(1), uint64(campaign.Donors))
	assert.True(t, campaign.Active)

	// Receipt account was allocated and the donor paid its rent on top of
	// the donation
	receiptAddr, _, err := address.Donation(donorWallet, cid, 1)
	require.NoError(t, err)
	receiptAcct, err := ls.AccountInfo(receiptAddr)
	require.NoError(t, err)
	assert.Equal(t, ledger.KindTransaction, receiptAcct.Kind)
	assert.Equal(
		t,
		donorBefore-5*oneToken-receiptAcct.Lamports,
		walletBalance(t, ls, donorWallet),
	)

	donations, err := ls.CampaignDonations(cid)
	require.NoError(t, err)
	require.Len(t, donations, 1)
	assert.Equal(t, donorWallet.Bytes(), donations[0].Owner)
	assert.Equal(t, uint64(5*oneToken), uint64(donations[0].Amount))
	assert.True(t, donations[0].Credited)

	// Exactly one token meets the minimum
	require.NoError(t, ls.Apply(context.Background(), ledger.Donate{
		Signer: donorWallet,
		Cid:    cid,
		Amount: oneToken,
	}))
	campaign, err = ls.Campaign(cid)
	require.NoError(t, err)
	assert.Equal(t, uint64(6*oneToken), uint64(campaign.AmountRaised))
	assert.Equal(t, uint64(2), uint64(campaign.Donors))
}

func TestDonateExpectedReceipt(t *testing.T) {
	ls := newTestLedger(t)
	setupInitialized(t, ls)
	cid := setupCampaign(t, ls, 100*oneToken)
	require.NoError(t, ls.Faucet(donorWallet, 100*oneToken))

	// A mismatched receipt address aborts without side effects
	wrong := address.Address{0xff}
	err := ls.Apply(context.Background(), ledger.Donate{
		ExpectedReceipt: &wrong,
		Signer:          donorWallet,
		Cid:             cid,
		Amount:          5 * oneToken,
	})
	require.ErrorIs(t, err, ledger.ErrAddressMismatch)
	campaign, err := ls.Campaign(cid)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), uint64(campaign.Donors))

	// The correctly derived address is accepted
	expected, _, err := address.Donation(donorWallet, cid, 1)
	require.NoError(t, err)
	require.NoError(t, ls.Apply(context.Background(), ledger.Donate{
		ExpectedReceipt: &expected,
		Signer:          donorWallet,
		Cid:             cid,
		Amount:          5 * oneToken,
	}))
}

func TestDonateGoalCrossing(t *testing.T) {
	ls := newTestLedger(t)
	setupInitialized(t, ls)
	cid := setupCampaign(t, ls, 10*oneToken)
	require.NoError(t, ls.Faucet(donorWallet, 100*oneToken))

	require.NoError(t, ls.Apply(context.Background(), ledger.Donate{
		Signer: donorWallet,
		Cid:    cid,
		Amount: 4 * oneToken,
	}))
	// The donation that crosses the goal is accepted in full and
	// deactivates the campaign
	require.NoError(t, ls.Apply(context.Background(), ledger.Donate{
		Signer: donorWallet,
		Cid:    cid,
		Amount: 7 * oneToken,
	}))

	campaign, err := ls.Campaign(cid)
	require.NoError(t, err)
	assert.Equal(t, uint64(11*oneToken), uint64(campaign.AmountRaised))
	assert.False(t, campaign.Active)

	// No further donations
	err = ls.Apply(context.Background(), ledger.Donate{
		Signer: donorWallet,
		Cid:    cid,
		Amount: oneToken,
	})
	require.ErrorIs(t, err, ledger.ErrInActiveCampaign)

	// Gone from the active listing but still queryable
	active, err := ls.Campaigns(true)
	require.NoError(t, err)
	assert.Empty(t, active)
	all, err := ls.Campaigns(false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDonateGoalReached(t *testing.T) {
	ls := newTestLedger(t)
	setupInitialized(t, ls)
	cid := setupCampaign(t, ls, 10*oneToken)
	require.NoError(t, ls.Faucet(donorWallet, 100*oneToken))

	require.NoError(t, ls.Apply(context.Background(), ledger.Donate{
		Signer: donorWallet,
		Cid:    cid,
		Amount: 5 * oneToken,
	}))
	// Lowering the goal to the amount already raised leaves the campaign
	// active but full
	require.NoError(t, ls.Apply(context.Background(), ledger.UpdateCampaign{
		Title:       "clean water",
		Description: "a well for the village",
		ImageUrl:    "https://example.com/well.png",
		Signer:      creatorWallet,
		Cid:         cid,
		Goal:        5 * oneToken,
	}))

	err := ls.Apply(context.Background(), ledger.Donate{
		Signer: donorWallet,
		Cid:    cid,
		Amount: oneToken,
	})
	require.ErrorIs(t, err, ledger.ErrCampaignGoalReached)
}

func TestDonateInsufficientWalletRollsBack(t *testing.T) {
	ls := newTestLedger(t)
	setupInitialized(t, ls)
	cid := setupCampaign(t, ls, 100*oneToken)
	// Enough for the donation amount but not the receipt rent
	require.NoError(t, ls.Faucet(donorWallet, 5*oneToken))

	err := ls.Apply(context.Background(), ledger.Donate{
		Signer: donorWallet,
		Cid:    cid,
		Amount: 5 * oneToken,
	})
	require.ErrorIs(t, err, ledger.ErrInsufficientLamports)

	// Nothing moved
	campaign, err := ls.Campaign(cid)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), uint64(campaign.AmountRaised))
	assert.Equal(t, uint64(0), uint64(campaign.Donors))
	assert.Equal(t, 5*oneToken, walletBalance(t, ls, donorWallet))
	donations, err := ls.CampaignDonations(cid)
	require.NoError(t, err)
	assert.Empty(t, donations)
}

func TestWithdraw(t *testing.T) {
	ls := newTestLedger(t)
	setupInitialized(t, ls)
	cid := setupCampaign(t, ls, 100*oneToken)
	require.NoError(t, ls.Faucet(donorWallet, 100*oneToken))
	require.NoError(t, ls.Apply(context.Background(), ledger.Donate{
		Signer: donorWallet,
		Cid:    cid,
		Amount: 10 * oneToken,
	}))

	// Only the creator may withdraw
	err := ls.Apply(context.Background(), ledger.Withdraw{
		Signer: otherWallet,
		Cid:    cid,
		Amount: 5 * oneToken,
	})
	require.ErrorIs(t, err, ledger.ErrUnauthorisedAccess)

	// Below the minimum
	err = ls.Apply(context.Background(), ledger.Withdraw{
		Signer: creatorWallet,
		Cid:    cid,
		Amount: oneToken - 1,
	})
	require.ErrorIs(t, err, ledger.ErrInvalidWithdrawAmount)

	// The creator check wins over a below-minimum amount
	err = ls.Apply(context.Background(), ledger.Withdraw{
		Signer: otherWallet,
		Cid:    cid,
		Amount: oneToken - 1,
	})
	require.ErrorIs(t, err, ledger.ErrUnauthorisedAccess)

	// More than the spendable balance
	err = ls.Apply(context.Background(), ledger.Withdraw{
		Signer: creatorWallet,
		Cid:    cid,
		Amount: 20 * oneToken,
	})
	require.ErrorIs(t, err, ledger.ErrInsufficientFund)

	creatorBefore := walletBalance(t, ls, creatorWallet)
	platformBefore := walletBalance(t, ls, platformWallet)
	require.NoError(t, ls.Apply(context.Background(), ledger.Withdraw{
		Signer: creatorWallet,
		Cid:    cid,
		Amount: 5 * oneToken,
	}))

	// Fee is an integer percentage with truncation
	fee := 5 * oneToken * ledger.DefaultPlatformFee / 100
	net := 5*oneToken - fee
	assert.Equal(t, platformBefore+fee, walletBalance(t, ls, platformWallet))

	receiptAddr, _, err := address.Withdrawal(creatorWallet, cid, 1)
	require.NoError(t, err)
	receiptAcct, err := ls.AccountInfo(receiptAddr)
	require.NoError(t, err)
	assert.Equal(
		t,
		creatorBefore+net-receiptAcct.Lamports,
		walletBalance(t, ls, creatorWallet),
	)

	// Balance drops by the full amount; raised total is untouched
	campaign, err := ls.Campaign(cid)
	require.NoError(t, err)
	assert.Equal(t, uint64(10*oneToken), uint64(campaign.AmountRaised))
	assert.Equal(t, uint64(5*oneToken), uint64(campaign.Balance))
	assert.Equal(t, uint64(1), uint64(campaign.Withdrawals))

	withdrawals, err := ls.CampaignWithdrawals(cid)
	require.NoError(t, err)
	require.Len(t, withdrawals, 1)
	assert.False(t, withdrawals[0].Credited)
	assert.Equal(t, uint64(5*oneToken), uint64(withdrawals[0].Amount))

	// Draining the rest is allowed
	require.NoError(t, ls.Apply(context.Background(), ledger.Withdraw{
		Signer: creatorWallet,
		Cid:    cid,
		Amount: 5 * oneToken,
	}))
	campaign, err = ls.Campaign(cid)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), uint64(campaign.Balance))
}

func TestDeleteCampaign(t *testing.T) {
	ls := newTestLedger(t)
	setupInitialized(t, ls)
	cid := setupCampaign(t, ls, 100*oneToken)
	require.NoError(t, ls.Faucet(donorWallet, 100*oneToken))
	require.NoError(t, ls.Apply(context.Background(), ledger.Donate{
		Signer: donorWallet,
		Cid:    cid,
		Amount: 10 * oneToken,
	}))

	// Only the creator may delete
	err := ls.Apply(context.Background(), ledger.DeleteCampaign{
		Signer: otherWallet,
		Cid:    cid,
	})
	require.ErrorIs(t, err, ledger.ErrUnauthorisedAccess)

	campaignAddr, _, err := address.Campaign(cid)
	require.NoError(t, err)
	acct, err := ls.AccountInfo(campaignAddr)
	require.NoError(t, err)
	creatorBefore := walletBalance(t, ls, creatorWallet)

	require.NoError(t, ls.Apply(context.Background(), ledger.DeleteCampaign{
		Signer: creatorWallet,
		Cid:    cid,
	}))

	// The creator gets the spendable balance plus the rent deposit
	assert.Equal(
		t,
		creatorBefore+acct.Lamports,
		walletBalance(t, ls, creatorWallet),
	)
	_, err = ls.AccountInfo(campaignAddr)
	require.ErrorIs(t, err, ledger.ErrAccountNotFound)
	_, err = ls.Campaign(cid)
	require.ErrorIs(t, err, models.ErrCampaignNotFound)

	// Receipts survive deletion
	donations, err := ls.CampaignDonations(cid)
	require.NoError(t, err)
	assert.Len(t, donations, 1)

	// A second delete no longer finds the campaign
	err = ls.Apply(context.Background(), ledger.DeleteCampaign{
		Signer: creatorWallet,
		Cid:    cid,
	})
	require.ErrorIs(t, err, ledger.ErrCampaignNotFound)
}

func TestDeleteInactiveCampaign(t *testing.T) {
	ls := newTestLedger(t)
	setupInitialized(t, ls)
	cid := setupCampaign(t, ls, 10*oneToken)
	require.NoError(t, ls.Faucet(donorWallet, 100*oneToken))
	require.NoError(t, ls.Apply(context.Background(), ledger.Donate{
		Signer: donorWallet,
		Cid:    cid,
		Amount: 10 * oneToken,
	}))

	err := ls.Apply(context.Background(), ledger.DeleteCampaign{
		Signer: creatorWallet,
		Cid:    cid,
	})
	require.ErrorIs(t, err, ledger.ErrInActiveCampaign)
}

func TestUpdatePlatformSettings(t *testing.T) {
	ls := newTestLedger(t)
	setupInitialized(t, ls)

	// Only the platform address may change the fee
	err := ls.Apply(context.Background(), ledger.UpdatePlatformSettings{
		Signer: otherWallet,
		NewFee: 10,
	})
	require.ErrorIs(t, err, ledger.ErrUnauthorisedAccess)

	// Fee bounds
	err = ls.Apply(context.Background(), ledger.UpdatePlatformSettings{
		Signer: platformWallet,
		NewFee: 0,
	})
	require.ErrorIs(t, err, ledger.ErrInvalidPlatformFee)
	err = ls.Apply(context.Background(), ledger.UpdatePlatformSettings{
		Signer: platformWallet,
		NewFee: ledger.MaxPlatformFee + 1,
	})
	require.ErrorIs(t, err, ledger.ErrInvalidPlatformFee)

	require.NoError(t, ls.Apply(context.Background(), ledger.UpdatePlatformSettings{
		Signer: platformWallet,
		NewFee: 10,
	}))
	state, err := ls.ProgramState()
	require.NoError(t, err)
	assert.Equal(t, uint64(10), uint64(state.PlatformFee))

	// The new fee applies to subsequent withdrawals
	cid := setupCampaign(t, ls, 100*oneToken)
	require.NoError(t, ls.Faucet(donorWallet, 100*oneToken))
	require.NoError(t, ls.Apply(context.Background(), ledger.Donate{
		Signer: donorWallet,
		Cid:    cid,
		Amount: 10 * oneToken,
	}))
	platformBefore := walletBalance(t, ls, platformWallet)
	require.NoError(t, ls.Apply(context.Background(), ledger.Withdraw{
		Signer: creatorWallet,
		Cid:    cid,
		Amount: 10 * oneToken,
	}))
	assert.Equal(
		t,
		platformBefore+10*oneToken*10/100,
		walletBalance(t, ls, platformWallet),
	)
}

func TestConcurrentDonations(t *testing.T) {
	ls := newTestLedger(t)
	setupInitialized(t, ls)
	cid := setupCampaign(t, ls, 1000*oneToken)

	const donors = 8
	wallets := make([]address.Address, donors)
	for i := range wallets {
		wallets[i] = address.Address{0x10, byte(i)}
		require.NoError(t, ls.Faucet(wallets[i], 100*oneToken))
	}

	var wg sync.WaitGroup
	for _, wallet := range wallets {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := ls.Apply(context.Background(), ledger.Donate{
				Signer: wallet,
				Cid:    cid,
				Amount: 5 * oneToken,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	campaign, err := ls.Campaign(cid)
	require.NoError(t, err)
	assert.Equal(t, uint64(donors*5*oneToken), uint64(campaign.AmountRaised))
	assert.Equal(t, uint64(donors), uint64(campaign.Donors))
	donations, err := ls.CampaignDonations(cid)
	require.NoError(t, err)
	assert.Len(t, donations, donors)
}

func TestTransactionsByOwner(t *testing.T) {
	ls := newTestLedger(t)
	setupInitialized(t, ls)
	cid := setupCampaign(t, ls, 100*oneToken)
	require.NoError(t, ls.Faucet(donorWallet, 100*oneToken))

	require.NoError(t, ls.Apply(context.Background(), ledger.Donate{
		Signer: donorWallet,
		Cid:    cid,
		Amount: 5 * oneToken,
	}))
	require.NoError(t, ls.Apply(context.Background(), ledger.Donate{
		Signer: donorWallet,
		Cid:    cid,
		Amount: 3 * oneToken,
	}))

	records, err := ls.TransactionsByOwner(donorWallet)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, record := range records {
		assert.Equal(t, donorWallet.Bytes(), record.Owner)
		assert.True(t, record.Credited)
	}
}
