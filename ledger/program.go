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

package ledger

import (
	"errors"

	"github.com/mrranger939/crowdFund/address"
	"github.com/mrranger939/crowdFund/database"
	"github.com/mrranger939/crowdFund/database/models"
	"github.com/mrranger939/crowdFund/database/types"
)

// applyInitialize creates the program state singleton. The signer becomes
// the platform address and pays rent for the state account.
func (ls *LedgerState) applyInitialize(
	txn *database.Txn,
	instr Initialize,
) error {
	stateAddr, bump, err := address.ProgramState()
	if err != nil {
		return err
	}
	exists, err := ls.db.AccountExists(stateAddr.Bytes(), txn)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyInitialized
	}
	data := ProgramStateData{
		PlatformAddress: instr.Signer,
		CampaignCount:   0,
		PlatformFee:     DefaultPlatformFee,
		Initialized:     true,
	}
	payload, err := encodePayload(&data)
	if err != nil {
		return err
	}
	rent := RentExemptMinimum(len(payload))
	if err := ls.debitWallet(txn, instr.Signer, rent); err != nil {
		return err
	}
	acct := &Account{
		Kind:     KindProgramState,
		Lamports: rent,
		Bump:     bump,
		Data:     payload,
	}
	if err := ls.putAccount(txn, stateAddr, acct); err != nil {
		return err
	}
	return ls.db.SetProgramState(&models.ProgramState{
		Address:         stateAddr.Bytes(),
		PlatformAddress: instr.Signer.Bytes(),
		CampaignCount:   types.Uint64(data.CampaignCount),
		PlatformFee:     types.Uint64(data.PlatformFee),
		Initialized:     data.Initialized,
	}, txn)
}

// applyCreateCampaign allocates the next campaign account and bumps the
// campaign counter
func (ls *LedgerState) applyCreateCampaign(
	txn *database.Txn,
	instr CreateCampaign,
) error {
	if err := checkCampaignFields(
		instr.Title, instr.Description, instr.ImageUrl, instr.Goal,
	); err != nil {
		return err
	}
	state, err := ls.readProgramState(txn)
	if err != nil {
		return err
	}
	cid, err := checkedAdd(state.CampaignCount, 1)
	if err != nil {
		return err
	}
	campaignAddr, bump, err := address.Campaign(cid)
	if err != nil {
		return err
	}
	exists, err := ls.db.AccountExists(campaignAddr.Bytes(), txn)
	if err != nil {
		return err
	}
	if exists {
		return ErrAccountExists
	}
	data := CampaignData{
		Cid:         cid,
		Creator:     instr.Signer,
		Title:       instr.Title,
		Description: instr.Description,
		ImageUrl:    instr.ImageUrl,
		Goal:        instr.Goal,
		Timestamp:   ls.timeNow(),
		Active:      true,
	}
	payload, err := encodePayload(&data)
	if err != nil {
		return err
	}
	rent := RentExemptMinimum(len(payload))
	if err := ls.debitWallet(txn, instr.Signer, rent); err != nil {
		return err
	}
	acct := &Account{
		Kind:     KindCampaign,
		Lamports: rent,
		Bump:     bump,
		Data:     payload,
	}
	if err := ls.putAccount(txn, campaignAddr, acct); err != nil {
		return err
	}
	state.CampaignCount = cid
	if err := ls.writeProgramState(txn, state); err != nil {
		return err
	}
	return ls.writeCampaignProjection(txn, campaignAddr, &data)
}

// applyUpdateCampaign rewrites the mutable fields of an active campaign
func (ls *LedgerState) applyUpdateCampaign(
	txn *database.Txn,
	instr UpdateCampaign,
) error {
	if err := checkCampaignFields(
		instr.Title, instr.Description, instr.ImageUrl, instr.Goal,
	); err != nil {
		return err
	}
	campaignAddr, acct, data, err := ls.readCampaign(txn, instr.Cid)
	if err != nil {
		return err
	}
	if data.Creator != instr.Signer {
		return ErrUnauthorisedAccess
	}
	if !data.Active {
		return ErrInActiveCampaign
	}
	data.Title = instr.Title
	data.Description = instr.Description
	data.ImageUrl = instr.ImageUrl
	data.Goal = instr.Goal
	if err := ls.writeCampaign(txn, campaignAddr, acct, data); err != nil {
		return err
	}
	return ls.writeCampaignProjection(txn, campaignAddr, data)
}

// applyDonate moves lamports from the donor's wallet into the campaign and
// allocates a donation receipt. A donation that meets or crosses the goal is
// accepted and deactivates the campaign.
func (ls *LedgerState) applyDonate(
	txn *database.Txn,
	instr Donate,
) error {
	campaignAddr, acct, data, err := ls.readCampaign(txn, instr.Cid)
	if err != nil {
		return err
	}
	if !data.Active {
		return ErrInActiveCampaign
	}
	if instr.Amount < MinMoveAmount {
		return ErrInvalidDonationAmount
	}
	if data.AmountRaised >= data.Goal {
		return ErrCampaignGoalReached
	}
	seq, err := checkedAdd(data.Donors, 1)
	if err != nil {
		return err
	}
	receiptAddr, receiptBump, err := address.Donation(
		instr.Signer, instr.Cid, seq,
	)
	if err != nil {
		return err
	}
	if instr.ExpectedReceipt != nil && *instr.ExpectedReceipt != receiptAddr {
		return ErrAddressMismatch
	}
	receipt := TransactionData{
		Owner:     instr.Signer,
		Cid:       instr.Cid,
		Amount:    instr.Amount,
		Timestamp: ls.timeNow(),
		Credited:  true,
	}
	payload, err := encodePayload(&receipt)
	if err != nil {
		return err
	}
	rent := RentExemptMinimum(len(payload))
	cost, err := checkedAdd(instr.Amount, rent)
	if err != nil {
		return err
	}
	if err := ls.debitWallet(txn, instr.Signer, cost); err != nil {
		return err
	}
	if err := ls.createReceipt(
		txn, receiptAddr, receiptBump, rent, &receipt, seq,
	); err != nil {
		return err
	}
	if acct.Lamports, err = checkedAdd(acct.Lamports, instr.Amount); err != nil {
		return err
	}
	if data.AmountRaised, err = checkedAdd(data.AmountRaised, instr.Amount); err != nil {
		return err
	}
	if data.Balance, err = checkedAdd(data.Balance, instr.Amount); err != nil {
		return err
	}
	data.Donors = seq
	if data.AmountRaised >= data.Goal {
		data.Active = false
	}
	if err := ls.writeCampaign(txn, campaignAddr, acct, data); err != nil {
		return err
	}
	return ls.writeCampaignProjection(txn, campaignAddr, data)
}

// applyWithdraw pays out part of a campaign balance to its creator, less the
// platform fee, and allocates a withdrawal receipt
func (ls *LedgerState) applyWithdraw(
	txn *database.Txn,
	instr Withdraw,
) error {
	campaignAddr, acct, data, err := ls.readCampaign(txn, instr.Cid)
	if err != nil {
		return err
	}
	if data.Creator != instr.Signer {
		return ErrUnauthorisedAccess
	}
	if instr.Amount < MinMoveAmount {
		return ErrInvalidWithdrawAmount
	}
	if instr.Amount > data.Balance {
		return ErrInsufficientFund
	}
	state, err := ls.readProgramState(txn)
	if err != nil {
		return err
	}
	// Integer percentage with truncation
	gross, err := checkedMul(instr.Amount, state.PlatformFee)
	if err != nil {
		return err
	}
	fee := gross / 100
	net := instr.Amount - fee
	seq, err := checkedAdd(data.Withdrawals, 1)
	if err != nil {
		return err
	}
	receiptAddr, receiptBump, err := address.Withdrawal(
		instr.Signer, instr.Cid, seq,
	)
	if err != nil {
		return err
	}
	if instr.ExpectedReceipt != nil && *instr.ExpectedReceipt != receiptAddr {
		return ErrAddressMismatch
	}
	receipt := TransactionData{
		Owner:     instr.Signer,
		Cid:       instr.Cid,
		Amount:    instr.Amount,
		Timestamp: ls.timeNow(),
		Credited:  false,
	}
	payload, err := encodePayload(&receipt)
	if err != nil {
		return err
	}
	rent := RentExemptMinimum(len(payload))
	if err := ls.createReceipt(
		txn, receiptAddr, receiptBump, rent, &receipt, seq,
	); err != nil {
		return err
	}
	// Campaign pays out the full amount; the creator nets the amount less
	// the platform fee and the receipt rent
	if acct.Lamports, err = checkedSub(acct.Lamports, instr.Amount); err != nil {
		return err
	}
	data.Balance -= instr.Amount
	data.Withdrawals = seq
	if err := ls.creditWallet(txn, instr.Signer, net); err != nil {
		return err
	}
	if err := ls.debitWallet(txn, instr.Signer, rent); err != nil {
		return err
	}
	if fee > 0 {
		if err := ls.creditWallet(txn, state.PlatformAddress, fee); err != nil {
			return err
		}
	}
	if err := ls.writeCampaign(txn, campaignAddr, acct, data); err != nil {
		return err
	}
	return ls.writeCampaignProjection(txn, campaignAddr, data)
}

// applyDeleteCampaign destroys a campaign account and returns its full
// lamport balance, spendable plus rent deposit, to the creator. Receipt
// accounts are kept.
func (ls *LedgerState) applyDeleteCampaign(
	txn *database.Txn,
	instr DeleteCampaign,
) error {
	campaignAddr, acct, data, err := ls.readCampaign(txn, instr.Cid)
	if err != nil {
		return err
	}
	if data.Creator != instr.Signer {
		return ErrUnauthorisedAccess
	}
	if !data.Active {
		return ErrInActiveCampaign
	}
	if err := ls.creditWallet(txn, instr.Signer, acct.Lamports); err != nil {
		return err
	}
	if err := ls.deleteAccount(txn, campaignAddr); err != nil {
		return err
	}
	return ls.db.DeleteCampaign(instr.Cid, txn)
}

// applyUpdatePlatformSettings changes the platform fee. Only the platform
// address may change it.
func (ls *LedgerState) applyUpdatePlatformSettings(
	txn *database.Txn,
	instr UpdatePlatformSettings,
) error {
	state, err := ls.readProgramState(txn)
	if err != nil {
		return err
	}
	if state.PlatformAddress != instr.Signer {
		return ErrUnauthorisedAccess
	}
	if instr.NewFee < MinPlatformFee || instr.NewFee > MaxPlatformFee {
		return ErrInvalidPlatformFee
	}
	state.PlatformFee = instr.NewFee
	return ls.writeProgramState(txn, state)
}

// checkCampaignFields validates the user-supplied campaign fields shared by
// create and update
func checkCampaignFields(title, description, imageUrl string, goal uint64) error {
	if len(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if len(description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	if len(imageUrl) > MaxImageUrlLength {
		return ErrImageUrlTooLong
	}
	if goal == 0 {
		return ErrInvalidGoalAmount
	}
	return nil
}

// createReceipt allocates a receipt account and its projection. Receipt
// addresses include a per-owner sequence number, so an existing account
// means the same receipt was already written.
func (ls *LedgerState) createReceipt(
	txn *database.Txn,
	addr address.Address,
	bump uint8,
	rent uint64,
	receipt *TransactionData,
	seq uint64,
) error {
	exists, err := ls.db.AccountExists(addr.Bytes(), txn)
	if err != nil {
		return err
	}
	if exists {
		return ErrAccountExists
	}
	payload, err := encodePayload(receipt)
	if err != nil {
		return err
	}
	acct := &Account{
		Kind:     KindTransaction,
		Lamports: rent,
		Bump:     bump,
		Data:     payload,
	}
	if err := ls.putAccount(txn, addr, acct); err != nil {
		return err
	}
	return ls.db.SetTransactionRecord(&models.TransactionRecord{
		Address:   addr.Bytes(),
		Owner:     receipt.Owner.Bytes(),
		Cid:       receipt.Cid,
		Sequence:  seq,
		Amount:    types.Uint64(receipt.Amount),
		Timestamp: types.Uint64(receipt.Timestamp),
		Credited:  receipt.Credited,
	}, txn)
}

// writeCampaign re-encodes a campaign payload into its account envelope and
// stores it
func (ls *LedgerState) writeCampaign(
	txn *database.Txn,
	addr address.Address,
	acct *Account,
	data *CampaignData,
) error {
	payload, err := encodePayload(data)
	if err != nil {
		return err
	}
	acct.Data = payload
	return ls.putAccount(txn, addr, acct)
}

// writeCampaignProjection mirrors campaign payload changes into the metadata
// store
func (ls *LedgerState) writeCampaignProjection(
	txn *database.Txn,
	addr address.Address,
	data *CampaignData,
) error {
	return ls.db.SetCampaign(&models.Campaign{
		Address:      addr.Bytes(),
		Creator:      data.Creator.Bytes(),
		Cid:          data.Cid,
		Title:        data.Title,
		Description:  data.Description,
		ImageUrl:     data.ImageUrl,
		Goal:         types.Uint64(data.Goal),
		AmountRaised: types.Uint64(data.AmountRaised),
		Balance:      types.Uint64(data.Balance),
		Timestamp:    types.Uint64(data.Timestamp),
		Donors:       types.Uint64(data.Donors),
		Withdrawals:  types.Uint64(data.Withdrawals),
		Active:       data.Active,
	}, txn)
}

// writeProgramState re-encodes the program state payload into the singleton
// account and mirrors it into the metadata store
func (ls *LedgerState) writeProgramState(
	txn *database.Txn,
	state *ProgramStateData,
) error {
	stateAddr, _, err := address.ProgramState()
	if err != nil {
		return err
	}
	acct, err := ls.getAccount(txn, stateAddr)
	if err != nil {
		return err
	}
	payload, err := encodePayload(state)
	if err != nil {
		return err
	}
	acct.Data = payload
	if err := ls.putAccount(txn, stateAddr, acct); err != nil {
		return err
	}
	return ls.db.SetProgramState(&models.ProgramState{
		Address:         stateAddr.Bytes(),
		PlatformAddress: state.PlatformAddress.Bytes(),
		CampaignCount:   types.Uint64(state.CampaignCount),
		PlatformFee:     types.Uint64(state.PlatformFee),
		Initialized:     state.Initialized,
	}, txn)
}

// Faucet credits a wallet with lamports outside of program rules. Enabled
// only in development mode by the hosting node.
func (ls *LedgerState) Faucet(addr address.Address, amount uint64) error {
	release := ls.locks.Acquire([]address.Address{addr})
	defer release()
	txn := ls.db.BlobTxn(true)
	return txn.Do(func(txn *database.Txn) error {
		return ls.creditWallet(txn, addr, amount)
	})
}

// WalletBalance returns the lamport balance of an address, zero when the
// address holds nothing
func (ls *LedgerState) WalletBalance(addr address.Address) (uint64, error) {
	acct, err := ls.getAccount(nil, addr)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return acct.Lamports, nil
}
