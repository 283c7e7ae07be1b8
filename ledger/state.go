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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mrranger939/crowdFund/address"
	"github.com/mrranger939/crowdFund/database"
	"github.com/mrranger939/crowdFund/database/types"
	"github.com/mrranger939/crowdFund/event"
	"github.com/prometheus/client_golang/prometheus"
)

type LedgerStateConfig struct {
	Logger       *slog.Logger
	EventBus     *event.EventBus
	PromRegistry prometheus.Registerer
	DataDir      string
	// TimeNow overrides the clock used for account timestamps. Used in
	// tests; defaults to the wall clock.
	TimeNow func() uint64
}

// LedgerState hosts the crowdfunding program: it owns the account store,
// serializes instructions per account, and applies each instruction
// atomically.
type LedgerState struct {
	config  LedgerStateConfig
	db      *database.Database
	locks   *addressLocks
	metrics *ledgerMetrics
	timeNow func() uint64
}

func NewLedgerState(cfg LedgerStateConfig) (*LedgerState, error) {
	if cfg.Logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		cfg.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	ls := &LedgerState{
		config:  cfg,
		locks:   newAddressLocks(),
		timeNow: cfg.TimeNow,
	}
	if ls.timeNow == nil {
		ls.timeNow = func() uint64 {
			return uint64(max(0, time.Now().Unix()))
		}
	}
	if cfg.PromRegistry != nil {
		ls.initMetrics(cfg.PromRegistry)
	}
	// Load database
	db, err := database.New(&database.Config{
		Logger:       cfg.Logger,
		PromRegistry: cfg.PromRegistry,
		DataDir:      cfg.DataDir,
	})
	if err != nil {
		var dbErr database.CommitTimestampError
		if errors.As(err, &dbErr) {
			// The two stores disagree about the last commit. There is no
			// rebuild path for account images, so refuse to serve from an
			// inconsistent store.
			ls.config.Logger.Error(
				"account store commit timestamps do not match",
				"error", err,
				"component", "ledger",
			)
		}
		if db != nil {
			_ = db.Close()
		}
		return nil, err
	}
	ls.db = db
	// Restore gauges from the store
	if err := ls.restoreMetrics(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return ls, nil
}

// restoreMetrics primes the active-campaigns gauge from the metadata store
func (ls *LedgerState) restoreMetrics() error {
	if ls.metrics == nil {
		return nil
	}
	campaigns, err := ls.db.GetCampaigns(true, nil)
	if err != nil {
		return fmt.Errorf("restore metrics: %w", err)
	}
	ls.metrics.campaignsActive.Set(float64(len(campaigns)))
	return nil
}

// Close shuts down the underlying account store
func (ls *LedgerState) Close() error {
	return ls.db.Close()
}

// Database exposes the underlying store for read-side consumers
func (ls *LedgerState) Database() *database.Database {
	return ls.db
}

// Apply executes a single instruction atomically: all account writes commit
// together or not at all. Locks on every touched account are held for the
// duration, so concurrent instructions over disjoint accounts proceed in
// parallel.
func (ls *LedgerState) Apply(ctx context.Context, instr Instruction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	lockAddrs, err := ls.lockSet(instr)
	if err != nil {
		return err
	}
	release := ls.locks.Acquire(lockAddrs)
	defer release()

	txn := ls.db.Transaction(true)
	err = txn.Do(func(txn *database.Txn) error {
		return ls.applyInstruction(txn, instr)
	})
	if err != nil {
		if ls.metrics != nil {
			ls.metrics.instructionsFailed.WithLabelValues(instr.Kind()).Inc()
		}
		ls.config.Logger.Debug(
			"instruction rejected",
			"kind", instr.Kind(),
			"error", err,
			"component", "ledger",
		)
		return err
	}
	if ls.metrics != nil {
		ls.metrics.instructionsApplied.WithLabelValues(instr.Kind()).Inc()
		switch i := instr.(type) {
		case Donate:
			ls.metrics.donationVolume.Add(float64(i.Amount))
		case Withdraw:
			ls.metrics.withdrawalVolume.Add(float64(i.Amount))
		}
		switch instr.(type) {
		case CreateCampaign, DeleteCampaign, Donate:
			// Donations can deactivate a campaign, so recount rather than
			// track deltas per kind
			if err := ls.restoreMetrics(); err != nil {
				ls.config.Logger.Warn(
					"failed to refresh campaign gauge",
					"error", err,
					"component", "ledger",
				)
			}
		}
	}
	ls.publishEvents(instr)
	return nil
}

// lockSet returns the addresses an instruction may touch. Receipt accounts
// are excluded: they are only ever allocated under their campaign's lock,
// which serializes them.
func (ls *LedgerState) lockSet(instr Instruction) ([]address.Address, error) {
	stateAddr, _, err := address.ProgramState()
	if err != nil {
		return nil, err
	}
	switch i := instr.(type) {
	case Initialize:
		return []address.Address{stateAddr, i.Signer}, nil
	case CreateCampaign:
		// Campaign address depends on the current campaign count, which is
		// only stable while holding the state lock
		return []address.Address{stateAddr, i.Signer}, nil
	case UpdateCampaign:
		campaignAddr, _, err := address.Campaign(i.Cid)
		if err != nil {
			return nil, err
		}
		return []address.Address{stateAddr, campaignAddr, i.Signer}, nil
	case Donate:
		campaignAddr, _, err := address.Campaign(i.Cid)
		if err != nil {
			return nil, err
		}
		return []address.Address{stateAddr, campaignAddr, i.Signer}, nil
	case Withdraw:
		campaignAddr, _, err := address.Campaign(i.Cid)
		if err != nil {
			return nil, err
		}
		// The platform wallet is credited with the fee
		platformAddr, err := ls.platformAddress()
		if err != nil {
			return nil, err
		}
		addrs := []address.Address{stateAddr, campaignAddr, i.Signer}
		if !platformAddr.IsZero() {
			addrs = append(addrs, platformAddr)
		}
		return addrs, nil
	case DeleteCampaign:
		campaignAddr, _, err := address.Campaign(i.Cid)
		if err != nil {
			return nil, err
		}
		return []address.Address{stateAddr, campaignAddr, i.Signer}, nil
	case UpdatePlatformSettings:
		return []address.Address{stateAddr, i.Signer}, nil
	default:
		return nil, ErrUnknownInstruction
	}
}

// platformAddress reads the configured platform address outside of any
// instruction transaction. Used only to build lock sets.
func (ls *LedgerState) platformAddress() (address.Address, error) {
	state, err := ls.readProgramState(nil)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return address.Address{}, nil
		}
		return address.Address{}, err
	}
	return state.PlatformAddress, nil
}

// applyInstruction dispatches to the handler for the instruction type
func (ls *LedgerState) applyInstruction(
	txn *database.Txn,
	instr Instruction,
) error {
	switch i := instr.(type) {
	case Initialize:
		return ls.applyInitialize(txn, i)
	case CreateCampaign:
		return ls.applyCreateCampaign(txn, i)
	case UpdateCampaign:
		return ls.applyUpdateCampaign(txn, i)
	case Donate:
		return ls.applyDonate(txn, i)
	case Withdraw:
		return ls.applyWithdraw(txn, i)
	case DeleteCampaign:
		return ls.applyDeleteCampaign(txn, i)
	case UpdatePlatformSettings:
		return ls.applyUpdatePlatformSettings(txn, i)
	default:
		return ErrUnknownInstruction
	}
}

// publishEvents emits post-commit notifications for a successfully applied
// instruction
func (ls *LedgerState) publishEvents(instr Instruction) {
	if ls.config.EventBus == nil {
		return
	}
	eb := ls.config.EventBus
	switch i := instr.(type) {
	case CreateCampaign:
		// Campaign id was assigned inside the handler; consumers resolve
		// details via the query API
		eb.Publish(
			CampaignCreatedEventType,
			event.NewEvent(CampaignCreatedEventType, CampaignEvent{
				Creator: i.Signer,
			}),
		)
	case UpdateCampaign:
		campaignAddr, _, _ := address.Campaign(i.Cid)
		eb.Publish(
			CampaignUpdatedEventType,
			event.NewEvent(CampaignUpdatedEventType, CampaignEvent{
				Campaign: campaignAddr,
				Creator:  i.Signer,
				Cid:      i.Cid,
			}),
		)
	case DeleteCampaign:
		campaignAddr, _, _ := address.Campaign(i.Cid)
		eb.Publish(
			CampaignDeletedEventType,
			event.NewEvent(CampaignDeletedEventType, CampaignEvent{
				Campaign: campaignAddr,
				Creator:  i.Signer,
				Cid:      i.Cid,
			}),
		)
	case Donate:
		campaignAddr, _, _ := address.Campaign(i.Cid)
		eb.Publish(
			DonationReceivedEventType,
			event.NewEvent(DonationReceivedEventType, DonationEvent{
				Campaign: campaignAddr,
				Donor:    i.Signer,
				Cid:      i.Cid,
				Amount:   i.Amount,
			}),
		)
	case Withdraw:
		campaignAddr, _, _ := address.Campaign(i.Cid)
		eb.Publish(
			WithdrawalProcessedEventType,
			event.NewEvent(WithdrawalProcessedEventType, WithdrawalEvent{
				Campaign: campaignAddr,
				Creator:  i.Signer,
				Cid:      i.Cid,
				Amount:   i.Amount,
			}),
		)
	case UpdatePlatformSettings:
		eb.Publish(
			PlatformUpdatedEventType,
			event.NewEvent(PlatformUpdatedEventType, PlatformEvent{
				PlatformAddress: i.Signer,
				PlatformFee:     i.NewFee,
			}),
		)
	}
}

// getAccount loads and decodes an account envelope. Returns
// ErrAccountNotFound when the address holds nothing.
func (ls *LedgerState) getAccount(
	txn *database.Txn,
	addr address.Address,
) (*Account, error) {
	raw, err := ls.db.AccountGet(addr.Bytes(), txn)
	if err != nil {
		if errors.Is(err, types.ErrBlobKeyNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return decodeAccount(raw)
}

// putAccount encodes and stores an account envelope
func (ls *LedgerState) putAccount(
	txn *database.Txn,
	addr address.Address,
	acct *Account,
) error {
	raw, err := encodeAccount(acct)
	if err != nil {
		return err
	}
	return ls.db.AccountSet(addr.Bytes(), raw, txn)
}

// deleteAccount removes an account envelope
func (ls *LedgerState) deleteAccount(
	txn *database.Txn,
	addr address.Address,
) error {
	return ls.db.AccountDelete(addr.Bytes(), txn)
}

// creditWallet adds lamports to a wallet account, creating it when absent
func (ls *LedgerState) creditWallet(
	txn *database.Txn,
	addr address.Address,
	amount uint64,
) error {
	acct, err := ls.getAccount(txn, addr)
	if err != nil {
		if !errors.Is(err, ErrAccountNotFound) {
			return err
		}
		acct = &Account{Kind: KindWallet}
	}
	newBalance, err := checkedAdd(acct.Lamports, amount)
	if err != nil {
		return err
	}
	acct.Lamports = newBalance
	return ls.putAccount(txn, addr, acct)
}

// debitWallet removes lamports from a wallet account. A missing wallet has
// a zero balance.
func (ls *LedgerState) debitWallet(
	txn *database.Txn,
	addr address.Address,
	amount uint64,
) error {
	acct, err := ls.getAccount(txn, addr)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return ErrInsufficientLamports
		}
		return err
	}
	if acct.Lamports < amount {
		return ErrInsufficientLamports
	}
	acct.Lamports -= amount
	return ls.putAccount(txn, addr, acct)
}

// readProgramState loads and decodes the program state account payload
func (ls *LedgerState) readProgramState(
	txn *database.Txn,
) (*ProgramStateData, error) {
	stateAddr, _, err := address.ProgramState()
	if err != nil {
		return nil, err
	}
	acct, err := ls.getAccount(txn, stateAddr)
	if err != nil {
		return nil, err
	}
	if acct.Kind != KindProgramState {
		return nil, ErrWrongAccountKind
	}
	var ret ProgramStateData
	if err := decodePayload(acct.Data, &ret); err != nil {
		return nil, err
	}
	return &ret, nil
}

// readCampaign loads and decodes a campaign account payload. A missing
// account maps to the program's CampaignNotFound error.
func (ls *LedgerState) readCampaign(
	txn *database.Txn,
	cid uint64,
) (address.Address, *Account, *CampaignData, error) {
	campaignAddr, _, err := address.Campaign(cid)
	if err != nil {
		return address.Address{}, nil, nil, err
	}
	acct, err := ls.getAccount(txn, campaignAddr)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return campaignAddr, nil, nil, ErrCampaignNotFound
		}
		return campaignAddr, nil, nil, err
	}
	if acct.Kind != KindCampaign {
		return campaignAddr, nil, nil, ErrWrongAccountKind
	}
	var data CampaignData
	if err := decodePayload(acct.Data, &data); err != nil {
		return campaignAddr, nil, nil, err
	}
	return campaignAddr, acct, &data, nil
}
