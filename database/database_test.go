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

package database_test

import (
	"errors"
	"testing"

	"github.com/mrranger939/crowdFund/database"
	"github.com/mrranger939/crowdFund/database/models"
	"github.com/mrranger939/crowdFund/database/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dbConfig = &database.Config{
	Logger:       nil,
	PromRegistry: nil,
	DataDir:      "",
}

func TestAccountRoundTrip(t *testing.T) {
	db, err := database.New(dbConfig)
	require.NoError(t, err)
	defer db.Close()

	address := make([]byte, 32)
	address[0] = 0x42
	image := []byte("account image")

	// Missing account
	_, err = db.AccountGet(address, nil)
	require.ErrorIs(t, err, types.ErrBlobKeyNotFound)
	exists, err := db.AccountExists(address, nil)
	require.NoError(t, err)
	assert.False(t, exists)

	// Store and read back
	require.NoError(t, db.AccountSet(address, image, nil))
	ret, err := db.AccountGet(address, nil)
	require.NoError(t, err)
	assert.Equal(t, image, ret)
	exists, err = db.AccountExists(address, nil)
	require.NoError(t, err)
	assert.True(t, exists)

	// Delete
	require.NoError(t, db.AccountDelete(address, nil))
	_, err = db.AccountGet(address, nil)
	require.ErrorIs(t, err, types.ErrBlobKeyNotFound)
}

func TestAccountsWalk(t *testing.T) {
	db, err := database.New(dbConfig)
	require.NoError(t, err)
	defer db.Close()

	expected := map[byte][]byte{}
	for i := byte(1); i <= 5; i++ {
		address := make([]byte, 32)
		address[0] = i
		image := []byte{0xca, 0xfe, i}
		expected[i] = image
		require.NoError(t, db.AccountSet(address, image, nil))
	}

	seen := map[byte][]byte{}
	err = db.AccountsWalk(nil, func(address, val []byte) error {
		require.Len(t, address, 32)
		seen[address[0]] = val
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, expected, seen)
}

func TestTxnRollbackDiscardsBothStores(t *testing.T) {
	db, err := database.New(dbConfig)
	require.NoError(t, err)
	defer db.Close()

	address := make([]byte, 32)
	address[0] = 0x99
	testErr := errors.New("abort")

	txn := db.Transaction(true)
	err = txn.Do(func(txn *database.Txn) error {
		if err := db.AccountSet(address, []byte("image"), txn); err != nil {
			return err
		}
		if err := db.SetCampaign(&models.Campaign{
			Address: address,
			Cid:     1,
			Title:   "doomed",
			Goal:    types.Uint64(5_000_000_000),
			Active:  true,
		}, txn); err != nil {
			return err
		}
		return testErr
	})
	require.ErrorIs(t, err, testErr)

	// Neither store should have the writes
	_, err = db.AccountGet(address, nil)
	require.ErrorIs(t, err, types.ErrBlobKeyNotFound)
	_, err = db.GetCampaign(1, nil)
	require.ErrorIs(t, err, models.ErrCampaignNotFound)
}

func TestTxnCommitUpdatesTimestamps(t *testing.T) {
	db, err := database.New(dbConfig)
	require.NoError(t, err)
	defer db.Close()

	address := make([]byte, 32)
	address[0] = 0x01

	txn := db.Transaction(true)
	err = txn.Do(func(txn *database.Txn) error {
		return db.AccountSet(address, []byte("image"), txn)
	})
	require.NoError(t, err)

	blobTs, err := db.Blob().GetCommitTimestamp()
	require.NoError(t, err)
	metadataTs, err := db.Metadata().GetCommitTimestamp()
	require.NoError(t, err)
	assert.Positive(t, blobTs)
	assert.Equal(t, metadataTs, blobTs)
}

func TestCampaignProjection(t *testing.T) {
	db, err := database.New(dbConfig)
	require.NoError(t, err)
	defer db.Close()

	creator := make([]byte, 32)
	creator[0] = 0xaa
	for cid := uint64(1); cid <= 3; cid++ {
		address := make([]byte, 32)
		address[0] = byte(cid)
		require.NoError(t, db.SetCampaign(&models.Campaign{
			Address:      address,
			Creator:      creator,
			Cid:          cid,
			Title:        "campaign",
			Goal:         types.Uint64(10_000_000_000),
			AmountRaised: types.Uint64(cid * 1_000_000_000),
			Balance:      types.Uint64(cid * 1_000_000_000),
			Active:       cid != 2,
		}, nil))
	}

	// Lookup by id and address
	campaign, err := db.GetCampaign(2, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), campaign.Cid)
	assert.False(t, campaign.Active)
	campaign, err = db.GetCampaignByAddress(campaign.Address, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), campaign.Cid)

	// List queries
	all, err := db.GetCampaigns(false, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	active, err := db.GetCampaigns(true, nil)
	require.NoError(t, err)
	require.Len(t, active, 2)
	byCreator, err := db.GetCampaignsByCreator(creator, nil)
	require.NoError(t, err)
	require.Len(t, byCreator, 3)

	// Upsert keeps the cid unique
	require.NoError(t, db.SetCampaign(&models.Campaign{
		Address:      all[0].Address,
		Creator:      creator,
		Cid:          1,
		Title:        "updated",
		Goal:         types.Uint64(10_000_000_000),
		AmountRaised: types.Uint64(2_000_000_000),
		Balance:      types.Uint64(2_000_000_000),
		Active:       true,
	}, nil))
	campaign, err = db.GetCampaign(1, nil)
	require.NoError(t, err)
	assert.Equal(t, "updated", campaign.Title)
	assert.Equal(t, uint64(2_000_000_000), uint64(campaign.AmountRaised))

	// Delete
	require.NoError(t, db.DeleteCampaign(1, nil))
	_, err = db.GetCampaign(1, nil)
	require.ErrorIs(t, err, models.ErrCampaignNotFound)
}

func TestTransactionRecordProjection(t *testing.T) {
	db, err := database.New(dbConfig)
	require.NoError(t, err)
	defer db.Close()

	owner := make([]byte, 32)
	owner[0] = 0xbb
	for seq := uint64(1); seq <= 3; seq++ {
		address := make([]byte, 32)
		address[0] = byte(seq)
		require.NoError(t, db.SetTransactionRecord(&models.TransactionRecord{
			Address:  address,
			Owner:    owner,
			Cid:      7,
			Sequence: seq,
			Amount:   types.Uint64(seq * 1_000_000_000),
			Credited: seq != 3,
		}, nil))
	}

	donations, err := db.GetTransactionRecordsByCampaign(7, true, nil)
	require.NoError(t, err)
	require.Len(t, donations, 2)
	assert.Equal(t, uint64(1), donations[0].Sequence)
	assert.Equal(t, uint64(2), donations[1].Sequence)

	withdrawals, err := db.GetTransactionRecordsByCampaign(7, false, nil)
	require.NoError(t, err)
	require.Len(t, withdrawals, 1)
	assert.Equal(t, uint64(3), withdrawals[0].Sequence)

	byOwner, err := db.GetTransactionRecordsByOwner(owner, nil)
	require.NoError(t, err)
	require.Len(t, byOwner, 3)

	record, err := db.GetTransactionRecord(donations[0].Address, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000_000), uint64(record.Amount))

	_, err = db.GetTransactionRecord(make([]byte, 32), nil)
	require.ErrorIs(t, err, models.ErrTransactionRecordNotFound)
}

func TestProgramStateProjection(t *testing.T) {
	db, err := database.New(dbConfig)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.GetProgramState(nil)
	require.ErrorIs(t, err, models.ErrProgramStateNotFound)

	address := make([]byte, 32)
	address[0] = 0x01
	platform := make([]byte, 32)
	platform[0] = 0x02
	require.NoError(t, db.SetProgramState(&models.ProgramState{
		Address:         address,
		PlatformAddress: platform,
		CampaignCount:   types.Uint64(0),
		PlatformFee:     types.Uint64(3),
		Initialized:     true,
	}, nil))

	state, err := db.GetProgramState(nil)
	require.NoError(t, err)
	assert.True(t, state.Initialized)
	assert.Equal(t, uint64(3), uint64(state.PlatformFee))

	// Upsert on the same address updates in place
	require.NoError(t, db.SetProgramState(&models.ProgramState{
		Address:         address,
		PlatformAddress: platform,
		CampaignCount:   types.Uint64(5),
		PlatformFee:     types.Uint64(3),
		Initialized:     true,
	}, nil))
	state, err = db.GetProgramState(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), uint64(state.CampaignCount))
}
