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
	"github.com/mrranger939/crowdFund/address"
	"github.com/mrranger939/crowdFund/database/models"
)

// Read-side queries served from the metadata projections. These never touch
// account locks; readers see the last committed state.

// ProgramState returns the program state projection, or
// models.ErrProgramStateNotFound before initialization
func (ls *LedgerState) ProgramState() (*models.ProgramState, error) {
	return ls.db.GetProgramState(nil)
}

// Campaigns returns campaign projections ordered by campaign id
func (ls *LedgerState) Campaigns(activeOnly bool) ([]models.Campaign, error) {
	return ls.db.GetCampaigns(activeOnly, nil)
}

// Campaign returns a single campaign projection, or
// models.ErrCampaignNotFound
func (ls *LedgerState) Campaign(cid uint64) (*models.Campaign, error) {
	return ls.db.GetCampaign(cid, nil)
}

// CampaignsByCreator returns campaign projections for a creator
func (ls *LedgerState) CampaignsByCreator(
	creator address.Address,
) ([]models.Campaign, error) {
	return ls.db.GetCampaignsByCreator(creator.Bytes(), nil)
}

// CampaignDonations returns donation receipts for a campaign ordered by
// sequence
func (ls *LedgerState) CampaignDonations(
	cid uint64,
) ([]models.TransactionRecord, error) {
	return ls.db.GetTransactionRecordsByCampaign(cid, true, nil)
}

// CampaignWithdrawals returns withdrawal receipts for a campaign ordered by
// sequence
func (ls *LedgerState) CampaignWithdrawals(
	cid uint64,
) ([]models.TransactionRecord, error) {
	return ls.db.GetTransactionRecordsByCampaign(cid, false, nil)
}

// TransactionsByOwner returns all receipts owned by an address
func (ls *LedgerState) TransactionsByOwner(
	owner address.Address,
) ([]models.TransactionRecord, error) {
	return ls.db.GetTransactionRecordsByOwner(owner.Bytes(), nil)
}

// AccountInfo returns the decoded account envelope at an address, or
// ErrAccountNotFound
func (ls *LedgerState) AccountInfo(addr address.Address) (*Account, error) {
	return ls.getAccount(nil, addr)
}
