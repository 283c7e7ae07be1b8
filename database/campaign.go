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

package database

import (
	"github.com/mrranger939/crowdFund/database/models"
	"github.com/mrranger939/crowdFund/database/types"
)

// GetCampaign returns a campaign projection by id
func (d *Database) GetCampaign(
	cid uint64,
	txn *Txn,
) (*models.Campaign, error) {
	return d.Metadata().GetCampaign(cid, metadataTxn(txn))
}

// GetCampaignByAddress returns a campaign projection by account address
func (d *Database) GetCampaignByAddress(
	address []byte,
	txn *Txn,
) (*models.Campaign, error) {
	return d.Metadata().GetCampaignByAddress(address, metadataTxn(txn))
}

// GetCampaigns returns all campaign projections
func (d *Database) GetCampaigns(
	activeOnly bool,
	txn *Txn,
) ([]models.Campaign, error) {
	return d.Metadata().GetCampaigns(activeOnly, metadataTxn(txn))
}

// GetCampaignsByCreator returns campaign projections for a creator
func (d *Database) GetCampaignsByCreator(
	creator []byte,
	txn *Txn,
) ([]models.Campaign, error) {
	return d.Metadata().GetCampaignsByCreator(creator, metadataTxn(txn))
}

// SetCampaign updates a campaign projection
func (d *Database) SetCampaign(campaign *models.Campaign, txn *Txn) error {
	return d.Metadata().SetCampaign(campaign, metadataTxn(txn))
}

// DeleteCampaign removes a campaign projection
func (d *Database) DeleteCampaign(cid uint64, txn *Txn) error {
	return d.Metadata().DeleteCampaign(cid, metadataTxn(txn))
}

// metadataTxn unwraps the metadata transaction handle from an optional
// coordinated transaction
func metadataTxn(txn *Txn) types.Txn {
	if txn == nil {
		return nil
	}
	return txn.Metadata()
}
