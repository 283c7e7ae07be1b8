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

package sqlite

import (
	"errors"
	"fmt"

	"github.com/mrranger939/crowdFund/database/models"
	"github.com/mrranger939/crowdFund/database/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetCampaign returns a campaign by its numeric id
func (d *MetadataStoreSqlite) GetCampaign(
	cid uint64,
	txn types.Txn,
) (*models.Campaign, error) {
	ret := &models.Campaign{}
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	result := db.First(ret, "cid = ?", cid)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, models.ErrCampaignNotFound
		}
		return nil, result.Error
	}
	return ret, nil
}

// GetCampaignByAddress returns a campaign by its account address
func (d *MetadataStoreSqlite) GetCampaignByAddress(
	address []byte,
	txn types.Txn,
) (*models.Campaign, error) {
	ret := &models.Campaign{}
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	result := db.First(ret, "address = ?", address)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, models.ErrCampaignNotFound
		}
		return nil, result.Error
	}
	return ret, nil
}

// GetCampaigns returns all campaigns ordered by id. When activeOnly is set,
// deleted and goal-reached campaigns are excluded.
func (d *MetadataStoreSqlite) GetCampaigns(
	activeOnly bool,
	txn types.Txn,
) ([]models.Campaign, error) {
	var ret []models.Campaign
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	query := db.Order("cid ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	if result := query.Find(&ret); result.Error != nil {
		return nil, fmt.Errorf("get campaigns: %w", result.Error)
	}
	return ret, nil
}

// GetCampaignsByCreator returns all campaigns created by the given account
func (d *MetadataStoreSqlite) GetCampaignsByCreator(
	creator []byte,
	txn types.Txn,
) ([]models.Campaign, error) {
	var ret []models.Campaign
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	result := db.
		Where("creator = ?", creator).
		Order("cid ASC").
		Find(&ret)
	if result.Error != nil {
		return nil, fmt.Errorf(
			"get campaigns by creator %x: %w",
			creator,
			result.Error,
		)
	}
	return ret, nil
}

// SetCampaign upserts a campaign row, keyed on the campaign id
func (d *MetadataStoreSqlite) SetCampaign(
	campaign *models.Campaign,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	result := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cid"}},
		DoUpdates: clause.AssignmentColumns(
			[]string{
				"title",
				"description",
				"image_url",
				"goal",
				"amount_raised",
				"balance",
				"donors",
				"withdrawals",
				"active",
			},
		),
	}).Create(campaign)
	if result.Error != nil {
		return fmt.Errorf("set campaign %d: %w", campaign.Cid, result.Error)
	}
	return nil
}

// DeleteCampaign removes a campaign row. Transaction records referencing the
// campaign are kept.
func (d *MetadataStoreSqlite) DeleteCampaign(
	cid uint64,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	result := db.Where("cid = ?", cid).Delete(&models.Campaign{})
	if result.Error != nil {
		return fmt.Errorf("delete campaign %d: %w", cid, result.Error)
	}
	return nil
}
