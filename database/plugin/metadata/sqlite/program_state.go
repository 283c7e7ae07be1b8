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

// GetProgramState returns the singleton program state row
func (d *MetadataStoreSqlite) GetProgramState(
	txn types.Txn,
) (*models.ProgramState, error) {
	ret := &models.ProgramState{}
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	result := db.First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, models.ErrProgramStateNotFound
		}
		return nil, result.Error
	}
	return ret, nil
}

// SetProgramState upserts the singleton program state row, keyed on the
// account address
func (d *MetadataStoreSqlite) SetProgramState(
	state *models.ProgramState,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	result := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "address"}},
		DoUpdates: clause.AssignmentColumns(
			[]string{
				"platform_address",
				"campaign_count",
				"platform_fee",
				"initialized",
			},
		),
	}).Create(state)
	if result.Error != nil {
		return fmt.Errorf("set program state: %w", result.Error)
	}
	return nil
}
