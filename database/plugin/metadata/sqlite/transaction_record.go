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

// GetTransactionRecord returns a donation or withdrawal receipt by its
// account address
func (d *MetadataStoreSqlite) GetTransactionRecord(
	address []byte,
	txn types.Txn,
) (*models.TransactionRecord, error) {
	ret := &models.TransactionRecord{}
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	result := db.First(ret, "address = ?", address)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, models.ErrTransactionRecordNotFound
		}
		return nil, result.Error
	}
	return ret, nil
}

// GetTransactionRecordsByCampaign returns receipts for a campaign, ordered
// by sequence. The credited flag selects donations (true) or withdrawals
// (false).
func (d *MetadataStoreSqlite) GetTransactionRecordsByCampaign(
	cid uint64,
	credited bool,
	txn types.Txn,
) ([]models.TransactionRecord, error) {
	var ret []models.TransactionRecord
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	result := db.
		Where("cid = ? AND credited = ?", cid, credited).
		Order("sequence ASC").
		Find(&ret)
	if result.Error != nil {
		return nil, fmt.Errorf(
			"get transaction records for campaign %d: %w",
			cid,
			result.Error,
		)
	}
	return ret, nil
}

// GetTransactionRecordsByOwner returns all receipts owned by the given
// account, ordered by campaign and sequence
func (d *MetadataStoreSqlite) GetTransactionRecordsByOwner(
	owner []byte,
	txn types.Txn,
) ([]models.TransactionRecord, error) {
	var ret []models.TransactionRecord
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	result := db.
		Where("owner = ?", owner).
		Order("cid ASC, sequence ASC").
		Find(&ret)
	if result.Error != nil {
		return nil, fmt.Errorf(
			"get transaction records for owner %x: %w",
			owner,
			result.Error,
		)
	}
	return ret, nil
}

// SetTransactionRecord upserts a receipt row, keyed on the receipt account
// address. Receipts are append-only in practice, the upsert keeps retries
// idempotent.
func (d *MetadataStoreSqlite) SetTransactionRecord(
	record *models.TransactionRecord,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	result := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "address"}},
		DoUpdates: clause.AssignmentColumns(
			[]string{"amount", "timestamp", "credited"},
		),
	}).Create(record)
	if result.Error != nil {
		return fmt.Errorf(
			"set transaction record %x: %w",
			record.Address,
			result.Error,
		)
	}
	return nil
}
