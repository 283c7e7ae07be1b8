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
)

// GetTransactionRecord returns a receipt projection by account address
func (d *Database) GetTransactionRecord(
	address []byte,
	txn *Txn,
) (*models.TransactionRecord, error) {
	return d.Metadata().GetTransactionRecord(address, metadataTxn(txn))
}

// GetTransactionRecordsByCampaign returns receipt projections for a campaign
func (d *Database) GetTransactionRecordsByCampaign(
	cid uint64,
	credited bool,
	txn *Txn,
) ([]models.TransactionRecord, error) {
	return d.Metadata().GetTransactionRecordsByCampaign(
		cid,
		credited,
		metadataTxn(txn),
	)
}

// GetTransactionRecordsByOwner returns receipt projections for an owner
func (d *Database) GetTransactionRecordsByOwner(
	owner []byte,
	txn *Txn,
) ([]models.TransactionRecord, error) {
	return d.Metadata().GetTransactionRecordsByOwner(owner, metadataTxn(txn))
}

// SetTransactionRecord stores a receipt projection
func (d *Database) SetTransactionRecord(
	record *models.TransactionRecord,
	txn *Txn,
) error {
	return d.Metadata().SetTransactionRecord(record, metadataTxn(txn))
}
