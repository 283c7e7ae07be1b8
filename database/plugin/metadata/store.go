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

package metadata

import (
	"log/slog"

	"github.com/mrranger939/crowdFund/database/models"
	"github.com/mrranger939/crowdFund/database/plugin/metadata/sqlite"
	"github.com/mrranger939/crowdFund/database/types"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// MetadataStore is the interface for the queryable projection of ledger
// state. The blob store holds the authoritative account images; this store
// serves list and lookup queries for the API.
type MetadataStore interface {
	// Database
	Close() error
	DB() *gorm.DB
	GetCommitTimestamp() (int64, error)
	SetCommitTimestamp(int64, types.Txn) error
	Transaction() types.Txn

	// Program state
	GetProgramState(types.Txn) (*models.ProgramState, error)
	SetProgramState(*models.ProgramState, types.Txn) error

	// Campaigns
	GetCampaign(
		uint64, // cid
		types.Txn,
	) (*models.Campaign, error)
	GetCampaignByAddress(
		[]byte, // address
		types.Txn,
	) (*models.Campaign, error)
	GetCampaigns(
		bool, // activeOnly
		types.Txn,
	) ([]models.Campaign, error)
	GetCampaignsByCreator(
		[]byte, // creator
		types.Txn,
	) ([]models.Campaign, error)
	SetCampaign(*models.Campaign, types.Txn) error
	DeleteCampaign(
		uint64, // cid
		types.Txn,
	) error

	// Transaction records
	GetTransactionRecord(
		[]byte, // address
		types.Txn,
	) (*models.TransactionRecord, error)
	GetTransactionRecordsByCampaign(
		uint64, // cid
		bool, // credited
		types.Txn,
	) ([]models.TransactionRecord, error)
	GetTransactionRecordsByOwner(
		[]byte, // owner
		types.Txn,
	) ([]models.TransactionRecord, error)
	SetTransactionRecord(*models.TransactionRecord, types.Txn) error
}

// For now, this always returns a sqlite plugin
func New(
	pluginName, dataDir string,
	logger *slog.Logger,
	promRegistry prometheus.Registerer,
) (MetadataStore, error) {
	return sqlite.New(dataDir, logger, promRegistry)
}
