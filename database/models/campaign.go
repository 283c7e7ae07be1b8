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

package models

import (
	"errors"

	"github.com/mrranger939/crowdFund/database/types"
)

var ErrCampaignNotFound = errors.New("campaign not found")

// Campaign is the queryable projection of a campaign account. The blob store
// holds the authoritative account image; this row serves list and lookup
// queries for the dashboard-facing API.
type Campaign struct {
	Address      []byte `gorm:"uniqueIndex;size:32"`
	Creator      []byte `gorm:"index;size:32"`
	Title        string `gorm:"size:100"`
	Description  string `gorm:"size:600"`
	ImageUrl     string `gorm:"size:300"`
	ID           uint   `gorm:"primarykey"`
	Cid          uint64 `gorm:"uniqueIndex"`
	Goal         types.Uint64
	AmountRaised types.Uint64
	Balance      types.Uint64
	Timestamp    types.Uint64
	Donors       types.Uint64
	Withdrawals  types.Uint64
	Active       bool `gorm:"index"`
}

func (Campaign) TableName() string {
	return "campaign"
}
