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

var ErrProgramStateNotFound = errors.New("program state not found")

// ProgramState is the queryable projection of the singleton program state
// account. There is at most one row.
type ProgramState struct {
	Address         []byte `gorm:"uniqueIndex;size:32"`
	PlatformAddress []byte `gorm:"size:32"`
	ID              uint   `gorm:"primarykey"`
	CampaignCount   types.Uint64
	PlatformFee     types.Uint64
	Initialized     bool
}

func (ProgramState) TableName() string {
	return "program_state"
}
