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

var ErrTransactionRecordNotFound = errors.New("transaction record not found")

// TransactionRecord is the queryable projection of a donation or withdrawal
// receipt account. Records are append-only and survive campaign deletion.
type TransactionRecord struct {
	Address   []byte `gorm:"uniqueIndex;size:32"`
	Owner     []byte `gorm:"index;size:32"`
	ID        uint   `gorm:"primarykey"`
	Cid       uint64 `gorm:"index"`
	Sequence  uint64
	Amount    types.Uint64
	Timestamp types.Uint64
	Credited  bool
}

func (TransactionRecord) TableName() string {
	return "transaction_record"
}
