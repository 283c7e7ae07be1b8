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

package badger

import (
	"encoding/binary"
	"errors"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/mrranger939/crowdFund/database/types"
)

var commitTimestampBlobKey = []byte("metadata_commit_timestamp")

// GetCommitTimestamp returns the stored commit timestamp, or -1 if none has
// been recorded yet
func (d *BlobStoreBadger) GetCommitTimestamp() (int64, error) {
	var ret int64
	err := d.DB().View(func(txn *badger.Txn) error {
		item, err := txn.Get(commitTimestampBlobKey)
		if err != nil {
			return err
		}
		val, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		ret = int64(binary.BigEndian.Uint64(val)) //nolint:gosec
		return nil
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return -1, nil
		}
		return 0, err
	}
	return ret, nil
}

// SetCommitTimestamp records the commit timestamp within the given transaction
func (d *BlobStoreBadger) SetCommitTimestamp(
	txn types.Txn,
	timestamp int64,
) error {
	badgerTxn, err := d.validateTxn(txn)
	if err != nil {
		return err
	}
	val := make([]byte, 8)
	binary.BigEndian.PutUint64(val, uint64(timestamp)) //nolint:gosec
	return badgerTxn.tx.Set(commitTimestampBlobKey, val)
}
