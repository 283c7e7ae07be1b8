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
	"errors"

	"github.com/mrranger939/crowdFund/database/types"
)

// AccountGet retrieves a raw account image from the blob store. Returns
// types.ErrBlobKeyNotFound when no account exists at the address.
func (d *Database) AccountGet(address []byte, txn *Txn) ([]byte, error) {
	owned := false
	if txn == nil {
		txn = d.BlobTxn(false)
		owned = true
		defer txn.Release()
	}
	blobTxn := txn.Blob()
	if blobTxn == nil {
		return nil, types.ErrNilTxn
	}
	blob := txn.DB().Blob()
	if blob == nil {
		return nil, types.ErrBlobStoreUnavailable
	}
	ret, err := blob.Get(blobTxn, types.AccountBlobKey(address))
	if err != nil {
		return nil, err
	}
	if owned {
		if err := txn.Commit(); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// AccountExists reports whether an account image exists at the address
func (d *Database) AccountExists(address []byte, txn *Txn) (bool, error) {
	_, err := d.AccountGet(address, txn)
	if err != nil {
		if errors.Is(err, types.ErrBlobKeyNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// AccountSet stores a raw account image in the blob store
func (d *Database) AccountSet(address, val []byte, txn *Txn) error {
	owned := false
	if txn == nil {
		txn = d.BlobTxn(true)
		owned = true
		defer txn.Rollback() //nolint:errcheck
	}
	blobTxn := txn.Blob()
	if blobTxn == nil {
		return types.ErrNilTxn
	}
	blob := txn.DB().Blob()
	if blob == nil {
		return types.ErrBlobStoreUnavailable
	}
	if err := blob.Set(blobTxn, types.AccountBlobKey(address), val); err != nil {
		return err
	}
	if owned {
		if err := txn.Commit(); err != nil {
			return err
		}
	}
	return nil
}

// AccountDelete removes an account image from the blob store
func (d *Database) AccountDelete(address []byte, txn *Txn) error {
	owned := false
	if txn == nil {
		txn = d.BlobTxn(true)
		owned = true
		defer txn.Rollback() //nolint:errcheck
	}
	blobTxn := txn.Blob()
	if blobTxn == nil {
		return types.ErrNilTxn
	}
	blob := txn.DB().Blob()
	if blob == nil {
		return types.ErrBlobStoreUnavailable
	}
	if err := blob.Delete(blobTxn, types.AccountBlobKey(address)); err != nil {
		return err
	}
	if owned {
		if err := txn.Commit(); err != nil {
			return err
		}
	}
	return nil
}

// AccountsWalk iterates over all stored account images, calling fn with each
// address and raw image. Iteration stops on the first error.
func (d *Database) AccountsWalk(
	txn *Txn,
	fn func(address, val []byte) error,
) error {
	owned := false
	if txn == nil {
		txn = d.BlobTxn(false)
		owned = true
		defer txn.Release()
	}
	blobTxn := txn.Blob()
	if blobTxn == nil {
		return types.ErrNilTxn
	}
	blob := txn.DB().Blob()
	if blob == nil {
		return types.ErrBlobStoreUnavailable
	}
	prefix := []byte(types.AccountBlobKeyPrefix)
	iter := blob.NewIterator(blobTxn, types.BlobIteratorOptions{Prefix: prefix})
	defer iter.Close()
	for iter.Rewind(); iter.ValidForPrefix(prefix); iter.Next() {
		item := iter.Item()
		val, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		address := item.Key()[len(prefix):]
		if err := fn(address, val); err != nil {
			return err
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if owned {
		if err := txn.Commit(); err != nil {
			return err
		}
	}
	return nil
}
