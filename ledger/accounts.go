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

package ledger

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/mrranger939/crowdFund/address"
)

// Account limits enforced by the program
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 600
	MaxImageUrlLength    = 300

	// MinMoveAmount is the smallest accepted donation or withdrawal:
	// one whole token in base units
	MinMoveAmount = 1_000_000_000

	// Platform fee bounds (percent)
	MinPlatformFee     = 1
	MaxPlatformFee     = 15
	DefaultPlatformFee = 3
)

// Rent parameters for account allocation. Allocating an account charges the
// paying signer the rent-exempt minimum for its data size; destroying the
// account returns the full lamport balance to the recipient.
const (
	rentAccountOverhead  = 128
	rentPerByteYear      = 3480
	rentExemptMultiplier = 2
)

// RentExemptMinimum returns the lamports required to allocate an account
// holding dataLen bytes
func RentExemptMinimum(dataLen int) uint64 {
	size := rentAccountOverhead + uint64(max(0, dataLen))
	return size * rentPerByteYear * rentExemptMultiplier
}

// AccountKind discriminates the payload stored in an account envelope
type AccountKind uint8

const (
	KindWallet AccountKind = iota
	KindProgramState
	KindCampaign
	KindTransaction
)

func (k AccountKind) String() string {
	switch k {
	case KindWallet:
		return "wallet"
	case KindProgramState:
		return "program_state"
	case KindCampaign:
		return "campaign"
	case KindTransaction:
		return "transaction"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// Account is the envelope stored in the blob store for every address that
// holds anything: native balance, derivation bump, and the program payload.
// Wallet accounts carry no payload.
type Account struct {
	Data     []byte      `cbor:"4,keyasint,omitempty"`
	Lamports uint64      `cbor:"2,keyasint"`
	Kind     AccountKind `cbor:"1,keyasint"`
	Bump     uint8       `cbor:"3,keyasint"`
}

// ProgramStateData is the payload of the singleton program state account
type ProgramStateData struct {
	PlatformAddress address.Address `cbor:"4,keyasint"`
	CampaignCount   uint64          `cbor:"2,keyasint"`
	PlatformFee     uint64          `cbor:"3,keyasint"`
	Initialized     bool            `cbor:"1,keyasint"`
}

// CampaignData is the payload of a campaign account. The balance invariant
// holds at every commit: Balance == AmountRaised - total withdrawn.
type CampaignData struct {
	Title        string          `cbor:"3,keyasint"`
	Description  string          `cbor:"4,keyasint"`
	ImageUrl     string          `cbor:"5,keyasint"`
	Creator      address.Address `cbor:"2,keyasint"`
	Cid          uint64          `cbor:"1,keyasint"`
	Goal         uint64          `cbor:"6,keyasint"`
	AmountRaised uint64          `cbor:"7,keyasint"`
	Timestamp    uint64          `cbor:"8,keyasint"`
	Donors       uint64          `cbor:"9,keyasint"`
	Withdrawals  uint64          `cbor:"10,keyasint"`
	Balance      uint64          `cbor:"11,keyasint"`
	Active       bool            `cbor:"12,keyasint"`
}

// TransactionData is the payload of a donation or withdrawal receipt
// account. Receipts are append-only and survive campaign deletion.
type TransactionData struct {
	Owner     address.Address `cbor:"1,keyasint"`
	Cid       uint64          `cbor:"2,keyasint"`
	Amount    uint64          `cbor:"3,keyasint"`
	Timestamp uint64          `cbor:"4,keyasint"`
	Credited  bool            `cbor:"5,keyasint"`
}

func encodeAccount(acct *Account) ([]byte, error) {
	ret, err := cbor.Marshal(acct)
	if err != nil {
		return nil, fmt.Errorf("encode account: %w", err)
	}
	return ret, nil
}

func decodeAccount(data []byte) (*Account, error) {
	ret := &Account{}
	if err := cbor.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("decode account: %w", err)
	}
	return ret, nil
}

func encodePayload(payload any) ([]byte, error) {
	ret, err := cbor.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode account payload: %w", err)
	}
	return ret, nil
}

func decodePayload(data []byte, payload any) error {
	if err := cbor.Unmarshal(data, payload); err != nil {
		return fmt.Errorf("decode account payload: %w", err)
	}
	return nil
}

// checkedAdd returns a+b, failing on unsigned overflow
func checkedAdd(a, b uint64) (uint64, error) {
	ret := a + b
	if ret < a {
		return 0, ErrArithmeticOverflow
	}
	return ret, nil
}

// checkedSub returns a-b, failing on unsigned underflow
func checkedSub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrArithmeticOverflow
	}
	return a - b, nil
}

// checkedMul returns a*b, failing on unsigned overflow
func checkedMul(a, b uint64) (uint64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	ret := a * b
	if ret/a != b {
		return 0, ErrArithmeticOverflow
	}
	return ret, nil
}
