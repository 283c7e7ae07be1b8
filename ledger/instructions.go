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
	"github.com/mrranger939/crowdFund/address"
)

// Instruction kinds as submitted over the API
const (
	InstructionInitialize             = "initialize"
	InstructionCreateCampaign         = "createCampaign"
	InstructionUpdateCampaign         = "updateCampaign"
	InstructionDonate                 = "donate"
	InstructionWithdraw               = "withdraw"
	InstructionDeleteCampaign         = "deleteCampaign"
	InstructionUpdatePlatformSettings = "updatePlatformSettings"
)

// Instruction is a single atomic operation against the ledger. Each
// instruction names its signer; the handler derives every other account it
// touches.
type Instruction interface {
	Kind() string
	isInstruction()
}

// Initialize creates the program state singleton. The signer becomes the
// platform address and pays rent for the state account.
type Initialize struct {
	Signer address.Address
}

func (Initialize) Kind() string   { return InstructionInitialize }
func (Initialize) isInstruction() {}

// CreateCampaign allocates the next campaign account. The signer becomes
// the campaign creator and pays rent.
type CreateCampaign struct {
	Title       string
	Description string
	ImageUrl    string
	Signer      address.Address
	Goal        uint64
}

func (CreateCampaign) Kind() string   { return InstructionCreateCampaign }
func (CreateCampaign) isInstruction() {}

// UpdateCampaign rewrites the mutable fields of an active campaign. Only
// the creator may update.
type UpdateCampaign struct {
	Title       string
	Description string
	ImageUrl    string
	Signer      address.Address
	Cid         uint64
	Goal        uint64
}

func (UpdateCampaign) Kind() string   { return InstructionUpdateCampaign }
func (UpdateCampaign) isInstruction() {}

// Donate moves lamports from the signer's wallet into a campaign and
// allocates a donation receipt. ExpectedReceipt optionally names the receipt
// address the caller derived; a mismatch aborts the instruction.
type Donate struct {
	ExpectedReceipt *address.Address
	Signer          address.Address
	Cid             uint64
	Amount          uint64
}

func (Donate) Kind() string   { return InstructionDonate }
func (Donate) isInstruction() {}

// Withdraw moves lamports out of a campaign to its creator, less the
// platform fee, and allocates a withdrawal receipt. Only the creator may
// withdraw.
type Withdraw struct {
	ExpectedReceipt *address.Address
	Signer          address.Address
	Cid             uint64
	Amount          uint64
}

func (Withdraw) Kind() string   { return InstructionWithdraw }
func (Withdraw) isInstruction() {}

// DeleteCampaign deactivates a campaign and destroys its account, returning
// the remaining lamports (balance plus rent deposit) to the creator.
// Receipt accounts are kept.
type DeleteCampaign struct {
	Signer address.Address
	Cid    uint64
}

func (DeleteCampaign) Kind() string   { return InstructionDeleteCampaign }
func (DeleteCampaign) isInstruction() {}

// UpdatePlatformSettings changes the platform fee. Only the platform
// address may change it.
type UpdatePlatformSettings struct {
	Signer address.Address
	NewFee uint64
}

func (UpdatePlatformSettings) Kind() string {
	return InstructionUpdatePlatformSettings
}
func (UpdatePlatformSettings) isInstruction() {}
