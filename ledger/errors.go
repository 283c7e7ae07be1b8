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
	"errors"
	"fmt"
)

// ProgramErrorBase is the first code in the program error space. Program
// errors are numbered by declaration order starting here.
const ProgramErrorBase = 6000

// ProgramError is a deterministic rejection produced by an instruction
// handler. The code and name are part of the submission API contract.
type ProgramError struct {
	Name    string
	Message string
	Code    uint32
}

func (e *ProgramError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Name, e.Code, e.Message)
}

func newProgramError(index uint32, name, message string) *ProgramError {
	return &ProgramError{
		Code:    ProgramErrorBase + index,
		Name:    name,
		Message: message,
	}
}

// Program errors, in declaration order. Codes are stable: inserting or
// reordering entries here changes the API contract.
var (
	ErrAlreadyInitialized = newProgramError(0,
		"AlreadyInitialized", "the program has already been initialized")
	ErrTitleTooLong = newProgramError(1,
		"TitleTooLong", "title exceeds 100 characters")
	ErrDescriptionTooLong = newProgramError(2,
		"DescriptionTooLong", "description exceeds 600 characters")
	ErrImageUrlTooLong = newProgramError(3,
		"ImageUrlTooLong", "image url exceeds 300 characters")
	ErrInvalidGoalAmount = newProgramError(4,
		"InvalidGoalAmount", "goal must be greater than zero")
	ErrUnauthorisedAccess = newProgramError(5,
		"UnauthorisedAccess", "signer is not authorised for this operation")
	ErrCampaignNotFound = newProgramError(6,
		"CampaignNotFound", "campaign does not exist")
	ErrInActiveCampaign = newProgramError(7,
		"InActiveCampaign", "campaign is inactive")
	ErrInvalidDonationAmount = newProgramError(8,
		"InvalidDonationAmount", "donation must be at least 1 token")
	ErrCampaignGoalReached = newProgramError(9,
		"CampaignGoalReached", "campaign goal reached")
	ErrInvalidWithdrawAmount = newProgramError(10,
		"InvalidWithdrawAmount", "withdrawal must be at least 1 token")
	ErrInsufficientFund = newProgramError(11,
		"InsufficientFund", "withdrawal exceeds campaign balance")
	ErrInvalidPlatformAddress = newProgramError(12,
		"InvalidPlatformAddress", "platform address mismatch")
	ErrInvalidPlatformFee = newProgramError(13,
		"InvalidPlatformFee", "platform fee must be between 1 and 15")
)

// Runtime errors abort an instruction without a program error code. They
// correspond to failures below the program: address derivation, account
// allocation, native balance moves, and checked arithmetic.
var (
	ErrAccountExists        = errors.New("account already exists")
	ErrAccountNotFound      = errors.New("account not found")
	ErrAddressMismatch      = errors.New("account address mismatch")
	ErrInsufficientLamports = errors.New("insufficient lamports")
	ErrArithmeticOverflow   = errors.New("arithmetic overflow")
	ErrUnknownInstruction   = errors.New("unknown instruction")
	ErrWrongAccountKind     = errors.New("account kind mismatch")
)

// AsProgramError unwraps a *ProgramError from err, if present
func AsProgramError(err error) (*ProgramError, bool) {
	var pe *ProgramError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
