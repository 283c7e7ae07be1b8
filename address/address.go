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

package address

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// AddressSize is the length in bytes of an account address
const AddressSize = 32

// Address is a fixed-size account locator within the program's address space.
// Wallet addresses are ed25519 public keys; program-derived addresses are
// produced by Derive and are guaranteed to have no associated signing key.
type Address [AddressSize]byte

// Seed namespace tags used by the program
const (
	TagProgramState = "program_state"
	TagCampaign     = "campaign"
	TagDonor        = "donor"
	TagWithdraw     = "withdraw"
)

// derivationMarker is appended to the seed material to domain-separate
// derived addresses from other uses of the hash
const derivationMarker = "ProgramDerivedAddress"

// MaxSeeds is the maximum number of seeds accepted by Derive
const MaxSeeds = 16

// MaxSeedLength is the maximum length in bytes of a single seed
const MaxSeedLength = 32

var (
	ErrNoViableBump   = errors.New("unable to find a viable bump seed")
	ErrTooManySeeds   = errors.New("too many seeds")
	ErrSeedTooLong    = errors.New("seed exceeds maximum length")
	ErrInvalidAddress = errors.New("invalid address")
)

// ProgramID is the identity of the crowdfunding program itself. It anchors
// all derived addresses to this program's address space.
var ProgramID = MustFromBase58(
	"BWKPqyezd6a3B6npzvR3M5svUerDANVpuMUDyvF51Zd4",
)

// Derive computes a deterministic program-derived address from the given
// seeds, along with the bump that produced it. The result is reproducible
// from the same seeds, unique per distinct seed sequence with overwhelming
// probability, and never a valid ed25519 public key.
func Derive(seeds ...[]byte) (Address, uint8, error) {
	if len(seeds) > MaxSeeds {
		return Address{}, 0, ErrTooManySeeds
	}
	for _, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return Address{}, 0, ErrSeedTooLong
		}
	}
	// Search bump values from 255 downward for the first candidate that
	// does not decode as a curve point. Each failed candidate is discarded,
	// so identical seeds always walk the same path to the same address.
	for bump := 255; bump >= 0; bump-- {
		h := sha256.New()
		for _, seed := range seeds {
			h.Write(seed)
		}
		h.Write([]byte{uint8(bump)})
		h.Write(ProgramID[:])
		h.Write([]byte(derivationMarker))
		var candidate Address
		h.Sum(candidate[:0])
		if !onCurve(candidate) {
			return candidate, uint8(bump), nil
		}
	}
	return Address{}, 0, ErrNoViableBump
}

// onCurve reports whether b decodes as a valid ed25519 curve point. A
// derived address must not be on the curve, since anything on the curve
// could in principle have a private signing key.
func onCurve(a Address) bool {
	_, err := new(edwards25519.Point).SetBytes(a[:])
	return err == nil
}

// Uint64Seed encodes v as the 8-byte little-endian seed used for numeric
// derivation components (campaign ids and sequence numbers)
func Uint64Seed(v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return buf[:]
}

// ProgramState returns the singleton program state address
func ProgramState() (Address, uint8, error) {
	return Derive([]byte(TagProgramState))
}

// Campaign returns the address of the campaign with the given id
func Campaign(cid uint64) (Address, uint8, error) {
	return Derive([]byte(TagCampaign), Uint64Seed(cid))
}

// Donation returns the address of the donation receipt for the given
// donor, campaign, and donor sequence number
func Donation(donor Address, cid, seq uint64) (Address, uint8, error) {
	return Derive(
		[]byte(TagDonor),
		donor[:],
		Uint64Seed(cid),
		Uint64Seed(seq),
	)
}

// Withdrawal returns the address of the withdrawal receipt for the given
// withdrawer, campaign, and withdrawal sequence number
func Withdrawal(withdrawer Address, cid, seq uint64) (Address, uint8, error) {
	return Derive(
		[]byte(TagWithdraw),
		withdrawer[:],
		Uint64Seed(cid),
		Uint64Seed(seq),
	)
}

// FromBase58 parses a base58-encoded address
func FromBase58(s string) (Address, error) {
	var ret Address
	decoded, err := base58.Decode(s)
	if err != nil {
		return ret, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if len(decoded) != AddressSize {
		return ret, fmt.Errorf(
			"%w: expected %d bytes, got %d",
			ErrInvalidAddress,
			AddressSize,
			len(decoded),
		)
	}
	copy(ret[:], decoded)
	return ret, nil
}

// MustFromBase58 parses a base58-encoded address and panics on failure.
// Intended for known-good constants.
func MustFromBase58(s string) Address {
	addr, err := FromBase58(s)
	if err != nil {
		panic(err)
	}
	return addr
}

// FromBytes builds an address from a raw byte slice
func FromBytes(data []byte) (Address, error) {
	var ret Address
	if len(data) != AddressSize {
		return ret, fmt.Errorf(
			"%w: expected %d bytes, got %d",
			ErrInvalidAddress,
			AddressSize,
			len(data),
		)
	}
	copy(ret[:], data)
	return ret, nil
}

// Bytes returns the raw address bytes
func (a Address) Bytes() []byte {
	return a[:]
}

// String returns the base58 representation of the address
func (a Address) String() string {
	return base58.Encode(a[:])
}

// IsZero reports whether the address is the all-zero value
func (a Address) IsZero() bool {
	return a == Address{}
}

// MarshalText implements encoding.TextMarshaler, allowing addresses to be
// used directly in JSON payloads
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *Address) UnmarshalText(text []byte) error {
	addr, err := FromBase58(string(text))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
