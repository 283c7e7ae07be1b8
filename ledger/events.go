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
	"github.com/mrranger939/crowdFund/event"
)

const (
	CampaignCreatedEventType     = event.EventType("campaign.created")
	CampaignUpdatedEventType     = event.EventType("campaign.updated")
	CampaignDeletedEventType     = event.EventType("campaign.deleted")
	DonationReceivedEventType    = event.EventType("donation.received")
	WithdrawalProcessedEventType = event.EventType("withdrawal.processed")
	PlatformUpdatedEventType     = event.EventType("platform.updated")
)

// CampaignEvent is emitted when a campaign is created, updated, or deleted
type CampaignEvent struct {
	Campaign address.Address
	Creator  address.Address
	Cid      uint64
}

// DonationEvent is emitted when a donation is accepted
type DonationEvent struct {
	Campaign    address.Address
	Donor       address.Address
	Receipt     address.Address
	Cid         uint64
	Amount      uint64
	GoalReached bool
}

// WithdrawalEvent is emitted when a withdrawal is processed
type WithdrawalEvent struct {
	Campaign address.Address
	Creator  address.Address
	Receipt  address.Address
	Cid      uint64
	Amount   uint64
	Fee      uint64
}

// PlatformEvent is emitted when the platform settings change
type PlatformEvent struct {
	PlatformAddress address.Address
	PlatformFee     uint64
}
