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

package api

import (
	"github.com/mrranger939/crowdFund/database/models"
	"github.com/mrranger939/crowdFund/ledger"
)

// RootResponse is returned by GET /
type RootResponse struct {
	Service string `json:"service"`
	Version string `json:"version"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	IsHealthy bool `json:"is_healthy"`
}

// ErrorResponse is the error body for every non-2xx response. Code and
// Name are set for deterministic program rejections.
type ErrorResponse struct {
	StatusCode int    `json:"status_code"`
	Error      string `json:"error"`
	Message    string `json:"message"`
	Code       uint32 `json:"code,omitempty"`
	Name       string `json:"name,omitempty"`
}

// InstructionRequest is the body for POST /api/v1/instructions. Kind
// selects the instruction; the remaining fields are read as that kind
// requires. Addresses are base58 strings.
type InstructionRequest struct {
	Kind            string `json:"kind"`
	Signer          string `json:"signer"`
	Title           string `json:"title,omitempty"`
	Description     string `json:"description,omitempty"`
	ImageUrl        string `json:"image_url,omitempty"`
	ExpectedReceipt string `json:"expected_receipt,omitempty"`
	Cid             uint64 `json:"cid,omitempty"`
	Goal            uint64 `json:"goal,omitempty"`
	Amount          uint64 `json:"amount,omitempty"`
	NewFee          uint64 `json:"new_fee,omitempty"`
}

// InstructionResponse is returned for an applied instruction
type InstructionResponse struct {
	Applied bool   `json:"applied"`
	Kind    string `json:"kind"`
}

// StateResponse is returned by GET /api/v1/state
type StateResponse struct {
	PlatformAddress string `json:"platform_address"`
	CampaignCount   uint64 `json:"campaign_count"`
	PlatformFee     uint64 `json:"platform_fee"`
	Initialized     bool   `json:"initialized"`
}

// CampaignResponse represents a campaign in list and lookup responses
type CampaignResponse struct {
	Address      string `json:"address"`
	Creator      string `json:"creator"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ImageUrl     string `json:"image_url"`
	Cid          uint64 `json:"cid"`
	Goal         uint64 `json:"goal"`
	AmountRaised uint64 `json:"amount_raised"`
	Balance      uint64 `json:"balance"`
	Timestamp    uint64 `json:"timestamp"`
	Donors       uint64 `json:"donors"`
	Withdrawals  uint64 `json:"withdrawals"`
	Active       bool   `json:"active"`
}

// TransactionResponse represents a donation or withdrawal receipt
type TransactionResponse struct {
	Address   string `json:"address"`
	Owner     string `json:"owner"`
	Cid       uint64 `json:"cid"`
	Sequence  uint64 `json:"sequence"`
	Amount    uint64 `json:"amount"`
	Timestamp uint64 `json:"timestamp"`
	Credited  bool   `json:"credited"`
}

// CampaignTransactionsResponse is returned by
// GET /api/v1/campaigns/{cid}/transactions
type CampaignTransactionsResponse struct {
	Donations   []TransactionResponse `json:"donations"`
	Withdrawals []TransactionResponse `json:"withdrawals"`
}

// AccountResponse is returned by GET /api/v1/accounts/{address}
type AccountResponse struct {
	Address  string `json:"address"`
	Kind     string `json:"kind"`
	Lamports uint64 `json:"lamports"`
	Bump     uint8  `json:"bump"`
	DataSize int    `json:"data_size"`
}

// FaucetRequest is the body for POST /api/v1/faucet
type FaucetRequest struct {
	Address string `json:"address"`
	Amount  uint64 `json:"amount"`
}

func campaignResponse(campaign *models.Campaign) CampaignResponse {
	return CampaignResponse{
		Address:      base58OrEmpty(campaign.Address),
		Creator:      base58OrEmpty(campaign.Creator),
		Title:        campaign.Title,
		Description:  campaign.Description,
		ImageUrl:     campaign.ImageUrl,
		Cid:          campaign.Cid,
		Goal:         uint64(campaign.Goal),
		AmountRaised: uint64(campaign.AmountRaised),
		Balance:      uint64(campaign.Balance),
		Timestamp:    uint64(campaign.Timestamp),
		Donors:       uint64(campaign.Donors),
		Withdrawals:  uint64(campaign.Withdrawals),
		Active:       campaign.Active,
	}
}

func transactionResponses(
	records []models.TransactionRecord,
) []TransactionResponse {
	ret := make([]TransactionResponse, 0, len(records))
	for _, record := range records {
		ret = append(ret, TransactionResponse{
			Address:   base58OrEmpty(record.Address),
			Owner:     base58OrEmpty(record.Owner),
			Cid:       record.Cid,
			Sequence:  record.Sequence,
			Amount:    uint64(record.Amount),
			Timestamp: uint64(record.Timestamp),
			Credited:  record.Credited,
		})
	}
	return ret
}

func accountResponse(
	addr string,
	acct *ledger.Account,
) AccountResponse {
	return AccountResponse{
		Address:  addr,
		Kind:     acct.Kind.String(),
		Lamports: acct.Lamports,
		Bump:     acct.Bump,
		DataSize: len(acct.Data),
	}
}
