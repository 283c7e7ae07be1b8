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
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/mrranger939/crowdFund/address"
	"github.com/mrranger939/crowdFund/database/models"
	"github.com/mrranger939/crowdFund/internal/version"
	"github.com/mrranger939/crowdFund/ledger"
)

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,errchkjson
	json.NewEncoder(w).Encode(v)
}

// writeError writes an error response
func writeError(w http.ResponseWriter, status int, errStr, message string) {
	writeJSON(w, status, ErrorResponse{
		StatusCode: status,
		Error:      errStr,
		Message:    message,
	})
}

// writeApplyError maps an instruction failure onto an HTTP status.
// Deterministic program rejections carry their stable code and name.
func writeApplyError(w http.ResponseWriter, err error) {
	if pe, ok := ledger.AsProgramError(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			StatusCode: http.StatusUnprocessableEntity,
			Error:      "Unprocessable Entity",
			Message:    pe.Message,
			Code:       pe.Code,
			Name:       pe.Name,
		})
		return
	}
	switch {
	case errors.Is(err, ledger.ErrAddressMismatch),
		errors.Is(err, ledger.ErrUnknownInstruction):
		writeError(w, http.StatusBadRequest, "Bad Request", err.Error())
	case errors.Is(err, ledger.ErrInsufficientLamports),
		errors.Is(err, ledger.ErrAccountExists),
		errors.Is(err, ledger.ErrAccountNotFound):
		writeError(w, http.StatusConflict, "Conflict", err.Error())
	default:
		writeError(
			w,
			http.StatusInternalServerError,
			"Internal Server Error",
			"failed to apply instruction",
		)
	}
}

func base58OrEmpty(data []byte) string {
	addr, err := address.FromBytes(data)
	if err != nil {
		return ""
	}
	return addr.String()
}

// handleRoot handles GET / and returns API metadata
func (a *Api) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{
		Service: "crowdfund",
		Version: version.GetVersionString(),
	})
}

// handleHealth handles GET /health
func (a *Api) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{IsHealthy: true})
}

// handleInstruction handles POST /api/v1/instructions
func (a *Api) handleInstruction(w http.ResponseWriter, r *http.Request) {
	var req InstructionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	signer, err := address.FromBase58(req.Signer)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request", "invalid signer address")
		return
	}
	var expectedReceipt *address.Address
	if req.ExpectedReceipt != "" {
		receipt, err := address.FromBase58(req.ExpectedReceipt)
		if err != nil {
			writeError(
				w,
				http.StatusBadRequest,
				"Bad Request",
				"invalid expected receipt address",
			)
			return
		}
		expectedReceipt = &receipt
	}
	var instr ledger.Instruction
	switch req.Kind {
	case ledger.InstructionInitialize:
		instr = ledger.Initialize{Signer: signer}
	case ledger.InstructionCreateCampaign:
		instr = ledger.CreateCampaign{
			Title:       req.Title,
			Description: req.Description,
			ImageUrl:    req.ImageUrl,
			Signer:      signer,
			Goal:        req.Goal,
		}
	case ledger.InstructionUpdateCampaign:
		instr = ledger.UpdateCampaign{
			Title:       req.Title,
			Description: req.Description,
			ImageUrl:    req.ImageUrl,
			Signer:      signer,
			Cid:         req.Cid,
			Goal:        req.Goal,
		}
	case ledger.InstructionDonate:
		instr = ledger.Donate{
			ExpectedReceipt: expectedReceipt,
			Signer:          signer,
			Cid:             req.Cid,
			Amount:          req.Amount,
		}
	case ledger.InstructionWithdraw:
		instr = ledger.Withdraw{
			ExpectedReceipt: expectedReceipt,
			Signer:          signer,
			Cid:             req.Cid,
			Amount:          req.Amount,
		}
	case ledger.InstructionDeleteCampaign:
		instr = ledger.DeleteCampaign{Signer: signer, Cid: req.Cid}
	case ledger.InstructionUpdatePlatformSettings:
		instr = ledger.UpdatePlatformSettings{
			Signer: signer,
			NewFee: req.NewFee,
		}
	default:
		writeError(
			w,
			http.StatusBadRequest,
			"Bad Request",
			"unknown instruction kind",
		)
		return
	}
	if err := a.node.Apply(r.Context(), instr); err != nil {
		a.logger.Debug(
			"instruction rejected",
			"kind", req.Kind,
			"error", err,
		)
		writeApplyError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, InstructionResponse{
		Applied: true,
		Kind:    req.Kind,
	})
}

// handleState handles GET /api/v1/state
func (a *Api) handleState(w http.ResponseWriter, _ *http.Request) {
	state, err := a.node.ProgramState()
	if err != nil {
		if errors.Is(err, models.ErrProgramStateNotFound) {
			writeError(
				w,
				http.StatusNotFound,
				"Not Found",
				"program has not been initialized",
			)
			return
		}
		a.logger.Error("failed to get program state", "error", err)
		writeError(
			w,
			http.StatusInternalServerError,
			"Internal Server Error",
			"failed to retrieve program state",
		)
		return
	}
	writeJSON(w, http.StatusOK, StateResponse{
		PlatformAddress: base58OrEmpty(state.PlatformAddress),
		CampaignCount:   uint64(state.CampaignCount),
		PlatformFee:     uint64(state.PlatformFee),
		Initialized:     state.Initialized,
	})
}

// handleCampaigns handles GET /api/v1/campaigns
func (a *Api) handleCampaigns(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	campaigns, err := a.node.Campaigns(activeOnly)
	if err != nil {
		a.logger.Error("failed to list campaigns", "error", err)
		writeError(
			w,
			http.StatusInternalServerError,
			"Internal Server Error",
			"failed to retrieve campaigns",
		)
		return
	}
	ret := make([]CampaignResponse, 0, len(campaigns))
	for i := range campaigns {
		ret = append(ret, campaignResponse(&campaigns[i]))
	}
	writeJSON(w, http.StatusOK, ret)
}

// campaignId parses the cid path segment
func campaignId(r *http.Request) (uint64, error) {
	return strconv.ParseUint(r.PathValue("cid"), 10, 64)
}

// handleCampaign handles GET /api/v1/campaigns/{cid}
func (a *Api) handleCampaign(w http.ResponseWriter, r *http.Request) {
	cid, err := campaignId(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request", "invalid campaign id")
		return
	}
	campaign, err := a.node.Campaign(cid)
	if err != nil {
		if errors.Is(err, models.ErrCampaignNotFound) {
			writeError(w, http.StatusNotFound, "Not Found", "campaign not found")
			return
		}
		a.logger.Error("failed to get campaign", "error", err)
		writeError(
			w,
			http.StatusInternalServerError,
			"Internal Server Error",
			"failed to retrieve campaign",
		)
		return
	}
	writeJSON(w, http.StatusOK, campaignResponse(campaign))
}

// handleCampaignTransactions handles
// GET /api/v1/campaigns/{cid}/transactions
func (a *Api) handleCampaignTransactions(
	w http.ResponseWriter,
	r *http.Request,
) {
	cid, err := campaignId(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request", "invalid campaign id")
		return
	}
	donations, err := a.node.CampaignDonations(cid)
	if err != nil {
		a.logger.Error("failed to get campaign donations", "error", err)
		writeError(
			w,
			http.StatusInternalServerError,
			"Internal Server Error",
			"failed to retrieve campaign transactions",
		)
		return
	}
	withdrawals, err := a.node.CampaignWithdrawals(cid)
	if err != nil {
		a.logger.Error("failed to get campaign withdrawals", "error", err)
		writeError(
			w,
			http.StatusInternalServerError,
			"Internal Server Error",
			"failed to retrieve campaign transactions",
		)
		return
	}
	writeJSON(w, http.StatusOK, CampaignTransactionsResponse{
		Donations:   transactionResponses(donations),
		Withdrawals: transactionResponses(withdrawals),
	})
}

// handleAccount handles GET /api/v1/accounts/{address}
func (a *Api) handleAccount(w http.ResponseWriter, r *http.Request) {
	addr, err := address.FromBase58(r.PathValue("address"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request", "invalid address")
		return
	}
	acct, err := a.node.AccountInfo(addr)
	if err != nil {
		if errors.Is(err, ledger.ErrAccountNotFound) {
			writeError(w, http.StatusNotFound, "Not Found", "account not found")
			return
		}
		a.logger.Error("failed to get account", "error", err)
		writeError(
			w,
			http.StatusInternalServerError,
			"Internal Server Error",
			"failed to retrieve account",
		)
		return
	}
	writeJSON(w, http.StatusOK, accountResponse(addr.String(), acct))
}

// handleFaucet handles POST /api/v1/faucet. Only routed in dev mode.
func (a *Api) handleFaucet(w http.ResponseWriter, r *http.Request) {
	var req FaucetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	addr, err := address.FromBase58(req.Address)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request", "invalid address")
		return
	}
	if req.Amount == 0 {
		writeError(w, http.StatusBadRequest, "Bad Request", "amount must be positive")
		return
	}
	if err := a.node.Faucet(addr, req.Amount); err != nil {
		a.logger.Error("faucet credit failed", "error", err)
		writeError(
			w,
			http.StatusInternalServerError,
			"Internal Server Error",
			"failed to credit wallet",
		)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"credited": true})
}
