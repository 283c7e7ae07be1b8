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
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mrranger939/crowdFund/address"
	"github.com/mrranger939/crowdFund/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const oneToken = uint64(1_000_000_000)

var (
	platformWallet = address.Address{0x01}
	creatorWallet  = address.Address{0x02}
	donorWallet    = address.Address{0x03}
)

// newTestApi backs the API with a real in-memory ledger
func newTestApi(t *testing.T, devMode bool) (*Api, *ledger.LedgerState) {
	t.Helper()
	ls, err := ledger.NewLedgerState(ledger.LedgerStateConfig{})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, ls.Close())
	})
	a := New(ApiConfig{ListenAddress: ":0", DevMode: devMode}, ls, nil)
	return a, ls
}

func doRequest(
	t *testing.T,
	a *Api,
	method, path string,
	body any,
) *httptest.ResponseRecorder {
	t.Helper()
	var reqBody *bytes.Buffer
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(buf)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, reqBody)
	rec := httptest.NewRecorder()
	a.Routes().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var ret T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ret))
	return ret
}

func TestStartStop(t *testing.T) {
	a, _ := newTestApi(t, false)

	err := a.Start(t.Context())
	require.NoError(t, err)

	// Verify server is running
	a.mu.Lock()
	assert.NotNil(t, a.httpServer)
	a.mu.Unlock()

	stopCtx, stopCancel := context.WithTimeout(
		context.Background(),
		5*time.Second,
	)
	defer stopCancel()
	err = a.Stop(stopCtx)
	require.NoError(t, err)

	// Verify server is stopped
	a.mu.Lock()
	assert.Nil(t, a.httpServer)
	a.mu.Unlock()
}

func TestRootAndHealth(t *testing.T) {
	a, _ := newTestApi(t, false)

	rec := doRequest(t, a, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	root := decodeBody[RootResponse](t, rec)
	assert.Equal(t, "crowdfund", root.Service)

	rec = doRequest(t, a, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	health := decodeBody[HealthResponse](t, rec)
	assert.True(t, health.IsHealthy)
}

func TestInstructionFlow(t *testing.T) {
	a, _ := newTestApi(t, true)

	// Fund the wallets via the dev faucet
	for _, wallet := range []address.Address{
		platformWallet, creatorWallet, donorWallet,
	} {
		rec := doRequest(t, a, http.MethodPost, "/api/v1/faucet", FaucetRequest{
			Address: wallet.String(),
			Amount:  100 * oneToken,
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	// Initialize
	rec := doRequest(t, a, http.MethodPost, "/api/v1/instructions",
		InstructionRequest{
			Kind:   ledger.InstructionInitialize,
			Signer: platformWallet.String(),
		})
	require.Equal(t, http.StatusOK, rec.Code)
	applied := decodeBody[InstructionResponse](t, rec)
	assert.True(t, applied.Applied)

	rec = doRequest(t, a, http.MethodGet, "/api/v1/state", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	state := decodeBody[StateResponse](t, rec)
	assert.True(t, state.Initialized)
	assert.Equal(t, platformWallet.String(), state.PlatformAddress)
	assert.Equal(t, uint64(3), state.PlatformFee)

	// Create a campaign
	rec = doRequest(t, a, http.MethodPost, "/api/v1/instructions",
		InstructionRequest{
			Kind:        ledger.InstructionCreateCampaign,
			Signer:      creatorWallet.String(),
			Title:       "clean water",
			Description: "a well for the village",
			ImageUrl:    "https://example.com/well.png",
			Goal:        50 * oneToken,
		})
	require.Equal(t, http.StatusOK, rec.Code)

	// Donate
	rec = doRequest(t, a, http.MethodPost, "/api/v1/instructions",
		InstructionRequest{
			Kind:   ledger.InstructionDonate,
			Signer: donorWallet.String(),
			Cid:    1,
			Amount: 5 * oneToken,
		})
	require.Equal(t, http.StatusOK, rec.Code)

	// Campaign listing and lookup
	rec = doRequest(t, a, http.MethodGet, "/api/v1/campaigns?active=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	campaigns := decodeBody[[]CampaignResponse](t, rec)
	require.Len(t, campaigns, 1)
	assert.Equal(t, uint64(1), campaigns[0].Cid)

	rec = doRequest(t, a, http.MethodGet, "/api/v1/campaigns/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	campaign := decodeBody[CampaignResponse](t, rec)
	assert.Equal(t, "clean water", campaign.Title)
	assert.Equal(t, 5*oneToken, campaign.AmountRaised)
	assert.Equal(t, creatorWallet.String(), campaign.Creator)

	// Receipts
	rec = doRequest(
		t, a, http.MethodGet, "/api/v1/campaigns/1/transactions", nil,
	)
	require.Equal(t, http.StatusOK, rec.Code)
	txs := decodeBody[CampaignTransactionsResponse](t, rec)
	require.Len(t, txs.Donations, 1)
	assert.Empty(t, txs.Withdrawals)
	assert.Equal(t, donorWallet.String(), txs.Donations[0].Owner)
	assert.Equal(t, 5*oneToken, txs.Donations[0].Amount)

	// Account lookup
	rec = doRequest(
		t, a, http.MethodGet, "/api/v1/accounts/"+campaign.Address, nil,
	)
	require.Equal(t, http.StatusOK, rec.Code)
	acct := decodeBody[AccountResponse](t, rec)
	assert.Equal(t, "campaign", acct.Kind)
	assert.Positive(t, acct.Lamports)
}

func TestInstructionErrors(t *testing.T) {
	a, _ := newTestApi(t, true)

	// Unknown instruction kind
	rec := doRequest(t, a, http.MethodPost, "/api/v1/instructions",
		InstructionRequest{
			Kind:   "mintTokens",
			Signer: platformWallet.String(),
		})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Invalid signer address
	rec = doRequest(t, a, http.MethodPost, "/api/v1/instructions",
		InstructionRequest{
			Kind:   ledger.InstructionInitialize,
			Signer: "not-an-address",
		})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Program rejections carry the stable error code
	rec = doRequest(t, a, http.MethodPost, "/api/v1/faucet", FaucetRequest{
		Address: donorWallet.String(),
		Amount:  100 * oneToken,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(t, a, http.MethodPost, "/api/v1/instructions",
		InstructionRequest{
			Kind:   ledger.InstructionDonate,
			Signer: donorWallet.String(),
			Cid:    1,
			Amount: 5 * oneToken,
		})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errResp := decodeBody[ErrorResponse](t, rec)
	assert.Equal(t, uint32(6006), errResp.Code)
	assert.Equal(t, "CampaignNotFound", errResp.Name)

	// Runtime rejection (unfunded signer)
	rec = doRequest(t, a, http.MethodPost, "/api/v1/instructions",
		InstructionRequest{
			Kind:   ledger.InstructionInitialize,
			Signer: creatorWallet.String(),
		})
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestQueryNotFound(t *testing.T) {
	a, _ := newTestApi(t, false)

	rec := doRequest(t, a, http.MethodGet, "/api/v1/state", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, a, http.MethodGet, "/api/v1/campaigns/42", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(
		t, a, http.MethodGet,
		"/api/v1/accounts/"+donorWallet.String(),
		nil,
	)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, a, http.MethodGet, "/api/v1/campaigns/abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFaucetDisabledOutsideDevMode(t *testing.T) {
	a, _ := newTestApi(t, false)

	rec := doRequest(t, a, http.MethodPost, "/api/v1/faucet", FaucetRequest{
		Address: donorWallet.String(),
		Amount:  oneToken,
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}
