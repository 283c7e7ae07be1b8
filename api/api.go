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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/mrranger939/crowdFund/address"
	"github.com/mrranger939/crowdFund/database/models"
	"github.com/mrranger939/crowdFund/ledger"
)

// ApiConfig configures the REST API server
type ApiConfig struct {
	ListenAddress string
	// DevMode enables the faucet endpoint. Never enable it on a deployment
	// holding real balances.
	DevMode bool
}

// ApiNode is the interface the API server uses to submit instructions and
// query ledger state. This decouples the HTTP server from the concrete
// LedgerState and enables testing with mock implementations.
type ApiNode interface {
	Apply(ctx context.Context, instr ledger.Instruction) error
	ProgramState() (*models.ProgramState, error)
	Campaigns(activeOnly bool) ([]models.Campaign, error)
	Campaign(cid uint64) (*models.Campaign, error)
	CampaignDonations(cid uint64) ([]models.TransactionRecord, error)
	CampaignWithdrawals(cid uint64) ([]models.TransactionRecord, error)
	AccountInfo(addr address.Address) (*ledger.Account, error)
	Faucet(addr address.Address, amount uint64) error
}

// Api is the REST API server
type Api struct {
	config     ApiConfig
	logger     *slog.Logger
	node       ApiNode
	httpServer *http.Server
	mu         sync.Mutex
}

// New creates a new API server instance
func New(cfg ApiConfig, node ApiNode, logger *slog.Logger) *Api {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	logger = logger.With("component", "api")
	if cfg.ListenAddress == "" {
		cfg.ListenAddress = ":3000"
	}
	return &Api{
		config: cfg,
		logger: logger,
		node:   node,
	}
}

// Routes returns the HTTP handler serving all API routes
func (a *Api) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", a.handleRoot)
	mux.HandleFunc("GET /health", a.handleHealth)
	mux.HandleFunc("POST /api/v1/instructions", a.handleInstruction)
	mux.HandleFunc("GET /api/v1/state", a.handleState)
	mux.HandleFunc("GET /api/v1/campaigns", a.handleCampaigns)
	mux.HandleFunc("GET /api/v1/campaigns/{cid}", a.handleCampaign)
	mux.HandleFunc(
		"GET /api/v1/campaigns/{cid}/transactions",
		a.handleCampaignTransactions,
	)
	mux.HandleFunc("GET /api/v1/accounts/{address}", a.handleAccount)
	if a.config.DevMode {
		mux.HandleFunc("POST /api/v1/faucet", a.handleFaucet)
	}
	return mux
}

// Start starts the HTTP server in a background goroutine
func (a *Api) Start(ctx context.Context) error {
	a.mu.Lock()
	if a.httpServer != nil {
		a.mu.Unlock()
		return errors.New("server already started")
	}
	server := &http.Server{
		Addr:              a.config.ListenAddress,
		Handler:           a.Routes(),
		ReadHeaderTimeout: 60 * time.Second,
	}
	a.httpServer = server
	a.mu.Unlock()

	// Bind the listening socket first so port conflicts are detected
	// immediately, then serve in a background goroutine
	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		a.mu.Lock()
		a.httpServer = nil
		a.mu.Unlock()
		return fmt.Errorf("failed to listen for API server: %w", err)
	}
	go func() {
		if err := server.Serve(ln); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("API server error", "error", err)
		}
	}()

	a.logger.Info("API listener started on " + a.config.ListenAddress)
	if a.config.DevMode {
		a.logger.Warn("faucet endpoint enabled, do not use in production")
	}

	// Monitor context for cancellation
	go func() {
		<-ctx.Done()
		a.mu.Lock()
		srv := a.httpServer
		a.httpServer = nil
		a.mu.Unlock()
		if srv != nil {
			a.logger.Debug("context cancelled, shutting down API server")
			//nolint:contextcheck
			shutdownCtx, cancel := context.WithTimeout(
				context.Background(),
				30*time.Second,
			)
			defer cancel()
			//nolint:contextcheck
			if err := srv.Shutdown(shutdownCtx); err != nil {
				a.logger.Error(
					"failed to shutdown API server on context cancellation",
					"error", err,
				)
			}
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server
func (a *Api) Stop(ctx context.Context) error {
	a.mu.Lock()
	srv := a.httpServer
	a.httpServer = nil
	a.mu.Unlock()

	if srv != nil {
		a.logger.Debug("shutting down API server")
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown API server: %w", err)
		}
	}
	return nil
}
