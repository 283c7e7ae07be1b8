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

package crowdfund

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mrranger939/crowdFund/api"
	"github.com/mrranger939/crowdFund/event"
	"github.com/mrranger939/crowdFund/ledger"
)

type Node struct {
	eventBus      *event.EventBus
	ledgerState   *ledger.LedgerState
	api           *api.Api
	shutdownFuncs []func(context.Context) error
	config        Config
	done          chan struct{}
	shutdownOnce  sync.Once
}

func New(cfg Config) (*Node, error) {
	n := &Node{
		config:   cfg,
		eventBus: event.NewEventBus(cfg.promRegistry, cfg.logger),
		done:     make(chan struct{}),
	}
	if err := n.configValidate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return n, nil
}

// LedgerState returns the hosted ledger, available after Run has started it
func (n *Node) LedgerState() *ledger.LedgerState {
	return n.ledgerState
}

func (n *Node) Run(ctx context.Context) error {
	// Configure tracing
	if n.config.tracing {
		if err := n.setupTracing(); err != nil {
			return err
		}
	}
	// Load ledger, which owns the account store
	state, err := ledger.NewLedgerState(
		ledger.LedgerStateConfig{
			Logger:       n.config.logger,
			EventBus:     n.eventBus,
			PromRegistry: n.config.promRegistry,
			DataDir:      n.config.dataDir,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to load ledger state: %w", err)
	}
	n.ledgerState = state
	// Log ledger activity
	n.eventBus.SubscribeFunc(
		ledger.DonationReceivedEventType,
		n.handleDonationEvent,
	)
	n.eventBus.SubscribeFunc(
		ledger.WithdrawalProcessedEventType,
		n.handleWithdrawalEvent,
	)
	// Start API server
	n.api = api.New(
		api.ApiConfig{
			ListenAddress: n.config.apiListenAddress,
			DevMode:       n.config.isDevMode(),
		},
		n.ledgerState,
		n.config.logger,
	)
	if err := n.api.Start(ctx); err != nil {
		return err
	}

	// Wait for shutdown signal
	select {
	case <-ctx.Done():
	case <-n.done:
	}
	return nil
}

func (n *Node) handleDonationEvent(evt event.Event) {
	data, ok := evt.Data.(ledger.DonationEvent)
	if !ok {
		return
	}
	n.config.logger.Info(
		"donation received",
		"campaign", data.Cid,
		"donor", data.Donor.String(),
		"amount", data.Amount,
		"component", "node",
	)
}

func (n *Node) handleWithdrawalEvent(evt event.Event) {
	data, ok := evt.Data.(ledger.WithdrawalEvent)
	if !ok {
		return
	}
	n.config.logger.Info(
		"withdrawal processed",
		"campaign", data.Cid,
		"creator", data.Creator.String(),
		"amount", data.Amount,
		"component", "node",
	)
}

func (n *Node) Stop() error {
	var err error
	n.shutdownOnce.Do(func() {
		err = n.shutdown()
	})
	return err
}

func (n *Node) shutdown() error {
	// Create shutdown context with timeout (default 30s if not configured)
	shutdownTimeout := 30 * time.Second
	if n.config.shutdownTimeout > 0 {
		shutdownTimeout = n.config.shutdownTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var err error

	n.config.logger.Debug("starting graceful shutdown")

	// Phase 1: Stop accepting new work
	n.config.logger.Debug("shutdown phase 1: stopping new work")

	if n.api != nil {
		if stopErr := n.api.Stop(ctx); stopErr != nil {
			err = errors.Join(err, fmt.Errorf("api shutdown: %w", stopErr))
		}
	}

	// Phase 2: Flush state and close the account store
	n.config.logger.Debug("shutdown phase 2: flushing state")

	if n.ledgerState != nil {
		if closeErr := n.ledgerState.Close(); closeErr != nil {
			err = errors.Join(
				err,
				fmt.Errorf("ledger state close: %w", closeErr),
			)
		}
	}

	// Phase 3: Cleanup resources
	n.config.logger.Debug("shutdown phase 3: cleanup resources")

	// Call registered shutdown functions
	for _, fn := range n.shutdownFuncs {
		if fnErr := fn(ctx); fnErr != nil {
			err = errors.Join(err, fmt.Errorf("shutdown function: %w", fnErr))
		}
	}
	n.shutdownFuncs = nil

	if n.eventBus != nil {
		n.eventBus.Stop()
	}

	n.config.logger.Debug("graceful shutdown complete")
	close(n.done)
	return err
}
