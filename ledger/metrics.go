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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type ledgerMetrics struct {
	instructionsApplied *prometheus.CounterVec
	instructionsFailed  *prometheus.CounterVec
	campaignsActive     prometheus.Gauge
	donationVolume      prometheus.Counter
	withdrawalVolume    prometheus.Counter
}

func (ls *LedgerState) initMetrics(promRegistry prometheus.Registerer) {
	promautoFactory := promauto.With(promRegistry)
	ls.metrics = &ledgerMetrics{
		instructionsApplied: promautoFactory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crowdfund_instructions_applied_total",
				Help: "instructions applied successfully by kind",
			},
			[]string{"kind"},
		),
		instructionsFailed: promautoFactory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crowdfund_instructions_failed_total",
				Help: "instructions rejected by kind",
			},
			[]string{"kind"},
		),
		campaignsActive: promautoFactory.NewGauge(
			prometheus.GaugeOpts{
				Name: "crowdfund_campaigns_active",
				Help: "currently active campaigns",
			},
		),
		donationVolume: promautoFactory.NewCounter(
			prometheus.CounterOpts{
				Name: "crowdfund_donation_volume_lamports_total",
				Help: "total lamports donated",
			},
		),
		withdrawalVolume: promautoFactory.NewCounter(
			prometheus.CounterOpts{
				Name: "crowdfund_withdrawal_volume_lamports_total",
				Help: "total lamports withdrawn, including platform fees",
			},
		),
	}
}
