// Copyright 2026 Blink Labs Software
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

package royalty

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/blinklabs-io/magpie/ledger"
	"github.com/blinklabs-io/magpie/value"
	"github.com/prometheus/client_golang/prometheus"
)

// Accounts is the settlement surface the engine disburses through
type Accounts interface {
	Credit(to ledger.Identity, payment *value.Pool) error
}

// Payouts reports where a distributed payment went. Amounts holds the
// floor share per recipient; Remainder is the dust folded into the first
// table entry. The sum of all amounts plus the remainder always equals the
// distributed total.
type Payouts struct {
	Amounts   map[ledger.Identity]uint64
	Remainder uint64
}

// EngineConfig is the configuration for the distribution Engine
type EngineConfig struct {
	Logger       *slog.Logger
	Accounts     Accounts
	PromRegistry prometheus.Registerer
}

// Engine distributes payments according to royalty tables
type Engine struct {
	logger   *slog.Logger
	accounts Accounts
	metrics  engineMetrics
}

// NewEngine creates a distribution engine over the given settlement book
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.Accounts == nil {
		return nil, errors.New("no accounts provided")
	}
	e := &Engine{
		logger:   cfg.Logger,
		accounts: cfg.Accounts,
	}
	if e.logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		e.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if cfg.PromRegistry != nil {
		e.metrics.init(cfg.PromRegistry)
	}
	return e, nil
}

// Distribute splits payment across the table's recipients, crediting each
// floor share and folding the leftover dust into the first table entry.
// The payment pool is fully consumed on success.
func (e *Engine) Distribute(
	payment *value.Pool,
	table Table,
) (Payouts, error) {
	if err := table.Validate(); err != nil {
		return Payouts{}, err
	}
	total := payment.Amount()
	payouts := Payouts{
		Amounts: make(map[ledger.Identity]uint64, len(table)),
	}
	for _, entry := range table {
		amount := Share(total, entry.BasisPoints)
		if amount == 0 {
			continue
		}
		// A short pool skips remaining disbursements rather than underflow
		if amount > payment.Amount() {
			e.logger.Warn(
				"payment pool short, skipping disbursement",
				"component", "royalty",
				"recipient", string(entry.Recipient),
				"amount", amount,
				"available", payment.Amount(),
			)
			continue
		}
		slice, err := payment.Split(amount)
		if err != nil {
			return Payouts{}, fmt.Errorf("failed to split payment: %w", err)
		}
		if err := e.accounts.Credit(entry.Recipient, slice); err != nil {
			return Payouts{}, fmt.Errorf(
				"failed to credit %s: %w",
				entry.Recipient,
				err,
			)
		}
		payouts.Amounts[entry.Recipient] += amount
	}
	// Dust goes to the first table entry
	if dust := payment.Amount(); dust > 0 {
		slice, err := payment.Split(dust)
		if err != nil {
			return Payouts{}, fmt.Errorf("failed to split dust: %w", err)
		}
		if err := e.accounts.Credit(table[0].Recipient, slice); err != nil {
			return Payouts{}, fmt.Errorf(
				"failed to credit dust to %s: %w",
				table[0].Recipient,
				err,
			)
		}
		payouts.Remainder = dust
	}
	if err := payment.Destroy(); err != nil {
		return Payouts{}, fmt.Errorf(
			"failed to destroy drained payment pool: %w",
			err,
		)
	}
	e.metrics.observe(total)
	e.logger.Debug(
		"distributed payment",
		"component", "royalty",
		"total", total,
		"recipients", len(payouts.Amounts),
		"remainder", payouts.Remainder,
	)
	return payouts, nil
}
