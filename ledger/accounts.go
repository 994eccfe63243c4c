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

package ledger

import (
	"errors"
	"io"
	"log/slog"

	"github.com/blinklabs-io/magpie/database"
	"github.com/blinklabs-io/magpie/database/models"
	"github.com/blinklabs-io/magpie/value"
)

// AccountsConfig is the configuration for the settlement Accounts book
type AccountsConfig struct {
	Logger   *slog.Logger
	Database *database.Database
}

// Accounts is the settlement book. Value leaves the linear pool model only
// here: crediting an account drains a pool and adds its amount to the
// recipient's persisted balance.
type Accounts struct {
	logger *slog.Logger
	db     *database.Database
}

// NewAccounts creates a settlement book over the given database
func NewAccounts(cfg AccountsConfig) (*Accounts, error) {
	if cfg.Database == nil {
		return nil, errors.New("no database provided")
	}
	a := &Accounts{
		logger: cfg.Logger,
		db:     cfg.Database,
	}
	if a.logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		a.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return a, nil
}

// Credit drains payment into the recipient's account balance. The pool is
// consumed even when it holds nothing.
func (a *Accounts) Credit(to Identity, payment *value.Pool) error {
	amount, err := payment.Drain()
	if err != nil {
		return err
	}
	if amount == 0 {
		return nil
	}
	if err := a.db.CreditAccount(string(to), amount, nil); err != nil {
		return err
	}
	a.logger.Debug(
		"credited account",
		"component", "ledger",
		"account", string(to),
		"amount", amount,
	)
	return nil
}

// BalanceOf returns the settled balance for an identity. Unknown identities
// have a zero balance.
func (a *Accounts) BalanceOf(id Identity) (uint64, error) {
	account, err := a.db.GetAccount(string(id), nil)
	if err != nil {
		if errors.Is(err, models.ErrAccountNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return uint64(account.Balance), nil
}
