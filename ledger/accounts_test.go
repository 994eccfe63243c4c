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

package ledger_test

import (
	"testing"

	"github.com/blinklabs-io/magpie/ledger"
	"github.com/blinklabs-io/magpie/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountsCreditAndBalance(t *testing.T) {
	db := newTestDatabase(t)
	accounts, err := ledger.NewAccounts(ledger.AccountsConfig{Database: db})
	require.NoError(t, err)

	balance, err := accounts.BalanceOf("alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)

	payment := value.NewPool(500)
	require.NoError(t, accounts.Credit("alice", payment))
	assert.True(t, payment.Consumed())

	require.NoError(t, accounts.Credit("alice", value.NewPool(250)))

	balance, err = accounts.BalanceOf("alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(750), balance)
}

func TestAccountsCreditConsumedPool(t *testing.T) {
	db := newTestDatabase(t)
	accounts, err := ledger.NewAccounts(ledger.AccountsConfig{Database: db})
	require.NoError(t, err)

	payment := value.NewPool(100)
	require.NoError(t, accounts.Credit("alice", payment))
	err = accounts.Credit("bob", payment)
	assert.ErrorIs(t, err, value.ErrPoolConsumed)

	balance, err := accounts.BalanceOf("bob")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)
}

func TestAccountsCreditEmptyPool(t *testing.T) {
	db := newTestDatabase(t)
	accounts, err := ledger.NewAccounts(ledger.AccountsConfig{Database: db})
	require.NoError(t, err)

	payment := value.NewPool(0)
	require.NoError(t, accounts.Credit("alice", payment))
	assert.True(t, payment.Consumed())
}
