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

// Package value models marketplace currency as a linear resource. Value
// enters the system when a Pool is created, moves between pools only via
// Split and Merge, and leaves only via Drain (settlement into an account
// balance) or Destroy (explicit zero-destruction). A consumed pool can
// never be used again, so value cannot be duplicated or silently dropped.
package value

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds in pool")
	ErrPoolConsumed      = errors.New("pool has already been consumed")
	ErrPoolNotEmpty      = errors.New("cannot destroy non-empty pool")
	ErrSelfMerge         = errors.New("cannot merge a pool into itself")
)

// Pool holds an amount of marketplace currency. The zero value is an empty,
// usable pool. Pools are not safe for concurrent use; each pool is owned by
// exactly one record or caller at a time.
type Pool struct {
	amount   uint64
	consumed bool
}

// NewPool creates a pool holding the given amount. This is the deposit
// boundary: callers create a pool to represent value entering the system
// from the underlying ledger.
func NewPool(amount uint64) *Pool {
	return &Pool{amount: amount}
}

// Amount returns the current balance of the pool.
func (p *Pool) Amount() uint64 {
	return p.amount
}

// Consumed returns true once the pool has been drained, destroyed, or
// merged away.
func (p *Pool) Consumed() bool {
	return p.consumed
}

// Split carves amount out of the pool into a new pool. The original pool
// keeps the rest.
func (p *Pool) Split(amount uint64) (*Pool, error) {
	if p.consumed {
		return nil, ErrPoolConsumed
	}
	if amount > p.amount {
		return nil, fmt.Errorf(
			"split %d from pool holding %d: %w",
			amount,
			p.amount,
			ErrInsufficientFunds,
		)
	}
	p.amount -= amount
	return &Pool{amount: amount}, nil
}

// Merge drains other into p. The drained pool is marked consumed and cannot
// be used afterward.
func (p *Pool) Merge(other *Pool) error {
	if other == p {
		return ErrSelfMerge
	}
	if p.consumed || other.consumed {
		return ErrPoolConsumed
	}
	p.amount += other.amount
	other.amount = 0
	other.consumed = true
	return nil
}

// Drain empties the pool and marks it consumed, returning the amount that
// was held. This is the settlement boundary: the returned amount must be
// credited to an account by the caller.
func (p *Pool) Drain() (uint64, error) {
	if p.consumed {
		return 0, ErrPoolConsumed
	}
	amount := p.amount
	p.amount = 0
	p.consumed = true
	return amount, nil
}

// Destroy consumes an empty pool. Destroying a pool that still holds value
// fails with ErrPoolNotEmpty, which turns an accounting bug into a visible
// error instead of lost funds.
func (p *Pool) Destroy() error {
	if p.consumed {
		return ErrPoolConsumed
	}
	if p.amount != 0 {
		return fmt.Errorf("pool holds %d: %w", p.amount, ErrPoolNotEmpty)
	}
	p.consumed = true
	return nil
}
