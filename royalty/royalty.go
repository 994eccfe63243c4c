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

// Package royalty implements revenue distribution. A royalty table splits
// a payment across recipients in proportion to basis points summing to
// 10000; division always rounds down and the dust goes to the first table
// entry, so no distribution ever creates or destroys value.
package royalty

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/blinklabs-io/magpie/ledger"
)

// TotalBasisPoints is the required sum of a royalty table
const TotalBasisPoints = 10000

// ErrInvalidRoyalty is returned for tables whose recipient and basis point
// lists differ in length or whose basis points do not sum to 10000
var ErrInvalidRoyalty = errors.New("invalid royalty table")

// Entry assigns a share of revenue to a recipient
type Entry struct {
	Recipient   ledger.Identity `cbor:"1,keyasint" json:"recipient"`
	BasisPoints uint16          `cbor:"2,keyasint" json:"basisPoints"`
}

// Table is an ordered list of revenue shares
type Table []Entry

// NewTable builds a validated royalty table from parallel recipient and
// basis point lists
func NewTable(
	recipients []ledger.Identity,
	basisPoints []uint16,
) (Table, error) {
	if len(recipients) != len(basisPoints) {
		return nil, fmt.Errorf(
			"%d recipients but %d basis point entries: %w",
			len(recipients),
			len(basisPoints),
			ErrInvalidRoyalty,
		)
	}
	table := make(Table, 0, len(recipients))
	for i, recipient := range recipients {
		table = append(table, Entry{
			Recipient:   recipient,
			BasisPoints: basisPoints[i],
		})
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// Validate checks that the table's basis points sum to exactly 10000
func (t Table) Validate() error {
	var sum uint64
	for _, entry := range t {
		sum += uint64(entry.BasisPoints)
	}
	if sum != TotalBasisPoints {
		return fmt.Errorf(
			"basis points sum to %d, not %d: %w",
			sum,
			TotalBasisPoints,
			ErrInvalidRoyalty,
		)
	}
	return nil
}

// Share returns floor(total * basisPoints / 10000) without overflowing on
// large totals
func Share(total uint64, basisPoints uint16) uint64 {
	hi, lo := bits.Mul64(total, uint64(basisPoints))
	quo, _ := bits.Div64(hi, lo, TotalBasisPoints)
	return quo
}
