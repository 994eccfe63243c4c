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
	"fmt"

	"github.com/blinklabs-io/magpie/capability"
	"github.com/blinklabs-io/magpie/database/models"
)

var (
	// ErrNotAuthorized is shared with the capability package so callers can
	// match identity failures and missing-token failures with one sentinel
	ErrNotAuthorized = capability.ErrNotAuthorized

	// ErrRecordNotFound is shared with the storage layer
	ErrRecordNotFound = models.ErrRecordNotFound

	// ErrDeadlinePassed is returned when an operation's deadline is not in
	// the future (or has been reached, for operations gated on expiry)
	ErrDeadlinePassed = errors.New("deadline passed")

	// ErrInsufficientPayment is returned when a payment pool does not cover
	// the required amount
	ErrInsufficientPayment = errors.New("insufficient payment")

	// ErrListingNotFound is shared with the storage layer
	ErrListingNotFound = models.ErrListingNotFound
)

// RecordConflictError is returned when a version-checked update finds a
// different version than expected. Match it with errors.Is against
// ErrRecordConflict.
type RecordConflictError struct {
	Kind            RecordKind
	RecordID        uint64
	ExpectedVersion uint64
	ActualVersion   uint64
}

func (e RecordConflictError) Error() string {
	return fmt.Sprintf(
		"record conflict: kind %d id %d: expected version %d, found %d",
		e.Kind,
		e.RecordID,
		e.ExpectedVersion,
		e.ActualVersion,
	)
}

func (e RecordConflictError) Unwrap() error {
	return ErrRecordConflict
}

// ErrRecordConflict is the sentinel wrapped by RecordConflictError
var ErrRecordConflict = errors.New("record version conflict")
