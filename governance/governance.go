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

// Package governance implements weighted-voting governance. Proposals are
// typed by their action variant, and execution is dispatched through
// matching typed executors, so running the wrong executor against a
// proposal is a compile error rather than a runtime check.
package governance

import (
	"errors"

	"github.com/blinklabs-io/magpie/event"
	"github.com/blinklabs-io/magpie/ledger"
	"github.com/blinklabs-io/magpie/tasks"
)

var (
	// ErrProposalNotActive is returned when voting on or tallying a
	// concluded proposal, or executing one that has not passed
	ErrProposalNotActive = errors.New("proposal not active")

	// ErrProposalExpired is returned when voting after the deadline or
	// tallying before it
	ErrProposalExpired = errors.New("proposal expired")

	// ErrInvalidValidator is shared with the task workflow: one vote per
	// identity, one review per validator
	ErrInvalidValidator = tasks.ErrInvalidValidator
)

// Status is the lifecycle state of a proposal. Transitions are strictly
// monotonic: Active, then Passed or Rejected, then Executed.
type Status uint8

const (
	StatusActive Status = iota + 1
	StatusPassed
	StatusRejected
	StatusExecuted
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusPassed:
		return "passed"
	case StatusRejected:
		return "rejected"
	case StatusExecuted:
		return "executed"
	default:
		return "unknown"
	}
}

// Action is the sealed set of things governance can do. Variants live in
// this package only.
type Action interface {
	actionLabel() string
}

// FreezeAsset freezes or unfreezes an asset
type FreezeAsset struct {
	AssetID uint64 `json:"assetId"`
	Freeze  bool   `json:"freeze"`
}

func (FreezeAsset) actionLabel() string { return "freeze_asset" }

// AuthorizeUpgrade records a code digest as authorized for deployment
type AuthorizeUpgrade struct {
	Digest []byte `json:"digest"`
}

func (AuthorizeUpgrade) actionLabel() string { return "authorize_upgrade" }

// ResolveTaskEscrow disburses a disputed task's stranded funds to a
// chosen beneficiary
type ResolveTaskEscrow struct {
	TaskID      uint64          `json:"taskId"`
	Beneficiary ledger.Identity `json:"beneficiary"`
}

func (ResolveTaskEscrow) actionLabel() string { return "resolve_task_escrow" }

// Proposal is a weighted vote over one action. The type parameter pins the
// action variant so executors dispatch at compile time.
type Proposal[A Action] struct {
	ID       uint64
	Proposer ledger.Identity
	Action   A
	AyeVotes uint64
	NayVotes uint64
	Status   Status
	Deadline int64
	Voters   map[ledger.Identity]bool

	// Version of the persisted snapshot, for version-checked updates
	version uint64
}

// Snapshot is the persisted, variant-erased view of a proposal
type Snapshot struct {
	ID       uint64          `cbor:"0,keyasint" json:"id"`
	Proposer ledger.Identity `cbor:"1,keyasint" json:"proposer"`
	Action   string          `cbor:"2,keyasint" json:"action"`
	AyeVotes uint64          `cbor:"3,keyasint" json:"ayeVotes"`
	NayVotes uint64          `cbor:"4,keyasint" json:"nayVotes"`
	Status   Status          `cbor:"5,keyasint" json:"status"`
	Deadline int64           `cbor:"6,keyasint" json:"deadline"`
}

const (
	ProposalCreatedEventType  event.EventType = "governance.proposal_created"
	ProposalTalliedEventType  event.EventType = "governance.proposal_tallied"
	ProposalExecutedEventType event.EventType = "governance.proposal_executed"
)

// ProposalCreatedEvent is emitted when a proposal opens for voting
type ProposalCreatedEvent struct {
	ProposalID uint64          `json:"proposalId"`
	Proposer   ledger.Identity `json:"proposer"`
}

// ProposalTalliedEvent is emitted when a proposal's vote concludes
type ProposalTalliedEvent struct {
	ProposalID uint64 `json:"proposalId"`
	Passed     bool   `json:"passed"`
}

// ProposalExecutedEvent is emitted when a passed proposal's action runs
type ProposalExecutedEvent struct {
	ProposalID uint64 `json:"proposalId"`
}
