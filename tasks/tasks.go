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

// Package tasks implements the escrow-backed labeling-task workflow. A
// publisher funds a task; ten percent of the reward is held back as the
// publisher's escrow stake, and the assignee posts a matching stake at
// claim time. Validators review the submitted result and a strict majority
// decides where the money goes.
package tasks

import (
	"errors"

	"github.com/blinklabs-io/magpie/event"
	"github.com/blinklabs-io/magpie/ledger"
)

// EscrowBasisPoints is the share of the reward held back as escrow at
// publish, and the stake the assignee must match at claim
const EscrowBasisPoints = 1000

var (
	ErrTaskNotOpen       = errors.New("task not open")
	ErrTaskNotInProgress = errors.New("task not in progress")
	ErrTaskNotInReview   = errors.New("task not in review")
	ErrTaskNotDisputed   = errors.New("task not disputed")

	// ErrAlreadyClaimed is returned when a task already has an assignee
	ErrAlreadyClaimed = errors.New("task already claimed")

	// ErrInsufficientEscrow is returned when a claim stake is below the
	// task's escrow amount
	ErrInsufficientEscrow = errors.New("insufficient escrow")

	// ErrIncorrectHash is returned when a submitted result misses the
	// golden sample. The assignee's escrow is already confiscated by the
	// time the caller sees this.
	ErrIncorrectHash = errors.New("incorrect result hash")

	// ErrInsufficientVotes is returned when finalizing a task nobody
	// reviewed
	ErrInsufficientVotes = errors.New("insufficient votes")

	// ErrInvalidValidator is returned for duplicate reviews and duplicate
	// governance votes
	ErrInvalidValidator = errors.New("invalid validator")

	// ErrEscrowResolved is returned when resolving a disputed task whose
	// funds are already gone
	ErrEscrowResolved = errors.New("escrow already resolved")
)

// Status is the lifecycle state of a task. Transitions are strictly
// monotonic: Open, InProgress, InReview, then Completed or Disputed.
type Status uint8

const (
	StatusOpen Status = iota + 1
	StatusInProgress
	StatusInReview
	StatusCompleted
	StatusDisputed
)

func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "open"
	case StatusInProgress:
		return "in_progress"
	case StatusInReview:
		return "in_review"
	case StatusCompleted:
		return "completed"
	case StatusDisputed:
		return "disputed"
	default:
		return "unknown"
	}
}

// Task is a labeling task record. RewardAmount is the amount the publisher
// originally funded; EscrowAmount is the stake each side has at risk.
// RewardHeld and EscrowHeld track the live balances still at stake; the
// workflow engine holds matching linear pools and reseeds them from these
// fields on restart.
type Task struct {
	ID           uint64            `cbor:"0,keyasint"  json:"id"`
	Publisher    ledger.Identity   `cbor:"1,keyasint"  json:"publisher"`
	DatasetRef   uint64            `cbor:"2,keyasint"  json:"datasetRef"`
	RewardAmount uint64            `cbor:"3,keyasint"  json:"rewardAmount"`
	EscrowAmount uint64            `cbor:"4,keyasint"  json:"escrowAmount"`
	Deadline     int64             `cbor:"5,keyasint"  json:"deadline"`
	Assignee     ledger.Identity   `cbor:"6,keyasint"  json:"assignee"`
	Validators   []ledger.Identity `cbor:"7,keyasint"  json:"validators"`
	PassCount    uint8             `cbor:"8,keyasint"  json:"passCount"`
	Status       Status            `cbor:"9,keyasint"  json:"status"`
	ResultHash   []byte            `cbor:"10,keyasint" json:"resultHash"`
	GoldHash     []byte            `cbor:"11,keyasint" json:"goldHash,omitempty"`
	RewardHeld   uint64            `cbor:"12,keyasint" json:"rewardHeld"`
	EscrowHeld   uint64            `cbor:"13,keyasint" json:"escrowHeld"`
}

const (
	TaskPublishedEventType       event.EventType = "task.published"
	TaskClaimedEventType         event.EventType = "task.claimed"
	TaskResultSubmittedEventType event.EventType = "task.result_submitted"
	TaskFinalizedEventType       event.EventType = "task.finalized"
	EscrowResolvedEventType      event.EventType = "task.escrow_resolved"
)

// TaskPublishedEvent is emitted when a funded task opens. RewardAmount is
// the original funded amount, before the escrow holdback.
type TaskPublishedEvent struct {
	TaskID       uint64 `json:"taskId"`
	DatasetRef   uint64 `json:"datasetRef"`
	RewardAmount uint64 `json:"rewardAmount"`
}

// TaskClaimedEvent is emitted when an assignee stakes escrow on a task
type TaskClaimedEvent struct {
	TaskID   uint64          `json:"taskId"`
	Assignee ledger.Identity `json:"assignee"`
}

// TaskResultSubmittedEvent is emitted when the assignee submits a result
type TaskResultSubmittedEvent struct {
	TaskID     uint64 `json:"taskId"`
	ResultHash []byte `json:"resultHash"`
}

// TaskFinalizedEvent is emitted when validator review concludes
type TaskFinalizedEvent struct {
	TaskID uint64 `json:"taskId"`
	Passed bool   `json:"passed"`
}

// EscrowResolvedEvent is emitted when governance disburses a disputed
// task's stranded funds
type EscrowResolvedEvent struct {
	TaskID      uint64          `json:"taskId"`
	Beneficiary ledger.Identity `json:"beneficiary"`
	Amount      uint64          `json:"amount"`
}
