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

package governance

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/blinklabs-io/magpie/capability"
	"github.com/blinklabs-io/magpie/database"
	"github.com/blinklabs-io/magpie/database/models"
	"github.com/blinklabs-io/magpie/database/types"
	"github.com/blinklabs-io/magpie/event"
	"github.com/blinklabs-io/magpie/ledger"
	"github.com/prometheus/client_golang/prometheus"
)

// EngineConfig is the configuration for the governance Engine
type EngineConfig struct {
	Logger       *slog.Logger
	EventBus     *event.EventBus
	Store        *ledger.Store
	Database     *database.Database
	Clock        ledger.Clock
	PromRegistry prometheus.Registerer
}

// Engine runs the proposal lifecycle. Live proposals are typed values held
// by their creators; the engine persists variant-erased snapshots and the
// per-voter audit rows.
type Engine struct {
	logger  *slog.Logger
	bus     *event.EventBus
	store   *ledger.Store
	db      *database.Database
	clock   ledger.Clock
	metrics engineMetrics
	mutex   sync.Mutex
}

// NewEngine creates a governance engine
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.Store == nil {
		return nil, errors.New("no record store provided")
	}
	if cfg.Database == nil {
		return nil, errors.New("no database provided")
	}
	e := &Engine{
		logger: cfg.Logger,
		bus:    cfg.EventBus,
		store:  cfg.Store,
		db:     cfg.Database,
		clock:  cfg.Clock,
	}
	if e.logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		e.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if e.clock == nil {
		e.clock = ledger.SystemClock{}
	}
	if cfg.PromRegistry != nil {
		e.metrics.init(cfg.PromRegistry)
	}
	return e, nil
}

// Snapshot returns the persisted view of a proposal
func (e *Engine) Snapshot(proposalID uint64) (*Snapshot, error) {
	var snap Snapshot
	_, _, err := e.store.GetRecord(
		ledger.RecordKindProposal,
		proposalID,
		&snap,
	)
	if err != nil {
		return nil, err
	}
	snap.ID = proposalID
	return &snap, nil
}

func (e *Engine) publish(evtType event.EventType, data any) {
	if e.bus != nil {
		e.bus.Publish(evtType, event.NewEvent(evtType, data))
	}
}

func snapshotOf[A Action](p *Proposal[A]) *Snapshot {
	return &Snapshot{
		ID:       p.ID,
		Proposer: p.Proposer,
		Action:   p.Action.actionLabel(),
		AyeVotes: p.AyeVotes,
		NayVotes: p.NayVotes,
		Status:   p.Status,
		Deadline: p.Deadline,
	}
}

func persist[A Action](e *Engine, p *Proposal[A]) error {
	if err := e.store.UpdateRecord(
		ledger.RecordKindProposal,
		p.ID,
		p.version,
		snapshotOf(p),
	); err != nil {
		return err
	}
	p.version++
	return nil
}

// Create opens a new proposal for voting. The deadline is the clock time
// plus the voting duration.
func Create[A Action](
	e *Engine,
	token capability.Governor,
	proposer ledger.Identity,
	action A,
	duration time.Duration,
) (*Proposal[A], error) {
	if token == nil {
		return nil, capability.ErrNotAuthorized
	}
	e.mutex.Lock()
	defer e.mutex.Unlock()
	p := &Proposal[A]{
		Proposer: proposer,
		Action:   action,
		Status:   StatusActive,
		Deadline: e.clock.Now() + duration.Milliseconds(),
		Voters:   make(map[ledger.Identity]bool),
		version:  1,
	}
	id, err := e.store.CreateRecord(
		ledger.RecordKindProposal,
		proposer,
		snapshotOf(p),
	)
	if err != nil {
		return nil, err
	}
	p.ID = id
	e.metrics.incCreated()
	e.logger.Info(
		"created proposal",
		"component", "governance",
		"proposal_id", id,
		"proposer", string(proposer),
		"action", action.actionLabel(),
		"deadline", p.Deadline,
	)
	e.publish(ProposalCreatedEventType, ProposalCreatedEvent{
		ProposalID: id,
		Proposer:   proposer,
	})
	return p, nil
}

// Vote adds a weighted vote. One vote per identity, before the deadline.
func Vote[A Action](
	e *Engine,
	p *Proposal[A],
	caller ledger.Identity,
	support bool,
	weight uint64,
) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if p.Status != StatusActive {
		return fmt.Errorf(
			"proposal %d is %s: %w",
			p.ID,
			p.Status,
			ErrProposalNotActive,
		)
	}
	if e.clock.Now() >= p.Deadline {
		return fmt.Errorf("proposal %d: %w", p.ID, ErrProposalExpired)
	}
	if _, voted := p.Voters[caller]; voted {
		return fmt.Errorf(
			"%s already voted on proposal %d: %w",
			caller,
			p.ID,
			ErrInvalidValidator,
		)
	}
	if support {
		p.AyeVotes += weight
	} else {
		p.NayVotes += weight
	}
	p.Voters[caller] = support
	if err := persist(e, p); err != nil {
		// Roll the live proposal back so it matches the snapshot
		if support {
			p.AyeVotes -= weight
		} else {
			p.NayVotes -= weight
		}
		delete(p.Voters, caller)
		return err
	}
	// Audit row; the composite unique index backstops the duplicate check
	if err := e.db.AddGovernanceVote(
		&models.GovernanceVote{
			ProposalID: types.Uint64(p.ID),
			Voter:      string(caller),
			Support:    support,
			Weight:     types.Uint64(weight),
		},
		nil,
	); err != nil {
		e.logger.Error(
			"failed to record governance vote",
			"component", "governance",
			"proposal_id", p.ID,
			"error", err,
		)
	}
	e.logger.Info(
		"recorded vote",
		"component", "governance",
		"proposal_id", p.ID,
		"voter", string(caller),
		"support", support,
		"weight", weight,
	)
	return nil
}

// Tally concludes voting once the deadline has passed. A strict majority
// of aye weight passes; a tie rejects.
func Tally[A Action](e *Engine, p *Proposal[A]) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if p.Status != StatusActive {
		return fmt.Errorf(
			"proposal %d is %s: %w",
			p.ID,
			p.Status,
			ErrProposalNotActive,
		)
	}
	if e.clock.Now() < p.Deadline {
		return fmt.Errorf(
			"proposal %d deadline not reached: %w",
			p.ID,
			ErrProposalExpired,
		)
	}
	passed := p.AyeVotes > p.NayVotes
	if passed {
		p.Status = StatusPassed
	} else {
		p.Status = StatusRejected
	}
	if err := persist(e, p); err != nil {
		p.Status = StatusActive
		return err
	}
	e.logger.Info(
		"tallied proposal",
		"component", "governance",
		"proposal_id", p.ID,
		"passed", passed,
		"ayes", p.AyeVotes,
		"nays", p.NayVotes,
	)
	e.publish(ProposalTalliedEventType, ProposalTalliedEvent{
		ProposalID: p.ID,
		Passed:     passed,
	})
	return nil
}

// Execute runs a passed proposal's action through its matching typed
// executor and marks the proposal executed
func Execute[A Action](
	e *Engine,
	token capability.Governor,
	p *Proposal[A],
	exec Executor[A],
) error {
	if token == nil {
		return capability.ErrNotAuthorized
	}
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if p.Status != StatusPassed {
		return fmt.Errorf(
			"proposal %d is %s: %w",
			p.ID,
			p.Status,
			ErrProposalNotActive,
		)
	}
	if err := exec.Execute(token, p.ID, p.Action); err != nil {
		return fmt.Errorf("failed to execute proposal %d: %w", p.ID, err)
	}
	p.Status = StatusExecuted
	if err := persist(e, p); err != nil {
		return err
	}
	e.metrics.incExecuted()
	e.logger.Info(
		"executed proposal",
		"component", "governance",
		"proposal_id", p.ID,
		"action", p.Action.actionLabel(),
	)
	e.publish(ProposalExecutedEventType, ProposalExecutedEvent{
		ProposalID: p.ID,
	})
	return nil
}
