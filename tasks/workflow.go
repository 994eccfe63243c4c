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

package tasks

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/blinklabs-io/magpie/capability"
	"github.com/blinklabs-io/magpie/database"
	"github.com/blinklabs-io/magpie/database/models"
	"github.com/blinklabs-io/magpie/database/types"
	"github.com/blinklabs-io/magpie/event"
	"github.com/blinklabs-io/magpie/ledger"
	"github.com/blinklabs-io/magpie/royalty"
	"github.com/blinklabs-io/magpie/value"
	"github.com/prometheus/client_golang/prometheus"
)

// WorkflowConfig is the configuration for the task workflow engine
type WorkflowConfig struct {
	Logger       *slog.Logger
	EventBus     *event.EventBus
	Store        *ledger.Store
	Database     *database.Database
	Accounts     royalty.Accounts
	Clock        ledger.Clock
	PromRegistry prometheus.Registerer
}

// Workflow runs the labeling-task state machine. Task records persist
// through the record store; the value at stake lives in linear pools held
// here, keyed by task ID, until settlement.
type Workflow struct {
	logger   *slog.Logger
	bus      *event.EventBus
	store    *ledger.Store
	db       *database.Database
	accounts royalty.Accounts
	clock    ledger.Clock
	metrics  workflowMetrics
	mutex    sync.Mutex
	rewards  map[uint64]*value.Pool
	escrows  map[uint64]*value.Pool
}

// NewWorkflow creates a task workflow engine
func NewWorkflow(cfg WorkflowConfig) (*Workflow, error) {
	if cfg.Store == nil {
		return nil, errors.New("no record store provided")
	}
	if cfg.Database == nil {
		return nil, errors.New("no database provided")
	}
	if cfg.Accounts == nil {
		return nil, errors.New("no accounts provided")
	}
	w := &Workflow{
		logger:   cfg.Logger,
		bus:      cfg.EventBus,
		store:    cfg.Store,
		db:       cfg.Database,
		accounts: cfg.Accounts,
		clock:    cfg.Clock,
		rewards:  make(map[uint64]*value.Pool),
		escrows:  make(map[uint64]*value.Pool),
	}
	if w.logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		w.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if w.clock == nil {
		w.clock = ledger.SystemClock{}
	}
	if cfg.PromRegistry != nil {
		w.metrics.init(cfg.PromRegistry)
	}
	if err := w.rehydrate(); err != nil {
		return nil, fmt.Errorf("failed to rehydrate task pools: %w", err)
	}
	return w, nil
}

// rehydrate reseeds the live value pools from the held balances persisted
// on each task record, so funds at stake survive a process restart
func (w *Workflow) rehydrate() error {
	maxID, err := w.db.MaxRecordID(uint8(ledger.RecordKindTask), nil)
	if err != nil {
		return err
	}
	for id := uint64(1); id <= maxID; id++ {
		task, _, err := w.get(id)
		if err != nil {
			if errors.Is(err, ledger.ErrRecordNotFound) {
				continue
			}
			return err
		}
		switch task.Status {
		case StatusOpen, StatusInProgress, StatusInReview:
			// Both pools are live, even when zero-valued
			w.rewards[id] = value.NewPool(task.RewardHeld)
			w.escrows[id] = value.NewPool(task.EscrowHeld)
		case StatusDisputed:
			// Whatever is still held awaits governance resolution
			if task.RewardHeld > 0 {
				w.rewards[id] = value.NewPool(task.RewardHeld)
			}
			if task.EscrowHeld > 0 {
				w.escrows[id] = value.NewPool(task.EscrowHeld)
			}
		}
	}
	return nil
}

// Get returns the task with the given ID
func (w *Workflow) Get(taskID uint64) (*Task, error) {
	task, _, err := w.get(taskID)
	return task, err
}

func (w *Workflow) get(taskID uint64) (*Task, uint64, error) {
	var task Task
	_, version, err := w.store.GetRecord(ledger.RecordKindTask, taskID, &task)
	if err != nil {
		return nil, 0, err
	}
	task.ID = taskID
	return &task, version, nil
}

func (w *Workflow) publish(evtType event.EventType, data any) {
	if w.bus != nil {
		w.bus.Publish(evtType, event.NewEvent(evtType, data))
	}
}

// Publish opens a new task funded by the reward pool. Ten percent of the
// reward is split off as the publisher's escrow stake; the announced
// reward amount is the original total.
func (w *Workflow) Publish(
	token capability.Uploader,
	publisher ledger.Identity,
	datasetRef uint64,
	reward *value.Pool,
	deadline int64,
	goldHash []byte,
) (*Task, error) {
	if token == nil {
		return nil, capability.ErrNotAuthorized
	}
	if deadline <= w.clock.Now() {
		return nil, fmt.Errorf(
			"deadline %d not in the future: %w",
			deadline,
			ledger.ErrDeadlinePassed,
		)
	}
	w.mutex.Lock()
	defer w.mutex.Unlock()
	total := reward.Amount()
	escrowAmount := royalty.Share(total, EscrowBasisPoints)
	escrow, err := reward.Split(escrowAmount)
	if err != nil {
		return nil, err
	}
	task := &Task{
		Publisher:    publisher,
		DatasetRef:   datasetRef,
		RewardAmount: total,
		EscrowAmount: escrowAmount,
		Deadline:     deadline,
		Status:       StatusOpen,
		GoldHash:     goldHash,
		RewardHeld:   reward.Amount(),
		EscrowHeld:   escrowAmount,
	}
	id, err := w.store.CreateRecord(ledger.RecordKindTask, publisher, task)
	if err != nil {
		// Reunite the pools so the caller keeps the full reward
		_ = reward.Merge(escrow)
		return nil, err
	}
	task.ID = id
	w.rewards[id] = reward
	w.escrows[id] = escrow
	w.metrics.incPublished()
	w.logger.Info(
		"published task",
		"component", "tasks",
		"task_id", id,
		"publisher", string(publisher),
		"reward", total,
		"escrow", escrowAmount,
	)
	w.publish(TaskPublishedEventType, TaskPublishedEvent{
		TaskID:       id,
		DatasetRef:   datasetRef,
		RewardAmount: total,
	})
	return task, nil
}

// Claim stakes escrow on an open task and assigns it to the caller
func (w *Workflow) Claim(
	token capability.Labeler,
	caller ledger.Identity,
	taskID uint64,
	escrow *value.Pool,
) error {
	if token == nil {
		return capability.ErrNotAuthorized
	}
	w.mutex.Lock()
	defer w.mutex.Unlock()
	task, version, err := w.get(taskID)
	if err != nil {
		return err
	}
	// A claimed task has left Open, so check the assignee first to give
	// racing claimers the more specific failure
	if task.Assignee != "" {
		return fmt.Errorf(
			"task %d assigned to %s: %w",
			taskID,
			task.Assignee,
			ErrAlreadyClaimed,
		)
	}
	if task.Status != StatusOpen {
		return fmt.Errorf("task %d is %s: %w", taskID, task.Status, ErrTaskNotOpen)
	}
	if w.clock.Now() >= task.Deadline {
		return fmt.Errorf("task %d: %w", taskID, ledger.ErrDeadlinePassed)
	}
	if escrow.Consumed() {
		return value.ErrPoolConsumed
	}
	if escrow.Amount() < task.EscrowAmount {
		return fmt.Errorf(
			"escrow %d below required %d: %w",
			escrow.Amount(),
			task.EscrowAmount,
			ErrInsufficientEscrow,
		)
	}
	task.Assignee = caller
	task.Status = StatusInProgress
	task.EscrowHeld += escrow.Amount()
	if err := w.store.UpdateRecord(
		ledger.RecordKindTask,
		taskID,
		version,
		task,
	); err != nil {
		return err
	}
	// Cannot fail: both pools are live and distinct
	_ = w.escrows[taskID].Merge(escrow)
	w.logger.Info(
		"claimed task",
		"component", "tasks",
		"task_id", taskID,
		"assignee", string(caller),
	)
	w.publish(TaskClaimedEventType, TaskClaimedEvent{
		TaskID:   taskID,
		Assignee: caller,
	})
	return nil
}

// SubmitResult records the assignee's result hash and moves the task into
// review. A golden-sample mismatch confiscates the entire escrow to the
// publisher before the error returns; that confiscation is the one
// deliberately non-atomic failure in the workflow.
func (w *Workflow) SubmitResult(
	caller ledger.Identity,
	taskID uint64,
	resultHash []byte,
) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	task, version, err := w.get(taskID)
	if err != nil {
		return err
	}
	if task.Status != StatusInProgress {
		return fmt.Errorf(
			"task %d is %s: %w",
			taskID,
			task.Status,
			ErrTaskNotInProgress,
		)
	}
	if caller != task.Assignee {
		return fmt.Errorf(
			"task %d assigned to %s, not %s: %w",
			taskID,
			task.Assignee,
			caller,
			capability.ErrNotAuthorized,
		)
	}
	if len(task.GoldHash) > 0 && !bytes.Equal(resultHash, task.GoldHash) {
		task.Status = StatusDisputed
		task.EscrowHeld = 0
		if err := w.store.UpdateRecord(
			ledger.RecordKindTask,
			taskID,
			version,
			task,
		); err != nil {
			return err
		}
		confiscated := w.escrows[taskID].Amount()
		if err := w.accounts.Credit(task.Publisher, w.escrows[taskID]); err != nil {
			return err
		}
		delete(w.escrows, taskID)
		w.metrics.incDisputed()
		w.logger.Warn(
			"golden sample mismatch, escrow confiscated",
			"component", "tasks",
			"task_id", taskID,
			"assignee", string(caller),
			"confiscated", confiscated,
		)
		return fmt.Errorf("task %d: %w", taskID, ErrIncorrectHash)
	}
	task.ResultHash = resultHash
	task.Status = StatusInReview
	if err := w.store.UpdateRecord(
		ledger.RecordKindTask,
		taskID,
		version,
		task,
	); err != nil {
		return err
	}
	w.logger.Info(
		"submitted task result",
		"component", "tasks",
		"task_id", taskID,
	)
	w.publish(TaskResultSubmittedEventType, TaskResultSubmittedEvent{
		TaskID:     taskID,
		ResultHash: resultHash,
	})
	return nil
}

// Review records a validator's verdict on a task in review. Each validator
// reviews at most once.
func (w *Workflow) Review(
	token capability.Validator,
	caller ledger.Identity,
	taskID uint64,
	pass bool,
) error {
	if token == nil {
		return capability.ErrNotAuthorized
	}
	w.mutex.Lock()
	defer w.mutex.Unlock()
	task, version, err := w.get(taskID)
	if err != nil {
		return err
	}
	if task.Status != StatusInReview {
		return fmt.Errorf(
			"task %d is %s: %w",
			taskID,
			task.Status,
			ErrTaskNotInReview,
		)
	}
	if slices.Contains(task.Validators, caller) {
		return fmt.Errorf(
			"%s already reviewed task %d: %w",
			caller,
			taskID,
			ErrInvalidValidator,
		)
	}
	task.Validators = append(task.Validators, caller)
	if pass {
		task.PassCount++
	}
	if err := w.store.UpdateRecord(
		ledger.RecordKindTask,
		taskID,
		version,
		task,
	); err != nil {
		return err
	}
	// Audit row; the composite unique index backstops the duplicate check
	if err := w.db.AddTaskReview(
		&models.TaskReview{
			TaskID:    types.Uint64(taskID),
			Validator: string(caller),
			Pass:      pass,
		},
		nil,
	); err != nil {
		w.logger.Error(
			"failed to record task review",
			"component", "tasks",
			"task_id", taskID,
			"error", err,
		)
	}
	w.logger.Info(
		"reviewed task",
		"component", "tasks",
		"task_id", taskID,
		"validator", string(caller),
		"pass", pass,
	)
	return nil
}

// Finalize settles a reviewed task. A strict majority of pass verdicts
// pays reward and both escrow stakes to the assignee; anything less sends
// the remaining reward back to the publisher and leaves the escrow for
// governance to resolve.
func (w *Workflow) Finalize(taskID uint64) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	task, version, err := w.get(taskID)
	if err != nil {
		return err
	}
	if task.Status != StatusInReview {
		return fmt.Errorf(
			"task %d is %s: %w",
			taskID,
			task.Status,
			ErrTaskNotInReview,
		)
	}
	if len(task.Validators) == 0 {
		return fmt.Errorf("task %d: %w", taskID, ErrInsufficientVotes)
	}
	passed := int(task.PassCount)*2 > len(task.Validators)
	if passed {
		task.Status = StatusCompleted
		task.RewardHeld = 0
		task.EscrowHeld = 0
	} else {
		// The reward returns to the publisher; the escrow stays held for
		// governance to resolve
		task.Status = StatusDisputed
		task.RewardHeld = 0
	}
	if err := w.store.UpdateRecord(
		ledger.RecordKindTask,
		taskID,
		version,
		task,
	); err != nil {
		return err
	}
	if passed {
		payout := w.rewards[taskID]
		// Cannot fail: both pools are live and distinct
		_ = payout.Merge(w.escrows[taskID])
		if err := w.accounts.Credit(task.Assignee, payout); err != nil {
			return err
		}
		delete(w.rewards, taskID)
		delete(w.escrows, taskID)
		w.metrics.incCompleted()
	} else {
		if err := w.accounts.Credit(task.Publisher, w.rewards[taskID]); err != nil {
			return err
		}
		delete(w.rewards, taskID)
		w.metrics.incDisputed()
	}
	w.logger.Info(
		"finalized task",
		"component", "tasks",
		"task_id", taskID,
		"passed", passed,
		"pass_count", task.PassCount,
		"validators", len(task.Validators),
	)
	w.publish(TaskFinalizedEventType, TaskFinalizedEvent{
		TaskID: taskID,
		Passed: passed,
	})
	return nil
}

// ResolveEscrow disburses whatever funds remain on a disputed task to the
// beneficiary chosen by governance. Resolving twice fails once the funds
// are gone.
func (w *Workflow) ResolveEscrow(
	token capability.Governor,
	taskID uint64,
	beneficiary ledger.Identity,
) error {
	if token == nil {
		return capability.ErrNotAuthorized
	}
	w.mutex.Lock()
	defer w.mutex.Unlock()
	task, version, err := w.get(taskID)
	if err != nil {
		return err
	}
	if task.Status != StatusDisputed {
		return fmt.Errorf(
			"task %d is %s: %w",
			taskID,
			task.Status,
			ErrTaskNotDisputed,
		)
	}
	amount := task.RewardHeld + task.EscrowHeld
	if amount == 0 {
		return fmt.Errorf("task %d: %w", taskID, ErrEscrowResolved)
	}
	task.RewardHeld = 0
	task.EscrowHeld = 0
	if err := w.store.UpdateRecord(
		ledger.RecordKindTask,
		taskID,
		version,
		task,
	); err != nil {
		return err
	}
	remaining := value.NewPool(0)
	if escrow, ok := w.escrows[taskID]; ok {
		_ = remaining.Merge(escrow)
		delete(w.escrows, taskID)
	}
	if reward, ok := w.rewards[taskID]; ok {
		_ = remaining.Merge(reward)
		delete(w.rewards, taskID)
	}
	if err := w.accounts.Credit(beneficiary, remaining); err != nil {
		return err
	}
	w.logger.Info(
		"resolved disputed escrow",
		"component", "tasks",
		"task_id", taskID,
		"beneficiary", string(beneficiary),
		"amount", amount,
	)
	w.publish(EscrowResolvedEventType, EscrowResolvedEvent{
		TaskID:      taskID,
		Beneficiary: beneficiary,
		Amount:      amount,
	})
	return nil
}
