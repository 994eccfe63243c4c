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

package database

import (
	"github.com/blinklabs-io/magpie/database/models"
)

// AddTaskReview records a validator review verdict for a task
func (d *Database) AddTaskReview(
	review *models.TaskReview,
	txn *Txn,
) error {
	if txn == nil {
		txn = d.MetadataTxn(true)
		defer txn.Release()
		if err := d.Metadata().AddTaskReview(review, txn.Metadata()); err != nil {
			return err
		}
		return txn.Commit()
	}
	return d.Metadata().AddTaskReview(review, txn.Metadata())
}

// GetTaskReviews returns all recorded review verdicts for a task
func (d *Database) GetTaskReviews(
	taskID uint64,
	txn *Txn,
) ([]models.TaskReview, error) {
	if txn == nil {
		txn = d.MetadataTxn(false)
		defer txn.Release()
	}
	return d.Metadata().GetTaskReviews(taskID, txn.Metadata())
}
