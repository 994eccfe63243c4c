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

package sqlite

import (
	"fmt"

	"github.com/blinklabs-io/magpie/database/models"
	"github.com/blinklabs-io/magpie/database/types"
)

// AddTaskReview inserts a review audit row. The composite unique index on
// task and validator surfaces duplicate reviews as a constraint violation.
func (d *MetadataStoreSqlite) AddTaskReview(
	review *models.TaskReview,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	if result := db.Create(review); result.Error != nil {
		return fmt.Errorf("failed to add task review: %w", result.Error)
	}
	return nil
}

// GetTaskReviews returns all reviews recorded for a task
func (d *MetadataStoreSqlite) GetTaskReviews(
	taskID uint64,
	txn types.Txn,
) ([]models.TaskReview, error) {
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	var ret []models.TaskReview
	result := db.Where("task_id = ?", types.Uint64(taskID)).Find(&ret)
	if result.Error != nil {
		return nil, result.Error
	}
	return ret, nil
}
