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

package models

import "github.com/blinklabs-io/magpie/database/types"

// TaskReview records a single validator verdict on a submitted task result.
// The composite unique index enforces one review per validator per task at
// the storage layer in addition to the workflow engine's own check.
type TaskReview struct {
	ID        uint         `gorm:"primarykey"`
	TaskID    types.Uint64 `gorm:"index:idx_review_task;uniqueIndex:idx_review_unique,priority:1;not null"`
	Validator string       `gorm:"uniqueIndex:idx_review_unique,priority:2;size:128;not null"`
	Pass      bool         `gorm:"not null"`
}

func (TaskReview) TableName() string {
	return "task_review"
}
