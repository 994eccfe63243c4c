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
	"errors"
	"fmt"
)

// CommitTimestampError represents a mismatch between the metadata and blob
// store commit timestamps, which could represent data corruption
type CommitTimestampError struct {
	MetadataTimestamp int64
	BlobTimestamp     int64
}

func (e CommitTimestampError) Error() string {
	return fmt.Sprintf(
		"commit timestamp mismatch: metadata = %d, blob = %d",
		e.MetadataTimestamp,
		e.BlobTimestamp,
	)
}

// checkCommitTimestamp compares the commit timestamp of the metadata and
// blob stores to ensure that they were last written at the same time
func (d *Database) checkCommitTimestamp() error {
	if d.Metadata() == nil || d.Blob() == nil {
		return nil
	}
	metadataTimestamp, err := d.Metadata().GetCommitTimestamp()
	if err != nil {
		return fmt.Errorf(
			"failed to get metadata commit timestamp: %w",
			err,
		)
	}
	// No timestamp in the database
	if metadataTimestamp <= 0 {
		return nil
	}
	blobTimestamp, err := d.Blob().GetCommitTimestamp()
	if err != nil {
		return fmt.Errorf("failed to get blob commit timestamp: %w", err)
	}
	if metadataTimestamp != blobTimestamp {
		return CommitTimestampError{
			MetadataTimestamp: metadataTimestamp,
			BlobTimestamp:     blobTimestamp,
		}
	}
	return nil
}

// updateCommitTimestamp sets the given commit timestamp in both the metadata
// and blob stores within the provided transaction
func (d *Database) updateCommitTimestamp(txn *Txn, timestamp int64) error {
	if d.Metadata() == nil || d.Blob() == nil {
		return errors.New("both metadata and blob stores are required")
	}
	if err := d.Metadata().SetCommitTimestamp(timestamp, txn.Metadata()); err != nil {
		return fmt.Errorf(
			"failed to set metadata commit timestamp: %w",
			err,
		)
	}
	if err := d.Blob().SetCommitTimestamp(timestamp, txn.Blob()); err != nil {
		return fmt.Errorf("failed to set blob commit timestamp: %w", err)
	}
	return nil
}
