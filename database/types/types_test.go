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

package types_test

import (
	"math"
	"testing"

	"github.com/blinklabs-io/magpie/database/types"
)

func TestUint64ScanValue(t *testing.T) {
	testDefs := []struct {
		origValue     types.Uint64
		expectedValue string
	}{
		{
			origValue:     types.Uint64(123),
			expectedValue: "123",
		},
		{
			// Above math.MaxInt64, would be mangled as a signed column
			origValue:     types.Uint64(math.MaxUint64),
			expectedValue: "18446744073709551615",
		},
		{
			origValue:     types.Uint64(0),
			expectedValue: "0",
		},
	}
	for _, testDef := range testDefs {
		valueOut, err := testDef.origValue.Value()
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if valueOut != testDef.expectedValue {
			t.Fatalf(
				"did not get expected value from Value(): got %#v, expected %#v",
				valueOut,
				testDef.expectedValue,
			)
		}
		var scanned types.Uint64
		if err := scanned.Scan(valueOut); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if scanned != testDef.origValue {
			t.Fatalf(
				"did not get expected value after Scan(): got %#v, expected %#v",
				scanned,
				testDef.origValue,
			)
		}
	}
}

func TestUint64ScanWrongType(t *testing.T) {
	var u types.Uint64
	if err := u.Scan(123); err == nil {
		t.Fatalf("expected error when scanning non-string value, got nil")
	}
}
