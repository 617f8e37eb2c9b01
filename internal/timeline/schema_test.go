/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package timeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	gojsonschema "github.com/xeipuuv/gojsonschema"

	"kinetype/internal/layout"
)

// TestResultConformsToSchema keeps the JSON contract consumed by the
// rendering layer in sync with docs/timeline.schema.json.
func TestResultConformsToSchema(t *testing.T) {
	schemaPath := filepath.Join("..", "..", "docs", "timeline.schema.json")
	schemaBytes, err := os.ReadFile(schemaPath)
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	schemaLoader := gojsonschema.NewBytesLoader(schemaBytes)

	inputs := []string{
		"Hello <0.3F1.2R0.9> World",
		"Hi <99Z1R0.5> there",
		"plain words only",
		"",
	}
	for _, in := range inputs {
		res := Compile(in, 0.5, layout.DefaultConfig(), WithSeed(11))
		data, err := json.Marshal(res)
		if err != nil {
			t.Fatalf("marshal result: %v", err)
		}
		check, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
		if err != nil {
			t.Fatalf("schema validate error: %v", err)
		}
		if !check.Valid() {
			for _, e := range check.Errors() {
				t.Logf("schema error: %s", e)
			}
			t.Fatalf("%q: result does not conform to schema", in)
		}
	}
}
