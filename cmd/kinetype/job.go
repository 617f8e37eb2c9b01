/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Job is a compile request read from a JSON file. Only Text is
// required; absent fields fall back to the config defaults.
type Job struct {
	Text   string     `json:"text"`
	Gap    *float64   `json:"gap,omitempty"`
	Seed   *int64     `json:"seed,omitempty"`
	Canvas *JobCanvas `json:"canvas,omitempty"`
}

type JobCanvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

const jobSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "kinetype compile job",
  "type": "object",
  "required": ["text"],
  "additionalProperties": false,
  "properties": {
    "text": {"type": "string"},
    "gap": {"type": "number"},
    "seed": {"type": "integer"},
    "canvas": {
      "type": "object",
      "required": ["width", "height"],
      "additionalProperties": false,
      "properties": {
        "width": {"type": "number", "exclusiveMinimum": 0},
        "height": {"type": "number", "exclusiveMinimum": 0}
      }
    }
  }
}`

// loadJob reads and schema-validates a job file.
func loadJob(path string) (Job, error) {
	var job Job
	data, err := os.ReadFile(path)
	if err != nil {
		return job, fmt.Errorf("read job %s: %w", path, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(jobSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return job, fmt.Errorf("validate job %s: %w", path, err)
	}
	if !result.Valid() {
		var b strings.Builder
		for i, desc := range result.Errors() {
			if i > 0 {
				b.WriteString("; ")
			}
			b.WriteString(desc.String())
		}
		return job, fmt.Errorf("job %s is invalid: %s", path, b.String())
	}

	if err := json.Unmarshal(data, &job); err != nil {
		return job, fmt.Errorf("parse job %s: %w", path, err)
	}
	return job, nil
}
