/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package motion

import "kinetype/internal/geom"

// Segment is the atomic unit of the compiled timeline: one grouped run of
// untagged words, or one word group with an attached motion tag.
//
// The parser fills Text, SequenceIndex, and Tag; the scheduler fills
// StartTime and Duration; the layout engine fills Position. Once the
// compile entry point returns, segments are not mutated again — any text
// or gap change re-runs the whole pipeline.
type Segment struct {
	Text          string     `json:"text"`
	SequenceIndex int        `json:"sequenceIndex"`
	Tag           *MotionTag `json:"tag,omitempty"`
	StartTime     float64    `json:"startTime"`
	Duration      float64    `json:"duration"`
	Position      geom.Pt    `json:"position"`
}

// Tagged reports whether the segment carries motion parameters.
func (s Segment) Tagged() bool { return s.Tag != nil }

// End is the absolute timeline second at which the segment finishes.
func (s Segment) End() float64 { return s.StartTime + s.Duration }
