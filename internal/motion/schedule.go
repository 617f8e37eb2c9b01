/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package motion

// DefaultDuration is the flat on-screen time in seconds for a segment
// without a motion tag, sized to stay comfortably readable with the
// plain-fade default.
const DefaultDuration = 2.0

// Schedule assigns absolute start times and durations to segments in
// source order and returns the total timeline duration.
//
// The gap is inserted between every adjacent pair. A negative gap moves
// the next segment's start into the previous segment's exit; the cursor
// is deliberately not clamped at zero, so a strongly negative gap may
// schedule later segments before earlier ones finish. That is accepted
// overlap behavior, not an error.
func Schedule(segs []Segment, gap float64) ([]Segment, float64) {
	var cursor, total float64
	for i := range segs {
		d := DefaultDuration
		if segs[i].Tag != nil {
			d = segs[i].Tag.TotalDuration()
		}
		segs[i].StartTime = cursor
		segs[i].Duration = d
		if end := cursor + d; end > total {
			total = end
		}
		cursor += d + gap
	}
	return segs, total
}
