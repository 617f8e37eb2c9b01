/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package motion

import (
	"math"
	"testing"
)

func tagged(text string, entry, display, exit float64) Segment {
	return Segment{Text: text, Tag: &MotionTag{
		EntrySpeed: entry, EntryDirection: Front,
		DisplayDuration: display,
		ExitDirection:   Right, ExitSpeed: exit,
	}}
}

func TestScheduleZeroGap(t *testing.T) {
	segs := []Segment{tagged("Hello", 0.3, 1.2, 0.9), {Text: "World"}}
	segs, total := Schedule(segs, 0)
	if segs[0].StartTime != 0 || segs[0].Duration != 2.4 {
		t.Fatalf("unexpected first segment timing: %+v", segs[0])
	}
	if segs[1].StartTime != 2.4 || segs[1].Duration != DefaultDuration {
		t.Fatalf("unexpected second segment timing: %+v", segs[1])
	}
	if math.Abs(total-4.4) > 1e-9 {
		t.Fatalf("expected total 4.4, got %v", total)
	}
}

func TestScheduleMonotonicForNonNegativeGap(t *testing.T) {
	segs := []Segment{
		tagged("a", 1, 2, 1),
		{Text: "b c"},
		tagged("d", 0.5, 0.5, 0.5),
		{Text: "e"},
	}
	for _, gap := range []float64{0, 0.25, 1.5} {
		out, _ := Schedule(append([]Segment(nil), segs...), gap)
		for i := 0; i+1 < len(out); i++ {
			if out[i+1].StartTime < out[i].End() {
				t.Fatalf("gap=%v: segment %d starts before %d ends: %+v", gap, i+1, i, out)
			}
		}
	}
}

func TestScheduleNegativeGapOverlapsByExactlyGap(t *testing.T) {
	segs := []Segment{tagged("a", 0.3, 1.2, 0.9), tagged("b", 0.3, 1.2, 0.9)}
	segs, total := Schedule(segs, -1.0)
	if got := segs[1].StartTime; math.Abs(got-1.4) > 1e-9 {
		t.Fatalf("expected second start 1.4, got %v", got)
	}
	if overlap := segs[0].End() - segs[1].StartTime; math.Abs(overlap-1.0) > 1e-9 {
		t.Fatalf("expected overlap of exactly 1.0, got %v", overlap)
	}
	if math.Abs(total-3.8) > 1e-9 {
		t.Fatalf("expected total 3.8, got %v", total)
	}
}

func TestScheduleCursorNotClampedAtZero(t *testing.T) {
	segs := []Segment{{Text: "a"}, {Text: "b"}, {Text: "c"}}
	segs, total := Schedule(segs, -5)
	if segs[1].StartTime != -3 || segs[2].StartTime != -6 {
		t.Fatalf("cursor must run negative: %+v", segs)
	}
	// The earliest segment still defines the maximum end.
	if total != 2 {
		t.Fatalf("expected total 2, got %v", total)
	}
}

func TestScheduleEmpty(t *testing.T) {
	segs, total := Schedule(nil, 1)
	if len(segs) != 0 || total != 0 {
		t.Fatalf("expected empty schedule, got %v %v", segs, total)
	}
}

func TestScheduleTotalIsMaxEnd(t *testing.T) {
	segs := []Segment{tagged("long", 5, 20, 5), {Text: "short"}}
	segs, total := Schedule(segs, -20)
	// Second segment starts at 10 and ends at 12, well before the first ends at 30.
	if segs[1].StartTime != 10 {
		t.Fatalf("unexpected second start: %+v", segs[1])
	}
	if total != 30 {
		t.Fatalf("total must be the max end, got %v", total)
	}
}
