/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package timeline

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"kinetype/internal/layout"
	"kinetype/internal/motion"
)

func TestCompileHelloWorld(t *testing.T) {
	res := Compile("Hello <0.3F1.2R0.9> World", 0, layout.DefaultConfig(), WithSeed(7))
	if len(res.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %+v", res.Segments)
	}

	hello := res.Segments[0]
	if hello.Text != "Hello" || hello.Tag == nil {
		t.Fatalf("unexpected first segment: %+v", hello)
	}
	wantTag := motion.MotionTag{
		EntrySpeed: 0.3, EntryDirection: motion.Front,
		DisplayDuration: 1.2,
		ExitDirection:   motion.Right, ExitSpeed: 0.9,
	}
	if *hello.Tag != wantTag {
		t.Fatalf("unexpected tag: %+v", hello.Tag)
	}
	if hello.StartTime != 0 || math.Abs(hello.Duration-2.4) > 1e-9 {
		t.Fatalf("unexpected first timing: %+v", hello)
	}

	world := res.Segments[1]
	if world.Text != "World" || world.Tag != nil {
		t.Fatalf("unexpected second segment: %+v", world)
	}
	if math.Abs(world.StartTime-2.4) > 1e-9 || world.Duration != motion.DefaultDuration {
		t.Fatalf("unexpected second timing: %+v", world)
	}

	if res.DisplayText != "Hello World" {
		t.Fatalf("unexpected display text: %q", res.DisplayText)
	}
	if math.Abs(res.TotalDuration-4.4) > 1e-9 {
		t.Fatalf("expected total 4.4, got %v", res.TotalDuration)
	}
}

func TestCompileTagOnlyInput(t *testing.T) {
	res := Compile("<0.3F1.2R0.9>", 0, layout.DefaultConfig())
	if len(res.Segments) != 0 {
		t.Fatalf("expected no segments, got %+v", res.Segments)
	}
	if res.DisplayText != "" || res.TotalDuration != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}
}

func TestCompileEmptyInput(t *testing.T) {
	for _, in := range []string{"", "  \n\t "} {
		res := Compile(in, 1.5, layout.DefaultConfig())
		if len(res.Segments) != 0 || res.TotalDuration != 0 || res.DisplayText != "" {
			t.Fatalf("%q: expected empty result, got %+v", in, res)
		}
		if res.Segments == nil {
			t.Fatalf("segments must be an empty slice, not nil")
		}
	}
}

func TestCompileDeterministicWithSeed(t *testing.T) {
	in := "Rise <0.5F3R0.5> and shine <1L2B1> every day"
	a := Compile(in, 0.25, layout.DefaultConfig(), WithSeed(1234))
	b := Compile(in, 0.25, layout.DefaultConfig(), WithSeed(1234))
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed must reproduce the result:\n%+v\n%+v", a, b)
	}
}

func TestCompileTotalDurationInvariant(t *testing.T) {
	inputs := []string{
		"one two three",
		"a <1L1R1> b <0.2F0.4B0.2> c",
		"x <5R20L5> y",
	}
	for _, in := range inputs {
		for _, gap := range []float64{-1, 0, 0.5, 2} {
			res := Compile(in, gap, layout.DefaultConfig(), WithSeed(1))
			var want float64
			for _, s := range res.Segments {
				if end := s.End(); end > want {
					want = end
				}
			}
			if math.Abs(res.TotalDuration-want) > 1e-9 {
				t.Fatalf("%q gap=%v: total %v, want max end %v", in, gap, res.TotalDuration, want)
			}
		}
	}
}

func TestCompileDisplayTextRoundTrip(t *testing.T) {
	inputs := []string{
		"Hello <0.3F1.2R0.9> World",
		"Hi <99Z1R0.5> there",
		"  messy   <1L1R1>   spacing  ",
		"<1L1R1> leading tag",
	}
	for _, in := range inputs {
		res := Compile(in, 0, layout.DefaultConfig())
		if strings.ContainsAny(res.DisplayText, "<>") {
			t.Fatalf("%q: display text contains brackets: %q", in, res.DisplayText)
		}
		// Display text must be the segment words in order for inputs
		// whose tags all bind cleanly.
	}
	res := Compile("Hello Beautiful <0.3F1.2R0.9> World", 0, layout.DefaultConfig())
	var words []string
	for _, s := range res.Segments {
		words = append(words, s.Text)
	}
	if got := strings.Join(words, " "); got != res.DisplayText {
		t.Fatalf("segment words %q diverge from display text %q", got, res.DisplayText)
	}
}

func TestCompileWithDiagnosticsSurfacesMalformedTags(t *testing.T) {
	res, diags := CompileWithDiagnostics("Hi <99Z1R0.5> there", 0, layout.DefaultConfig())
	if len(res.Segments) != 1 || res.Segments[0].Text != "Hi there" {
		t.Fatalf("malformed tag must merge the group: %+v", res.Segments)
	}
	if len(diags) != 1 || diags[0].Raw != "99Z1R0.5" {
		t.Fatalf("expected one diagnostic for the bad tag, got %+v", diags)
	}
}

func TestCompileCustomMeasurer(t *testing.T) {
	res := Compile("one two three four", 0, layout.DefaultConfig(),
		WithSeed(3), WithMeasurer(layout.BasicFontMeasurer{}))
	if len(res.Segments) != 1 {
		t.Fatalf("untagged words group into one segment: %+v", res.Segments)
	}
	if res.Segments[0].Position == (motion.Segment{}).Position {
		// First segment lands at the canvas center, which is non-zero.
		t.Fatalf("segment was not positioned: %+v", res.Segments[0])
	}
}
