/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package timeline is the public compile entry point: it runs the parse,
// schedule, and layout stages over an annotated text and assembles the
// result consumed by renderers and scrubber displays.
package timeline

import (
	"math/rand"

	"kinetype/internal/layout"
	"kinetype/internal/motion"
)

// Result is the output of one compile call.
type Result struct {
	Segments      []motion.Segment `json:"segments"`
	TotalDuration float64          `json:"totalDuration"`
	DisplayText   string           `json:"displayText"`
}

// Option configures a single compile call.
type Option func(*compiler)

type compiler struct {
	rng  *rand.Rand
	meas layout.Measurer
}

// WithSeed makes tagged-word jitter reproducible.
func WithSeed(seed int64) Option {
	return func(c *compiler) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand injects a jitter source directly.
func WithRand(r *rand.Rand) Option {
	return func(c *compiler) { c.rng = r }
}

// WithMeasurer overrides the layout engine's word box estimator.
func WithMeasurer(m layout.Measurer) Option {
	return func(c *compiler) { c.meas = m }
}

// Compile turns annotated text into a fully timed and positioned segment
// list. It is a pure function of its arguments (jitter aside) and is
// total over all string inputs: empty input yields an empty Result, and
// malformed tags are skipped, never fatal. Callers re-invoke it on every
// text, gap, or canvas change; there is no incremental update path.
func Compile(text string, gap float64, cfg layout.Config, opts ...Option) Result {
	res, _ := CompileWithDiagnostics(text, gap, cfg, opts...)
	return res
}

// CompileWithDiagnostics additionally returns the advisory tag
// diagnostics collected while parsing, for live-editor feedback.
func CompileWithDiagnostics(text string, gap float64, cfg layout.Config, opts ...Option) (Result, []motion.Diagnostic) {
	var c compiler
	for _, o := range opts {
		o(&c)
	}

	segs, diags := motion.Parse(text)
	segs, total := motion.Schedule(segs, gap)

	var engOpts []layout.Option
	if c.rng != nil {
		engOpts = append(engOpts, layout.WithRand(c.rng))
	}
	if c.meas != nil {
		engOpts = append(engOpts, layout.WithMeasurer(c.meas))
	}
	segs = layout.NewEngine(cfg, engOpts...).Place(segs)

	if segs == nil {
		segs = []motion.Segment{}
	}
	return Result{
		Segments:      segs,
		TotalDuration: total,
		DisplayText:   motion.DisplayText(text),
	}, diags
}
