/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package layout assigns non-overlapping 2D canvas positions to parsed
// segments. Tagged segments land near the canvas center with bounded
// random jitter; untagged segments are placed by an expanding-spiral
// collision search. Positions are word box centers.
package layout

import (
	"math"
	"math/rand"
	"time"

	"kinetype/internal/geom"
	"kinetype/internal/motion"
)

const (
	// angularSamples is the number of candidate angles tried per spiral ring.
	angularSamples = 8
	// jitterFraction bounds tagged-word jitter as a fraction of canvas size
	// before the center bias is applied.
	jitterFraction = 0.25
)

// Engine places segments on one canvas. It is cheap to construct; build
// one per compile call.
type Engine struct {
	cfg  Config
	meas Measurer
	rng  *rand.Rand
}

// Option configures an Engine.
type Option func(*Engine)

// WithMeasurer overrides the word box estimator.
func WithMeasurer(m Measurer) Option {
	return func(e *Engine) {
		if m != nil {
			e.meas = m
		}
	}
}

// WithRand injects the jitter source. Pass a seeded source for
// reproducible placement in tests and fixtures.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		if r != nil {
			e.rng = r
		}
	}
}

func NewEngine(cfg Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:  cfg.normalized(),
		meas: HeuristicMeasurer{},
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Place assigns a position to every segment. Earlier segments act as
// obstacles for later ones; word boxes are inflated by MinSpacing when
// probing for collisions.
func (e *Engine) Place(segs []motion.Segment) []motion.Segment {
	placed := make([]geom.Rect, 0, len(segs))
	for i := range segs {
		sz := e.meas.Measure(segs[i].Text, e.cfg)
		var c geom.Pt
		if segs[i].Tagged() {
			c = e.jittered()
		} else {
			c = e.spiral(sz, placed)
		}
		segs[i].Position = c
		placed = append(placed, geom.Centered(c, sz))
	}
	return segs
}

// Box returns the estimated bounding box for a segment at its assigned
// position, using the engine's measurer.
func (e *Engine) Box(s motion.Segment) geom.Rect {
	return geom.Centered(s.Position, e.meas.Measure(s.Text, e.cfg))
}

// jittered picks a point near the canvas center. Jitter keeps several
// simultaneously animated words from stacking on the exact same spot;
// amplitude shrinks as CenterBias approaches 1.
func (e *Engine) jittered() geom.Pt {
	center := e.cfg.Center()
	amp := (1 - e.cfg.CenterBias) * jitterFraction
	dx := (e.rng.Float64()*2 - 1) * amp * e.cfg.Width
	dy := (e.rng.Float64()*2 - 1) * amp * e.cfg.Height
	return geom.Pt{
		X: geom.FloatRound(center.X+dx, 3),
		Y: geom.FloatRound(center.Y+dy, 3),
	}
}

// spiral searches candidate centers at increasing radii around the
// canvas center and returns the first whose spacing-inflated box avoids
// every obstacle and stays inside the margin inset. When the search
// bound is exhausted the center is returned and overlap accepted; a
// crowded canvas must not fail the layout.
func (e *Engine) spiral(sz geom.Size, obstacles []geom.Rect) geom.Pt {
	inner := e.cfg.Canvas().Inset(e.cfg.Margin, e.cfg.Margin)
	center := e.cfg.Center()

	fits := func(c geom.Pt) bool {
		box := geom.Centered(c, sz)
		if !inner.ContainsRect(box) {
			return false
		}
		probe := box.Inset(-e.cfg.MinSpacing, -e.cfg.MinSpacing)
		for _, o := range obstacles {
			if probe.Intersects(o) {
				return false
			}
		}
		return true
	}

	if fits(center) {
		return center
	}
	maxRadius := math.Hypot(inner.W, inner.H) / 2
	for r := e.cfg.SpiralStep; r <= maxRadius; r += e.cfg.SpiralStep {
		for k := 0; k < angularSamples; k++ {
			a := float64(k) * 2 * math.Pi / angularSamples
			c := geom.Pt{
				X: geom.FloatRound(center.X+r*math.Cos(a), 3),
				Y: geom.FloatRound(center.Y+r*math.Sin(a), 3),
			}
			if fits(c) {
				return c
			}
		}
	}
	return center
}

// Rescale maps positions computed for the old canvas onto the new one by
// proportional scaling, preserving relative layout without re-running
// the collision search.
func Rescale(segs []motion.Segment, old, next Config) []motion.Segment {
	if old.Width <= 0 || old.Height <= 0 {
		return segs
	}
	sx := next.Width / old.Width
	sy := next.Height / old.Height
	for i := range segs {
		segs[i].Position.X = geom.FloatRound(segs[i].Position.X*sx, 3)
		segs[i].Position.Y = geom.FloatRound(segs[i].Position.Y*sy, 3)
	}
	return segs
}
