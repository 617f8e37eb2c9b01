/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package layout

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"kinetype/internal/geom"
)

// Config describes the canvas the layout engine places words on. It is
// supplied fresh per compile call and never persisted by the core.
type Config struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
	// Margin is the clearance kept from the canvas edges.
	Margin float64 `yaml:"margin" json:"margin"`
	// MinSpacing is the minimum distance between word bounding boxes.
	MinSpacing float64 `yaml:"min_spacing" json:"minSpacing"`
	// CenterBias in [0,1] pulls tagged words toward the canvas center;
	// 1 means no jitter at all.
	CenterBias float64 `yaml:"center_bias" json:"centerBias"`
	// SpiralStep is the radius increment of the collision search.
	SpiralStep float64 `yaml:"spiral_step" json:"spiralStep"`
	// FontSize and GlyphWidthRatio drive the word box estimate. The
	// estimate is deliberately decoupled from real typography so the
	// basis positions do not depend on font choice.
	FontSize        float64 `yaml:"font_size" json:"fontSize"`
	GlyphWidthRatio float64 `yaml:"glyph_width_ratio" json:"glyphWidthRatio"`
}

// DefaultConfig returns the layout defaults for a 720p canvas.
func DefaultConfig() Config {
	return Config{
		Width:           1280,
		Height:          720,
		Margin:          24,
		MinSpacing:      16,
		CenterBias:      0.6,
		SpiralStep:      20,
		FontSize:        32,
		GlyphWidthRatio: 0.6,
	}
}

// Validate rejects canvases the engine cannot place words on.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Width, validation.Required, validation.Min(1.0)),
		validation.Field(&c.Height, validation.Required, validation.Min(1.0)),
		validation.Field(&c.Margin, validation.Min(0.0)),
		validation.Field(&c.MinSpacing, validation.Min(0.0)),
		validation.Field(&c.CenterBias, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&c.SpiralStep, validation.Min(1.0)),
		validation.Field(&c.FontSize, validation.Min(1.0)),
		validation.Field(&c.GlyphWidthRatio, validation.Min(0.05), validation.Max(2.0)),
	)
}

// Canvas returns the full canvas rect with origin at (0,0).
func (c Config) Canvas() geom.Rect { return geom.R(0, 0, c.Width, c.Height) }

// Center returns the canvas center point.
func (c Config) Center() geom.Pt { return geom.Pt{X: c.Width / 2, Y: c.Height / 2} }

// normalized fills the strictly-positive tuning fields from the
// defaults so a caller may pass only the canvas dimensions. Zero is a
// meaningful value for Margin, MinSpacing, and CenterBias (flush edges,
// touching boxes, full-amplitude jitter) and is kept; negatives are
// clamped into range.
func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.Width <= 0 {
		c.Width = def.Width
	}
	if c.Height <= 0 {
		c.Height = def.Height
	}
	if c.Margin < 0 {
		c.Margin = 0
	}
	if c.MinSpacing < 0 {
		c.MinSpacing = 0
	}
	if c.CenterBias < 0 {
		c.CenterBias = 0
	}
	if c.CenterBias > 1 {
		c.CenterBias = 1
	}
	if c.SpiralStep <= 0 {
		c.SpiralStep = def.SpiralStep
	}
	if c.FontSize <= 0 {
		c.FontSize = def.FontSize
	}
	if c.GlyphWidthRatio <= 0 {
		c.GlyphWidthRatio = def.GlyphWidthRatio
	}
	return c
}
