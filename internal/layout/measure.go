/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package layout

import (
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"kinetype/internal/geom"
)

// lineHeightFactor approximates ascent+descent relative to font size.
const lineHeightFactor = 1.2

// Measurer estimates the rendered bounding box of a word group without a
// real text-measurement dependency, so basis positions stay independent
// of the host's typography.
type Measurer interface {
	Measure(text string, cfg Config) geom.Size
}

// HeuristicMeasurer sizes a box from rune count, average glyph width,
// and the configured font size. It is the default.
type HeuristicMeasurer struct{}

func (HeuristicMeasurer) Measure(text string, cfg Config) geom.Size {
	w := float64(utf8.RuneCountInString(text)) * cfg.FontSize * cfg.GlyphWidthRatio
	return geom.Size{W: w, H: cfg.FontSize * lineHeightFactor}
}

// BasicFontMeasurer measures with the fixed basicfont face and scales to
// the configured size. Deterministic across platforms; useful for hosts
// that want per-glyph widths instead of the flat average.
type BasicFontMeasurer struct{}

func (BasicFontMeasurer) Measure(text string, cfg Config) geom.Size {
	d := &font.Drawer{Face: basicfont.Face7x13}
	w := float64(d.MeasureString(text) >> 6) // fixed.Int26_6 to px
	scale := cfg.FontSize / float64(basicfont.Face7x13.Metrics().Height.Round())
	return geom.Size{W: w * scale, H: cfg.FontSize * lineHeightFactor}
}
