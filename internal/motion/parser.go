/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package motion parses annotated text into timed animation segments.
//
// The input is free text with optional bracket-delimited motion tags.
// A tag binds to the run of words immediately before it:
//
//	Hello Beautiful <0.3F1.2R0.9> World
//
// yields a tagged segment "Hello Beautiful" and an untagged segment
// "World". Malformed tags are skipped without closing the pending word
// group, and tags with no preceding words are dropped; neither case
// aborts parsing.
package motion

import (
	"errors"
	"regexp"
	"strings"
)

// tagTokenRe isolates bracket-delimited substrings as atomic tokens,
// even when glued to a word. A lone unmatched bracket is ordinary text.
var tagTokenRe = regexp.MustCompile(`<[^<>]*>`)

// ErrDanglingTag marks a syntactically valid tag that had no open word
// group to attach to (tag at start of input, or two tags in a row).
var ErrDanglingTag = errors.New("motion tag has no preceding text to attach to")

// Diagnostic records one advisory problem found while parsing. The
// pipeline never fails on these; they exist for live-editor feedback.
type Diagnostic struct {
	Offset int    // byte offset of the opening bracket in the source
	Raw    string // tag contents without delimiters
	Err    error
}

// Parse tokenizes text and emits segments in source order with only
// Text, SequenceIndex, and Tag filled in. Identical input always yields
// an identical segment list.
func Parse(text string) ([]Segment, []Diagnostic) {
	var (
		segs    []Segment
		diags   []Diagnostic
		pending []string
	)

	flush := func(tag *MotionTag) {
		if len(pending) == 0 {
			return
		}
		segs = append(segs, Segment{
			Text:          strings.Join(pending, " "),
			SequenceIndex: len(segs),
			Tag:           tag,
		})
		pending = nil
	}

	last := 0
	for _, loc := range tagTokenRe.FindAllStringIndex(text, -1) {
		pending = append(pending, strings.Fields(text[last:loc[0]])...)
		last = loc[1]

		raw := text[loc[0]+1 : loc[1]-1]
		tag, err := ParseTag(raw)
		switch {
		case err != nil:
			// Malformed tag: treated as absent, the group stays open.
			diags = append(diags, Diagnostic{Offset: loc[0], Raw: raw, Err: err})
		case len(pending) == 0:
			diags = append(diags, Diagnostic{Offset: loc[0], Raw: raw, Err: ErrDanglingTag})
		default:
			t := tag
			flush(&t)
		}
	}
	pending = append(pending, strings.Fields(text[last:])...)
	flush(nil)

	return segs, diags
}

// DisplayText strips every bracket-delimited substring from text,
// removes stray bracket characters, and collapses whitespace runs to
// single spaces. It is purely textual and independent of grouping.
func DisplayText(text string) string {
	stripped := tagTokenRe.ReplaceAllString(text, " ")
	stripped = strings.NewReplacer("<", " ", ">", " ").Replace(stripped)
	return strings.Join(strings.Fields(stripped), " ")
}
