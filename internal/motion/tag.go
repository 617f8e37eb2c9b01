/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package motion

import (
	"encoding/json"
	"fmt"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Motion tag wire format:
//
//	<EntrySpeed><EntryDir><DisplayDuration><ExitDir><ExitSpeed>
//
// Speeds and the display duration are unsigned decimals (no sign, no
// exponent), directions are exactly one of L, R, F, B. The grammar is
// matched strictly: any leading or trailing character rejects the tag as
// a whole, and a single out-of-range field rejects all five.

// Range bounds in seconds. All three numeric fields must be strictly
// positive; the upper bounds are inclusive.
const (
	MaxSpeedSeconds   = 10.0
	MaxDisplaySeconds = 30.0
)

// Direction is where a word enters from or exits to.
type Direction int

const (
	Left Direction = iota
	Right
	Front
	Back
)

// ParseDirection maps a single tag letter to its Direction.
func ParseDirection(c byte) (Direction, bool) {
	switch c {
	case 'L':
		return Left, true
	case 'R':
		return Right, true
	case 'F':
		return Front, true
	case 'B':
		return Back, true
	}
	return 0, false
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "L"
	case Right:
		return "R"
	case Front:
		return "F"
	case Back:
		return "B"
	}
	return "?"
}

func (d Direction) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

func (d *Direction) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if len(s) != 1 {
		return fmt.Errorf("invalid direction %q", s)
	}
	v, ok := ParseDirection(s[0])
	if !ok {
		return fmt.Errorf("invalid direction %q", s)
	}
	*d = v
	return nil
}

// MotionTag is one parsed instance of the tag grammar. All five fields
// are valid by construction; ParseTag never returns a partial tag.
type MotionTag struct {
	EntrySpeed      float64   `json:"entrySpeed"`
	EntryDirection  Direction `json:"entryDirection"`
	DisplayDuration float64   `json:"displayDuration"`
	ExitDirection   Direction `json:"exitDirection"`
	ExitSpeed       float64   `json:"exitSpeed"`
}

// TotalDuration is the full on-timeline span of a tagged segment.
func (t MotionTag) TotalDuration() float64 {
	return t.EntrySpeed + t.DisplayDuration + t.ExitSpeed
}

// Validate range-checks the numeric fields. Errors are keyed by field
// name so a live editor can point at the offending part of the tag.
//
// Required carries the zero bound: ozzo threshold rules skip empty
// (zero) values, and 0 is never a legal speed or duration.
func (t MotionTag) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.EntrySpeed, validation.Required, validation.Min(0.0).Exclusive(), validation.Max(MaxSpeedSeconds)),
		validation.Field(&t.DisplayDuration, validation.Required, validation.Min(0.0).Exclusive(), validation.Max(MaxDisplaySeconds)),
		validation.Field(&t.ExitSpeed, validation.Required, validation.Min(0.0).Exclusive(), validation.Max(MaxSpeedSeconds)),
	)
}

// FieldError reports a syntax failure in one tag field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Reason }

// ParseTag parses the contents of a motion tag (without the enclosing
// <>) and rejects anything that is not an exact 5-field match.
func ParseTag(raw string) (MotionTag, error) {
	s := tagScanner{src: raw}

	entrySpeed, err := s.number("entrySpeed")
	if err != nil {
		return MotionTag{}, err
	}
	entryDir, err := s.direction("entryDirection")
	if err != nil {
		return MotionTag{}, err
	}
	display, err := s.number("displayDuration")
	if err != nil {
		return MotionTag{}, err
	}
	exitDir, err := s.direction("exitDirection")
	if err != nil {
		return MotionTag{}, err
	}
	exitSpeed, err := s.number("exitSpeed")
	if err != nil {
		return MotionTag{}, err
	}
	if !s.done() {
		return MotionTag{}, &FieldError{Field: "exitSpeed", Reason: fmt.Sprintf("trailing characters %q", s.rest())}
	}

	t := MotionTag{
		EntrySpeed:      entrySpeed,
		EntryDirection:  entryDir,
		DisplayDuration: display,
		ExitDirection:   exitDir,
		ExitSpeed:       exitSpeed,
	}
	if err := t.Validate(); err != nil {
		return MotionTag{}, err
	}
	return t, nil
}

// tagScanner walks the fixed 5-field grammar left to right.
type tagScanner struct {
	src string
	pos int
}

func (s *tagScanner) done() bool   { return s.pos >= len(s.src) }
func (s *tagScanner) rest() string { return s.src[s.pos:] }

// number consumes digits with an optional single fractional part.
// Signs, exponents, and bare dots are not part of the grammar.
func (s *tagScanner) number(field string) (float64, error) {
	start := s.pos
	for !s.done() && isDigit(s.src[s.pos]) {
		s.pos++
	}
	if s.pos == start {
		if s.done() {
			return 0, &FieldError{Field: field, Reason: "missing value"}
		}
		return 0, &FieldError{Field: field, Reason: fmt.Sprintf("expected digit, found %q", s.src[s.pos])}
	}
	if !s.done() && s.src[s.pos] == '.' {
		s.pos++
		fracStart := s.pos
		for !s.done() && isDigit(s.src[s.pos]) {
			s.pos++
		}
		if s.pos == fracStart {
			return 0, &FieldError{Field: field, Reason: "missing digits after decimal point"}
		}
	}
	v, err := strconv.ParseFloat(s.src[start:s.pos], 64)
	if err != nil {
		return 0, &FieldError{Field: field, Reason: err.Error()}
	}
	return v, nil
}

func (s *tagScanner) direction(field string) (Direction, error) {
	if s.done() {
		return 0, &FieldError{Field: field, Reason: "missing direction"}
	}
	d, ok := ParseDirection(s.src[s.pos])
	if !ok {
		return 0, &FieldError{Field: field, Reason: fmt.Sprintf("invalid direction %q, want one of L R F B", s.src[s.pos])}
	}
	s.pos++
	return d, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
