// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package model contains the shared data model for the OpenStreetMap XML
// and OsmChange ingest core: locations, boxes, headers and the OSM entity
// variants (Node, Way, Relation, Changeset).
package model

import "strconv"

// Degrees is the decimal degree representation of a longitude or latitude.
type Degrees float64

const (
	// TenMillionths is the fixed-point scale used for Location coordinates:
	// decimal degrees are multiplied by this factor and rounded.
	TenMillionths = 10_000_000

	half = 0.5
)

// E7 returns the angle in ten millionths of a degree, the fixed-point
// scale Location coordinates are stored at.
func (d Degrees) E7() int32 { return round(float64(d * TenMillionths)) }

// round returns the value rounded to nearest as an int32.
// This does not match C++ exactly for the case of x.5.
func round(val float64) int32 {
	if val < 0 {
		return int32(val - half)
	}

	return int32(val + half)
}

// ParseDegrees converts a string to a Degrees instance. It follows the
// source behaviour of the number reader this format was distilled from:
// well-formed values are read exactly, and a numeric prefix is accepted
// even when followed by trailing garbage (see spec §9, open question on
// numeric attribute parsing).
func ParseDegrees(s string) (Degrees, error) {
	u, err := strconv.ParseFloat(s, 64)
	if err == nil {
		return Degrees(u), nil
	}

	if n, ok := leadingFloat(s); ok {
		return Degrees(n), nil
	}

	return 0, err
}

// leadingFloat parses the longest valid floating point prefix of s,
// tolerating trailing garbage the way the C original's atof-based
// attribute parsing does.
func leadingFloat(s string) (float64, bool) {
	i := 0

	n := len(s)
	if i < n && (s[i] == '+' || s[i] == '-') {
		i++
	}

	start := i
	for i < n && s[i] >= '0' && s[i] <= '9' {
		i++
	}

	if i < n && s[i] == '.' {
		i++
		for i < n && s[i] >= '0' && s[i] <= '9' {
			i++
		}
	}

	if i == start || (i == start+1 && s[start] == '.') {
		return 0, false
	}

	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, false
	}

	return v, true
}

// ftoa renders f without a trailing ".0" the way fmt's default float
// formatting would, matching the teacher's degree-string rendering.
func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
