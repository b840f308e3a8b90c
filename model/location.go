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

package model

import "fmt"

// undefinedCoordinate is the sentinel fixed-point value used by both axes of
// an undefined Location, mirroring osmium::Location's use of an
// out-of-range int32 to mean "no coordinate".
const undefinedCoordinate int32 = 1<<31 - 1

// Location is a pair of fixed-point coordinates, scaled by TenMillionths
// (1e7) from decimal degrees. A Location is "defined" iff both X and Y were
// parsed from input; otherwise both fields hold undefinedCoordinate.
type Location struct {
	X int32 // longitude, ten-millionths of a degree
	Y int32 // latitude, ten-millionths of a degree
}

// Undefined is the Location that carries no coordinate. It is not the
// zero value: Location{} is (0, 0) and is defined.
var Undefined = Location{X: undefinedCoordinate, Y: undefinedCoordinate}

// Defined reports whether both coordinates of the location were parsed.
func (l Location) Defined() bool {
	return l.X != undefinedCoordinate && l.Y != undefinedCoordinate
}

// Lon returns the longitude in decimal degrees.
func (l Location) Lon() Degrees {
	return Degrees(l.X) / TenMillionths
}

// Lat returns the latitude in decimal degrees.
func (l Location) Lat() Degrees {
	return Degrees(l.Y) / TenMillionths
}

func (l Location) String() string {
	if !l.Defined() {
		return "undefined"
	}

	return fmt.Sprintf("(%s, %s)", ftoa(float64(l.Lon())), ftoa(float64(l.Lat())))
}

// NewLocation builds a Location from already-scaled fixed-point coordinates.
func NewLocation(lonE7, latE7 int32) Location {
	return Location{X: lonE7, Y: latE7}
}

// LocationFromStrings parses a lon/lat pair the way OSM XML attributes are
// read: each string is converted with ParseDegrees (accepting a numeric
// prefix and ignoring trailing garbage, per spec §4.4) and scaled to
// ten-millionths of a degree. If either string fails to parse at all, the
// Location is Undefined, matching the source behaviour where an
// unparseable coordinate silently yields "no location" rather than an
// error.
func LocationFromStrings(lonStr, latStr string) Location {
	lon, lonOK := parseCoordinate(lonStr)
	lat, latOK := parseCoordinate(latStr)

	if !lonOK || !latOK {
		return Undefined
	}

	return Location{X: lon, Y: lat}
}

func parseCoordinate(s string) (int32, bool) {
	if s == "" {
		return 0, false
	}

	d, err := ParseDegrees(s)
	if err != nil {
		return 0, false
	}

	return d.E7(), true
}
