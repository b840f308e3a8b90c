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

// Box is an axis-aligned bounding box over two Locations, used both for the
// header's <bounds> elements and for a Changeset's min/max extent.
type Box struct {
	Min Location
	Max Location
}

// NewBox returns an empty Box with both corners Undefined, ready to be
// grown with Extend.
func NewBox() Box {
	return Box{Min: Undefined, Max: Undefined}
}

// Extend grows the box to include p if p is defined; an undefined p leaves
// the box unchanged, matching osmium::Box::extend's handling of an
// undefined Location.
func (b *Box) Extend(p Location) *Box {
	if !p.Defined() {
		return b
	}

	if !b.Min.Defined() {
		b.Min, b.Max = p, p

		return b
	}

	if p.X < b.Min.X {
		b.Min.X = p.X
	}

	if p.Y < b.Min.Y {
		b.Min.Y = p.Y
	}

	if p.X > b.Max.X {
		b.Max.X = p.X
	}

	if p.Y > b.Max.Y {
		b.Max.Y = p.Y
	}

	return b
}

// Defined reports whether the box has been extended by at least one defined
// Location.
func (b Box) Defined() bool {
	return b.Min.Defined() && b.Max.Defined()
}

func (b Box) String() string {
	if !b.Defined() {
		return "undefined"
	}

	return fmt.Sprintf("[%s, %s]", b.Min, b.Max)
}
