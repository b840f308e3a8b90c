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

package ingest

import (
	"errors"
	"fmt"
)

// ErrFormatVersion reports a missing or non-0.6 root version attribute.
type ErrFormatVersion struct {
	Got string
}

func (e *ErrFormatVersion) Error() string {
	return fmt.Sprintf("ingest: root element version %q, want \"0.6\"", e.Got)
}

// ErrUnknownRoot reports a root element that is neither osm nor
// osmChange.
type ErrUnknownRoot struct {
	Name string
}

func (e *ErrUnknownRoot) Error() string {
	return fmt.Sprintf("ingest: unrecognized root element %q", e.Name)
}

// ErrUnknownMemberType reports a relation member type attribute other
// than n, w or r.
type ErrUnknownMemberType struct {
	Raw string
}

func (e *ErrUnknownMemberType) Error() string {
	return fmt.Sprintf("ingest: unrecognized relation member type %q", e.Raw)
}

// ErrMissingRef reports a relation member with a zero or absent ref
// attribute.
var ErrMissingRef = errors.New("ingest: relation member missing a non-zero ref")
