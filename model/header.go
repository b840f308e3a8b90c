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

// Header carries the file-level metadata resolved from the root element and
// any <bounds> children: a small set of string attributes (recognized keys
// are "version" and "generator"), every bounding box seen in input order, and
// whether the document may contain multiple versions of the same object
// (true for osmChange documents).
type Header struct {
	Attributes                []Attribute
	attrIndex                 map[string]int
	Boxes                     []Box
	HasMultipleObjectVersions bool
}

// Attribute is a single header key/value pair. Header keeps an ordered
// slice (like TagList) so a consumer that cares about input order can
// still see it, while Get/Set give O(1) access for the recognized keys.
type Attribute struct {
	Key   string
	Value string
}

// NewHeader returns an empty, ready-to-use Header.
func NewHeader() *Header {
	return &Header{attrIndex: make(map[string]int)}
}

// Set assigns value to key, overwriting any previous value for the same
// key and preserving the position of the first occurrence.
func (h *Header) Set(key, value string) {
	if h.attrIndex == nil {
		h.attrIndex = make(map[string]int)
	}

	if i, ok := h.attrIndex[key]; ok {
		h.Attributes[i].Value = value

		return
	}

	h.attrIndex[key] = len(h.Attributes)
	h.Attributes = append(h.Attributes, Attribute{Key: key, Value: value})
}

// Get returns the value for key and whether it was present.
func (h *Header) Get(key string) (string, bool) {
	if h.attrIndex == nil {
		return "", false
	}

	i, ok := h.attrIndex[key]
	if !ok {
		return "", false
	}

	return h.Attributes[i].Value, true
}

// ExtendBox folds box into the header's list of boxes, matching the way
// <bounds> elements are simply appended (spec §4.4: "Top + start bounds ->
// extend header's box from ...; no state change").
func (h *Header) ExtendBox(box Box) {
	h.Boxes = append(h.Boxes, box)
}
