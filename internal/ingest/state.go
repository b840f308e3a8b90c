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

// state names the machine's position in the document, per spec §4.4.
type state int

const (
	stRoot state = iota
	stTop
	stNode
	stWay
	stRelation
	stChangeset
	stDiscussion
	stComment
	stCommentText
	stInObject
	stLeaf
	stIgnoredNode
	stIgnoredWay
	stIgnoredRelation
	stIgnoredChangeset
)

func ignoredStateFor(kind Mask) state {
	switch kind {
	case MaskNode:
		return stIgnoredNode
	case MaskWay:
		return stIgnoredWay
	case MaskRelation:
		return stIgnoredRelation
	case MaskChangeset:
		return stIgnoredChangeset
	default:
		return stInObject
	}
}
