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

import "time"

// ID is the primary key of an entity.
type ID int64

// UID is the primary key of a user.
type UID uint32

// Info represents the attributes common to Node, Way, Relation and
// Changeset: id, version, timestamp, uid, changeset, visible and user.
type Info struct {
	ID        ID
	Version   uint32
	Timestamp time.Time
	UID       UID
	Changeset uint32
	Visible   bool
	User      string
}

// Tag is a single key/value pair. Duplicate keys within one TagList are
// preserved in input order (spec §3, TagList).
type Tag struct {
	Key   string
	Value string
}

// TagList is an ordered sequence of Tags.
type TagList []Tag

// Entity is implemented by *Node, *Way, *Relation and *Changeset. The
// unexported method prevents external packages from adding new variants,
// mirroring the closed Entity interface in the teacher's model package.
type Entity interface {
	isEntity()

	GetInfo() *Info
	GetTags() TagList
}

// Node represents a specific point on the earth's surface.
type Node struct {
	Info Info
	Tags TagList
	Loc  Location
}

var _ Entity = (*Node)(nil)

func (n *Node) isEntity()        {}
func (n *Node) GetInfo() *Info   { return &n.Info }
func (n *Node) GetTags() TagList { return n.Tags }

// NodeRef is a reference from a Way (or a Relation member) to a node by id,
// with an optionally cached Location. For ingest from XML the Location is
// always Undefined (spec §3).
type NodeRef struct {
	Ref ID
	Loc Location
}

// Way is an ordered list of NodeRefs describing a polyline or area outline.
type Way struct {
	Info  Info
	Tags  TagList
	Nodes []NodeRef
}

var _ Entity = (*Way)(nil)

func (w *Way) isEntity()        {}
func (w *Way) GetInfo() *Info   { return &w.Info }
func (w *Way) GetTags() TagList { return w.Tags }

// MemberType is the kind of entity a Relation Member points to.
type MemberType int

const (
	MemberNode MemberType = iota
	MemberWay
	MemberRelation
)

func (t MemberType) String() string {
	switch t {
	case MemberNode:
		return "node"
	case MemberWay:
		return "way"
	case MemberRelation:
		return "relation"
	default:
		return "unknown"
	}
}

// MemberTypeFromChar maps the first character of a relation member's
// "type" attribute (n/w/r) to a MemberType, per spec §4.4.
func MemberTypeFromChar(c byte) (MemberType, bool) {
	switch c {
	case 'n':
		return MemberNode, true
	case 'w':
		return MemberWay, true
	case 'r':
		return MemberRelation, true
	default:
		return 0, false
	}
}

// Member is a typed, non-zero reference from a Relation to another entity,
// carrying a role string.
type Member struct {
	Type MemberType
	Ref  ID
	Role string
}

// Relation documents a relationship between two or more entities.
type Relation struct {
	Info    Info
	Tags    TagList
	Members []Member
}

var _ Entity = (*Relation)(nil)

func (r *Relation) isEntity()        {}
func (r *Relation) GetInfo() *Info   { return &r.Info }
func (r *Relation) GetTags() TagList { return r.Tags }

// Comment is a single changeset discussion comment.
type Comment struct {
	Date time.Time
	UID  UID
	User string
	Text string
}

// Discussion is the ordered list of comments attached to a Changeset.
type Discussion []Comment

// Changeset carries the bounding box of the edit and its discussion.
type Changeset struct {
	Info          Info
	Tags          TagList
	Bounds        Box
	Discussion    Discussion
	CreatedAt     time.Time
	ClosedAt      time.Time
	Open          bool
	NumChanges    uint32
	CommentsCount uint32
}

var _ Entity = (*Changeset)(nil)

func (c *Changeset) isEntity()        {}
func (c *Changeset) GetInfo() *Info   { return &c.Info }
func (c *Changeset) GetTags() TagList { return c.Tags }
