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

package builder

import (
	"time"

	"github.com/Hailin-Plusai/libosmium/internal/arena"
	"github.com/Hailin-Plusai/libosmium/model"
)

// NodeBuilder writes a Node into an arena.Buffer.
type NodeBuilder struct {
	buf    *arena.Buffer
	region arena.Region
	tags   sublistBuilder
}

// BeginNode opens a Node region and writes its shared and Node-specific
// scalar fields. The caller must call End once all `tag` children have
// been appended.
func BeginNode(buf *arena.Buffer, info model.Info, loc model.Location) (*NodeBuilder, error) {
	r, err := buf.BeginRegion(arena.KindNode)
	if err != nil {
		return nil, err
	}
	if err := writeInfo(buf, info); err != nil {
		return nil, err
	}
	if err := buf.WriteUint32(uint32(loc.X)); err != nil {
		return nil, err
	}
	if err := buf.WriteUint32(uint32(loc.Y)); err != nil {
		return nil, err
	}
	return &NodeBuilder{buf: buf, region: r}, nil
}

// OpenTagList ensures a TagList sub-list is open, sealing any
// previously open sub-list of a different kind first. Consecutive calls
// while a TagList is already open return the same builder, so repeated
// `tag` children accumulate into one region (spec §4.4).
func (n *NodeBuilder) OpenTagList() (*TagListBuilder, error) {
	if tl, ok := n.tags.(*TagListBuilder); ok {
		return tl, nil
	}
	if err := sealOpen(&n.tags); err != nil {
		return nil, err
	}
	tl, err := beginTagList(n.buf)
	if err != nil {
		return nil, err
	}
	n.tags = tl
	return tl, nil
}

// End seals any open sub-list and the Node region itself.
func (n *NodeBuilder) End() error {
	if err := sealOpen(&n.tags); err != nil {
		return err
	}
	n.buf.EndRegion(n.region)
	return nil
}

func decodeNode(body []byte) (*model.Node, error) {
	r := arena.NewReader(body)
	info := readInfo(r)
	x := int32(r.Uint32())
	y := int32(r.Uint32())

	node := &model.Node{Info: info, Loc: model.Location{X: x, Y: y}}
	c := r.Regions()
	for {
		kind, listBody, ok := c.Next()
		if !ok {
			break
		}
		if kind == arena.KindTagList {
			node.Tags = decodeTagList(listBody)
		}
	}
	return node, nil
}

// WayBuilder writes a Way into an arena.Buffer.
type WayBuilder struct {
	buf    *arena.Buffer
	region arena.Region
	open   sublistBuilder
}

// BeginWay opens a Way region and writes its shared scalar fields.
func BeginWay(buf *arena.Buffer, info model.Info) (*WayBuilder, error) {
	r, err := buf.BeginRegion(arena.KindWay)
	if err != nil {
		return nil, err
	}
	if err := writeInfo(buf, info); err != nil {
		return nil, err
	}
	return &WayBuilder{buf: buf, region: r}, nil
}

// OpenWayNodeList ensures a WayNodeList sub-list is open, sealing any
// previously open sub-list of a different kind first. Consecutive calls
// while a WayNodeList is already open return the same builder, so
// repeated `nd` children accumulate into one region (spec §4.4).
func (w *WayBuilder) OpenWayNodeList() (*WayNodeListBuilder, error) {
	if l, ok := w.open.(*WayNodeListBuilder); ok {
		return l, nil
	}
	if err := sealOpen(&w.open); err != nil {
		return nil, err
	}
	l, err := beginWayNodeList(w.buf)
	if err != nil {
		return nil, err
	}
	w.open = l
	return l, nil
}

// OpenTagList ensures a TagList sub-list is open, sealing any
// previously open sub-list of a different kind first. Consecutive calls
// while a TagList is already open return the same builder, so repeated
// `tag` children accumulate into one region (spec §4.4).
func (w *WayBuilder) OpenTagList() (*TagListBuilder, error) {
	if l, ok := w.open.(*TagListBuilder); ok {
		return l, nil
	}
	if err := sealOpen(&w.open); err != nil {
		return nil, err
	}
	l, err := beginTagList(w.buf)
	if err != nil {
		return nil, err
	}
	w.open = l
	return l, nil
}

// End seals any open sub-list and the Way region itself.
func (w *WayBuilder) End() error {
	if err := sealOpen(&w.open); err != nil {
		return err
	}
	w.buf.EndRegion(w.region)
	return nil
}

func decodeWay(body []byte) (*model.Way, error) {
	r := arena.NewReader(body)
	info := readInfo(r)

	way := &model.Way{Info: info}
	c := r.Regions()
	for {
		kind, listBody, ok := c.Next()
		if !ok {
			break
		}
		switch kind {
		case arena.KindWayNodeList:
			way.Nodes = decodeWayNodeList(listBody)
		case arena.KindTagList:
			way.Tags = decodeTagList(listBody)
		}
	}
	return way, nil
}

// RelationBuilder writes a Relation into an arena.Buffer.
type RelationBuilder struct {
	buf    *arena.Buffer
	region arena.Region
	open   sublistBuilder
}

// BeginRelation opens a Relation region and writes its shared scalar
// fields.
func BeginRelation(buf *arena.Buffer, info model.Info) (*RelationBuilder, error) {
	r, err := buf.BeginRegion(arena.KindRelation)
	if err != nil {
		return nil, err
	}
	if err := writeInfo(buf, info); err != nil {
		return nil, err
	}
	return &RelationBuilder{buf: buf, region: r}, nil
}

// OpenRelationMemberList ensures a RelationMemberList sub-list is open,
// sealing any previously open sub-list of a different kind first.
// Consecutive calls while a RelationMemberList is already open return
// the same builder, so repeated `member` children accumulate into one
// region (spec §4.4).
func (rb *RelationBuilder) OpenRelationMemberList() (*RelationMemberListBuilder, error) {
	if l, ok := rb.open.(*RelationMemberListBuilder); ok {
		return l, nil
	}
	if err := sealOpen(&rb.open); err != nil {
		return nil, err
	}
	l, err := beginRelationMemberList(rb.buf)
	if err != nil {
		return nil, err
	}
	rb.open = l
	return l, nil
}

// OpenTagList ensures a TagList sub-list is open, sealing any
// previously open sub-list of a different kind first. Consecutive calls
// while a TagList is already open return the same builder, so repeated
// `tag` children accumulate into one region (spec §4.4).
func (rb *RelationBuilder) OpenTagList() (*TagListBuilder, error) {
	if l, ok := rb.open.(*TagListBuilder); ok {
		return l, nil
	}
	if err := sealOpen(&rb.open); err != nil {
		return nil, err
	}
	l, err := beginTagList(rb.buf)
	if err != nil {
		return nil, err
	}
	rb.open = l
	return l, nil
}

// End seals any open sub-list and the Relation region itself.
func (rb *RelationBuilder) End() error {
	if err := sealOpen(&rb.open); err != nil {
		return err
	}
	rb.buf.EndRegion(rb.region)
	return nil
}

func decodeRelation(body []byte) (*model.Relation, error) {
	r := arena.NewReader(body)
	info := readInfo(r)

	relation := &model.Relation{Info: info}
	c := r.Regions()
	for {
		kind, listBody, ok := c.Next()
		if !ok {
			break
		}
		switch kind {
		case arena.KindRelationMemberList:
			relation.Members = decodeRelationMemberList(listBody)
		case arena.KindTagList:
			relation.Tags = decodeTagList(listBody)
		}
	}
	return relation, nil
}

// ChangesetBuilder writes a Changeset into an arena.Buffer.
type ChangesetBuilder struct {
	buf    *arena.Buffer
	region arena.Region
	open   sublistBuilder
}

// BeginChangeset opens a Changeset region and writes its shared and
// Changeset-specific scalar fields.
func BeginChangeset(buf *arena.Buffer, info model.Info, bounds model.Box, createdAt, closedAt time.Time, open bool, numChanges, commentsCount uint32) (*ChangesetBuilder, error) {
	r, err := buf.BeginRegion(arena.KindChangeset)
	if err != nil {
		return nil, err
	}
	if err := writeInfo(buf, info); err != nil {
		return nil, err
	}
	if err := buf.WriteUint32(uint32(bounds.Min.X)); err != nil {
		return nil, err
	}
	if err := buf.WriteUint32(uint32(bounds.Min.Y)); err != nil {
		return nil, err
	}
	if err := buf.WriteUint32(uint32(bounds.Max.X)); err != nil {
		return nil, err
	}
	if err := buf.WriteUint32(uint32(bounds.Max.Y)); err != nil {
		return nil, err
	}
	if err := buf.WriteInt64(createdAt.Unix()); err != nil {
		return nil, err
	}
	if err := buf.WriteInt64(closedAt.Unix()); err != nil {
		return nil, err
	}
	if err := buf.WriteBool(open); err != nil {
		return nil, err
	}
	if err := buf.WriteUint32(numChanges); err != nil {
		return nil, err
	}
	if err := buf.WriteUint32(commentsCount); err != nil {
		return nil, err
	}
	return &ChangesetBuilder{buf: buf, region: r}, nil
}

// OpenTagList ensures a TagList sub-list is open, sealing any
// previously open sub-list of a different kind first. Consecutive calls
// while a TagList is already open return the same builder, so repeated
// `tag` children accumulate into one region (spec §4.4).
func (cb *ChangesetBuilder) OpenTagList() (*TagListBuilder, error) {
	if l, ok := cb.open.(*TagListBuilder); ok {
		return l, nil
	}
	if err := sealOpen(&cb.open); err != nil {
		return nil, err
	}
	l, err := beginTagList(cb.buf)
	if err != nil {
		return nil, err
	}
	cb.open = l
	return l, nil
}

// OpenDiscussion seals any previously open sub-list and opens a fresh
// Discussion.
func (cb *ChangesetBuilder) OpenDiscussion() (*DiscussionBuilder, error) {
	if err := sealOpen(&cb.open); err != nil {
		return nil, err
	}
	d, err := beginDiscussion(cb.buf)
	if err != nil {
		return nil, err
	}
	cb.open = d
	return d, nil
}

// End seals any open sub-list and the Changeset region itself.
func (cb *ChangesetBuilder) End() error {
	if err := sealOpen(&cb.open); err != nil {
		return err
	}
	cb.buf.EndRegion(cb.region)
	return nil
}

func decodeChangeset(body []byte) (*model.Changeset, error) {
	r := arena.NewReader(body)
	info := readInfo(r)

	var bounds model.Box
	bounds.Min = model.Location{X: int32(r.Uint32()), Y: int32(r.Uint32())}
	bounds.Max = model.Location{X: int32(r.Uint32()), Y: int32(r.Uint32())}
	createdAt := time.Unix(r.Int64(), 0).UTC()
	closedAt := time.Unix(r.Int64(), 0).UTC()
	open := r.Bool()
	numChanges := r.Uint32()
	commentsCount := r.Uint32()

	changeset := &model.Changeset{
		Info:          info,
		Bounds:        bounds,
		CreatedAt:     createdAt,
		ClosedAt:      closedAt,
		Open:          open,
		NumChanges:    numChanges,
		CommentsCount: commentsCount,
	}
	c := r.Regions()
	for {
		kind, listBody, ok := c.Next()
		if !ok {
			break
		}
		switch kind {
		case arena.KindTagList:
			changeset.Tags = decodeTagList(listBody)
		case arena.KindDiscussion:
			changeset.Discussion = decodeDiscussion(listBody)
		}
	}
	return changeset, nil
}

// Decode reconstructs the model.Entity stored in a region with the given
// kind and body, as produced by arena.Cursor.Next when walking a
// Snapshot's top-level regions.
func Decode(kind arena.Kind, body []byte) (model.Entity, error) {
	switch kind {
	case arena.KindNode:
		return decodeNode(body)
	case arena.KindWay:
		return decodeWay(body)
	case arena.KindRelation:
		return decodeRelation(body)
	case arena.KindChangeset:
		return decodeChangeset(body)
	default:
		return nil, errUnknownKind(kind)
	}
}
