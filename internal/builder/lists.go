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

// TagListBuilder appends (key, value) pairs as children of a `tag`
// element to a currently open entity.
type TagListBuilder struct {
	buf    *arena.Buffer
	region arena.Region
}

func beginTagList(buf *arena.Buffer) (*TagListBuilder, error) {
	r, err := buf.BeginRegion(arena.KindTagList)
	if err != nil {
		return nil, err
	}
	return &TagListBuilder{buf: buf, region: r}, nil
}

// Add appends one tag.
func (t *TagListBuilder) Add(key, value string) error {
	if err := t.buf.WriteString(key); err != nil {
		return err
	}
	return t.buf.WriteString(value)
}

func (t *TagListBuilder) end() error {
	t.buf.EndRegion(t.region)
	return nil
}

func decodeTagList(body []byte) model.TagList {
	r := arena.NewReader(body)

	var tags model.TagList
	for r.Remaining() > 0 {
		key := r.String()
		value := r.String()
		tags = append(tags, model.Tag{Key: key, Value: value})
	}
	return tags
}

// WayNodeListBuilder appends noderefs as children of an open Way.
type WayNodeListBuilder struct {
	buf    *arena.Buffer
	region arena.Region
}

func beginWayNodeList(buf *arena.Buffer) (*WayNodeListBuilder, error) {
	r, err := buf.BeginRegion(arena.KindWayNodeList)
	if err != nil {
		return nil, err
	}
	return &WayNodeListBuilder{buf: buf, region: r}, nil
}

// Add appends one noderef. The Location is always Undefined for ingest
// (spec §3).
func (w *WayNodeListBuilder) Add(ref model.ID) error {
	return w.buf.WriteInt64(int64(ref))
}

func (w *WayNodeListBuilder) end() error {
	w.buf.EndRegion(w.region)
	return nil
}

func decodeWayNodeList(body []byte) []model.NodeRef {
	r := arena.NewReader(body)
	var refs []model.NodeRef
	for r.Remaining() > 0 {
		refs = append(refs, model.NodeRef{Ref: model.ID(r.Int64()), Loc: model.Undefined})
	}
	return refs
}

// RelationMemberListBuilder appends members as children of an open
// Relation.
type RelationMemberListBuilder struct {
	buf    *arena.Buffer
	region arena.Region
}

func beginRelationMemberList(buf *arena.Buffer) (*RelationMemberListBuilder, error) {
	r, err := buf.BeginRegion(arena.KindRelationMemberList)
	if err != nil {
		return nil, err
	}
	return &RelationMemberListBuilder{buf: buf, region: r}, nil
}

// Add appends one member.
func (m *RelationMemberListBuilder) Add(member model.Member) error {
	if err := m.buf.WriteByte(byte(member.Type)); err != nil {
		return err
	}
	if err := m.buf.WriteInt64(int64(member.Ref)); err != nil {
		return err
	}
	return m.buf.WriteString(member.Role)
}

func (m *RelationMemberListBuilder) end() error {
	m.buf.EndRegion(m.region)
	return nil
}

func decodeRelationMemberList(body []byte) []model.Member {
	r := arena.NewReader(body)
	var members []model.Member
	for r.Remaining() > 0 {
		members = append(members, model.Member{
			Type: model.MemberType(r.Byte()),
			Ref:  model.ID(r.Int64()),
			Role: r.String(),
		})
	}
	return members
}

// bufferedComment holds a discussion comment's fields until the
// discussion is sealed. Only the comment body arrives after the region
// would otherwise be open (it is character data inside a nested `text`
// element), so the whole comment is accumulated in memory and flushed to
// the arena in one pass at DiscussionBuilder.end.
type bufferedComment struct {
	Date time.Time
	UID  model.UID
	User string
	Text string
}

// DiscussionBuilder accumulates a Changeset's discussion comments.
type DiscussionBuilder struct {
	buf      *arena.Buffer
	region   arena.Region
	comments []bufferedComment
}

func beginDiscussion(buf *arena.Buffer) (*DiscussionBuilder, error) {
	r, err := buf.BeginRegion(arena.KindDiscussion)
	if err != nil {
		return nil, err
	}
	return &DiscussionBuilder{buf: buf, region: r}, nil
}

// AddComment opens a new comment with its start-tag attributes. The text
// body is attached later with SetCurrentText.
func (d *DiscussionBuilder) AddComment(date time.Time, uid model.UID, user string) {
	d.comments = append(d.comments, bufferedComment{Date: date, UID: uid, User: user})
}

// SetCurrentText attaches text to the most recently added comment, called
// when the enclosing `text` element ends.
func (d *DiscussionBuilder) SetCurrentText(text string) {
	if len(d.comments) == 0 {
		return
	}
	d.comments[len(d.comments)-1].Text = text
}

func (d *DiscussionBuilder) end() error {
	for _, c := range d.comments {
		cr, err := d.buf.BeginRegion(arena.KindComment)
		if err != nil {
			return err
		}
		if err := d.buf.WriteInt64(c.Date.Unix()); err != nil {
			return err
		}
		if err := d.buf.WriteUint32(uint32(c.UID)); err != nil {
			return err
		}
		if err := d.buf.WriteString(c.User); err != nil {
			return err
		}
		if err := d.buf.WriteString(c.Text); err != nil {
			return err
		}
		d.buf.EndRegion(cr)
	}
	d.buf.EndRegion(d.region)
	return nil
}

func decodeDiscussion(body []byte) model.Discussion {
	c := arena.NewReader(body).Regions()
	var discussion model.Discussion
	for {
		_, commentBody, ok := c.Next()
		if !ok {
			break
		}
		r := arena.NewReader(commentBody)
		discussion = append(discussion, model.Comment{
			Date: time.Unix(r.Int64(), 0).UTC(),
			UID:  model.UID(r.Uint32()),
			User: r.String(),
			Text: r.String(),
		})
	}
	return discussion
}
