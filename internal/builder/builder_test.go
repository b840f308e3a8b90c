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

package builder_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hailin-Plusai/libosmium/internal/arena"
	"github.com/Hailin-Plusai/libosmium/internal/builder"
	"github.com/Hailin-Plusai/libosmium/model"
)

func TestNodeRoundTrip(t *testing.T) {
	buf := arena.New(1024)

	info := model.Info{ID: 1, Version: 3, UID: 9, Changeset: 4, Visible: true, User: "alice"}
	loc := model.NewLocation(20000000, 10000000)

	nb, err := builder.BeginNode(buf, info, loc)
	require.NoError(t, err)

	tags, err := nb.OpenTagList()
	require.NoError(t, err)
	require.NoError(t, tags.Add("amenity", "cafe"))

	require.NoError(t, nb.End())
	require.NoError(t, buf.Commit())

	snap := buf.Take()
	kind, body, ok := snap.Cursor().Next()
	require.True(t, ok)
	require.Equal(t, arena.KindNode, kind)

	entity, err := builder.Decode(kind, body)
	require.NoError(t, err)

	node, ok := entity.(*model.Node)
	require.True(t, ok)
	assert.Equal(t, model.ID(1), node.Info.ID)
	assert.Equal(t, uint32(3), node.Info.Version)
	assert.True(t, node.Info.Visible)
	assert.Equal(t, "alice", node.Info.User)
	assert.Equal(t, loc, node.Loc)
	assert.Equal(t, model.TagList{{Key: "amenity", Value: "cafe"}}, node.Tags)
}

func TestWayRoundTripPreservesListOrder(t *testing.T) {
	buf := arena.New(1024)

	wb, err := builder.BeginWay(buf, model.Info{ID: 1, Visible: true})
	require.NoError(t, err)

	nodes, err := wb.OpenWayNodeList()
	require.NoError(t, err)
	require.NoError(t, nodes.Add(10))
	require.NoError(t, nodes.Add(11))

	tags, err := wb.OpenTagList()
	require.NoError(t, err)
	require.NoError(t, tags.Add("highway", "road"))

	require.NoError(t, wb.End())
	require.NoError(t, buf.Commit())

	snap := buf.Take()
	kind, body, ok := snap.Cursor().Next()
	require.True(t, ok)

	entity, err := builder.Decode(kind, body)
	require.NoError(t, err)
	way := entity.(*model.Way)

	require.Len(t, way.Nodes, 2)
	assert.Equal(t, model.ID(10), way.Nodes[0].Ref)
	assert.Equal(t, model.ID(11), way.Nodes[1].Ref)
	assert.Equal(t, model.TagList{{Key: "highway", Value: "road"}}, way.Tags)
}

func TestRelationRejectsNothingButDecodesMembers(t *testing.T) {
	buf := arena.New(1024)

	rb, err := builder.BeginRelation(buf, model.Info{ID: 1, Visible: true})
	require.NoError(t, err)

	members, err := rb.OpenRelationMemberList()
	require.NoError(t, err)
	require.NoError(t, members.Add(model.Member{Type: model.MemberNode, Ref: 5, Role: "outer"}))

	require.NoError(t, rb.End())
	require.NoError(t, buf.Commit())

	snap := buf.Take()
	kind, body, ok := snap.Cursor().Next()
	require.True(t, ok)

	entity, err := builder.Decode(kind, body)
	require.NoError(t, err)
	relation := entity.(*model.Relation)

	require.Len(t, relation.Members, 1)
	assert.Equal(t, model.MemberNode, relation.Members[0].Type)
	assert.Equal(t, model.ID(5), relation.Members[0].Ref)
	assert.Equal(t, "outer", relation.Members[0].Role)
}

func TestChangesetDiscussionRoundTrip(t *testing.T) {
	buf := arena.New(1024)

	when := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	cb, err := builder.BeginChangeset(buf, model.Info{ID: 1}, model.NewBox(), when, when, true, 3, 1)
	require.NoError(t, err)

	discussion, err := cb.OpenDiscussion()
	require.NoError(t, err)
	discussion.AddComment(when, 5, "u")
	discussion.SetCurrentText("hi")

	require.NoError(t, cb.End())
	require.NoError(t, buf.Commit())

	snap := buf.Take()
	kind, body, ok := snap.Cursor().Next()
	require.True(t, ok)

	entity, err := builder.Decode(kind, body)
	require.NoError(t, err)
	changeset := entity.(*model.Changeset)

	require.Len(t, changeset.Discussion, 1)
	assert.Equal(t, model.UID(5), changeset.Discussion[0].UID)
	assert.Equal(t, "u", changeset.Discussion[0].User)
	assert.Equal(t, "hi", changeset.Discussion[0].Text)
	assert.Equal(t, when.Unix(), changeset.Discussion[0].Date.Unix())
}

func TestOpeningNewSublistSealsThePrevious(t *testing.T) {
	buf := arena.New(1024)

	wb, err := builder.BeginWay(buf, model.Info{ID: 1})
	require.NoError(t, err)

	nodes, err := wb.OpenWayNodeList()
	require.NoError(t, err)
	require.NoError(t, nodes.Add(1))

	// Opening the tag list seals the noderef list even though the caller
	// never called End on it explicitly.
	tags, err := wb.OpenTagList()
	require.NoError(t, err)
	require.NoError(t, tags.Add("k", "v"))

	require.NoError(t, wb.End())
	require.NoError(t, buf.Commit())

	snap := buf.Take()
	kind, body, ok := snap.Cursor().Next()
	require.True(t, ok)

	entity, err := builder.Decode(kind, body)
	require.NoError(t, err)
	way := entity.(*model.Way)

	assert.Len(t, way.Nodes, 1)
	assert.Len(t, way.Tags, 1)
}
