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

package arena_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hailin-Plusai/libosmium/internal/arena"
)

func TestReserveOverflow(t *testing.T) {
	buf := arena.New(16)
	_, err := buf.BeginRegion(arena.KindNode)
	require.NoError(t, err)
	require.NoError(t, buf.WriteUint64(0))

	_, err = buf.BeginRegion(arena.KindNode)
	assert.ErrorIs(t, err, arena.Overflow)
}

func TestCommitRequiresClosedRegions(t *testing.T) {
	buf := arena.New(256)
	_, err := buf.BeginRegion(arena.KindNode)
	require.NoError(t, err)

	err = buf.Commit()
	assert.Error(t, err)
}

func TestRollbackDiscardsUncommittedWrites(t *testing.T) {
	buf := arena.New(256)
	r, err := buf.BeginRegion(arena.KindNode)
	require.NoError(t, err)
	require.NoError(t, buf.WriteUint64(42))
	buf.EndRegion(r)
	require.NoError(t, buf.Commit())

	committedAfterFirst := buf.Committed()

	_, err = buf.BeginRegion(arena.KindNode)
	require.NoError(t, err)
	require.NoError(t, buf.WriteUint64(7))
	buf.Rollback()

	assert.Equal(t, committedAfterFirst, buf.Committed())
	assert.Equal(t, committedAfterFirst, buf.Written())
}

func TestTakeYieldsTraversableSnapshotAndResetsBuffer(t *testing.T) {
	buf := arena.New(256)

	r1, err := buf.BeginRegion(arena.KindNode)
	require.NoError(t, err)
	require.NoError(t, buf.WriteString("alice"))
	buf.EndRegion(r1)

	r2, err := buf.BeginRegion(arena.KindWay)
	require.NoError(t, err)
	require.NoError(t, buf.WriteString("bob"))
	buf.EndRegion(r2)

	require.NoError(t, buf.Commit())

	snap := buf.Take()
	assert.Equal(t, 0, buf.Written())
	assert.Equal(t, 0, buf.Committed())
	assert.Equal(t, buf.Capacity(), 256)

	c := snap.Cursor()

	kind, body, ok := c.Next()
	require.True(t, ok)
	assert.Equal(t, arena.KindNode, kind)
	assert.Equal(t, "alice", arena.NewReader(body).String())

	kind, body, ok = c.Next()
	require.True(t, ok)
	assert.Equal(t, arena.KindWay, kind)
	assert.Equal(t, "bob", arena.NewReader(body).String())

	_, _, ok = c.Next()
	assert.False(t, ok)
}

func TestNestedRegionsRoundTrip(t *testing.T) {
	buf := arena.New(256)

	outer, err := buf.BeginRegion(arena.KindWay)
	require.NoError(t, err)
	require.NoError(t, buf.WriteInt64(1))

	inner, err := buf.BeginRegion(arena.KindTagList)
	require.NoError(t, err)
	require.NoError(t, buf.WriteString("highway"))
	require.NoError(t, buf.WriteString("primary"))
	buf.EndRegion(inner)

	buf.EndRegion(outer)
	require.NoError(t, buf.Commit())

	snap := buf.Take()
	kind, body, ok := snap.Cursor().Next()
	require.True(t, ok)
	assert.Equal(t, arena.KindWay, kind)

	r := arena.NewReader(body)
	assert.Equal(t, int64(1), r.Int64())

	nested := r.Regions()
	nk, nbody, ok := nested.Next()
	require.True(t, ok)
	assert.Equal(t, arena.KindTagList, nk)

	nr := arena.NewReader(nbody)
	assert.Equal(t, "highway", nr.String())
	assert.Equal(t, "primary", nr.String())
}

func TestWatermark(t *testing.T) {
	buf := arena.New(100)
	assert.False(t, buf.Watermark(0.9))

	r, err := buf.BeginRegion(arena.KindNode)
	require.NoError(t, err)
	require.NoError(t, buf.WriteBytes(make([]byte, 90)))
	buf.EndRegion(r)
	require.NoError(t, buf.Commit())

	assert.True(t, buf.Watermark(0.9))
}
