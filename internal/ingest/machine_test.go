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

package ingest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hailin-Plusai/libosmium/internal/arena"
	"github.com/Hailin-Plusai/libosmium/internal/builder"
	"github.com/Hailin-Plusai/libosmium/internal/ingest"
	"github.com/Hailin-Plusai/libosmium/internal/promise"
	"github.com/Hailin-Plusai/libosmium/internal/xmlio"
	"github.com/Hailin-Plusai/libosmium/model"
)

// run feeds doc through a fresh Machine in one shot and returns every
// decoded entity in closing-tag order, along with the resolved header (or
// its error) and any terminal parse error.
func run(t *testing.T, doc string, mask ingest.Mask) ([]model.Entity, *model.Header, error) {
	t.Helper()

	buf := arena.New(64 * 1024)
	hp := promise.NewHeader()
	header := model.NewHeader()

	var entities []model.Entity
	var flushErr error
	flush := func(snap arena.Snapshot) {
		c := snap.Cursor()
		for {
			kind, body, ok := c.Next()
			if !ok {
				break
			}
			e, err := builder.Decode(kind, body)
			if err != nil {
				flushErr = err
				continue
			}
			entities = append(entities, e)
		}
	}

	m := ingest.New(buf, hp, mask, header, flush)
	driver := xmlio.New(xmlio.Handler{OnStart: m.OnStart, OnEnd: m.OnEnd, OnCharData: m.OnCharData})

	feedErr := driver.Feed([]byte(doc), true)
	if feedErr != nil {
		hp.Fail(feedErr)
	}
	m.Flush()

	gotHeader, hdrErr := hp.Await()
	if feedErr != nil {
		return entities, gotHeader, feedErr
	}
	if flushErr != nil {
		return entities, gotHeader, flushErr
	}
	return entities, gotHeader, hdrErr
}

func TestS1SingleNode(t *testing.T) {
	doc := `<osm version="0.6"><node id="1" lat="1.0" lon="2.0" version="3" visible="true"/></osm>`
	entities, header, err := run(t, doc, ingest.MaskAll)
	require.NoError(t, err)

	v, ok := header.Get("version")
	require.True(t, ok)
	assert.Equal(t, "0.6", v)

	require.Len(t, entities, 1)
	node := entities[0].(*model.Node)
	assert.Equal(t, model.ID(1), node.Info.ID)
	assert.Equal(t, int32(20000000), node.Loc.X)
	assert.Equal(t, int32(10000000), node.Loc.Y)
	assert.Equal(t, uint32(3), node.Info.Version)
	assert.True(t, node.Info.Visible)
	assert.Empty(t, node.Tags)
}

func TestS2BadVersion(t *testing.T) {
	doc := `<osm version="0.5"/>`
	entities, _, err := run(t, doc, ingest.MaskAll)

	var verErr *ingest.ErrFormatVersion
	require.ErrorAs(t, err, &verErr)
	assert.Equal(t, "0.5", verErr.Got)
	assert.Empty(t, entities)
}

func TestS3OsmChangeDeleteVisibility(t *testing.T) {
	doc := `<osmChange version="0.6">` +
		`<delete><node id="7" version="2"/></delete>` +
		`<create><node id="8" version="1"/></create>` +
		`</osmChange>`
	entities, header, err := run(t, doc, ingest.MaskAll)
	require.NoError(t, err)
	assert.True(t, header.HasMultipleObjectVersions)

	require.Len(t, entities, 2)
	first := entities[0].(*model.Node)
	assert.Equal(t, model.ID(7), first.Info.ID)
	assert.False(t, first.Info.Visible)

	second := entities[1].(*model.Node)
	assert.Equal(t, model.ID(8), second.Info.ID)
	assert.True(t, second.Info.Visible)
}

func TestS4WayNodesBeforeTags(t *testing.T) {
	doc := `<osm version="0.6"><way id="1"><nd ref="10"/><nd ref="11"/><tag k="highway" v="road"/></way></osm>`
	entities, _, err := run(t, doc, ingest.MaskAll)
	require.NoError(t, err)

	require.Len(t, entities, 1)
	way := entities[0].(*model.Way)
	require.Len(t, way.Nodes, 2)
	assert.Equal(t, model.ID(10), way.Nodes[0].Ref)
	assert.Equal(t, model.ID(11), way.Nodes[1].Ref)
	assert.Equal(t, model.TagList{{Key: "highway", Value: "road"}}, way.Tags)
}

func TestS5MissingRef(t *testing.T) {
	doc := `<osm version="0.6"><relation id="1"><member type="n" ref="0" role="x"/></relation></osm>`
	_, _, err := run(t, doc, ingest.MaskAll)
	assert.ErrorIs(t, err, ingest.ErrMissingRef)
}

func TestS6ChangesetDiscussion(t *testing.T) {
	doc := `<osm version="0.6"><changeset id="1"><discussion>` +
		`<comment date="2020-01-01T00:00:00Z" uid="5" user="u"><text>hi</text></comment>` +
		`</discussion></changeset></osm>`
	entities, _, err := run(t, doc, ingest.MaskAll)
	require.NoError(t, err)

	require.Len(t, entities, 1)
	changeset := entities[0].(*model.Changeset)
	require.Len(t, changeset.Discussion, 1)
	comment := changeset.Discussion[0]
	assert.Equal(t, model.UID(5), comment.UID)
	assert.Equal(t, "u", comment.User)
	assert.Equal(t, "hi", comment.Text)
	assert.Equal(t, int64(1577836800), comment.Date.Unix())
}

func TestMaskFilteringEmitsOnlySelectedKinds(t *testing.T) {
	doc := `<osm version="0.6">` +
		`<node id="1"/><way id="2"/><relation id="3"/>` +
		`</osm>`
	entities, _, err := run(t, doc, ingest.MaskNode)
	require.NoError(t, err)

	require.Len(t, entities, 1)
	_, ok := entities[0].(*model.Node)
	assert.True(t, ok)
}

func TestUnknownChildElementIsIgnored(t *testing.T) {
	doc := `<osm version="0.6"><node id="1"><weird><deeper/></weird><tag k="a" v="b"/></node></osm>`
	entities, _, err := run(t, doc, ingest.MaskAll)
	require.NoError(t, err)

	require.Len(t, entities, 1)
	node := entities[0].(*model.Node)
	assert.Equal(t, model.TagList{{Key: "a", Value: "b"}}, node.Tags)
}

func TestBoundsElementExtendsHeader(t *testing.T) {
	doc := `<osm version="0.6"><bounds minlat="1.0" minlon="2.0" maxlat="3.0" maxlon="4.0"/></osm>`
	_, header, err := run(t, doc, ingest.MaskAll)
	require.NoError(t, err)

	require.Len(t, header.Boxes, 1)
	assert.True(t, header.Boxes[0].Defined())
}
