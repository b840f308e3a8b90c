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

package info

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hailin-Plusai/libosmium/model"
)

const doc = `<osm version="0.6" generator="test-suite">` +
	`<bounds minlat="1.0" minlon="2.0" maxlat="3.0" maxlon="4.0"/>` +
	`<node id="1" lat="1.0" lon="2.0"/>` +
	`<way id="2"><nd ref="1"/></way>` +
	`<relation id="3"><member type="n" ref="1" role="x"/></relation>` +
	`</osm>`

func TestRunInfoBasic(t *testing.T) {
	info, err := runInfo(strings.NewReader(doc), false)
	require.NoError(t, err)

	v, ok := info.Get("version")
	require.True(t, ok)
	assert.Equal(t, "0.6", v)
	assert.Zero(t, info.NodeCount)
}

func TestRunInfoExtendedCountsEveryKind(t *testing.T) {
	info, err := runInfo(strings.NewReader(doc), true)
	require.NoError(t, err)

	assert.Equal(t, int64(1), info.NodeCount)
	assert.Equal(t, int64(1), info.WayCount)
	assert.Equal(t, int64(1), info.RelationCount)
	assert.Equal(t, int64(0), info.ChangesetCount)
	require.Len(t, info.Boxes, 1)
	assert.True(t, info.Boxes[0].Defined())
}

func TestRenderJSON(t *testing.T) {
	info, err := runInfo(strings.NewReader(doc), true)
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	saved := out
	defer func() { out = saved }()
	out = buf

	renderJSON(info)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.EqualValues(t, 1, decoded["NodeCount"])
	assert.EqualValues(t, 1, decoded["WayCount"])
	assert.EqualValues(t, 1, decoded["RelationCount"])
}

func TestRenderText(t *testing.T) {
	info := &extendedHeader{
		Header:        model.NewHeader(),
		NodeCount:     2,
		WayCount:      1,
		RelationCount: 0,
	}
	info.Set("version", "0.6")
	info.Set("generator", "test-suite")

	buf := &bytes.Buffer{}
	saved := out
	defer func() { out = saved }()
	out = buf

	renderTxt(info, true)

	got := buf.String()
	assert.Contains(t, got, "Version: 0.6")
	assert.Contains(t, got, "Generator: test-suite")
	assert.Contains(t, got, "NodeCount: 2")
	assert.Contains(t, got, "WayCount: 1")
}
