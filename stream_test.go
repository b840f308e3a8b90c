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

package osmium_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	osmium "github.com/Hailin-Plusai/libosmium"
	"github.com/Hailin-Plusai/libosmium/internal/ingest"
	"github.com/Hailin-Plusai/libosmium/model"
)

func drain(t *testing.T, s *osmium.Stream) ([]model.Entity, error) {
	t.Helper()

	var entities []model.Entity
	for r := range s.Entities() {
		if r.Error != nil {
			return entities, r.Error
		}
		entities = append(entities, r.Value)
	}

	return entities, nil
}

func TestStreamFromChannelSingleNode(t *testing.T) {
	doc := `<osm version="0.6"><node id="1" lat="1.0" lon="2.0" version="3"/></osm>`

	input := make(chan []byte, 2)
	input <- []byte(doc)
	input <- nil

	s := osmium.NewStream(input)

	entities, err := drain(t, s)
	require.NoError(t, err)
	require.Len(t, entities, 1)

	header, err := s.Header()
	require.NoError(t, err)
	v, ok := header.Get("version")
	require.True(t, ok)
	assert.Equal(t, "0.6", v)
}

func TestStreamPropagatesFormatVersionError(t *testing.T) {
	input := make(chan []byte, 2)
	input <- []byte(`<osm version="0.5"/>`)
	input <- nil

	s := osmium.NewStream(input)

	_, err := drain(t, s)
	require.Error(t, err)

	var ie *osmium.IngestError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, osmium.KindFormatVersion, ie.Kind)

	_, hdrErr := s.Header()
	require.Error(t, hdrErr)
}

func TestStreamEntityMaskFiltering(t *testing.T) {
	doc := `<osm version="0.6"><node id="1"/><way id="2"/></osm>`

	input := make(chan []byte, 2)
	input <- []byte(doc)
	input <- nil

	s := osmium.NewStream(input, osmium.WithEntityMask(ingest.MaskNode))

	entities, err := drain(t, s)
	require.NoError(t, err)
	require.Len(t, entities, 1)

	_, ok := entities[0].(*model.Node)
	assert.True(t, ok)
}

func TestParseFromReader(t *testing.T) {
	doc := `<osm version="0.6"><node id="1"/><node id="2"/></osm>`

	s := osmium.Parse(context.Background(), strings.NewReader(doc), osmium.WithChunkSize(8))

	entities, err := drain(t, s)
	require.NoError(t, err)
	assert.Len(t, entities, 2)
}
