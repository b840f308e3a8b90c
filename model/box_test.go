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

package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Hailin-Plusai/libosmium/model"
)

func TestBoxExtend(t *testing.T) {
	b := model.NewBox()
	assert.False(t, b.Defined())

	b.Extend(model.NewLocation(10, 20))
	b.Extend(model.NewLocation(-5, 30))
	b.Extend(model.Undefined)

	assert.True(t, b.Defined())
	assert.Equal(t, int32(-5), b.Min.X)
	assert.Equal(t, int32(20), b.Min.Y)
	assert.Equal(t, int32(10), b.Max.X)
	assert.Equal(t, int32(30), b.Max.Y)
}

func TestBoxUndefinedString(t *testing.T) {
	b := model.NewBox()
	assert.Equal(t, "undefined", b.String())
}
