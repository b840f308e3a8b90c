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

// Package osmium streams OpenStreetMap XML and OsmChange documents into
// decoded model.Node/Way/Relation/Changeset values without materializing
// the whole document in memory: feed it raw byte chunks (or an io.Reader
// via Parse), read the resolved model.Header once, and range over decoded
// entities as they close in the input.
package osmium
