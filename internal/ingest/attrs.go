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

package ingest

import (
	"strconv"
	"time"

	"github.com/Hailin-Plusai/libosmium/model"
)

// parseTimestamp accepts the ISO-8601 "YYYY-MM-DDTHH:MM:SSZ" form spec
// §4.4 requires and produces a UTC time; fractional seconds are kept
// here and dropped when the builders store the time as whole seconds. A
// missing or malformed value yields the zero time; timestamps are not
// load-bearing for any invariant this core checks.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

func parseUint32(s string) uint32 {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0
	}
	return uint32(v)
}

func parseInt64(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}

func parseBool(s string, def bool) bool {
	switch s {
	case "true":
		return true
	case "false":
		return false
	default:
		return def
	}
}

// sharedInfo parses the attributes common to Node, Way, Relation and
// Changeset (spec §3, §4.4). visible defaults to true, forced false when
// inDelete is set (a start tag inside an open <delete> section, spec
// invariant 6), and may still be overridden by an explicit attribute
// per §3 ("forced false inside delete" combined with the general
// default-true/explicit-attribute rule).
func sharedInfo(attrs map[string]string, inDelete bool) model.Info {
	visible := true
	if inDelete {
		visible = false
	}
	visible = parseBool(attrs["visible"], visible)

	return model.Info{
		ID:        model.ID(parseInt64(attrs["id"])),
		Version:   parseUint32(attrs["version"]),
		Timestamp: parseTimestamp(attrs["timestamp"]),
		UID:       model.UID(parseUint32(attrs["uid"])),
		Changeset: parseUint32(attrs["changeset"]),
		Visible:   visible,
		User:      attrs["user"],
	}
}
