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

// Package builder implements the stateful writers (C2) that encode a
// node/way/relation/changeset and its nested tag/noderef/member/discussion
// lists into an internal/arena.Buffer, and the matching decoders used to
// read a committed region back out.
//
// Builders are distinct concrete types rather than one polymorphic type
// hierarchy, sharing only the small "one sub-list open at a time" sealing
// discipline spec §4.2 calls for, expressed here with a plain interface
// instead of a class hierarchy.
package builder

import (
	"time"

	"github.com/Hailin-Plusai/libosmium/internal/arena"
	"github.com/Hailin-Plusai/libosmium/model"
)

func writeInfo(buf *arena.Buffer, info model.Info) error {
	if err := buf.WriteInt64(int64(info.ID)); err != nil {
		return err
	}
	if err := buf.WriteUint32(info.Version); err != nil {
		return err
	}
	if err := buf.WriteInt64(info.Timestamp.Unix()); err != nil {
		return err
	}
	if err := buf.WriteUint32(uint32(info.UID)); err != nil {
		return err
	}
	if err := buf.WriteUint32(info.Changeset); err != nil {
		return err
	}
	if err := buf.WriteBool(info.Visible); err != nil {
		return err
	}
	return buf.WriteString(info.User)
}

func readInfo(r *arena.Reader) model.Info {
	return model.Info{
		ID:        model.ID(r.Int64()),
		Version:   r.Uint32(),
		Timestamp: time.Unix(r.Int64(), 0).UTC(),
		UID:       model.UID(r.Uint32()),
		Changeset: r.Uint32(),
		Visible:   r.Bool(),
		User:      r.String(),
	}
}

// sublistBuilder is the capability every open nested-list builder
// implements so the entity builders can enforce "at most one sub-list
// alive at a time" (spec §4.2) without a type switch per kind.
type sublistBuilder interface {
	end() error
}

func sealOpen(open *sublistBuilder) error {
	if *open == nil {
		return nil
	}
	err := (*open).end()
	*open = nil
	return err
}
