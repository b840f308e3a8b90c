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

// Package promise implements the header promise (C5): a one-shot
// single-producer/single-consumer slot delivering file-level header
// metadata, or the parse error that prevented it from ever resolving.
package promise

import (
	"errors"
	"sync"

	"github.com/Hailin-Plusai/libosmium/model"
)

// HeaderUnavailable is returned by Await when the producer side was
// dropped without ever resolving the promise.
var HeaderUnavailable = errors.New("promise: header unavailable, producer was dropped")

// result is the single value ever sent on ready.
type result struct {
	header *model.Header
	err    error
}

// Header is a single-assignment rendezvous between the ingest state
// machine (producer) and the caller of the format (consumer). Resolving
// it more than once is a silent no-op, per spec §9.
type Header struct {
	once  sync.Once
	ready chan result
	value result
}

// NewHeader returns an unresolved promise.
func NewHeader() *Header {
	return &Header{ready: make(chan result, 1)}
}

// Resolve sets the promise's value. Only the first call has any effect;
// subsequent calls (including Drop) are no-ops.
func (h *Header) Resolve(header *model.Header) {
	h.once.Do(func() {
		h.value = result{header: header}
		h.ready <- h.value
		close(h.ready)
	})
}

// Fail resolves the promise with a terminal error instead of a header,
// used when parsing fails before the header is ever known.
func (h *Header) Fail(err error) {
	h.once.Do(func() {
		h.value = result{err: err}
		h.ready <- h.value
		close(h.ready)
	})
}

// Drop resolves the promise with HeaderUnavailable if it was never
// resolved, so a consumer blocked in Await is never left hanging when the
// producer side exits abnormally.
func (h *Header) Drop() {
	h.once.Do(func() {
		h.value = result{err: HeaderUnavailable}
		h.ready <- h.value
		close(h.ready)
	})
}

// Await blocks until the promise resolves, returning either the header or
// the error it was resolved (or dropped) with.
func (h *Header) Await() (*model.Header, error) {
	v, ok := <-h.ready
	if !ok {
		v = h.value
	}
	return v.header, v.err
}
