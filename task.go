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

// Package osmium is the parser task and format registry (C6, C7) sitting
// on top of internal/arena, internal/builder, internal/xmlio,
// internal/ingest and internal/promise: it wires a raw byte-chunk source
// to a channel of decoded OSM entities.
package osmium

import (
	"context"
	"io"
	"log/slog"

	"github.com/destel/rill"

	"github.com/Hailin-Plusai/libosmium/internal/arena"
	"github.com/Hailin-Plusai/libosmium/internal/builder"
	"github.com/Hailin-Plusai/libosmium/internal/ingest"
	"github.com/Hailin-Plusai/libosmium/internal/promise"
	"github.com/Hailin-Plusai/libosmium/internal/xmlio"
	"github.com/Hailin-Plusai/libosmium/model"
)

// Stream is a running parser task (C6): a dedicated goroutine owns an
// arena.Buffer and an ingest.Machine, pulls byte chunks from its input
// channel, and pushes decoded entities to its output channel. Construct
// one with NewStream (caller supplies the input channel) or Parse (Stream
// owns the chunk-generation goroutine over an io.Reader).
type Stream struct {
	header *promise.Header
	output chan rill.Try[model.Entity]
}

// NewStream starts a parser task reading raw byte chunks from input — an
// empty chunk terminates the stream, per spec §6's input channel
// convention. The returned Stream's goroutine outlives NewStream; it exits
// when input is drained/closed, an error occurs, or the consumer stops
// receiving from Entities() and its output channel's buffer fills, at
// which point the task blocks on send until the consumer resumes (or the
// task is abandoned, in which case it leaks like any blocked goroutine
// with no receiver — the same lifetime contract the teacher's own
// background decode goroutines have).
func NewStream(input <-chan []byte, opts ...StreamOption) *Stream {
	cfg := newStreamOptions(opts...)

	s := &Stream{
		header: promise.NewHeader(),
		output: make(chan rill.Try[model.Entity], cfg.outputChannelDepth),
	}

	go s.run(input, cfg)

	return s
}

// Parse starts a parser task that reads r itself, chunking it through
// chunkChannel. Canceling ctx stops chunk generation; the Stream then winds
// down the same way it would on a read error.
func Parse(ctx context.Context, r io.Reader, opts ...StreamOption) *Stream {
	cfg := newStreamOptions(opts...)
	input := make(chan []byte, cfg.inputChannelDepth)

	go func() {
		defer close(input)

		for c := range chunkChannel(ctx, r, cfg) {
			if c.err != nil {
				slog.Error("osmium: reading input", "error", c.err)
				return
			}

			select {
			case input <- c.data:
			case <-ctx.Done():
				return
			}

			if c.isLast {
				return
			}
		}
	}()

	return NewStream(input, opts...)
}

// Header blocks until the root element's attributes are known (or parsing
// fails before any are seen), matching C5's contract.
func (s *Stream) Header() (*model.Header, error) {
	return s.header.Await()
}

// Entities returns the channel of decoded entities. It is closed after a
// clean end-of-stream; a rill.Try carrying a non-nil Error is the terminal
// error record spec §6 calls for and is always the last value sent.
func (s *Stream) Entities() <-chan rill.Try[model.Entity] {
	return s.output
}

func (s *Stream) run(input <-chan []byte, cfg streamOptions) {
	defer close(s.output)

	buf := arena.New(cfg.bufferCapacity)
	header := model.NewHeader()

	machine := ingest.New(buf, s.header, cfg.mask, header, s.flush)
	driver := xmlio.New(xmlio.Handler{
		OnStart:    machine.OnStart,
		OnEnd:      machine.OnEnd,
		OnCharData: machine.OnCharData,
	})

	for raw := range input {
		if machine.ShouldStop() {
			break
		}

		isLast := len(raw) == 0
		if err := driver.Feed(raw, isLast); err != nil {
			s.fail(err)
			return
		}

		if isLast {
			break
		}
	}

	machine.Flush()
	s.header.Drop()
}

// flush is the ingest.Machine's FlushFunc: it decodes every entity out of
// a committed snapshot and hands it to the consumer, in the closing-tag
// order the snapshot's regions were written in (invariant 1 in spec §8).
func (s *Stream) flush(snap arena.Snapshot) {
	c := snap.Cursor()
	for {
		kind, body, ok := c.Next()
		if !ok {
			return
		}

		entity, err := builder.Decode(kind, body)
		if err != nil {
			slog.Error("osmium: decoding packed entity", "error", err)
			s.output <- rill.Try[model.Entity]{Error: classify(err)}

			return
		}

		s.output <- rill.Try[model.Entity]{Value: entity}
	}
}

// fail resolves the header promise (a no-op if already resolved) and
// enqueues the single terminal error record spec §7 promises, then lets
// run's deferred close(s.output) finish the stream.
func (s *Stream) fail(err error) {
	ie := classify(err)
	slog.Error("osmium: parse failed", "kind", ie.Kind, "error", ie.Err)
	s.header.Fail(ie)
	s.output <- rill.Try[model.Entity]{Error: ie}
}
