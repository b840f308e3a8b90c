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

package osmium

import (
	"context"
	"io"
)

// chunk is a byte slice paired with whether it is the last one the reader
// will produce. GenerateChunks never reuses the backing array across
// chunks, so a receiver may retain it past the callback.
type chunk struct {
	data   []byte
	isLast bool
	err    error
}

// GenerateChunks turns r into a sequence of (data, isLast) pairs sized at
// most size bytes, in the teacher's generate()/GenerateBlobReader iterator
// style (_examples/maguro-pbf/blob.go): a func(yield) closure rather than a
// channel, so a caller who wants a channel (Parse, below) wraps it in one
// and a caller who wants to drive it inline (tests) can range over it
// directly. Reading stops, and the final yield reports isLast=true, on
// io.EOF; any other read error is delivered as a terminal chunk with err
// set and isLast true.
func GenerateChunks(ctx context.Context, r io.Reader, size int) func(yield func(chunk) bool) {
	if size <= 0 {
		size = DefaultChunkSize
	}

	return func(yield func(chunk) bool) {
		buf := make([]byte, size)

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			n, err := r.Read(buf)
			if n > 0 {
				data := make([]byte, n)
				copy(data, buf[:n])

				if err == io.EOF {
					if yield(chunk{data: data}) {
						yield(chunk{isLast: true})
					}
					return
				}

				if !yield(chunk{data: data}) {
					return
				}
			}

			if err != nil {
				if err == io.EOF {
					yield(chunk{isLast: true})
					return
				}

				yield(chunk{isLast: true, err: err})

				return
			}
		}
	}
}

// chunkChannel drains a GenerateChunks sequence into a fresh channel sized
// per streamOptions.inputChannelDepth, matching C6's "pull raw byte chunks
// from an input channel" contract. The channel always ends with either an
// empty, error-free chunk (clean end-of-stream) or one carrying err (I/O
// failure) before being closed.
func chunkChannel(ctx context.Context, r io.Reader, cfg streamOptions) <-chan chunk {
	out := make(chan chunk, cfg.inputChannelDepth)

	go func() {
		defer close(out)

		for c := range GenerateChunks(ctx, r, cfg.chunkSize) {
			select {
			case out <- c:
			case <-ctx.Done():
				return
			}

			if c.isLast {
				return
			}
		}
	}()

	return out
}
