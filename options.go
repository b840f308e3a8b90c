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

import "github.com/Hailin-Plusai/libosmium/internal/ingest"

const (
	// DefaultBufferCapacity is the size of each packed entity Buffer.
	DefaultBufferCapacity = 4 * 1024 * 1024

	// DefaultChunkSize is the size of the byte chunks GenerateChunks reads.
	DefaultChunkSize = 64 * 1024

	// DefaultInputChannelDepth is the input channel's buffering.
	DefaultInputChannelDepth = 4

	// DefaultOutputChannelDepth is the entity output channel's buffering.
	DefaultOutputChannelDepth = 8
)

// streamOptions carries the tunables a Stream is constructed with.
type streamOptions struct {
	bufferCapacity     int
	chunkSize          int
	inputChannelDepth  int
	outputChannelDepth int
	mask               ingest.Mask
}

// StreamOption configures a Stream at construction time.
type StreamOption func(*streamOptions)

// WithBufferCapacity sets the packed entity Buffer's capacity in bytes.
func WithBufferCapacity(n int) StreamOption {
	return func(o *streamOptions) { o.bufferCapacity = n }
}

// WithChunkSize sets the byte chunk size used by GenerateChunks.
func WithChunkSize(n int) StreamOption {
	return func(o *streamOptions) { o.chunkSize = n }
}

// WithInputChannelDepth sets the buffering of the raw byte-chunk channel.
func WithInputChannelDepth(n int) StreamOption {
	return func(o *streamOptions) { o.inputChannelDepth = n }
}

// WithOutputChannelDepth sets the buffering of the entity output channel;
// this is the "k" in invariant 6's O(k·buffer_size) memory bound.
func WithOutputChannelDepth(n int) StreamOption {
	return func(o *streamOptions) { o.outputChannelDepth = n }
}

// WithEntityMask restricts which entity kinds the Stream emits. The
// default is ingest.MaskAll.
func WithEntityMask(m ingest.Mask) StreamOption {
	return func(o *streamOptions) { o.mask = m }
}

// defaultStreamConfig mirrors the teacher's defaultDecoderConfig: a
// package-level value applied before any caller-supplied StreamOption.
var defaultStreamConfig = streamOptions{
	bufferCapacity:     DefaultBufferCapacity,
	chunkSize:          DefaultChunkSize,
	inputChannelDepth:  DefaultInputChannelDepth,
	outputChannelDepth: DefaultOutputChannelDepth,
	mask:               ingest.MaskAll,
}

func newStreamOptions(opts ...StreamOption) streamOptions {
	cfg := defaultStreamConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
