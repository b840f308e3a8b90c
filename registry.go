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
	"sync"

	"github.com/Hailin-Plusai/libosmium/internal/ingest"
)

// Factory constructs a running parser task for a given entity mask and
// input byte-chunk channel, per spec §4.7's "(mask, input_channel) →
// parser task".
type Factory func(mask ingest.Mask, input <-chan []byte, opts ...StreamOption) *Stream

// Registry is a process-independent, explicitly-constructed dispatch
// table from format tag to Factory. Unlike the teacher's package-level
// defaultDecoderConfig, this has no package-level instance: spec §9's
// "Singleton format registry" design note calls for explicit
// initialization so tests can build a clean Registry, and NewRegistry
// (below) is that initialization step.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// NewDefaultRegistry returns a Registry with this module's own XML/
// OsmChange factory pre-registered under the "xml" tag.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register("xml", func(mask ingest.Mask, input <-chan []byte, opts ...StreamOption) *Stream {
		opts = append([]StreamOption{WithEntityMask(mask)}, opts...)
		return NewStream(input, opts...)
	})

	return r
}

// Register adds factory under tag. Registration is idempotent: the first
// registration for a tag wins, and every subsequent call for the same tag
// fails with AlreadyRegistered without replacing it.
func (r *Registry) Register(tag string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.factories[tag]; ok {
		return &AlreadyRegistered{Tag: tag}
	}

	r.factories[tag] = factory

	return nil
}

// Lookup returns the Factory registered for tag, or UnsupportedFormat.
func (r *Registry) Lookup(tag string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[tag]
	if !ok {
		return nil, &UnsupportedFormat{Tag: tag}
	}

	return factory, nil
}

// New looks up tag and, on success, invokes its Factory.
func (r *Registry) New(tag string, mask ingest.Mask, input <-chan []byte, opts ...StreamOption) (*Stream, error) {
	factory, err := r.Lookup(tag)
	if err != nil {
		return nil, err
	}

	return factory(mask, input, opts...), nil
}
