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
	"errors"
	"fmt"

	"github.com/Hailin-Plusai/libosmium/internal/arena"
	"github.com/Hailin-Plusai/libosmium/internal/ingest"
	"github.com/Hailin-Plusai/libosmium/internal/xmlio"
)

// ErrorKind classifies the terminal error a Stream can report, independent
// of the concrete Go type that produced it.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindXmlSyntax
	KindFormatVersion
	KindUnknownRoot
	KindUnknownMemberType
	KindMissingRef
	KindBufferOverflow
	KindIo
	KindUnsupportedFormat
	KindAlreadyRegistered
)

func (k ErrorKind) String() string {
	switch k {
	case KindXmlSyntax:
		return "XmlSyntax"
	case KindFormatVersion:
		return "FormatVersion"
	case KindUnknownRoot:
		return "UnknownRoot"
	case KindUnknownMemberType:
		return "UnknownMemberType"
	case KindMissingRef:
		return "MissingRef"
	case KindBufferOverflow:
		return "BufferOverflow"
	case KindIo:
		return "Io"
	case KindUnsupportedFormat:
		return "UnsupportedFormat"
	case KindAlreadyRegistered:
		return "AlreadyRegistered"
	default:
		return "Unknown"
	}
}

// IngestError wraps an underlying error with the classification spec §7
// gives it, so a consumer can switch on Kind without depending on the
// internal packages' concrete error types.
type IngestError struct {
	Kind ErrorKind
	Err  error
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("osmium: %s: %v", e.Kind, e.Err)
}

func (e *IngestError) Unwrap() error { return e.Err }

// UnsupportedFormat reports that a Registry has no factory for tag.
type UnsupportedFormat struct{ Tag string }

func (e *UnsupportedFormat) Error() string { return fmt.Sprintf("osmium: unsupported format %q", e.Tag) }

// AlreadyRegistered reports a duplicate Registry.Register call for tag.
type AlreadyRegistered struct{ Tag string }

func (e *AlreadyRegistered) Error() string {
	return fmt.Sprintf("osmium: format %q already registered", e.Tag)
}

// classify maps an error surfaced by internal/xmlio or internal/ingest (or
// a plain I/O failure) onto the ErrorKind taxonomy of spec §7. Errors
// originating from internal/arena or internal/ingest never cross the
// internal/root package boundary except through this function, avoiding
// an import cycle (internal/ingest deliberately does not import this
// package).
func classify(err error) *IngestError {
	if err == nil {
		return nil
	}

	var syn *xmlio.SyntaxError
	if errors.As(err, &syn) {
		return &IngestError{Kind: KindXmlSyntax, Err: err}
	}

	var verErr *ingest.ErrFormatVersion
	if errors.As(err, &verErr) {
		return &IngestError{Kind: KindFormatVersion, Err: err}
	}

	var rootErr *ingest.ErrUnknownRoot
	if errors.As(err, &rootErr) {
		return &IngestError{Kind: KindUnknownRoot, Err: err}
	}

	var memberErr *ingest.ErrUnknownMemberType
	if errors.As(err, &memberErr) {
		return &IngestError{Kind: KindUnknownMemberType, Err: err}
	}

	if errors.Is(err, ingest.ErrMissingRef) {
		return &IngestError{Kind: KindMissingRef, Err: err}
	}

	if errors.Is(err, arena.Overflow) {
		return &IngestError{Kind: KindBufferOverflow, Err: err}
	}

	return &IngestError{Kind: KindIo, Err: err}
}
