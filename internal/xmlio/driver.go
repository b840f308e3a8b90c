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

// Package xmlio implements the XML event driver (C3): it wraps
// encoding/xml.Decoder, the only streaming XML tokenizer in the retrieved
// corpus (see the module's DESIGN.md for why no third-party push-mode
// parser is used instead), and re-exposes it as a push-style driver fed
// (chunk, isLast) pairs.
package xmlio

import (
	"encoding/xml"
	"fmt"
	"io"
)

// SyntaxError carries the line and column encoding/xml.Decoder attributes
// to a failed parse, mirroring the XmlSyntax error kind.
type SyntaxError struct {
	Line   int
	Column int
	Detail string
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("xmlio: syntax error at %d:%d: %s", e.Line, e.Column, e.Detail)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Handler holds the callbacks invoked for each XML token. All three are
// optional; a nil callback is treated as a no-op. Handlers never retain
// the name/attrs/text arguments beyond the call — copy anything that must
// outlive it.
type Handler struct {
	OnStart    func(name string, attrs map[string]string) error
	OnEnd      func(name string) error
	OnCharData func(text string) error
}

// Driver adapts a Handler to a push interface: Feed delivers a chunk of
// input to a decoder goroutine that dispatches tokens to the handler. A
// non-final Feed returns once the decoder has read the chunk, possibly
// before its tokens are dispatched; only a final Feed waits until every
// token has been dispatched.
type Driver struct {
	pr      *io.PipeReader
	pw      *io.PipeWriter
	dec     *xml.Decoder
	handler Handler
	done    chan error
}

// New starts a Driver dispatching to handler.
func New(handler Handler) *Driver {
	pr, pw := io.Pipe()
	d := &Driver{
		pr:      pr,
		pw:      pw,
		dec:     xml.NewDecoder(pr),
		handler: handler,
		done:    make(chan error, 1),
	}
	go d.run()
	return d
}

func (d *Driver) run() {
	for {
		tok, err := d.dec.Token()
		if err == io.EOF {
			d.done <- nil
			return
		}
		if err != nil {
			line, col := d.dec.InputPos()
			serr := &SyntaxError{Line: line, Column: col, Detail: err.Error(), Err: err}
			d.pr.CloseWithError(serr)
			d.done <- serr
			return
		}
		if cbErr := d.dispatch(tok); cbErr != nil {
			d.pr.CloseWithError(cbErr)
			d.done <- cbErr
			return
		}
	}
}

func (d *Driver) dispatch(tok xml.Token) error {
	switch t := tok.(type) {
	case xml.StartElement:
		if d.handler.OnStart == nil {
			return nil
		}
		attrs := make(map[string]string, len(t.Attr))
		for _, a := range t.Attr {
			attrs[a.Name.Local] = a.Value
		}
		return d.handler.OnStart(t.Name.Local, attrs)
	case xml.EndElement:
		if d.handler.OnEnd == nil {
			return nil
		}
		return d.handler.OnEnd(t.Name.Local)
	case xml.CharData:
		if d.handler.OnCharData == nil {
			return nil
		}
		return d.handler.OnCharData(string(t))
	default:
		return nil
	}
}

// Feed delivers chunk (which may be empty) to the underlying decoder. If
// isLast is true, it also signals end-of-stream and blocks until the
// decoder has drained and finished processing every remaining token,
// returning any error raised while doing so.
func (d *Driver) Feed(chunk []byte, isLast bool) error {
	if len(chunk) > 0 {
		if _, err := d.pw.Write(chunk); err != nil {
			return err
		}
	}
	if isLast {
		_ = d.pw.Close()
		return <-d.done
	}
	return nil
}
