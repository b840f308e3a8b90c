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

// Package ingest implements the ingest state machine (C4): a stacked
// context machine governing which builders are active and which
// attributes and children are accepted at each point in the document.
//
// It replaces the source's flat state variable plus one-slot "last
// context" register with an explicit stack of states (the alternative
// spec §9 calls out): every start_element pushes the state entered as a
// result, every end_element pops it, and an unrecognized element simply
// pushes the generic "ignore this subtree" state regardless of how deep
// it is nested.
package ingest

import (
	"github.com/Hailin-Plusai/libosmium/internal/arena"
	"github.com/Hailin-Plusai/libosmium/internal/builder"
	"github.com/Hailin-Plusai/libosmium/internal/promise"
	"github.com/Hailin-Plusai/libosmium/model"
)

// FlushFunc receives a committed Snapshot handed off by the machine,
// either because the buffer crossed its flush watermark or because the
// stream ended with residual committed bytes.
type FlushFunc func(arena.Snapshot)

// Machine drives C1/C2 writes from XML events. It implements the three
// callbacks of xmlio.Handler.
type Machine struct {
	buf     *arena.Buffer
	header  *model.Header
	promise *promise.Header
	mask    Mask
	flush   FlushFunc

	stack []state

	headerResolved  bool
	inDeleteSection bool
	done            bool

	currentNode       *builder.NodeBuilder
	currentWay        *builder.WayBuilder
	currentRelation   *builder.RelationBuilder
	currentChangeset  *builder.ChangesetBuilder
	currentDiscussion *builder.DiscussionBuilder

	scratch string
}

// New returns a Machine ready to receive events for a fresh document.
// header is populated in place as the root element and any bounds
// element are seen; buf accumulates committed entities and is flushed
// through flush whenever its watermark is reached.
func New(buf *arena.Buffer, hp *promise.Header, mask Mask, header *model.Header, flush FlushFunc) *Machine {
	return &Machine{
		buf:     buf,
		header:  header,
		promise: hp,
		mask:    mask,
		flush:   flush,
		stack:   []state{stRoot},
	}
}

// Done reports whether the root element has been closed.
func (m *Machine) Done() bool { return m.done }

// ShouldStop reports whether the parser task may stop pulling input
// early: the header is known and the consumer wants nothing further
// (spec §4.4, "Early exit").
func (m *Machine) ShouldStop() bool {
	return m.headerResolved && m.mask == 0
}

// Flush hands off any committed bytes accumulated so far, regardless of
// watermark. Called by the parser task at end-of-stream.
func (m *Machine) Flush() {
	if m.buf.Committed() > 0 {
		m.flush(m.buf.Take())
	}
}

func (m *Machine) top() state { return m.stack[len(m.stack)-1] }

func (m *Machine) push(s state) { m.stack = append(m.stack, s) }

func (m *Machine) pop() state {
	s := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return s
}

func (m *Machine) resolveHeader() {
	if m.headerResolved {
		return
	}
	m.headerResolved = true
	m.promise.Resolve(m.header)
}

// OnStart implements xmlio.Handler.OnStart.
func (m *Machine) OnStart(name string, attrs map[string]string) error {
	next, err := m.enter(m.top(), name, attrs)
	if err != nil {
		return err
	}
	m.push(next)
	return nil
}

// OnEnd implements xmlio.Handler.OnEnd.
func (m *Machine) OnEnd(name string) error {
	left := m.pop()
	if err := m.leave(left, name); err != nil {
		return err
	}
	if len(m.stack) == 1 {
		m.resolveHeader()
		m.done = true
	}
	return nil
}

// OnCharData implements xmlio.Handler.OnCharData. Character data is only
// retained while inside a comment's <text> element (spec §4.4); it is
// discarded everywhere else.
func (m *Machine) OnCharData(text string) error {
	if m.top() == stCommentText {
		m.scratch += text
	}
	return nil
}

func (m *Machine) enter(cur state, name string, attrs map[string]string) (state, error) {
	switch cur {
	case stRoot:
		return m.enterRoot(name, attrs)
	case stTop:
		return m.enterTop(name, attrs)
	case stNode:
		return m.enterNode(name, attrs)
	case stWay:
		return m.enterWay(name, attrs)
	case stRelation:
		return m.enterRelation(name, attrs)
	case stChangeset:
		return m.enterChangeset(name, attrs)
	case stDiscussion:
		return m.enterDiscussion(name, attrs)
	case stComment:
		return m.enterComment(name, attrs)
	default:
		// stLeaf, stCommentText, stInObject, all Ignored* states, and
		// anything unrecognized under a known object: swallow the
		// subtree.
		return stInObject, nil
	}
}

func (m *Machine) leave(left state, name string) error {
	switch left {
	case stNode:
		return m.leaveEntity(m.currentNode, func() { m.currentNode = nil })
	case stWay:
		return m.leaveEntity(m.currentWay, func() { m.currentWay = nil })
	case stRelation:
		return m.leaveEntity(m.currentRelation, func() { m.currentRelation = nil })
	case stChangeset:
		return m.leaveEntity(m.currentChangeset, func() { m.currentChangeset = nil })
	case stDiscussion:
		m.currentDiscussion = nil
		return nil
	case stCommentText:
		if m.currentDiscussion != nil {
			m.currentDiscussion.SetCurrentText(m.scratch)
		}
		m.scratch = ""
		return nil
	default:
		return nil
	}
}

// sealer is implemented by every top-level builder's End method.
type sealer interface {
	End() error
}

func (m *Machine) leaveEntity(b sealer, clear func()) error {
	defer clear()
	if err := b.End(); err != nil {
		return err
	}
	if err := m.buf.Commit(); err != nil {
		return err
	}
	if m.buf.Watermark(0.9) {
		m.flush(m.buf.Take())
	}
	return nil
}

func (m *Machine) enterRoot(name string, attrs map[string]string) (state, error) {
	switch name {
	case "osm", "osmChange":
		if name == "osmChange" {
			m.header.HasMultipleObjectVersions = true
		}
		version := attrs["version"]
		if version != "0.6" {
			return 0, &ErrFormatVersion{Got: version}
		}
		m.header.Set("version", version)
		if gen, ok := attrs["generator"]; ok {
			m.header.Set("generator", gen)
		}
		return stTop, nil
	default:
		return 0, &ErrUnknownRoot{Name: name}
	}
}

func (m *Machine) enterTop(name string, attrs map[string]string) (state, error) {
	switch name {
	case "node":
		return m.enterObject(MaskNode, attrs, func(info model.Info) (state, error) {
			loc := model.LocationFromStrings(attrs["lon"], attrs["lat"])
			nb, err := builder.BeginNode(m.buf, info, loc)
			if err != nil {
				return 0, err
			}
			m.currentNode = nb
			return stNode, nil
		})
	case "way":
		return m.enterObject(MaskWay, attrs, func(info model.Info) (state, error) {
			wb, err := builder.BeginWay(m.buf, info)
			if err != nil {
				return 0, err
			}
			m.currentWay = wb
			return stWay, nil
		})
	case "relation":
		return m.enterObject(MaskRelation, attrs, func(info model.Info) (state, error) {
			rb, err := builder.BeginRelation(m.buf, info)
			if err != nil {
				return 0, err
			}
			m.currentRelation = rb
			return stRelation, nil
		})
	case "changeset":
		return m.enterObject(MaskChangeset, attrs, func(info model.Info) (state, error) {
			bounds := model.NewBox()
			bounds.Extend(model.LocationFromStrings(attrs["min_lon"], attrs["min_lat"]))
			bounds.Extend(model.LocationFromStrings(attrs["max_lon"], attrs["max_lat"]))
			cb, err := builder.BeginChangeset(m.buf, info, bounds,
				parseTimestamp(attrs["created_at"]), parseTimestamp(attrs["closed_at"]),
				parseBool(attrs["open"], false),
				parseUint32(attrs["num_changes"]), parseUint32(attrs["comments_count"]))
			if err != nil {
				return 0, err
			}
			m.currentChangeset = cb
			return stChangeset, nil
		})
	case "bounds":
		box := model.NewBox()
		box.Extend(model.LocationFromStrings(attrs["minlon"], attrs["minlat"]))
		box.Extend(model.LocationFromStrings(attrs["maxlon"], attrs["maxlat"]))
		m.header.ExtendBox(box)
		return stLeaf, nil
	case "delete":
		m.inDeleteSection = true
		return stTop, nil
	case "create", "modify":
		m.inDeleteSection = false
		return stTop, nil
	default:
		return stInObject, nil
	}
}

// enterObject resolves the header promise (first object also resolves a
// still-pending header), then either opens the matching builder or
// transitions to the corresponding Ignored* state, per spec §4.4.
func (m *Machine) enterObject(kind Mask, attrs map[string]string, open func(model.Info) (state, error)) (state, error) {
	m.resolveHeader()

	if !m.mask.has(kind) {
		return ignoredStateFor(kind), nil
	}

	info := sharedInfo(attrs, m.inDeleteSection)

	next, err := open(info)
	if err == arena.Overflow && m.buf.Committed() > 0 {
		// Nothing has been written for this entity yet: flush what is
		// already committed and retry once in the emptied buffer (spec
		// §7, BufferOverflow). A second overflow against an empty
		// buffer is fatal.
		m.flush(m.buf.Take())
		next, err = open(info)
	}
	return next, err
}

func (m *Machine) enterNode(name string, attrs map[string]string) (state, error) {
	if name != "tag" {
		return stInObject, nil
	}
	tags, err := m.currentNode.OpenTagList()
	if err != nil {
		return 0, err
	}
	if err := tags.Add(attrs["k"], attrs["v"]); err != nil {
		return 0, err
	}
	return stLeaf, nil
}

func (m *Machine) enterWay(name string, attrs map[string]string) (state, error) {
	switch name {
	case "nd":
		nodes, err := m.currentWay.OpenWayNodeList()
		if err != nil {
			return 0, err
		}
		if err := nodes.Add(model.ID(parseInt64(attrs["ref"]))); err != nil {
			return 0, err
		}
		return stLeaf, nil
	case "tag":
		tags, err := m.currentWay.OpenTagList()
		if err != nil {
			return 0, err
		}
		if err := tags.Add(attrs["k"], attrs["v"]); err != nil {
			return 0, err
		}
		return stLeaf, nil
	default:
		return stInObject, nil
	}
}

func (m *Machine) enterRelation(name string, attrs map[string]string) (state, error) {
	switch name {
	case "member":
		raw := attrs["type"]
		var typeChar byte
		if len(raw) > 0 {
			typeChar = raw[0]
		}
		memberType, ok := model.MemberTypeFromChar(typeChar)
		if !ok {
			return 0, &ErrUnknownMemberType{Raw: raw}
		}
		ref := parseInt64(attrs["ref"])
		if ref == 0 {
			return 0, ErrMissingRef
		}
		members, err := m.currentRelation.OpenRelationMemberList()
		if err != nil {
			return 0, err
		}
		if err := members.Add(model.Member{Type: memberType, Ref: model.ID(ref), Role: attrs["role"]}); err != nil {
			return 0, err
		}
		return stLeaf, nil
	case "tag":
		tags, err := m.currentRelation.OpenTagList()
		if err != nil {
			return 0, err
		}
		if err := tags.Add(attrs["k"], attrs["v"]); err != nil {
			return 0, err
		}
		return stLeaf, nil
	default:
		return stInObject, nil
	}
}

func (m *Machine) enterChangeset(name string, attrs map[string]string) (state, error) {
	switch name {
	case "tag":
		tags, err := m.currentChangeset.OpenTagList()
		if err != nil {
			return 0, err
		}
		if err := tags.Add(attrs["k"], attrs["v"]); err != nil {
			return 0, err
		}
		return stLeaf, nil
	case "discussion":
		d, err := m.currentChangeset.OpenDiscussion()
		if err != nil {
			return 0, err
		}
		m.currentDiscussion = d
		return stDiscussion, nil
	default:
		return stInObject, nil
	}
}

func (m *Machine) enterDiscussion(name string, attrs map[string]string) (state, error) {
	if name != "comment" {
		return stInObject, nil
	}
	m.currentDiscussion.AddComment(parseTimestamp(attrs["date"]), model.UID(parseUint32(attrs["uid"])), attrs["user"])
	return stComment, nil
}

func (m *Machine) enterComment(name string, _ map[string]string) (state, error) {
	if name != "text" {
		return stInObject, nil
	}
	m.scratch = ""
	return stCommentText, nil
}
