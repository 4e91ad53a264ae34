// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
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

package asm

import (
	"io"
	"sort"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/db47h/intcode/vm"
)

const maxErrors = 10

func isIdentRune(ch rune, i int) bool {
	return unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch)
}

type labelSite struct {
	pos     scanner.Position
	address int
}

type label struct {
	labelSite
	uses []labelSite
}

type parser struct {
	img    []vm.Cell
	size   int
	pc     int
	s      scanner.Scanner
	labels map[string]*label
	consts map[string]vm.Cell
	errs   ErrAsm
}

func newParser() *parser {
	return &parser{
		labels: make(map[string]*label),
		consts: make(map[string]vm.Cell),
	}
}

func (p *parser) error(pos scanner.Position, msg string) {
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, ErrAsmEntry{pos, msg})
	}
}

func (p *parser) write(v vm.Cell) {
	for p.pc >= len(p.img) {
		p.img = append(p.img, make([]vm.Cell, 256)...)
	}
	p.img[p.pc] = v
	p.pc++
	if p.pc > p.size {
		p.size = p.pc
	}
}

func (p *parser) useLabel(name string, pos scanner.Position) {
	lbl := p.labels[name]
	if lbl == nil {
		lbl = &label{labelSite{pos, -1}, nil}
		p.labels[name] = lbl
	}
	lbl.uses = append(lbl.uses, labelSite{pos, p.pc})
}

func (p *parser) defineLabel(name string, pos scanner.Position) {
	switch {
	case name == "":
		p.error(pos, "empty label name")
		return
	case name == "rb":
		p.error(pos, "reserved label name: rb")
		return
	}
	if _, ok := p.consts[name]; ok {
		p.error(pos, "label redefinition: "+name+", previously defined as a constant")
		return
	}
	l := p.labels[name]
	if l == nil {
		p.labels[name] = &label{labelSite{pos, p.pc}, nil}
		return
	}
	if l.address != -1 {
		p.error(pos, "label redefinition: "+name+", previous definition here: "+l.pos.String())
		return
	}
	l.labelSite = labelSite{pos, p.pc}
}

// token returns the next token, skipping comments.
func (p *parser) token() (s string, pos scanner.Position, ok bool) {
	for {
		tok := p.s.Scan()
		if tok == scanner.EOF {
			return "", p.s.Position, false
		}
		s, pos = p.s.TokenText(), p.s.Position
		if s != "(" {
			return s, pos, true
		}
		for {
			if tok = p.s.Scan(); tok == scanner.EOF {
				p.error(pos, "unterminated comment")
				return "", p.s.Position, false
			}
			if p.s.TokenText() == ")" {
				break
			}
		}
	}
}

// number converts an integer literal, character literal or named constant.
func (p *parser) number(s string) (vm.Cell, bool) {
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return vm.Cell(n), true
	}
	if len(s) > 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		r, _, tail, err := strconv.UnquoteChar(s[1:len(s)-1], '\'')
		if err == nil && tail == "" {
			return vm.Cell(r), true
		}
		return 0, false
	}
	v, ok := p.consts[s]
	return v, ok
}

func isLabelName(s string) bool {
	if s == "" || s == "rb" || strings.ContainsAny(s, "#:'") {
		return false
	}
	r := rune(s[0])
	return r != '.' && r != '-' && r != '+' && !unicode.IsDigit(r)
}

// value writes a value that may be a label reference.
func (p *parser) value(s string, pos scanner.Position) {
	if v, ok := p.number(s); ok {
		p.write(v)
		return
	}
	if !isLabelName(s) {
		p.error(pos, "invalid value: "+s)
		p.write(0)
		return
	}
	p.useLabel(s, pos)
	p.write(0)
}

// param parses an instruction parameter. It only decodes the mode and
// returns a function that writes the parameter value, since the instruction
// word must be written first.
func (p *parser) param(s string, pos scanner.Position) (vm.Mode, func()) {
	switch {
	case strings.HasPrefix(s, "#"):
		return vm.Immediate, func() { p.value(s[1:], pos) }
	case s == "rb":
		return vm.Relative, func() { p.write(0) }
	case strings.HasPrefix(s, "rb+") || strings.HasPrefix(s, "rb-"):
		v, ok := p.number(s[2:])
		if !ok && s[2] == '+' {
			v, ok = p.number(s[3:])
		}
		if !ok && s[2] == '-' {
			v, ok = p.number(s[3:])
			v = -v
		}
		if !ok {
			p.error(pos, "invalid relative offset: "+s)
		}
		return vm.Relative, func() { p.write(v) }
	}
	return vm.Position, func() { p.value(s, pos) }
}

func (p *parser) instruction(op vm.Opcode, pos scanner.Position) {
	n := op.Arity()
	modes := make([]vm.Mode, 0, n)
	vals := make([]func(), 0, n)
	for i := 0; i < n; i++ {
		s, ppos, ok := p.token()
		if !ok {
			p.error(pos, "missing parameter for "+op.String())
			return
		}
		if s[0] == ':' || s[0] == '.' {
			p.error(ppos, "unexpected "+s+" as parameter of "+op.String())
			return
		}
		m, f := p.param(s, ppos)
		if m == vm.Immediate && isTarget(op, i) {
			p.error(ppos, "immediate mode write target: "+s)
		}
		modes = append(modes, m)
		vals = append(vals, f)
	}
	p.write(vm.Encode(op, modes...))
	for _, f := range vals {
		f()
	}
}

// constant parses a value that must be known at this point of the assembly.
func (p *parser) constant(directive string) (vm.Cell, bool) {
	s, pos, ok := p.token()
	if !ok {
		p.error(pos, directive+": missing value")
		return 0, false
	}
	v, ok := p.number(s)
	if !ok {
		p.error(pos, directive+": expected integer, character or constant, got "+s)
	}
	return v, ok
}

func (p *parser) directive(d string, pos scanner.Position) {
	switch d {
	case ".org":
		if v, ok := p.constant(d); ok {
			if v < 0 || v > 1<<32 {
				p.error(pos, ".org: address out of range")
				return
			}
			p.pc = int(v)
		}
	case ".dat":
		s, vpos, ok := p.token()
		if !ok {
			p.error(pos, ".dat: missing value")
			return
		}
		p.value(s, vpos)
	case ".equ":
		name, npos, ok := p.token()
		if !ok || !isLabelName(name) {
			p.error(npos, ".equ: expected identifier, got "+name)
			return
		}
		if l, ok := p.labels[name]; ok {
			p.error(npos, ".equ: redefinition of "+name+", previously defined or used as a label here: "+l.pos.String())
			return
		}
		if v, ok := p.constant(d); ok {
			p.consts[name] = v
		}
	default:
		p.error(pos, "unknown directive: "+d)
	}
}

// Parse does the parsing and compiling.
func (p *parser) Parse(name string, r io.Reader) ([]vm.Cell, error) {
	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		pos := s.Position
		if !pos.IsValid() {
			pos = s.Pos()
		}
		p.error(pos, msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = name

	for {
		s, pos, ok := p.token()
		if !ok {
			break
		}
		if op, ok := vm.OpcodeByName(s); ok {
			p.instruction(op, pos)
			continue
		}
		switch s[0] {
		case ':':
			p.defineLabel(s[1:], pos)
		case '.':
			p.directive(s, pos)
		default:
			// raw value
			if v, ok := p.number(s); ok {
				p.write(v)
				continue
			}
			p.error(pos, "unknown instruction: "+s)
		}
	}

	// resolve labels
	names := make([]string, 0, len(p.labels))
	for n := range p.labels {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		l := p.labels[n]
		if l.address == -1 {
			p.error(l.uses[0].pos, "undefined label "+n)
			continue
		}
		for _, u := range l.uses {
			p.img[u.address] = vm.Cell(l.address)
		}
	}

	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return p.img[:p.size], nil
}
