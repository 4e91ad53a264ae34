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
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/db47h/intcode/internal/xio"
	"github.com/db47h/intcode/vm"
)

// ErrAsmEntry is a single assembler error.
type ErrAsmEntry struct {
	Pos scanner.Position
	Msg string
}

func (e ErrAsmEntry) String() string {
	return e.Pos.String() + ": " + e.Msg
}

// ErrAsm is the error type returned by Assemble. It holds up to 10 errors in
// the order they were found, undefined labels last.
type ErrAsm []ErrAsmEntry

func (e ErrAsm) Error() string {
	s := make([]string, len(e))
	for i, v := range e {
		s[i] = v.String()
	}
	return strings.Join(s, "\n")
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting program and error if any.
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value.
func Assemble(name string, r io.Reader) (img []vm.Cell, err error) {
	img, err = newParser().Parse(name, r)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// isTarget reports whether parameter n of op is a write target.
func isTarget(op vm.Opcode, n int) bool {
	switch op {
	case vm.OpAdd, vm.OpMul, vm.OpLessThan, vm.OpEquals:
		return n == 2
	case vm.OpIn:
		return n == 0
	}
	return false
}

// decode decodes the instruction at address pc. ok is false if the word at pc
// cannot be executed as is, or would not be assembled to the same value.
func decode(i []vm.Cell, pc int) (op vm.Opcode, modes []vm.Mode, ok bool) {
	ins := vm.Instruction(i[pc])
	op, err := ins.Opcode()
	if err != nil || pc+op.Arity() >= len(i) {
		return op, nil, false
	}
	m := ins.Modes()
	modes = make([]vm.Mode, op.Arity())
	for n := range modes {
		if modes[n], err = m.Next(); err != nil || (modes[n] == vm.Immediate && isTarget(op, n)) {
			return op, nil, false
		}
	}
	return op, modes, vm.Encode(op, modes...) == i[pc]
}

func appendParam(b []byte, m vm.Mode, v vm.Cell) []byte {
	switch m {
	case vm.Immediate:
		b = append(b, '#')
	case vm.Relative:
		b = append(b, "rb"...)
		if v == 0 {
			return b
		}
		if v > 0 {
			b = append(b, '+')
		}
	}
	return strconv.AppendInt(b, int64(v), 10)
}

// Disassemble writes a disassembly of the cells in the given slice at position
// pc to the specified io.Writer and returns the position of the next
// instruction and any write error.
//
// Words that do not decode to a valid instruction, including instructions
// truncated by the end of the slice, are written as a .dat directive.
func Disassemble(i []vm.Cell, pc int, w io.Writer) (next int, err error) {
	ew := xio.NewErrWriter(w)
	op, modes, ok := decode(i, pc)
	if !ok {
		fmt.Fprintf(ew, ".dat %d", i[pc])
		return pc + 1, ew.Err
	}
	b := append(make([]byte, 0, 64), op.String()...)
	for n, m := range modes {
		b = append(b, ' ')
		b = appendParam(b, m, i[pc+1+n])
	}
	ew.Write(b)
	return pc + 1 + len(modes), ew.Err
}

// DisassembleAll writes a disassembly of all cells in the given slice to
// the specified io.Writer. The base argument specifies the real address of the
// first cell (i[0]). It will return any write error.
func DisassembleAll(i []vm.Cell, base int, w io.Writer) error {
	ew := xio.NewErrWriter(w)
	for pc := 0; pc < len(i); {
		fmt.Fprintf(ew, "% 10d\t", base+pc)
		pc, _ = Disassemble(i, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
