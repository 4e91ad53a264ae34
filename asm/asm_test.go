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

package asm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
)

func TestAssemble(t *testing.T) {
	code := `
	.equ SIZE 3
	.equ NL '\n'
:start	arb #10
	add rb-1 #SIZE rb+2	( relative write )
	out rb
	out #NL
	jz #0 #start
	hlt
	.org 20
	.dat start
	42
`
	img, err := asm.Assemble("test", strings.NewReader(code))
	if err != nil {
		t.Fatal(err)
	}
	exp := []vm.Cell{
		109, 10,
		21201, -1, 3, 2,
		204, 0,
		104, 10,
		1106, 0, 0,
		99,
		0, 0, 0, 0, 0, 0,
		0,
		42,
	}
	if len(img) != len(exp) {
		t.Fatalf("expected %v, got %v", exp, img)
	}
	for i := range exp {
		if img[i] != exp[i] {
			t.Fatalf("@%d: expected %v, got %v", i, exp, img)
		}
	}
}

// check some errors. We're not checking the full messages, rather that they
// point at the correct place.
func TestAssemble_errors(t *testing.T) {
	tests := [...]struct {
		code string
		msg  string
		line int
	}{
		{"add 1 2 #3", "immediate mode write target: #3", 1},
		{"in #foo\n:foo", "immediate mode write target: #foo", 1},
		{"hlt\n  foo", "unknown instruction: foo", 2},
		{"jz 1 #x", "undefined label x", 1},
		{"out", "missing parameter for out", 1},
		{"jz 1 .dat 2", "unexpected .dat as parameter of jz", 1},
		{".org foo", ".org: expected integer", 1},
		{".org -1", ".org: address out of range", 1},
		{":a\n:a", "label redefinition: a", 2},
		{":rb", "reserved label name: rb", 1},
		{".equ X 1\n:X", "label redefinition: X", 2},
		{".equ 1x 2", ".equ: expected identifier", 1},
		{"out rb+", "invalid relative offset: rb+", 1},
		{"\n.foo", "unknown directive: .foo", 2},
		{"( open comment", "unterminated comment", 1},
		{"out 1+2", "invalid value: 1+2", 1},
	}
	for _, test := range tests {
		_, err := asm.Assemble("test_errors", strings.NewReader(test.code))
		errs, ok := err.(asm.ErrAsm)
		if !ok || len(errs) == 0 {
			t.Errorf("%q: expected ErrAsm, got %v", test.code, err)
			continue
		}
		e := errs[0]
		if !strings.HasPrefix(e.Msg, test.msg) {
			t.Errorf("%q: expected message %q, got %q", test.code, test.msg, e.Msg)
		}
		if e.Pos.Line != test.line || e.Pos.Filename != "test_errors" {
			t.Errorf("%q: bad error position %v", test.code, e.Pos)
		}
	}
}

func TestAssemble_maxErrors(t *testing.T) {
	_, err := asm.Assemble("test", strings.NewReader(strings.Repeat("foo ", 20)))
	if errs := err.(asm.ErrAsm); len(errs) != 10 {
		t.Errorf("expected 10 errors, got %d", len(errs))
	}
}

var roundTrip = []string{
	"109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99",
	"3,21,1008,21,8,20,1005,20,22,107,8,21,20,1006,20,31,1106,0,36,98,0,0,1002,21,125,20,4,20,1105,1,46,104,999,1105,1,46,1101,1000,1,20,4,20,1105,1,46,98,99",
	"3,52,1001,52,-5,52,3,53,1,52,56,54,1007,54,5,55,1005,55,26,1001,54,-5,54,1105,1,12,1,53,54,53,1008,54,0,55,1001,55,1,55,2,53,55,53,4,53,1001,56,-1,56,1005,56,6,99,0,0,0,0,10",
	"1101,1,2,3,11101,4,5,6,10001,-9223372036854775808,1102",
	"22201,-3,4,0,-1,203,-7",
}

// Disassembling any program and assembling the result must reproduce the
// program.
func TestDisassemble_roundTrip(t *testing.T) {
	for _, src := range roundTrip {
		p, err := vm.Parse(src)
		if err != nil {
			t.Fatal(err)
		}
		var b bytes.Buffer
		for pc := 0; pc < len(p); {
			if pc, err = asm.Disassemble(p, pc, &b); err != nil {
				t.Fatal(err)
			}
			b.WriteByte('\n')
		}
		img, err := asm.Assemble("disasm", &b)
		if err != nil {
			t.Errorf("%s: %v", src, err)
			continue
		}
		if vm.Format(img) != src {
			t.Errorf("round trip failed.\nExpected: %s\nGot:      %s", src, vm.Format(img))
		}
	}
}

func TestDisassemble(t *testing.T) {
	tests := [...]struct {
		prog []vm.Cell
		out  string
		next int
	}{
		{[]vm.Cell{21201, -1, 3, 2}, "add rb-1 #3 rb+2", 4},
		{[]vm.Cell{204, 0}, "out rb", 2},
		{[]vm.Cell{1101, 1, 2}, ".dat 1101", 1},
		{[]vm.Cell{11101, 1, 2, 3}, ".dat 11101", 1},
		{[]vm.Cell{301, 1, 2, 3}, ".dat 301", 1},
		{[]vm.Cell{100099}, ".dat 100099", 1},
		{[]vm.Cell{-4}, ".dat -4", 1},
		{[]vm.Cell{99}, "hlt", 1},
	}
	for _, test := range tests {
		var b strings.Builder
		next, err := asm.Disassemble(test.prog, 0, &b)
		if err != nil {
			t.Fatal(err)
		}
		if b.String() != test.out || next != test.next {
			t.Errorf("%v: expected %q, %d, got %q, %d", test.prog, test.out, test.next, b.String(), next)
		}
	}
}
