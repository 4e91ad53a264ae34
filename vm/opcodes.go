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

package vm

// Opcode is an Intcode operation selector, the two low decimal digits of an
// instruction word.
type Opcode Cell

// Intcode opcodes.
const (
	OpAdd         Opcode = 1
	OpMul         Opcode = 2
	OpIn          Opcode = 3
	OpOut         Opcode = 4
	OpJumpIfTrue  Opcode = 5
	OpJumpIfFalse Opcode = 6
	OpLessThan    Opcode = 7
	OpEquals      Opcode = 8
	OpAdjustRB    Opcode = 9
	OpHalt        Opcode = 99
)

var opcodes = [...]struct {
	name  string
	arity int
}{
	OpAdd:         {"add", 3},
	OpMul:         {"mul", 3},
	OpIn:          {"in", 1},
	OpOut:         {"out", 1},
	OpJumpIfTrue:  {"jnz", 2},
	OpJumpIfFalse: {"jz", 2},
	OpLessThan:    {"lt", 3},
	OpEquals:      {"eq", 3},
	OpAdjustRB:    {"arb", 1},
	OpHalt:        {"hlt", 0},
}

// Valid returns true if op is a known opcode.
func (op Opcode) Valid() bool {
	return op > 0 && int(op) < len(opcodes) && opcodes[op].name != ""
}

// Arity returns the number of parameters of op.
func (op Opcode) Arity() int {
	if !op.Valid() {
		return 0
	}
	return opcodes[op].arity
}

// String returns the assembler mnemonic of op.
func (op Opcode) String() string {
	if !op.Valid() {
		return "op(" + Cell(op).String() + ")"
	}
	return opcodes[op].name
}

// OpcodeByName returns the opcode for the given mnemonic.
func OpcodeByName(name string) (Opcode, bool) {
	op, ok := opcodeIndex[name]
	return op, ok
}

var opcodeIndex = make(map[string]Opcode)

func init() {
	for i, v := range opcodes {
		if v.name != "" {
			opcodeIndex[v.name] = Opcode(i)
		}
	}
}

// Mode is a parameter addressing mode.
type Mode int

// Parameter modes.
const (
	Position Mode = iota
	Immediate
	Relative
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	}
	return "mode(" + Cell(m).String() + ")"
}

// Instruction is a raw instruction word.
type Instruction Cell

// Opcode decodes the opcode of the instruction.
func (ins Instruction) Opcode() (Opcode, error) {
	op := Opcode(ins % 100)
	if !op.Valid() {
		return 0, &DecodeError{ErrUnknownOpcode, Cell(op)}
	}
	return op, nil
}

// Modes returns the parameter modes of the instruction.
func (ins Instruction) Modes() Modes {
	return Modes{Cell(ins / 100)}
}

// Modes yields the parameter modes of an instruction, first parameter first.
// Once the encoded digits are exhausted, Next keeps returning Position.
type Modes struct {
	v Cell
}

// Next returns the mode of the next parameter.
func (m *Modes) Next() (Mode, error) {
	d := m.v % 10
	m.v /= 10
	switch d {
	case 0, 1, 2:
		return Mode(d), nil
	}
	return Position, &DecodeError{ErrUnknownMode, d}
}

// Encode returns the instruction word for op with the given parameter modes.
func Encode(op Opcode, modes ...Mode) Cell {
	v := Cell(op)
	f := Cell(100)
	for _, m := range modes {
		v += Cell(m) * f
		f *= 10
	}
	return v
}
