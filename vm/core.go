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

import (
	"math"

	"github.com/pkg/errors"
)

type param struct {
	mode Mode
	raw  Cell
}

// next fetches the next parameter of the current instruction.
func (i *Instance) next(m *Modes) (param, error) {
	mode, err := m.Next()
	if err != nil {
		return param{}, err
	}
	if i.PC >= i.Mem.Len() {
		return param{}, ErrExpectedParameter
	}
	raw := i.Mem.Get(i.PC)
	i.PC++
	return param{mode, raw}, nil
}

func (i *Instance) address(p param, oob error) (int, error) {
	a := p.raw
	if p.mode == Relative {
		var err error
		if a, err = add(i.RB, a); err != nil {
			return 0, oob
		}
	}
	if a < 0 || a > math.MaxInt {
		return 0, oob
	}
	return int(a), nil
}

// read resolves p for reading.
func (i *Instance) read(p param) (Cell, error) {
	if p.mode == Immediate {
		return p.raw, nil
	}
	a, err := i.address(p, ErrReadOutOfMemory)
	if err != nil {
		return 0, err
	}
	return i.Mem.Get(a), nil
}

// ptr resolves p as a write target.
func (i *Instance) ptr(p param) (*Cell, error) {
	if p.mode == Immediate {
		return nil, ErrWriteImmediate
	}
	a, err := i.address(p, ErrWriteOutOfMemory)
	if err != nil {
		return nil, err
	}
	return i.Mem.Ptr(a), nil
}

// operands fetches and reads two parameters.
func (i *Instance) operands(m *Modes) (a, b Cell, err error) {
	var pa, pb param
	if pa, err = i.next(m); err != nil {
		return
	}
	if pb, err = i.next(m); err != nil {
		return
	}
	if a, err = i.read(pa); err != nil {
		return
	}
	b, err = i.read(pb)
	return
}

// target fetches a parameter and resolves it as a write target.
func (i *Instance) target(m *Modes) (*Cell, error) {
	p, err := i.next(m)
	if err != nil {
		return nil, err
	}
	return i.ptr(p)
}

func add(a, b Cell) (Cell, error) {
	c := a + b
	if (b > 0 && c < a) || (b < 0 && c > a) {
		return 0, ErrArithmetic
	}
	return c, nil
}

func mul(a, b Cell) (Cell, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	c := a * b
	if c/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, ErrArithmetic
	}
	return c, nil
}

func (i *Instance) jump(to Cell) error {
	if to < 0 || to > math.MaxInt {
		return errors.Wrapf(ErrInvalidJump, "%d", to)
	}
	i.PC = int(to)
	return nil
}

func (i *Instance) in() (Cell, error) {
	if i.input == nil {
		return 0, errors.Wrap(ErrReadInput, "no input attached")
	}
	v, err := i.input.Next()
	if err != nil {
		return 0, &IOError{ErrReadInput, err}
	}
	return v, nil
}

func (i *Instance) out(v Cell) error {
	if i.output == nil {
		return nil
	}
	if err := i.output.Accept(v); err != nil {
		return &IOError{ErrWriteOutput, err}
	}
	return nil
}

// step executes a single instruction and reports whether the VM halted.
func (i *Instance) step() (bool, error) {
	op, err := Instruction(i.Mem.Get(i.PC)).Opcode()
	if err != nil {
		return false, err
	}
	modes := Instruction(i.Mem.Get(i.PC)).Modes()
	i.PC++
	switch op {
	case OpAdd, OpMul, OpLessThan, OpEquals:
		a, b, err := i.operands(&modes)
		if err != nil {
			return false, err
		}
		dst, err := i.target(&modes)
		if err != nil {
			return false, err
		}
		switch op {
		case OpAdd:
			*dst, err = add(a, b)
		case OpMul:
			*dst, err = mul(a, b)
		case OpLessThan:
			*dst = 0
			if a < b {
				*dst = 1
			}
		case OpEquals:
			*dst = 0
			if a == b {
				*dst = 1
			}
		}
		return false, err
	case OpIn:
		dst, err := i.target(&modes)
		if err != nil {
			return false, err
		}
		v, err := i.in()
		if err != nil {
			return false, err
		}
		*dst = v
	case OpOut:
		p, err := i.next(&modes)
		if err != nil {
			return false, err
		}
		v, err := i.read(p)
		if err != nil {
			return false, err
		}
		return false, i.out(v)
	case OpJumpIfTrue, OpJumpIfFalse:
		a, b, err := i.operands(&modes)
		if err != nil {
			return false, err
		}
		if (a != 0) == (op == OpJumpIfTrue) {
			return false, i.jump(b)
		}
	case OpAdjustRB:
		p, err := i.next(&modes)
		if err != nil {
			return false, err
		}
		v, err := i.read(p)
		if err != nil {
			return false, err
		}
		if i.RB, err = add(i.RB, v); err != nil {
			return false, err
		}
	case OpHalt:
		return true, nil
	}
	return false, nil
}

// Run starts execution of the VM and returns when the program halts or on the
// first error.
//
// If an error occurs, the PC will point to the instruction that triggered the
// error and the error message will contain its address. The instance cannot
// be resumed after an error: memory and registers are left as they were at
// the time of the error, which is useful for post-mortem inspection.
//
// Once the program halted, the PC points past the HLT instruction. Calling Run
// again on a halted or failed instance returns ErrHalted.
func (i *Instance) Run() (err error) {
	if i.state != running {
		return ErrHalted
	}
	for {
		if i.maxSteps > 0 && i.insCount >= i.maxSteps {
			i.state = failed
			return errors.Wrapf(ErrStepLimit, "@pc=%d after %d instructions", i.PC, i.insCount)
		}
		pc := i.PC
		done, err := i.step()
		if err != nil {
			i.PC = pc
			i.state = failed
			return errors.Wrapf(err, "@pc=%d", pc)
		}
		i.insCount++
		if done {
			i.state = halted
			return nil
		}
	}
}
