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

import "strconv"

// Cell is the raw type stored in a memory location.
type Cell int64

func (c Cell) String() string {
	return strconv.FormatInt(int64(c), 10)
}

type state int

const (
	running state = iota
	halted
	failed
)

// Instance represents an Intcode VM instance.
type Instance struct {
	PC       int     // Program Counter (aka. Instruction Pointer)
	RB       Cell    // Relative base
	Mem      *Memory // Memory
	input    Source
	output   Sink
	insCount int64
	maxSteps int64
	state    state
}

// Option interface
type Option func(*Instance) error

// Input sets the Source used by IN instructions, replacing any previously set
// Source. Without a Source, IN instructions fail with ErrReadInput.
func Input(s Source) Option {
	return func(i *Instance) error { i.input = s; return nil }
}

// Output sets the Sink receiving the values of OUT instructions. Without a
// Sink, output values are discarded.
func Output(s Sink) Option {
	return func(i *Instance) error { i.output = s; return nil }
}

// MaxSteps limits the number of instructions executed by Run. Reaching the
// limit fails with ErrStepLimit. A limit <= 0 disables it, which is the
// default.
func MaxSteps(n int64) Option {
	return func(i *Instance) error { i.maxSteps = n; return nil }
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new Intcode Virtual Machine instance.
//
// The program is copied into the instance memory, so the same program can be
// used to create any number of independent instances.
//
// Options will be set by calling SetOptions.
func New(program []Cell, opts ...Option) (*Instance, error) {
	return NewWithMemory(NewMemory(append([]Cell(nil), program...)), opts...)
}

// NewWithMemory creates a new Intcode Virtual Machine instance that takes
// ownership of mem.
func NewWithMemory(mem *Memory, opts ...Option) (*Instance, error) {
	i := &Instance{Mem: mem}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// PushInput sets s as the current input Source. When s reaches end-of-stream,
// the previously set Source will be used.
func (i *Instance) PushInput(s Source) {
	switch in := i.input.(type) {
	case nil:
		i.input = s
	case *multiSource:
		in.push(s)
	default:
		i.input = &multiSource{[]Source{s, i.input}}
	}
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Halted returns true if the program executed a HLT instruction.
func (i *Instance) Halted() bool {
	return i.state == halted
}

// Failed returns true if the last call to Run returned an error.
func (i *Instance) Failed() bool {
	return i.state == failed
}
