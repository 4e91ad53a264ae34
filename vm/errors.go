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
	"strconv"

	"github.com/pkg/errors"
)

// Errors returned by the VM. Run wraps them with the faulting program counter,
// use errors.Is to test for them.
var (
	ErrUnknownOpcode     = errors.New("unknown opcode")
	ErrUnknownMode       = errors.New("unknown parameter mode")
	ErrWriteImmediate    = errors.New("parameter write in immediate mode")
	ErrExpectedParameter = errors.New("expected parameter, but the memory stops here")
	ErrReadInput         = errors.New("expected input")
	ErrWriteOutput       = errors.New("output failed")
	ErrReadOutOfMemory   = errors.New("attempted to read outside of memory")
	ErrWriteOutOfMemory  = errors.New("attempted to write outside of memory")
	ErrArithmetic        = errors.New("arithmetic overflow")
	ErrInvalidJump       = errors.New("invalid jump target")
	ErrParseProgram      = errors.New("malformed program")
	ErrHalted            = errors.New("instance is not runnable")
	ErrStepLimit         = errors.New("step limit reached")
	ErrClosed            = errors.New("channel closed")
)

// DecodeError reports an instruction word that could not be decoded. Err is
// either ErrUnknownOpcode or ErrUnknownMode.
type DecodeError struct {
	Err   error
	Value Cell
}

func (e *DecodeError) Error() string {
	return e.Err.Error() + ": " + strconv.FormatInt(int64(e.Value), 10)
}

// Unwrap returns the sentinel error.
func (e *DecodeError) Unwrap() error { return e.Err }

// Cause implements the causer interface of github.com/pkg/errors.
func (e *DecodeError) Cause() error { return e.Err }

// IOError reports a failure of the attached Source or Sink. Kind is either
// ErrReadInput or ErrWriteOutput, Err is the error returned by the Source or
// Sink.
//
// errors.Is matches both Kind and Err, while errors.Cause returns Err. For
// instance, an exhausted input reports io.EOF as its cause.
type IOError struct {
	Kind error
	Err  error
}

func (e *IOError) Error() string {
	return e.Kind.Error() + ": " + e.Err.Error()
}

// Unwrap returns both Kind and Err.
func (e *IOError) Unwrap() []error { return []error{e.Kind, e.Err} }

// Cause implements the causer interface of github.com/pkg/errors.
func (e *IOError) Cause() error { return e.Err }
