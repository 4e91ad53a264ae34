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

// Package xio provides the sticky error writer used by the intcode tools to
// write disassembly listings and memory dumps. Callers write freely and check
// the Err field once done.
package xio

import (
	"io"
	"strconv"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// ErrWriter wraps an io.Writer and remembers the first write error. Once it
// is set, writes are skipped and return that error.
type ErrWriter struct {
	w   io.Writer
	buf []byte
	Err error
}

// NewErrWriter returns an ErrWriter writing to w. Nested calls share state: if
// w already is an *ErrWriter, it is returned as is.
func NewErrWriter(w io.Writer) *ErrWriter {
	if ew, ok := w.(*ErrWriter); ok {
		return ew
	}
	return &ErrWriter{w: w}
}

func (ew *ErrWriter) Write(p []byte) (int, error) {
	if ew.Err != nil {
		return 0, ew.Err
	}
	n, err := ew.w.Write(p)
	if err != nil {
		ew.Err = errors.Wrap(err, "write failed")
	}
	return n, ew.Err
}

// WriteString implements io.StringWriter.
func (ew *ErrWriter) WriteString(s string) (int, error) {
	return ew.Write([]byte(s))
}

// WriteCells writes cells in program text form, comma separated, followed by
// a new line.
func (ew *ErrWriter) WriteCells(cells []vm.Cell) error {
	ew.buf = ew.buf[:0]
	for n, v := range cells {
		if n > 0 {
			ew.buf = append(ew.buf, ',')
		}
		ew.buf = strconv.AppendInt(ew.buf, int64(v), 10)
		if len(ew.buf) >= 4096 {
			ew.Write(ew.buf)
			ew.buf = ew.buf[:0]
		}
	}
	ew.buf = append(ew.buf, '\n')
	ew.Write(ew.buf)
	return ew.Err
}
