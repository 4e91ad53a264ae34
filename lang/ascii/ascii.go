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

// Package ascii provides I/O adapters for Intcode programs that communicate
// with ASCII text, one character per value.
//
// Values outside of the ASCII range are not characters. Programs use them to
// report numeric results, so Decode and the Sink returned by NewSink render
// them as decimal numbers on a line of their own.
package ascii

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/db47h/intcode/vm"
)

const eot = 4 // CTRL-D

func isASCII(v vm.Cell) bool { return v >= 0 && v < 128 }

// Encode returns the values for the characters of s. Characters outside of
// the ASCII range are encoded as their Unicode code point.
func Encode(s string) []vm.Cell {
	cells := make([]vm.Cell, 0, len(s))
	for _, r := range s {
		cells = append(cells, vm.Cell(r))
	}
	return cells
}

// Decode returns the text form of the given values.
func Decode(cells []vm.Cell) string {
	var b strings.Builder
	for _, v := range cells {
		if isASCII(v) {
			b.WriteByte(byte(v))
			continue
		}
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
			b.WriteByte('\n')
		}
		b.WriteString(strconv.FormatInt(int64(v), 10))
		b.WriteByte('\n')
	}
	return b.String()
}

type source struct {
	r *bufio.Reader
}

// NewSource returns a vm.Source reading characters from r. A carriage return
// is read as a new line and an EOT character (CTRL-D) as end-of-stream, which
// allows terminals in raw mode to signal the end of input.
func NewSource(r io.Reader) vm.Source {
	return source{bufio.NewReader(r)}
}

func (s source) Next() (vm.Cell, error) {
	c, err := s.r.ReadByte()
	if err != nil {
		return 0, err
	}
	switch c {
	case eot:
		return 0, io.EOF
	case '\r':
		return '\n', nil
	}
	return vm.Cell(c), nil
}

type sink struct {
	w   io.Writer
	b   []byte
	eol bool
}

// NewSink returns a vm.Sink writing characters to w. Each value is written as
// soon as it is received.
func NewSink(w io.Writer) vm.Sink {
	return &sink{w: w, eol: true}
}

func (s *sink) Accept(v vm.Cell) error {
	s.b = s.b[:0]
	if isASCII(v) {
		s.b = append(s.b, byte(v))
	} else {
		if !s.eol {
			s.b = append(s.b, '\n')
		}
		s.b = strconv.AppendInt(s.b, int64(v), 10)
		s.b = append(s.b, '\n')
	}
	s.eol = s.b[len(s.b)-1] == '\n'
	_, err := s.w.Write(s.b)
	return err
}
