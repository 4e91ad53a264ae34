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

import "io"

// Source supplies values to IN instructions.
//
// Next returns the next value, blocking if none is available yet. At
// end-of-stream, Next returns io.EOF.
type Source interface {
	Next() (Cell, error)
}

// Sink receives the values of OUT instructions. Accept may block until the
// value can be delivered.
type Sink interface {
	Accept(v Cell) error
}

// SourceFunc is an adapter to allow the use of ordinary functions as a Source.
type SourceFunc func() (Cell, error)

// Next implements Source.
func (f SourceFunc) Next() (Cell, error) { return f() }

// SinkFunc is an adapter to allow the use of ordinary functions as a Sink.
type SinkFunc func(v Cell) error

// Accept implements Sink.
func (f SinkFunc) Accept(v Cell) error { return f(v) }

// Cursor is a Source reading from a fixed list of values.
type Cursor struct {
	cells []Cell
}

// Values returns a Source that yields the given values in order, then
// end-of-stream.
func Values(v ...Cell) *Cursor {
	return &Cursor{v}
}

// Next implements Source.
func (c *Cursor) Next() (Cell, error) {
	if len(c.cells) == 0 {
		return 0, io.EOF
	}
	v := c.cells[0]
	c.cells = c.cells[1:]
	return v, nil
}

// Len returns the number of unread values.
func (c *Cursor) Len() int {
	return len(c.cells)
}

type multiSource struct {
	sources []Source
}

func (ms *multiSource) Next() (Cell, error) {
	for len(ms.sources) > 0 {
		v, err := ms.sources[0].Next()
		if err != io.EOF {
			return v, err
		}
		ms.sources = ms.sources[1:]
	}
	return 0, io.EOF
}

func (ms *multiSource) push(s Source) {
	ms.sources = append([]Source{s}, ms.sources...)
}

// MultiSource returns a Source that is the logical concatenation of the
// provided sources. They are read sequentially; once all have reached
// end-of-stream, Next returns io.EOF.
func MultiSource(sources ...Source) Source {
	return &multiSource{append([]Source(nil), sources...)}
}

// Log is a Sink that appends values to a slice.
type Log []Cell

// Accept implements Sink.
func (l *Log) Accept(v Cell) error {
	*l = append(*l, v)
	return nil
}

// Latch is a Sink that retains only the last value written to it.
type Latch struct {
	v   Cell
	set bool
}

// Accept implements Sink.
func (l *Latch) Accept(v Cell) error {
	l.v, l.set = v, true
	return nil
}

// Value returns the last value written to the latch. ok is false if the latch
// never received any value.
func (l *Latch) Value() (v Cell, ok bool) {
	return l.v, l.set
}

type teeSink []Sink

func (t teeSink) Accept(v Cell) error {
	for _, s := range t {
		if err := s.Accept(v); err != nil {
			return err
		}
	}
	return nil
}

// Tee returns a Sink that duplicates its values to all the provided sinks, in
// order. It stops at the first error.
func Tee(sinks ...Sink) Sink {
	return teeSink(append([]Sink(nil), sinks...))
}
