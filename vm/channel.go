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
	"io"
	"sync"
)

// Channel is a bounded FIFO queue of values that is both a Source and a Sink.
// It connects the output of one Instance to the input of another Instance
// running on a different goroutine.
//
// Accept blocks while the channel is full, Next blocks while it is empty.
// After Close, Accept fails with ErrClosed and Next returns the values still
// buffered, then io.EOF.
type Channel struct {
	c    chan Cell
	done chan struct{}
	once sync.Once
}

// NewChannel returns a new Channel that can hold up to capacity values. A
// capacity of 0 makes an unbuffered channel where every Accept waits for the
// matching Next.
func NewChannel(capacity int) *Channel {
	return &Channel{
		c:    make(chan Cell, capacity),
		done: make(chan struct{}),
	}
}

// Accept implements Sink.
func (ch *Channel) Accept(v Cell) error {
	select {
	case <-ch.done:
		return ErrClosed
	default:
	}
	select {
	case ch.c <- v:
		return nil
	case <-ch.done:
		return ErrClosed
	}
}

// Next implements Source.
func (ch *Channel) Next() (Cell, error) {
	select {
	case v := <-ch.c:
		return v, nil
	case <-ch.done:
		// drain values sent before Close
		select {
		case v := <-ch.c:
			return v, nil
		default:
			return 0, io.EOF
		}
	}
}

// Close closes the channel. It is safe to call Close multiple times and from
// multiple goroutines.
func (ch *Channel) Close() error {
	ch.once.Do(func() { close(ch.done) })
	return nil
}

// Len returns the number of buffered values.
func (ch *Channel) Len() int {
	return len(ch.c)
}
