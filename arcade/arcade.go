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

// Package arcade implements the arcade cabinet: an Intcode game program draws
// tiles on the cabinet screen and reads the joystick position.
//
// The program draws with triples of output values: x, y and a tile id. The
// special position (-1, 0) sets the score display instead of drawing a tile.
package arcade

import (
	"strconv"
	"strings"
	"sync"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// Errors returned by the cabinet.
var (
	ErrUnknownTile = errors.New("unknown tile id")
	ErrProtocol    = errors.New("screen protocol error")
)

// Tile is a screen tile id.
type Tile vm.Cell

// Tile ids.
const (
	Empty Tile = iota
	Wall
	Block
	Paddle
	Ball
)

var tileRunes = [...]rune{Empty: ' ', Wall: '█', Block: '▒', Paddle: '▔', Ball: 'o'}

func (t Tile) valid() bool { return t >= Empty && t <= Ball }

// Point is a screen position.
type Point struct {
	X, Y int
}

// Joystick positions.
const (
	Left    vm.Cell = -1
	Neutral vm.Cell = 0
	Right   vm.Cell = 1
)

// Cabinet is the arcade cabinet. It is both the vm.Source and the vm.Sink of
// the game program: Next reads the joystick, Accept receives draw commands.
//
// A Cabinet is safe for concurrent use, so that its screen can be displayed
// while the game is running.
type Cabinet struct {
	// Joystick, if not nil, is called for each joystick read. The default
	// joystick follows the ball with the paddle.
	Joystick func(c *Cabinet) vm.Cell

	mu     sync.Mutex
	screen map[Point]Tile
	score  vm.Cell
	cmd    [3]vm.Cell
	n      int
	ball   Point
	paddle Point
	reads  int
}

// New returns a new cabinet with a blank screen.
func New() *Cabinet {
	return &Cabinet{screen: make(map[Point]Tile)}
}

// Accept implements vm.Sink.
func (c *Cabinet) Accept(v vm.Cell) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cmd[c.n] = v
	c.n++
	if c.n < len(c.cmd) {
		return nil
	}
	c.n = 0
	x, y, id := c.cmd[0], c.cmd[1], c.cmd[2]
	if x == -1 && y == 0 {
		c.score = id
		return nil
	}
	if x < 0 || y < 0 {
		return errors.Wrapf(ErrProtocol, "invalid screen position (%d, %d)", x, y)
	}
	t := Tile(id)
	if !t.valid() {
		return errors.Wrapf(ErrUnknownTile, "%d", id)
	}
	p := Point{int(x), int(y)}
	c.screen[p] = t
	switch t {
	case Ball:
		c.ball = p
	case Paddle:
		c.paddle = p
	}
	return nil
}

// Next implements vm.Source.
func (c *Cabinet) Next() (vm.Cell, error) {
	c.mu.Lock()
	if c.n != 0 {
		c.mu.Unlock()
		return 0, errors.Wrap(ErrProtocol, "joystick read in the middle of a draw command")
	}
	c.reads++
	js := c.Joystick
	if js == nil {
		v := c.follow()
		c.mu.Unlock()
		return v, nil
	}
	c.mu.Unlock()
	return js(c), nil
}

func (c *Cabinet) follow() vm.Cell {
	switch {
	case c.ball.X < c.paddle.X:
		return Left
	case c.ball.X > c.paddle.X:
		return Right
	}
	return Neutral
}

// Follow returns the joystick position that moves the paddle towards the
// ball.
func (c *Cabinet) Follow() vm.Cell {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.follow()
}

// Score returns the last score displayed.
func (c *Cabinet) Score() vm.Cell {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.score
}

// Blocks returns the number of block tiles on screen.
func (c *Cabinet) Blocks() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.screen {
		if t == Block {
			n++
		}
	}
	return n
}

// Tile returns the tile at position p.
func (c *Cabinet) Tile(p Point) Tile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen[p]
}

// Ball returns the position of the ball.
func (c *Cabinet) Ball() Point {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ball
}

// Paddle returns the position of the paddle.
func (c *Cabinet) Paddle() Point {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paddle
}

// Moves returns the number of joystick reads so far.
func (c *Cabinet) Moves() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}

// String renders the screen followed by the score.
func (c *Cabinet) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var max Point
	for p := range c.screen {
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	var b strings.Builder
	if len(c.screen) > 0 {
		for y := 0; y <= max.Y; y++ {
			for x := 0; x <= max.X; x++ {
				b.WriteRune(tileRunes[c.screen[Point{x, y}]])
			}
			b.WriteByte('\n')
		}
	}
	b.WriteString("Score: ")
	b.WriteString(strconv.FormatInt(int64(c.score), 10))
	b.WriteByte('\n')
	return b.String()
}

// Run runs the game program on cabinet c until it halts. If freePlay is
// true, address 0 is set to 2 before starting the program.
func Run(program []vm.Cell, c *Cabinet, freePlay bool, opts ...vm.Option) error {
	i, err := vm.New(program, append(opts[:len(opts):len(opts)], vm.Input(c), vm.Output(c))...)
	if err != nil {
		return err
	}
	if freePlay {
		i.Mem.Set(0, 2)
	}
	if err = i.Run(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.n != 0 {
		return errors.Wrap(ErrProtocol, "program halted in the middle of a draw command")
	}
	return nil
}
