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

// Package hull implements the emergency hull painting robot: an Intcode
// program drives a robot over a grid of panels, reading the color of the panel
// below the robot and answering with a color to paint and a direction to turn
// to before moving forward one panel.
package hull

import (
	"strings"
	"sync"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// ErrProtocol is returned when the program outputs a value that is neither a
// valid color nor a valid turn, or halts in the middle of a command.
var ErrProtocol = errors.New("robot protocol error")

// Color is the color of a panel.
type Color vm.Cell

// Panel colors.
const (
	Black Color = iota
	White
)

// Point is a position on the hull. Y grows downwards.
type Point struct {
	X, Y int
}

// Direction is the direction the robot is facing.
type Direction int

// Directions, clockwise.
const (
	Up Direction = iota
	Right
	Down
	Left
)

var moves = [...]Point{Up: {0, -1}, Right: {1, 0}, Down: {0, 1}, Left: {-1, 0}}

func (d Direction) turn(right bool) Direction {
	if right {
		return (d + 1) % 4
	}
	return (d + 3) % 4
}

// Hull is a grid of panels. All panels start black unless set otherwise with
// Initial.
type Hull struct {
	panels  map[Point]Color
	initial map[Point]Color
}

// New returns an empty hull.
func New() *Hull {
	return &Hull{
		panels:  make(map[Point]Color),
		initial: make(map[Point]Color),
	}
}

// Initial sets the color of the panel at p before the robot starts. Unlike
// Paint, it does not count as painting the panel.
func (h *Hull) Initial(p Point, c Color) {
	h.initial[p] = c
}

// Paint paints the panel at p.
func (h *Hull) Paint(p Point, c Color) {
	h.panels[p] = c
}

// Color returns the color of the panel at p.
func (h *Hull) Color(p Point) Color {
	if c, ok := h.panels[p]; ok {
		return c
	}
	return h.initial[p]
}

// Painted returns the number of panels painted at least once.
func (h *Hull) Painted() int {
	return len(h.panels)
}

// String renders the painted area of the hull, white panels as '█' and black
// panels as spaces. Panels given an initial color are part of the area.
func (h *Hull) String() string {
	if len(h.panels) == 0 && len(h.initial) == 0 {
		return ""
	}
	var min, max Point
	first := true
	for _, m := range [...]map[Point]Color{h.panels, h.initial} {
		for p := range m {
			if first {
				min, max, first = p, p, false
				continue
			}
			min.X, min.Y = mini(min.X, p.X), mini(min.Y, p.Y)
			max.X, max.Y = maxi(max.X, p.X), maxi(max.Y, p.Y)
		}
	}
	var b strings.Builder
	for y := min.Y; y <= max.Y; y++ {
		for x := min.X; x <= max.X; x++ {
			if h.Color(Point{x, y}) == White {
				b.WriteRune('█')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func mini(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxi(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Robot is the painting robot. It is both the vm.Source and the vm.Sink of
// the program controlling it: Next reports the color of the panel below the
// robot, Accept receives commands as pairs of values, a color to paint, then
// 0 to turn left or 1 to turn right.
type Robot struct {
	mu      sync.Mutex
	hull    *Hull
	pos     Point
	dir     Direction
	color   Color
	pending bool
}

// NewRobot returns a robot at position (0, 0) facing up on hull h.
func NewRobot(h *Hull) *Robot {
	return &Robot{hull: h}
}

// Position returns the current position and direction of the robot.
func (r *Robot) Position() (Point, Direction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pos, r.dir
}

// Next implements vm.Source.
func (r *Robot) Next() (vm.Cell, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending {
		return 0, errors.Wrap(ErrProtocol, "camera read in the middle of a command")
	}
	return vm.Cell(r.hull.Color(r.pos)), nil
}

// Accept implements vm.Sink.
func (r *Robot) Accept(v vm.Cell) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.pending {
		if c := Color(v); c != Black && c != White {
			return errors.Wrapf(ErrProtocol, "invalid color %d", v)
		}
		r.color, r.pending = Color(v), true
		return nil
	}
	if v != 0 && v != 1 {
		return errors.Wrapf(ErrProtocol, "invalid turn %d", v)
	}
	r.hull.Paint(r.pos, r.color)
	r.dir = r.dir.turn(v == 1)
	m := moves[r.dir]
	r.pos = Point{r.pos.X + m.X, r.pos.Y + m.Y}
	r.pending = false
	return nil
}

// Run runs the robot program on hull h until it halts.
func Run(program []vm.Cell, h *Hull, opts ...vm.Option) error {
	r := NewRobot(h)
	i, err := vm.New(program, append(opts[:len(opts):len(opts)], vm.Input(r), vm.Output(r))...)
	if err != nil {
		return err
	}
	if err = i.Run(); err != nil {
		return err
	}
	if r.pending {
		return errors.Wrap(ErrProtocol, "program halted in the middle of a command")
	}
	return nil
}
