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

// Package droid implements the oxygen system repair droid: an Intcode program
// remote controls a droid in an unknown maze, answering each movement command
// with a status code.
//
// Explore maps the whole maze by depth-first search, then Map answers the
// questions asked about it: the length of the shortest path from the start
// position to the oxygen system, and the time it takes for oxygen to fill the
// maze.
package droid

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Errors returned by this package.
var (
	ErrUnknownStatus = errors.New("unknown status code")
	ErrNotFound      = errors.New("oxygen system not found")
	ErrProtocol      = errors.New("droid protocol error")
)

// Direction is a movement command.
type Direction int

// Movement commands.
const (
	North Direction = 1 + iota
	South
	West
	East
)

var directions = [...]Direction{North, South, West, East}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case West:
		return East
	}
	return West
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case West:
		return "west"
	case East:
		return "east"
	}
	return "invalid direction"
}

// Status is the reply of the droid to a movement command.
type Status int

// Status codes.
const (
	Wall   Status = iota // the droid hit a wall and did not move
	Moved                // the droid moved one step
	Oxygen               // the droid moved one step and found the oxygen system
)

// Point is a position in the maze. North is towards negative Y.
type Point struct {
	X, Y int
}

// Add returns the position one step away from p in direction d.
func (p Point) Add(d Direction) Point {
	switch d {
	case North:
		p.Y--
	case South:
		p.Y++
	case West:
		p.X--
	case East:
		p.X++
	}
	return p
}

// Remote controls a droid.
type Remote interface {
	// Move sends a movement command to the droid and returns its reply.
	Move(d Direction) (Status, error)
}

type config struct {
	log logrus.FieldLogger
}

// Option configures Explore.
type Option func(*config)

// Logger sets the logger used for debug output. The default is the logrus
// standard logger.
func Logger(l logrus.FieldLogger) Option {
	return func(c *config) { c.log = l }
}

type explorer struct {
	r   Remote
	m   *Map
	log logrus.FieldLogger
}

func (e *explorer) visit(p Point) error {
	for _, d := range directions {
		q := p.Add(d)
		if _, ok := e.m.tiles[q]; ok {
			continue
		}
		s, err := e.r.Move(d)
		if err != nil {
			return err
		}
		switch s {
		case Wall:
			e.m.tiles[q] = TileWall
			continue
		case Moved:
			e.m.tiles[q] = TileOpen
		case Oxygen:
			e.m.tiles[q] = TileOxygen
			e.m.oxygen, e.m.found = q, true
			e.log.WithField("pos", q).Debug("found oxygen system")
		default:
			return errors.Wrapf(ErrUnknownStatus, "%d", s)
		}
		if err = e.visit(q); err != nil {
			return err
		}
		if s, err = e.r.Move(d.Reverse()); err != nil {
			return err
		}
		if s == Wall {
			return errors.Wrapf(ErrProtocol, "cannot move back %v from %v", d.Reverse(), q)
		}
	}
	return nil
}

// Explore maps the maze reachable from the current droid position. The
// droid is back at its starting position when Explore returns without error.
func Explore(r Remote, opts ...Option) (*Map, error) {
	c := config{log: logrus.StandardLogger()}
	for _, o := range opts {
		o(&c)
	}
	m := newMap()
	e := &explorer{r: r, m: m, log: c.log}
	if err := e.visit(Point{}); err != nil {
		return nil, err
	}
	c.log.WithFields(logrus.Fields{"tiles": len(m.tiles), "found": m.found}).Debug("maze explored")
	return m, nil
}
