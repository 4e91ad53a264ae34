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

package droid

import "strings"

// Tile is a maze tile.
type Tile byte

// Tiles, as rendered by Map.String.
const (
	TileWall   Tile = '#'
	TileOpen   Tile = '.'
	TileOxygen Tile = 'O'
)

// Map is a map of a maze, as explored by a droid. The droid starts at (0, 0).
type Map struct {
	tiles  map[Point]Tile
	oxygen Point
	found  bool
}

func newMap() *Map {
	return &Map{tiles: map[Point]Tile{{}: TileOpen}}
}

// Tile returns the tile at position p. ok is false if p is unexplored.
func (m *Map) Tile(p Point) (t Tile, ok bool) {
	t, ok = m.tiles[p]
	return
}

// OxygenSystem returns the location of the oxygen system.
func (m *Map) OxygenSystem() (Point, bool) {
	return m.oxygen, m.found
}

// distances returns the distance from p to every reachable tile.
func (m *Map) distances(p Point) map[Point]int {
	dist := map[Point]int{p: 0}
	queue := []Point{p}
	for len(queue) > 0 {
		p, queue = queue[0], queue[1:]
		for _, d := range directions {
			q := p.Add(d)
			if t, ok := m.tiles[q]; !ok || t == TileWall {
				continue
			}
			if _, ok := dist[q]; ok {
				continue
			}
			dist[q] = dist[p] + 1
			queue = append(queue, q)
		}
	}
	return dist
}

// ShortestPath returns the minimum number of movement commands required to
// move the droid from its starting position to the oxygen system.
func (m *Map) ShortestPath() (int, error) {
	if !m.found {
		return 0, ErrNotFound
	}
	d, ok := m.distances(Point{})[m.oxygen]
	if !ok {
		return 0, ErrNotFound
	}
	return d, nil
}

// FillTime returns the number of minutes it takes to fill the maze with
// oxygen, spreading from the oxygen system to adjacent open tiles every
// minute.
func (m *Map) FillTime() (int, error) {
	if !m.found {
		return 0, ErrNotFound
	}
	max := 0
	for _, d := range m.distances(m.oxygen) {
		if d > max {
			max = d
		}
	}
	return max, nil
}

// String renders the map. The starting position is marked with 'D' and
// unexplored positions are blank.
func (m *Map) String() string {
	var min, max Point
	for p := range m.tiles {
		min.X, min.Y = mini(min.X, p.X), mini(min.Y, p.Y)
		max.X, max.Y = maxi(max.X, p.X), maxi(max.Y, p.Y)
	}
	var b strings.Builder
	start := Point{}
	for y := min.Y; y <= max.Y; y++ {
		for x := min.X; x <= max.X; x++ {
			p := Point{x, y}
			t, ok := m.tiles[p]
			switch {
			case p == start:
				b.WriteByte('D')
			case !ok:
				b.WriteByte(' ')
			default:
				b.WriteByte(byte(t))
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
