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
	"math"
	"sort"
)

const (
	pageBits = 10
	pageSize = 1 << pageBits
	pageMask = pageSize - 1
)

type page [pageSize]Cell

// Memory is the addressable memory of an Instance.
//
// It consists of a base region holding the loaded program, and of an
// unbounded overflow region for addresses past the end of the program. The
// overflow region is a page table of fixed size blocks that are allocated on
// first write. Reading an address that was never written returns 0.
//
// Addresses must be non-negative, Memory does not check it.
type Memory struct {
	base  []Cell
	pages map[int]*page
	top   int // one past the highest address written in the overflow region, saturated at math.MaxInt
}

// NewMemory returns a new Memory using program as its base region. The slice
// is used as is, not copied.
func NewMemory(program []Cell) *Memory {
	return &Memory{base: program}
}

// Get returns the value at address addr.
func (m *Memory) Get(addr int) Cell {
	if addr < len(m.base) {
		return m.base[addr]
	}
	if p := m.pages[addr>>pageBits]; p != nil {
		return p[addr&pageMask]
	}
	return 0
}

// Ptr returns a pointer to the memory cell at address addr, allocating it if
// needed. The pointer stays valid for the lifetime of the Memory.
func (m *Memory) Ptr(addr int) *Cell {
	if addr < len(m.base) {
		return &m.base[addr]
	}
	if m.pages == nil {
		m.pages = make(map[int]*page)
	}
	k := addr >> pageBits
	p := m.pages[k]
	if p == nil {
		p = new(page)
		m.pages[k] = p
	}
	switch {
	case addr == math.MaxInt:
		m.top = math.MaxInt
	case addr >= m.top:
		m.top = addr + 1
	}
	return &p[addr&pageMask]
}

// Set sets the value at address addr.
func (m *Memory) Set(addr int, v Cell) {
	*m.Ptr(addr) = v
}

// Len returns one past the highest address in use, that is the length of the
// loaded program or one past the highest address written to, whichever is
// larger. Len saturates at math.MaxInt.
func (m *Memory) Len() int {
	if m.top > len(m.base) {
		return m.top
	}
	return len(m.base)
}

// Base returns the base region. Value changes will be reflected in the memory.
func (m *Memory) Base() []Cell {
	return m.base
}

// Region is a contiguous block of memory starting at address Addr.
type Region struct {
	Addr  int
	Cells []Cell
}

// Regions returns a copy of the allocated parts of the memory, in address
// order: the base region first, then every allocated page of the overflow
// region.
func (m *Memory) Regions() []Region {
	r := []Region{{0, append([]Cell(nil), m.base...)}}
	keys := make([]int, 0, len(m.pages))
	for k := range m.pages {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		start, cells := k<<pageBits, m.pages[k][:]
		if start < len(m.base) {
			cells = cells[len(m.base)-start:]
			start = len(m.base)
		}
		r = append(r, Region{start, append([]Cell(nil), cells...)})
	}
	return r
}

// Clone returns a deep copy of the memory.
func (m *Memory) Clone() *Memory {
	c := &Memory{
		base: append([]Cell(nil), m.base...),
		top:  m.top,
	}
	if m.pages != nil {
		c.pages = make(map[int]*page, len(m.pages))
		for k, p := range m.pages {
			cp := *p
			c.pages[k] = &cp
		}
	}
	return c
}
