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

package vm_test

import (
	"math"
	"testing"

	"github.com/db47h/intcode/vm"
)

func TestMemory(t *testing.T) {
	m := vm.NewMemory(C{1, 2, 3})
	if m.Len() != 3 {
		t.Fatalf("expected Len 3, got %d", m.Len())
	}
	for _, a := range []int{3, 1023, 1024, 1 << 40} {
		if v := m.Get(a); v != 0 {
			t.Errorf("Get(%d): expected 0, got %d", a, v)
		}
	}
	if m.Len() != 3 {
		t.Errorf("reads must not grow memory, Len = %d", m.Len())
	}
	m.Set(1, 42)
	m.Set(5000, 7)
	m.Set(10, -1)
	if m.Get(1) != 42 || m.Get(5000) != 7 || m.Get(10) != -1 {
		t.Errorf("bad values: %d %d %d", m.Get(1), m.Get(5000), m.Get(10))
	}
	if m.Len() != 5001 {
		t.Errorf("expected Len 5001, got %d", m.Len())
	}
	r := m.Regions()
	if len(r) != 3 || r[0].Addr != 0 || !equal(r[0].Cells, C{1, 42, 3}) {
		t.Fatalf("bad regions: %v", r)
	}
	// page 0 is trimmed to the addresses past the base region
	if r[1].Addr != 3 || len(r[1].Cells) != 1021 || r[1].Cells[7] != -1 {
		t.Errorf("bad first page: addr %d, len %d", r[1].Addr, len(r[1].Cells))
	}
	if r[2].Addr != 4096 || len(r[2].Cells) != 1024 || r[2].Cells[5000-4096] != 7 {
		t.Errorf("bad page region: addr %d", r[2].Addr)
	}
	p := m.Ptr(5000)
	*p = 8
	if m.Get(5000) != 8 {
		t.Errorf("write through Ptr not visible")
	}
}

func TestMemory_farAddress(t *testing.T) {
	i, err := vm.New(C{1101, 7, 0, 1 << 50, 99})
	if err != nil {
		t.Fatal(err)
	}
	if err = i.Run(); err != nil {
		t.Fatalf("%+v", err)
	}
	if v := i.Mem.Get(1 << 50); v != 7 {
		t.Fatalf("expected 7, got %d", v)
	}
	if l := i.Mem.Len(); l != 1<<50+1 {
		t.Fatalf("expected Len %d, got %d", 1<<50+1, l)
	}
	r := i.Mem.Regions()
	if len(r) != 2 || r[1].Addr != 1<<50 || len(r[1].Cells) != 1024 || r[1].Cells[0] != 7 {
		t.Fatalf("bad regions")
	}
}

func TestMemory_maxAddress(t *testing.T) {
	m := vm.NewMemory(C{99})
	m.Set(math.MaxInt, 7)
	if m.Get(math.MaxInt) != 7 {
		t.Fatalf("expected 7, got %d", m.Get(math.MaxInt))
	}
	if m.Len() != math.MaxInt {
		t.Fatalf("expected Len math.MaxInt, got %d", m.Len())
	}
	m.Set(100, 1)
	if m.Len() != math.MaxInt {
		t.Errorf("Len moved down to %d", m.Len())
	}
	r := m.Regions()
	last := r[len(r)-1]
	if last.Addr+len(last.Cells)-1 != math.MaxInt || last.Cells[len(last.Cells)-1] != 7 {
		t.Errorf("bad last region at %d", last.Addr)
	}
}

func TestMemory_clone(t *testing.T) {
	m := vm.NewMemory(C{1, 2, 3})
	m.Set(2048, 1)
	c := m.Clone()
	c.Set(0, 10)
	c.Set(2048, 20)
	if m.Get(0) != 1 || m.Get(2048) != 1 {
		t.Errorf("Clone shares memory with the original")
	}
	if c.Get(0) != 10 || c.Get(2048) != 20 || c.Len() != m.Len() {
		t.Errorf("bad clone")
	}
}

func TestNew_copiesProgram(t *testing.T) {
	p := C{1101, 1, 1, 0, 99}
	i, _ := vm.New(p)
	if err := i.Run(); err != nil {
		t.Fatalf("%+v", err)
	}
	if p[0] != 1101 {
		t.Errorf("New did not copy the program")
	}
	if i.Mem.Get(0) != 2 {
		t.Errorf("expected mem[0] = 2, got %d", i.Mem.Get(0))
	}
}
