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

package ascii_test

import (
	"io"
	"strings"
	"testing"

	"github.com/db47h/intcode/lang/ascii"
	"github.com/db47h/intcode/vm"
)

func TestDecode(t *testing.T) {
	tests := [...]struct {
		in  []vm.Cell
		out string
	}{
		{ascii.Encode("#.\n.#\n"), "#.\n.#\n"},
		{[]vm.Cell{'o', 'k', 1234}, "ok\n1234\n"},
		{[]vm.Cell{'o', 'k', '\n', -1, 'x'}, "ok\n-1\nx"},
		{[]vm.Cell{19349884}, "19349884\n"},
	}
	for _, test := range tests {
		if got := ascii.Decode(test.in); got != test.out {
			t.Errorf("%v: expected %q, got %q", test.in, test.out, got)
		}
	}
}

func TestSink(t *testing.T) {
	var b strings.Builder
	s := ascii.NewSink(&b)
	for _, v := range []vm.Cell{'o', 'k', 1234, 'x', '\n', 5678} {
		if err := s.Accept(v); err != nil {
			t.Fatal(err)
		}
	}
	if exp := "ok\n1234\nx\n5678\n"; b.String() != exp {
		t.Errorf("expected %q, got %q", exp, b.String())
	}
}

func TestSource(t *testing.T) {
	s := ascii.NewSource(strings.NewReader("ab\rc\x04d"))
	var got []vm.Cell
	for {
		v, err := s.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, v)
	}
	if ascii.Decode(got) != "ab\nc" {
		t.Errorf("unexpected input %v", got)
	}
}

// An ASCII program that upper cases its input line.
func TestRun(t *testing.T) {
	// :loop in c / eq c #10 f / jnz f #end / lt c #97 f / jnz f #out
	// add c #-32 c / :out out c / jz #0 #loop / :end hlt
	code, err := vm.Parse("3,36,1008,36,10,37,1005,37,35,1007,36,97,37,1005,37,25,1001,36,-32,36,1106,0,25,0,0,4,36,1106,0,0,0,0,0,0,0,99,0,0")
	if err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	i, _ := vm.New(code, vm.Input(ascii.NewSource(strings.NewReader("Hello, world\n"))), vm.Output(ascii.NewSink(&b)))
	if err = i.Run(); err != nil {
		t.Fatalf("%+v", err)
	}
	if b.String() != "HELLO, WORLD" {
		t.Errorf("unexpected output %q", b.String())
	}
}
