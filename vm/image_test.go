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
	"os"
	"path/filepath"
	"testing"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

func TestParse(t *testing.T) {
	p, err := vm.Parse(" 1, -2 ,3\n")
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if !equal(p, C{1, -2, 3}) {
		t.Errorf("bad parse result %v", p)
	}
	for _, s := range []string{"", "  \n", "1,,2", "1,a", "1,2,", "99999999999999999999"} {
		if _, err := vm.Parse(s); !errors.Is(err, vm.ErrParseProgram) {
			t.Errorf("Parse(%q): expected ErrParseProgram, got %v", s, err)
		}
	}
}

func TestFormat(t *testing.T) {
	if s := vm.Format(C{1, -2, 3}); s != "1,-2,3" {
		t.Errorf("bad format %q", s)
	}
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	p := prog(t, "109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99")
	for _, compress := range []bool{false, true} {
		fn := filepath.Join(dir, "prog.txt")
		if compress {
			fn += ".zst"
		}
		if err := vm.Save(fn, p, compress); err != nil {
			t.Fatalf("%+v", err)
		}
		data, err := os.ReadFile(fn)
		if err != nil {
			t.Fatal(err)
		}
		isText := string(data) == vm.Format(p)+"\n"
		if isText == compress {
			t.Errorf("compress=%v: unexpected file contents", compress)
		}
		l, err := vm.Load(fn)
		if err != nil {
			t.Fatalf("%+v", err)
		}
		if !equal(l, p) {
			t.Errorf("compress=%v: expected %v, got %v", compress, p, l)
		}
	}
}

func TestLoad_missing(t *testing.T) {
	_, err := vm.Load(filepath.Join(t.TempDir(), "none"))
	if !os.IsNotExist(errors.Cause(err)) {
		t.Errorf("expected a not exist error, got %v", err)
	}
}
