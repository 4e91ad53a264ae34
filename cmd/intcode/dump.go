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

package main

import (
	"io"
	"strconv"

	"github.com/db47h/intcode/internal/xio"
	"github.com/db47h/intcode/vm"
)

// dumpVM dumps the VM registers and memory to the specified io.Writer. The
// base region is written in program text form, followed by one line per
// non-zero overflow page, prefixed with the address of its first non-zero
// cell.
func dumpVM(i *vm.Instance, w io.Writer) error {
	ew := xio.NewErrWriter(w)
	io.WriteString(ew, "pc="+strconv.Itoa(i.PC)+" rb="+i.RB.String()+"\n")
	for n, r := range i.Mem.Regions() {
		cells := r.Cells
		addr := r.Addr
		if n > 0 {
			// trim zeros
			for len(cells) > 0 && cells[0] == 0 {
				cells = cells[1:]
				addr++
			}
			for len(cells) > 0 && cells[len(cells)-1] == 0 {
				cells = cells[:len(cells)-1]
			}
			if len(cells) == 0 {
				continue
			}
			io.WriteString(ew, "@"+strconv.Itoa(addr)+": ")
		}
		if ew.WriteCells(cells) != nil {
			break
		}
	}
	return ew.Err
}
