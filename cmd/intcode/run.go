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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/db47h/intcode/lang/ascii"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] program",
	Short: "Run an Intcode program.",
	Long: `Run an Intcode program.

Input values are taken from --input, then from stdin, one or more comma or
space separated values per line. Output values are printed one per line.

In ASCII mode, input and output are text. If stdin is a terminal, it is
switched to raw mode; type CTRL-D to end the input.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		i, err := runProgram(cmd, args[0])
		atExit(i, err)
	},
}

func runProgram(cmd *cobra.Command, name string) (i *vm.Instance, err error) {
	prog, err := loadProgram(cmd, name)
	if err != nil {
		return nil, err
	}
	values, err := parseValues(getString(cmd, "input"))
	if err != nil {
		return nil, err
	}
	stdout := bufio.NewWriter(os.Stdout)
	defer func() {
		if e := stdout.Flush(); err == nil {
			err = e
		}
	}()

	opts := vmOptions(cmd)
	if getFlag(cmd, "ascii") {
		var w io.Writer = stdout
		tearDown, err := setRawIO()
		if err != nil {
			return nil, err
		}
		if tearDown != nil {
			defer tearDown()
			w = crlfWriter{os.Stdout}
		}
		opts = append(opts,
			vm.Input(vm.MultiSource(vm.Values(values...), ascii.NewSource(os.Stdin))),
			vm.Output(ascii.NewSink(w)))
	} else {
		opts = append(opts,
			vm.Input(vm.MultiSource(vm.Values(values...), newValueSource(os.Stdin))),
			vm.Output(vm.SinkFunc(func(v vm.Cell) error {
				_, err := fmt.Fprintln(stdout, v)
				return err
			})))
	}

	if i, err = vm.New(prog, opts...); err != nil {
		return nil, err
	}
	err = i.Run()
	log.WithField("instructions", i.InstructionCount()).Info("program terminated")
	if err != nil {
		return i, err
	}
	if getFlag(cmd, "dump") {
		return i, dumpVM(i, stdout)
	}
	return i, nil
}

// parseValues parses a comma separated list of values.
func parseValues(s string) ([]vm.Cell, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	return vm.Parse(s)
}

// valueSource reads values from text, one or more comma or white space
// separated values per line.
type valueSource struct {
	s *bufio.Scanner
}

func newValueSource(r io.Reader) *valueSource {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)
	return &valueSource{s}
}

func (vs *valueSource) Next() (vm.Cell, error) {
	for vs.s.Scan() {
		t := strings.Trim(vs.s.Text(), ",")
		if t == "" {
			continue
		}
		if i := strings.IndexByte(t, ','); i > 0 {
			return 0, errors.Errorf("one value at a time please: %q", t)
		}
		v, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return 0, errors.Wrap(err, "invalid input value")
		}
		return vm.Cell(v), nil
	}
	if err := vs.s.Err(); err != nil {
		return 0, err
	}
	return 0, io.EOF
}

func init() {
	runCmd.Flags().StringP("input", "i", "", "comma separated input `values`, read before stdin")
	runCmd.Flags().Bool("ascii", false, "ASCII mode")
	runCmd.Flags().Bool("dump", false, "dump registers and memory upon exit")
	rootCmd.AddCommand(runCmd)
}
