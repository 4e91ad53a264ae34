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
	"os"
	"path/filepath"
	"strings"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var asmCmd = &cobra.Command{
	Use:   "asm [flags] file",
	Short: "Assemble an Intcode program.",
	Long: `Assemble an Intcode program.

The output file name defaults to the source file name with its extension
replaced by .ic, or .ic.zst if --zstd is set.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		atExit(nil, assemble(cmd, args[0]))
	},
}

func assemble(cmd *cobra.Command, fileName string) error {
	f, err := os.Open(fileName)
	if err != nil {
		return err
	}
	defer f.Close()
	prog, err := asm.Assemble(fileName, bufio.NewReader(f))
	if err != nil {
		return err
	}
	compress := getFlag(cmd, "zstd")
	out := getString(cmd, "output")
	if out == "" {
		out = strings.TrimSuffix(fileName, filepath.Ext(fileName)) + ".ic"
		if compress {
			out += ".zst"
		}
	}
	if err = vm.Save(out, prog, compress); err != nil {
		return err
	}
	log.WithFields(log.Fields{"file": out, "cells": len(prog)}).Info("program assembled")
	return nil
}

var disasmCmd = &cobra.Command{
	Use:   "disasm [flags] program",
	Short: "Disassemble an Intcode program.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		atExit(nil, disassemble(cmd, args[0]))
	},
}

func disassemble(cmd *cobra.Command, name string) (err error) {
	prog, err := loadProgram(cmd, name)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(os.Stdout)
	defer func() {
		if e := w.Flush(); err == nil {
			err = e
		}
	}()
	if getFlag(cmd, "text") {
		_, err = fmt.Fprintln(w, vm.Format(prog))
		return errors.Wrap(err, "write failed")
	}
	return asm.DisassembleAll(prog, 0, w)
}

func init() {
	asmCmd.Flags().StringP("output", "o", "", "output file `name`")
	asmCmd.Flags().BoolP("zstd", "z", false, "compress output with zstd")
	disasmCmd.Flags().Bool("text", false, "print the program as comma separated values")
	rootCmd.AddCommand(asmCmd, disasmCmd)
}
