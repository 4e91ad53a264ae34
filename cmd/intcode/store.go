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
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/db47h/intcode/store"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the program library.",
	Long: `Manage the program library.

The library is a database file set with --store. Programs are identified by
their fingerprint and may be given a name. Other commands read programs from
the library by name or fingerprint when --store is set.`,
}

// withStore opens the library and calls fn with it.
func withStore(cmd *cobra.Command, fn func(s store.Store) error) (err error) {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	if s == nil {
		return errors.New("no library set, use --store")
	}
	defer func() {
		if e := s.Close(); err == nil {
			err = e
		}
	}()
	return fn(s)
}

var storeAddCmd = &cobra.Command{
	Use:   "add [flags] file",
	Short: "Add a program file to the library.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		atExit(nil, withStore(cmd, func(s store.Store) error {
			prog, err := vm.Load(args[0])
			if err != nil {
				return err
			}
			id, err := s.Put(getString(cmd, "name"), prog)
			if err != nil {
				return err
			}
			log.WithFields(log.Fields{"file": args[0], "cells": len(prog)}).Info("program added")
			fmt.Println(id)
			return nil
		}))
	},
}

var storeGetCmd = &cobra.Command{
	Use:   "get [flags] name|id",
	Short: "Save a program from the library to a file.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		atExit(nil, withStore(cmd, func(s store.Store) error {
			p, err := s.Lookup(args[0])
			if err != nil {
				return err
			}
			out := getString(cmd, "output")
			if out == "" {
				fmt.Println(vm.Format(p.Cells))
				return nil
			}
			return vm.Save(out, p.Cells, getFlag(cmd, "zstd"))
		}))
	},
}

var storeListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the programs in the library.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		atExit(nil, withStore(cmd, func(s store.Store) error {
			l, err := s.List()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCELLS\tID")
			for _, e := range l {
				fmt.Fprintf(w, "%s\t%d\t%s\n", e.Name, e.Size, e.ID)
			}
			return w.Flush()
		}))
	},
}

var storeRmCmd = &cobra.Command{
	Use:   "rm name|id",
	Short: "Remove a program from the library.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		atExit(nil, withStore(cmd, func(s store.Store) error {
			p, err := s.Lookup(args[0])
			if err != nil {
				return err
			}
			return s.Delete(p.ID)
		}))
	},
}

func init() {
	storeAddCmd.Flags().StringP("name", "n", "", "program `name`")
	storeGetCmd.Flags().StringP("output", "o", "", "output file `name`")
	storeGetCmd.Flags().BoolP("zstd", "z", false, "compress output with zstd")
	storeCmd.AddCommand(storeAddCmd, storeGetCmd, storeListCmd, storeRmCmd)
	rootCmd.AddCommand(storeCmd)
}
