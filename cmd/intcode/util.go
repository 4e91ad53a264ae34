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

	"github.com/db47h/intcode/store"
	"github.com/db47h/intcode/vm"
	"github.com/spf13/cobra"
)

func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	return r
}

func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	return r
}

func getInt64(cmd *cobra.Command, flag string) int64 {
	r, err := cmd.Flags().GetInt64(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	return r
}

// vmOptions returns the VM options set by the persistent flags.
func vmOptions(cmd *cobra.Command) []vm.Option {
	var opts []vm.Option
	if n := getInt64(cmd, "max-steps"); n > 0 {
		opts = append(opts, vm.MaxSteps(n))
	}
	return opts
}

// openStore opens the program library. It returns nil if --store is not set.
func openStore(cmd *cobra.Command) (store.Store, error) {
	path := getString(cmd, "store")
	if path == "" {
		return nil, nil
	}
	return store.Open(getString(cmd, "store-backend"), path)
}

// loadProgram loads a program from the library if --store is set, or from
// the file name.
func loadProgram(cmd *cobra.Command, name string) ([]vm.Cell, error) {
	s, err := openStore(cmd)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return vm.Load(name)
	}
	defer s.Close()
	p, err := s.Lookup(name)
	if err != nil {
		return nil, err
	}
	return p.Cells, nil
}
