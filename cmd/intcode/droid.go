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

	"github.com/db47h/intcode/droid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var droidCmd = &cobra.Command{
	Use:   "droid [flags] program",
	Short: "Explore a maze with a repair droid program.",
	Long: `Explore a maze with a repair droid program.

Prints the length of the shortest path from the start to the oxygen system,
then the time it takes for oxygen to fill the maze. Use --map to print the
explored maze.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		atExit(nil, exploreMaze(cmd, args[0]))
	},
}

func exploreMaze(cmd *cobra.Command, name string) (err error) {
	prog, err := loadProgram(cmd, name)
	if err != nil {
		return err
	}
	r, err := droid.Start(prog, vmOptions(cmd)...)
	if err != nil {
		return err
	}
	defer func() {
		if e := r.Close(); err == nil {
			err = e
		}
	}()
	m, err := droid.Explore(r, droid.Logger(log.StandardLogger()))
	if err != nil {
		return err
	}
	if getFlag(cmd, "map") {
		fmt.Print(m)
	}
	path, err := m.ShortestPath()
	if err != nil {
		return err
	}
	fill, err := m.FillTime()
	if err != nil {
		return err
	}
	fmt.Printf("shortest path: %d\nfill time: %d\n", path, fill)
	return nil
}

func init() {
	droidCmd.Flags().Bool("map", false, "print the explored maze")
	rootCmd.AddCommand(droidCmd)
}
