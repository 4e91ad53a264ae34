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

	"github.com/db47h/intcode/hull"
	"github.com/spf13/cobra"
)

var paintCmd = &cobra.Command{
	Use:   "paint [flags] program",
	Short: "Run a hull painting robot program.",
	Long: `Run a hull painting robot program.

Prints the number of panels painted at least once, then the hull.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		atExit(nil, paint(cmd, args[0]))
	},
}

func paint(cmd *cobra.Command, name string) error {
	prog, err := loadProgram(cmd, name)
	if err != nil {
		return err
	}
	h := hull.New()
	if getFlag(cmd, "white") {
		h.Initial(hull.Point{}, hull.White)
	}
	if err = hull.Run(prog, h, vmOptions(cmd)...); err != nil {
		return err
	}
	fmt.Printf("%d panels painted\n%s", h.Painted(), h)
	return nil
}

func init() {
	paintCmd.Flags().Bool("white", false, "start on a white panel")
	rootCmd.AddCommand(paintCmd)
}
