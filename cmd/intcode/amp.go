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

	"github.com/db47h/intcode/amp"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var ampCmd = &cobra.Command{
	Use:   "amp [flags] program",
	Short: "Find the phase settings giving the highest amplifier output.",
	Long: `Find the phase settings giving the highest amplifier output.

Five copies of the program are chained, each one being fed its phase setting
then the output of the previous one. The phase settings are 0 to 4, or 5 to 9
in feedback mode. With --phases, only the given settings are tried.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		atExit(nil, runAmp(cmd, args[0]))
	},
}

func runAmp(cmd *cobra.Command, name string) error {
	prog, err := loadProgram(cmd, name)
	if err != nil {
		return err
	}
	feedback := getFlag(cmd, "feedback")
	opts := []amp.Option{
		amp.Feedback(feedback),
		amp.Logger(log.StandardLogger()),
		amp.VMOptions(vmOptions(cmd)...),
	}
	if s := getString(cmd, "phases"); s != "" {
		phases, err := parseValues(s)
		if err != nil {
			return errors.Wrap(err, "invalid phase settings")
		}
		out, err := amp.Run(prog, phases, opts...)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}
	phases := []vm.Cell{0, 1, 2, 3, 4}
	if feedback {
		phases = []vm.Cell{5, 6, 7, 8, 9}
	}
	best, order, err := amp.MaxSignal(prog, phases, opts...)
	if err != nil {
		return err
	}
	fmt.Println(best, order)
	return nil
}

func init() {
	ampCmd.Flags().Bool("feedback", false, "feedback loop mode")
	ampCmd.Flags().String("phases", "", "comma separated phase `settings` to run")
	rootCmd.AddCommand(ampCmd)
}
