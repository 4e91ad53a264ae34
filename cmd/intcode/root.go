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
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var debug bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "intcode",
	Short: "An Intcode virtual machine.",
	Long: `Run, assemble and disassemble Intcode programs, and play the games they
implement.

Programs are given by file name, or by name or ID in the program library when
--store is set.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug = getFlag(cmd, "debug")
		switch {
		case debug:
			log.SetLevel(log.DebugLevel)
		case getFlag(cmd, "verbose"):
			log.SetLevel(log.InfoLevel)
		default:
			log.SetLevel(log.WarnLevel)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug diagnostics and stack traces")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().Int64("max-steps", 0, "abort programs after `n` instructions (0 for no limit)")
	rootCmd.PersistentFlags().String("store", "", "program library `path`")
	rootCmd.PersistentFlags().String("store-backend", "bolt", "program library backend (bolt or badger)")
}
