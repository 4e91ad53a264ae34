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
	"io"
	"os"
	"strings"

	"github.com/db47h/intcode/arcade"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var arcadeCmd = &cobra.Command{
	Use:   "arcade [flags] program",
	Short: "Run an arcade game program.",
	Long: `Run an arcade game program.

Without --play, the game runs in demo mode and the number of blocks on screen
is printed when it halts. With --play, the game is started for free and the
paddle follows the ball, unless --interactive is set too, in which case the
joystick is controlled with the keyboard: 'a' or 'h' moves left, 'd' or 'l'
moves right, any other key stays put.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		atExit(nil, playArcade(cmd, args[0]))
	},
}

func playArcade(cmd *cobra.Command, name string) error {
	prog, err := loadProgram(cmd, name)
	if err != nil {
		return err
	}
	play := getFlag(cmd, "play")
	c := arcade.New()
	if play && getFlag(cmd, "interactive") {
		tearDown, err := setRawIO()
		if err != nil {
			return err
		}
		if tearDown == nil {
			return errors.New("interactive mode requires a terminal")
		}
		defer tearDown()
		c.Joystick = keyboard(os.Stdin, crlfWriter{os.Stdout})
	}
	if err = arcade.Run(prog, c, play, vmOptions(cmd)...); err != nil {
		return err
	}
	if !play {
		fmt.Printf("%d blocks\n", c.Blocks())
		return nil
	}
	log.WithField("moves", c.Moves()).Info("game over")
	fmt.Printf("Score: %d\n", c.Score())
	return nil
}

// keyboard returns a joystick that displays the screen on w then reads a key
// from r.
func keyboard(r io.Reader, w io.Writer) func(*arcade.Cabinet) vm.Cell {
	warned := false
	var key [1]byte
	return func(c *arcade.Cabinet) vm.Cell {
		screen := c.String()
		if cw, ch := consoleSize(); !warned && cw > 0 {
			lines := strings.Split(screen, "\n")
			if len(lines) > ch || len(lines[0]) > cw*3 {
				log.Warnf("terminal too small for the game screen (%dx%d)", cw, ch)
				warned = true
			}
		}
		// clear screen, cursor home
		io.WriteString(w, "\x1b[2J\x1b[H"+screen)
		if _, err := r.Read(key[:]); err != nil {
			return arcade.Neutral
		}
		switch key[0] {
		case 'a', 'h':
			return arcade.Left
		case 'd', 'l':
			return arcade.Right
		}
		return arcade.Neutral
	}
}

func init() {
	arcadeCmd.Flags().Bool("play", false, "play for free until the game is won or lost")
	arcadeCmd.Flags().Bool("interactive", false, "control the joystick with the keyboard")
	rootCmd.AddCommand(arcadeCmd)
}
