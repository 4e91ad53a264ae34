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

// The intcode command line tool is a showcase for the package
// github.com/db47h/intcode/vm and its companion packages.
//
// Usage:
//
//	intcode [command] [flags]
//
// Commands:
//
//	run       Run an Intcode program
//	asm       Assemble an Intcode program
//	disasm    Disassemble an Intcode program
//	amp       Find the phase settings giving the highest amplifier output
//	paint     Run a hull painting robot program
//	arcade    Run an arcade game program
//	droid     Explore a maze with a repair droid program
//	store     Manage the program library (add, get, ls, rm)
//
// Global flags:
//
//	--debug
//		  enable debug diagnostics and stack traces
//	-v, --verbose
//		  increase logging verbosity
//	--max-steps n
//		  abort programs after n instructions (0 for no limit)
//	--store path
//		  program library path
//	--store-backend name
//		  program library backend, bolt or badger (default "bolt")
//
// Program files contain comma separated values, optionally compressed with
// zstd. Compressed files are detected on load, regardless of their name.
//
// run: input values given with -i are read first, then values are read from
// stdin. With --ascii, stdin is read as text and output values are printed as
// text. If stdin is a terminal, it is switched to raw mode; CTRL-D ends the
// input. --dump prints the registers and memory after the program halts, the
// loaded program region first, then one line per overflow memory page holding
// non-zero values, prefixed with the address of its first non-zero cell:
//
//	$ echo 1,0,0,0,99 > add.ic
//	$ intcode run --dump add.ic
//	pc=5 rb=0
//	2,0,0,0,99
//
// --debug: will print a full stack trace and the VM registers should a
// program fail.
//
// --store: when set, commands that take a program argument look it up in the
// library by name or ID instead of loading it from a file.
package main
